package tui

import "testing"

func TestTabAtXMatchesTabWidths(t *testing.T) {
	for active := 0; active < 2; active++ {
		a := App{activeTab: active}
		pos := 1 // leading space in the tab bar

		for i := 0; i < 2; i++ {
			w := tabWidthForTest(i, active)
			x := pos + w/2 // midpoint inside this tab
			if got := a.tabAtX(x); got != i {
				t.Fatalf("active=%d x=%d -> tab=%d, want %d", active, x, got, i)
			}
			pos += w + 2 // separator
		}
	}
}

func TestTabAtXOutsideTabs(t *testing.T) {
	a := App{}
	if got := a.tabAtX(0); got != -1 {
		t.Fatalf("tabAtX(0) = %d, want -1 (leading space)", got)
	}
	if got := a.tabAtX(500); got != -1 {
		t.Fatalf("tabAtX(500) = %d, want -1 (past the bar)", got)
	}
}

func tabWidthForTest(tabIdx, activeIdx int) int {
	nameWidths := []int{
		len("Week"),
		len("History"),
	}

	w := nameWidths[tabIdx]
	if tabIdx != activeIdx {
		w += 2 // inactive tabs carry "[" and "]" around the shortcut letter
	}
	return w
}
