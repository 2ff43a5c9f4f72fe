// Package tui provides the interactive Bubble Tea dashboard for chestnut.
package tui

import (
	"context"
	"fmt"
	"strings"

	"chestnut/internal/config"
	"chestnut/internal/dateutil"
	"chestnut/internal/model"
	"chestnut/internal/state"
	"chestnut/internal/tui/components"
	"chestnut/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// dataLoadedMsg is sent when the initial state load finishes.
type dataLoadedMsg struct {
	err error
}

// App is the root Bubble Tea model.
type App struct {
	store  *state.Store
	cfg    config.Config
	seeded bool // running on generated demo data

	// Snapshot of the store, refreshed after every dispatch
	data    model.AppData
	loaded  bool
	loadErr error

	// Week being viewed (canonical start-date key)
	currentWeek string

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Per-tab state
	week weekState
	hist histState

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals setupValues
	needSetup bool

	spinner spinner.Model
}

const (
	minTerminalWidth = 60
	maxContentWidth  = 110

	minContentHeight = 5
)

// NewApp creates a new TUI app model.
func NewApp(store *state.Store, cfg config.Config, seeded bool) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	return App{
		store:       store,
		cfg:         cfg,
		seeded:      seeded,
		needSetup:   !config.Exists() && !seeded,
		currentWeek: dateutil.WeekStartOf(dateutil.Today()),
		week:        newWeekState(),
		spinner:     sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadDataCmd(a.store),
		a.spinner.Tick,
	)
}

// loadDataCmd runs the initial load in the background. A load failure
// still yields usable default state, so err is informational.
func loadDataCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		err := store.Load(context.Background())
		return dataLoadedMsg{err: err}
	}
}

// dispatch applies an action and refreshes the local snapshot.
func (a *App) dispatch(act state.Action) {
	if err := a.store.Dispatch(act); err == nil {
		a.data = a.store.Data()
	}
}

// gotoWeek moves the view to the given week, creating it if needed.
func (a *App) gotoWeek(weekStart string) {
	a.dispatch(state.EnsureWeekExists(weekStart))
	a.currentWeek = weekStart
	a.week.cursor = 0
}

// shiftWeek navigates n weeks forward or backward from the current view.
func (a *App) shiftWeek(n int) {
	a.gotoWeek(dateutil.ShiftWeek(a.currentWeek, n))
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || (a.needSetup && a.setupForm != nil) || a.week.mode != weekBrowsing {
			return a, nil
		}

		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if a.activeTab == 0 && a.week.cursor > 0 {
				a.week.cursor--
			} else if a.activeTab == 1 && a.hist.scroll > 0 {
				a.hist.scroll--
			}
			return a, nil

		case tea.MouseButtonWheelDown:
			if a.activeTab == 0 {
				if a.week.cursor < len(a.orderedPurchases())-1 {
					a.week.cursor++
				}
			} else {
				a.hist.scroll++
			}
			return a, nil

		case tea.MouseButtonLeft:
			if msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					a.activeTab = tab
				}
			}
			return a, nil
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		if !a.loaded {
			return a, nil
		}

		// First-run setup wizard intercepts all keys
		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		// Week tab form modes (add/edit/move/budget) intercept all keys
		if a.activeTab == 0 && a.week.mode != weekBrowsing {
			return a.updateWeekForm(msg)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		if key == "q" {
			return a, tea.Quit
		}

		// Tab shortcuts
		if len(key) == 1 {
			if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
				a.activeTab = idx
				return a, nil
			}
		}
		switch key {
		case "tab":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
			return a, nil
		case "shift+tab":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
			return a, nil
		}

		if a.activeTab == 0 {
			return a.updateWeekBrowsing(msg)
		}
		return a.updateHistory(msg)

	case dataLoadedMsg:
		a.loaded = true
		a.loadErr = msg.err
		a.data = a.store.Data()

		// A fresh data file picks up the configured default budget
		if len(a.data.Weeks) == 0 && a.cfg.Budget.DefaultWeekly > 0 &&
			a.data.DefaultBudget != a.cfg.Budget.DefaultWeekly {
			d := a.data
			d.DefaultBudget = a.cfg.Budget.DefaultWeekly
			a.dispatch(state.LoadData(d))
		}

		// Make sure the week in view exists before anything renders it
		a.dispatch(state.EnsureWeekExists(a.currentWeek))

		if a.needSetup {
			a.setupForm = newSetupForm(&a.setupVals, a.cfg)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, nil

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.activeTab == 0 && a.week.mode != weekBrowsing {
		return a.updateWeekForm(msg)
	}

	return a, nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	if a.setupForm.State == huh.StateCompleted {
		a.cfg = applySetup(a.cfg, a.setupVals)
		_ = config.Save(a.cfg)
		theme.SetActive(a.cfg.Appearance.Theme)
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	if a.setupForm.State == huh.StateAborted {
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if !a.loaded {
		return a.viewLoading()
	}

	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  chestnut needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 3)

	logoStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted)

	var b strings.Builder
	b.WriteString(logoStyle.Render("● chestnut"))
	b.WriteString(subtitleStyle.Render(" · Weekly Budget"))
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())
	b.WriteString(subtitleStyle.Render(" Loading your weeks..."))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
		cardStyle.Render(b.String()))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Bold(true)

	sectionStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Cyan).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim)

	var b strings.Builder
	b.WriteString(titleStyle.Render("● Keyboard Shortcuts"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Navigation"))
	b.WriteString("\n")
	navBindings := []struct{ key, desc string }{
		{"w y", "Jump to tab"},
		{"tab", "Cycle tabs"},
		{"h l / ← →", "Previous / Next week"},
		{"t", "Jump to this week"},
		{"j k", "Move through purchases"},
	}
	for _, bind := range navBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Actions"))
	b.WriteString("\n")
	actionBindings := []struct{ key, desc string }{
		{"a", "Add purchase"},
		{"e", "Edit purchase"},
		{"d", "Delete purchase"},
		{"m", "Move purchase to another day"},
		{"b", "Set weekly budget"},
		{"Esc", "Cancel form"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, bind := range actionBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
		cardStyle.Render(b.String()))
}

func (a App) viewMain() string {
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)

	right := a.cfg.Data.Backend
	if a.seeded {
		right = "seed data"
	}
	if a.loadErr != nil {
		right = "started fresh (load failed)"
	}
	statusBar := components.RenderStatusBar(w, a.statusHints(), right)

	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH - 1 // blank line under the tab bar
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch a.activeTab {
	case 0:
		content = a.renderWeekTab(cw)
	case 1:
		content = a.renderHistoryTab(cw, contentH)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = lipgloss.PlaceHorizontal(w, lipgloss.Center, content)

	return lipgloss.JoinVertical(lipgloss.Left, header, "", content, statusBar)
}

// statusHints returns the key hints shown in the status bar for the
// current tab and mode.
func (a App) statusHints() string {
	if a.activeTab == 0 {
		switch a.week.mode {
		case weekAdding, weekEditing:
			return "tab next field · enter save · esc cancel"
		case weekMoving:
			return "j/k pick day · enter move · esc cancel"
		case weekBudget:
			return "enter save · esc cancel"
		}
		return "a add · e edit · d delete · m move · b budget · h/l week · ? help"
	}
	return "j/k scroll · w week tab · ? help"
}

// ─── Helpers ────────────────────────────────────────────────────

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 1 // leading space in the tab bar
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW + 2 // two-space separator between tabs
	}
	return -1
}
