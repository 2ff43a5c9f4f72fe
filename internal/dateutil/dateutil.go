// Package dateutil provides calendar math on YYYY-MM-DD week keys.
// A week is identified by the date of its Sunday.
package dateutil

import "time"

// KeyLayout is the canonical date key format. Lexicographic order on keys
// equals chronological order, which the history sort and week comparisons
// rely on.
const KeyLayout = "2006-01-02"

// FormatKey renders a time as a canonical date key, dropping the
// time-of-day component.
func FormatKey(t time.Time) string {
	return t.Format(KeyLayout)
}

// ParseKey parses a canonical date key into a local-midnight time.
func ParseKey(key string) (time.Time, error) {
	return time.ParseInLocation(KeyLayout, key, time.Local)
}

// mustParseKey is for internal callers that already hold a canonical key.
// A malformed key degrades to the zero time rather than panicking.
func mustParseKey(key string) time.Time {
	t, _ := ParseKey(key)
	return t
}

// WeekStart returns the key of the Sunday of the week containing t.
func WeekStart(t time.Time) string {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return FormatKey(d.AddDate(0, 0, -int(d.Weekday())))
}

// WeekStartOf returns the week key for the week containing the given date key.
func WeekStartOf(dateKey string) string {
	return WeekStart(mustParseKey(dateKey))
}

// WeekEnd returns the key of the Saturday closing the given week.
func WeekEnd(weekKey string) string {
	return FormatKey(mustParseKey(weekKey).AddDate(0, 0, 6))
}

// ShiftWeek moves a week key by n weeks. Negative n moves into the past.
func ShiftWeek(weekKey string, n int) string {
	return FormatKey(mustParseKey(weekKey).AddDate(0, 0, 7*n))
}

// WeekDates returns the seven date keys of a week in ascending order,
// starting at the week key itself.
func WeekDates(weekKey string) []string {
	d := mustParseKey(weekKey)
	dates := make([]string, 7)
	for i := range dates {
		dates[i] = FormatKey(d.AddDate(0, 0, i))
	}
	return dates
}

// Today returns the current date key.
func Today() string {
	return FormatKey(time.Now())
}

// IsCurrentOrFutureWeek reports whether weekKey is the current week or later.
func IsCurrentOrFutureWeek(weekKey string) bool {
	return weekKey >= WeekStart(time.Now())
}

// DayName returns the full weekday name for a date key, e.g. "Sunday".
func DayName(dateKey string) string {
	return mustParseKey(dateKey).Format("Monday")
}

// FormatShortDate renders a date key as "Jan 7".
func FormatShortDate(dateKey string) string {
	return mustParseKey(dateKey).Format("Jan 2")
}

// FormatWeekRange renders a week as "Jan 7 – Jan 13".
func FormatWeekRange(weekKey string) string {
	return FormatShortDate(weekKey) + " – " + FormatShortDate(WeekEnd(weekKey))
}
