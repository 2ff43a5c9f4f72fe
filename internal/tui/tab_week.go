package tui

import (
	"fmt"
	"strconv"
	"strings"

	"chestnut/internal/aggregate"
	"chestnut/internal/cli"
	"chestnut/internal/dateutil"
	"chestnut/internal/model"
	"chestnut/internal/money"
	"chestnut/internal/state"
	"chestnut/internal/tui/components"
	"chestnut/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

type weekMode int

const (
	weekBrowsing weekMode = iota
	weekAdding
	weekEditing
	weekMoving
	weekBudget
)

const (
	fieldName = iota
	fieldAmount
	fieldDay
	fieldCount // sentinel
)

// weekState tracks the week tab: cursor position and the active form.
type weekState struct {
	mode   weekMode
	cursor int // index into the day-ordered purchase list

	// Form state (add / edit / budget)
	field     int
	nameIn    textinput.Model
	amountIn  textinput.Model
	dayChoice int    // index into the week's seven days
	editingID string // purchase being edited or moved
	formErr   string
}

func newWeekState() weekState {
	return weekState{}
}

func newFormInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 28
	return ti
}

// viewedWeek returns the week currently in view, or a zero week if the
// snapshot doesn't have it yet.
func (a App) viewedWeek() model.Week {
	return a.data.Weeks[a.currentWeek]
}

// orderedPurchases flattens the viewed week's purchases in display
// order: day by day, insertion order within a day. The cursor indexes
// into this list.
func (a App) orderedPurchases() []model.Purchase {
	wk := a.viewedWeek()
	byDate := aggregate.GroupByDate(wk.Purchases)

	var out []model.Purchase
	for _, day := range dateutil.WeekDates(a.currentWeek) {
		out = append(out, byDate[day]...)
	}
	return out
}

func (a *App) clampWeekCursor() {
	n := len(a.orderedPurchases())
	if a.week.cursor >= n {
		a.week.cursor = n - 1
	}
	if a.week.cursor < 0 {
		a.week.cursor = 0
	}
}

// cursorPurchase returns the purchase under the cursor, if any.
func (a App) cursorPurchase() (model.Purchase, bool) {
	ordered := a.orderedPurchases()
	if a.week.cursor < 0 || a.week.cursor >= len(ordered) {
		return model.Purchase{}, false
	}
	return ordered[a.week.cursor], true
}

// dayIndexOf maps a purchase date to its offset within the viewed week.
func (a App) dayIndexOf(dateKey string) int {
	for i, day := range dateutil.WeekDates(a.currentWeek) {
		if day == dateKey {
			return i
		}
	}
	return 0
}

// ─── Browsing keys ──────────────────────────────────────────────

func (a App) updateWeekBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "h", "left":
		a.shiftWeek(-1)
		return a, nil
	case "l", "right":
		a.shiftWeek(1)
		return a, nil
	case "t":
		a.gotoWeek(dateutil.WeekStartOf(dateutil.Today()))
		return a, nil

	case "j", "down":
		if a.week.cursor < len(a.orderedPurchases())-1 {
			a.week.cursor++
		}
		return a, nil
	case "k", "up":
		if a.week.cursor > 0 {
			a.week.cursor--
		}
		return a, nil
	case "g":
		a.week.cursor = 0
		return a, nil
	case "G":
		a.week.cursor = len(a.orderedPurchases()) - 1
		if a.week.cursor < 0 {
			a.week.cursor = 0
		}
		return a, nil

	case "a":
		return a.startAdd()
	case "e":
		return a.startEdit()
	case "d":
		if p, ok := a.cursorPurchase(); ok {
			a.dispatch(state.DeletePurchase(a.currentWeek, p.ID))
			a.clampWeekCursor()
		}
		return a, nil
	case "m":
		if p, ok := a.cursorPurchase(); ok {
			a.week.mode = weekMoving
			a.week.editingID = p.ID
			a.week.dayChoice = a.dayIndexOf(p.Date)
		}
		return a, nil
	case "b":
		return a.startBudget()
	}
	return a, nil
}

func (a App) startAdd() (tea.Model, tea.Cmd) {
	a.week.mode = weekAdding
	a.week.field = fieldName
	a.week.formErr = ""
	a.week.nameIn = newFormInput("Groceries", 80)
	a.week.amountIn = newFormInput("42", 9)
	a.week.dayChoice = a.todayDayIndex()
	a.week.nameIn.Focus()
	return a, a.week.nameIn.Cursor.BlinkCmd()
}

func (a App) startEdit() (tea.Model, tea.Cmd) {
	p, ok := a.cursorPurchase()
	if !ok {
		return a, nil
	}
	a.week.mode = weekEditing
	a.week.field = fieldName
	a.week.formErr = ""
	a.week.editingID = p.ID
	a.week.nameIn = newFormInput("Groceries", 80)
	a.week.nameIn.SetValue(p.Name)
	a.week.amountIn = newFormInput("42", 9)
	a.week.amountIn.SetValue(strconv.Itoa(p.Amount))
	a.week.dayChoice = a.dayIndexOf(p.Date)
	a.week.nameIn.Focus()
	return a, a.week.nameIn.Cursor.BlinkCmd()
}

func (a App) startBudget() (tea.Model, tea.Cmd) {
	a.week.mode = weekBudget
	a.week.field = fieldAmount // blink messages route by field
	a.week.formErr = ""
	a.week.amountIn = newFormInput(strconv.Itoa(a.data.DefaultBudget), 9)
	a.week.amountIn.SetValue(strconv.Itoa(a.viewedWeek().Budget))
	a.week.amountIn.Focus()
	return a, a.week.amountIn.Cursor.BlinkCmd()
}

// todayDayIndex returns today's offset in the viewed week, or 0 when
// viewing another week.
func (a App) todayDayIndex() int {
	today := dateutil.Today()
	if dateutil.WeekStartOf(today) != a.currentWeek {
		return 0
	}
	return a.dayIndexOf(today)
}

// ─── Form keys ──────────────────────────────────────────────────

func (a App) updateWeekForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return a.forwardToFormInput(msg)
	}
	key := keyMsg.String()

	if key == "esc" {
		a.week.mode = weekBrowsing
		return a, nil
	}

	switch a.week.mode {
	case weekMoving:
		switch key {
		case "j", "down", "l", "right":
			if a.week.dayChoice < 6 {
				a.week.dayChoice++
			}
		case "k", "up", "h", "left":
			if a.week.dayChoice > 0 {
				a.week.dayChoice--
			}
		case "enter":
			a.submitMove()
		}
		return a, nil

	case weekBudget:
		if key == "enter" {
			a.submitBudget()
			return a, nil
		}
		var cmd tea.Cmd
		a.week.amountIn, cmd = a.week.amountIn.Update(msg)
		return a, cmd

	case weekAdding, weekEditing:
		switch key {
		case "enter":
			a.submitPurchase()
			return a, nil
		case "tab", "down":
			return a.focusFormField((a.week.field + 1) % fieldCount)
		case "shift+tab", "up":
			return a.focusFormField((a.week.field - 1 + fieldCount) % fieldCount)
		}

		if a.week.field == fieldDay {
			switch key {
			case "j", "l", "right":
				if a.week.dayChoice < 6 {
					a.week.dayChoice++
				}
			case "k", "h", "left":
				if a.week.dayChoice > 0 {
					a.week.dayChoice--
				}
			}
			return a, nil
		}
		return a.forwardToFormInput(msg)
	}

	return a, nil
}

func (a App) focusFormField(field int) (tea.Model, tea.Cmd) {
	a.week.field = field
	a.week.nameIn.Blur()
	a.week.amountIn.Blur()
	switch field {
	case fieldName:
		a.week.nameIn.Focus()
		return a, a.week.nameIn.Cursor.BlinkCmd()
	case fieldAmount:
		a.week.amountIn.Focus()
		return a, a.week.amountIn.Cursor.BlinkCmd()
	}
	return a, nil
}

func (a App) forwardToFormInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.week.field {
	case fieldName:
		a.week.nameIn, cmd = a.week.nameIn.Update(msg)
	case fieldAmount:
		a.week.amountIn, cmd = a.week.amountIn.Update(msg)
	}
	return a, cmd
}

// chosenDate resolves the day selector to a canonical date key.
func (a App) chosenDate() string {
	return dateutil.WeekDates(a.currentWeek)[a.week.dayChoice]
}

func (a *App) submitPurchase() {
	name := strings.TrimSpace(a.week.nameIn.Value())
	amount := money.ParseDollarInput(a.week.amountIn.Value())
	if name == "" {
		a.week.formErr = "name is required"
		return
	}
	if amount <= 0 {
		a.week.formErr = "amount must be a positive whole number"
		return
	}

	p := model.Purchase{
		Name:   name,
		Amount: amount,
		Date:   a.chosenDate(),
	}
	if a.week.mode == weekEditing {
		p.ID = a.week.editingID
		a.dispatch(state.EditPurchase(a.currentWeek, p))
	} else {
		p.ID = uuid.NewString()
		a.dispatch(state.AddPurchase(a.currentWeek, p))
	}
	a.week.mode = weekBrowsing
	a.clampWeekCursor()
}

func (a *App) submitMove() {
	wk := a.viewedWeek()
	for _, p := range wk.Purchases {
		if p.ID == a.week.editingID {
			moved := p
			moved.Date = a.chosenDate()
			a.dispatch(state.EditPurchase(a.currentWeek, moved))
			break
		}
	}
	a.week.mode = weekBrowsing
}

func (a *App) submitBudget() {
	amount := money.ParseDollarInput(a.week.amountIn.Value())
	if amount <= 0 {
		a.week.formErr = "budget must be a positive whole number"
		return
	}
	a.dispatch(state.SetBudget(a.currentWeek, amount))
	a.week.mode = weekBrowsing
}

// ─── Rendering ──────────────────────────────────────────────────

func (a App) renderWeekTab(cw int) string {
	wk := a.viewedWeek()
	total := aggregate.WeekTotal(wk)

	var b strings.Builder
	b.WriteString(a.renderWeekHeader(wk, total, cw))
	b.WriteString("\n")

	switch a.week.mode {
	case weekAdding, weekEditing:
		b.WriteString(a.renderPurchaseForm(cw))
		b.WriteString("\n")
	case weekBudget:
		b.WriteString(a.renderBudgetForm(cw))
		b.WriteString("\n")
	}

	b.WriteString(a.renderDays(wk, cw))

	return b.String()
}

func (a App) renderWeekHeader(wk model.Week, total, cw int) string {
	t := theme.Active

	title := dateutil.FormatWeekRange(a.currentWeek)
	if a.currentWeek == dateutil.WeekStartOf(dateutil.Today()) {
		title += "  " + lipgloss.NewStyle().Foreground(t.Accent).Render("(this week)")
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(t.TextPrimary).
		Bold(true)

	spent := cli.FormatSpentOfBudget(total, wk.Budget)
	status := cli.FormatBudgetStatus(total, wk.Budget)

	statusStyle := lipgloss.NewStyle().Foreground(t.Green)
	if total > wk.Budget {
		statusStyle = lipgloss.NewStyle().Foreground(t.Red)
	}

	barWidth := cw - 8
	if barWidth > 40 {
		barWidth = 40
	}
	if barWidth < 10 {
		barWidth = 10
	}

	body := lipgloss.NewStyle().Foreground(t.TextMuted).Render(spent) +
		"  " + statusStyle.Render(status) + "\n" +
		components.BudgetBar(total, wk.Budget, barWidth)

	return components.ContentCard(titleStyle.Render(title), body, cw)
}

func (a App) renderDays(wk model.Week, cw int) string {
	t := theme.Active

	dayStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)
	dateStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	amountStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)
	selStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.SurfaceHover).
		Bold(true)
	totalStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	byDate := aggregate.GroupByDate(wk.Purchases)

	var b strings.Builder
	idx := 0
	for _, day := range dateutil.WeekDates(a.currentWeek) {
		purchases := byDate[day]

		b.WriteString(dayStyle.Render(dateutil.DayName(day)))
		b.WriteString(" ")
		b.WriteString(dateStyle.Render(dateutil.FormatShortDate(day)))
		b.WriteString("\n")

		if len(purchases) == 0 {
			b.WriteString("  " + cli.Muted("no purchases") + "\n")
		}
		dayTotal := 0
		for _, p := range purchases {
			dayTotal += p.Amount
			name := truncStr(p.Name, cw-18)
			amount := money.FormatDollars(p.Amount)
			pad := cw - 6 - lipgloss.Width(name) - lipgloss.Width(amount)
			if pad < 1 {
				pad = 1
			}
			if idx == a.week.cursor && a.week.mode == weekBrowsing {
				line := name + strings.Repeat(" ", pad) + amount
				b.WriteString("  " + selStyle.Render("▸ "+line))
			} else {
				b.WriteString("    " + nameStyle.Render(name) +
					strings.Repeat(" ", pad) + amountStyle.Render(amount))
			}
			b.WriteString("\n")
			idx++
		}
		if len(purchases) > 1 {
			b.WriteString("  " + totalStyle.Render(
				fmt.Sprintf("%s for %s", money.FormatDollars(dayTotal),
					cli.FormatCount(len(purchases), "purchase"))))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (a App) renderPurchaseForm(cw int) string {
	t := theme.Active

	title := "Add purchase"
	if a.week.mode == weekEditing {
		title = "Edit purchase"
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	activeLabel := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	errStyle := lipgloss.NewStyle().Foreground(t.Red)

	nameLabel := labelStyle.Render("Name ")
	if a.week.field == fieldName {
		nameLabel = activeLabel.Render("Name ")
	}
	amountLabel := labelStyle.Render("Amount ")
	if a.week.field == fieldAmount {
		amountLabel = activeLabel.Render("Amount ")
	}
	dayLabel := labelStyle.Render("Day ")
	if a.week.field == fieldDay {
		dayLabel = activeLabel.Render("Day ")
	}

	var b strings.Builder
	b.WriteString(nameLabel + a.week.nameIn.View() + "\n")
	b.WriteString(amountLabel + "$" + a.week.amountIn.View() + "\n")
	b.WriteString(dayLabel + a.renderDayPicker())
	if a.week.formErr != "" {
		b.WriteString("\n" + errStyle.Render(a.week.formErr))
	}

	return components.ContentCard(title, b.String(), cw)
}

func (a App) renderDayPicker() string {
	t := theme.Active

	selStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var parts []string
	for i, day := range dateutil.WeekDates(a.currentWeek) {
		label := dateutil.DayName(day)[:3]
		if i == a.week.dayChoice {
			parts = append(parts, selStyle.Render("["+label+"]"))
		} else {
			parts = append(parts, dimStyle.Render(" "+label+" "))
		}
	}
	return strings.Join(parts, "")
}

func (a App) renderBudgetForm(cw int) string {
	t := theme.Active

	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	errStyle := lipgloss.NewStyle().Foreground(t.Red)

	var b strings.Builder
	b.WriteString("$" + a.week.amountIn.View())
	if a.store.Policy() == state.BudgetPolicySyncDefault {
		b.WriteString("\n" + hintStyle.Render("Also becomes the default for new weeks."))
	}
	if a.week.formErr != "" {
		b.WriteString("\n" + errStyle.Render(a.week.formErr))
	}

	return components.ContentCard("Set weekly budget", b.String(), cw)
}
