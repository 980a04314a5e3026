// Package tui provides the full-screen Bubble Tea budget session for sente.
package tui

import (
	"fmt"
	"strings"

	"sente/internal/cli"
	"sente/internal/config"
	"sente/internal/ledger"
	"sente/internal/money"
	"sente/internal/tui/components"
	"sente/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// screen enumerates the stages of a TUI session.
type screen int

const (
	screenBudget screen = iota
	screenLogging
	screenReport
)

const (
	minTerminalWidth = 60
	maxContentWidth  = 100
	minContentHeight = 5
)

// App is the root Bubble Tea model. A session moves through three
// screens: budget entry, transaction logging, final report.
type App struct {
	cfg config.Config

	// UI state
	width  int
	height int
	screen screen

	// Budget entry (huh form)
	budgetForm *huh.Form

	// Live session, nil until a budget is accepted
	sess *ledger.Session

	// Logging inputs
	descIn      textinput.Model
	amountIn    textinput.Model
	focusAmount bool

	// Last validation or record feedback
	notice    string
	noticeErr bool
}

// NewApp creates a new TUI app model.
func NewApp(cfg config.Config) App {
	descIn := textinput.New()
	descIn.Placeholder = "what was it?"
	descIn.CharLimit = 120
	descIn.Width = 40
	descIn.Focus()

	amountIn := textinput.New()
	amountIn.Placeholder = "0.00, or 'done'"
	amountIn.CharLimit = 24
	amountIn.Width = 24

	return App{
		cfg:        cfg,
		screen:     screenBudget,
		budgetForm: newBudgetForm(),
		descIn:     descIn,
		amountIn:   amountIn,
	}
}

// Session exposes the live session so the caller can archive it after
// the program exits. Nil when no budget was ever accepted.
func (a App) Session() *ledger.Session { return a.sess }

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(a.budgetForm.Init(), textinput.Blink)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.budgetForm != nil {
			a.budgetForm = a.budgetForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			// An interrupt mid-logging ends the session, not the
			// program: the report still gets shown.
			if a.screen == screenLogging {
				a.screen = screenReport
				return a, nil
			}
			return a, tea.Quit
		}
	}

	switch a.screen {
	case screenBudget:
		return a.updateBudget(msg)
	case screenLogging:
		return a.updateLogging(msg)
	default:
		return a.updateReport(msg)
	}
}

func (a App) updateBudget(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.budgetForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.budgetForm = f
	}

	if a.budgetForm.State == huh.StateCompleted {
		amt, err := money.Parse(a.budgetForm.GetString(budgetKey))
		if err != nil {
			amt = 0 // the form validates; backstop only
		}
		s, err := ledger.NewSession(amt)
		if err != nil {
			s, _ = ledger.NewSession(0)
		}
		a.sess = s
		a.screen = screenLogging
		a.budgetForm = nil
		return a, textinput.Blink
	}

	if a.budgetForm.State == huh.StateAborted {
		return a, tea.Quit
	}

	return a, cmd
}

func (a App) updateLogging(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			if a.focusAmount {
				return a.focusDescription(), textinput.Blink
			}
			a.screen = screenReport
			return a, nil
		case "tab", "shift+tab":
			if a.focusAmount {
				return a.focusDescription(), textinput.Blink
			}
			return a.focusAmountField(), textinput.Blink
		case "enter":
			return a.submitLogging()
		}
	}

	var cmd tea.Cmd
	if a.focusAmount {
		a.amountIn, cmd = a.amountIn.Update(msg)
	} else {
		a.descIn, cmd = a.descIn.Update(msg)
	}
	return a, cmd
}

// submitLogging advances the two-field entry. Enter on the description
// moves to the amount (blank stays put); Enter on the amount records the
// transaction, ends the session on an end signal, or complains.
func (a App) submitLogging() (tea.Model, tea.Cmd) {
	if !a.focusAmount {
		if strings.TrimSpace(a.descIn.Value()) == "" {
			a.notice = "Nothing recorded. Type a description, or press Esc to finish."
			a.noticeErr = false
			return a, nil
		}
		return a.focusAmountField(), textinput.Blink
	}

	raw := a.amountIn.Value()
	if ledger.IsEndSignal(raw) {
		a.screen = screenReport
		return a, nil
	}

	amt, err := money.Parse(raw)
	if err != nil {
		a.notice = "That doesn't look like an amount. Enter a number like 40000 or 499.99."
		a.noticeErr = true
		return a, nil
	}
	if !amt.IsPositive() {
		a.notice = "Amounts must be greater than zero."
		a.noticeErr = true
		return a, nil
	}

	txn, err := a.sess.Record(a.descIn.Value(), amt)
	if err != nil {
		a.notice = "Couldn't record that: " + err.Error() + "."
		a.noticeErr = true
		return a, nil
	}

	a.notice = fmt.Sprintf("Logged %s at %s.", txn.Description, cli.FormatMoney(txn.Value))
	a.noticeErr = false
	a.descIn.SetValue("")
	a.amountIn.SetValue("")
	return a.focusDescription(), textinput.Blink
}

func (a App) focusDescription() App {
	a.focusAmount = false
	a.amountIn.Blur()
	a.descIn.Focus()
	return a
}

func (a App) focusAmountField() App {
	a.focusAmount = true
	a.descIn.Blur()
	a.amountIn.Focus()
	return a
}

func (a App) updateReport(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "enter", "esc":
			return a, tea.Quit
		}
	}
	return a, nil
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

	switch a.screen {
	case screenBudget:
		if a.budgetForm != nil {
			return a.budgetForm.View()
		}
		return ""
	case screenLogging:
		return a.viewLogging()
	default:
		return a.viewReport()
	}
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  sente needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLogging() string {
	t := theme.Active
	w := a.width
	h := a.height
	cw := a.contentWidth()

	header := a.renderHeader("LOGGING")

	// Headline cards
	rem := a.sess.Remaining()
	remLabel := "Remaining"
	remVal := cli.FormatMoney(rem)
	if rem.IsNegative() {
		remLabel = "Over budget"
		remVal = cli.FormatMoney(rem.Abs())
	}
	cards := components.MetricCardRow([]struct{ Label, Value, Delta string }{
		{"Budget", cli.FormatMoney(a.sess.Budget()), ""},
		{"Spent", cli.FormatMoney(a.sess.Total()), fmt.Sprintf("%d logged", a.sess.Len())},
		{remLabel, remVal, ""},
	}, cw)

	gaugeW := cw - 16
	if gaugeW < 10 {
		gaugeW = 10
	}
	gauge := " " + components.BudgetGauge("Used", usedFraction(a.sess), 6, gaugeW)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	var f strings.Builder
	f.WriteString(labelStyle.Render("Item") + "\n")
	f.WriteString(a.descIn.View() + "\n\n")
	f.WriteString(labelStyle.Render("Amount in "+cli.Currency()) + "\n")
	f.WriteString(a.amountIn.View())
	if a.notice != "" {
		noticeStyle := lipgloss.NewStyle().Foreground(t.Accent)
		if a.noticeErr {
			noticeStyle = lipgloss.NewStyle().Foreground(t.Orange)
		}
		f.WriteString("\n\n" + noticeStyle.Render(a.notice))
	}
	formCard := components.FocusCard("Log a transaction", f.String(), cw)

	recent := a.renderRecent(cw)

	statusBar := components.RenderStatusBar(w,
		" [tab]switch field  [enter]submit  [esc]finish",
		fmt.Sprintf("%d logged ", a.sess.Len()))

	content := lipgloss.JoinVertical(lipgloss.Left, cards, gauge, "", formCard, recent)

	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}
	content = padHeight(truncateHeight(content, contentH), contentH)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewReport() string {
	t := theme.Active
	w := a.width
	h := a.height
	cw := a.contentWidth()

	header := a.renderHeader("REPORT")

	final := a.sess.Remaining()
	verdictStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Bold(true)
	verdict := "Surplus: " + cli.FormatMoney(final)
	if final.IsNegative() {
		verdictStyle = lipgloss.NewStyle().Foreground(t.Red).Bold(true)
		verdict = "Deficit: " + cli.FormatMoney(final.Abs())
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Budget  %s\n", cli.FormatMoney(a.sess.Budget())))
	b.WriteString(fmt.Sprintf("Spent   %s\n\n", cli.FormatMoney(a.sess.Total())))
	b.WriteString(verdictStyle.Render(verdict))
	b.WriteString("\n\n")

	if a.sess.Len() == 0 {
		dim := lipgloss.NewStyle().Foreground(t.TextDim)
		b.WriteString(dim.Render("No transactions were recorded this session."))
	} else {
		rows := make([][]string, 0, a.sess.Len()+2)
		for i, e := range a.sess.Entries() {
			rows = append(rows, []string{
				fmt.Sprintf("%d", i+1),
				e.Description,
				cli.FormatMoney(e.Value),
				cli.FormatMoney(e.CumulativeSpent),
			})
		}
		rows = append(rows, []string{"---"})
		rows = append(rows, []string{"", "Total", cli.FormatMoney(a.sess.Total()), ""})
		b.WriteString(cli.RenderTable(cli.Table{
			Headers: []string{"#", "Item", "Amount", "Running total"},
			Rows:    rows,
		}))

		if n := a.sess.Len(); n < a.cfg.General.MinRecommendedTxns {
			dim := lipgloss.NewStyle().Foreground(t.TextDim)
			b.WriteString("\n" + dim.Render(fmt.Sprintf(
				"Tip: logging at least %d transactions gives a clearer picture.",
				a.cfg.General.MinRecommendedTxns)))
		}
	}

	card := components.ContentCard("Session report", b.String(), cw)

	statusBar := components.RenderStatusBar(w, " [q]uit", "")

	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}
	content := padHeight(truncateHeight(card, contentH), contentH)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) renderHeader(stage string) string {
	t := theme.Active

	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	stageStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	rowStyle := lipgloss.NewStyle().Background(t.Surface).Width(a.width)

	return rowStyle.Render(" "+logoStyle.Render("◈ sente")+stageStyle.Render("  ·  "+stage)) + "\n"
}

// renderRecent shows the last few entries under the form so the running
// ledger stays visible while logging.
func (a App) renderRecent(cw int) string {
	if a.sess.Len() == 0 {
		return ""
	}

	entries := a.sess.Entries()
	const show = 5
	if len(entries) > show {
		entries = entries[len(entries)-show:]
	}

	innerW := components.CardInnerWidth(cw)
	var b strings.Builder
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		amount := cli.FormatMoney(e.Value)
		descW := innerW - lipgloss.Width(amount) - 2
		if descW < 8 {
			descW = 8
		}
		b.WriteString(fmt.Sprintf("%-*s  %s", descW, truncStr(e.Description, descW), amount))
		if i > 0 {
			b.WriteString("\n")
		}
	}

	return components.ContentCard("Recent", b.String(), cw)
}

// usedFraction is spend as a share of budget. A zero budget with any
// spend counts as fully used.
func usedFraction(s *ledger.Session) float64 {
	if s.Budget() <= 0 {
		if s.Total() <= 0 {
			return 0
		}
		return 1
	}
	return float64(s.Total()) / float64(s.Budget())
}

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
