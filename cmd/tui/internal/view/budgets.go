package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/spendtrack/internal/engine"
	"github.com/MrJamesThe3rd/spendtrack/internal/ledger"
)

type budgetsState int

const (
	budgetsStateBrowse budgetsState = iota
	budgetsStateSetOverall
	budgetsStateSetCategory
)

type BudgetsModel struct {
	CommonModel
	svc    *engine.Service
	userID uuid.UUID

	state    budgetsState
	table    table.Model
	spending ledger.SpendingState
	budgets  []ledger.CategoryBudget
	form     *huh.Form

	loading bool
	err     error
	status  string

	// Form bindings
	formAmount   string
	formCategory string
}

func NewBudgetsModel(svc *engine.Service, userID uuid.UUID) BudgetsModel {
	columns := []table.Column{
		{Title: "Category", Width: 24},
		{Title: "Monthly Budget", Width: 16},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return BudgetsModel{
		svc:    svc,
		userID: userID,
		table:  t,
	}
}

func (m BudgetsModel) Title() string { return "Budgets" }
func (m BudgetsModel) ShortHelp() string {
	if m.state != budgetsStateBrowse {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | o: set overall | c: set category | r: refresh"
}

func (m BudgetsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m BudgetsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadBudgetsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.spending = msg.spending
		m.budgets = msg.budgets
		m.refreshTable()

		return m, nil

	case budgetSavedMsg:
		switch {
		case errors.Is(msg.err, engine.ErrBudgetUnchanged):
			m.status = "Budget unchanged"
		case msg.err != nil:
			m.status = fmt.Sprintf("Error: %v", msg.err)
		default:
			m.status = "Budget saved"
		}

		m.state = budgetsStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 12)
		return m, nil
	}

	if m.state == budgetsStateBrowse {
		return m.updateBrowse(msg)
	}

	return m.updateForm(msg)
}

func (m BudgetsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "o":
			return m.enterOverallMode()
		case "c":
			return m.enterCategoryMode()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m BudgetsModel) enterOverallMode() (tea.Model, tea.Cmd) {
	m.formAmount = ""
	if m.spending.Budget != nil {
		m.formAmount = m.spending.Budget.StringFixed(2)
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title("Overall Monthly Budget").
				Placeholder("0.00").
				Value(&m.formAmount).
				Validate(validateAmount),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = budgetsStateSetOverall
	m.table.Blur()

	return m, m.form.Init()
}

func (m BudgetsModel) enterCategoryMode() (tea.Model, tea.Cmd) {
	m.formCategory = ""
	m.formAmount = ""

	if idx := m.table.Cursor(); idx >= 0 && idx < len(m.budgets) {
		m.formCategory = m.budgets[idx].Category
		m.formAmount = m.budgets[idx].Budget.StringFixed(2)
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("category").
				Title("Category").
				Value(&m.formCategory).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("category cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("amount").
				Title("Monthly Budget").
				Placeholder("0.00").
				Value(&m.formAmount).
				Validate(validateAmount),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = budgetsStateSetCategory
	m.table.Blur()

	return m, m.form.Init()
}

func (m BudgetsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = budgetsStateBrowse
			m.form = nil
			m.table.Focus()

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if m.state == budgetsStateSetOverall {
		return m, m.saveOverallCmd()
	}

	return m, m.saveCategoryCmd()
}

func (m BudgetsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading budgets...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	overall := "Overall budget: not set"
	if m.spending.Budget != nil {
		overall = fmt.Sprintf("Overall budget: %s | spent this month: %s",
			FormatAmount(*m.spending.Budget),
			FormatAmount(m.spending.TotalAccountSpending))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(overall),
		tableView,
	)

	if m.form != nil {
		title := "Set Overall Budget"
		if m.state == budgetsStateSetCategory {
			title = "Set Category Budget"
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(title + "\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *BudgetsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.budgets))
	for _, cb := range m.budgets {
		rows = append(rows, table.Row{cb.Category, FormatAmount(cb.Budget)})
	}

	m.table.SetRows(rows)
}

// Messages

type loadBudgetsMsg struct {
	spending ledger.SpendingState
	budgets  []ledger.CategoryBudget
	err      error
}

func (m BudgetsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		spending, budgets, err := m.svc.Budgets(ctx, m.userID)

		return loadBudgetsMsg{spending: spending, budgets: budgets, err: err}
	}
}

type budgetSavedMsg struct {
	err error
}

func (m BudgetsModel) saveOverallCmd() tea.Cmd {
	amount, _ := decimal.NewFromString(strings.TrimSpace(m.formAmount))

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.svc.SetOverallBudget(ctx, m.userID, amount)

		return budgetSavedMsg{err: err}
	}
}

func (m BudgetsModel) saveCategoryCmd() tea.Cmd {
	amount, _ := decimal.NewFromString(strings.TrimSpace(m.formAmount))
	category := m.formCategory

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.svc.SetCategoryBudget(ctx, m.userID, category, amount)

		return budgetSavedMsg{err: err}
	}
}
