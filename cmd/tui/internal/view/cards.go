package view

import (
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

type cardsState int

const (
	cardsStateBrowse cardsState = iota
	cardsStateAdd
)

type CardsModel struct {
	CommonModel
	svc    *engine.Service
	userID uuid.UUID

	state cardsState
	table table.Model
	cards []ledger.Card
	form  *huh.Form

	loading bool
	err     error
	status  string

	// Form bindings
	formSortCode string
	formAccount  string
	formName     string
	formBalance  string
}

func NewCardsModel(svc *engine.Service, userID uuid.UUID) CardsModel {
	columns := []table.Column{
		{Title: "Name", Width: 20},
		{Title: "Sort Code", Width: 10},
		{Title: "Account", Width: 12},
		{Title: "Balance", Width: 12},
		{Title: "Transactions", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
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

	return CardsModel{
		svc:    svc,
		userID: userID,
		table:  t,
	}
}

func (m CardsModel) Title() string { return "Cards" }
func (m CardsModel) ShortHelp() string {
	if m.state == cardsStateAdd {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | a: add card | x: remove card | r: refresh"
}

func (m CardsModel) Init() tea.Cmd {
	return m.loadCardsCmd()
}

func (m CardsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadCardsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.cards = msg.cards
		m.refreshTable()

		return m, nil

	case cardSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = "Card saved"
		}

		m.state = cardsStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCardsCmd()

	case cardRemovedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = "Card removed"
		}

		return m, m.loadCardsCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case cardsStateBrowse:
		return m.updateBrowse(msg)
	case cardsStateAdd:
		return m.updateAdd(msg)
	}

	return m, nil
}

func (m CardsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCardsCmd()
		case "a":
			return m.enterAddMode()
		case "x":
			idx := m.table.Cursor()
			if idx < 0 || idx >= len(m.cards) {
				return m, nil
			}

			return m, m.removeCmd(m.cards[idx].ID)
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m CardsModel) enterAddMode() (tea.Model, tea.Cmd) {
	m.formSortCode = ""
	m.formAccount = ""
	m.formName = ""
	m.formBalance = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Card Name").
				Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("sort_code").
				Title("Sort Code").
				Placeholder("00-00-00").
				Value(&m.formSortCode),

			huh.NewInput().
				Key("account_number").
				Title("Account Number").
				Value(&m.formAccount),

			huh.NewInput().
				Key("balance").
				Title("Opening Balance").
				Placeholder("0.00").
				Value(&m.formBalance).
				Validate(validateAmount),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = cardsStateAdd
	m.table.Blur()

	return m, m.form.Init()
}

func (m CardsModel) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = cardsStateBrowse
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

	return m, m.saveCmd()
}

func (m CardsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading cards...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := tableView

	if m.state == cardsStateAdd && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("Add Card\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *CardsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.cards))
	for _, c := range m.cards {
		rows = append(rows, table.Row{
			c.Name,
			c.SortCode,
			c.AccountNumber,
			FormatAmount(c.Balance),
			fmt.Sprintf("%d", len(c.Transactions)),
		})
	}

	m.table.SetRows(rows)
}

func validateAmount(s string) error {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("invalid amount")
	}

	if d.IsNegative() {
		return fmt.Errorf("amount cannot be negative")
	}

	return nil
}

// Messages

type loadCardsMsg struct {
	cards []ledger.Card
	err   error
}

func (m CardsModel) loadCardsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		cards, err := m.svc.Cards(ctx, m.userID)

		return loadCardsMsg{cards: cards, err: err}
	}
}

type cardSavedMsg struct {
	err error
}

func (m CardsModel) saveCmd() tea.Cmd {
	balance, _ := decimal.NewFromString(strings.TrimSpace(m.formBalance))
	params := engine.CardParams{
		SortCode:      m.formSortCode,
		AccountNumber: m.formAccount,
		Name:          m.formName,
		Balance:       balance,
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.svc.AddCard(ctx, m.userID, params)

		return cardSavedMsg{err: err}
	}
}

type cardRemovedMsg struct {
	err error
}

func (m CardsModel) removeCmd(cardID uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return cardRemovedMsg{err: m.svc.RemoveCard(ctx, m.userID, cardID)}
	}
}
