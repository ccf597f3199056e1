package view

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/spendtrack/internal/engine"
	"github.com/MrJamesThe3rd/spendtrack/internal/ledger"
	"github.com/MrJamesThe3rd/spendtrack/internal/money"
)

type txState int

const (
	txStateBrowse txState = iota
	txStateRecord
	txStateRecategorize
)

// txRow pairs a transaction with the name of the card it sits on.
type txRow struct {
	tx       ledger.Transaction
	cardName string
}

type TransactionsModel struct {
	CommonModel
	svc    *engine.Service
	userID uuid.UUID

	state txState
	table table.Model
	cards []ledger.Card
	rows  []txRow
	form  *huh.Form

	loading bool
	err     error
	status  string

	// Form bindings
	formCardID   string
	formAmount   string
	formCurrency string
	formDesc     string
	formCategory string
}

func NewTransactionsModel(svc *engine.Service, userID uuid.UUID) TransactionsModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Card", Width: 16},
		{Title: "Amount", Width: 10},
		{Title: "Category", Width: 16},
		{Title: "Description", Width: 36},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
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

	return TransactionsModel{
		svc:    svc,
		userID: userID,
		table:  t,
	}
}

func (m TransactionsModel) Title() string { return "Transactions" }
func (m TransactionsModel) ShortHelp() string {
	if m.state != txStateBrowse {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | n: new | g: generate | c: recategorize | r: refresh"
}

func (m TransactionsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m TransactionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadTxsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.cards = msg.cards
		m.flatten()
		m.refreshTable()

		return m, nil

	case txRecordedMsg:
		m.status = recordStatus(msg)
		m.state = txStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()

	case txRecategorizedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = "Category updated"
		}

		m.state = txStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	if m.state == txStateBrowse {
		return m.updateBrowse(msg)
	}

	return m.updateForm(msg)
}

func (m TransactionsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "n":
			return m.enterRecordMode()
		case "g":
			cardID, ok := m.selectedCardID()
			if !ok {
				m.status = "No card to generate on"
				return m, nil
			}

			return m, m.generateCmd(cardID)
		case "c":
			return m.enterRecategorizeMode()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

// selectedCardID resolves the card of the highlighted row, falling back to the
// first card when the table is empty.
func (m TransactionsModel) selectedCardID() (uuid.UUID, bool) {
	if idx := m.table.Cursor(); idx >= 0 && idx < len(m.rows) {
		return m.rows[idx].tx.CardID, true
	}

	if len(m.cards) > 0 {
		return m.cards[0].ID, true
	}

	return uuid.Nil, false
}

func (m TransactionsModel) enterRecordMode() (tea.Model, tea.Cmd) {
	if len(m.cards) == 0 {
		m.status = "Add a card first"
		return m, nil
	}

	m.formCardID = m.cards[0].ID.String()
	m.formAmount = ""
	m.formCurrency = string(money.GBP)
	m.formDesc = ""

	cardOptions := make([]huh.Option[string], len(m.cards))
	for i, c := range m.cards {
		cardOptions[i] = huh.NewOption(c.Name, c.ID.String())
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("card").
				Title("Card").
				Options(cardOptions...).
				Value(&m.formCardID),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("0.00").
				Value(&m.formAmount).
				Validate(validateAmount),

			huh.NewSelect[string]().
				Key("currency").
				Title("Currency").
				Options(
					huh.NewOption("GBP", string(money.GBP)),
					huh.NewOption("EUR", string(money.EUR)),
					huh.NewOption("USD", string(money.USD)),
				).
				Value(&m.formCurrency),

			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&m.formDesc),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = txStateRecord
	m.table.Blur()

	return m, m.form.Init()
}

func (m TransactionsModel) enterRecategorizeMode() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rows) {
		return m, nil
	}

	m.formCategory = m.rows[idx].tx.Category

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
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = txStateRecategorize
	m.table.Blur()

	return m, m.form.Init()
}

func (m TransactionsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = txStateBrowse
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

	if m.state == txStateRecord {
		return m, m.recordCmd()
	}

	return m, m.recategorizeCmd()
}

func (m TransactionsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading transactions...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := tableView

	if m.form != nil {
		title := "Record Transaction"
		if m.state == txStateRecategorize {
			title = "Recategorize"
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

func (m *TransactionsModel) flatten() {
	m.rows = m.rows[:0]

	for _, c := range m.cards {
		for _, tx := range c.Transactions {
			m.rows = append(m.rows, txRow{tx: tx, cardName: c.Name})
		}
	}

	sort.Slice(m.rows, func(i, j int) bool {
		return m.rows[i].tx.Timestamp.After(m.rows[j].tx.Timestamp)
	})
}

func (m *TransactionsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.rows))
	for _, r := range m.rows {
		rows = append(rows, table.Row{
			FormatDate(r.tx.Timestamp),
			r.cardName,
			FormatAmount(r.tx.Amount),
			r.tx.Category,
			r.tx.Description,
		})
	}

	m.table.SetRows(rows)
}

func recordStatus(msg txRecordedMsg) string {
	if msg.err != nil {
		return fmt.Sprintf("Error: %v", msg.err)
	}

	res := msg.res
	if !res.Admitted {
		return "Rejected: insufficient funds"
	}

	status := fmt.Sprintf("Recorded %s as %s", FormatAmount(res.Transaction.Amount), res.Transaction.Category)

	if res.Overall.Crossed() {
		status += fmt.Sprintf(" | budget %s (%s remaining)",
			strings.ToLower(res.Overall.State.String()),
			FormatAmount(res.Overall.Remaining))
	}

	if res.Category != nil && res.Category.Crossed {
		status += fmt.Sprintf(" | %s budget exceeded", res.Category.Budget.Category)
	}

	if res.Balance.Crossed {
		status += fmt.Sprintf(" | low balance %s", FormatAmount(res.Balance.Balance))
	}

	if res.NotifyErr != nil {
		status += " | alert delivery failed"
	}

	return status
}

// Messages

type loadTxsMsg struct {
	cards []ledger.Card
	err   error
}

func (m TransactionsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		cards, err := m.svc.Cards(ctx, m.userID)

		return loadTxsMsg{cards: cards, err: err}
	}
}

type txRecordedMsg struct {
	res *engine.Result
	err error
}

func (m TransactionsModel) recordCmd() tea.Cmd {
	cardID, err := uuid.Parse(m.formCardID)
	if err != nil {
		return func() tea.Msg { return txRecordedMsg{err: err} }
	}

	amount, _ := decimal.NewFromString(strings.TrimSpace(m.formAmount))
	params := engine.RecordParams{
		CardID:      cardID,
		Amount:      amount,
		Currency:    money.Currency(m.formCurrency),
		Timestamp:   time.Now().UTC(),
		Description: m.formDesc,
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		res, err := m.svc.RecordTransaction(ctx, m.userID, params)

		return txRecordedMsg{res: res, err: err}
	}
}

func (m TransactionsModel) generateCmd(cardID uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		res, err := m.svc.GenerateTransaction(ctx, m.userID, cardID)

		return txRecordedMsg{res: res, err: err}
	}
}

type txRecategorizedMsg struct {
	err error
}

func (m TransactionsModel) recategorizeCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rows) {
		return nil
	}

	txID := m.rows[idx].tx.ID
	category := m.formCategory

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return txRecategorizedMsg{err: m.svc.Recategorize(ctx, txID, category)}
	}
}
