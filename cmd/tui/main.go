package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/spendtrack/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/spendtrack/internal/classify"
	classifyStore "github.com/MrJamesThe3rd/spendtrack/internal/classify/store"
	"github.com/MrJamesThe3rd/spendtrack/internal/config"
	"github.com/MrJamesThe3rd/spendtrack/internal/database"
	"github.com/MrJamesThe3rd/spendtrack/internal/engine"
	"github.com/MrJamesThe3rd/spendtrack/internal/ledger"
	ledgerStore "github.com/MrJamesThe3rd/spendtrack/internal/ledger/store"
	"github.com/MrJamesThe3rd/spendtrack/internal/notify"
)

const defaultUserEmail = "demo@spendtrack.local"

type model struct {
	svc    *engine.Service
	userID uuid.UUID

	currentView View

	cardsView        view.CardsModel
	transactionsView view.TransactionsModel
	budgetsView      view.BudgetsModel
	dashboardView    view.DashboardModel
}

type View int

const (
	ViewMenu         View = 0
	ViewCards        View = 1
	ViewTransactions View = 2
	ViewBudgets      View = 3
	ViewDashboard    View = 4
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	var tableSource classify.Repository = classifyStore.New(db)
	if cfg.Classify.TablePath != "" {
		tableSource = classify.FileSource{Path: cfg.Classify.TablePath}
	}

	classifier := classify.NewService(tableSource)
	if err := classifier.Reload(ctx); err != nil {
		slog.Error("failed to load reference table", "error", err)
		os.Exit(1)
	}

	var gen *engine.Generator

	if pool, err := engine.LoadDescriptions(cfg.Generator.PoolPath); err == nil {
		gen, _ = engine.NewGenerator(pool, nil)
	}

	store := ledgerStore.New(db)
	svc := engine.NewService(store, classifier, notify.NewLog(slog.Default()), gen, nil)

	user, err := store.GetUserByEmail(ctx, defaultUserEmail)
	if errors.Is(err, ledger.ErrNotFound) {
		user = &ledger.User{ID: uuid.New(), Email: defaultUserEmail, FirstName: "Demo", LastName: "User"}
		err = store.CreateUser(ctx, user)
	}

	if err != nil {
		slog.Error("failed to load user", "error", err)
		os.Exit(1)
	}

	return model{
		svc:              svc,
		userID:           user.ID,
		currentView:      ViewMenu,
		cardsView:        view.NewCardsModel(svc, user.ID),
		transactionsView: view.NewTransactionsModel(svc, user.ID),
		budgetsView:      view.NewBudgetsModel(svc, user.ID),
		dashboardView:    view.NewDashboardModel(svc, user.ID),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewCards
				m.cardsView = view.NewCardsModel(m.svc, m.userID)

				return m, m.cardsView.Init()
			case "2":
				m.currentView = ViewTransactions
				m.transactionsView = view.NewTransactionsModel(m.svc, m.userID)

				return m, m.transactionsView.Init()
			case "3":
				m.currentView = ViewBudgets
				m.budgetsView = view.NewBudgetsModel(m.svc, m.userID)

				return m, m.budgetsView.Init()
			case "4":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.svc, m.userID)

				return m, m.dashboardView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewCards:
		var newModel tea.Model
		newModel, cmd = m.cardsView.Update(msg)
		m.cardsView = newModel.(view.CardsModel)
	case ViewTransactions:
		var newModel tea.Model
		newModel, cmd = m.transactionsView.Update(msg)
		m.transactionsView = newModel.(view.TransactionsModel)
	case ViewBudgets:
		var newModel tea.Model
		newModel, cmd = m.budgetsView.Update(msg)
		m.budgetsView = newModel.(view.BudgetsModel)
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Spendtrack TUI\n\n" +
				"1. Manage Cards\n" +
				"2. Transactions\n" +
				"3. Budgets\n" +
				"4. Dashboard\n\n" +
				"q. Quit",
		)
	case ViewCards:
		return m.cardsView.View()
	case ViewTransactions:
		return m.transactionsView.View()
	case ViewBudgets:
		return m.budgetsView.View()
	case ViewDashboard:
		return m.dashboardView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
