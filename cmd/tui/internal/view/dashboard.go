package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/spendtrack/internal/budget"
	"github.com/MrJamesThe3rd/spendtrack/internal/engine"
	"github.com/MrJamesThe3rd/spendtrack/internal/spending"
)

type DashboardModel struct {
	CommonModel
	svc    *engine.Service
	userID uuid.UUID

	summary *engine.Summary
	loading bool
	err     error
}

func NewDashboardModel(svc *engine.Service, userID uuid.UUID) DashboardModel {
	return DashboardModel{svc: svc, userID: userID, loading: true}
}

func (m DashboardModel) Title() string     { return "Dashboard" }
func (m DashboardModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadSummaryMsg:
		m.loading = false
		m.summary = msg.summary
		m.err = msg.err

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	return m, nil
}

func (m DashboardModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading dashboard...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	s := m.summary

	var b strings.Builder

	fmt.Fprintf(&b, "This month: %s spent | balance across cards: %s\n\n",
		FormatAmount(s.Total), FormatAmount(s.Balance))

	b.WriteString(overallLine(s.Overall) + "\n\n")

	if len(s.Categories) > 0 {
		b.WriteString("By category:\n")

		for _, c := range s.Categories {
			fmt.Fprintf(&b, "  %-20s %10s\n", c.Category, FormatAmount(c.Amount))
		}

		b.WriteString("\n")
	}

	b.WriteString("Average spend by weekday:\n")

	for day := spending.Monday; day <= spending.Sunday; day++ {
		avg, ok := s.WeekdayAverages[day]
		if !ok {
			continue
		}

		fmt.Fprintf(&b, "  %-10s %10s\n", day.String(), FormatAmount(avg))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func overallLine(d budget.OverallDecision) string {
	switch d.State {
	case budget.Unset:
		return "No overall budget set"
	case budget.Over:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(
			fmt.Sprintf("OVER BUDGET by %s (budget %s)",
				FormatAmount(d.Remaining.Neg()), FormatAmount(d.Budget)))
	case budget.Near:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render(
			fmt.Sprintf("Nearly at budget: %s remaining of %s",
				FormatAmount(d.Remaining), FormatAmount(d.Budget)))
	default:
		return fmt.Sprintf("Within budget: %s remaining of %s",
			FormatAmount(d.Remaining), FormatAmount(d.Budget))
	}
}

// Messages

type loadSummaryMsg struct {
	summary *engine.Summary
	err     error
}

func (m DashboardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		start, end := spending.MonthWindow(time.Now().UTC())
		summary, err := m.svc.Dashboard(ctx, m.userID, start, end)

		return loadSummaryMsg{summary: summary, err: err}
	}
}
