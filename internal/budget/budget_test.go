package budget_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/spendtrack/internal/budget"
	"github.com/MrJamesThe3rd/spendtrack/internal/ledger"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestEvaluateOverall(t *testing.T) {
	type testCase struct {
		name     string
		budget   *decimal.Decimal
		spending string
		want     budget.OverallState
	}

	b := dec("100")

	tests := []testCase{
		{
			name:     "Unset",
			budget:   nil,
			spending: "500",
			want:     budget.Unset,
		},
		{
			name:     "Under",
			budget:   &b,
			spending: "49.99",
			want:     budget.Under,
		},
		{
			name:     "NearAtExactThreshold",
			budget:   &b,
			spending: "50",
			want:     budget.Near,
		},
		{
			name:     "NearWellInside",
			budget:   &b,
			spending: "55",
			want:     budget.Near,
		},
		{
			name:     "NearAtFullBudget",
			budget:   &b,
			spending: "100",
			want:     budget.Near,
		},
		{
			name:     "OverTakesPriority",
			budget:   &b,
			spending: "101",
			want:     budget.Over,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := budget.EvaluateOverall(ledger.SpendingState{
				Budget:               tt.budget,
				TotalAccountSpending: dec(tt.spending),
			})

			assert.Equal(t, tt.want, d.State)
			assert.Equal(t, tt.want == budget.Near || tt.want == budget.Over, d.Crossed())
		})
	}
}

func TestEvaluateOverall_CrossesExactlyAtCrossing(t *testing.T) {
	b := dec("100")
	state := ledger.SpendingState{Budget: &b}

	// Spending climbs; Over appears exactly when the total passes the budget
	// and stays Over afterwards.
	steps := []struct {
		total string
		want  budget.OverallState
	}{
		{"30", budget.Under},
		{"49", budget.Under},
		{"60", budget.Near},
		{"100", budget.Near},
		{"101", budget.Over},
		{"150", budget.Over},
	}

	for _, step := range steps {
		state.TotalAccountSpending = dec(step.total)
		assert.Equal(t, step.want, budget.EvaluateOverall(state).State, "total %s", step.total)
	}
}

func categoryFixture(now time.Time) *ledger.User {
	return &ledger.User{
		CategoryBudgets: []ledger.CategoryBudget{
			{Category: "food", Budget: dec("100")},
			{Category: "travel", Budget: dec("10")},
		},
		Cards: []ledger.Card{{Transactions: []ledger.Transaction{
			{Category: "food", Amount: dec("60"), Timestamp: now.AddDate(0, 0, -1)},
			{Category: "food", Amount: dec("45"), Timestamp: now},
			{Category: "travel", Amount: dec("99"), Timestamp: now.AddDate(0, 0, -2)},
		}}},
	}
}

func TestEvaluateCategory(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	user := categoryFixture(now)

	newTx := ledger.Transaction{Category: "food", Amount: dec("45"), Timestamp: now}

	d, ok := budget.EvaluateCategory(user, newTx, now)
	require.True(t, ok)
	assert.True(t, d.Crossed, "105 spent against a budget of 100")
	assert.Equal(t, "105.00", d.Spending.StringFixed(2))
	assert.Equal(t, "food", d.Budget.Category)
}

func TestEvaluateCategory_ScopedToTransactionCategory(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	user := categoryFixture(now)

	// The travel budget is independently blown (99 against 10), but a food
	// transaction must never surface a travel decision.
	newTx := ledger.Transaction{Category: "food", Amount: dec("1"), Timestamp: now}

	d, ok := budget.EvaluateCategory(user, newTx, now)
	require.True(t, ok)
	assert.Equal(t, "food", d.Budget.Category)
}

func TestEvaluateCategory_NoDecision(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	user := categoryFixture(now)

	t.Run("OutsideCurrentMonth", func(t *testing.T) {
		old := ledger.Transaction{Category: "food", Amount: dec("5"), Timestamp: now.AddDate(0, -1, 0)}
		_, ok := budget.EvaluateCategory(user, old, now)
		assert.False(t, ok)
	})

	t.Run("NoBudgetForCategory", func(t *testing.T) {
		tx := ledger.Transaction{Category: "entertainment", Amount: dec("5"), Timestamp: now}
		_, ok := budget.EvaluateCategory(user, tx, now)
		assert.False(t, ok)
	})
}

func TestEvaluateCategory_ExactBudgetIsNotCrossed(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	user := &ledger.User{
		CategoryBudgets: []ledger.CategoryBudget{{Category: "food", Budget: dec("100")}},
		Cards: []ledger.Card{{Transactions: []ledger.Transaction{
			{Category: "food", Amount: dec("100"), Timestamp: now},
		}}},
	}

	d, ok := budget.EvaluateCategory(user, user.Cards[0].Transactions[0], now)
	require.True(t, ok)
	assert.False(t, d.Crossed, "budget - spending == 0 is not a crossing")
}

func TestEvaluateBalance(t *testing.T) {
	type testCase struct {
		name    string
		balance string
		want    bool
	}

	tests := []testCase{
		{
			name:    "WellAboveThreshold",
			balance: "500.00",
			want:    false,
		},
		{
			name:    "JustAboveThreshold",
			balance: "50.01",
			want:    false,
		},
		{
			name:    "ExactlyAtThreshold",
			balance: "50.00",
			want:    true,
		},
		{
			name:    "BelowThreshold",
			balance: "12.34",
			want:    true,
		},
		{
			name:    "Zero",
			balance: "0.00",
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := &ledger.Card{
				Name:    "Everyday",
				Balance: dec(tt.balance),
			}

			d := budget.EvaluateBalance(card)

			assert.Equal(t, tt.want, d.Crossed)
			assert.Equal(t, card.ID, d.CardID)
			assert.Equal(t, "Everyday", d.CardName)
			assert.True(t, d.Balance.Equal(card.Balance))
		})
	}
}
