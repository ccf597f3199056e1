// Package budget turns aggregated spending into threshold decisions. It is
// pure: decisions are values, and turning a crossed decision into a message
// is the notifier's job, never this package's.
package budget

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/spendtrack/internal/ledger"
	"github.com/MrJamesThe3rd/spendtrack/internal/money"
	"github.com/MrJamesThe3rd/spendtrack/internal/spending"
)

// OverallState is the state of the overall monthly budget after an
// evaluation.
type OverallState int

const (
	// Unset: the user has not configured an overall budget.
	Unset OverallState = iota
	// Under: spending is comfortably below the budget.
	Under
	// Near: at most NearThreshold currency units remain.
	Near
	// Over: spending exceeds the budget.
	Over
)

func (s OverallState) String() string {
	switch s {
	case Unset:
		return "unset"
	case Under:
		return "under"
	case Near:
		return "near"
	case Over:
		return "over"
	}

	return "unknown"
}

// NearThreshold is the remaining amount, in base currency units, at or below
// which the overall budget counts as nearly spent.
var NearThreshold = decimal.NewFromInt(50)

// OverallDecision is the outcome of evaluating the overall budget.
type OverallDecision struct {
	State     OverallState
	Budget    decimal.Decimal
	Spending  decimal.Decimal
	Remaining decimal.Decimal
}

// Crossed reports whether the decision should reach the notification sink.
func (d OverallDecision) Crossed() bool {
	return d.State == Near || d.State == Over
}

// EvaluateOverall compares the recomputed monthly total against the overall
// budget. Over is checked before Near: a negative remainder is over budget,
// not merely near it.
func EvaluateOverall(s ledger.SpendingState) OverallDecision {
	if s.Budget == nil {
		return OverallDecision{State: Unset, Spending: s.TotalAccountSpending}
	}

	remaining := s.Budget.Sub(s.TotalAccountSpending)

	d := OverallDecision{
		Budget:    *s.Budget,
		Spending:  s.TotalAccountSpending,
		Remaining: remaining,
	}

	switch {
	case remaining.IsNegative():
		d.State = Over
	case remaining.LessThanOrEqual(NearThreshold):
		d.State = Near
	default:
		d.State = Under
	}

	return d
}

// LowBalanceThreshold is the card balance, in base currency units, at or
// below which a balance alert goes out.
var LowBalanceThreshold = decimal.NewFromInt(50)

// BalanceDecision is the outcome of checking a card's remaining balance
// after a debit.
type BalanceDecision struct {
	Crossed  bool
	CardID   uuid.UUID
	CardName string
	Balance  decimal.Decimal
}

// EvaluateBalance checks the card's balance against LowBalanceThreshold.
func EvaluateBalance(c *ledger.Card) BalanceDecision {
	return BalanceDecision{
		Crossed:  c.Balance.LessThanOrEqual(LowBalanceThreshold),
		CardID:   c.ID,
		CardName: c.Name,
		Balance:  c.Balance,
	}
}

// CategoryDecision is the outcome of evaluating the budget of one category.
type CategoryDecision struct {
	Crossed  bool
	Budget   ledger.CategoryBudget
	Spending decimal.Decimal
}

// EvaluateCategory evaluates the budget of the transaction's own category.
// Other categories are not re-evaluated on this event.
//
// It reports ok=false, with no decision at all, when the transaction is
// outside the calendar month of now or the user has no budget for its
// category.
func EvaluateCategory(u *ledger.User, tx ledger.Transaction, now time.Time) (CategoryDecision, bool) {
	ts, ref := tx.Timestamp.UTC(), now.UTC()
	if ts.Year() != ref.Year() || ts.Month() != ref.Month() {
		return CategoryDecision{}, false
	}

	cb := u.CategoryBudget(tx.Category)
	if cb == nil {
		return CategoryDecision{}, false
	}

	spent := spending.CategoryMonthlySpending(u, cb.Category, now)

	return CategoryDecision{
		Crossed:  cb.Budget.Sub(spent).IsNegative(),
		Budget:   *cb,
		Spending: money.Round2(spent),
	}, true
}
