package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/spendtrack/internal/budget"
	"github.com/MrJamesThe3rd/spendtrack/internal/ledger"
)

// Routing keys for the alert kinds.
const (
	RouteOverall  = "budget.overall"
	RouteCategory = "budget.category"
	RouteBalance  = "budget.balance"
)

// OverallAlertMessage is published when the user's overall monthly budget is
// crossed. Amounts travel as fixed-point strings so consumers never touch
// binary floats.
type OverallAlertMessage struct {
	UserID    uuid.UUID `json:"user_id"`
	State     string    `json:"state"`
	Budget    string    `json:"budget"`
	Spending  string    `json:"spending"`
	Remaining string    `json:"remaining"`
	Timestamp time.Time `json:"timestamp"`
}

func NewOverallAlertMessage(user *ledger.User, d budget.OverallDecision) *OverallAlertMessage {
	return &OverallAlertMessage{
		UserID:    user.ID,
		State:     d.State.String(),
		Budget:    d.Budget.StringFixed(2),
		Spending:  d.Spending.StringFixed(2),
		Remaining: d.Remaining.StringFixed(2),
		Timestamp: time.Now(),
	}
}

func (m *OverallAlertMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// CategoryAlertMessage is published when a category's monthly budget is
// crossed by a new transaction in that category.
type CategoryAlertMessage struct {
	UserID    uuid.UUID `json:"user_id"`
	Category  string    `json:"category"`
	Budget    string    `json:"budget"`
	Spending  string    `json:"spending"`
	Timestamp time.Time `json:"timestamp"`
}

func NewCategoryAlertMessage(user *ledger.User, d budget.CategoryDecision) *CategoryAlertMessage {
	return &CategoryAlertMessage{
		UserID:    user.ID,
		Category:  d.Budget.Category,
		Budget:    d.Budget.Budget.StringFixed(2),
		Spending:  d.Spending.StringFixed(2),
		Timestamp: time.Now(),
	}
}

func (m *CategoryAlertMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// BalanceAlertMessage is published when a debit leaves the card balance at or
// below the low-balance threshold.
type BalanceAlertMessage struct {
	UserID    uuid.UUID `json:"user_id"`
	CardID    uuid.UUID `json:"card_id"`
	CardName  string    `json:"card_name"`
	Balance   string    `json:"balance"`
	Timestamp time.Time `json:"timestamp"`
}

func NewBalanceAlertMessage(user *ledger.User, d budget.BalanceDecision) *BalanceAlertMessage {
	return &BalanceAlertMessage{
		UserID:    user.ID,
		CardID:    d.CardID,
		CardName:  d.CardName,
		Balance:   d.Balance.StringFixed(2),
		Timestamp: time.Now(),
	}
}

func (m *BalanceAlertMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}
