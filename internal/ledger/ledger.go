// Package ledger holds the in-memory domain model: a User aggregate owning
// Cards, CategoryBudgets and a derived SpendingState. The aggregate is the
// unit the engine loads, mutates and saves; persistence lives in store.
package ledger

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/spendtrack/internal/money"
)

// DefaultCategory is the sentinel category for unclassified transactions.
const DefaultCategory = "General"

var (
	ErrNotFound          = errors.New("not found")
	ErrCardNotFound      = errors.New("card not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Transaction is a single card debit. Amount is in the base currency after
// conversion, always >= 0 and rounded to 2 decimal places. Category is never
// empty; unclassified transactions carry DefaultCategory.
type Transaction struct {
	ID          uuid.UUID
	Amount      decimal.Decimal
	Currency    money.Currency
	Timestamp   time.Time
	Description string
	Category    string
	CardID      uuid.UUID
}

// Card is a bank card owned by exactly one user. Transactions are ordered by
// timestamp. Balance never goes negative: a debit that would drive it below
// zero is rejected, not recorded.
type Card struct {
	ID            uuid.UUID
	SortCode      string
	AccountNumber string
	Name          string
	Balance       decimal.Decimal
	OwnerID       uuid.UUID
	Transactions  []Transaction
}

// Admit debits amount from the card balance. It reports false and leaves the
// balance untouched when the debit would make the balance negative.
func (c *Card) Admit(amount decimal.Decimal) bool {
	if c.Balance.Sub(amount).IsNegative() {
		return false
	}

	c.Balance = money.Round2(c.Balance.Sub(amount))

	return true
}

// CategoryBudget is a per-category monthly limit. A user holds at most one
// budget per category.
type CategoryBudget struct {
	Category string
	Budget   decimal.Decimal
	OwnerID  uuid.UUID
}

// SpendingState is the user's overall-budget record plus the monthly rolling
// spending total. The total is a derived projection: it is recomputed from the
// cards whenever they change, never updated incrementally.
type SpendingState struct {
	OwnerID              uuid.UUID
	Budget               *decimal.Decimal
	BudgetSetAt          *time.Time
	TotalAccountSpending decimal.Decimal
}

// User is the aggregate root. Cards, budgets and spending state are held by
// value; mutation goes through the engine, one unit of work at a time.
type User struct {
	ID              uuid.UUID
	Email           string
	FirstName       string
	LastName        string
	Cards           []Card
	CategoryBudgets []CategoryBudget
	Spending        SpendingState
}

// Card returns the user's card with the given id, or nil.
func (u *User) Card(id uuid.UUID) *Card {
	for i := range u.Cards {
		if u.Cards[i].ID == id {
			return &u.Cards[i]
		}
	}

	return nil
}

// CategoryBudget returns the user's budget for the category, or nil.
func (u *User) CategoryBudget(category string) *CategoryBudget {
	for i := range u.CategoryBudgets {
		if u.CategoryBudgets[i].Category == category {
			return &u.CategoryBudgets[i]
		}
	}

	return nil
}

// RemoveCard drops the card and, with it, every transaction it owns. It
// reports whether the card existed.
func (u *User) RemoveCard(id uuid.UUID) bool {
	for i := range u.Cards {
		if u.Cards[i].ID == id {
			u.Cards = append(u.Cards[:i], u.Cards[i+1:]...)
			return true
		}
	}

	return false
}
