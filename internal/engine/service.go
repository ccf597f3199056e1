// Package engine processes one spending event at a time: admit a
// transaction, classify it, refresh the derived totals and evaluate budgets.
// Writes for a given user are assumed serialized by the caller; nothing here
// guards against two units of work racing on the same aggregate.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/spendtrack/internal/budget"
	"github.com/MrJamesThe3rd/spendtrack/internal/ledger"
	"github.com/MrJamesThe3rd/spendtrack/internal/money"
	"github.com/MrJamesThe3rd/spendtrack/internal/spending"
)

var (
	ErrBudgetUnchanged = errors.New("budget unchanged")
	ErrEmptyCategory   = errors.New("category must not be empty")
	ErrEmptyPool       = errors.New("description pool is empty")
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=engine
type Repository interface {
	GetUser(ctx context.Context, id uuid.UUID) (*ledger.User, error)
	CreateCard(ctx context.Context, card *ledger.Card) error
	DeleteCard(ctx context.Context, id uuid.UUID) error
	CreateTransaction(ctx context.Context, tx *ledger.Transaction) error
	UpdateCardBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error
	UpdateTransactionCategory(ctx context.Context, id uuid.UUID, category string) error
	UpdateSpendingState(ctx context.Context, state ledger.SpendingState) error
	UpsertCategoryBudget(ctx context.Context, cb ledger.CategoryBudget) error
}

// Classifier assigns a category to a transaction description.
type Classifier interface {
	Classify(description string) string
}

// Notifier receives crossed budget decisions. Implementations own message
// composition and delivery; the engine only hands over the decision value.
type Notifier interface {
	BudgetAlert(ctx context.Context, user *ledger.User, d budget.OverallDecision) error
	CategoryAlert(ctx context.Context, user *ledger.User, d budget.CategoryDecision) error
	BalanceAlert(ctx context.Context, user *ledger.User, d budget.BalanceDecision) error
}

type Service struct {
	repo       Repository
	classifier Classifier
	notifier   Notifier
	gen        *Generator
	now        func() time.Time
}

// NewService wires the engine. now is the reference-instant source; pass nil
// for the wall clock.
func NewService(repo Repository, classifier Classifier, notifier Notifier, gen *Generator, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}

	return &Service{
		repo:       repo,
		classifier: classifier,
		notifier:   notifier,
		gen:        gen,
		now:        now,
	}
}

// RecordParams describes a candidate transaction before admission.
type RecordParams struct {
	CardID      uuid.UUID
	Amount      decimal.Decimal
	Currency    money.Currency
	Timestamp   time.Time
	Description string
}

// Result is the outcome of one admission unit of work.
//
// NotifyErr carries delivery failures from the notification sink; the unit of
// work itself has still succeeded when it is non-nil, so callers can flash or
// log it without rolling anything back.
type Result struct {
	Admitted    bool
	Transaction *ledger.Transaction
	Overall     budget.OverallDecision
	Category    *budget.CategoryDecision
	Balance     budget.BalanceDecision
	NotifyErr   error
}

// RecordTransaction runs the full admission flow: convert the amount to the
// base currency, check the balance guard, classify the description, append
// the transaction, refresh the monthly total and evaluate both budget types
// plus the card's remaining balance.
//
// A candidate that would drive the card balance negative is rejected outright:
// nothing is recorded, classified or aggregated, and the returned Result has
// Admitted=false with a nil error.
func (s *Service) RecordTransaction(ctx context.Context, userID uuid.UUID, p RecordParams) (*Result, error) {
	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading user: %w", err)
	}

	card := user.Card(p.CardID)
	if card == nil {
		return nil, ledger.ErrCardNotFound
	}

	amount, err := money.Convert(p.Amount, p.Currency)
	if err != nil {
		return nil, fmt.Errorf("normalizing amount: %w", err)
	}

	if !card.Admit(amount) {
		return &Result{Admitted: false}, nil
	}

	tx := ledger.Transaction{
		ID:          uuid.New(),
		Amount:      amount,
		Currency:    p.Currency,
		Timestamp:   p.Timestamp,
		Description: p.Description,
		Category:    s.classifier.Classify(p.Description),
		CardID:      card.ID,
	}

	card.Transactions = append(card.Transactions, tx)

	now := s.now()
	refreshSpending(user, now)

	if err := s.repo.CreateTransaction(ctx, &tx); err != nil {
		return nil, fmt.Errorf("creating transaction: %w", err)
	}

	if err := s.repo.UpdateCardBalance(ctx, card.ID, card.Balance); err != nil {
		return nil, fmt.Errorf("updating card balance: %w", err)
	}

	if err := s.repo.UpdateSpendingState(ctx, user.Spending); err != nil {
		return nil, fmt.Errorf("updating spending state: %w", err)
	}

	res := &Result{
		Admitted:    true,
		Transaction: &tx,
		Overall:     budget.EvaluateOverall(user.Spending),
		Balance:     budget.EvaluateBalance(card),
	}

	if d, ok := budget.EvaluateCategory(user, tx, now); ok {
		res.Category = &d
	}

	res.NotifyErr = s.notify(ctx, user, res)

	return res, nil
}

// notify forwards crossed decisions to the sink. Failures are joined and
// reported, never escalated: aggregated state stays consistent regardless of
// what the sink does.
func (s *Service) notify(ctx context.Context, user *ledger.User, res *Result) error {
	var errs []error

	if res.Overall.Crossed() {
		if err := s.notifier.BudgetAlert(ctx, user, res.Overall); err != nil {
			errs = append(errs, fmt.Errorf("budget alert: %w", err))
		}
	}

	if res.Category != nil && res.Category.Crossed {
		if err := s.notifier.CategoryAlert(ctx, user, *res.Category); err != nil {
			errs = append(errs, fmt.Errorf("category alert: %w", err))
		}
	}

	if res.Balance.Crossed {
		if err := s.notifier.BalanceAlert(ctx, user, res.Balance); err != nil {
			errs = append(errs, fmt.Errorf("balance alert: %w", err))
		}
	}

	return errors.Join(errs...)
}

// GenerateTransaction records a randomly generated demo transaction on the
// card.
func (s *Service) GenerateTransaction(ctx context.Context, userID, cardID uuid.UUID) (*Result, error) {
	if s.gen == nil {
		return nil, ErrEmptyPool
	}

	return s.RecordTransaction(ctx, userID, s.gen.Params(cardID, s.now()))
}

// Recategorize sets a transaction's category by hand.
func (s *Service) Recategorize(ctx context.Context, txID uuid.UUID, category string) error {
	if strings.TrimSpace(category) == "" {
		return ErrEmptyCategory
	}

	if err := s.repo.UpdateTransactionCategory(ctx, txID, category); err != nil {
		return fmt.Errorf("updating category: %w", err)
	}

	return nil
}

// SetOverallBudget sets the user's overall monthly budget and stamps the
// change. Setting the value already configured is rejected.
func (s *Service) SetOverallBudget(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (ledger.SpendingState, error) {
	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return ledger.SpendingState{}, fmt.Errorf("loading user: %w", err)
	}

	if user.Spending.Budget != nil && user.Spending.Budget.Equal(amount) {
		return ledger.SpendingState{}, ErrBudgetUnchanged
	}

	now := s.now()
	user.Spending.Budget = &amount
	user.Spending.BudgetSetAt = &now

	if err := s.repo.UpdateSpendingState(ctx, user.Spending); err != nil {
		return ledger.SpendingState{}, fmt.Errorf("updating spending state: %w", err)
	}

	return user.Spending, nil
}

// SetCategoryBudget creates or updates the user's budget for one category,
// keeping at most one budget per (user, category). Setting the value already
// configured is rejected.
func (s *Service) SetCategoryBudget(ctx context.Context, userID uuid.UUID, category string, amount decimal.Decimal) (ledger.CategoryBudget, error) {
	if strings.TrimSpace(category) == "" {
		return ledger.CategoryBudget{}, ErrEmptyCategory
	}

	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return ledger.CategoryBudget{}, fmt.Errorf("loading user: %w", err)
	}

	cb := ledger.CategoryBudget{Category: category, Budget: amount, OwnerID: userID}

	if existing := user.CategoryBudget(category); existing != nil {
		if existing.Budget.Equal(amount) {
			return ledger.CategoryBudget{}, ErrBudgetUnchanged
		}

		existing.Budget = amount
	} else {
		user.CategoryBudgets = append(user.CategoryBudgets, cb)
	}

	if err := s.repo.UpsertCategoryBudget(ctx, cb); err != nil {
		return ledger.CategoryBudget{}, fmt.Errorf("upserting category budget: %w", err)
	}

	return cb, nil
}

// CardParams describes a card to add.
type CardParams struct {
	SortCode      string
	AccountNumber string
	Name          string
	Balance       decimal.Decimal
}

func (s *Service) AddCard(ctx context.Context, userID uuid.UUID, p CardParams) (*ledger.Card, error) {
	card := &ledger.Card{
		ID:            uuid.New(),
		SortCode:      p.SortCode,
		AccountNumber: p.AccountNumber,
		Name:          p.Name,
		Balance:       money.Round2(p.Balance),
		OwnerID:       userID,
	}

	if err := s.repo.CreateCard(ctx, card); err != nil {
		return nil, fmt.Errorf("creating card: %w", err)
	}

	return card, nil
}

// Cards lists the user's cards with their transactions.
func (s *Service) Cards(ctx context.Context, userID uuid.UUID) ([]ledger.Card, error) {
	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading user: %w", err)
	}

	return user.Cards, nil
}

// Budgets returns the user's overall budget record and category budgets.
func (s *Service) Budgets(ctx context.Context, userID uuid.UUID) (ledger.SpendingState, []ledger.CategoryBudget, error) {
	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return ledger.SpendingState{}, nil, fmt.Errorf("loading user: %w", err)
	}

	return user.Spending, user.CategoryBudgets, nil
}

// RemoveCard deletes a card together with its transactions and refreshes the
// user's monthly total.
func (s *Service) RemoveCard(ctx context.Context, userID, cardID uuid.UUID) error {
	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("loading user: %w", err)
	}

	if !user.RemoveCard(cardID) {
		return ledger.ErrCardNotFound
	}

	refreshSpending(user, s.now())

	if err := s.repo.DeleteCard(ctx, cardID); err != nil {
		return fmt.Errorf("deleting card: %w", err)
	}

	if err := s.repo.UpdateSpendingState(ctx, user.Spending); err != nil {
		return fmt.Errorf("updating spending state: %w", err)
	}

	return nil
}

// Summary is the aggregated view for dashboards.
type Summary struct {
	Total           decimal.Decimal
	WeekdayAverages map[spending.Weekday]decimal.Decimal
	Categories      []spending.CategoryAmount
	Balance         decimal.Decimal
	Overall         budget.OverallDecision
}

// Dashboard aggregates the user's transactions between start and end
// (inclusive) and evaluates the overall budget against a freshly recomputed
// monthly total.
func (s *Service) Dashboard(ctx context.Context, userID uuid.UUID, start, end time.Time) (*Summary, error) {
	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading user: %w", err)
	}

	refreshSpending(user, s.now())

	txs := spending.TransactionsBetween(user, start, end)

	return &Summary{
		Total:           spending.Total(txs),
		WeekdayAverages: spending.WeekdayAverages(txs),
		Categories:      spending.CategoryTotals(txs),
		Balance:         spending.TotalBalance(user),
		Overall:         budget.EvaluateOverall(user.Spending),
	}, nil
}

// refreshSpending recomputes the derived monthly total from the cards.
func refreshSpending(u *ledger.User, now time.Time) {
	total := decimal.Zero
	for i := range u.Cards {
		total = total.Add(spending.CardMonthlyTotal(&u.Cards[i], now))
	}

	u.Spending.TotalAccountSpending = money.Round2(total)
}
