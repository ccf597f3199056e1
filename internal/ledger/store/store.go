package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/spendtrack/internal/ledger"
	"github.com/MrJamesThe3rd/spendtrack/internal/money"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanCard reads a card row from the scanner.
// Expected column order: id, sort_code, account_number, name, balance, owner_id
func scanCard(s scanner) (*ledger.Card, error) {
	var card ledger.Card

	if err := s.Scan(
		&card.ID, &card.SortCode, &card.AccountNumber, &card.Name,
		&card.Balance, &card.OwnerID,
	); err != nil {
		return nil, err
	}

	return &card, nil
}

// scanTransaction reads a transaction row from the scanner.
// Expected column order: id, amount, currency, timestamp, description, category, card_id
func scanTransaction(s scanner) (*ledger.Transaction, error) {
	var tx ledger.Transaction

	var currency string

	if err := s.Scan(
		&tx.ID, &tx.Amount, &currency, &tx.Timestamp,
		&tx.Description, &tx.Category, &tx.CardID,
	); err != nil {
		return nil, err
	}

	tx.Currency = money.Currency(currency)

	return &tx, nil
}

// GetUser loads the full aggregate: the user row, its cards with their
// transactions ordered by timestamp, its category budgets and its spending
// state.
func (s *Store) GetUser(ctx context.Context, id uuid.UUID) (*ledger.User, error) {
	var user ledger.User

	query := `
		SELECT id, email, first_name, last_name
		FROM users
		WHERE id = $1
	`

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.FirstName, &user.LastName,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ledger.ErrNotFound
		}

		return nil, fmt.Errorf("getting user: %w", err)
	}

	if user.Cards, err = s.listCards(ctx, id); err != nil {
		return nil, err
	}

	if user.CategoryBudgets, err = s.listCategoryBudgets(ctx, id); err != nil {
		return nil, err
	}

	if user.Spending, err = s.getSpendingState(ctx, id); err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*ledger.User, error) {
	query := `SELECT id FROM users WHERE email = $1`

	var id uuid.UUID
	if err := s.db.QueryRowContext(ctx, query, email).Scan(&id); err != nil {
		if err == sql.ErrNoRows {
			return nil, ledger.ErrNotFound
		}

		return nil, fmt.Errorf("getting user by email: %w", err)
	}

	return s.GetUser(ctx, id)
}

func (s *Store) CreateUser(ctx context.Context, user *ledger.User) error {
	query := `
		INSERT INTO users (id, email, first_name, last_name)
		VALUES ($1, $2, $3, $4)
	`

	if _, err := s.db.ExecContext(ctx, query,
		user.ID, user.Email, user.FirstName, user.LastName,
	); err != nil {
		return fmt.Errorf("creating user: %w", err)
	}

	stateQuery := `
		INSERT INTO spending_states (owner_id, total_account_spending)
		VALUES ($1, 0)
		ON CONFLICT (owner_id) DO NOTHING
	`

	if _, err := s.db.ExecContext(ctx, stateQuery, user.ID); err != nil {
		return fmt.Errorf("creating spending state: %w", err)
	}

	return nil
}

func (s *Store) listCards(ctx context.Context, ownerID uuid.UUID) ([]ledger.Card, error) {
	query := `
		SELECT id, sort_code, account_number, name, balance, owner_id
		FROM cards
		WHERE owner_id = $1
		ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing cards: %w", err)
	}
	defer rows.Close()

	var cards []ledger.Card

	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning card: %w", err)
		}

		cards = append(cards, *card)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating card rows: %w", err)
	}

	for i := range cards {
		if cards[i].Transactions, err = s.listTransactions(ctx, cards[i].ID); err != nil {
			return nil, err
		}
	}

	return cards, nil
}

func (s *Store) listTransactions(ctx context.Context, cardID uuid.UUID) ([]ledger.Transaction, error) {
	query := `
		SELECT id, amount, currency, timestamp, description, category, card_id
		FROM transactions
		WHERE card_id = $1
		ORDER BY timestamp ASC
	`

	rows, err := s.db.QueryContext(ctx, query, cardID)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []ledger.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, *tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction rows: %w", err)
	}

	return txs, nil
}

func (s *Store) listCategoryBudgets(ctx context.Context, ownerID uuid.UUID) ([]ledger.CategoryBudget, error) {
	query := `
		SELECT category, budget, owner_id
		FROM category_budgets
		WHERE owner_id = $1
		ORDER BY category ASC
	`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing category budgets: %w", err)
	}
	defer rows.Close()

	var budgets []ledger.CategoryBudget

	for rows.Next() {
		var cb ledger.CategoryBudget
		if err := rows.Scan(&cb.Category, &cb.Budget, &cb.OwnerID); err != nil {
			return nil, fmt.Errorf("scanning category budget: %w", err)
		}

		budgets = append(budgets, cb)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating category budget rows: %w", err)
	}

	return budgets, nil
}

func (s *Store) getSpendingState(ctx context.Context, ownerID uuid.UUID) (ledger.SpendingState, error) {
	query := `
		SELECT owner_id, budget, budget_set_at, total_account_spending
		FROM spending_states
		WHERE owner_id = $1
	`

	var state ledger.SpendingState

	var budget decimal.NullDecimal

	err := s.db.QueryRowContext(ctx, query, ownerID).Scan(
		&state.OwnerID, &budget, &state.BudgetSetAt, &state.TotalAccountSpending,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			// A user without a row has never set a budget.
			return ledger.SpendingState{OwnerID: ownerID}, nil
		}

		return ledger.SpendingState{}, fmt.Errorf("getting spending state: %w", err)
	}

	if budget.Valid {
		state.Budget = &budget.Decimal
	}

	return state, nil
}

func (s *Store) CreateCard(ctx context.Context, card *ledger.Card) error {
	query := `
		INSERT INTO cards (id, sort_code, account_number, name, balance, owner_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`

	if _, err := s.db.ExecContext(ctx, query,
		card.ID, card.SortCode, card.AccountNumber, card.Name,
		card.Balance, card.OwnerID,
	); err != nil {
		return fmt.Errorf("creating card: %w", err)
	}

	return nil
}

// DeleteCard removes the card and every transaction it owns in one database
// transaction.
func (s *Store) DeleteCard(ctx context.Context, id uuid.UUID) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	if _, err := dbTx.ExecContext(ctx, `DELETE FROM transactions WHERE card_id = $1`, id); err != nil {
		return fmt.Errorf("deleting card transactions: %w", err)
	}

	res, err := dbTx.ExecContext(ctx, `DELETE FROM cards WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting card: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ledger.ErrCardNotFound
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) CreateTransaction(ctx context.Context, tx *ledger.Transaction) error {
	query := `
		INSERT INTO transactions (id, amount, currency, timestamp, description, category, card_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	if _, err := s.db.ExecContext(ctx, query,
		tx.ID, tx.Amount, string(tx.Currency), tx.Timestamp,
		tx.Description, tx.Category, tx.CardID,
	); err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

func (s *Store) UpdateCardBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	query := `
		UPDATE cards
		SET balance = $1
		WHERE id = $2
	`

	res, err := s.db.ExecContext(ctx, query, balance, id)
	if err != nil {
		return fmt.Errorf("updating card balance: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ledger.ErrCardNotFound
	}

	return nil
}

func (s *Store) UpdateTransactionCategory(ctx context.Context, id uuid.UUID, category string) error {
	query := `
		UPDATE transactions
		SET category = $1
		WHERE id = $2
	`

	res, err := s.db.ExecContext(ctx, query, category, id)
	if err != nil {
		return fmt.Errorf("updating transaction category: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ledger.ErrNotFound
	}

	return nil
}

func (s *Store) UpdateSpendingState(ctx context.Context, state ledger.SpendingState) error {
	query := `
		INSERT INTO spending_states (owner_id, budget, budget_set_at, total_account_spending)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (owner_id) DO UPDATE
		SET budget = EXCLUDED.budget,
			budget_set_at = EXCLUDED.budget_set_at,
			total_account_spending = EXCLUDED.total_account_spending
	`

	var budget decimal.NullDecimal
	if state.Budget != nil {
		budget = decimal.NullDecimal{Decimal: *state.Budget, Valid: true}
	}

	if _, err := s.db.ExecContext(ctx, query,
		state.OwnerID, budget, state.BudgetSetAt, state.TotalAccountSpending,
	); err != nil {
		return fmt.Errorf("updating spending state: %w", err)
	}

	return nil
}

func (s *Store) UpsertCategoryBudget(ctx context.Context, cb ledger.CategoryBudget) error {
	query := `
		INSERT INTO category_budgets (owner_id, category, budget)
		VALUES ($1, $2, $3)
		ON CONFLICT (owner_id, category) DO UPDATE
		SET budget = EXCLUDED.budget
	`

	if _, err := s.db.ExecContext(ctx, query, cb.OwnerID, cb.Category, cb.Budget); err != nil {
		return fmt.Errorf("upserting category budget: %w", err)
	}

	return nil
}
