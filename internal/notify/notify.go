// Package notify holds the sinks that crossed budget and balance decisions
// are handed to.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/MrJamesThe3rd/spendtrack/internal/budget"
	"github.com/MrJamesThe3rd/spendtrack/internal/engine"
	"github.com/MrJamesThe3rd/spendtrack/internal/ledger"
)

// Log writes alerts to the process log. It is the fallback sink when no
// message broker is configured.
type Log struct {
	logger *slog.Logger
}

func NewLog(logger *slog.Logger) *Log {
	if logger == nil {
		logger = slog.Default()
	}

	return &Log{logger: logger}
}

func (l *Log) BudgetAlert(ctx context.Context, user *ledger.User, d budget.OverallDecision) error {
	l.logger.WarnContext(ctx, "monthly budget crossed",
		"user_id", user.ID,
		"state", d.State.String(),
		"budget", d.Budget.StringFixed(2),
		"spending", d.Spending.StringFixed(2),
		"remaining", d.Remaining.StringFixed(2),
	)

	return nil
}

func (l *Log) CategoryAlert(ctx context.Context, user *ledger.User, d budget.CategoryDecision) error {
	l.logger.WarnContext(ctx, "category budget crossed",
		"user_id", user.ID,
		"category", d.Budget.Category,
		"budget", d.Budget.Budget.StringFixed(2),
		"spending", d.Spending.StringFixed(2),
	)

	return nil
}

func (l *Log) BalanceAlert(ctx context.Context, user *ledger.User, d budget.BalanceDecision) error {
	l.logger.WarnContext(ctx, "card balance low",
		"user_id", user.ID,
		"card_id", d.CardID,
		"card", d.CardName,
		"balance", d.Balance.StringFixed(2),
	)

	return nil
}

// Multi fans an alert out to every sink and joins the failures, so one broken
// sink never silences the others.
type Multi []engine.Notifier

func (m Multi) BudgetAlert(ctx context.Context, user *ledger.User, d budget.OverallDecision) error {
	var errs []error

	for _, sink := range m {
		if err := sink.BudgetAlert(ctx, user, d); err != nil {
			errs = append(errs, fmt.Errorf("budget alert sink: %w", err))
		}
	}

	return errors.Join(errs...)
}

func (m Multi) CategoryAlert(ctx context.Context, user *ledger.User, d budget.CategoryDecision) error {
	var errs []error

	for _, sink := range m {
		if err := sink.CategoryAlert(ctx, user, d); err != nil {
			errs = append(errs, fmt.Errorf("category alert sink: %w", err))
		}
	}

	return errors.Join(errs...)
}

func (m Multi) BalanceAlert(ctx context.Context, user *ledger.User, d budget.BalanceDecision) error {
	var errs []error

	for _, sink := range m {
		if err := sink.BalanceAlert(ctx, user, d); err != nil {
			errs = append(errs, fmt.Errorf("balance alert sink: %w", err))
		}
	}

	return errors.Join(errs...)
}
