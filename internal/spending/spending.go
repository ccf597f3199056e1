// Package spending aggregates transactions into the totals the budget
// evaluator and the dashboards consume. Every function is pure and read-only;
// anything scoped to "the current month" takes the reference instant
// explicitly instead of consulting the wall clock.
package spending

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/spendtrack/internal/ledger"
	"github.com/MrJamesThe3rd/spendtrack/internal/money"
)

// Weekday follows the aggregation convention 0=Monday .. 6=Sunday.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

func (d Weekday) String() string {
	return [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}[d]
}

// WeekdayOf converts a timestamp's weekday to the Monday-based convention.
func WeekdayOf(t time.Time) Weekday {
	return Weekday((int(t.UTC().Weekday()) + 6) % 7)
}

// CategoryAmount pairs a category with a summed amount. Slices of it keep
// first-seen category order.
type CategoryAmount struct {
	Category string
	Amount   decimal.Decimal
}

// Total sums transaction amounts, rounded to 2 decimal places.
func Total(txs []ledger.Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, tx := range txs {
		sum = sum.Add(tx.Amount)
	}

	return money.Round2(sum)
}

// WeekdayAverages averages the amount per calendar weekday over the number of
// transactions seen on that weekday, not over calendar days elapsed.
func WeekdayAverages(txs []ledger.Transaction) map[Weekday]decimal.Decimal {
	sums := make(map[Weekday]decimal.Decimal)
	counts := make(map[Weekday]int64)

	for _, tx := range txs {
		day := WeekdayOf(tx.Timestamp)
		sums[day] = sums[day].Add(tx.Amount)
		counts[day]++
	}

	averages := make(map[Weekday]decimal.Decimal, len(sums))
	for day, sum := range sums {
		averages[day] = money.Round2(sum.Div(decimal.NewFromInt(counts[day])))
	}

	return averages
}

// CategoryTotals sums amounts per category, categories ordered by first
// appearance in txs.
func CategoryTotals(txs []ledger.Transaction) []CategoryAmount {
	var totals []CategoryAmount

	index := make(map[string]int)

	for _, tx := range txs {
		i, ok := index[tx.Category]
		if !ok {
			i = len(totals)
			index[tx.Category] = i
			totals = append(totals, CategoryAmount{Category: tx.Category})
		}

		totals[i].Amount = totals[i].Amount.Add(tx.Amount)
	}

	return totals
}

// TransactionsBetween collects all of the user's transactions, across cards,
// with start <= timestamp <= end. Both bounds are inclusive.
func TransactionsBetween(u *ledger.User, start, end time.Time) []ledger.Transaction {
	var txs []ledger.Transaction

	for i := range u.Cards {
		for _, tx := range u.Cards[i].Transactions {
			if tx.Timestamp.Before(start) || tx.Timestamp.After(end) {
				continue
			}

			txs = append(txs, tx)
		}
	}

	return txs
}

// CardMonthlyTotal sums the card's transactions falling in the calendar month
// of now (UTC), rounded to 2 decimal places. This always uses the month of
// the reference instant, even when callers aggregate other windows elsewhere.
func CardMonthlyTotal(c *ledger.Card, now time.Time) decimal.Decimal {
	year, month := now.UTC().Year(), now.UTC().Month()

	sum := decimal.Zero

	for _, tx := range c.Transactions {
		ts := tx.Timestamp.UTC()
		if ts.Year() == year && ts.Month() == month {
			sum = sum.Add(tx.Amount)
		}
	}

	return money.Round2(sum)
}

// CategoryMonthlySpending sums the user's transactions in the given category
// over the calendar month of now.
func CategoryMonthlySpending(u *ledger.User, category string, now time.Time) decimal.Decimal {
	start, end := MonthWindow(now)

	sum := decimal.Zero

	for _, tx := range TransactionsBetween(u, start, end) {
		if tx.Category == category {
			sum = sum.Add(tx.Amount)
		}
	}

	return money.Round2(sum)
}

// TotalBalance sums the balances of the user's cards.
func TotalBalance(u *ledger.User) decimal.Decimal {
	sum := decimal.Zero
	for i := range u.Cards {
		sum = sum.Add(u.Cards[i].Balance)
	}

	return money.Round2(sum)
}

// MonthWindow returns the first instant of the month containing now (UTC) and
// the first instant of the following month. TransactionsBetween treats the end
// bound inclusively.
func MonthWindow(now time.Time) (time.Time, time.Time) {
	now = now.UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	return start, start.AddDate(0, 1, 0)
}
