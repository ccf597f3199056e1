package spending_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/spendtrack/internal/ledger"
	"github.com/MrJamesThe3rd/spendtrack/internal/spending"
)

func tx(amount, category string, ts time.Time) ledger.Transaction {
	return ledger.Transaction{
		Amount:    decimal.RequireFromString(amount),
		Category:  category,
		Timestamp: ts,
	}
}

func TestTotal(t *testing.T) {
	txs := []ledger.Transaction{
		tx("10.10", "food", time.Now()),
		tx("5.15", "travel", time.Now()),
	}

	assert.Equal(t, "15.25", spending.Total(txs).StringFixed(2))

	// Pure: recomputing yields the same value.
	assert.Equal(t, "15.25", spending.Total(txs).StringFixed(2))

	assert.Equal(t, "0.00", spending.Total(nil).StringFixed(2))
}

func TestWeekdayAverages(t *testing.T) {
	monday := time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC)    // a Monday
	sunday := time.Date(2024, 6, 9, 9, 30, 0, 0, time.UTC)    // a Sunday
	nextMon := time.Date(2024, 6, 10, 18, 0, 0, 0, time.UTC)  // the Monday after

	txs := []ledger.Transaction{
		tx("10.00", "food", monday),
		tx("20.00", "food", nextMon),
		tx("7.50", "travel", sunday),
	}

	got := spending.WeekdayAverages(txs)

	assert.Len(t, got, 2)
	assert.Equal(t, "15.00", got[spending.Monday].StringFixed(2))
	assert.Equal(t, "7.50", got[spending.Sunday].StringFixed(2))
}

func TestWeekdayOf(t *testing.T) {
	// 2024-06-03 is a Monday; Go's time.Weekday has Sunday=0, the
	// aggregation convention has Monday=0.
	assert.Equal(t, spending.Monday, spending.WeekdayOf(time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, spending.Sunday, spending.WeekdayOf(time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC)))
}

func TestCategoryTotals_FirstSeenOrder(t *testing.T) {
	txs := []ledger.Transaction{
		tx("1.00", "food", time.Now()),
		tx("2.00", "travel", time.Now()),
		tx("3.00", "food", time.Now()),
	}

	got := spending.CategoryTotals(txs)

	assert.Len(t, got, 2)
	assert.Equal(t, "food", got[0].Category)
	assert.Equal(t, "4.00", got[0].Amount.StringFixed(2))
	assert.Equal(t, "travel", got[1].Category)
	assert.Equal(t, "2.00", got[1].Amount.StringFixed(2))
}

func TestCardMonthlyTotal(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

	card := ledger.Card{Transactions: []ledger.Transaction{
		tx("10.00", "food", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)),
		tx("20.00", "food", time.Date(2024, 6, 30, 23, 59, 59, 0, time.UTC)),
		tx("40.00", "food", time.Date(2024, 5, 31, 23, 59, 59, 0, time.UTC)), // previous month
		tx("80.00", "food", time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC)),    // same month, previous year
	}}

	assert.Equal(t, "30.00", spending.CardMonthlyTotal(&card, now).StringFixed(2))
}

func TestCategoryMonthlySpending_MonthBoundary(t *testing.T) {
	now := time.Date(2024, 7, 2, 0, 0, 0, 0, time.UTC)

	user := ledger.User{Cards: []ledger.Card{{Transactions: []ledger.Transaction{
		// Last second of June: must not count toward July.
		tx("99.00", "food", time.Date(2024, 6, 30, 23, 59, 59, 0, time.UTC)),
		tx("10.00", "food", time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)),
		tx("5.00", "travel", time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)),
	}}}}

	assert.Equal(t, "10.00", spending.CategoryMonthlySpending(&user, "food", now).StringFixed(2))
	assert.Equal(t, "5.00", spending.CategoryMonthlySpending(&user, "travel", now).StringFixed(2))
}

func TestTransactionsBetween_InclusiveBounds(t *testing.T) {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	user := ledger.User{Cards: []ledger.Card{
		{Transactions: []ledger.Transaction{
			tx("1.00", "food", start),
			tx("2.00", "food", end),
			tx("4.00", "food", end.Add(time.Second)),
		}},
		{Transactions: []ledger.Transaction{
			tx("8.00", "food", start.Add(24*time.Hour)),
		}},
	}}

	got := spending.TransactionsBetween(&user, start, end)
	assert.Len(t, got, 3)
	assert.Equal(t, "11.00", spending.Total(got).StringFixed(2))
}

func TestTotalBalance(t *testing.T) {
	user := ledger.User{Cards: []ledger.Card{
		{Balance: decimal.RequireFromString("100.50")},
		{Balance: decimal.RequireFromString("9.50")},
	}}

	assert.Equal(t, "110.00", spending.TotalBalance(&user).StringFixed(2))
}

func TestMonthWindow(t *testing.T) {
	start, end := spending.MonthWindow(time.Date(2024, 12, 25, 13, 0, 0, 0, time.UTC))

	assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), end)
}
