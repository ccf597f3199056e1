package engine

import (
	"bufio"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/spendtrack/internal/encoding"
	"github.com/MrJamesThe3rd/spendtrack/internal/money"
	"github.com/MrJamesThe3rd/spendtrack/internal/spending"
)

const (
	genMinAmount = 1
	genMaxAmount = 200
)

// Generator produces random demo transactions: an amount in
// [genMinAmount, genMaxAmount), a timestamp uniform within the current
// month and a description drawn from a fixed pool.
type Generator struct {
	descriptions []string
	rnd          *rand.Rand
}

// NewGenerator builds a generator over the description pool. Pass a nil rnd
// for a time-seeded source.
func NewGenerator(descriptions []string, rnd *rand.Rand) (*Generator, error) {
	if len(descriptions) == 0 {
		return nil, ErrEmptyPool
	}

	if rnd == nil {
		rnd = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}

	return &Generator{descriptions: descriptions, rnd: rnd}, nil
}

// Params generates one candidate transaction for the card. Generated
// transactions are always in the base currency.
func (g *Generator) Params(cardID uuid.UUID, now time.Time) RecordParams {
	amount := genMinAmount + g.rnd.Float64()*(genMaxAmount-genMinAmount)

	start, end := spending.MonthWindow(now)
	ts := start.Add(time.Duration(g.rnd.Float64() * float64(end.Sub(start))))

	return RecordParams{
		CardID:      cardID,
		Amount:      money.Round2(decimal.NewFromFloat(amount)),
		Currency:    money.GBP,
		Timestamp:   ts,
		Description: g.descriptions[g.rnd.IntN(len(g.descriptions))],
	}
}

// LoadDescriptions reads the description pool file: one description per
// line, blank lines skipped, whitespace trimmed.
func LoadDescriptions(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open description pool: %w", err)
	}
	defer f.Close()

	utf8r, err := encoding.NewUTF8Reader(f)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	var pool []string

	scanner := bufio.NewScanner(utf8r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		pool = append(pool, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read description pool: %w", err)
	}

	if len(pool) == 0 {
		return nil, ErrEmptyPool
	}

	return pool, nil
}
