package card

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/spendtrack/internal/ledger"
)

type cardResponse struct {
	ID            uuid.UUID       `json:"id"`
	SortCode      string          `json:"sort_code"`
	AccountNumber string          `json:"account_number"`
	Name          string          `json:"name"`
	Balance       decimal.Decimal `json:"balance"`
	Transactions  int             `json:"transactions"`
}

func toResponse(c *ledger.Card) cardResponse {
	return cardResponse{
		ID:            c.ID,
		SortCode:      c.SortCode,
		AccountNumber: c.AccountNumber,
		Name:          c.Name,
		Balance:       c.Balance,
		Transactions:  len(c.Transactions),
	}
}

func toResponseList(cards []ledger.Card) []cardResponse {
	resp := make([]cardResponse, len(cards))
	for i := range cards {
		resp[i] = toResponse(&cards[i])
	}

	return resp
}
