package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/spendtrack/internal/budget"
	"github.com/MrJamesThe3rd/spendtrack/internal/engine"
	"github.com/MrJamesThe3rd/spendtrack/internal/ledger"
)

type transactionResponse struct {
	ID          uuid.UUID       `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Timestamp   time.Time       `json:"timestamp"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	CardID      uuid.UUID       `json:"card_id"`
}

type overallDecisionResponse struct {
	State     string          `json:"state"`
	Budget    decimal.Decimal `json:"budget"`
	Spending  decimal.Decimal `json:"spending"`
	Remaining decimal.Decimal `json:"remaining"`
}

type categoryDecisionResponse struct {
	Category string          `json:"category"`
	Crossed  bool            `json:"crossed"`
	Budget   decimal.Decimal `json:"budget"`
	Spending decimal.Decimal `json:"spending"`
}

type balanceDecisionResponse struct {
	CardID   uuid.UUID       `json:"card_id"`
	CardName string          `json:"card_name"`
	Balance  decimal.Decimal `json:"balance"`
}

type resultResponse struct {
	Transaction transactionResponse       `json:"transaction"`
	Overall     overallDecisionResponse   `json:"overall"`
	Category    *categoryDecisionResponse `json:"category,omitempty"`
	LowBalance  *balanceDecisionResponse  `json:"low_balance,omitempty"`
}

func toTransactionResponse(tx *ledger.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		Amount:      tx.Amount,
		Currency:    string(tx.Currency),
		Timestamp:   tx.Timestamp,
		Description: tx.Description,
		Category:    tx.Category,
		CardID:      tx.CardID,
	}
}

func toResponseList(txs []ledger.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i := range txs {
		resp[i] = toTransactionResponse(&txs[i])
	}

	return resp
}

func toOverallResponse(d budget.OverallDecision) overallDecisionResponse {
	return overallDecisionResponse{
		State:     d.State.String(),
		Budget:    d.Budget,
		Spending:  d.Spending,
		Remaining: d.Remaining,
	}
}

func toResultResponse(res *engine.Result) resultResponse {
	resp := resultResponse{
		Transaction: toTransactionResponse(res.Transaction),
		Overall:     toOverallResponse(res.Overall),
	}

	if res.Category != nil {
		resp.Category = &categoryDecisionResponse{
			Category: res.Category.Budget.Category,
			Crossed:  res.Category.Crossed,
			Budget:   res.Category.Budget.Budget,
			Spending: res.Category.Spending,
		}
	}

	if res.Balance.Crossed {
		resp.LowBalance = &balanceDecisionResponse{
			CardID:   res.Balance.CardID,
			CardName: res.Balance.CardName,
			Balance:  res.Balance.Balance,
		}
	}

	return resp
}
