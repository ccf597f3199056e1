package transaction

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/spendtrack/internal/engine"
	"github.com/MrJamesThe3rd/spendtrack/internal/ledger"
	"github.com/MrJamesThe3rd/spendtrack/internal/money"
)

type Handler struct {
	svc *engine.Service
}

func NewHandler(svc *engine.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.record)
	r.Get("/", h.list)
	r.Post("/generate", h.generate)
	r.Patch("/{id}/category", h.recategorize)
}

type recordRequest struct {
	CardID      uuid.UUID       `json:"card_id"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Timestamp   time.Time       `json:"timestamp"`
	Description string          `json:"description"`
}

func (h *Handler) record(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	var req recordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if !money.Supported(money.Currency(req.Currency)) {
		http.Error(w, "unsupported currency", http.StatusBadRequest)
		return
	}

	if req.Timestamp.IsZero() {
		req.Timestamp = time.Now().UTC()
	}

	res, err := h.svc.RecordTransaction(r.Context(), userID, engine.RecordParams{
		CardID:      req.CardID,
		Amount:      req.Amount,
		Currency:    money.Currency(req.Currency),
		Timestamp:   req.Timestamp,
		Description: req.Description,
	})
	if err != nil {
		writeRecordError(w, err)
		return
	}

	if !res.Admitted {
		http.Error(w, "insufficient funds", http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResultResponse(res)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	cards, err := h.svc.Cards(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	var txs []ledger.Transaction
	for i := range cards {
		txs = append(txs, cards[i].Transactions...)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(txs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type generateRequest struct {
	CardID uuid.UUID `json:"card_id"`
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := h.svc.GenerateTransaction(r.Context(), userID, req.CardID)
	if err != nil {
		writeRecordError(w, err)
		return
	}

	if !res.Admitted {
		http.Error(w, "insufficient funds", http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResultResponse(res)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type recategorizeRequest struct {
	Category string `json:"category"`
}

func (h *Handler) recategorize(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req recategorizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.Recategorize(r.Context(), id, req.Category); err != nil {
		switch {
		case errors.Is(err, engine.ErrEmptyCategory):
			http.Error(w, "category must not be empty", http.StatusBadRequest)
		case errors.Is(err, ledger.ErrNotFound):
			http.Error(w, "transaction not found", http.StatusNotFound)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeRecordError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		http.Error(w, "user not found", http.StatusNotFound)
	case errors.Is(err, ledger.ErrCardNotFound):
		http.Error(w, "card not found", http.StatusNotFound)
	case errors.Is(err, money.ErrUnsupportedCurrency):
		http.Error(w, "unsupported currency", http.StatusBadRequest)
	case errors.Is(err, engine.ErrEmptyPool):
		http.Error(w, "transaction generator not configured", http.StatusServiceUnavailable)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
