package budget

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
)

type Handler struct {
	svc *engine.Service
}

func NewHandler(svc *engine.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Put("/", h.setOverall)
	r.Put("/categories/{category}", h.setCategory)
}

type setBudgetRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type overallBudgetResponse struct {
	Budget      decimal.Decimal `json:"budget"`
	BudgetSetAt *time.Time      `json:"budget_set_at,omitempty"`
	Spending    decimal.Decimal `json:"spending"`
}

func (h *Handler) setOverall(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	var req setBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if !req.Amount.IsPositive() {
		http.Error(w, "amount must be positive", http.StatusBadRequest)
		return
	}

	state, err := h.svc.SetOverallBudget(r.Context(), userID, req.Amount)
	if err != nil {
		writeBudgetError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	resp := overallBudgetResponse{
		Budget:      *state.Budget,
		BudgetSetAt: state.BudgetSetAt,
		Spending:    state.TotalAccountSpending,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type categoryBudgetResponse struct {
	Category string          `json:"category"`
	Budget   decimal.Decimal `json:"budget"`
}

func (h *Handler) setCategory(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	category := chi.URLParam(r, "category")

	var req setBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if !req.Amount.IsPositive() {
		http.Error(w, "amount must be positive", http.StatusBadRequest)
		return
	}

	cb, err := h.svc.SetCategoryBudget(r.Context(), userID, category, req.Amount)
	if err != nil {
		writeBudgetError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	resp := categoryBudgetResponse{Category: cb.Category, Budget: cb.Budget}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeBudgetError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engine.ErrBudgetUnchanged):
		http.Error(w, "budget unchanged", http.StatusConflict)
	case errors.Is(err, engine.ErrEmptyCategory):
		http.Error(w, "category must not be empty", http.StatusBadRequest)
	case errors.Is(err, ledger.ErrNotFound):
		http.Error(w, "user not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
