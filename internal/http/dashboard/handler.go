package dashboard

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
	"github.com/MrJamesThe3rd/spendtrack/internal/spending"
)

type Handler struct {
	svc *engine.Service
}

func NewHandler(svc *engine.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.summary)
}

type categoryResponse struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

type overallResponse struct {
	State     string          `json:"state"`
	Budget    decimal.Decimal `json:"budget"`
	Spending  decimal.Decimal `json:"spending"`
	Remaining decimal.Decimal `json:"remaining"`
}

type summaryResponse struct {
	Total           decimal.Decimal            `json:"total"`
	WeekdayAverages map[string]decimal.Decimal `json:"weekday_averages"`
	Categories      []categoryResponse         `json:"categories"`
	Balance         decimal.Decimal            `json:"balance"`
	Overall         overallResponse            `json:"overall"`
}

// summary aggregates spending between start_date and end_date (inclusive,
// RFC 3339 dates). The window defaults to the current calendar month.
func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	start, end := spending.MonthWindow(time.Now().UTC())

	if s := r.URL.Query().Get("start_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			start = t
		}
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			end = t
		}
	}

	summary, err := h.svc.Dashboard(r.Context(), userID, start, end)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(summary)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func toResponse(s *engine.Summary) summaryResponse {
	resp := summaryResponse{
		Total:           s.Total,
		WeekdayAverages: make(map[string]decimal.Decimal, len(s.WeekdayAverages)),
		Categories:      make([]categoryResponse, len(s.Categories)),
		Balance:         s.Balance,
		Overall: overallResponse{
			State:     s.Overall.State.String(),
			Budget:    s.Overall.Budget,
			Spending:  s.Overall.Spending,
			Remaining: s.Overall.Remaining,
		},
	}

	for day, avg := range s.WeekdayAverages {
		resp.WeekdayAverages[day.String()] = avg
	}

	for i, c := range s.Categories {
		resp.Categories[i] = categoryResponse{Category: c.Category, Amount: c.Amount}
	}

	return resp
}
