// Package reference exposes the classification reference table: reading the
// snapshot the classifier currently serves from, and appending entries to it.
package reference

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/spendtrack/internal/classify"
)

// Classifier is the read side: the in-memory snapshot and the switch that
// swaps it after a write.
type Classifier interface {
	Snapshot() []classify.Entry
	Reload(ctx context.Context) error
}

// Writer appends entries to the backing table. A nil Writer marks the table
// read-only, which is the case when it is loaded from a file.
type Writer interface {
	CreateEntry(ctx context.Context, e classify.Entry) error
}

type Handler struct {
	classifier Classifier
	writer     Writer
}

func NewHandler(classifier Classifier, writer Writer) *Handler {
	return &Handler{classifier: classifier, writer: writer}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
}

type entryResponse struct {
	Description string `json:"description"`
	Category    string `json:"category"`
}

type tableResponse struct {
	Entries    []entryResponse `json:"entries"`
	Categories []string        `json:"categories"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	entries := h.classifier.Snapshot()

	resp := tableResponse{
		Entries:    make([]entryResponse, len(entries)),
		Categories: classify.Categories(entries),
	}

	for i, e := range entries {
		resp.Entries[i] = entryResponse{Description: e.Description, Category: e.Category}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type createEntryRequest struct {
	Description string `json:"description"`
	Category    string `json:"category"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	if h.writer == nil {
		http.Error(w, "reference table is read-only", http.StatusServiceUnavailable)
		return
	}

	var req createEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	req.Description = strings.TrimSpace(req.Description)
	req.Category = strings.TrimSpace(req.Category)

	if req.Description == "" || req.Category == "" {
		http.Error(w, "description and category must not be empty", http.StatusBadRequest)
		return
	}

	entry := classify.Entry{Description: req.Description, Category: req.Category}

	if err := h.writer.CreateEntry(r.Context(), entry); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if err := h.classifier.Reload(r.Context()); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(entryResponse{
		Description: entry.Description,
		Category:    entry.Category,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
