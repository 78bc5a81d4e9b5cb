package httpapi

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"bubblesea/internal/codec"
	"bubblesea/internal/domain"
	"bubblesea/internal/tagger"
)

// maxRequestBody bounds POST bodies
const maxRequestBody = 1 << 20

// StoreRequest is the body of POST /api/bubble/{id}
type StoreRequest struct {
	Bubble string
}

// RenderResponse is the body of GET /api/bubble/{id}/render
type RenderResponse struct {
	ID       string        `json:"id"`
	Spans    []tagger.Span `json:"spans"`
	Children []string      `json:"children"`
}

type bubbleHandler struct {
	backend Backend
	logger  *zap.Logger
}

func (h *bubbleHandler) id(w http.ResponseWriter, r *http.Request) (domain.ID, bool) {
	id, err := domain.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, err.Error())
		return 0, false
	}
	return id, true
}

// get handles GET /api/bubble/{id}
func (h *bubbleHandler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.id(w, r)
	if !ok {
		return
	}
	text, found := h.backend.Lookup(r.Context(), id)
	if !found {
		respondError(w, h.logger, http.StatusNotFound, "bubble "+id.String()+" not found")
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, text)
}

// store handles POST /api/bubble/{id}
func (h *bubbleHandler) store(w http.ResponseWriter, r *http.Request) {
	id, ok := h.id(w, r)
	if !ok {
		return
	}

	var req StoreRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody)).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if _, ok := codec.Decode(req.Bubble); !ok {
		respondError(w, h.logger, http.StatusBadRequest, "Bubble is not a valid encoding")
		return
	}

	if err := h.backend.Store(r.Context(), id, req.Bubble); err != nil {
		h.logger.Error("failed to store bubble", zap.Stringer("id", id), zap.Error(err))
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to store bubble")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("{}"))
}

// render handles GET /api/bubble/{id}/render
func (h *bubbleHandler) render(w http.ResponseWriter, r *http.Request) {
	id, ok := h.id(w, r)
	if !ok {
		return
	}
	text, found := h.backend.Lookup(r.Context(), id)
	if !found {
		respondError(w, h.logger, http.StatusNotFound, "bubble "+id.String()+" not found")
		return
	}
	b, ok := codec.Decode(text)
	if !ok {
		h.logger.Warn("stored bubble does not decode", zap.Stringer("id", id))
		respondError(w, h.logger, http.StatusNotFound, "bubble "+id.String()+" not found")
		return
	}

	children := make([]string, 0, len(b.Children))
	for _, c := range b.Children {
		children = append(children, c.String())
	}
	respondJSON(w, h.logger, http.StatusOK, RenderResponse{
		ID:       id.String(),
		Spans:    tagger.Parse(b.Text),
		Children: children,
	})
}

func respondJSON(w http.ResponseWriter, logger *zap.Logger, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, logger *zap.Logger, status int, message string) {
	respondJSON(w, logger, status, map[string]any{
		"error":   true,
		"message": message,
		"code":    status,
	})
}
