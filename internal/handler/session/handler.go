package session

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	sessionService "github.com/ymatsux/gyakuaki/backend/internal/service/session"
	"github.com/ymatsux/gyakuaki/backend/pkg/utils"
)

// Handler serves the session lifecycle routes.
type Handler struct {
	sessions *sessionService.Service
}

// New creates the session handler.
func New(sessions *sessionService.Service) *Handler {
	return &Handler{sessions: sessions}
}

// RegisterRoutes mounts the session routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/session/start", h.handleStart)
}

// handleStart provisions a new quota-bearing game session. It always
// succeeds.
func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	session := h.sessions.Create()

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"sessionId":       session.ID,
		"aiQuestionLimit": session.Limit,
	})
}
