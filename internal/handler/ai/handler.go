package ai

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	hintService "github.com/ymatsux/gyakuaki/backend/internal/service/hint"
	"github.com/ymatsux/gyakuaki/backend/internal/service/oracle"
	questionService "github.com/ymatsux/gyakuaki/backend/internal/service/question"
	sessionService "github.com/ymatsux/gyakuaki/backend/internal/service/session"
	"github.com/ymatsux/gyakuaki/backend/pkg/utils"
)

// Handler serves the oracle-backed question and hint routes.
type Handler struct {
	questions *questionService.Service
	hints     *hintService.Service
	sessions  *sessionService.Service
}

// New creates the AI handler.
func New(questions *questionService.Service, hints *hintService.Service, sessions *sessionService.Service) *Handler {
	return &Handler{questions: questions, hints: hints, sessions: sessions}
}

// RegisterRoutes mounts the AI routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/ai/question", h.handleQuestion)
	r.Post("/ai/hint", h.handleHint)
}

// handleQuestion runs one quota-gated free-text question.
func (h *Handler) handleQuestion(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionID      string `json:"sessionId"`
		TargetPersonID int    `json:"targetPersonId"`
		Question       string `json:"question"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var missing []string
	if payload.SessionID == "" {
		missing = append(missing, "sessionId")
	}
	if payload.TargetPersonID == 0 {
		missing = append(missing, "targetPersonId")
	}
	if strings.TrimSpace(payload.Question) == "" {
		missing = append(missing, "question")
	}
	if len(missing) > 0 {
		log.Printf("[ai] question validation failed: missing %s", strings.Join(missing, ", "))
		utils.RespondError(w, http.StatusBadRequest, "Missing required fields: "+strings.Join(missing, ", "))
		return
	}

	result, err := h.questions.Ask(r.Context(), payload.SessionID, payload.TargetPersonID, payload.Question)
	if err != nil {
		h.respondQuestionError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"answer":         result.Answer,
		"remainingCount": result.Remaining,
		"message":        result.Message,
	})
}

func (h *Handler) respondQuestionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, questionService.ErrSessionInvalid):
		utils.RespondError(w, http.StatusBadRequest, "Invalid or expired session")
	case errors.Is(err, questionService.ErrEmptyQuestion):
		utils.RespondError(w, http.StatusBadRequest, "Missing required fields: question")
	case errors.Is(err, questionService.ErrQuotaExceeded):
		utils.RespondError(w, http.StatusTooManyRequests, "AI質問の回数制限に達しました（最大5回）")
	case errors.Is(err, questionService.ErrPersonNotFound):
		utils.RespondError(w, http.StatusNotFound, "Person not found")
	case errors.Is(err, oracle.ErrNotConfigured):
		utils.RespondError(w, http.StatusServiceUnavailable, "AI service not available")
	case errors.Is(err, oracle.ErrRateLimited):
		utils.RespondError(w, http.StatusTooManyRequests, "AI機能の利用制限に達しました。しばらく待ってから再度お試しください。")
	case errors.Is(err, oracle.ErrOverloaded):
		utils.RespondError(w, http.StatusServiceUnavailable, "AIが混み合っています。しばらく待ってから再度お試しください。")
	default:
		log.Printf("[ai] question failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Failed to process AI question")
	}
}

// handleHint generates one progressively-easier hint. The session check is
// deliberately soft: hints are not quota-gated server-side.
func (h *Handler) handleHint(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionID        string `json:"sessionId"`
		TargetPersonID   int    `json:"targetPersonId"`
		TargetPersonName string `json:"targetPersonName"`
		HintNumber       int    `json:"hintNumber"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if payload.TargetPersonID == 0 || payload.TargetPersonName == "" {
		utils.RespondError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	if payload.SessionID != "" {
		if _, ok := h.sessions.Get(payload.SessionID); !ok {
			log.Printf("[ai] hint session %s not found, continuing anyway", payload.SessionID)
		}
	}

	hint, err := h.hints.Generate(r.Context(), payload.TargetPersonName, payload.HintNumber)
	if err != nil {
		h.respondHintError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"hint":    hint,
		"success": true,
	})
}

func (h *Handler) respondHintError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, oracle.ErrNotConfigured):
		utils.RespondError(w, http.StatusServiceUnavailable, "AI service not available")
	case errors.Is(err, oracle.ErrOverloaded):
		utils.RespondError(w, http.StatusServiceUnavailable, "AIが混み合っています。しばらく待ってから再度お試しください。")
	case errors.Is(err, oracle.ErrRateLimited):
		utils.RespondError(w, http.StatusTooManyRequests, "AI機能の利用制限に達しました。しばらく待ってから再度お試しください。")
	default:
		log.Printf("[ai] hint failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "ヒントの生成に失敗しました")
	}
}
