package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/nkapoor/complaintdesk/internal/api"
	"github.com/nkapoor/complaintdesk/internal/domain"
)

// maxMessageSize limits chat payloads to 64KB.
const maxMessageSize = 64 << 10

// TurnHandler processes one utterance against a session and returns the
// assistant's reply.
type TurnHandler interface {
	HandleTurn(ctx context.Context, sess *domain.Session, text string) string
}

// Handler serves the conversational surface.
type Handler struct {
	engine TurnHandler
	sm     *SessionManager
}

// NewHandler creates a chat handler.
func NewHandler(engine TurnHandler, sm *SessionManager) *Handler {
	return &Handler{engine: engine, sm: sm}
}

// RegisterRoutes mounts chat routes on the router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat/{session_id}", h.Message)
	r.Get("/chat/{session_id}", h.Transcript)
	r.Delete("/chat/{session_id}", h.Clear)
}

type messageRequest struct {
	Message string `json:"message"`
}

type messageResponse struct {
	Reply string `json:"reply"`
}

// Message processes one user utterance and returns the reply.
func (h *Handler) Message(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session_id")

	var req messageRequest
	body := http.MaxBytesReader(w, r.Body, maxMessageSize)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		api.Error(w, http.StatusBadRequest, "message cannot be empty")
		return
	}

	var reply string
	h.sm.WithSession(sessionID, func(sess *domain.Session) {
		reply = h.engine.HandleTurn(r.Context(), sess, req.Message)
	})

	api.JSON(w, http.StatusOK, messageResponse{Reply: reply})
}

type transcriptResponse struct {
	SessionID string                `json:"session_id"`
	Turns     []domain.Turn         `json:"turns"`
	Draft     domain.ComplaintDraft `json:"draft"`
}

// Transcript returns the conversation so far plus slot-filling progress.
func (h *Handler) Transcript(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session_id")
	turns, draft := h.sm.Snapshot(sessionID)

	api.JSON(w, http.StatusOK, transcriptResponse{
		SessionID: sessionID,
		Turns:     turns,
		Draft:     draft,
	})
}

// Clear reinitializes the session to its empty defaults.
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session_id")
	h.sm.Reset(sessionID)
	api.JSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
