package chat

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"github.com/nkapoor/complaintdesk/internal/domain"
)

// wsMessage is the frame exchanged over the chat WebSocket.
type wsMessage struct {
	Message string `json:"message,omitempty"`
	Reply   string `json:"reply,omitempty"`
	Error   string `json:"error,omitempty"`
}

// WebSocketHandler serves a streaming variant of the chat surface: one
// JSON frame per utterance in, one per reply out.
type WebSocketHandler struct {
	engine TurnHandler
	sm     *SessionManager
}

// NewWebSocketHandler creates a WebSocket chat handler.
func NewWebSocketHandler(engine TurnHandler, sm *SessionManager) *WebSocketHandler {
	return &WebSocketHandler{engine: engine, sm: sm}
}

// ServeHTTP implements http.Handler for WebSocket upgrade. The session ID
// comes from the session_id query parameter; a fresh one is assigned when
// absent.
func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	slog.Info("chat websocket connected", "session_id", sessionID, "ip", r.RemoteAddr)

	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		slog.Error("failed to accept websocket", "error", err, "session_id", sessionID)
		return
	}
	defer func() {
		if closeErr := ws.Close(websocket.StatusNormalClosure, "session ended"); closeErr != nil {
			slog.Debug("failed to close websocket", "error", closeErr, "session_id", sessionID)
		}
	}()

	ctx := r.Context()
	for {
		kind, data, err := ws.Read(ctx)
		if err != nil {
			slog.Debug("chat websocket closed", "session_id", sessionID, "error", err)
			return
		}
		if kind != websocket.MessageText {
			continue
		}

		var msg wsMessage
		if err := json.Unmarshal(data, &msg); err != nil || msg.Message == "" {
			h.write(ctx, ws, wsMessage{Error: "expected a JSON frame with a non-empty message field"})
			continue
		}

		var reply string
		h.sm.WithSession(sessionID, func(sess *domain.Session) {
			reply = h.engine.HandleTurn(ctx, sess, msg.Message)
		})
		h.write(ctx, ws, wsMessage{Reply: reply})
	}
}

func (h *WebSocketHandler) write(ctx context.Context, ws *websocket.Conn, msg wsMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	if err := ws.Write(ctx, websocket.MessageText, data); err != nil {
		slog.Debug("chat websocket write failed", "error", err)
	}
}
