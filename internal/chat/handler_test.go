package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/nkapoor/complaintdesk/internal/domain"
)

// echoEngine appends turns like the real engine but answers mechanically.
type echoEngine struct {
	calls int
}

func (e *echoEngine) HandleTurn(_ context.Context, sess *domain.Session, text string) string {
	e.calls++
	sess.Append(domain.RoleUser, text)
	reply := "echo: " + text
	sess.Append(domain.RoleAssistant, reply)
	return reply
}

func newTestChatServer(t *testing.T) (*httptest.Server, *echoEngine) {
	t.Helper()
	eng := &echoEngine{}
	sm := NewSessionManager()

	r := chi.NewRouter()
	NewHandler(eng, sm).RegisterRoutes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, eng
}

func postMessage(t *testing.T, srv *httptest.Server, sessionID, message string) *http.Response {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"message": message})
	resp, err := http.Post(srv.URL+"/chat/"+sessionID, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /chat failed: %v", err)
	}
	return resp
}

func TestMessageReturnsEngineReply(t *testing.T) {
	t.Parallel()

	srv, eng := newTestChatServer(t)

	resp := postMessage(t, srv, "s1", "hello")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var out struct {
		Reply string `json:"reply"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Reply != "echo: hello" {
		t.Fatalf("reply = %q", out.Reply)
	}
	if eng.calls != 1 {
		t.Fatalf("engine calls = %d, want 1", eng.calls)
	}
}

func TestEmptyMessageRejected(t *testing.T) {
	t.Parallel()

	srv, eng := newTestChatServer(t)

	resp := postMessage(t, srv, "s1", "   ")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if eng.calls != 0 {
		t.Fatal("engine must not run for empty messages")
	}
}

func TestTranscriptStartsWithGreeting(t *testing.T) {
	t.Parallel()

	srv, _ := newTestChatServer(t)

	resp, err := http.Get(srv.URL + "/chat/s1")
	if err != nil {
		t.Fatalf("GET /chat failed: %v", err)
	}
	defer resp.Body.Close()

	var out struct {
		SessionID string                `json:"session_id"`
		Turns     []domain.Turn         `json:"turns"`
		Draft     domain.ComplaintDraft `json:"draft"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(out.Turns) != 1 || out.Turns[0].Content != Greeting {
		t.Fatalf("fresh session transcript = %+v", out.Turns)
	}
	if out.Draft.Collecting {
		t.Fatal("fresh session must not be collecting")
	}
}

func TestClearResetsSession(t *testing.T) {
	t.Parallel()

	srv, _ := newTestChatServer(t)

	resp := postMessage(t, srv, "s1", "hello")
	resp.Body.Close()

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/chat/s1", nil)
	delResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE /chat failed: %v", err)
	}
	delResp.Body.Close()

	getResp, err := http.Get(srv.URL + "/chat/s1")
	if err != nil {
		t.Fatalf("GET /chat failed: %v", err)
	}
	defer getResp.Body.Close()

	var out struct {
		Turns []domain.Turn `json:"turns"`
	}
	if err := json.NewDecoder(getResp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(out.Turns) != 1 || out.Turns[0].Content != Greeting {
		t.Fatalf("expected reset transcript with greeting only, got %+v", out.Turns)
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	t.Parallel()

	srv, _ := newTestChatServer(t)

	resp := postMessage(t, srv, "s1", "first session message")
	resp.Body.Close()

	getResp, err := http.Get(srv.URL + "/chat/s2")
	if err != nil {
		t.Fatalf("GET /chat failed: %v", err)
	}
	defer getResp.Body.Close()

	var out struct {
		Turns []domain.Turn `json:"turns"`
	}
	if err := json.NewDecoder(getResp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(out.Turns) != 1 {
		t.Fatalf("second session must start fresh, got %+v", out.Turns)
	}
}
