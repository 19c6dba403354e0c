package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nkapoor/complaintdesk/internal/domain"
)

// Generator produces a natural-language answer for utterances that are
// neither filing nor querying a complaint. Failures are never returned as
// errors: the implementation's error text is itself the chat response.
type Generator interface {
	Generate(ctx context.Context, userMessage string, draft *domain.ComplaintDraft, history []domain.Turn) string
}

// Gateway is the thin client to the complaint store.
type Gateway interface {
	Create(ctx context.Context, draft domain.ComplaintDraft) (*domain.Complaint, error)
	Read(ctx context.Context, id string) (*domain.Complaint, error)
}

// Engine is the per-turn orchestrator. It consumes intent and entity
// signals, fills the session's complaint draft, and decides whether to
// prompt for a missing slot, submit, look up a complaint, or fall back
// to retrieval-augmented generation.
type Engine struct {
	gen           Generator
	gateway       Gateway
	historyWindow int
}

// New creates an engine with injected collaborators.
func New(gen Generator, gateway Gateway, historyWindow int) *Engine {
	if historyWindow <= 0 {
		historyWindow = 5
	}
	return &Engine{gen: gen, gateway: gateway, historyWindow: historyWindow}
}

// HandleTurn processes one user utterance against the session and returns
// the assistant's reply. The user turn and the reply are appended to the
// transcript atomically with the branch decision; the caller must not let
// another turn of the same session interleave.
func (e *Engine) HandleTurn(ctx context.Context, sess *domain.Session, text string) string {
	sess.Append(domain.RoleUser, text)
	reply := e.respond(ctx, sess, text)
	sess.Append(domain.RoleAssistant, reply)
	return reply
}

// respond implements the branch priority: query beats filing beats RAG.
func (e *Engine) respond(ctx context.Context, sess *domain.Session, text string) string {
	if IsQueryIntent(text) {
		return e.handleQuery(ctx, text)
	}

	if IsFilingIntent(text) || sess.Draft.Collecting {
		return e.handleFiling(ctx, sess, text)
	}

	history := sess.RecentTurns(e.historyWindow)
	return e.gen.Generate(ctx, text, &sess.Draft, history)
}

func (e *Engine) handleQuery(ctx context.Context, text string) string {
	id := ExtractComplaintID(text)
	if id == "" {
		return "Please provide the complaint ID you'd like me to look up."
	}

	complaint, err := e.gateway.Read(ctx, id)
	if err != nil {
		slog.Warn("complaint lookup failed", "complaint_id", id, "error", err)
		return fmt.Sprintf("I couldn't find a complaint with ID %s. Please check the ID and try again.", id)
	}
	return fmt.Sprintf("Here are the details for complaint %s:\n\n%s", id, formatComplaint(complaint))
}

func (e *Engine) handleFiling(ctx context.Context, sess *domain.Session, text string) string {
	draft := &sess.Draft
	draft.Collecting = true
	mergeDraft(draft, text)

	missing := draft.MissingFields()
	if len(missing) > 0 {
		return promptFor(missing[0], draft)
	}

	complaint, err := e.gateway.Create(ctx, *draft)
	if err != nil {
		// Draft untouched so the user can retry.
		slog.Warn("complaint submission failed", "error", err)
		return fmt.Sprintf("I apologize, but there was an error creating your complaint: %s. Please try again or contact our support team directly.", err)
	}

	draft.Reset()
	return fmt.Sprintf("Your complaint has been successfully registered! Your complaint ID is: %s. You'll hear back from our team soon. Is there anything else I can help you with?", complaint.ID)
}

// mergeDraft folds extracted entities into the draft. A slot is written
// only while still empty: the first valid extraction wins and later
// utterances cannot override it.
func mergeDraft(draft *domain.ComplaintDraft, text string) {
	info := Extract(text)

	if draft.Email == "" && info.Email != "" && ValidEmail(info.Email) {
		draft.Email = info.Email
	}
	if draft.PhoneNumber == "" && info.PhoneNumber != "" && ValidPhone(info.PhoneNumber) {
		draft.PhoneNumber = info.PhoneNumber
	}
	if draft.Name == "" {
		if name, ok := CandidateName(text); ok {
			draft.Name = name
		}
	}
	if draft.Details == "" {
		if details, ok := CandidateDetails(text); ok {
			draft.Details = details
		}
	}
}

// promptFor returns the question bound to the first missing slot. One
// question per turn, always in the fixed name, phone, email, details order.
func promptFor(field string, draft *domain.ComplaintDraft) string {
	switch field {
	case domain.FieldName:
		return "I'm sorry to hear about your issue. To help you file a complaint, I'll need some information. Could you please provide your full name?"
	case domain.FieldPhone:
		return fmt.Sprintf("Thank you, %s. What is your phone number?", draft.Name)
	case domain.FieldEmail:
		return "Got it. Please provide your email address."
	default:
		return "Thanks. Could you please provide more details about your complaint?"
	}
}

func formatComplaint(c *domain.Complaint) string {
	return fmt.Sprintf(
		"Complaint ID: %s\nName: %s\nPhone: %s\nEmail: %s\nDetails: %s\nCreated At: %s",
		c.ID, c.Name, c.PhoneNumber, c.Email, c.Details,
		c.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
	)
}
