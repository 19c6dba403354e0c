package rag

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/nkapoor/complaintdesk/internal/domain"
)

// noKnowledgeSentinel replaces the knowledge context when retrieval
// comes back empty.
const noKnowledgeSentinel = "No specific knowledge base information found."

const systemPromptFormat = `You are a helpful customer service chatbot. Your role is to:
1. Help customers file complaints by collecting their details (name, phone, email, complaint details)
2. Provide information based on the knowledge base
3. Be empathetic and professional
4. Ask follow-up questions to collect missing information

Knowledge Base Context:
%s

Current conversation context:
- Name: %s
- Phone: %s
- Email: %s
- Complaint details: %s

Guidelines:
- If the user wants to file a complaint, collect all required information step by step
- Be conversational and natural
- If asked about complaint details with an ID, indicate that you'll help retrieve the information
- Keep responses concise but helpful`

// ChatCompleter issues chat completion calls. *openai.Client satisfies it.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Searcher supplies knowledge base passages for a query.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) []string
}

// Generator composes a system prompt from retrieved passages and the
// current draft, then asks the language model for a reply. A failed model
// call is not an error: the apology text it produces is the chat response.
type Generator struct {
	llm         ChatCompleter
	search      Searcher
	model       string
	temperature float32
	topK        int
}

// NewGenerator creates a generator backed by the given model and
// knowledge searcher.
func NewGenerator(llm ChatCompleter, search Searcher, model string, temperature float32, topK int) *Generator {
	if topK <= 0 {
		topK = 3
	}
	return &Generator{
		llm:         llm,
		search:      search,
		model:       model,
		temperature: temperature,
		topK:        topK,
	}
}

// Generate answers a free-form user message. history should already be
// windowed to the turns the caller wants the model to see.
func (g *Generator) Generate(ctx context.Context, userMessage string, draft *domain.ComplaintDraft, history []domain.Turn) string {
	passages := g.search.Search(ctx, userMessage, g.topK)
	knowledge := noKnowledgeSentinel
	if len(passages) > 0 {
		knowledge = strings.Join(passages, "\n")
	}

	messages := []openai.ChatCompletionMessage{
		{
			Role: openai.ChatMessageRoleSystem,
			Content: fmt.Sprintf(systemPromptFormat,
				knowledge,
				orNotProvided(draft.Name),
				orNotProvided(draft.PhoneNumber),
				orNotProvided(draft.Email),
				orNotProvided(draft.Details),
			),
		},
	}
	for _, turn := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleUser,
			Content: fmt.Sprintf("%s: %s", turn.Role, turn.Content),
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: "User: " + userMessage,
	})

	resp, err := g.llm.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Messages:    messages,
		Temperature: g.temperature,
	})
	if err != nil {
		return fmt.Sprintf("I apologize, but I'm having trouble processing your request right now. Please try again. Error: %v", err)
	}
	if len(resp.Choices) == 0 {
		return fmt.Sprintf("I apologize, but I'm having trouble processing your request right now. Please try again. Error: %v", "empty completion")
	}
	return resp.Choices[0].Message.Content
}

func orNotProvided(v string) string {
	if v == "" {
		return "Not provided"
	}
	return v
}
