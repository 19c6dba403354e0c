// Package complaints provides the HTTP client to the complaint service.
package complaints

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nkapoor/complaintdesk/internal/domain"
)

// ErrNotFound is returned by Read when the service has no complaint with
// the given ID.
var ErrNotFound = errors.New("complaint not found")

// Client is a thin client to the complaint REST API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client against the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type createRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	Details     string `json:"complaint_details"`
}

type createResponse struct {
	ComplaintID string `json:"complaint_id"`
	Message     string `json:"message"`
}

// Create submits a completed draft and returns the stored complaint with
// its assigned ID.
func (c *Client) Create(ctx context.Context, draft domain.ComplaintDraft) (*domain.Complaint, error) {
	body, err := json.Marshal(createRequest{
		Name:        draft.Name,
		PhoneNumber: draft.PhoneNumber,
		Email:       draft.Email,
		Details:     draft.Details,
	})
	if err != nil {
		return nil, fmt.Errorf("encode complaint: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/complaints", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("connection error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("failed to create complaint: %s", readErrorBody(resp.Body))
	}

	var out createResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode create response: %w", err)
	}

	return &domain.Complaint{
		ID:          out.ComplaintID,
		Name:        draft.Name,
		PhoneNumber: draft.PhoneNumber,
		Email:       draft.Email,
		Details:     draft.Details,
	}, nil
}

// Read retrieves a complaint by ID. Missing complaints and service
// failures both come back as errors with distinguishable text; callers
// treat them identically.
func (c *Client) Read(ctx context.Context, id string) (*domain.Complaint, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/complaints/"+id, nil)
	if err != nil {
		return nil, fmt.Errorf("build read request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("connection error: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("failed to retrieve complaint: %s", readErrorBody(resp.Body))
	}

	var complaint domain.Complaint
	if err := json.NewDecoder(resp.Body).Decode(&complaint); err != nil {
		return nil, fmt.Errorf("decode complaint: %w", err)
	}
	return &complaint, nil
}

func readErrorBody(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(data) == 0 {
		return "no response body"
	}
	return strings.TrimSpace(string(data))
}
