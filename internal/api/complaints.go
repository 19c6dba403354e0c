package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nkapoor/complaintdesk/internal/domain"
	"github.com/nkapoor/complaintdesk/internal/store"
)

// maxRequestBodySize limits complaint payloads to 1MB.
const maxRequestBodySize = 1 << 20

var (
	phoneFormat = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
	emailFormat = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
)

// ComplaintHandler serves complaint create and read endpoints.
type ComplaintHandler struct {
	repo store.Repository
}

// NewComplaintHandler creates a complaint handler backed by the repository.
func NewComplaintHandler(repo store.Repository) *ComplaintHandler {
	return &ComplaintHandler{repo: repo}
}

// RegisterRoutes mounts complaint routes on the router.
func (h *ComplaintHandler) RegisterRoutes(r chi.Router) {
	r.Post("/complaints", h.Create)
	r.Get("/complaints/{complaint_id}", h.Get)
}

type createComplaintRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	Details     string `json:"complaint_details"`
}

func (req *createComplaintRequest) validate() string {
	if strings.TrimSpace(req.Name) == "" {
		return "name is required"
	}
	if !phoneFormat.MatchString(req.PhoneNumber) {
		return "phone_number must be 10-15 digits with an optional leading +"
	}
	if !emailFormat.MatchString(req.Email) {
		return "email is not a valid address"
	}
	if strings.TrimSpace(req.Details) == "" {
		return "complaint_details is required"
	}
	return ""
}

type createComplaintResponse struct {
	ComplaintID string `json:"complaint_id"`
	Message     string `json:"message"`
}

// Create registers a new complaint and returns its assigned ID.
func (h *ComplaintHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createComplaintRequest
	body := http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if msg := req.validate(); msg != "" {
		Error(w, http.StatusUnprocessableEntity, msg)
		return
	}

	complaint := &domain.Complaint{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Details:     strings.TrimSpace(req.Details),
		CreatedAt:   time.Now().UTC(),
	}

	if err := h.repo.CreateComplaint(r.Context(), complaint); err != nil {
		slog.Error("failed to create complaint", "error", err)
		Error(w, http.StatusInternalServerError, "failed to create complaint")
		return
	}

	slog.Info("complaint created", "complaint_id", complaint.ID)
	JSON(w, http.StatusOK, createComplaintResponse{
		ComplaintID: complaint.ID,
		Message:     "Complaint created successfully",
	})
}

// Get returns a complaint by its ID.
func (h *ComplaintHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "complaint_id")

	complaint, err := h.repo.GetComplaint(r.Context(), id)
	if err != nil {
		slog.Error("failed to load complaint", "complaint_id", id, "error", err)
		Error(w, http.StatusInternalServerError, "failed to retrieve complaint")
		return
	}
	if complaint == nil {
		Error(w, http.StatusNotFound, "complaint not found")
		return
	}

	JSON(w, http.StatusOK, complaint)
}
