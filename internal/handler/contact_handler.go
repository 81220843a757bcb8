package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/trustaudithq/backend/internal/model"
	"github.com/trustaudithq/backend/internal/service"
)

const maxMessageLength = 5000

// ContactHandler handles contact form submissions.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a ContactHandler with the given service.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// submitResponse is the 201 body for a processed submission.
type submitResponse struct {
	Success  bool                     `json:"success"`
	Message  string                   `json:"message"`
	ID       string                   `json:"id"`
	Data     *model.ContactSubmission `json:"data"`
	Fallback bool                     `json:"fallback,omitempty"`
}

// Submit handles POST /api/contact. Other methods get a JSON 405, which is
// why the method check lives here instead of the mux pattern.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusMethodNotAllowed)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Method not allowed"})
		return
	}

	var in model.SubmitInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Invalid JSON body"})
		return
	}

	if len([]rune(in.Message)) > maxMessageLength {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Message too long"})
		return
	}

	draft, err := in.Normalize()
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	sub, err := h.contactService.Submit(r.Context(), draft)
	if err != nil {
		slog.Error("contact submission failed", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error": "The enquiry service is misconfigured. Please email us directly while we fix it.",
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(submitResponse{
		Success:  true,
		Message:  "Thank you for your enquiry. We'll be in touch within one business day.",
		ID:       sub.ID,
		Data:     sub,
		Fallback: sub.Fallback,
	})
}
