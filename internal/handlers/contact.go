package handlers

import (
	"fmt"
	"net/http"

	"party-package-store/internal/models"
	"party-package-store/internal/services"
)

// ContactHandler relays contact form submissions to the shop inbox
type ContactHandler struct {
	email        services.EmailService
	contactEmail string
}

// NewContactHandler creates a new contact handler. contactEmail is the
// configured inbox; a client-supplied recipient is ignored so the endpoint
// cannot be used to spam arbitrary addresses.
func NewContactHandler(email services.EmailService, contactEmail string) *ContactHandler {
	return &ContactHandler{
		email:        email,
		contactEmail: contactEmail,
	}
}

type contactRequest struct {
	AdminEmail string               `json:"adminEmail"`
	FormData   services.ContactForm `json:"formData"`
}

// SendEmail handles POST /api/send-email
func (h *ContactHandler) SendEmail(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := req.FormData.Validate(); err != nil {
		writeError(w, fmt.Errorf("%v: %w", err, models.ErrInvalidInput))
		return
	}

	if err := h.email.SendContactInquiry(h.contactEmail, &req.FormData); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "inquiry sent"})
}
