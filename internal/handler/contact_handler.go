package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/smsforge/campaign-service/internal/service"
)

// ContactHandler handles contact HTTP requests
type ContactHandler struct {
	contactService service.ContactService
	logger         *slog.Logger
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contactService service.ContactService, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		logger:         logger,
	}
}

// ListContacts handles GET /campaigns/{id}/contacts
func (h *ContactHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	campaignID, err := urlParamID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ID", "Invalid campaign ID")
		return
	}

	contacts, err := h.contactService.ListByCampaign(r.Context(), user.AccountID, campaignID)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, contacts)
}

// CreateContact handles POST /campaigns/{id}/contacts
func (h *ContactHandler) CreateContact(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	campaignID, err := urlParamID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ID", "Invalid campaign ID")
		return
	}

	var req service.CreateContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON format")
		return
	}

	contact, err := h.contactService.Create(r.Context(), user.AccountID, campaignID, &req)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondCreated(w, contact)
}

// GetContact handles GET /contacts/{id}
func (h *ContactHandler) GetContact(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	id, err := urlParamID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ID", "Invalid contact ID")
		return
	}

	contact, err := h.contactService.GetByID(r.Context(), user.AccountID, id)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, contact)
}

// UpdateContact handles PUT /contacts/{id}
func (h *ContactHandler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	id, err := urlParamID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ID", "Invalid contact ID")
		return
	}

	var req service.UpdateContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON format")
		return
	}

	contact, err := h.contactService.Update(r.Context(), user.AccountID, id, &req)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, contact)
}

// DeleteContact handles DELETE /contacts/{id}
func (h *ContactHandler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	id, err := urlParamID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ID", "Invalid contact ID")
		return
	}

	if err := h.contactService.Delete(r.Context(), user.AccountID, id); err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, map[string]string{"message": "Contact deleted successfully"})
}
