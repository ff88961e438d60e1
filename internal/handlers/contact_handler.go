package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"loomhouse/internal/models"
	"loomhouse/internal/pagination"
	"loomhouse/internal/services"
)

// ContactHandler handles the contact form and its admin inbox
type ContactHandler struct {
	contactService services.ContactServicer
	auditService   services.AuditServicer
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(contactService services.ContactServicer, auditService services.AuditServicer) *ContactHandler {
	return &ContactHandler{contactService: contactService, auditService: auditService}
}

// SubmitContactRequest is the public contact form payload
type SubmitContactRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=100"`
	Email   string `json:"email" binding:"required,email,max=255"`
	Company string `json:"company" binding:"max=150"`
	Phone   string `json:"phone" binding:"max=40"`
	Subject string `json:"subject" binding:"max=200"`
	Message string `json:"message" binding:"required,min=1,max=5000"`
}

// UpdateContactStatusRequest moves an inquiry through the inbox
type UpdateContactStatusRequest struct {
	Status models.ContactStatus `json:"status" binding:"required,contact_status"`
}

// SubmitContact stores a contact form submission
// @Summary     Send a message
// @Tags        public
// @Accept      json
// @Produce     json
// @Param       request body SubmitContactRequest true "Inquiry"
// @Success     201 {object} MessageResponse "Message received"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /public/contacts [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req SubmitContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	_, err := h.contactService.SubmitContact(c.Request.Context(), services.ContactInput{
		Name:      req.Name,
		Email:     req.Email,
		Company:   req.Company,
		Phone:     req.Phone,
		Subject:   req.Subject,
		Message:   req.Message,
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Thank you, we will get back to you soon"})
}

// ListContacts handles the admin inbox
// @Summary     List contact messages
// @Tags        contacts
// @Produce     json
// @Security    BearerAuth
// @Param       status    query string false "new, read or archived"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Contact] "Paginated messages, newest first"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /contacts [get]
func (h *ContactHandler) ListContacts(c *gin.Context) {
	if _, err := getSession(c); err != nil {
		respondWithError(c, err)
		return
	}

	var query struct {
		pagination.PageRequest
		Status models.ContactStatus `form:"status" binding:"omitempty,contact_status"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	var status *models.ContactStatus
	if query.Status != "" {
		status = &query.Status
	}

	result, err := h.contactService.ListContacts(c.Request.Context(), status, query.PageRequest)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetContactByID handles the retrieval of a contact message
// @Summary     Get contact message
// @Tags        contacts
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Contact ID"
// @Success     200 {object} models.Contact "Message"
// @Failure     400 {object} ErrorResponse "Invalid contact ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Message not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /contacts/{id} [get]
func (h *ContactHandler) GetContactByID(c *gin.Context) {
	if _, err := getSession(c); err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	contact, err := h.contactService.GetContactByID(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"contact": contact})
}

// UpdateContactStatus marks a message read or archived
// @Summary     Update contact status
// @Tags        contacts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                     true "Contact ID"
// @Param       request body UpdateContactStatusRequest true "New status"
// @Success     200 {object} models.Contact "Updated message"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Message not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /contacts/{id}/status [patch]
func (h *ContactHandler) UpdateContactStatus(c *gin.Context) {
	if _, err := getSession(c); err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateContactStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	contact, err := h.contactService.UpdateContactStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondWithError(c, err)
		return
	}

	recordAudit(c, h.auditService, services.AuditActionUpdate, "contact", id,
		map[string]interface{}{"status": contact.Status})

	c.JSON(http.StatusOK, gin.H{"contact": contact})
}

// DeleteContact handles the deletion of a contact message
// @Summary     Delete contact message
// @Tags        contacts
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Contact ID"
// @Success     200 {object} MessageResponse "Message deleted"
// @Failure     400 {object} ErrorResponse "Invalid contact ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Message not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /contacts/{id} [delete]
func (h *ContactHandler) DeleteContact(c *gin.Context) {
	if _, err := getSession(c); err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.contactService.DeleteContact(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}

	recordAudit(c, h.auditService, services.AuditActionDelete, "contact", id, nil)

	c.JSON(http.StatusOK, gin.H{"message": "Contact deleted successfully"})
}
