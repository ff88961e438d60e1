package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"loomhouse/internal/services"
)

// BadgeRequest is the payload for CSR icons and service offerings
type BadgeRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=1000"`
	IconURL     string `json:"icon_url" binding:"omitempty,url"`
	SortOrder   int    `json:"sort_order"`
	IsActive    *bool  `json:"is_active"`
}

func (r BadgeRequest) input() services.BadgeInput {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return services.BadgeInput{
		Title:       r.Title,
		Description: r.Description,
		IconURL:     r.IconURL,
		SortOrder:   r.SortOrder,
		IsActive:    active,
	}
}

// CSRIconHandler handles the CSR page badges
type CSRIconHandler struct {
	csrIconService services.CSRIconServicer
	auditService   services.AuditServicer
}

// NewCSRIconHandler creates a new CSRIconHandler
func NewCSRIconHandler(csrIconService services.CSRIconServicer, auditService services.AuditServicer) *CSRIconHandler {
	return &CSRIconHandler{csrIconService: csrIconService, auditService: auditService}
}

// CreateCSRIcon handles the creation of a CSR icon
// @Summary     Create a CSR icon
// @Tags        csr-icons
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body BadgeRequest true "Icon details"
// @Success     201 {object} models.CSRIcon "Icon created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /csr-icons [post]
func (h *CSRIconHandler) CreateCSRIcon(c *gin.Context) {
	if _, err := getSession(c); err != nil {
		respondWithError(c, err)
		return
	}

	var req BadgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	icon, err := h.csrIconService.CreateCSRIcon(c.Request.Context(), req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}

	recordAudit(c, h.auditService, services.AuditActionCreate, "csr_icon", icon.ID,
		map[string]interface{}{"title": icon.Title})

	c.JSON(http.StatusCreated, gin.H{"csr_icon": icon})
}

// ListCSRIcons lists every CSR icon for the admin panel
// @Summary     List CSR icons
// @Tags        csr-icons
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  models.CSRIcon "Icons in display order"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /csr-icons [get]
func (h *CSRIconHandler) ListCSRIcons(c *gin.Context) {
	if _, err := getSession(c); err != nil {
		respondWithError(c, err)
		return
	}
	h.list(c, false)
}

// ListPublicCSRIcons lists active CSR icons
// @Summary     CSR icons
// @Tags        public
// @Produce     json
// @Success     200 {array}  models.CSRIcon "Icons in display order"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /public/csr-icons [get]
func (h *CSRIconHandler) ListPublicCSRIcons(c *gin.Context) {
	h.list(c, true)
}

func (h *CSRIconHandler) list(c *gin.Context, activeOnly bool) {
	icons, err := h.csrIconService.ListCSRIcons(c.Request.Context(), activeOnly)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"csr_icons": icons})
}

// GetCSRIconByID handles the retrieval of a CSR icon
// @Summary     Get CSR icon by ID
// @Tags        csr-icons
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Icon ID"
// @Success     200 {object} models.CSRIcon "Icon details"
// @Failure     400 {object} ErrorResponse "Invalid icon ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Icon not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /csr-icons/{id} [get]
func (h *CSRIconHandler) GetCSRIconByID(c *gin.Context) {
	if _, err := getSession(c); err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	icon, err := h.csrIconService.GetCSRIconByID(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"csr_icon": icon})
}

// UpdateCSRIcon replaces a CSR icon
// @Summary     Update CSR icon
// @Tags        csr-icons
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string       true "Icon ID"
// @Param       request body BadgeRequest true "Icon details"
// @Success     200 {object} models.CSRIcon "Updated icon"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Icon not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /csr-icons/{id} [put]
func (h *CSRIconHandler) UpdateCSRIcon(c *gin.Context) {
	if _, err := getSession(c); err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req BadgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	icon, err := h.csrIconService.UpdateCSRIcon(c.Request.Context(), id, req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}

	recordAudit(c, h.auditService, services.AuditActionUpdate, "csr_icon", id,
		map[string]interface{}{"title": icon.Title, "is_active": icon.IsActive})

	c.JSON(http.StatusOK, gin.H{"csr_icon": icon})
}

// DeleteCSRIcon handles the deletion of a CSR icon
// @Summary     Delete CSR icon
// @Tags        csr-icons
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Icon ID"
// @Success     200 {object} MessageResponse "Icon deleted"
// @Failure     400 {object} ErrorResponse "Invalid icon ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Icon not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /csr-icons/{id} [delete]
func (h *CSRIconHandler) DeleteCSRIcon(c *gin.Context) {
	if _, err := getSession(c); err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.csrIconService.DeleteCSRIcon(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}

	recordAudit(c, h.auditService, services.AuditActionDelete, "csr_icon", id, nil)

	c.JSON(http.StatusOK, gin.H{"message": "CSR icon deleted successfully"})
}

// ServiceOfferingHandler handles the services page entries
type ServiceOfferingHandler struct {
	offeringService services.ServiceOfferingServicer
	auditService    services.AuditServicer
}

// NewServiceOfferingHandler creates a new ServiceOfferingHandler
func NewServiceOfferingHandler(offeringService services.ServiceOfferingServicer, auditService services.AuditServicer) *ServiceOfferingHandler {
	return &ServiceOfferingHandler{offeringService: offeringService, auditService: auditService}
}

// CreateServiceOffering handles the creation of a service offering
// @Summary     Create a service offering
// @Tags        services
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body BadgeRequest true "Offering details; description is shown as the summary"
// @Success     201 {object} models.ServiceOffering "Offering created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /services [post]
func (h *ServiceOfferingHandler) CreateServiceOffering(c *gin.Context) {
	if _, err := getSession(c); err != nil {
		respondWithError(c, err)
		return
	}

	var req BadgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	offering, err := h.offeringService.CreateServiceOffering(c.Request.Context(), req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}

	recordAudit(c, h.auditService, services.AuditActionCreate, "service_offering", offering.ID,
		map[string]interface{}{"title": offering.Title})

	c.JSON(http.StatusCreated, gin.H{"service": offering})
}

// ListServiceOfferings lists every offering for the admin panel
// @Summary     List service offerings
// @Tags        services
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  models.ServiceOffering "Offerings in display order"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /services [get]
func (h *ServiceOfferingHandler) ListServiceOfferings(c *gin.Context) {
	if _, err := getSession(c); err != nil {
		respondWithError(c, err)
		return
	}
	h.list(c, false)
}

// ListPublicServiceOfferings lists active offerings
// @Summary     Services
// @Tags        public
// @Produce     json
// @Success     200 {array}  models.ServiceOffering "Offerings in display order"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /public/services [get]
func (h *ServiceOfferingHandler) ListPublicServiceOfferings(c *gin.Context) {
	h.list(c, true)
}

func (h *ServiceOfferingHandler) list(c *gin.Context, activeOnly bool) {
	offerings, err := h.offeringService.ListServiceOfferings(c.Request.Context(), activeOnly)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": offerings})
}

// GetServiceOfferingByID handles the retrieval of a service offering
// @Summary     Get service offering by ID
// @Tags        services
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Service ID"
// @Success     200 {object} models.ServiceOffering "Service details"
// @Failure     400 {object} ErrorResponse "Invalid service ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Service not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /services/{id} [get]
func (h *ServiceOfferingHandler) GetServiceOfferingByID(c *gin.Context) {
	if _, err := getSession(c); err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	offering, err := h.offeringService.GetServiceOfferingByID(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"service": offering})
}

// UpdateServiceOffering replaces a service offering
// @Summary     Update service offering
// @Tags        services
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string       true "Offering ID"
// @Param       request body BadgeRequest true "Offering details"
// @Success     200 {object} models.ServiceOffering "Updated offering"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Offering not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /services/{id} [put]
func (h *ServiceOfferingHandler) UpdateServiceOffering(c *gin.Context) {
	if _, err := getSession(c); err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req BadgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	offering, err := h.offeringService.UpdateServiceOffering(c.Request.Context(), id, req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}

	recordAudit(c, h.auditService, services.AuditActionUpdate, "service_offering", id,
		map[string]interface{}{"title": offering.Title, "is_active": offering.IsActive})

	c.JSON(http.StatusOK, gin.H{"service": offering})
}

// DeleteServiceOffering handles the deletion of a service offering
// @Summary     Delete service offering
// @Tags        services
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Offering ID"
// @Success     200 {object} MessageResponse "Offering deleted"
// @Failure     400 {object} ErrorResponse "Invalid offering ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Offering not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /services/{id} [delete]
func (h *ServiceOfferingHandler) DeleteServiceOffering(c *gin.Context) {
	if _, err := getSession(c); err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.offeringService.DeleteServiceOffering(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}

	recordAudit(c, h.auditService, services.AuditActionDelete, "service_offering", id, nil)

	c.JSON(http.StatusOK, gin.H{"message": "Service offering deleted successfully"})
}
