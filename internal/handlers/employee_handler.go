package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"loomhouse/internal/pagination"
	"loomhouse/internal/services"
)

// EmployeeHandler handles the about-page team listing
type EmployeeHandler struct {
	employeeService services.EmployeeServicer
	auditService    services.AuditServicer
}

// NewEmployeeHandler creates a new EmployeeHandler
func NewEmployeeHandler(employeeService services.EmployeeServicer, auditService services.AuditServicer) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService, auditService: auditService}
}

// EmployeeRequest is the payload for creating or replacing an employee
type EmployeeRequest struct {
	Name       string `json:"name" binding:"required,min=1,max=100"`
	Title      string `json:"title" binding:"max=100"`
	Department string `json:"department" binding:"max=100"`
	Email      string `json:"email" binding:"omitempty,email,max=255"`
	PhotoURL   string `json:"photo_url" binding:"omitempty,url"`
	Bio        string `json:"bio" binding:"max=2000"`
	SortOrder  int    `json:"sort_order"`
	IsActive   *bool  `json:"is_active"`
}

func (r EmployeeRequest) input() services.EmployeeInput {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return services.EmployeeInput{
		Name:       r.Name,
		Title:      r.Title,
		Department: r.Department,
		Email:      r.Email,
		PhotoURL:   r.PhotoURL,
		Bio:        r.Bio,
		SortOrder:  r.SortOrder,
		IsActive:   active,
	}
}

// CreateEmployee handles the creation of an employee
// @Summary     Create an employee
// @Tags        employees
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body EmployeeRequest true "Employee details"
// @Success     201 {object} models.Employee "Employee created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /employees [post]
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	if _, err := getSession(c); err != nil {
		respondWithError(c, err)
		return
	}

	var req EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	employee, err := h.employeeService.CreateEmployee(c.Request.Context(), req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}

	recordAudit(c, h.auditService, services.AuditActionCreate, "employee", employee.ID,
		map[string]interface{}{"name": employee.Name})

	c.JSON(http.StatusCreated, gin.H{"employee": employee})
}

// ListEmployees handles the admin team table
// @Summary     List employees
// @Tags        employees
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Employee] "Paginated employees"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /employees [get]
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	if _, err := getSession(c); err != nil {
		respondWithError(c, err)
		return
	}
	h.list(c, false)
}

// ListPublicEmployees lists active employees for the about page
// @Summary     Team
// @Tags        public
// @Produce     json
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Employee] "Paginated employees"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /public/employees [get]
func (h *EmployeeHandler) ListPublicEmployees(c *gin.Context) {
	h.list(c, true)
}

func (h *EmployeeHandler) list(c *gin.Context, activeOnly bool) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	result, err := h.employeeService.ListEmployees(c.Request.Context(), activeOnly, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetEmployeeByID handles the retrieval of an employee
// @Summary     Get employee by ID
// @Tags        employees
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Employee ID"
// @Success     200 {object} models.Employee "Employee details"
// @Failure     400 {object} ErrorResponse "Invalid employee ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Employee not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /employees/{id} [get]
func (h *EmployeeHandler) GetEmployeeByID(c *gin.Context) {
	if _, err := getSession(c); err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	employee, err := h.employeeService.GetEmployeeByID(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"employee": employee})
}

// UpdateEmployee replaces an employee record
// @Summary     Update employee
// @Tags        employees
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string          true "Employee ID"
// @Param       request body EmployeeRequest true "Employee details"
// @Success     200 {object} models.Employee "Updated employee"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Employee not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /employees/{id} [put]
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	if _, err := getSession(c); err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	employee, err := h.employeeService.UpdateEmployee(c.Request.Context(), id, req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}

	recordAudit(c, h.auditService, services.AuditActionUpdate, "employee", id,
		map[string]interface{}{"name": employee.Name, "is_active": employee.IsActive})

	c.JSON(http.StatusOK, gin.H{"employee": employee})
}

// DeleteEmployee handles the deletion of an employee
// @Summary     Delete employee
// @Tags        employees
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Employee ID"
// @Success     200 {object} MessageResponse "Employee deleted"
// @Failure     400 {object} ErrorResponse "Invalid employee ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Employee not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /employees/{id} [delete]
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	if _, err := getSession(c); err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.employeeService.DeleteEmployee(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}

	recordAudit(c, h.auditService, services.AuditActionDelete, "employee", id, nil)

	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted successfully"})
}
