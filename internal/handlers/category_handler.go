package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "loomhouse/internal/errors"
	"loomhouse/internal/hierarchy"
	"loomhouse/internal/middleware"
	"loomhouse/internal/pagination"
	"loomhouse/internal/services"
	"loomhouse/internal/uuid"
)

// CategoryHandler handles category-related requests
type CategoryHandler struct {
	categoryService services.CategoryServicer
	auditService    services.AuditServicer
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService services.CategoryServicer, auditService services.AuditServicer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, auditService: auditService}
}

// CreateCategoryRequest represents the request payload for creating a category
type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=100"`
	Slug        string  `json:"slug" binding:"omitempty,slug,max=120"`
	Description string  `json:"description" binding:"max=1000"`
	ImageURL    string  `json:"image_url" binding:"omitempty,url"`
	ParentID    *string `json:"parent_id" binding:"omitempty,optional_uuid"`
	SortOrder   int     `json:"sort_order"`
	IsActive    *bool   `json:"is_active"`
}

// CreateNestedCategoryRequest is submitted by the nested-category picker
type CreateNestedCategoryRequest struct {
	ParentID      string `json:"parent_id" binding:"required,uuid_id"`
	SubcategoryID string `json:"subcategory_id" binding:"required,uuid_id"`
	Name          string `json:"name" binding:"required,min=1,max=100"`
	Slug          string `json:"slug" binding:"omitempty,slug,max=120"`
	Description   string `json:"description" binding:"max=1000"`
	ImageURL      string `json:"image_url" binding:"omitempty,url"`
	SortOrder     int    `json:"sort_order"`
}

// UpdateCategoryRequest represents the request payload for updating a
// category. An empty parent_id moves the category to the top level.
type UpdateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Slug        *string `json:"slug" binding:"omitempty,slug|len=0,max=120"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	ImageURL    *string `json:"image_url" binding:"omitempty,url|len=0"`
	ParentID    *string `json:"parent_id" binding:"omitempty,optional_uuid"`
	SortOrder   *int    `json:"sort_order"`
	IsActive    *bool   `json:"is_active"`
}

// CreateCategory handles the creation of a new category
// @Summary     Create a category
// @Description Create a main category, or a subcategory when parent_id is set
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateCategoryRequest true "Category details"
// @Success     201 {object} models.Category "Category created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Parent not found"
// @Failure     409 {object} ErrorResponse "Duplicate name or slug"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	if _, err := getSession(c); err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), services.CategoryInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		ParentID:    req.ParentID,
		SortOrder:   req.SortOrder,
		IsActive:    active,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	recordAudit(c, h.auditService, services.AuditActionCreate, "category", category.ID,
		map[string]interface{}{"name": category.Name, "parent_id": category.ParentID})

	c.JSON(http.StatusCreated, gin.H{"category": category})
}

// CreateNestedCategory handles the nested-category picker submission
// @Summary     Create a nested category
// @Description Create a third-level category under a subcategory of the chosen main category
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateNestedCategoryRequest true "Picker selection and category details"
// @Success     201 {object} models.Category "Category created"
// @Failure     400 {object} ErrorResponse "Invalid input or subcategory outside the chosen main category"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories/nested [post]
func (h *CategoryHandler) CreateNestedCategory(c *gin.Context) {
	if _, err := getSession(c); err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateNestedCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	category, err := h.categoryService.CreateNestedCategory(c.Request.Context(), services.NestedCategoryInput{
		ParentID:      req.ParentID,
		SubcategoryID: req.SubcategoryID,
		Name:          req.Name,
		Slug:          req.Slug,
		Description:   req.Description,
		ImageURL:      req.ImageURL,
		SortOrder:     req.SortOrder,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	recordAudit(c, h.auditService, services.AuditActionCreate, "category", category.ID,
		map[string]interface{}{"name": category.Name, "parent_id": category.ParentID, "main_id": req.ParentID})

	c.JSON(http.StatusCreated, gin.H{"category": category})
}

// ListCategories handles the admin category table
// @Summary     List categories
// @Description Paginated categories, each with its level and breadcrumb path
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Param       parent_id query string false "Only children of this category; empty for main categories"
// @Param       level     query string false "main, sub, nested or unknown"
// @Param       search    query string false "Name contains"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[services.CategoryView] "Paginated categories"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	if _, err := getSession(c); err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	var filter services.CategoryFilter
	if parentID, ok := c.GetQuery("parent_id"); ok {
		if parentID != "" && !uuid.IsValid(parentID) {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid parent_id"))
			return
		}
		filter.ParentID = &parentID
	}
	if raw := c.Query("level"); raw != "" {
		level := hierarchy.Level(raw)
		switch level {
		case hierarchy.LevelMain, hierarchy.LevelSub, hierarchy.LevelNested, hierarchy.LevelUnknown:
			filter.Level = &level
		default:
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "level must be one of main, sub, nested, unknown"))
			return
		}
	}
	filter.Search = c.Query("search")

	result, err := h.categoryService.ListCategories(c.Request.Context(), filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetCategoryByID handles the retrieval of a specific category
// @Summary     Get category by ID
// @Description Get a category with its level and breadcrumb path
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Category ID"
// @Success     200 {object} services.CategoryView "Category details"
// @Failure     400 {object} ErrorResponse "Invalid category ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories/{id} [get]
func (h *CategoryHandler) GetCategoryByID(c *gin.Context) {
	if _, err := getSession(c); err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	view, err := h.categoryService.GetCategoryByID(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": view})
}

// GetChildren lists the direct children of a category. The nested-category
// picker uses it to fill the subcategory dropdown.
// @Summary     Get category children
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Category ID"
// @Success     200 {array}  models.Category "Children in display order"
// @Failure     400 {object} ErrorResponse "Invalid category ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories/{id}/children [get]
func (h *CategoryHandler) GetChildren(c *gin.Context) {
	if _, err := getSession(c); err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	children, err := h.categoryService.GetChildren(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": children})
}

// UpdateCategory handles the update of a category
// @Summary     Update category
// @Description Update a category. Moving it under itself or a descendant is rejected.
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                true "Category ID"
// @Param       request body UpdateCategoryRequest true "Updated category details"
// @Success     200 {object} models.Category "Updated category"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     409 {object} ErrorResponse "Duplicate name or slug"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	if _, err := getSession(c); err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), id, services.CategoryUpdate{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		ParentID:    req.ParentID,
		SortOrder:   req.SortOrder,
		IsActive:    req.IsActive,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	recordAudit(c, h.auditService, services.AuditActionUpdate, "category", id,
		map[string]interface{}{"name": category.Name, "parent_id": category.ParentID, "is_active": category.IsActive})

	c.JSON(http.StatusOK, gin.H{"category": category})
}

// DeleteCategory handles the deletion of a category
// @Summary     Delete category
// @Description Delete a category that has no subcategories and no products
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Category ID"
// @Success     200 {object} MessageResponse "Category deleted"
// @Failure     400 {object} ErrorResponse "Invalid category ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     409 {object} ErrorResponse "Category still has children or products"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	if _, err := getSession(c); err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}

	recordAudit(c, h.auditService, services.AuditActionDelete, "category", id, nil)

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}

// Integrity reports categories whose parent does not resolve
// @Summary     Category integrity report
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.IntegrityReport "Dangling categories"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories/integrity [get]
func (h *CategoryHandler) Integrity(c *gin.Context) {
	if _, err := getSession(c); err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.categoryService.Integrity(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// Navbar returns the public three-level category menu
// @Summary     Category menu
// @Description Active categories as a tree of main, sub and nested levels. Supports If-None-Match.
// @Tags        public
// @Produce     json
// @Param       If-None-Match header string false "ETag from a previous response"
// @Success     200 {array}  hierarchy.TreeNode "Menu tree"
// @Success     304 "Not modified"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /public/categories/navbar [get]
func (h *CategoryHandler) Navbar(c *gin.Context) {
	timing := middleware.StartTiming(c.Request.Context(), "navbar", "category tree")
	tree, etag, err := h.categoryService.NavbarTree(c.Request.Context())
	timing.Stop()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("ETag", etag)
	c.Header("Cache-Control", "public, max-age=60")
	if etagMatches(c.GetHeader("If-None-Match"), etag) {
		c.Status(http.StatusNotModified)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": tree})
}

// etagMatches reports whether an If-None-Match header value names etag.
func etagMatches(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate == "*" || candidate == etag {
			return true
		}
	}
	return false
}

// Breadcrumb returns the trail from the main category down to a category
// @Summary     Category breadcrumb
// @Tags        public
// @Produce     json
// @Param       id path string true "Category ID"
// @Success     200 {array}  hierarchy.Category "Root first"
// @Failure     400 {object} ErrorResponse "Invalid category ID"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /public/categories/{id}/breadcrumb [get]
func (h *CategoryHandler) Breadcrumb(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	trail, err := h.categoryService.Breadcrumb(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"breadcrumb": trail})
}
