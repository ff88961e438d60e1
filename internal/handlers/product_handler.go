package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "loomhouse/internal/errors"
	"loomhouse/internal/middleware"
	"loomhouse/internal/pagination"
	"loomhouse/internal/services"
	"loomhouse/internal/uuid"
)

// ProductHandler handles catalog requests
type ProductHandler struct {
	productService  services.ProductServicer
	categoryService services.CategoryServicer
	auditService    services.AuditServicer
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService services.ProductServicer, categoryService services.CategoryServicer, auditService services.AuditServicer) *ProductHandler {
	return &ProductHandler{productService: productService, categoryService: categoryService, auditService: auditService}
}

// CreateProductRequest represents the request payload for creating a product
type CreateProductRequest struct {
	CategoryID  string          `json:"category_id" binding:"required,uuid_id"`
	Name        string          `json:"name" binding:"required,min=1,max=150"`
	Slug        string          `json:"slug" binding:"omitempty,slug,max=160"`
	Description string          `json:"description" binding:"max=5000"`
	Composition string          `json:"composition" binding:"max=255"`
	GSM         int             `json:"gsm" binding:"gte=0"`
	MinOrderQty int             `json:"min_order_qty" binding:"gte=0"`
	PriceFrom   decimal.Decimal `json:"price_from" swaggertype:"string"`
	Currency    string          `json:"currency" binding:"omitempty,currency"`
	ImageURL    string          `json:"image_url" binding:"omitempty,url"`
	IsFeatured  bool            `json:"is_featured"`
	IsActive    *bool           `json:"is_active"`
	SortOrder   int             `json:"sort_order"`
}

// UpdateProductRequest represents the request payload for updating a product
type UpdateProductRequest struct {
	CategoryID  *string          `json:"category_id" binding:"omitempty,uuid_id"`
	Name        *string          `json:"name" binding:"omitempty,min=1,max=150"`
	Slug        *string          `json:"slug" binding:"omitempty,slug|len=0,max=160"`
	Description *string          `json:"description" binding:"omitempty,max=5000"`
	Composition *string          `json:"composition" binding:"omitempty,max=255"`
	GSM         *int             `json:"gsm" binding:"omitempty,gte=0"`
	MinOrderQty *int             `json:"min_order_qty" binding:"omitempty,gte=0"`
	PriceFrom   *decimal.Decimal `json:"price_from" swaggertype:"string"`
	Currency    *string          `json:"currency" binding:"omitempty,currency"`
	ImageURL    *string          `json:"image_url" binding:"omitempty,url|len=0"`
	IsFeatured  *bool            `json:"is_featured"`
	IsActive    *bool            `json:"is_active"`
	SortOrder   *int             `json:"sort_order"`
}

// CreateProduct handles the creation of a product
// @Summary     Create a product
// @Tags        products
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateProductRequest true "Product details"
// @Success     201 {object} models.Product "Product created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     409 {object} ErrorResponse "Duplicate slug"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /products [post]
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	if _, err := getSession(c); err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), services.ProductInput{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Composition: req.Composition,
		GSM:         req.GSM,
		MinOrderQty: req.MinOrderQty,
		PriceFrom:   req.PriceFrom,
		Currency:    req.Currency,
		ImageURL:    req.ImageURL,
		IsFeatured:  req.IsFeatured,
		IsActive:    active,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	recordAudit(c, h.auditService, services.AuditActionCreate, "product", product.ID,
		map[string]interface{}{"name": product.Name, "category_id": product.CategoryID})

	c.JSON(http.StatusCreated, gin.H{"product": product})
}

// ListProducts handles the admin product table
// @Summary     List products
// @Tags        products
// @Produce     json
// @Security    BearerAuth
// @Param       category_id query string false "Only products directly in this category"
// @Param       search      query string false "Name or composition contains"
// @Param       page        query int    false "Page number (default 1)"
// @Param       page_size   query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Product] "Paginated products"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /products [get]
func (h *ProductHandler) ListProducts(c *gin.Context) {
	if _, err := getSession(c); err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	filter := services.ProductFilter{Search: c.Query("search")}
	if categoryID := c.Query("category_id"); categoryID != "" {
		if !uuid.IsValid(categoryID) {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid category_id"))
			return
		}
		filter.CategoryIDs = []string{categoryID}
	}

	result, err := h.productService.ListProducts(c.Request.Context(), filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetProductByID handles the retrieval of a product
// @Summary     Get product by ID
// @Tags        products
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Product ID"
// @Success     200 {object} models.Product "Product details"
// @Failure     400 {object} ErrorResponse "Invalid product ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Product not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /products/{id} [get]
func (h *ProductHandler) GetProductByID(c *gin.Context) {
	if _, err := getSession(c); err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	product, err := h.productService.GetProductByID(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// UpdateProduct handles the update of a product
// @Summary     Update product
// @Tags        products
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string               true "Product ID"
// @Param       request body UpdateProductRequest true "Updated product details"
// @Success     200 {object} models.Product "Updated product"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Product or category not found"
// @Failure     409 {object} ErrorResponse "Duplicate slug"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /products/{id} [put]
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	if _, err := getSession(c); err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), id, services.ProductUpdate{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Composition: req.Composition,
		GSM:         req.GSM,
		MinOrderQty: req.MinOrderQty,
		PriceFrom:   req.PriceFrom,
		Currency:    req.Currency,
		ImageURL:    req.ImageURL,
		IsFeatured:  req.IsFeatured,
		IsActive:    req.IsActive,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	recordAudit(c, h.auditService, services.AuditActionUpdate, "product", id,
		map[string]interface{}{"name": product.Name, "is_active": product.IsActive})

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// DeleteProduct handles the deletion of a product
// @Summary     Delete product
// @Tags        products
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Product ID"
// @Success     200 {object} MessageResponse "Product deleted"
// @Failure     400 {object} ErrorResponse "Invalid product ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Product not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /products/{id} [delete]
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if _, err := getSession(c); err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}

	recordAudit(c, h.auditService, services.AuditActionDelete, "product", id, nil)

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// ListPublicProducts lists active products, optionally within a category
// and everything below it
// @Summary     Browse products
// @Tags        public
// @Produce     json
// @Param       category_id query string false "Category; includes its subcategories"
// @Param       featured    query bool   false "Only featured products"
// @Param       search      query string false "Name or composition contains"
// @Param       page        query int    false "Page number (default 1)"
// @Param       page_size   query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Product] "Paginated products"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /public/products [get]
func (h *ProductHandler) ListPublicProducts(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	ctx := c.Request.Context()
	filter := services.ProductFilter{ActiveOnly: true, Search: c.Query("search")}

	if raw := c.Query("featured"); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "featured must be a boolean"))
			return
		}
		filter.Featured = &featured
	}

	if categoryID := c.Query("category_id"); categoryID != "" {
		if !uuid.IsValid(categoryID) {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid category_id"))
			return
		}
		timing := middleware.StartTiming(ctx, "subtree", "category subtree")
		ids, err := h.categoryService.PublicSubtree(ctx, categoryID)
		timing.Stop()
		if err != nil {
			respondWithError(c, err)
			return
		}
		filter.CategoryIDs = ids
	}

	result, err := h.productService.ListProducts(ctx, filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetPublicProduct returns an active product by slug
// @Summary     Product detail
// @Tags        public
// @Produce     json
// @Param       slug path string true "Product slug"
// @Success     200 {object} models.Product "Product details"
// @Failure     404 {object} ErrorResponse "Product not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /public/products/{slug} [get]
func (h *ProductHandler) GetPublicProduct(c *gin.Context) {
	product, err := h.productService.GetProductBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}
