package services

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "loomhouse/internal/errors"
	"loomhouse/internal/hierarchy"
	"loomhouse/internal/models"
	"loomhouse/internal/pagination"
)

const defaultCurrency = "USD"

// productService handles catalog logic.
type productService struct {
	db *gorm.DB
}

// NewProductService creates a new ProductServicer.
func NewProductService(db *gorm.DB) ProductServicer {
	return &productService{db: db}
}

// CreateProduct adds a product to an existing category
func (s *productService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	name, err := requireText(in.Name, "product name")
	if err != nil {
		return nil, err
	}
	if err := s.ensureCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	if err := validateProductNumbers(in.GSM, in.MinOrderQty, in.PriceFrom); err != nil {
		return nil, err
	}

	slug, err := assignSlug(ctx, s.db, &models.Product{}, in.Slug, name, "")
	if err != nil {
		return nil, err
	}

	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = defaultCurrency
	}

	product := &models.Product{
		CategoryID:  in.CategoryID,
		Name:        name,
		Slug:        slug,
		Description: in.Description,
		Composition: in.Composition,
		GSM:         in.GSM,
		MinOrderQty: in.MinOrderQty,
		PriceFrom:   in.PriceFrom.Round(2),
		Currency:    currency,
		ImageURL:    in.ImageURL,
		IsFeatured:  in.IsFeatured,
		IsActive:    in.IsActive,
		SortOrder:   in.SortOrder,
	}
	if err := s.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return product, nil
}

// ListProducts returns a page of products matching the filter.
func (s *productService) ListProducts(ctx context.Context, filter ProductFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Product], error) {
	page.Defaults()

	var visible []string
	if filter.ActiveOnly {
		ids, err := visibleCategoryIDs(ctx, s.db)
		if err != nil {
			return nil, err
		}
		visible = ids
	}
	scope := productFilterScope(filter, visible)

	var totalItems int64
	if err := s.db.WithContext(ctx).Model(&models.Product{}).Scopes(scope).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var products []models.Product
	if err := s.db.WithContext(ctx).
		Scopes(scope, pagination.DisplayOrder, pagination.Paginate(page)).
		Find(&products).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(products, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func productFilterScope(filter ProductFilter, visible []string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.CategoryIDs != nil {
			db = db.Where("category_id IN ?", filter.CategoryIDs)
		}
		if visible != nil {
			db = db.Where("category_id IN ?", visible)
		}
		if filter.Featured != nil {
			db = db.Where("is_featured = ?", *filter.Featured)
		}
		if filter.ActiveOnly {
			db = db.Where("is_active = ?", true)
		}
		if search := strings.TrimSpace(filter.Search); search != "" {
			like := "%" + strings.ToLower(search) + "%"
			db = db.Where("LOWER(name) LIKE ? OR LOWER(composition) LIKE ?", like, like)
		}
		return db
	}
}

// GetProductByID retrieves a product with its category
func (s *productService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := findByID(ctx, s.db.Preload("Category"), &product, id, apperrors.ErrProductNotFound); err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProductBySlug retrieves an active product for the public detail page.
// Products in a category hidden from the menu are not found.
func (s *productService) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	visible, err := visibleCategoryIDs(ctx, s.db)
	if err != nil {
		return nil, err
	}

	var product models.Product
	err = s.db.WithContext(ctx).
		Preload("Category").
		Where("slug = ? AND is_active = ?", slug, true).
		Where("category_id IN ?", visible).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &product, nil
}

// UpdateProduct updates an existing product
func (s *productService) UpdateProduct(ctx context.Context, id string, in ProductUpdate) (*models.Product, error) {
	var product models.Product
	if err := findByID(ctx, s.db, &product, id, apperrors.ErrProductNotFound); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	name := product.Name
	if in.Name != nil {
		n, err := requireText(*in.Name, "product name")
		if err != nil {
			return nil, err
		}
		name = n
		updates["name"] = n
	}
	if in.Slug != nil {
		slug, err := assignSlug(ctx, s.db, &models.Product{}, *in.Slug, name, id)
		if err != nil {
			return nil, err
		}
		updates["slug"] = slug
	}
	if in.CategoryID != nil {
		if err := s.ensureCategory(ctx, *in.CategoryID); err != nil {
			return nil, err
		}
		updates["category_id"] = *in.CategoryID
	}

	gsm, moq, price := product.GSM, product.MinOrderQty, product.PriceFrom
	if in.GSM != nil {
		gsm = *in.GSM
		updates["gsm"] = gsm
	}
	if in.MinOrderQty != nil {
		moq = *in.MinOrderQty
		updates["min_order_qty"] = moq
	}
	if in.PriceFrom != nil {
		price = in.PriceFrom.Round(2)
		updates["price_from"] = price
	}
	if err := validateProductNumbers(gsm, moq, price); err != nil {
		return nil, err
	}

	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Composition != nil {
		updates["composition"] = *in.Composition
	}
	if in.Currency != nil {
		updates["currency"] = strings.ToUpper(strings.TrimSpace(*in.Currency))
	}
	if in.ImageURL != nil {
		updates["image_url"] = *in.ImageURL
	}
	if in.IsFeatured != nil {
		updates["is_featured"] = *in.IsFeatured
	}
	if in.IsActive != nil {
		updates["is_active"] = *in.IsActive
	}
	if in.SortOrder != nil {
		updates["sort_order"] = *in.SortOrder
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&product).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return s.GetProductByID(ctx, id)
}

// DeleteProduct soft-deletes a product
func (s *productService) DeleteProduct(ctx context.Context, id string) error {
	var product models.Product
	if err := findByID(ctx, s.db, &product, id, apperrors.ErrProductNotFound); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&product).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// FeaturedProducts returns up to limit active featured products.
func (s *productService) FeaturedProducts(ctx context.Context, limit int) ([]models.Product, error) {
	visible, err := visibleCategoryIDs(ctx, s.db)
	if err != nil {
		return nil, err
	}

	products := []models.Product{}
	if err := s.db.WithContext(ctx).
		Where("is_featured = ? AND is_active = ?", true, true).
		Where("category_id IN ?", visible).
		Scopes(pagination.DisplayOrder).
		Limit(limit).
		Find(&products).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return products, nil
}

// visibleCategoryIDs returns the active categories reachable from an active
// main category through active parents, the set the public menu shows.
func visibleCategoryIDs(ctx context.Context, db *gorm.DB) ([]string, error) {
	var rows []models.Category
	if err := db.WithContext(ctx).Model(&models.Category{}).
		Select("id", "name", "parent_id", "sort_order").
		Where("is_active = ?", true).
		Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	idx := hierarchy.NewIndex(models.Nodes(rows))
	ids := []string{}
	for _, root := range idx.Roots() {
		ids = append(ids, idx.Descendants(root.ID)...)
	}
	return ids, nil
}

func (s *productService) ensureCategory(ctx context.Context, categoryID string) error {
	if strings.TrimSpace(categoryID) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "category_id is required")
	}
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Category{}).Where("id = ?", categoryID).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.ErrCategoryNotFound
	}
	return nil
}

func validateProductNumbers(gsm, minOrderQty int, price decimal.Decimal) error {
	if gsm < 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "gsm must not be negative")
	}
	if minOrderQty < 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "min_order_qty must not be negative")
	}
	if price.IsNegative() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "price_from must not be negative")
	}
	return nil
}
