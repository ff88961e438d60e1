package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	apperrors "loomhouse/internal/errors"
	"loomhouse/internal/hierarchy"
	"loomhouse/internal/logger"
	"loomhouse/internal/models"
	"loomhouse/internal/pagination"
)

// navbarDepth is the number of menu levels the public site renders.
const navbarDepth = 3

// categoryService handles category-related business logic.
type categoryService struct {
	db *gorm.DB

	// publicCache holds active categories only; adminCache holds every
	// category that is not soft-deleted.
	publicCache *hierarchy.Cache
	adminCache  *hierarchy.Cache
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{
		db:          db,
		publicCache: hierarchy.NewCache(nil),
		adminCache:  hierarchy.NewCache(logDangling),
	}
}

// logDangling reports parent references that do not resolve. It runs once
// per distinct admin snapshot, not once per request.
func logDangling(idx *hierarchy.Index) {
	for _, c := range idx.Dangling() {
		logger.Get().Warnw("category parent does not resolve",
			"category_id", c.ID,
			"category_name", c.Name,
			"parent_id", *c.ParentID,
		)
	}
}

// snapshot loads the flat category list and returns its cached Index.
func (s *categoryService) snapshot(ctx context.Context, activeOnly bool) (*hierarchy.Index, string, error) {
	q := s.db.WithContext(ctx).Model(&models.Category{}).
		Select("id", "name", "parent_id", "sort_order").
		Order("sort_order ASC").Order("created_at ASC").Order("id ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var rows []models.Category
	if err := q.Find(&rows).Error; err != nil {
		return nil, "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	cache := s.adminCache
	if activeOnly {
		cache = s.publicCache
	}
	idx, etag := cache.Index(models.Nodes(rows))
	return idx, etag, nil
}

// CreateCategory creates a new category
func (s *categoryService) CreateCategory(ctx context.Context, in CategoryInput) (*models.Category, error) {
	name, err := requireText(in.Name, "category name")
	if err != nil {
		return nil, err
	}

	slug, err := assignSlug(ctx, s.db, &models.Category{}, in.Slug, name, "")
	if err != nil {
		return nil, err
	}

	parentID := normalizeParentID(in.ParentID)
	if parentID != nil {
		if err := s.ensureExists(ctx, *parentID, "parent category not found"); err != nil {
			return nil, err
		}
	}

	if err := s.ensureSiblingNameFree(ctx, name, parentID, ""); err != nil {
		return nil, err
	}

	category := &models.Category{
		Name:        name,
		Slug:        slug,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		ParentID:    parentID,
		SortOrder:   in.SortOrder,
		IsActive:    in.IsActive,
	}
	if err := s.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return category, nil
}

// CreateNestedCategory creates a third-level category under the chosen
// subcategory after checking that the subcategory still belongs to the
// chosen main category.
func (s *categoryService) CreateNestedCategory(ctx context.Context, in NestedCategoryInput) (*models.Category, error) {
	idx, _, err := s.snapshot(ctx, false)
	if err != nil {
		return nil, err
	}

	sel := hierarchy.NewSelection(idx)
	if err := sel.ChooseParent(in.ParentID); err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidSelection, err.Error())
	}
	if err := sel.ChooseSubcategory(in.SubcategoryID); err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidSelection, err.Error())
	}
	if !sel.CanSubmit(in.Name) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}

	target, _ := sel.TargetParentID()
	return s.CreateCategory(ctx, CategoryInput{
		Name:        in.Name,
		Slug:        in.Slug,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		ParentID:    &target,
		SortOrder:   in.SortOrder,
		IsActive:    true,
	})
}

// ListCategories returns the admin category table, each row annotated with
// its level and breadcrumb path.
func (s *categoryService) ListCategories(ctx context.Context, filter CategoryFilter, page pagination.PageRequest) (*pagination.PageResponse[CategoryView], error) {
	page.Defaults()

	idx, _, err := s.snapshot(ctx, false)
	if err != nil {
		return nil, err
	}
	scope := categoryFilterScope(filter, idx)

	var totalItems int64
	if err := s.db.WithContext(ctx).Model(&models.Category{}).Scopes(scope).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var categories []models.Category
	if err := s.db.WithContext(ctx).
		Scopes(scope, pagination.DisplayOrder, pagination.Paginate(page)).
		Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	views := make([]CategoryView, len(categories))
	for i := range categories {
		views[i] = viewOf(idx, categories[i])
	}

	result := pagination.NewPageResponse(views, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func categoryFilterScope(filter CategoryFilter, idx *hierarchy.Index) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.ParentID != nil {
			if *filter.ParentID == "" {
				db = db.Where("parent_id IS NULL")
			} else {
				db = db.Where("parent_id = ?", *filter.ParentID)
			}
		}
		if search := strings.TrimSpace(filter.Search); search != "" {
			db = db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
		}
		if filter.Level != nil {
			ids := []string{}
			for _, c := range idx.All() {
				if idx.Level(c) == *filter.Level {
					ids = append(ids, c.ID)
				}
			}
			db = db.Where("id IN ?", ids)
		}
		return db
	}
}

func viewOf(idx *hierarchy.Index, c models.Category) CategoryView {
	return CategoryView{
		Category: c,
		Level:    idx.Level(c.Node()),
		Path:     idx.Path(c.ID),
	}
}

// GetCategoryByID retrieves a category with its level and path.
func (s *categoryService) GetCategoryByID(ctx context.Context, id string) (*CategoryView, error) {
	var category models.Category
	if err := findByID(ctx, s.db, &category, id, apperrors.ErrCategoryNotFound); err != nil {
		return nil, err
	}

	idx, _, err := s.snapshot(ctx, false)
	if err != nil {
		return nil, err
	}

	view := viewOf(idx, category)
	return &view, nil
}

// GetChildren returns the direct children of a category in display order.
func (s *categoryService) GetChildren(ctx context.Context, id string) ([]models.Category, error) {
	if err := s.ensureExists(ctx, id, ""); err != nil {
		return nil, err
	}

	children := []models.Category{}
	if err := s.db.WithContext(ctx).
		Where("parent_id = ?", id).
		Scopes(pagination.DisplayOrder).
		Find(&children).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return children, nil
}

// UpdateCategory updates an existing category
func (s *categoryService) UpdateCategory(ctx context.Context, id string, in CategoryUpdate) (*models.Category, error) {
	var category models.Category
	if err := findByID(ctx, s.db, &category, id, apperrors.ErrCategoryNotFound); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	name := category.Name
	if in.Name != nil {
		n, err := requireText(*in.Name, "category name")
		if err != nil {
			return nil, err
		}
		name = n
		updates["name"] = n
	}
	if in.Slug != nil {
		slug, err := assignSlug(ctx, s.db, &models.Category{}, *in.Slug, name, id)
		if err != nil {
			return nil, err
		}
		updates["slug"] = slug
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.ImageURL != nil {
		updates["image_url"] = *in.ImageURL
	}
	if in.SortOrder != nil {
		updates["sort_order"] = *in.SortOrder
	}
	if in.IsActive != nil {
		updates["is_active"] = *in.IsActive
	}

	parentID := category.ParentID
	if in.ParentID != nil {
		newParent := normalizeParentID(in.ParentID)
		if newParent != nil {
			if err := s.checkReparent(ctx, id, *newParent); err != nil {
				return nil, err
			}
			updates["parent_id"] = *newParent
		} else {
			updates["parent_id"] = nil
		}
		parentID = newParent
	}

	if in.Name != nil || in.ParentID != nil {
		if err := s.ensureSiblingNameFree(ctx, name, parentID, id); err != nil {
			return nil, err
		}
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&category).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	var updated models.Category
	if err := findByID(ctx, s.db, &updated, id, apperrors.ErrCategoryNotFound); err != nil {
		return nil, err
	}
	return &updated, nil
}

// checkReparent rejects moving id under itself or under one of its
// descendants.
func (s *categoryService) checkReparent(ctx context.Context, id, parentID string) error {
	if parentID == id {
		return apperrors.ErrSelfParentCategory
	}
	if err := s.ensureExists(ctx, parentID, "parent category not found"); err != nil {
		return err
	}

	idx, _, err := s.snapshot(ctx, false)
	if err != nil {
		return err
	}
	for _, descendant := range idx.Descendants(id) {
		if descendant == parentID {
			return apperrors.ErrCategoryCycle
		}
	}
	return nil
}

// DeleteCategory soft-deletes a category that has no children and no
// products.
func (s *categoryService) DeleteCategory(ctx context.Context, id string) error {
	var category models.Category
	if err := findByID(ctx, s.db, &category, id, apperrors.ErrCategoryNotFound); err != nil {
		return err
	}

	var childCount int64
	if err := s.db.WithContext(ctx).Model(&models.Category{}).Where("parent_id = ?", id).Count(&childCount).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if childCount > 0 {
		return apperrors.ErrCategoryHasChildren
	}

	var productCount int64
	if err := s.db.WithContext(ctx).Model(&models.Product{}).Where("category_id = ?", id).Count(&productCount).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if productCount > 0 {
		return apperrors.ErrCategoryInUse
	}

	if err := s.db.WithContext(ctx).Delete(&category).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// NavbarTree returns the three-level public menu and its ETag.
func (s *categoryService) NavbarTree(ctx context.Context) ([]*hierarchy.TreeNode, string, error) {
	idx, etag, err := s.snapshot(ctx, true)
	if err != nil {
		return nil, "", err
	}
	return idx.Tree(navbarDepth), etag, nil
}

// Breadcrumb returns the public trail from the main category down to id.
func (s *categoryService) Breadcrumb(ctx context.Context, id string) ([]hierarchy.Category, error) {
	idx, _, err := s.snapshot(ctx, true)
	if err != nil {
		return nil, err
	}
	if _, ok := idx.Lookup(id); !ok {
		return nil, apperrors.ErrCategoryNotFound
	}
	return idx.Path(id), nil
}

// RootCategories returns the active main categories in display order.
func (s *categoryService) RootCategories(ctx context.Context) ([]hierarchy.Category, error) {
	idx, _, err := s.snapshot(ctx, true)
	if err != nil {
		return nil, err
	}
	return hierarchy.SortBySortOrder(idx.Roots()), nil
}

// PublicSubtree returns id and the ids of every active category below it.
func (s *categoryService) PublicSubtree(ctx context.Context, id string) ([]string, error) {
	idx, _, err := s.snapshot(ctx, true)
	if err != nil {
		return nil, err
	}
	if _, ok := idx.Lookup(id); !ok {
		return nil, apperrors.ErrCategoryNotFound
	}
	return idx.Descendants(id), nil
}

// Integrity lists categories whose parent no longer resolves, for example
// after a parent was removed directly in the database.
func (s *categoryService) Integrity(ctx context.Context) (*IntegrityReport, error) {
	idx, _, err := s.snapshot(ctx, false)
	if err != nil {
		return nil, err
	}
	return &IntegrityReport{Total: idx.Len(), Dangling: idx.Dangling()}, nil
}

func (s *categoryService) ensureExists(ctx context.Context, id, message string) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Category{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		if message != "" {
			return apperrors.WithMessage(apperrors.ErrCategoryNotFound, message)
		}
		return apperrors.ErrCategoryNotFound
	}
	return nil
}

func (s *categoryService) ensureSiblingNameFree(ctx context.Context, name string, parentID *string, exceptID string) error {
	q := s.db.WithContext(ctx).Model(&models.Category{}).Where("LOWER(name) = ?", strings.ToLower(name))
	if parentID == nil {
		q = q.Where("parent_id IS NULL")
	} else {
		q = q.Where("parent_id = ?", *parentID)
	}
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return apperrors.ErrDuplicateCategory
	}
	return nil
}

// normalizeParentID treats an empty parent id as "no parent".
func normalizeParentID(parentID *string) *string {
	if parentID == nil || strings.TrimSpace(*parentID) == "" {
		return nil
	}
	p := strings.TrimSpace(*parentID)
	return &p
}
