package services

import (
	"context"

	"gorm.io/gorm"

	apperrors "loomhouse/internal/errors"
	"loomhouse/internal/models"
	"loomhouse/internal/pagination"
)

// CSR icons and service offerings are both short, ordered lists of
// title/description/icon badges edited from the admin panel.

func listBadges(ctx context.Context, db *gorm.DB, dest interface{}, activeOnly bool) error {
	q := db.WithContext(ctx).Scopes(pagination.DisplayOrder)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(dest).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func badgeUpdates(in BadgeInput, title, descriptionColumn string) map[string]interface{} {
	return map[string]interface{}{
		"title":           title,
		descriptionColumn: in.Description,
		"icon_url":        in.IconURL,
		"sort_order":      in.SortOrder,
		"is_active":       in.IsActive,
	}
}

// csrIconService handles CSR page badges.
type csrIconService struct {
	db *gorm.DB
}

// NewCSRIconService creates a new CSRIconServicer.
func NewCSRIconService(db *gorm.DB) CSRIconServicer {
	return &csrIconService{db: db}
}

func (s *csrIconService) CreateCSRIcon(ctx context.Context, in BadgeInput) (*models.CSRIcon, error) {
	title, err := requireText(in.Title, "title")
	if err != nil {
		return nil, err
	}
	icon := &models.CSRIcon{
		Title:       title,
		Description: in.Description,
		IconURL:     in.IconURL,
		SortOrder:   in.SortOrder,
		IsActive:    in.IsActive,
	}
	if err := s.db.WithContext(ctx).Create(icon).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return icon, nil
}

func (s *csrIconService) ListCSRIcons(ctx context.Context, activeOnly bool) ([]models.CSRIcon, error) {
	icons := []models.CSRIcon{}
	if err := listBadges(ctx, s.db, &icons, activeOnly); err != nil {
		return nil, err
	}
	return icons, nil
}

func (s *csrIconService) GetCSRIconByID(ctx context.Context, id string) (*models.CSRIcon, error) {
	var icon models.CSRIcon
	if err := findByID(ctx, s.db, &icon, id, apperrors.ErrCSRIconNotFound); err != nil {
		return nil, err
	}
	return &icon, nil
}

func (s *csrIconService) UpdateCSRIcon(ctx context.Context, id string, in BadgeInput) (*models.CSRIcon, error) {
	icon, err := s.GetCSRIconByID(ctx, id)
	if err != nil {
		return nil, err
	}
	title, err := requireText(in.Title, "title")
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(icon).Updates(badgeUpdates(in, title, "description")).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.GetCSRIconByID(ctx, id)
}

func (s *csrIconService) DeleteCSRIcon(ctx context.Context, id string) error {
	icon, err := s.GetCSRIconByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(icon).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// serviceOfferingService handles the services page entries.
type serviceOfferingService struct {
	db *gorm.DB
}

// NewServiceOfferingService creates a new ServiceOfferingServicer.
func NewServiceOfferingService(db *gorm.DB) ServiceOfferingServicer {
	return &serviceOfferingService{db: db}
}

func (s *serviceOfferingService) CreateServiceOffering(ctx context.Context, in BadgeInput) (*models.ServiceOffering, error) {
	title, err := requireText(in.Title, "title")
	if err != nil {
		return nil, err
	}
	offering := &models.ServiceOffering{
		Title:     title,
		Summary:   in.Description,
		IconURL:   in.IconURL,
		SortOrder: in.SortOrder,
		IsActive:  in.IsActive,
	}
	if err := s.db.WithContext(ctx).Create(offering).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return offering, nil
}

func (s *serviceOfferingService) ListServiceOfferings(ctx context.Context, activeOnly bool) ([]models.ServiceOffering, error) {
	offerings := []models.ServiceOffering{}
	if err := listBadges(ctx, s.db, &offerings, activeOnly); err != nil {
		return nil, err
	}
	return offerings, nil
}

func (s *serviceOfferingService) GetServiceOfferingByID(ctx context.Context, id string) (*models.ServiceOffering, error) {
	var offering models.ServiceOffering
	if err := findByID(ctx, s.db, &offering, id, apperrors.ErrServiceNotFound); err != nil {
		return nil, err
	}
	return &offering, nil
}

func (s *serviceOfferingService) UpdateServiceOffering(ctx context.Context, id string, in BadgeInput) (*models.ServiceOffering, error) {
	offering, err := s.GetServiceOfferingByID(ctx, id)
	if err != nil {
		return nil, err
	}
	title, err := requireText(in.Title, "title")
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(offering).Updates(badgeUpdates(in, title, "summary")).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.GetServiceOfferingByID(ctx, id)
}

func (s *serviceOfferingService) DeleteServiceOffering(ctx context.Context, id string) error {
	offering, err := s.GetServiceOfferingByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(offering).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
