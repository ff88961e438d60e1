package services

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	apperrors "loomhouse/internal/errors"
	"loomhouse/internal/logger"
	"loomhouse/internal/models"
	"loomhouse/internal/pagination"
)

// Audit actions recorded by the admin handlers.
const (
	AuditActionCreate = "CREATE"
	AuditActionUpdate = "UPDATE"
	AuditActionDelete = "DELETE"
)

// auditService keeps the trail of admin edits to site content.
type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Log appends an entry. A failed write is logged and swallowed so the admin's
// edit still succeeds.
func (s *auditService) Log(ctx context.Context, userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{}) {
	log := logger.Named("audit").With(
		"user_id", userID,
		"action", action,
		"resource_type", resourceType,
		"resource_id", resourceID,
	)

	entry := &models.AuditLog{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
	}
	if len(changes) > 0 {
		data, err := json.Marshal(changes)
		if err != nil {
			log.Errorw("failed to encode audit changes", "error", err)
			data = []byte("{}")
		}
		entry.Changes = string(data)
	}

	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		log.Errorw("failed to write audit entry", "error", err)
	}
}

// ListAuditLogs returns the newest entries first.
func (s *auditService) ListAuditLogs(ctx context.Context, filter AuditFilter, page pagination.PageRequest) (*pagination.PageResponse[models.AuditLog], error) {
	page.Defaults()
	scope := func(db *gorm.DB) *gorm.DB {
		if filter.ResourceType != "" {
			db = db.Where("resource_type = ?", filter.ResourceType)
		}
		if filter.ResourceID != "" {
			db = db.Where("resource_id = ?", filter.ResourceID)
		}
		if filter.UserID != "" {
			db = db.Where("user_id = ?", filter.UserID)
		}
		return db
	}

	var totalItems int64
	if err := s.db.WithContext(ctx).Model(&models.AuditLog{}).Scopes(scope).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var entries []models.AuditLog
	if err := s.db.WithContext(ctx).
		Scopes(scope, pagination.Paginate(page)).
		Order("created_at DESC").Order("id DESC").
		Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(entries, page.Page, page.PageSize, totalItems)
	return &result, nil
}
