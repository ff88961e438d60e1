package services

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	apperrors "loomhouse/internal/errors"
	"loomhouse/internal/models"
	"loomhouse/internal/pagination"
)

var fieldValidator = validator.New()

// contactService handles the contact inbox.
type contactService struct {
	db *gorm.DB
}

// NewContactService creates a new ContactServicer.
func NewContactService(db *gorm.DB) ContactServicer {
	return &contactService{db: db}
}

// SubmitContact stores a public inquiry with status new.
func (s *contactService) SubmitContact(ctx context.Context, in ContactInput) (*models.Contact, error) {
	name, err := requireText(in.Name, "name")
	if err != nil {
		return nil, err
	}
	message, err := requireText(in.Message, "message")
	if err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if err := fieldValidator.Var(email, "required,email"); err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "a valid email is required")
	}

	contact := &models.Contact{
		Name:      name,
		Email:     email,
		Company:   strings.TrimSpace(in.Company),
		Phone:     strings.TrimSpace(in.Phone),
		Subject:   strings.TrimSpace(in.Subject),
		Message:   message,
		Status:    models.ContactStatusNew,
		IPAddress: in.IPAddress,
	}
	if err := s.db.WithContext(ctx).Create(contact).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return contact, nil
}

// ListContacts returns the newest inquiries first.
func (s *contactService) ListContacts(ctx context.Context, status *models.ContactStatus, page pagination.PageRequest) (*pagination.PageResponse[models.Contact], error) {
	page.Defaults()

	base := func() *gorm.DB {
		q := s.db.WithContext(ctx).Model(&models.Contact{})
		if status != nil {
			q = q.Where("status = ?", *status)
		}
		return q
	}

	var totalItems int64
	if err := base().Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var contacts []models.Contact
	if err := base().Order("created_at DESC").Scopes(pagination.Paginate(page)).Find(&contacts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(contacts, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func (s *contactService) GetContactByID(ctx context.Context, id string) (*models.Contact, error) {
	var contact models.Contact
	if err := findByID(ctx, s.db, &contact, id, apperrors.ErrContactNotFound); err != nil {
		return nil, err
	}
	return &contact, nil
}

func (s *contactService) UpdateContactStatus(ctx context.Context, id string, status models.ContactStatus) (*models.Contact, error) {
	switch status {
	case models.ContactStatusNew, models.ContactStatusRead, models.ContactStatusArchived:
	default:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "status must be one of new, read, archived")
	}

	contact, err := s.GetContactByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(contact).Update("status", status).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	contact.Status = status
	return contact, nil
}

func (s *contactService) DeleteContact(ctx context.Context, id string) error {
	contact, err := s.GetContactByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(contact).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
