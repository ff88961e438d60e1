package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	apperrors "loomhouse/internal/errors"
	"loomhouse/internal/models"
	"loomhouse/internal/pagination"
)

// employeeService handles the team listing.
type employeeService struct {
	db *gorm.DB
}

// NewEmployeeService creates a new EmployeeServicer.
func NewEmployeeService(db *gorm.DB) EmployeeServicer {
	return &employeeService{db: db}
}

func (s *employeeService) CreateEmployee(ctx context.Context, in EmployeeInput) (*models.Employee, error) {
	name, err := requireText(in.Name, "employee name")
	if err != nil {
		return nil, err
	}

	employee := &models.Employee{
		Name:       name,
		Title:      strings.TrimSpace(in.Title),
		Department: strings.TrimSpace(in.Department),
		Email:      strings.ToLower(strings.TrimSpace(in.Email)),
		PhotoURL:   in.PhotoURL,
		Bio:        in.Bio,
		SortOrder:  in.SortOrder,
		IsActive:   in.IsActive,
	}
	if err := s.db.WithContext(ctx).Create(employee).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return employee, nil
}

func (s *employeeService) ListEmployees(ctx context.Context, activeOnly bool, page pagination.PageRequest) (*pagination.PageResponse[models.Employee], error) {
	page.Defaults()

	base := func() *gorm.DB {
		q := s.db.WithContext(ctx).Model(&models.Employee{})
		if activeOnly {
			q = q.Where("is_active = ?", true)
		}
		return q
	}

	var totalItems int64
	if err := base().Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var employees []models.Employee
	if err := base().Scopes(pagination.DisplayOrder, pagination.Paginate(page)).Find(&employees).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(employees, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func (s *employeeService) GetEmployeeByID(ctx context.Context, id string) (*models.Employee, error) {
	var employee models.Employee
	if err := findByID(ctx, s.db, &employee, id, apperrors.ErrEmployeeNotFound); err != nil {
		return nil, err
	}
	return &employee, nil
}

// UpdateEmployee replaces every editable field of the employee.
func (s *employeeService) UpdateEmployee(ctx context.Context, id string, in EmployeeInput) (*models.Employee, error) {
	employee, err := s.GetEmployeeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	name, err := requireText(in.Name, "employee name")
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"name":       name,
		"title":      strings.TrimSpace(in.Title),
		"department": strings.TrimSpace(in.Department),
		"email":      strings.ToLower(strings.TrimSpace(in.Email)),
		"photo_url":  in.PhotoURL,
		"bio":        in.Bio,
		"sort_order": in.SortOrder,
		"is_active":  in.IsActive,
	}
	if err := s.db.WithContext(ctx).Model(employee).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.GetEmployeeByID(ctx, id)
}

func (s *employeeService) DeleteEmployee(ctx context.Context, id string) error {
	employee, err := s.GetEmployeeByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(employee).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
