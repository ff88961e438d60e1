package services

import (
	"context"
	"math"

	"gorm.io/gorm"

	apperrors "loomhouse/internal/errors"
	"loomhouse/internal/models"
	"loomhouse/internal/pagination"
)

const (
	minRating = 1
	maxRating = 5
)

// reviewService handles client testimonials.
type reviewService struct {
	db *gorm.DB
}

// NewReviewService creates a new ReviewServicer.
func NewReviewService(db *gorm.DB) ReviewServicer {
	return &reviewService{db: db}
}

// SubmitReview stores a public review. It stays hidden until approved.
func (s *reviewService) SubmitReview(ctx context.Context, in ReviewInput) (*models.Review, error) {
	author, err := requireText(in.Author, "author")
	if err != nil {
		return nil, err
	}
	body, err := requireText(in.Body, "review")
	if err != nil {
		return nil, err
	}
	if in.Rating < minRating || in.Rating > maxRating {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "rating must be between 1 and 5")
	}

	review := &models.Review{
		Author:     author,
		Company:    in.Company,
		Rating:     in.Rating,
		Body:       body,
		IsApproved: false,
	}
	if err := s.db.WithContext(ctx).Create(review).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return review, nil
}

// ListReviews returns reviews newest first. A nil approved lists all.
func (s *reviewService) ListReviews(ctx context.Context, approved *bool, page pagination.PageRequest) (*pagination.PageResponse[models.Review], error) {
	page.Defaults()

	base := func() *gorm.DB {
		q := s.db.WithContext(ctx).Model(&models.Review{})
		if approved != nil {
			q = q.Where("is_approved = ?", *approved)
		}
		return q
	}

	var totalItems int64
	if err := base().Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var reviews []models.Review
	if err := base().Order("created_at DESC").Scopes(pagination.Paginate(page)).Find(&reviews).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(reviews, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func (s *reviewService) SetApproved(ctx context.Context, id string, approved bool) (*models.Review, error) {
	var review models.Review
	if err := findByID(ctx, s.db, &review, id, apperrors.ErrReviewNotFound); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&review).Update("is_approved", approved).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	review.IsApproved = approved
	return &review, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, id string) error {
	var review models.Review
	if err := findByID(ctx, s.db, &review, id, apperrors.ErrReviewNotFound); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&review).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// Summary counts approved reviews and averages their rating to one decimal.
func (s *reviewService) Summary(ctx context.Context) (*ReviewSummary, error) {
	var row struct {
		Count   int64
		Average *float64
	}
	err := s.db.WithContext(ctx).Model(&models.Review{}).
		Select("COUNT(*) AS count, AVG(rating) AS average").
		Where("is_approved = ?", true).
		Scan(&row).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summary := &ReviewSummary{Count: row.Count}
	if row.Average != nil {
		summary.AverageRating = math.Round(*row.Average*10) / 10
	}
	return summary, nil
}
