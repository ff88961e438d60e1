package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"loomhouse/internal/models"
	"loomhouse/internal/pagination"
)

const (
	homeFeaturedLimit = 8
	homeReviewLimit   = 6
)

// homeService assembles the public home page from the other services.
type homeService struct {
	categories CategoryServicer
	products   ProductServicer
	csrIcons   CSRIconServicer
	reviews    ReviewServicer
}

// NewHomeService creates a new HomeServicer.
func NewHomeService(categories CategoryServicer, products ProductServicer, csrIcons CSRIconServicer, reviews ReviewServicer) HomeServicer {
	return &homeService{
		categories: categories,
		products:   products,
		csrIcons:   csrIcons,
		reviews:    reviews,
	}
}

// Home loads every section concurrently and fails if any section fails.
func (s *homeService) Home(ctx context.Context) (*HomePage, error) {
	page := &HomePage{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		roots, err := s.categories.RootCategories(ctx)
		page.Categories = roots
		return err
	})
	g.Go(func() error {
		featured, err := s.products.FeaturedProducts(ctx, homeFeaturedLimit)
		page.FeaturedProducts = featured
		return err
	})
	g.Go(func() error {
		icons, err := s.csrIcons.ListCSRIcons(ctx, true)
		page.CSRIcons = icons
		return err
	})
	g.Go(func() error {
		approved := true
		latest, err := s.reviews.ListReviews(ctx, &approved, pagination.PageRequest{Page: 1, PageSize: homeReviewLimit})
		if err != nil {
			return err
		}
		page.Reviews = latest.Data
		return nil
	})
	g.Go(func() error {
		summary, err := s.reviews.Summary(ctx)
		if err != nil {
			return err
		}
		page.ReviewSummary = *summary
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if page.Reviews == nil {
		page.Reviews = []models.Review{}
	}
	return page, nil
}
