package services

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"gorm.io/gorm"

	apperrors "loomhouse/internal/errors"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// slugify turns a display name into a URL slug: "Organic Cotton / Twill"
// becomes "organic-cotton-twill".
func slugify(name string) string {
	s := nonSlugChars.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(s, "-")
}

// resolveSlug returns the explicit slug when given, otherwise one derived
// from name.
func resolveSlug(explicit, name string) (string, error) {
	slug := strings.TrimSpace(explicit)
	if slug == "" {
		slug = slugify(name)
	}
	if slug == "" {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "a slug could not be derived from the name")
	}
	return slug, nil
}

// ensureSlugFree checks slug uniqueness including soft-deleted rows, which
// still hold the unique index.
func ensureSlugFree(ctx context.Context, db *gorm.DB, model interface{}, slug, exceptID string) error {
	q := db.WithContext(ctx).Unscoped().Model(model).Where("slug = ?", slug)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return apperrors.ErrDuplicateSlug
	}
	return nil
}

// assignSlug returns the slug to store. An explicit slug must be free; a
// slug derived from name gets the lowest free "-N" suffix on collision, so
// equal names under different parents still get distinct slugs.
func assignSlug(ctx context.Context, db *gorm.DB, model interface{}, explicit, name, exceptID string) (string, error) {
	if strings.TrimSpace(explicit) != "" {
		slug, err := resolveSlug(explicit, name)
		if err != nil {
			return "", err
		}
		return slug, ensureSlugFree(ctx, db, model, slug, exceptID)
	}

	base, err := resolveSlug("", name)
	if err != nil {
		return "", err
	}

	q := db.WithContext(ctx).Unscoped().Model(model).
		Where("slug = ? OR slug LIKE ?", base, base+"-%")
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	var taken []string
	if err := q.Pluck("slug", &taken).Error; err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nextFreeSlug(base, taken), nil
}

func nextFreeSlug(base string, taken []string) string {
	used := make(map[string]bool, len(taken))
	for _, t := range taken {
		used[t] = true
	}
	if !used[base] {
		return base
	}
	for n := 2; ; n++ {
		candidate := base + "-" + strconv.Itoa(n)
		if !used[candidate] {
			return candidate
		}
	}
}

// findByID loads dest by primary key, mapping a missing row to notFound.
func findByID(ctx context.Context, db *gorm.DB, dest interface{}, id string, notFound *apperrors.AppError) error {
	if err := db.WithContext(ctx).Where("id = ?", id).First(dest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func requireText(value, field string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, field+" is required")
	}
	return v, nil
}
