// Package seed loads starter site content from a YAML file: the category
// tree, service offerings and CSR icons. Applying the same file twice creates
// nothing new.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"loomhouse/internal/logger"
	"loomhouse/internal/models"
	"loomhouse/internal/services"
)

// maxCategoryDepth matches the levels the public menu can show.
const maxCategoryDepth = 3

// File is the document shape of a seed file.
type File struct {
	Categories []Category `yaml:"categories"`
	Services   []Badge    `yaml:"services"`
	CSRIcons   []Badge    `yaml:"csr_icons"`
}

// Category is a seed category with its subtree.
type Category struct {
	Name        string     `yaml:"name"`
	Slug        string     `yaml:"slug,omitempty"`
	Description string     `yaml:"description,omitempty"`
	ImageURL    string     `yaml:"image_url,omitempty"`
	SortOrder   int        `yaml:"sort_order,omitempty"`
	Children    []Category `yaml:"children,omitempty"`
}

// Badge is a seed CSR icon or service offering.
type Badge struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	IconURL     string `yaml:"icon_url,omitempty"`
	SortOrder   int    `yaml:"sort_order,omitempty"`
}

// Result counts what Apply created and what was already present.
type Result struct {
	CategoriesCreated  int
	CategoriesExisting int
	ServicesCreated    int
	CSRIconsCreated    int
}

// Load decodes a seed document. Unknown keys are rejected.
func Load(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// LoadFile reads and decodes the seed file at path.
func LoadFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer fh.Close()
	return Load(fh)
}

// Validate checks names and tree depth.
func (f *File) Validate() error {
	var walk func(cats []Category, depth int, trail string) error
	walk = func(cats []Category, depth int, trail string) error {
		for _, c := range cats {
			if strings.TrimSpace(c.Name) == "" {
				return fmt.Errorf("category under %q has no name", trail)
			}
			path := trail + "/" + c.Name
			if depth > maxCategoryDepth {
				return fmt.Errorf("category %q is nested deeper than %d levels", path, maxCategoryDepth)
			}
			if err := walk(c.Children, depth+1, path); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(f.Categories, 1, ""); err != nil {
		return err
	}

	for i, b := range f.Services {
		if strings.TrimSpace(b.Title) == "" {
			return fmt.Errorf("service #%d has no title", i+1)
		}
	}
	for i, b := range f.CSRIcons {
		if strings.TrimSpace(b.Title) == "" {
			return fmt.Errorf("csr icon #%d has no title", i+1)
		}
	}
	return nil
}

// Seeder writes a seed file through the services so the usual validation
// applies.
type Seeder struct {
	db         *gorm.DB
	categories services.CategoryServicer
	offerings  services.ServiceOfferingServicer
	csrIcons   services.CSRIconServicer
}

// NewSeeder creates a Seeder backed by db.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{
		db:         db,
		categories: services.NewCategoryService(db),
		offerings:  services.NewServiceOfferingService(db),
		csrIcons:   services.NewCSRIconService(db),
	}
}

// Apply creates whatever in f is missing. Categories are matched by name
// within their parent, badges by title.
func (s *Seeder) Apply(ctx context.Context, f *File) (*Result, error) {
	res := &Result{}

	if err := s.applyCategories(ctx, f.Categories, nil, res); err != nil {
		return res, err
	}

	for _, b := range f.Services {
		exists, err := s.titleExists(ctx, &models.ServiceOffering{}, b.Title)
		if err != nil {
			return res, err
		}
		if exists {
			continue
		}
		if _, err := s.offerings.CreateServiceOffering(ctx, b.input()); err != nil {
			return res, fmt.Errorf("service %q: %w", b.Title, err)
		}
		res.ServicesCreated++
	}

	for _, b := range f.CSRIcons {
		exists, err := s.titleExists(ctx, &models.CSRIcon{}, b.Title)
		if err != nil {
			return res, err
		}
		if exists {
			continue
		}
		if _, err := s.csrIcons.CreateCSRIcon(ctx, b.input()); err != nil {
			return res, fmt.Errorf("csr icon %q: %w", b.Title, err)
		}
		res.CSRIconsCreated++
	}

	logger.Named("seed").Infow("applied",
		"categories_created", res.CategoriesCreated,
		"categories_existing", res.CategoriesExisting,
		"services_created", res.ServicesCreated,
		"csr_icons_created", res.CSRIconsCreated,
	)
	return res, nil
}

func (s *Seeder) applyCategories(ctx context.Context, cats []Category, parentID *string, res *Result) error {
	for _, c := range cats {
		id, err := s.existingCategory(ctx, c.Name, parentID)
		if err != nil {
			return err
		}
		if id != "" {
			res.CategoriesExisting++
		} else {
			created, err := s.categories.CreateCategory(ctx, services.CategoryInput{
				Name:        c.Name,
				Slug:        c.Slug,
				Description: c.Description,
				ImageURL:    c.ImageURL,
				ParentID:    parentID,
				SortOrder:   c.SortOrder,
				IsActive:    true,
			})
			if err != nil {
				return fmt.Errorf("category %q: %w", c.Name, err)
			}
			id = created.ID
			res.CategoriesCreated++
		}

		parent := id
		if err := s.applyCategories(ctx, c.Children, &parent, res); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) existingCategory(ctx context.Context, name string, parentID *string) (string, error) {
	q := s.db.WithContext(ctx).Model(&models.Category{}).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name)))
	if parentID == nil {
		q = q.Where("parent_id IS NULL")
	} else {
		q = q.Where("parent_id = ?", *parentID)
	}

	var ids []string
	if err := q.Limit(1).Pluck("id", &ids).Error; err != nil {
		return "", fmt.Errorf("failed to look up category %q: %w", name, err)
	}
	if len(ids) == 0 {
		return "", nil
	}
	return ids[0], nil
}

func (s *Seeder) titleExists(ctx context.Context, model interface{}, title string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(model).
		Where("LOWER(title) = ?", strings.ToLower(strings.TrimSpace(title))).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to look up %q: %w", title, err)
	}
	return count > 0, nil
}

func (b Badge) input() services.BadgeInput {
	return services.BadgeInput{
		Title:       b.Title,
		Description: b.Description,
		IconURL:     b.IconURL,
		SortOrder:   b.SortOrder,
		IsActive:    true,
	}
}
