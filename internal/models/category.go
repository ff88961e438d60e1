package models

import "loomhouse/internal/hierarchy"

// Category is a product category. Categories form a tree through ParentID;
// the public menu shows three levels (main, sub, nested).
type Category struct {
	Base
	Name        string  `gorm:"not null" json:"name"`
	Slug        string  `gorm:"uniqueIndex;not null" json:"slug"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
	ParentID    *string `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	SortOrder   int     `gorm:"default:0" json:"sort_order"`
	IsActive    bool    `gorm:"not null" json:"is_active"`

	Products []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}

// Node returns the structural view of c used by the hierarchy resolver.
func (c *Category) Node() hierarchy.Category {
	return hierarchy.Category{
		ID:        c.ID,
		Name:      c.Name,
		ParentID:  c.ParentID,
		SortOrder: c.SortOrder,
	}
}

// Nodes converts a slice of categories for the hierarchy resolver.
func Nodes(categories []Category) []hierarchy.Category {
	nodes := make([]hierarchy.Category, len(categories))
	for i := range categories {
		nodes[i] = categories[i].Node()
	}
	return nodes
}
