package models

import "github.com/shopspring/decimal"

// Product is a sourced fabric or finished textile shown in the catalog.
type Product struct {
	Base
	CategoryID  string          `gorm:"type:uuid;not null;index" json:"category_id"`
	Name        string          `gorm:"not null" json:"name"`
	Slug        string          `gorm:"uniqueIndex;not null" json:"slug"`
	Description string          `json:"description"`
	Composition string          `json:"composition"`
	GSM         int             `json:"gsm"`
	MinOrderQty int             `gorm:"default:0" json:"min_order_qty"`
	PriceFrom   decimal.Decimal `gorm:"type:numeric(12,2)" json:"price_from"`
	Currency    string          `gorm:"size:3;default:USD" json:"currency"`
	ImageURL    string          `json:"image_url"`
	IsFeatured  bool            `gorm:"default:false" json:"is_featured"`
	IsActive    bool            `gorm:"not null" json:"is_active"`
	SortOrder   int             `gorm:"default:0" json:"sort_order"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
