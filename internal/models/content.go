package models

// CSRIcon is one badge on the corporate social responsibility page.
type CSRIcon struct {
	Base
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
	IconURL     string `json:"icon_url"`
	SortOrder   int    `gorm:"default:0" json:"sort_order"`
	IsActive    bool   `gorm:"not null" json:"is_active"`
}

// TableName keeps the acronym readable in the schema.
func (CSRIcon) TableName() string {
	return "csr_icons"
}

// ServiceOffering is an entry on the services page.
type ServiceOffering struct {
	Base
	Title     string `gorm:"not null" json:"title"`
	Summary   string `json:"summary"`
	IconURL   string `json:"icon_url"`
	SortOrder int    `gorm:"default:0" json:"sort_order"`
	IsActive  bool   `gorm:"not null" json:"is_active"`
}
