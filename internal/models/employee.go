package models

// Employee is a team member listed on the about page.
type Employee struct {
	Base
	Name       string `gorm:"not null" json:"name"`
	Title      string `json:"title"`
	Department string `json:"department"`
	Email      string `json:"email"`
	PhotoURL   string `json:"photo_url"`
	Bio        string `json:"bio"`
	SortOrder  int    `gorm:"default:0" json:"sort_order"`
	IsActive   bool   `gorm:"not null" json:"is_active"`
}
