package models

// Review is a client testimonial. Reviews submitted through the public site
// stay hidden until an admin approves them.
type Review struct {
	Base
	Author     string `gorm:"not null" json:"author"`
	Company    string `json:"company"`
	Rating     int    `gorm:"not null" json:"rating"`
	Body       string `gorm:"not null" json:"body"`
	IsApproved bool   `gorm:"default:false;index" json:"is_approved"`
}
