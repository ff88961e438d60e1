package models

// ContactStatus tracks how far an inquiry has been handled.
type ContactStatus string

const (
	ContactStatusNew      ContactStatus = "new"
	ContactStatusRead     ContactStatus = "read"
	ContactStatusArchived ContactStatus = "archived"
)

// Contact is a message submitted through the public contact form.
type Contact struct {
	Base
	Name      string        `gorm:"not null" json:"name"`
	Email     string        `gorm:"not null;index" json:"email"`
	Company   string        `json:"company"`
	Phone     string        `json:"phone"`
	Subject   string        `json:"subject"`
	Message   string        `gorm:"not null" json:"message"`
	Status    ContactStatus `gorm:"not null;default:new;index" json:"status"`
	IPAddress string        `json:"-"`
}
