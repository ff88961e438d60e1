package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"loomhouse/internal/models"
)

// TestPassword is the plain-text password of every fixture user.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates an admin with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("admin%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates an admin with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestCategory creates an active category under parentID, or a main
// category when parentID is nil.
func CreateTestCategory(t *testing.T, db *gorm.DB, parentID *string) *models.Category {
	t.Helper()

	n := nextID()
	category := &models.Category{
		Name:     fmt.Sprintf("Test Category %d", n),
		Slug:     fmt.Sprintf("test-category-%d", n),
		ParentID: parentID,
		IsActive: true,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestProduct creates an active product in the given category.
func CreateTestProduct(t *testing.T, db *gorm.DB, categoryID string) *models.Product {
	t.Helper()

	n := nextID()
	product := &models.Product{
		CategoryID:  categoryID,
		Name:        fmt.Sprintf("Test Fabric %d", n),
		Slug:        fmt.Sprintf("test-fabric-%d", n),
		Composition: "100% cotton",
		GSM:         180,
		MinOrderQty: 500,
		PriceFrom:   decimal.RequireFromString("3.25"),
		Currency:    "USD",
		IsActive:    true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("failed to create test product: %v", err)
	}
	return product
}

// CreateTestEmployee creates an active employee.
func CreateTestEmployee(t *testing.T, db *gorm.DB) *models.Employee {
	t.Helper()

	employee := &models.Employee{
		Name:     fmt.Sprintf("Test Employee %d", nextID()),
		Title:    "Merchandiser",
		IsActive: true,
	}
	if err := db.Create(employee).Error; err != nil {
		t.Fatalf("failed to create test employee: %v", err)
	}
	return employee
}

// CreateTestCSRIcon creates an active CSR badge.
func CreateTestCSRIcon(t *testing.T, db *gorm.DB) *models.CSRIcon {
	t.Helper()

	icon := &models.CSRIcon{
		Title:    fmt.Sprintf("Test Badge %d", nextID()),
		IsActive: true,
	}
	if err := db.Create(icon).Error; err != nil {
		t.Fatalf("failed to create test csr icon: %v", err)
	}
	return icon
}

// CreateTestContact creates a new contact inquiry.
func CreateTestContact(t *testing.T, db *gorm.DB) *models.Contact {
	t.Helper()

	contact := &models.Contact{
		Name:    "Buyer",
		Email:   fmt.Sprintf("buyer%d@test.com", nextID()),
		Message: "Looking for organic twill",
		Status:  models.ContactStatusNew,
	}
	if err := db.Create(contact).Error; err != nil {
		t.Fatalf("failed to create test contact: %v", err)
	}
	return contact
}

// CreateTestReview creates a review with the given rating and approval.
func CreateTestReview(t *testing.T, db *gorm.DB, rating int, approved bool) *models.Review {
	t.Helper()

	review := &models.Review{
		Author:     fmt.Sprintf("Client %d", nextID()),
		Rating:     rating,
		Body:       "Reliable supplier",
		IsApproved: approved,
	}
	if err := db.Create(review).Error; err != nil {
		t.Fatalf("failed to create test review: %v", err)
	}
	return review
}
