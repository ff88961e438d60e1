package services

import (
	"context"

	"github.com/shopspring/decimal"

	"loomhouse/internal/hierarchy"
	"loomhouse/internal/models"
	"loomhouse/internal/pagination"
)

// UserServicer defines the contract for admin account logic.
type UserServicer interface {
	CreateUser(ctx context.Context, email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(ctx context.Context, email, password string) (*models.User, error)
	StoreRefreshTokenHash(ctx context.Context, userID, tokenHash string) error
	GetRefreshTokenHash(ctx context.Context, userID string) (string, error)
}

// CategoryInput holds the fields of a category create request.
type CategoryInput struct {
	Name        string
	Slug        string
	Description string
	ImageURL    string
	ParentID    *string
	SortOrder   int
	IsActive    bool
}

// NestedCategoryInput is a create request coming from the nested-category
// picker: a main category, one of its subcategories, and the new name.
type NestedCategoryInput struct {
	ParentID      string
	SubcategoryID string
	Name          string
	Slug          string
	Description   string
	ImageURL      string
	SortOrder     int
}

// CategoryUpdate holds optional category changes. A ParentID pointing at an
// empty string moves the category to the top level.
type CategoryUpdate struct {
	Name        *string
	Slug        *string
	Description *string
	ImageURL    *string
	ParentID    *string
	SortOrder   *int
	IsActive    *bool
}

// CategoryFilter narrows the admin category table.
type CategoryFilter struct {
	ParentID *string
	Level    *hierarchy.Level
	Search   string
}

// CategoryView is a category annotated with its place in the tree.
type CategoryView struct {
	models.Category
	Level hierarchy.Level      `json:"level"`
	Path  []hierarchy.Category `json:"path"`
}

// IntegrityReport lists categories whose parent reference does not resolve.
type IntegrityReport struct {
	Total    int                  `json:"total"`
	Dangling []hierarchy.Category `json:"dangling"`
}

// CategoryServicer defines the contract for category logic.
type CategoryServicer interface {
	CreateCategory(ctx context.Context, in CategoryInput) (*models.Category, error)
	CreateNestedCategory(ctx context.Context, in NestedCategoryInput) (*models.Category, error)
	ListCategories(ctx context.Context, filter CategoryFilter, page pagination.PageRequest) (*pagination.PageResponse[CategoryView], error)
	GetCategoryByID(ctx context.Context, id string) (*CategoryView, error)
	GetChildren(ctx context.Context, id string) ([]models.Category, error)
	UpdateCategory(ctx context.Context, id string, in CategoryUpdate) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string) error
	NavbarTree(ctx context.Context) ([]*hierarchy.TreeNode, string, error)
	Breadcrumb(ctx context.Context, id string) ([]hierarchy.Category, error)
	RootCategories(ctx context.Context) ([]hierarchy.Category, error)
	PublicSubtree(ctx context.Context, id string) ([]string, error)
	Integrity(ctx context.Context) (*IntegrityReport, error)
}

// ProductInput holds the fields of a product create request.
type ProductInput struct {
	CategoryID  string
	Name        string
	Slug        string
	Description string
	Composition string
	GSM         int
	MinOrderQty int
	PriceFrom   decimal.Decimal
	Currency    string
	ImageURL    string
	IsFeatured  bool
	IsActive    bool
	SortOrder   int
}

// ProductUpdate holds optional product changes.
type ProductUpdate struct {
	CategoryID  *string
	Name        *string
	Slug        *string
	Description *string
	Composition *string
	GSM         *int
	MinOrderQty *int
	PriceFrom   *decimal.Decimal
	Currency    *string
	ImageURL    *string
	IsFeatured  *bool
	IsActive    *bool
	SortOrder   *int
}

// ProductFilter narrows product listings.
type ProductFilter struct {
	CategoryIDs []string
	Featured    *bool
	ActiveOnly  bool
	Search      string
}

// ProductServicer defines the contract for catalog logic.
type ProductServicer interface {
	CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error)
	ListProducts(ctx context.Context, filter ProductFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Product], error)
	GetProductByID(ctx context.Context, id string) (*models.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, in ProductUpdate) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	FeaturedProducts(ctx context.Context, limit int) ([]models.Product, error)
}

// EmployeeInput holds the fields of an employee record.
type EmployeeInput struct {
	Name       string
	Title      string
	Department string
	Email      string
	PhotoURL   string
	Bio        string
	SortOrder  int
	IsActive   bool
}

// EmployeeServicer defines the contract for the about-page team listing.
type EmployeeServicer interface {
	CreateEmployee(ctx context.Context, in EmployeeInput) (*models.Employee, error)
	ListEmployees(ctx context.Context, activeOnly bool, page pagination.PageRequest) (*pagination.PageResponse[models.Employee], error)
	GetEmployeeByID(ctx context.Context, id string) (*models.Employee, error)
	UpdateEmployee(ctx context.Context, id string, in EmployeeInput) (*models.Employee, error)
	DeleteEmployee(ctx context.Context, id string) error
}

// BadgeInput holds the fields shared by CSR icons and service offerings.
type BadgeInput struct {
	Title       string
	Description string
	IconURL     string
	SortOrder   int
	IsActive    bool
}

// CSRIconServicer defines the contract for CSR page badges.
type CSRIconServicer interface {
	CreateCSRIcon(ctx context.Context, in BadgeInput) (*models.CSRIcon, error)
	ListCSRIcons(ctx context.Context, activeOnly bool) ([]models.CSRIcon, error)
	GetCSRIconByID(ctx context.Context, id string) (*models.CSRIcon, error)
	UpdateCSRIcon(ctx context.Context, id string, in BadgeInput) (*models.CSRIcon, error)
	DeleteCSRIcon(ctx context.Context, id string) error
}

// ServiceOfferingServicer defines the contract for the services page.
type ServiceOfferingServicer interface {
	CreateServiceOffering(ctx context.Context, in BadgeInput) (*models.ServiceOffering, error)
	ListServiceOfferings(ctx context.Context, activeOnly bool) ([]models.ServiceOffering, error)
	GetServiceOfferingByID(ctx context.Context, id string) (*models.ServiceOffering, error)
	UpdateServiceOffering(ctx context.Context, id string, in BadgeInput) (*models.ServiceOffering, error)
	DeleteServiceOffering(ctx context.Context, id string) error
}

// ContactInput is a public contact form submission.
type ContactInput struct {
	Name      string
	Email     string
	Company   string
	Phone     string
	Subject   string
	Message   string
	IPAddress string
}

// ContactServicer defines the contract for the contact inbox.
type ContactServicer interface {
	SubmitContact(ctx context.Context, in ContactInput) (*models.Contact, error)
	ListContacts(ctx context.Context, status *models.ContactStatus, page pagination.PageRequest) (*pagination.PageResponse[models.Contact], error)
	GetContactByID(ctx context.Context, id string) (*models.Contact, error)
	UpdateContactStatus(ctx context.Context, id string, status models.ContactStatus) (*models.Contact, error)
	DeleteContact(ctx context.Context, id string) error
}

// ReviewInput is a public review submission.
type ReviewInput struct {
	Author  string
	Company string
	Rating  int
	Body    string
}

// ReviewSummary aggregates approved reviews.
type ReviewSummary struct {
	Count         int64   `json:"count"`
	AverageRating float64 `json:"average_rating"`
}

// ReviewServicer defines the contract for client testimonials.
type ReviewServicer interface {
	SubmitReview(ctx context.Context, in ReviewInput) (*models.Review, error)
	ListReviews(ctx context.Context, approved *bool, page pagination.PageRequest) (*pagination.PageResponse[models.Review], error)
	SetApproved(ctx context.Context, id string, approved bool) (*models.Review, error)
	DeleteReview(ctx context.Context, id string) error
	Summary(ctx context.Context) (*ReviewSummary, error)
}

// HomePage is the aggregate the public home page renders from.
type HomePage struct {
	Categories       []hierarchy.Category `json:"categories"`
	FeaturedProducts []models.Product     `json:"featured_products"`
	CSRIcons         []models.CSRIcon     `json:"csr_icons"`
	Reviews          []models.Review      `json:"reviews"`
	ReviewSummary    ReviewSummary        `json:"review_summary"`
}

// HomeServicer defines the contract for the home page aggregate.
type HomeServicer interface {
	Home(ctx context.Context) (*HomePage, error)
}

// AuditFilter narrows the audit trail. Empty fields match everything.
type AuditFilter struct {
	ResourceType string
	ResourceID   string
	UserID       string
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(ctx context.Context, userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
	ListAuditLogs(ctx context.Context, filter AuditFilter, page pagination.PageRequest) (*pagination.PageResponse[models.AuditLog], error)
}
