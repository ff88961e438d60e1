// Package server assembles the HTTP router and the server that runs it.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	servertiming "github.com/mitchellh/go-server-timing"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"loomhouse/internal/config"
	"loomhouse/internal/handlers"
	"loomhouse/internal/logger"
	"loomhouse/internal/middleware"
	"loomhouse/internal/services"

	_ "loomhouse/internal/docs" // Import swagger docs
)

// NewRouter wires services and handlers over db and registers every route.
func NewRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	// Initialize services
	userService := services.NewUserService(db)
	auditService := services.NewAuditService(db)
	categoryService := services.NewCategoryService(db)
	productService := services.NewProductService(db)
	employeeService := services.NewEmployeeService(db)
	csrIconService := services.NewCSRIconService(db)
	offeringService := services.NewServiceOfferingService(db)
	contactService := services.NewContactService(db)
	reviewService := services.NewReviewService(db)
	homeService := services.NewHomeService(categoryService, productService, csrIconService, reviewService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	categoryHandler := handlers.NewCategoryHandler(categoryService, auditService)
	productHandler := handlers.NewProductHandler(productService, categoryService, auditService)
	employeeHandler := handlers.NewEmployeeHandler(employeeService, auditService)
	csrIconHandler := handlers.NewCSRIconHandler(csrIconService, auditService)
	offeringHandler := handlers.NewServiceOfferingHandler(offeringService, auditService)
	contactHandler := handlers.NewContactHandler(contactService, auditService)
	reviewHandler := handlers.NewReviewHandler(reviewService, auditService)
	homeHandler := handlers.NewHomeHandler(homeService)
	auditHandler := handlers.NewAuditHandler(auditService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Public site
	public := v1.Group("/public")
	public.GET("/home", homeHandler.Home)
	public.GET("/categories/navbar", categoryHandler.Navbar)
	public.GET("/categories/:id/breadcrumb", categoryHandler.Breadcrumb)
	public.GET("/products", productHandler.ListPublicProducts)
	public.GET("/products/:slug", productHandler.GetPublicProduct)
	public.GET("/employees", employeeHandler.ListPublicEmployees)
	public.GET("/csr-icons", csrIconHandler.ListPublicCSRIcons)
	public.GET("/services", offeringHandler.ListPublicServiceOfferings)
	public.GET("/reviews", reviewHandler.ListPublicReviews)
	public.POST("/reviews", reviewHandler.SubmitReview)
	public.POST("/contacts", contactHandler.SubmitContact)

	auth := v1.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Admin routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)
	protected.POST("/admins", authHandler.CreateAdmin)

	categories := protected.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.POST("/nested", categoryHandler.CreateNestedCategory)
	categories.GET("", categoryHandler.ListCategories)
	categories.GET("/integrity", categoryHandler.Integrity)
	categories.GET("/:id", categoryHandler.GetCategoryByID)
	categories.GET("/:id/children", categoryHandler.GetChildren)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	products := protected.Group("/products")
	products.POST("", productHandler.CreateProduct)
	products.GET("", productHandler.ListProducts)
	products.GET("/:id", productHandler.GetProductByID)
	products.PUT("/:id", productHandler.UpdateProduct)
	products.DELETE("/:id", productHandler.DeleteProduct)

	employees := protected.Group("/employees")
	employees.POST("", employeeHandler.CreateEmployee)
	employees.GET("", employeeHandler.ListEmployees)
	employees.GET("/:id", employeeHandler.GetEmployeeByID)
	employees.PUT("/:id", employeeHandler.UpdateEmployee)
	employees.DELETE("/:id", employeeHandler.DeleteEmployee)

	csrIcons := protected.Group("/csr-icons")
	csrIcons.POST("", csrIconHandler.CreateCSRIcon)
	csrIcons.GET("", csrIconHandler.ListCSRIcons)
	csrIcons.GET("/:id", csrIconHandler.GetCSRIconByID)
	csrIcons.PUT("/:id", csrIconHandler.UpdateCSRIcon)
	csrIcons.DELETE("/:id", csrIconHandler.DeleteCSRIcon)

	offerings := protected.Group("/services")
	offerings.POST("", offeringHandler.CreateServiceOffering)
	offerings.GET("", offeringHandler.ListServiceOfferings)
	offerings.GET("/:id", offeringHandler.GetServiceOfferingByID)
	offerings.PUT("/:id", offeringHandler.UpdateServiceOffering)
	offerings.DELETE("/:id", offeringHandler.DeleteServiceOffering)

	contacts := protected.Group("/contacts")
	contacts.GET("", contactHandler.ListContacts)
	contacts.GET("/:id", contactHandler.GetContactByID)
	contacts.PATCH("/:id/status", contactHandler.UpdateContactStatus)
	contacts.DELETE("/:id", contactHandler.DeleteContact)

	reviews := protected.Group("/reviews")
	reviews.GET("", reviewHandler.ListReviews)
	reviews.PATCH("/:id/approve", reviewHandler.ApproveReview)
	reviews.DELETE("/:id", reviewHandler.DeleteReview)

	protected.GET("/audit-logs", auditHandler.ListAuditLogs)

	return router
}

// Handler wraps the router so handlers can add Server-Timing metrics.
func Handler(router *gin.Engine) http.Handler {
	return servertiming.Middleware(router, nil)
}

// Run serves handler on addr until ctx is cancelled, then drains in-flight
// requests for up to shutdownTimeout.
func Run(ctx context.Context, addr string, handler http.Handler, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Get().Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
