package routes

import (
	"learnhub/internal/adapters/http/handlers"
	"learnhub/internal/adapters/http/middleware"
	"learnhub/internal/adapters/persistence/repositories"
	"learnhub/internal/config"
	"learnhub/internal/core/services"
	"learnhub/internal/pkg/jwt"
	"learnhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Options tweaks route wiring for tests
type Options struct {
	// PasswordCost overrides the bcrypt cost used at registration
	PasswordCost int
	// Swagger mounts /swagger/*
	Swagger bool
}

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config, log zerolog.Logger, opts Options) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	courseRepo := repositories.NewCourseRepository(db)
	purchaseRepo := repositories.NewPurchaseRepository(db)
	enrollmentRepo := repositories.NewEnrollmentRepository(db)

	// Initialize services
	tokens := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessTTL())
	authService := services.NewAuthService(userRepo, tokens, log)
	if opts.PasswordCost > 0 {
		authService.WithHashCost(opts.PasswordCost)
	}
	userService := services.NewUserService(userRepo, log)
	courseService := services.NewCourseService(courseRepo, categoryRepo)
	purchaseService := services.NewPurchaseService(purchaseRepo, courseRepo)
	enrollmentService := services.NewEnrollmentService(enrollmentRepo, log)

	// Initialize handlers
	validate := handlers.NewValidator()
	healthHandler := handlers.NewHealthHandler(db, cfg)
	authHandler := handlers.NewAuthHandler(authService, validate, cfg)
	userHandler := handlers.NewUserHandler(userService, validate)
	courseHandler := handlers.NewCourseHandler(courseService, validate)
	purchaseHandler := handlers.NewPurchaseHandler(enrollmentService, purchaseService, validate)

	requireAuth := middleware.AuthMiddleware(authService, log)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	if opts.Swagger {
		app.Get("/swagger/*", swagger.HandlerDefault)
	}

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	setupAuthRoutes(apiV1.Group("/auth"), authHandler, requireAuth)
	setupCatalogRoutes(apiV1, courseHandler, purchaseHandler, requireAuth)
	setupPurchaseRoutes(apiV1.Group("/purchases"), purchaseHandler, requireAuth)
	setupUserRoutes(apiV1.Group("/users"), userHandler, requireAuth)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return response.NotFound(c, "Route not found")
	})
}

// setupAuthRoutes configures auth routes
func setupAuthRoutes(router fiber.Router, h *handlers.AuthHandler, requireAuth fiber.Handler) {
	router.Post("/register", middleware.AuthRateLimiter(), h.Register)
	router.Post("/login", middleware.AuthRateLimiter(), h.Login)
	router.Post("/logout", h.Logout)

	// Protected routes
	router.Get("/me", requireAuth, middleware.NoCacheHeaders(), h.Me)
}

// setupCatalogRoutes configures category and course routes
func setupCatalogRoutes(
	router fiber.Router,
	courses *handlers.CourseHandler,
	purchases *handlers.PurchaseHandler,
	requireAuth fiber.Handler,
) {
	router.Get("/categories", middleware.CatalogCache(), courses.ListCategories)

	courseRoutes := router.Group("/courses")
	courseRoutes.Get("/", courses.ListCourses)
	courseRoutes.Get("/:id", courses.GetCourse)

	// Instructor or Admin
	courseRoutes.Post("/", requireAuth, middleware.InstructorOrAdmin(), courses.CreateCourse)
	courseRoutes.Patch("/:id/status", requireAuth, middleware.InstructorOrAdmin(), courses.UpdateStatus)

	// Admin only
	courseRoutes.Get("/:id/purchases", requireAuth, middleware.AdminOnly(), middleware.NoCacheHeaders(), purchases.ListByCourse)
}

// setupPurchaseRoutes configures enrollment routes
func setupPurchaseRoutes(router fiber.Router, h *handlers.PurchaseHandler, requireAuth fiber.Handler) {
	router.Use(requireAuth, middleware.NoCacheHeaders())

	router.Post("/", h.Purchase)
	router.Get("/me", h.ListMine)
}

// setupUserRoutes configures user management routes (Admin only)
func setupUserRoutes(router fiber.Router, h *handlers.UserHandler, requireAuth fiber.Handler) {
	router.Use(requireAuth, middleware.AdminOnly(), middleware.NoCacheHeaders())

	router.Get("/", h.ListUsers)
	router.Get("/:id", h.GetUser)
	router.Patch("/:id/role", h.UpdateRole)
	router.Delete("/:id", h.DeleteUser)
}
