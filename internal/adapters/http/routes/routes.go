package routes

import (
	"time"

	"libraryhub/internal/adapters/http/handlers"
	"libraryhub/internal/adapters/http/middleware"
	"libraryhub/internal/adapters/persistence/repositories"
	"libraryhub/internal/config"
	"libraryhub/internal/core/domain"
	"libraryhub/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Services bundles the application services shared by routes and background jobs
type Services struct {
	DB        *gorm.DB
	Auth      *services.AuthService
	Users     *services.UserService
	Books     *services.BookService
	Borrowing *services.BorrowingService
	Dashboard *services.DashboardService
}

// NewServices wires repositories and services on top of db
func NewServices(db *gorm.DB, cfg *config.Config) *Services {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	bookRepo := repositories.NewBookRepository(db)
	borrowingRepo := repositories.NewBorrowingRepository(db)

	// Initialize services
	userService := services.NewUserService(userRepo)
	bookService := services.NewBookService(bookRepo)

	return &Services{
		DB:        db,
		Auth:      services.NewAuthService(userRepo, userService, cfg),
		Users:     userService,
		Books:     bookService,
		Borrowing: services.NewBorrowingService(borrowingRepo, userService, bookService),
		Dashboard: services.NewDashboardService(db),
	}
}

// Setup configures all routes for the application
func Setup(app *fiber.App, svc *Services, cfg *config.Config) {
	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg, svc.DB)
	authHandler := handlers.NewAuthHandler(svc.Auth)
	userHandler := handlers.NewUserHandler(svc.Users)
	bookHandler := handlers.NewBookHandler(svc.Books)
	borrowingHandler := handlers.NewBorrowingHandler(svc.Borrowing)
	dashboardHandler := handlers.NewDashboardHandler(svc.Dashboard)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	authenticated := middleware.Protected(cfg)
	adminOnly := middleware.Protected(cfg, domain.RoleAdmin)

	// Auth routes
	auth := apiV1.Group("/auth", middleware.NoCacheHeaders())
	auth.Post("/signup", middleware.AuthRateLimiter(), authHandler.Signup)
	auth.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	auth.Get("/me", authenticated, authHandler.Me)
	auth.Patch("/me", authenticated, authHandler.UpdateMe)

	// User management routes (admin)
	users := apiV1.Group("/users", adminOnly)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Patch("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Catalog routes (reads are public)
	books := apiV1.Group("/books")
	books.Get("/", middleware.CacheControl(30*time.Second), bookHandler.List)
	books.Get("/:id", middleware.CacheControl(30*time.Second), bookHandler.GetByID)
	books.Post("/", adminOnly, bookHandler.Create)
	books.Patch("/:id", adminOnly, bookHandler.Update)

	// Borrowing process routes (admin)
	borrowing := apiV1.Group("/borrowing-process", adminOnly)
	borrowing.Post("/", borrowingHandler.Checkout)
	borrowing.Get("/", borrowingHandler.List)
	borrowing.Get("/export/last-month", middleware.ExportRateLimiter(), middleware.NoCacheHeaders(), borrowingHandler.Export)
	borrowing.Patch("/return/:id", borrowingHandler.Return)
	borrowing.Get("/:id", borrowingHandler.GetByID)
	borrowing.Patch("/:id", borrowingHandler.Update)
	borrowing.Delete("/:id", borrowingHandler.Remove)

	// Dashboard routes
	dashboard := apiV1.Group("/dashboard", middleware.NoCacheHeaders())
	dashboard.Get("/admin", adminOnly, dashboardHandler.GetAdminDashboard)
	dashboard.Get("/me", authenticated, dashboardHandler.GetMyDashboard)
}
