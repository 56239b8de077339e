// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/pocket-ledger/backend/internal/domain/entity"
	"github.com/pocket-ledger/backend/internal/integration/entrypoint/controller"
	"github.com/pocket-ledger/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine              *gin.Engine
	healthController    *controller.HealthController
	authController      *controller.AuthController
	userController      *controller.UserController
	factsController     *controller.FactsController
	categoryController  *controller.CategoryController
	bucketController    *controller.BucketController
	semesterController  *controller.SemesterController
	monthController     *controller.MonthController
	dashboardController *controller.DashboardController
	loginRateLimiter    *middleware.RateLimiter
	authMiddleware      *middleware.AuthMiddleware
}

// Controllers groups the HTTP handlers served by the API.
type Controllers struct {
	Health    *controller.HealthController
	Auth      *controller.AuthController
	User      *controller.UserController
	Facts     *controller.FactsController
	Category  *controller.CategoryController
	Bucket    *controller.BucketController
	Semester  *controller.SemesterController
	Month     *controller.MonthController
	Dashboard *controller.DashboardController
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	controllers Controllers,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:    controllers.Health,
		authController:      controllers.Auth,
		userController:      controllers.User,
		factsController:     controllers.Facts,
		categoryController:  controllers.Category,
		bucketController:    controllers.Bucket,
		semesterController:  controllers.Semester,
		monthController:     controllers.Month,
		dashboardController: controllers.Dashboard,
		loginRateLimiter:    loginRateLimiter,
		authMiddleware:      authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
		}

		// Everything below requires authentication
		protected := v1.Group("")
		protected.Use(r.authMiddleware.Authenticate())

		users := protected.Group("/users/me")
		{
			users.PATCH("", r.userController.UpdateProfile)
			users.PUT("/password", r.userController.ChangePassword)
			users.DELETE("", r.userController.DeleteAccount)
		}

		facts := protected.Group("/facts")
		{
			facts.GET("", r.factsController.Load)
			facts.DELETE("/months", r.factsController.ClearMonths)
		}

		categories := protected.Group("/categories")
		{
			categories.GET("", r.categoryController.List)
			categories.POST("", r.categoryController.Create)
			categories.DELETE("/:id", r.categoryController.Delete)
		}

		platforms := protected.Group("/platforms")
		{
			platforms.POST("", r.bucketController.Create(entity.BucketKindPlatform))
			platforms.DELETE("/:id", r.bucketController.Delete(entity.BucketKindPlatform))
		}

		portfolios := protected.Group("/portfolios")
		{
			portfolios.POST("", r.bucketController.Create(entity.BucketKindPortfolio))
			portfolios.DELETE("/:id", r.bucketController.Delete(entity.BucketKindPortfolio))
		}

		semesters := protected.Group("/semesters")
		{
			semesters.GET("", r.semesterController.List)
			semesters.POST("", r.semesterController.Create)
			semesters.DELETE("/:id", r.semesterController.Delete)
		}

		months := protected.Group("/months/:month")
		{
			months.GET("", r.monthController.Navigate)
			months.GET("/income", r.monthController.GetIncome)
			months.POST("/income", r.monthController.AddIncome)
			months.GET("/expenses", r.monthController.GetExpenses)
			months.PUT("/expenses", r.monthController.SetExpense)
			months.GET("/budgets", r.monthController.GetBudgets)
			months.PUT("/budgets", r.monthController.SaveBudgets)
			months.GET("/savings", r.bucketController.GetMonth(entity.BucketKindPlatform))
			months.PUT("/savings", r.bucketController.SaveMonth(entity.BucketKindPlatform))
			months.GET("/investments", r.bucketController.GetMonth(entity.BucketKindPortfolio))
			months.PUT("/investments", r.bucketController.SaveMonth(entity.BucketKindPortfolio))
		}

		protected.DELETE("/income/:id", r.monthController.DeleteIncome)
		protected.GET("/savings", r.bucketController.GetGrid(entity.BucketKindPlatform))
		protected.PUT("/savings", r.bucketController.SaveGrid(entity.BucketKindPlatform))
		protected.GET("/investments", r.bucketController.GetGrid(entity.BucketKindPortfolio))
		protected.PUT("/investments", r.bucketController.SaveGrid(entity.BucketKindPortfolio))
		protected.GET("/dashboard", r.dashboardController.Get)
		protected.GET("/export", r.dashboardController.Export)
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
