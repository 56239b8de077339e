// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pocket-ledger/backend/config"
	"github.com/pocket-ledger/backend/internal/application/adapter"
	"github.com/pocket-ledger/backend/internal/application/session"
	"github.com/pocket-ledger/backend/internal/application/usecase/auth"
	"github.com/pocket-ledger/backend/internal/application/usecase/bucket"
	"github.com/pocket-ledger/backend/internal/application/usecase/budget"
	"github.com/pocket-ledger/backend/internal/application/usecase/category"
	"github.com/pocket-ledger/backend/internal/application/usecase/dashboard"
	"github.com/pocket-ledger/backend/internal/application/usecase/expense"
	"github.com/pocket-ledger/backend/internal/application/usecase/export"
	"github.com/pocket-ledger/backend/internal/application/usecase/facts"
	"github.com/pocket-ledger/backend/internal/application/usecase/income"
	"github.com/pocket-ledger/backend/internal/application/usecase/semester"
	"github.com/pocket-ledger/backend/internal/domain/entity"
	"github.com/pocket-ledger/backend/internal/infra/server/router"
	"github.com/pocket-ledger/backend/internal/integration/adapters"
	"github.com/pocket-ledger/backend/internal/integration/entrypoint/controller"
	"github.com/pocket-ledger/backend/internal/integration/entrypoint/middleware"
	xlsx "github.com/pocket-ledger/backend/internal/integration/export"
	"github.com/pocket-ledger/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config   *config.Config
	DB       *gorm.DB
	Redis    *redis.Client
	Sessions *session.Store
	Router   *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
// redisClient may be nil, in which case per-user locks stay in-process.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Injector {
	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	factRepo := persistence.NewFactRepository(db)

	// Create adapters/services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	exporter := xlsx.NewXLSXExporter()

	var locker adapter.UserLocker
	if redisClient != nil {
		locker = adapters.NewRedisUserLocker(redisClient, cfg.Ledger.LockTTL)
		if cfg.Ledger.CacheSize > 0 {
			slog.Info("Fact cache disabled while Redis locks are enabled",
				"cache_size", cfg.Ledger.CacheSize,
			)
		}
	}
	sessions := session.NewStore(factRepo, locker, session.Config{
		CacheSize: cfg.Ledger.CacheSize,
		CacheTTL:  cfg.Ledger.CacheTTL,
	})
	orphanPolicy := entity.ParseOrphanPolicy(cfg.Ledger.OrphanPolicy)

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	updateProfileUseCase := auth.NewUpdateProfileUseCase(userRepo, tokenService)
	changePasswordUseCase := auth.NewChangePasswordUseCase(userRepo, passwordService)
	deleteAccountUseCase := auth.NewDeleteAccountUseCase(userRepo, factRepo, sessions)

	// Create fact use cases
	loadFactsUseCase := facts.NewLoadFactsUseCase(sessions)
	clearDataUseCase := facts.NewClearDataUseCase(sessions)

	// Create category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(sessions)
	createCategoryUseCase := category.NewCreateCategoryUseCase(sessions)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(sessions, orphanPolicy)

	// Create bucket use cases
	createBucketUseCase := bucket.NewCreateBucketUseCase(sessions)
	deleteBucketUseCase := bucket.NewDeleteBucketUseCase(sessions, orphanPolicy)
	getBucketMonthUseCase := bucket.NewGetBucketMonthUseCase(sessions)
	saveAmountsUseCase := bucket.NewSaveAmountsUseCase(sessions)
	getBucketGridUseCase := bucket.NewGetBucketGridUseCase(sessions)
	saveBucketGridUseCase := bucket.NewSaveBucketGridUseCase(sessions)

	// Create semester use cases
	listSemestersUseCase := semester.NewListSemestersUseCase(sessions)
	createSemesterUseCase := semester.NewCreateSemesterUseCase(sessions)
	deleteSemesterUseCase := semester.NewDeleteSemesterUseCase(sessions)

	// Create month use cases
	addIncomeUseCase := income.NewAddIncomeUseCase(sessions)
	deleteIncomeUseCase := income.NewDeleteIncomeUseCase(sessions)
	getIncomeUseCase := income.NewGetIncomeMonthUseCase(sessions)
	setExpenseUseCase := expense.NewSetExpenseCellUseCase(sessions)
	getExpenseUseCase := expense.NewGetExpenseMonthUseCase(sessions)
	saveBudgetsUseCase := budget.NewSaveBudgetsUseCase(sessions)
	getBudgetMonthUseCase := budget.NewGetBudgetMonthUseCase(sessions)

	// Create reporting use cases
	dashboardUseCase := dashboard.NewGetDashboardUseCase(sessions)
	exportUseCase := export.NewExportSemesterUseCase(sessions, exporter)

	// Create controllers
	var redisHealthChecker func() bool
	if redisClient != nil {
		redisHealthChecker = func() bool {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redisClient.Ping(ctx).Err() == nil
		}
	}
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, redisHealthChecker)

	controllers := router.Controllers{
		Health:   healthController,
		Auth:     controller.NewAuthController(registerUseCase, loginUseCase),
		User:     controller.NewUserController(updateProfileUseCase, changePasswordUseCase, deleteAccountUseCase),
		Facts:    controller.NewFactsController(loadFactsUseCase, clearDataUseCase),
		Category: controller.NewCategoryController(listCategoriesUseCase, createCategoryUseCase, deleteCategoryUseCase),
		Bucket: controller.NewBucketController(
			createBucketUseCase,
			deleteBucketUseCase,
			getBucketMonthUseCase,
			saveAmountsUseCase,
			getBucketGridUseCase,
			saveBucketGridUseCase,
		),
		Semester: controller.NewSemesterController(listSemestersUseCase, createSemesterUseCase, deleteSemesterUseCase),
		Month: controller.NewMonthController(
			addIncomeUseCase,
			deleteIncomeUseCase,
			getIncomeUseCase,
			setExpenseUseCase,
			getExpenseUseCase,
			saveBudgetsUseCase,
			getBudgetMonthUseCase,
		),
		Dashboard: controller.NewDashboardController(dashboardUseCase, exportUseCase),
	}

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var loginRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		loginRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		loginRateLimiter = middleware.NewRateLimiter()
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(controllers, loginRateLimiter, authMiddleware)

	return &Injector{
		Config:   cfg,
		DB:       db,
		Redis:    redisClient,
		Sessions: sessions,
		Router:   r,
	}
}
