package router

import (
	"time"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/config"
	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/handler"
	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/middleware"
	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/repository"
	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/service"
	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/store"
	"github.com/htconfort/Caisse-NATURAL-CONFORT-MEMORY-sub003/internal/worker"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis/Store
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, st *store.Store) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	sessionRepo := repository.NewSessionRepository(db)
	vendorRepo := repository.NewVendorRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	cartRepo := repository.NewCartRepository(db)
	stockRepo := repository.NewStockRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	cacheRepo := repository.NewCacheRepository(db)
	historyRepo := repository.NewHistoryRepository(db)
	archiveRepo := repository.NewArchiveRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	commissionSvc := service.NewCommissionService(vendorRepo, archiveRepo, cfg.ActiveVendorIDs)
	sessionSvc := service.NewSessionService(sessionRepo, commissionSvc)
	saleSvc := service.NewSaleService(saleRepo, vendorRepo, stockRepo, analyticsRepo)
	resetSvc := service.NewResetService(sessionRepo, saleRepo, cartRepo, vendorRepo, stockRepo, analyticsRepo, cacheRepo, st.Fast())
	historySvc := service.NewHistoryService(historyRepo)
	archiveSvc := service.NewArchiveService(archiveRepo)

	// Worker dispatcher — injected into handlers that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	sessionsH := handler.NewSessionsHandler(sessionSvc)
	salesH := handler.NewSalesHandler(saleSvc)
	resetH := handler.NewResetHandler(resetSvc)
	historyH := handler.NewHistoryHandler(historySvc, dispatcher, cfg.ReportEmail)
	archivesH := handler.NewArchivesHandler(archiveSvc)
	settingsH := handler.NewSettingsHandler(st)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb))

	v1 := r.Group("/v1")
	{
		sessions := v1.Group("/sessions")
		{
			sessions.POST("", sessionsH.Open)
			sessions.GET("/current", sessionsH.Current)
			sessions.DELETE("/current", sessionsH.Close)
		}

		v1.POST("/sales", salesH.Register)
		v1.GET("/sales", salesH.List)
		v1.DELETE("/sales/:id", salesH.Cancel)
		v1.POST("/stock/restock", salesH.Restock)
		v1.POST("/stock/adjust", salesH.AdjustStock)

		raz := v1.Group("/raz")
		{
			raz.GET("/preview", resetH.Preview)
			raz.POST("", resetH.Execute)
			raz.POST("/pending-checks", resetH.ClearPendingChecks)

			// history routes live under /raz because each entry IS one RAZ
			raz.POST("/history", historyH.Save)
			raz.GET("/history", historyH.List)
			raz.GET("/history/export", historyH.Export)
			raz.POST("/history/cleanup", historyH.Cleanup)
			raz.GET("/history/:id", historyH.Get)
			raz.DELETE("/history/:id", historyH.Delete)
		}

		archives := v1.Group("/commission-archives")
		{
			archives.GET("", archivesH.List)
			archives.DELETE("", archivesH.Clear)
			archives.GET("/:id", archivesH.Get)
			archives.DELETE("/:id", archivesH.Delete)
			archives.GET("/:id/csv", archivesH.ExportCSV)
		}

		settings := v1.Group("/settings")
		{
			settings.GET("/:key", settingsH.Get)
			settings.PUT("/:key", settingsH.Put)
			settings.DELETE("/:key", settingsH.Delete)
			settings.POST("/:key/reconcile", settingsH.Reconcile)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
