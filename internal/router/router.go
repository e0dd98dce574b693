package router

import (
	"time"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/gutoberny/BernyFlow/internal/config"
	"github.com/gutoberny/BernyFlow/internal/handler"
	"github.com/gutoberny/BernyFlow/internal/infra"
	"github.com/gutoberny/BernyFlow/internal/middleware"
	"github.com/gutoberny/BernyFlow/internal/repository"
	"github.com/gutoberny/BernyFlow/internal/service"
	"github.com/gutoberny/BernyFlow/internal/worker"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, gatewayCB *infra.CircuitBreaker, dispatcher *worker.Dispatcher) *gin.Engine {
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

	// ── Infrastructure ───────────────────────────────────────────────────────
	mpClient := infra.NewMercadoPagoClient(cfg.MPBaseURL, cfg.MPAccessToken)

	// ── Repositories ─────────────────────────────────────────────────────────
	companyRepo := repository.NewCompanyRepository(db)
	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	productRepo := repository.NewProductRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	receiptRepo := repository.NewReceiptRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	planSvc := service.NewPlanService(companyRepo, clientRepo, orderRepo, userRepo)
	authSvc := service.NewAuthService(userRepo, companyRepo, cfg.JWTSecret, cfg.JWTExpirationHours)
	clientSvc := service.NewClientService(clientRepo, planSvc)
	productSvc := service.NewProductService(productRepo)
	catalogSvc := service.NewCatalogService(serviceRepo)
	orderSvc := service.NewOrderService(orderRepo, transactionRepo, productRepo, serviceRepo, clientRepo, receiptRepo, planSvc, dispatcher)
	financialSvc := service.NewFinancialService(transactionRepo)
	teamSvc := service.NewTeamService(userRepo, companyRepo, planSvc, dispatcher)
	companySvc := service.NewCompanyService(companyRepo)
	subscriptionSvc := service.NewSubscriptionService(companyRepo, mpClient, gatewayCB, cfg.FrontendURL, cfg.WebhookURL)

	// ── Handlers ─────────────────────────────────────────────────────────────
	healthH := handler.NewHealthHandler(db, rdb, gatewayCB)
	authH := handler.NewAuthHandler(authSvc)
	clientsH := handler.NewClientsHandler(clientSvc)
	productsH := handler.NewProductsHandler(productSvc)
	servicesH := handler.NewServicesHandler(catalogSvc)
	ordersH := handler.NewOrdersHandler(orderSvc)
	financialH := handler.NewFinancialHandler(financialSvc)
	companyH := handler.NewCompanyHandler(companySvc)
	teamH := handler.NewTeamHandler(teamSvc)
	subscriptionH := handler.NewSubscriptionHandler(subscriptionSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", healthH.Check)

	auth := r.Group("/v1/auth")
	{
		auth.POST("/register", authH.Register)
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
	}

	// Payment gateway notifications — authenticated by payment lookup, not JWT
	r.POST("/v1/subscription/webhook", subscriptionH.Webhook)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	adminMW := middleware.RequireRole("OWNER", "ADMIN")
	v1 := r.Group("/v1", jwtMW)
	{
		v1.GET("/auth/me", authH.Me)
		v1.PUT("/auth/profile", authH.UpdateProfile)
		v1.PUT("/auth/password", authH.ChangePassword)

		clients := v1.Group("/clients")
		{
			clients.POST("", clientsH.Create)
			clients.GET("", clientsH.List)
			clients.GET("/:id", clientsH.Get)
			clients.PUT("/:id", clientsH.Update)
			clients.DELETE("/:id", clientsH.Delete)
		}

		products := v1.Group("/products")
		{
			products.POST("", productsH.Create)
			products.GET("", productsH.List)
			products.GET("/:id", productsH.Get)
			products.PUT("/:id", productsH.Update)
			products.DELETE("/:id", productsH.Delete)
		}

		services := v1.Group("/services")
		{
			services.POST("", servicesH.Create)
			services.GET("", servicesH.List)
			services.GET("/:id", servicesH.Get)
			services.PUT("/:id", servicesH.Update)
			services.DELETE("/:id", servicesH.Delete)
		}

		orders := v1.Group("/service-orders")
		{
			orders.POST("", ordersH.Create)
			orders.GET("", ordersH.List)
			orders.GET("/:id", ordersH.Get)
			orders.PUT("/:id", ordersH.Update)
			orders.DELETE("/:id", ordersH.Delete)
			orders.POST("/:id/items", ordersH.AddItem)
			orders.DELETE("/:id/items/:itemId", ordersH.RemoveItem)
		}

		financial := v1.Group("/financial")
		{
			financial.POST("", financialH.Create)
			financial.GET("", financialH.List)
			financial.GET("/summary", financialH.Summary)
			financial.GET("/:id", financialH.Get)
			financial.PUT("/:id", financialH.Update)
			financial.DELETE("/:id", financialH.Delete)
		}

		v1.GET("/company", companyH.Get)
		v1.PUT("/company", adminMW, companyH.Update)

		team := v1.Group("/team")
		{
			team.GET("", teamH.List)
			team.POST("/invite", adminMW, teamH.Invite)
		}

		v1.POST("/subscription/checkout", subscriptionH.Checkout)
		v1.GET("/subscription/status", subscriptionH.Status)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
