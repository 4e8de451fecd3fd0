package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	authusecases "github.com/cinevault-inc/cinevault/internal/application/auth/usecases"
	"github.com/cinevault-inc/cinevault/internal/application/entitlement"
	movieusecases "github.com/cinevault-inc/cinevault/internal/application/movie/usecases"
	appnotification "github.com/cinevault-inc/cinevault/internal/application/notification"
	subscriptionusecases "github.com/cinevault-inc/cinevault/internal/application/subscription/usecases"
	userusecases "github.com/cinevault-inc/cinevault/internal/application/user/usecases"
	"github.com/cinevault-inc/cinevault/internal/infrastructure/auth"
	"github.com/cinevault-inc/cinevault/internal/infrastructure/billing"
	"github.com/cinevault-inc/cinevault/internal/infrastructure/cache"
	"github.com/cinevault-inc/cinevault/internal/infrastructure/config"
	"github.com/cinevault-inc/cinevault/internal/infrastructure/notification"
	"github.com/cinevault-inc/cinevault/internal/infrastructure/ratelimit"
	"github.com/cinevault-inc/cinevault/internal/infrastructure/repository"
	"github.com/cinevault-inc/cinevault/internal/interfaces/http/handlers"
	"github.com/cinevault-inc/cinevault/internal/interfaces/http/middleware"
	shareddb "github.com/cinevault-inc/cinevault/internal/shared/db"
	"github.com/cinevault-inc/cinevault/internal/shared/logger"
	"github.com/cinevault-inc/cinevault/internal/shared/services/sanitizer"

	_ "github.com/cinevault-inc/cinevault/docs"
)

// Router wires the HTTP surface: repositories, use cases, handlers, and
// middleware, in that order.
type Router struct {
	engine              *gin.Engine
	cfg                 *config.Config
	logger              logger.Interface
	authHandler         *handlers.AuthHandler
	userHandler         *handlers.UserHandler
	subscriptionHandler *handlers.SubscriptionHandler
	movieHandler        *handlers.MovieHandler
	webhookHandler      *handlers.WebhookHandler
	authMiddleware      *middleware.AuthMiddleware
	rateLimiter         ratelimit.RateLimiter
}

// NewRouter builds the router and its full dependency graph.
func NewRouter(gormDB *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) *Router {
	engine := gin.New()

	userRepo := repository.NewUserRepository(gormDB, log)
	subscriptionRepo := repository.NewSubscriptionRepository(gormDB, log)
	movieRepo := repository.NewMovieRepository(gormDB, log)
	revocationRepo := repository.NewRevokedTokenRepository(gormDB, log)
	sentNotificationRepo := repository.NewSentNotificationRepository(gormDB, log)

	txManager := shareddb.NewTransactionManager(gormDB)

	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.TokenTTLHrs)
	hasher := auth.NewBcryptHasher(cfg.Auth.Password.BcryptCost)

	pushClient := notification.NewPushClient(&cfg.Notification, log)
	whatsappClient := notification.NewWhatsAppClient(&cfg.Notification, log)
	dispatcher := appnotification.NewDispatcher(userRepo, sentNotificationRepo, pushClient, whatsappClient, log)

	gateway := billing.NewClient(&cfg.Billing, log)
	webhookVerifier := billing.NewSignatureVerifier(cfg.Billing.WebhookSecret)
	eventStore := cache.NewWebhookEventStore(redisClient)
	rateLimiter := ratelimit.NewRedisRateLimiter(redisClient)

	sanitizerService := sanitizer.NewService()
	entitlementResolver := entitlement.NewResolver(subscriptionRepo, log)

	loginUC := authusecases.NewLoginUseCase(userRepo, hasher, jwtService, log)
	logoutUC := authusecases.NewLogoutUseCase(revocationRepo, userRepo, log)

	registerUC := userusecases.NewRegisterUserUseCase(
		userRepo, subscriptionRepo, hasher, jwtService, dispatcher, txManager, log)
	updateDeviceTokenUC := userusecases.NewUpdateDeviceTokenUseCase(userRepo, log)

	initiateUC := subscriptionusecases.NewInitiateSubscriptionUseCase(
		subscriptionRepo, userRepo, gateway, cfg.Subscription, txManager, log)
	confirmUC := subscriptionusecases.NewConfirmSubscriptionUseCase(
		subscriptionRepo, gateway, dispatcher, cfg.Subscription, txManager, log)
	cancelUC := subscriptionusecases.NewCancelSubscriptionUseCase(subscriptionRepo, txManager, log)
	statusUC := subscriptionusecases.NewGetSubscriptionStatusUseCase(subscriptionRepo, txManager, log)
	webhookUC := subscriptionusecases.NewHandleWebhookUseCase(
		subscriptionRepo, eventStore, dispatcher, cfg.Subscription, txManager, log)

	listMoviesUC := movieusecases.NewListMoviesUseCase(movieRepo, sanitizerService, log)
	getMovieUC := movieusecases.NewGetMovieUseCase(movieRepo, log)
	createMovieUC := movieusecases.NewCreateMovieUseCase(movieRepo, sanitizerService, dispatcher, log)
	updateMovieUC := movieusecases.NewUpdateMovieUseCase(movieRepo, sanitizerService, log)
	deleteMovieUC := movieusecases.NewDeleteMovieUseCase(movieRepo, log)

	return &Router{
		engine: engine,
		cfg:    cfg,
		logger: log,
		authHandler: handlers.NewAuthHandler(loginUC, logoutUC, log),
		userHandler: handlers.NewUserHandler(registerUC, updateDeviceTokenUC, log),
		subscriptionHandler: handlers.NewSubscriptionHandler(
			initiateUC, confirmUC, cancelUC, statusUC, log),
		movieHandler: handlers.NewMovieHandler(
			listMoviesUC, getMovieUC, createMovieUC, updateMovieUC, deleteMovieUC,
			entitlementResolver, log),
		webhookHandler: handlers.NewWebhookHandler(webhookVerifier, webhookUC, log),
		authMiddleware: middleware.NewAuthMiddleware(jwtService, revocationRepo, userRepo, log),
		rateLimiter:    rateLimiter,
	}
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Recovery(r.logger))
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())

	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.engine.Group("/api/v1")

	v1.POST("/users", r.userHandler.Register)
	v1.POST("/auth/login",
		middleware.LoginRateLimit(r.rateLimiter, r.cfg.Auth.RateLimit.LoginPerMinute, r.logger),
		r.authHandler.Login)

	// Sign-out must stay callable with a dead token, so it sits behind the
	// lenient decoder rather than the strict gate.
	v1.POST("/auth/logout", r.authMiddleware.OptionalAuth(), r.authHandler.Logout)

	// The billing gateway authenticates with the signature header instead of
	// a session token.
	v1.POST("/webhooks/billing", r.webhookHandler.HandleBillingEvent)

	authed := v1.Group("")
	authed.Use(r.authMiddleware.RequireAuth())
	{
		authed.GET("/users/me", r.userHandler.Me)
		authed.PATCH("/users/device-token", r.userHandler.UpdateDeviceToken)

		authed.POST("/subscriptions", r.subscriptionHandler.Initiate)
		authed.POST("/subscriptions/confirm", r.subscriptionHandler.Confirm)
		authed.POST("/subscriptions/cancel", r.subscriptionHandler.Cancel)
		authed.GET("/subscriptions/status", r.subscriptionHandler.Status)

		authed.GET("/movies", r.movieHandler.List)
		authed.GET("/movies/:id", r.movieHandler.Get)

		catalog := authed.Group("/movies")
		catalog.Use(middleware.RequireCatalogManager())
		{
			catalog.POST("", r.movieHandler.Create)
			catalog.PUT("/:id", r.movieHandler.Update)
			catalog.DELETE("/:id", r.movieHandler.Delete)
		}
	}
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
