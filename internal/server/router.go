package server

import (
	"net/http"
	"time"

	"hostelflow/internal/config"
	"hostelflow/internal/domain/assistant"
	"hostelflow/internal/domain/auth"
	"hostelflow/internal/domain/booking"
	"hostelflow/internal/domain/catalog"
	"hostelflow/internal/domain/notification"
	"hostelflow/internal/domain/provider"
	"hostelflow/internal/middleware"
	"hostelflow/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps are the process-wide collaborators the router is built from.
type Deps struct {
	Config *config.Config
	DB     *gorm.DB
	Log    *zap.Logger

	// ChatModel may be nil; the chat endpoint then always answers with the
	// fallback reply.
	ChatModel assistant.Model

	// Now overrides the clock used for slot availability and prompts.
	Now func() time.Time
}

// Models lists every persisted entity, in migration order.
func Models() []any {
	return []any{
		&auth.User{},
		&catalog.HostelService{},
		&provider.ServiceProvider{},
		&provider.ServiceProviderService{},
		&booking.Booking{},
		&notification.Notification{},
	}
}

// NewRouter wires repositories, services and handlers into a gin engine.
func NewRouter(d Deps) *gin.Engine {
	cfg := d.Config
	log := d.Log
	now := d.Now
	if now == nil {
		now = time.Now
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.ErrorLogger(log))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	tokens := jwt.New(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)

	// Services
	hub := notification.NewHub(log)
	authService := auth.NewService(auth.NewUserRepository(d.DB), tokens)
	catalogService := catalog.NewService(catalog.NewRepository(d.DB))
	providerService := provider.NewService(d.DB, cfg.ProviderDefaultPassword, log)
	notificationService := notification.NewService(d.DB, hub, log)
	bookingService := booking.NewService(d.DB, catalogService, notificationService, cfg.Location(), now, log)
	extractor := assistant.NewExtractor(d.ChatModel, cfg.ChatTimeout, now, log)

	// Handlers
	authHandler := auth.NewHandler(authService, log)
	catalogHandler := catalog.NewHandler(catalogService, log)
	providerHandler := provider.NewHandler(providerService, log)
	notificationHandler := notification.NewHandler(notificationService, log)
	streamHandler := notification.NewStreamHandler(hub, tokens, cfg.CORSAllowedOrigins, log)
	bookingHandler := booking.NewHandler(bookingService, log)
	assistantHandler := assistant.NewHandler(extractor, catalogService, log)

	chatLimiter := middleware.NewIPRateLimiter(cfg.ChatRatePerMinute, cfg.ChatRateBurst)

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		authHandler.RegisterPublicRoutes(api)
		catalogHandler.RegisterRoutes(api)
		assistantHandler.RegisterRoutes(api, chatLimiter.Middleware(log))
		notification.RegisterStreamRoute(api, streamHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuth(tokens))
		{
			authHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			notification.RegisterRoutes(protected, notificationHandler)
			providerHandler.RegisterAdminRoutes(protected)
			providerHandler.RegisterProviderRoutes(protected)
		}
	}

	return r
}
