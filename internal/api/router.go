package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/nekogravitycat/shareit-backend/internal/auth"
	"github.com/nekogravitycat/shareit-backend/internal/booking"
	bookingHttp "github.com/nekogravitycat/shareit-backend/internal/booking/http"
	"github.com/nekogravitycat/shareit-backend/internal/item"
	itemHttp "github.com/nekogravitycat/shareit-backend/internal/item/http"
	"github.com/nekogravitycat/shareit-backend/internal/metrics"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/ratelimit"
	"github.com/nekogravitycat/shareit-backend/internal/user"
	userHttp "github.com/nekogravitycat/shareit-backend/internal/user/http"
)

// Config holds everything the router needs.
type Config struct {
	IsProduction bool
	ProdOrigins  []string
	Logger       *zerolog.Logger
	// Limiter may be nil to disable rate limiting.
	Limiter ratelimit.Limiter

	UserService    user.Service
	ItemService    item.Service
	BookingService *booking.Service
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Metrics, Rate limit) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	logger := cfg.Logger
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	metrics.Register()

	r := gin.New()

	// Global Middleware:
	// - RequestLogger: one structured line per request, logger attached to the request context.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(RequestLogger(logger), Recovery(), Metrics())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = cfg.ProdOrigins
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:3000",
			"http://localhost:8081", // Swagger
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", auth.UserIDHeader}
	if len(corsConfig.AllowOrigins) > 0 {
		r.Use(cors.New(corsConfig))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// userMiddleware: reads the acting user from the X-Sharer-User-Id header.
	userMiddleware := auth.UserRequired()

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	userHandler := userHttp.NewHandler(cfg.UserService)
	itemHandler := itemHttp.NewHandler(cfg.ItemService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	v1.Use(RateLimit(cfg.Limiter))
	{
		userHttp.RegisterRoutes(v1, userHandler)
		itemHttp.RegisterRoutes(v1, itemHandler, userMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, userMiddleware)
	}

	return r
}
