package app

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nekogravitycat/shareit-backend/internal/api"
	"github.com/nekogravitycat/shareit-backend/internal/booking"
	"github.com/nekogravitycat/shareit-backend/internal/db"
	"github.com/nekogravitycat/shareit-backend/internal/item"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/clock"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/ratelimit"
	"github.com/nekogravitycat/shareit-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  []string
	DB           *db.DB
	Logger       *zerolog.Logger
	Limiter      ratelimit.Limiter
	// Clock defaults to the system clock.
	Clock clock.Clock
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router         *gin.Engine
	UserService    user.Service
	ItemService    item.Service
	BookingService *booking.Service
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	clk := cfg.Clock
	if clk == nil {
		clk = clock.System{}
	}

	// User Module
	userRepo := user.NewRepository(cfg.DB)
	userService := user.NewService(userRepo, clk)
	userLookup := user.NewBookingLookup(userService)

	// Item repository first: the booking engine resolves items from it.
	itemRepo := item.NewRepository(cfg.DB)

	// Booking Module
	bookingRepo := booking.NewRepository(cfg.DB)
	bookingService := booking.NewService(bookingRepo, userLookup, item.NewBookingLookup(itemRepo), clk, cfg.Logger)

	// Item Module
	commentRepo := item.NewCommentRepository(cfg.DB)
	itemService := item.NewService(itemRepo, commentRepo, userLookup, bookingService, clk)

	router := api.NewRouter(api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		Logger:         cfg.Logger,
		Limiter:        cfg.Limiter,
		UserService:    userService,
		ItemService:    itemService,
		BookingService: bookingService,
	})

	return &Container{
		Router:         router,
		UserService:    userService,
		ItemService:    itemService,
		BookingService: bookingService,
	}
}
