package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	bookingHttp "github.com/campusbook/room-booking-backend/internal/booking/http"
	"github.com/campusbook/room-booking-backend/internal/cache"
	"github.com/campusbook/room-booking-backend/internal/payment"
	"github.com/campusbook/room-booking-backend/internal/photo"
	photoHttp "github.com/campusbook/room-booking-backend/internal/photo/http"
	requesterHttp "github.com/campusbook/room-booking-backend/internal/requester/http"
	"github.com/campusbook/room-booking-backend/internal/reservation"
	roomHttp "github.com/campusbook/room-booking-backend/internal/room/http"
)

// Config carries the services the router wires handlers to.
type Config struct {
	IsProduction   bool
	ProdOrigins    string
	Manager        *reservation.Manager
	PaymentService *payment.Service
	PhotoService   photo.Service
	RoomCache      *cache.RoomCache
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger) and registering
// routes for the modules.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = splitOrigins(cfg.ProdOrigins)
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:8081", // Swagger
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	roomHandler := roomHttp.NewHandler(cfg.Manager, cfg.RoomCache)
	requesterHandler := requesterHttp.NewHandler(cfg.Manager)
	bookingHandler := bookingHttp.NewHandler(cfg.Manager, cfg.PaymentService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		roomHttp.RegisterRoutes(v1, roomHandler)
		requesterHttp.RegisterRoutes(v1, requesterHandler)
		bookingHttp.RegisterRoutes(v1, bookingHandler)
		if cfg.PhotoService != nil {
			photoHttp.RegisterRoutes(v1, photoHttp.NewHandler(cfg.PhotoService))
		}
	}

	return r
}

func splitOrigins(origins string) []string {
	var out []string
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
