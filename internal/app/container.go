package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusbook/room-booking-backend/internal/api"
	"github.com/campusbook/room-booking-backend/internal/cache"
	"github.com/campusbook/room-booking-backend/internal/notify"
	"github.com/campusbook/room-booking-backend/internal/partner"
	"github.com/campusbook/room-booking-backend/internal/payment"
	"github.com/campusbook/room-booking-backend/internal/photo"
	"github.com/campusbook/room-booking-backend/internal/pkg/storage"
	"github.com/campusbook/room-booking-backend/internal/reservation"
	"github.com/campusbook/room-booking-backend/internal/store"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	// DBPool is optional; without it the manager runs purely in memory.
	DBPool *pgxpool.Pool

	// KafkaBrokers is optional; when empty no lifecycle events are published
	// to the broker.
	KafkaBrokers []string
	KafkaTopic   string

	// RedisAddr is optional; when empty the room catalog is served uncached.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RoomCacheTTL  time.Duration

	PhotoStoragePath string
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router    *gin.Engine
	Manager   *reservation.Manager
	Store     store.Store
	Publisher *notify.EventPublisher
	RoomCache *cache.RoomCache
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	// Persistence (optional)
	var st store.Store
	if cfg.DBPool != nil {
		st = store.NewPgxStore(cfg.DBPool)
	}

	// Default notification channels. Every new booking starts with these.
	defaults := []notify.Subscriber{
		notify.NewEmailNotifier(),
		notify.NewAdminDashboard(),
	}
	var publisher *notify.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher = notify.NewEventPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defaults = append(defaults, publisher)
	}
	fanout := notify.NewFanout(defaults...)

	// External availability provider
	portal := partner.NewSystem()
	provider := partner.NewAdapter(portal)

	// Reservation manager
	manager := reservation.NewManager(st, provider, fanout)

	// The partner portal channel needs the requester registry, which lives on
	// the manager, so it joins the default set after construction.
	fanout.AddDefault(notify.NewPartnerPortal(manager.RequesterCategory))

	// Payment module
	paymentService := payment.NewService(nil)

	// Photo module (optional)
	var photoService photo.Service
	if cfg.PhotoStoragePath != "" {
		localStorage, err := storage.NewLocalStorage(cfg.PhotoStoragePath)
		if err != nil {
			return nil, fmt.Errorf("init photo storage: %w", err)
		}
		photoService = photo.NewService(photo.NewMemoryRepository(), localStorage, manager)
	}

	// Room catalog cache (optional)
	var roomCache *cache.RoomCache
	if cfg.RedisAddr != "" {
		roomCache = cache.NewRoomCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RoomCacheTTL)
	}

	// Router
	router := api.NewRouter(api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		Manager:        manager,
		PaymentService: paymentService,
		PhotoService:   photoService,
		RoomCache:      roomCache,
	})

	return &Container{
		Router:    router,
		Manager:   manager,
		Store:     st,
		Publisher: publisher,
		RoomCache: roomCache,
	}, nil
}

// Close releases the container's external connections.
func (c *Container) Close() {
	if c.Publisher != nil {
		_ = c.Publisher.Close()
	}
	if c.RoomCache != nil {
		_ = c.RoomCache.Close()
	}
}
