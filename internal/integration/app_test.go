package integration_test

import (
	"context"
	"log/slog"
	"os"
	"slices"
	"sync"
	"time"
	_ "time/tzdata"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-checkout/internal/app"
	"github.com/metinatakli/movie-checkout/internal/booking"
	"github.com/metinatakli/movie-checkout/internal/payment"
	"github.com/metinatakli/movie-checkout/internal/queue"
	"github.com/metinatakli/movie-checkout/internal/repository"
	"github.com/redis/go-redis/v9"
)

type TestApp struct {
	App         *app.Application
	DB          *pgxpool.Pool
	RedisClient *redis.Client
	Events      *eventRecorder
}

// eventRecorder keeps published booking confirmations in place of a broker.
type eventRecorder struct {
	mu     sync.Mutex
	events []queue.BookingConfirmedEvent
}

func (e *eventRecorder) PublishBookingConfirmed(ctx context.Context, event queue.BookingConfirmedEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.events = append(e.events, event)
	return nil
}

func (e *eventRecorder) published() []queue.BookingConfirmedEvent {
	e.mu.Lock()
	defer e.mu.Unlock()

	return slices.Clone(e.events)
}

func (e *eventRecorder) reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.events = nil
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	db, err := app.NewDatabasePool(cfg.DB)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg.Redis)
	if err != nil {
		db.Close()
		return nil, err
	}

	reservationRepo := repository.NewPostgresReservationRepository(db)
	paymentProvider := payment.NewMockPaymentProvider(cfg.Stripe.SuccessUrl)
	bookingService := booking.NewService(reservationRepo, paymentProvider, logger)

	location, err := loadLocation(cfg)
	if err != nil {
		db.Close()
		redisClient.Close()
		return nil, err
	}

	events := &eventRecorder{}

	application, err := app.NewApp(cfg, app.Dependencies{
		Logger:          logger,
		SessionManager:  app.NewSessionManager(redisClient, cfg.Checkout.TTL),
		Catalog:         repository.NewPostgresCatalog(db, location),
		SeatInventory:   repository.NewPostgresSeatRepository(db),
		CheckoutRepo:    repository.NewRedisCheckoutRepository(redisClient),
		ReservationRepo: reservationRepo,
		BookingGateway:  booking.NewGateway(bookingService),
		Publisher:       events,
	})
	if err != nil {
		db.Close()
		redisClient.Close()
		return nil, err
	}

	return &TestApp{
		App:         application,
		DB:          db,
		RedisClient: redisClient,
		Events:      events,
	}, nil
}

func loadLocation(cfg app.Config) (*time.Location, error) {
	return time.LoadLocation(cfg.Checkout.TimeZone)
}
