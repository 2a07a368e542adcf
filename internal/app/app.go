package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/v2"
	"github.com/exaring/otelpgx"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/metinatakli/movie-checkout/api"
	"github.com/metinatakli/movie-checkout/internal/booking"
	"github.com/metinatakli/movie-checkout/internal/booking/orchestration"
	"github.com/metinatakli/movie-checkout/internal/domain"
	"github.com/metinatakli/movie-checkout/internal/payment"
	"github.com/metinatakli/movie-checkout/internal/pricing"
	"github.com/metinatakli/movie-checkout/internal/queue"
	"github.com/metinatakli/movie-checkout/internal/repository"
	appvalidator "github.com/metinatakli/movie-checkout/internal/validator"
	"github.com/metinatakli/movie-checkout/internal/vcs"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.temporal.io/sdk/client"
)

var (
	version = vcs.Version()
)

const (
	BookingEngineDirect   = "direct"
	BookingEngineTemporal = "temporal"
)

type Application struct {
	config         Config
	logger         *slog.Logger
	validator      *validator.Validate
	sessionManager *scs.SessionManager
	openapi        *openapi3.T
	location       *time.Location
	pricingRules   pricing.Rules

	catalog         domain.CatalogService
	seatInventory   domain.SeatInventoryService
	checkoutRepo    domain.CheckoutRepository
	reservationRepo domain.ReservationRepository
	bookingGateway  domain.BookingGateway
	publisher       queue.Publisher
}

type Config struct {
	Port             int
	Env              string
	OtelCollectorUrl string
	OtelSampleRatio  float64
	BookingEngine    string
	DB               DBConfig
	Redis            RedisConfig
	Stripe           StripeConfig
	AMQP             AMQPConfig
	Temporal         TemporalConfig
	Checkout         CheckoutConfig
}

type DBConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleTime  time.Duration
}

type RedisConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	SuccessUrl    string
	FailureUrl    string
}

type AMQPConfig struct {
	URL string
}

type TemporalConfig struct {
	Host      string
	Namespace string
	TaskQueue string
}

type CheckoutConfig struct {
	TTL           time.Duration
	SubmitTimeout time.Duration
	Currency      string
	TimeZone      string
	MaxTickets    int
	TeenDiscount  string
	ChildDiscount string
}

// PricingRules builds the pricing configuration from the checkout flags.
func (c CheckoutConfig) PricingRules() (pricing.Rules, error) {
	teen, err := decimal.NewFromString(c.TeenDiscount)
	if err != nil {
		return pricing.Rules{}, fmt.Errorf("invalid teen discount %q: %w", c.TeenDiscount, err)
	}

	child, err := decimal.NewFromString(c.ChildDiscount)
	if err != nil {
		return pricing.Rules{}, fmt.Errorf("invalid child discount %q: %w", c.ChildDiscount, err)
	}

	return pricing.Rules{
		MaxTickets: c.MaxTickets,
		Discounts: map[domain.TicketCategory]decimal.Decimal{
			domain.TicketAdult: decimal.Zero,
			domain.TicketTeen:  teen,
			domain.TicketChild: child,
		},
	}, nil
}

// Dependencies are the collaborators of the HTTP layer. Run builds them from
// the configuration, tests pass mocks.
type Dependencies struct {
	Logger          *slog.Logger
	SessionManager  *scs.SessionManager
	Catalog         domain.CatalogService
	SeatInventory   domain.SeatInventoryService
	CheckoutRepo    domain.CheckoutRepository
	ReservationRepo domain.ReservationRepository
	BookingGateway  domain.BookingGateway
	Publisher       queue.Publisher
}

func NewApp(cfg Config, deps Dependencies) (*Application, error) {
	rules, err := cfg.Checkout.PricingRules()
	if err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(cfg.Checkout.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid time zone %q: %w", cfg.Checkout.TimeZone, err)
	}

	spec, err := api.LoadSpec(context.Background())
	if err != nil {
		return nil, err
	}

	publisher := deps.Publisher
	if publisher == nil {
		publisher = queue.NopPublisher{}
	}

	return &Application{
		config:          cfg,
		logger:          deps.Logger,
		validator:       appvalidator.NewValidator(),
		sessionManager:  deps.SessionManager,
		openapi:         spec,
		location:        loc,
		pricingRules:    rules,
		catalog:         deps.Catalog,
		seatInventory:   deps.SeatInventory,
		checkoutRepo:    deps.CheckoutRepo,
		reservationRepo: deps.ReservationRepo,
		bookingGateway:  deps.BookingGateway,
		publisher:       publisher,
	}, nil
}

func ParseConfig(args []string) (Config, bool, error) {
	var cfg Config

	fs := flag.NewFlagSet("api", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "port", 3000, "server port")
	fs.StringVar(&cfg.Env, "env", envOr("ENV", "dev"), "Environment (dev|staging|prod)")
	fs.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", os.Getenv("OTEL_COLLECTOR_URL"), "OpenTelemetry collector gRPC endpoint")
	fs.Float64Var(&cfg.OtelSampleRatio, "otel-sample-ratio", 1, "Fraction of traces to sample")
	fs.StringVar(&cfg.BookingEngine, "booking-engine", envOr("BOOKING_ENGINE", BookingEngineDirect), "Booking engine (direct|temporal)")

	fs.StringVar(&cfg.DB.DSN, "db-dsn", os.Getenv("DB_DSN"), "PostgreSQL DSN")
	fs.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", 25, "PostgreSQL max open connections")
	fs.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", 15*time.Minute, "PostgreSQL max idle time for connections")

	fs.StringVar(&cfg.Redis.URL, "redis-url", os.Getenv("REDIS_URL"), "Redis URL")
	fs.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", 25, "Redis max open connections")
	fs.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", 10, "Redis max idle connections")
	fs.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", 2*time.Minute, "Redis max idle time for connections")

	fs.StringVar(&cfg.Stripe.SecretKey, "stripe-key", os.Getenv("STRIPE_KEY"), "Stripe secret key, the mock provider is used when empty")
	fs.StringVar(&cfg.Stripe.WebhookSecret, "stripe-webhook-secret", os.Getenv("STRIPE_WEBHOOK_SECRET"), "Stripe webhook secret")
	fs.StringVar(&cfg.Stripe.SuccessUrl, "stripe-success-url", "https://example.com/success.html", "Stripe payment success page")
	fs.StringVar(&cfg.Stripe.FailureUrl, "stripe-failure-url", "https://example.com/failure.html", "Stripe payment failure page")

	fs.StringVar(&cfg.AMQP.URL, "amqp-url", os.Getenv("AMQP_URL"), "RabbitMQ URL, events are dropped when empty")

	fs.StringVar(&cfg.Temporal.Host, "temporal-host", envOr("TEMPORAL_HOST", client.DefaultHostPort), "Temporal frontend address")
	fs.StringVar(&cfg.Temporal.Namespace, "temporal-namespace", envOr("TEMPORAL_NAMESPACE", client.DefaultNamespace), "Temporal namespace")
	fs.StringVar(&cfg.Temporal.TaskQueue, "temporal-task-queue", "booking", "Temporal task queue")

	fs.DurationVar(&cfg.Checkout.TTL, "checkout-ttl", 20*time.Minute, "Lifetime of an idle checkout")
	fs.DurationVar(&cfg.Checkout.SubmitTimeout, "submit-timeout", 30*time.Second, "Upper bound of a booking submission")
	fs.StringVar(&cfg.Checkout.Currency, "currency", "KRW", "ISO currency of ticket prices")
	fs.StringVar(&cfg.Checkout.TimeZone, "timezone", "Asia/Seoul", "Time zone that screening dates are expressed in")
	fs.IntVar(&cfg.Checkout.MaxTickets, "max-tickets", pricing.DefaultMaxTickets, "Maximum tickets per booking")
	fs.StringVar(&cfg.Checkout.TeenDiscount, "teen-discount", "2000", "Fixed discount of a teen ticket")
	fs.StringVar(&cfg.Checkout.ChildDiscount, "child-discount", "6000", "Fixed discount of a child ticket")

	displayVersion := fs.Bool("version", false, "Display version and exit")

	err := fs.Parse(args)
	if err != nil {
		return Config{}, false, err
	}

	if cfg.BookingEngine != BookingEngineDirect && cfg.BookingEngine != BookingEngineTemporal {
		return Config{}, false, fmt.Errorf("unknown booking engine %q", cfg.BookingEngine)
	}

	return cfg, *displayVersion, nil
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func Run() error {
	// A missing .env is fine, the environment may be set by the platform.
	_ = godotenv.Load()

	cfg, displayVersion, err := ParseConfig(os.Args[1:])
	if err != nil {
		return err
	}

	if displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	stripe.Key = cfg.Stripe.SecretKey

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	shutdownTelemetry, err := InitTelemetry(cfg, logger)
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	if cfg.OtelCollectorUrl != "" {
		logger = slog.New(NewMultiHandler(
			logger.Handler(),
			otelslog.NewHandler(serviceName),
		))
	}

	loc, err := time.LoadLocation(cfg.Checkout.TimeZone)
	if err != nil {
		return err
	}

	db, err := NewDatabasePool(cfg.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	redisClient, err := NewRedisClient(cfg.Redis)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	reservationRepo := repository.NewPostgresReservationRepository(db)

	var paymentProvider domain.PaymentProvider
	if cfg.Stripe.SecretKey != "" {
		paymentProvider = payment.NewStripePaymentProvider(cfg.Stripe.FailureUrl, cfg.Stripe.SuccessUrl)
	} else {
		logger.Warn("stripe key not set, using mock payment provider")
		paymentProvider = payment.NewMockPaymentProvider(cfg.Stripe.SuccessUrl)
	}

	bookingService := booking.NewService(reservationRepo, paymentProvider, logger)

	gateway, stopGateway, err := newBookingGateway(cfg, bookingService, logger)
	if err != nil {
		return err
	}
	defer stopGateway()

	var publisher queue.Publisher = queue.NopPublisher{}
	if cfg.AMQP.URL != "" {
		amqpPublisher := queue.NewAMQPPublisher(cfg.AMQP.URL, logger)
		defer amqpPublisher.Close()
		publisher = amqpPublisher
	}

	app, err := NewApp(cfg, Dependencies{
		Logger:          logger,
		SessionManager:  NewSessionManager(redisClient, cfg.Checkout.TTL),
		Catalog:         repository.NewPostgresCatalog(db, loc),
		SeatInventory:   repository.NewPostgresSeatRepository(db),
		CheckoutRepo:    repository.NewRedisCheckoutRepository(redisClient),
		ReservationRepo: reservationRepo,
		BookingGateway:  gateway,
		Publisher:       publisher,
	})
	if err != nil {
		return err
	}

	return app.Serve()
}

// newBookingGateway returns the configured gateway and a function releasing
// the resources it holds.
func newBookingGateway(cfg Config, service *booking.Service, logger *slog.Logger) (domain.BookingGateway, func(), error) {
	if cfg.BookingEngine != BookingEngineTemporal {
		return booking.NewGateway(service), func() {}, nil
	}

	c, err := client.Dial(client.Options{
		HostPort:  cfg.Temporal.Host,
		Namespace: cfg.Temporal.Namespace,
		Logger:    logger,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("dial temporal: %w", err)
	}

	w := orchestration.NewWorker(c, cfg.Temporal.TaskQueue, orchestration.NewActivities(service))
	if err := w.Start(); err != nil {
		c.Close()
		return nil, nil, fmt.Errorf("start booking worker: %w", err)
	}

	stop := func() {
		w.Stop()
		c.Close()
	}

	return orchestration.NewGateway(c, cfg.Temporal.TaskQueue), stop, nil
}

func NewSessionManager(client *redis.Client, lifetime time.Duration) *scs.SessionManager {
	sessionManager := scs.New()

	sessionManager.Store = goredisstore.New(client)
	sessionManager.IdleTimeout = lifetime
	sessionManager.Cookie.Name = "session_id"
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode

	return sessionManager
}

func NewRedisClient(cfg RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.URL,
		MaxIdleConns:    cfg.MaxIdleConns,
		MaxActiveConns:  cfg.MaxOpenConns,
		ConnMaxIdleTime: cfg.MaxIdleTime,
	})

	if err := redisotel.InstrumentTracing(rdb); err != nil {
		return nil, err
	}

	if err := redisotel.InstrumentMetrics(rdb); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := rdb.Ping(ctx).Err()
	if err != nil {
		return nil, err
	}

	return rdb, nil
}

func NewDatabasePool(cfg DBConfig) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.MaxIdleTime
	config.MaxConns = int32(cfg.MaxOpenConns)
	config.ConnConfig.Tracer = otelpgx.NewTracer()

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func (app *Application) Serve() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: app.config.Checkout.SubmitTimeout + 10*time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		shutdownError <- srv.Shutdown(ctx)
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env, "booking_engine", app.config.BookingEngine)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}
