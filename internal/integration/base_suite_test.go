package integration_test

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/metinatakli/movie-checkout/internal/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
)

const (
	dbName         = "movie_checkout"
	dbUser         = "test_user"
	dbPassword     = "test_password"
	dbImageName    = "postgres:17-alpine"
	cacheImageName = "redis:7"
)

// BaseSuite starts Postgres and Redis once per suite and builds the API on
// top of them.
type BaseSuite struct {
	suite.Suite
	app        *TestApp
	containers []testcontainers.Container
}

func (s *BaseSuite) SetupSuite() {
	if testing.Short() {
		s.T().Skip("skipping integration tests in short mode")
	}

	ctx := context.Background()

	db, err := getDbContainer(ctx)
	s.Require().NoError(err, "failed to start postgres")
	s.containers = append(s.containers, db.Container)

	cache, err := getCacheContainer(ctx)
	s.Require().NoError(err, "failed to start redis")
	s.containers = append(s.containers, cache.Container)

	testApp, err := newTestApp(testConfig(db.ConnectionString, cache.ConnectionString))
	s.Require().NoError(err, "cannot initialize app")

	s.app = testApp
}

func (s *BaseSuite) TearDownSuite() {
	if s.app != nil {
		s.app.DB.Close()
		s.app.RedisClient.Close()
	}

	for _, c := range s.containers {
		if err := testcontainers.TerminateContainer(c); err != nil {
			log.Printf("failed to terminate container: %s", err)
		}
	}
}

func testConfig(dbDSN, redisAddr string) app.Config {
	return app.Config{
		Port:          3000,
		Env:           "test",
		BookingEngine: app.BookingEngineDirect,
		DB: app.DBConfig{
			DSN:          dbDSN,
			MaxOpenConns: 25,
			MaxIdleTime:  2 * time.Minute,
		},
		Redis: app.RedisConfig{
			URL:          redisAddr,
			MaxOpenConns: 10,
			MaxIdleConns: 10,
			MaxIdleTime:  2 * time.Minute,
		},
		Stripe: app.StripeConfig{
			WebhookSecret: WebhookSecret,
			SuccessUrl:    PaymentBaseUrl,
			FailureUrl:    PaymentBaseUrl,
		},
		Checkout: app.CheckoutConfig{
			TTL:           20 * time.Minute,
			SubmitTimeout: 30 * time.Second,
			Currency:      "KRW",
			TimeZone:      TestTimeZone,
			MaxTickets:    8,
			TeenDiscount:  "2000",
			ChildDiscount: "6000",
		},
	}
}

// Scenario is a single request against a fresh router with an optional
// expected JSON body.
type Scenario struct {
	Name             string
	Method           string
	URL              string
	Body             io.Reader
	Headers          map[string]string
	Cookies          []*http.Cookie
	ExpectedStatus   int
	ExpectedResponse string
	BeforeTestFunc   func(t testing.TB, app *TestApp)
	AfterTestFunc    func(t testing.TB, app *TestApp, res *http.Response)
}

func (s Scenario) Run(t *testing.T, testApp *TestApp) {
	t.Run(s.Name, func(t *testing.T) {
		if s.BeforeTestFunc != nil {
			s.BeforeTestFunc(t, testApp)
		}

		req, err := prepareRequest(s.Method, s.URL, s.Body, s.Headers, s.Cookies)
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		testApp.App.Routes().ServeHTTP(rec, req)

		res := rec.Result()
		defer res.Body.Close()

		assert.Equal(t, s.ExpectedStatus, res.StatusCode)

		if s.ExpectedResponse != "" {
			compareResponse(t, res.Body, s.ExpectedResponse)
		}

		if s.AfterTestFunc != nil {
			s.AfterTestFunc(t, testApp, res)
		}
	})
}
