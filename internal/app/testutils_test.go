package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/metinatakli/movie-checkout/api"
	"github.com/metinatakli/movie-checkout/internal/domain"
	"github.com/metinatakli/movie-checkout/internal/mocks"
	"github.com/metinatakli/movie-checkout/internal/queue"
	"github.com/metinatakli/movie-checkout/internal/workflow"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var (
	testMovie = domain.Movie{
		ID:        1,
		Title:     "Dune: Part Two",
		Genres:    []string{"Sci-Fi"},
		AgeRating: domain.AgeRating12,
		Runtime:   166,
	}

	testTheater = domain.Theater{ID: 10, Name: "Gangnam", Region: "Seoul", Address: "438 Gangnam-daero"}

	testScreening = domain.Screening{
		ID:             100,
		MovieID:        testMovie.ID,
		TheaterID:      testTheater.ID,
		ScreenName:     "IMAX",
		StartTime:      time.Date(2026, 10, 20, 19, 0, 0, 0, time.UTC),
		EndTime:        time.Date(2026, 10, 20, 21, 46, 0, 0, time.UTC),
		UnitPrice:      decimal.NewFromInt(14000),
		AvailableSeats: 120,
	}

	testLayout = domain.SeatLayout{
		ScreeningID:     testScreening.ID,
		Rows:            5,
		Columns:         10,
		OccupiedSeatIDs: []string{"A1"},
	}
)

func testConfig() Config {
	return Config{
		Env:           "test",
		BookingEngine: BookingEngineDirect,
		Checkout: CheckoutConfig{
			TTL:           20 * time.Minute,
			SubmitTimeout: 5 * time.Second,
			Currency:      "KRW",
			TimeZone:      "UTC",
			MaxTickets:    8,
			TeenDiscount:  "2000",
			ChildDiscount: "6000",
		},
		Stripe: StripeConfig{WebhookSecret: "whsec_test"},
	}
}

func staticInventory(layout domain.SeatLayout) *mocks.MockSeatInventory {
	return &mocks.MockSeatInventory{
		GetSeatLayoutFunc: func(ctx context.Context, screeningID int) (*domain.SeatLayout, error) {
			l := layout
			return &l, nil
		},
	}
}

// newTestApplication builds an application backed by an in-memory checkout
// repository and session store. Options override single dependencies.
func newTestApplication(t *testing.T, opts ...func(*Dependencies)) *Application {
	t.Helper()

	deps := Dependencies{
		Logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		SessionManager:  scs.New(),
		Catalog:         &mocks.MockCatalog{},
		SeatInventory:   staticInventory(testLayout),
		CheckoutRepo:    newMemoryCheckoutRepo(),
		ReservationRepo: &mocks.MockReservationRepo{},
		BookingGateway:  &mocks.MockBookingGateway{},
		Publisher:       &recordingPublisher{},
	}

	for _, opt := range opts {
		opt(&deps)
	}

	app, err := NewApp(testConfig(), deps)
	require.NoError(t, err)

	return app
}

// setupTestSession loads a fresh session into the request and commits it so
// that it carries a token.
func setupTestSession(t *testing.T, app *Application, r *http.Request) (*http.Request, string) {
	t.Helper()

	ctx, err := app.sessionManager.Load(r.Context(), "")
	require.NoError(t, err)

	app.sessionManager.Put(ctx, SessionKeyCheckout.String(), true)

	token, _, err := app.sessionManager.Commit(ctx)
	require.NoError(t, err)

	return r.WithContext(ctx), token
}

func executeRequest(t *testing.T, method, url string, body any) (*httptest.ResponseRecorder, *http.Request) {
	var reader io.Reader = http.NoBody

	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(jsonData)
	}

	r := httptest.NewRequest(method, url, reader)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	return w, r
}

type errorExpectation struct {
	wantStatus     int
	wantKind       string
	wantErrMessage string
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, tt errorExpectation) {
	t.Helper()

	if tt.wantStatus >= 200 && tt.wantStatus < 300 {
		return
	}

	switch tt.wantStatus {
	case http.StatusUnprocessableEntity:
		if tt.wantKind != "" {
			break
		}

		var validationResp api.ValidationErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&validationResp); err != nil {
			t.Fatalf("Failed to decode validation error response: %v", err)
		}

		errorSet := make(map[string]bool)
		for _, vErr := range validationResp.ValidationErrors {
			errorSet[vErr.Issue] = true
		}

		if !errorSet[tt.wantErrMessage] {
			t.Errorf("Expected validation error message '%s' not found in response", tt.wantErrMessage)
		}
		return
	}

	var errorResp api.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&errorResp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}

	if tt.wantErrMessage != "" && errorResp.Message != tt.wantErrMessage {
		t.Errorf("Error message = %v, want %v", errorResp.Message, tt.wantErrMessage)
	}

	if tt.wantKind != "" {
		if errorResp.Kind == nil {
			t.Errorf("Error kind missing, want %v", tt.wantKind)
		} else if *errorResp.Kind != tt.wantKind {
			t.Errorf("Error kind = %v, want %v", *errorResp.Kind, tt.wantKind)
		}
	}
}

func decodeCheckout(t *testing.T, w *httptest.ResponseRecorder) api.Checkout {
	t.Helper()

	var resp api.CheckoutResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))

	return resp.Checkout
}

// memoryCheckoutRepo keeps checkouts in a map. Locks map a session id to
// the token that holds it.
type memoryCheckoutRepo struct {
	mu        sync.Mutex
	checkouts map[string][]byte
	locks     map[string]string
	tokens    int
}

func newMemoryCheckoutRepo() *memoryCheckoutRepo {
	return &memoryCheckoutRepo{
		checkouts: make(map[string][]byte),
		locks:     make(map[string]string),
	}
}

func (m *memoryCheckoutRepo) Get(ctx context.Context, sessionID string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.checkouts[sessionID]
	if !ok {
		return nil, domain.ErrCheckoutNotFound
	}
	return data, nil
}

func (m *memoryCheckoutRepo) Save(ctx context.Context, sessionID string, data []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.checkouts[sessionID] = data
	return nil
}

func (m *memoryCheckoutRepo) Delete(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.checkouts, sessionID)
	return nil
}

func (m *memoryCheckoutRepo) Lock(ctx context.Context, sessionID string, ttl time.Duration) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.locks[sessionID]; ok {
		return "", domain.ErrCheckoutLocked
	}

	m.tokens++
	token := fmt.Sprintf("token-%d", m.tokens)
	m.locks[sessionID] = token
	return token, nil
}

func (m *memoryCheckoutRepo) Unlock(ctx context.Context, sessionID, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.locks[sessionID] == token {
		delete(m.locks, sessionID)
	}
	return nil
}

func (m *memoryCheckoutRepo) locked(sessionID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.locks[sessionID]
	return ok
}

func (m *memoryCheckoutRepo) state(t *testing.T, sessionID string) workflow.State {
	t.Helper()

	data, err := m.Get(context.Background(), sessionID)
	require.NoError(t, err)

	var st workflow.State
	require.NoError(t, json.Unmarshal(data, &st))

	return st
}

// seed stores the state reached by running steps against a fresh store.
func (m *memoryCheckoutRepo) seed(t *testing.T, app *Application, sessionID string, steps func(s *workflow.Store) error) {
	t.Helper()

	store := workflow.New(app.pricingRules, workflow.WithSeatInventory(app.seatInventory))
	require.NoError(t, steps(store))

	data, err := json.Marshal(store.Snapshot())
	require.NoError(t, err)
	require.NoError(t, m.Save(context.Background(), sessionID, data, time.Minute))
}

func toScreeningStep(s *workflow.Store) error {
	steps := []func() error{
		func() error { return s.SelectMovie(testMovie) },
		s.AdvanceStep,
		func() error { return s.SelectTheater(testTheater) },
		s.AdvanceStep,
		func() error { return s.SelectDate("2026-10-20") },
		func() error { return s.SelectScreening(testScreening) },
	}

	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}

	return nil
}

// toPayment selects two adult tickets on A3 and A4 and advances to payment.
func toPayment(s *workflow.Store) error {
	if err := toScreeningStep(s); err != nil {
		return err
	}

	steps := []func() error{
		s.AdvanceStep,
		func() error {
			_, err := s.LoadSeatMap(context.Background())
			return err
		},
		func() error { return s.SetTicketTypeCount(domain.TicketAdult, 2) },
		func() error { return s.SelectSeat("A3") },
		func() error { return s.SelectSeat("A4") },
		s.AdvanceStep,
	}

	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}

	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []queue.BookingConfirmedEvent
	err    error
}

func (p *recordingPublisher) PublishBookingConfirmed(ctx context.Context, event queue.BookingConfirmedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, event)
	return p.err
}

func ptr[T any](v T) *T {
	return &v
}
