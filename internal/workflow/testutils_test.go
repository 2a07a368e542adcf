package workflow

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/metinatakli/movie-checkout/internal/domain"
	"github.com/metinatakli/movie-checkout/internal/mocks"
	"github.com/metinatakli/movie-checkout/internal/pricing"
	"github.com/shopspring/decimal"
)

var (
	kst = time.FixedZone("KST", 9*60*60)

	testMovie = domain.Movie{
		ID:        1,
		Title:     "Dune: Part Two",
		Genres:    []string{"Sci-Fi", "Adventure"},
		AgeRating: domain.AgeRating12,
		Runtime:   166,
	}
	otherMovie = domain.Movie{ID: 2, Title: "Past Lives", Runtime: 106}

	testTheater  = domain.Theater{ID: 10, Name: "강남", Region: "서울", Address: "서울 강남구 강남대로 438"}
	otherTheater = domain.Theater{ID: 11, Name: "용산", Region: "서울"}

	testScreening = domain.Screening{
		ID:             100,
		MovieID:        testMovie.ID,
		TheaterID:      testTheater.ID,
		ScreenName:     "IMAX",
		StartTime:      time.Date(2026, 10, 20, 19, 0, 0, 0, kst),
		EndTime:        time.Date(2026, 10, 20, 21, 46, 0, 0, kst),
		UnitPrice:      decimal.NewFromInt(14000),
		AvailableSeats: 120,
	}

	testLayout = domain.SeatLayout{
		ScreeningID:     testScreening.ID,
		Rows:            5,
		Columns:         10,
		OccupiedSeatIDs: []string{"A1", "B7"},
	}
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func staticInventory(layout domain.SeatLayout) *mocks.MockSeatInventory {
	return &mocks.MockSeatInventory{
		GetSeatLayoutFunc: func(ctx context.Context, screeningID int) (*domain.SeatLayout, error) {
			l := layout
			return &l, nil
		},
	}
}

func newTestStore(opts ...Option) *Store {
	base := []Option{
		WithLogger(discardLogger()),
		WithSeatInventory(staticInventory(testLayout)),
		WithClock(func() time.Time { return time.Date(2026, 10, 18, 12, 0, 0, 0, kst) }),
		WithOrderIDs(func() string { return "order-1" }),
	}

	return New(pricing.DefaultRules(), append(base, opts...)...)
}

// toSeatSelection drives the store to the seat selection step with the
// seat map loaded.
func toSeatSelection(s *Store) error {
	steps := []func() error{
		func() error { return s.SelectMovie(testMovie) },
		s.AdvanceStep,
		func() error { return s.SelectTheater(testTheater) },
		s.AdvanceStep,
		func() error { return s.SelectDate("2026-10-20") },
		func() error { return s.SelectScreening(testScreening) },
		s.AdvanceStep,
		func() error {
			_, err := s.LoadSeatMap(context.Background())
			return err
		},
	}

	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}

	return nil
}

// toPayment selects two adult tickets on A3 and A4 and advances to payment.
func toPayment(s *Store) error {
	if err := toSeatSelection(s); err != nil {
		return err
	}

	steps := []func() error{
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

func seatStatus(st State, id string) domain.SeatStatus {
	for _, seat := range st.SeatMap {
		if seat.ID == id {
			return seat.Status
		}
	}
	return ""
}
