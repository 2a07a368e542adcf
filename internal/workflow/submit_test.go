package workflow

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/metinatakli/movie-checkout/internal/domain"
	"github.com/metinatakli/movie-checkout/internal/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type SubmitTestSuite struct {
	suite.Suite
	store   *Store
	gateway *mocks.MockBookingGateway
	catalog *mocks.MockCatalog
}

func (s *SubmitTestSuite) SetupTest() {
	s.gateway = new(mocks.MockBookingGateway)
	s.catalog = new(mocks.MockCatalog)
	s.store = newTestStore(WithBookingGateway(s.gateway), WithCatalog(s.catalog))
}

func TestSubmitSuite(t *testing.T) {
	suite.Run(t, new(SubmitTestSuite))
}

func (s *SubmitTestSuite) wantOrder() domain.Order {
	return domain.Order{
		ID:               "order-1",
		ScreeningID:      testScreening.ID,
		SeatIDs:          []string{"A3", "A4"},
		TicketTypeCounts: domain.TicketTypeCounts{domain.TicketAdult: 2},
		TotalPrice:       decimal.NewFromInt(28000),
		Currency:         DefaultCurrency,
		CustomerEmail:    "guest@example.com",
	}
}

func (s *SubmitTestSuite) TestSubmit() {
	tests := []struct {
		name        string
		setupMocks  func()
		wantErr     error
		wantKind    ErrorKind
		wantBooking string
		wantReset   bool
	}{
		{
			name: "successful submission resets the store",
			setupMocks: func() {
				s.catalog.On("GetScreening", mock.Anything, testScreening.ID).Return(&testScreening, nil).Once()
				s.gateway.On("SubmitBooking", mock.Anything, mock.MatchedBy(func(o domain.Order) bool {
					want := s.wantOrder()
					return o.ID == want.ID && o.TotalPrice.Equal(want.TotalPrice) &&
						fmt.Sprint(o.SeatIDs) == fmt.Sprint(want.SeatIDs) &&
						o.TicketTypeCounts[domain.TicketAdult] == 2 && o.CustomerEmail == want.CustomerEmail
				})).Return(&domain.BookingResult{BookingID: "bk-42", PaymentURL: "https://pay.example/bk-42"}, nil).Once()
			},
			wantBooking: "bk-42",
			wantReset:   true,
		},
		{
			name: "screening sold out in the meantime",
			setupMocks: func() {
				soldOut := testScreening
				soldOut.AvailableSeats = 0
				s.catalog.On("GetScreening", mock.Anything, testScreening.ID).Return(&soldOut, nil).Once()
			},
			wantErr:  ErrScreeningSoldOut,
			wantKind: KindStaleResource,
		},
		{
			name: "catalog failure",
			setupMocks: func() {
				s.catalog.On("GetScreening", mock.Anything, testScreening.ID).Return(nil, errors.New("timeout")).Once()
			},
			wantKind: KindExternal,
		},
		{
			name: "seat taken by another booking",
			setupMocks: func() {
				s.catalog.On("GetScreening", mock.Anything, testScreening.ID).Return(&testScreening, nil).Once()
				s.gateway.On("SubmitBooking", mock.Anything, mock.Anything).
					Return(nil, fmt.Errorf("create reservation: %w", domain.ErrSeatAlreadyReserved)).Once()
			},
			wantErr:  domain.ErrSeatAlreadyReserved,
			wantKind: KindStaleResource,
		},
		{
			name: "gateway failure",
			setupMocks: func() {
				s.catalog.On("GetScreening", mock.Anything, testScreening.ID).Return(&testScreening, nil).Once()
				s.gateway.On("SubmitBooking", mock.Anything, mock.Anything).
					Return(nil, errors.New("connection refused")).Once()
			},
			wantKind: KindExternal,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			defer s.gateway.AssertExpectations(s.T())
			defer s.catalog.AssertExpectations(s.T())

			s.Require().NoError(toPayment(s.store))
			before := s.store.Snapshot()

			if tt.setupMocks != nil {
				tt.setupMocks()
			}

			confirmation, err := s.store.Submit(context.Background(), "guest@example.com")

			if tt.wantKind != 0 {
				s.Require().Error(err)
				s.Nil(confirmation)
				s.Equal(tt.wantKind, KindOf(err))
				if tt.wantErr != nil {
					s.ErrorIs(err, tt.wantErr)
				}
				s.Equal(StepPayment, s.store.Step())
				s.Equal(before.SelectedSeats, s.store.Snapshot().SelectedSeats)
				s.False(s.store.Pending())
				return
			}

			s.Require().NoError(err)
			s.Equal(tt.wantBooking, confirmation.BookingID)
			s.Equal(testMovie.Title, confirmation.Movie.Title)
			s.Equal([]string{"A3", "A4"}, confirmation.Order.SeatIDs)
			s.True(decimal.NewFromInt(28000).Equal(confirmation.Order.TotalPrice))
			if tt.wantReset {
				s.Equal(StepMovieSelection, s.store.Step())
				s.Nil(s.store.Snapshot().Movie)
			}
		})
	}
}

func (s *SubmitTestSuite) TestSubmitOutsidePaymentStep() {
	s.Require().NoError(toSeatSelection(s.store))

	_, err := s.store.Submit(context.Background(), "")

	s.ErrorIs(err, ErrNotAtPayment)
	s.gateway.AssertNotCalled(s.T(), "SubmitBooking", mock.Anything, mock.Anything)
}

func (s *SubmitTestSuite) TestSubmitWithoutGateway() {
	store := newTestStore()
	s.Require().NoError(toPayment(store))

	_, err := store.Submit(context.Background(), "")

	s.ErrorIs(err, ErrNoGateway)
}

func (s *SubmitTestSuite) TestPendingSubmissionBlocksMutationsAndReset() {
	started := make(chan struct{})
	release := make(chan struct{})

	s.catalog.On("GetScreening", mock.Anything, testScreening.ID).Return(&testScreening, nil)
	s.gateway.On("SubmitBooking", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			close(started)
			<-release
		}).
		Return(&domain.BookingResult{BookingID: "bk-1"}, nil).Once()

	s.Require().NoError(toPayment(s.store))

	done := make(chan error, 1)
	go func() {
		_, err := s.store.Submit(context.Background(), "guest@example.com")
		done <- err
	}()

	<-started

	s.True(s.store.Pending())

	_, err := s.store.Submit(context.Background(), "guest@example.com")
	s.ErrorIs(err, ErrSubmissionPending)
	s.Equal(KindPending, KindOf(err))

	s.ErrorIs(s.store.Reset(), ErrSubmissionPending)
	s.ErrorIs(s.store.RetreatStep(), ErrSubmissionPending)
	s.ErrorIs(s.store.SelectMovie(otherMovie), ErrSubmissionPending)
	_, err = s.store.LoadSeatMap(context.Background())
	s.ErrorIs(err, ErrSubmissionPending)

	close(release)
	s.NoError(<-done)
	s.False(s.store.Pending())
	s.Equal(StepMovieSelection, s.store.Step())
}

func (s *SubmitTestSuite) TestAbortCancelsInFlightSubmission() {
	started := make(chan struct{})

	s.catalog.On("GetScreening", mock.Anything, testScreening.ID).Return(&testScreening, nil)
	s.gateway.On("SubmitBooking", mock.Anything, mock.Anything).
		Return(nil, context.Canceled).
		Run(func(args mock.Arguments) {
			ctx := args.Get(0).(context.Context)
			close(started)
			<-ctx.Done()
		}).Once()

	s.Require().NoError(toPayment(s.store))

	done := make(chan error, 1)
	go func() {
		_, err := s.store.Submit(context.Background(), "guest@example.com")
		done <- err
	}()

	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.Require().NoError(s.store.Abort(ctx))

	err := <-done
	s.Equal(KindExternal, KindOf(err))
	s.ErrorIs(err, context.Canceled)

	s.Equal(StepPayment, s.store.Step())
	s.Require().NoError(s.store.Reset())
	s.Equal(StepMovieSelection, s.store.Step())
}

func (s *SubmitTestSuite) TestAbortWithoutSubmission() {
	s.NoError(s.store.Abort(context.Background()))
}

func (s *SubmitTestSuite) TestLateBookingAfterAbortIsDiscarded() {
	started := make(chan struct{})
	release := make(chan struct{})

	s.catalog.On("GetScreening", mock.Anything, testScreening.ID).Return(&testScreening, nil)
	s.gateway.On("SubmitBooking", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			close(started)
			<-release
		}).
		Return(&domain.BookingResult{BookingID: "bk-late"}, nil).Once()

	s.Require().NoError(toPayment(s.store))
	before := s.store.Snapshot()

	type outcome struct {
		confirmation *domain.Confirmation
		err          error
	}
	done := make(chan outcome, 1)
	go func() {
		confirmation, err := s.store.Submit(context.Background(), "guest@example.com")
		done <- outcome{confirmation, err}
	}()

	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	s.ErrorIs(s.store.Abort(ctx), context.DeadlineExceeded)

	close(release)
	got := <-done

	s.Nil(got.confirmation)
	s.ErrorIs(got.err, ErrSubmissionAborted)
	s.ErrorIs(got.err, context.Canceled)
	s.Equal(KindExternal, KindOf(got.err))

	after := s.store.Snapshot()
	s.Equal(StepPayment, after.Step)
	s.Equal(before.SelectedSeats, after.SelectedSeats)
	s.Equal(before.TicketTypeCounts, after.TicketTypeCounts)
	s.False(s.store.Pending())
}

func (s *SubmitTestSuite) TestRetryReusesOrderID() {
	n := 0
	store := newTestStore(
		WithBookingGateway(s.gateway),
		WithOrderIDs(func() string {
			n++
			return fmt.Sprintf("order-%d", n)
		}),
	)

	var sent []string
	s.gateway.On("SubmitBooking", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			sent = append(sent, args.Get(1).(domain.Order).ID)
		}).
		Return(nil, errors.New("connection reset"))

	s.Require().NoError(toPayment(store))

	_, err := store.Submit(context.Background(), "guest@example.com")
	s.Require().Error(err)
	_, err = store.Submit(context.Background(), "guest@example.com")
	s.Require().Error(err)

	s.Equal([]string{"order-1", "order-1"}, sent)

	restored, err := Restore(store.Rules(), store.Snapshot(),
		WithBookingGateway(s.gateway),
		WithLogger(discardLogger()),
		WithOrderIDs(func() string { return "order-restored" }),
	)
	s.Require().NoError(err)
	s.Equal("order-1", restored.Snapshot().OrderID)

	_, err = restored.Submit(context.Background(), "guest@example.com")
	s.Require().Error(err)
	s.Equal("order-1", sent[len(sent)-1])
}

func (s *SubmitTestSuite) TestChangedSelectionGetsNewOrderID() {
	n := 0
	store := newTestStore(
		WithBookingGateway(s.gateway),
		WithOrderIDs(func() string {
			n++
			return fmt.Sprintf("order-%d", n)
		}),
	)

	var sent []string
	s.gateway.On("SubmitBooking", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			sent = append(sent, args.Get(1).(domain.Order).ID)
		}).
		Return(nil, errors.New("connection reset"))

	s.Require().NoError(toPayment(store))

	_, err := store.Submit(context.Background(), "guest@example.com")
	s.Require().Error(err)

	// Going back without touching the selection keeps the id.
	s.Require().NoError(store.RetreatStep())
	s.Equal("order-1", store.Snapshot().OrderID)

	s.Require().NoError(store.UnselectSeat("A4"))
	s.Empty(store.Snapshot().OrderID)
	s.Require().NoError(store.SelectSeat("C2"))
	s.Require().NoError(store.AdvanceStep())

	_, err = store.Submit(context.Background(), "guest@example.com")
	s.Require().Error(err)

	s.Equal([]string{"order-1", "order-2"}, sent)
}
