package workflow

import (
	"context"
	"errors"
	"slices"

	"github.com/metinatakli/movie-checkout/internal/domain"
)

// Submit validates the booking again, hands the order to the booking
// gateway and, on success, resets the store and returns a confirmation. On
// failure the store stays at the payment step so the user can retry or go
// back. A retry of an unchanged order carries the same order id.
//
// Only one submission may run at a time. While it runs every mutator and
// Reset are rejected with ErrSubmissionPending. A submission cancelled by
// Abort returns ErrSubmissionAborted and leaves the state as it was, even if
// the gateway finished the booking after all.
func (s *Store) Submit(ctx context.Context, customerEmail string) (*domain.Confirmation, error) {
	s.mu.Lock()

	if s.submission != nil {
		s.mu.Unlock()
		return nil, ErrSubmissionPending
	}
	if s.gateway == nil {
		s.mu.Unlock()
		return nil, ErrNoGateway
	}

	st := s.state.clone()
	if st.Step != StepPayment {
		s.mu.Unlock()
		return nil, ErrNotAtPayment
	}

	err := checkBookable(st)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	s.recompute(&st)

	if st.OrderID == "" {
		st.OrderID = s.newID()
		s.state.OrderID = st.OrderID
	}

	order := domain.Order{
		ID:               st.OrderID,
		ScreeningID:      st.Screening.ID,
		SeatIDs:          slices.Clone(st.SelectedSeats),
		TicketTypeCounts: st.TicketTypeCounts.Clone(),
		TotalPrice:       st.TotalPrice,
		Currency:         s.currency,
		CustomerEmail:    customerEmail,
	}

	ctx, cancel := context.WithCancel(ctx)
	sub := &submission{cancel: cancel, done: make(chan struct{})}
	s.submission = sub
	s.mu.Unlock()

	result, err := s.book(ctx, order)

	s.mu.Lock()
	defer s.mu.Unlock()
	defer close(sub.done)
	defer cancel()

	s.submission = nil

	if sub.aborted {
		if err == nil {
			s.logger.Warn("booking completed after the submission was aborted",
				"order_id", order.ID,
				"booking_id", result.BookingID,
			)
		}
		return nil, ErrSubmissionAborted
	}

	if err != nil {
		s.logger.Warn("booking submission failed", "order_id", order.ID, "screening_id", order.ScreeningID, "error", err)
		return nil, err
	}

	confirmation := &domain.Confirmation{
		BookingID:   result.BookingID,
		PaymentURL:  result.PaymentURL,
		Order:       order,
		Movie:       *st.Movie,
		Theater:     *st.Theater,
		Screening:   *st.Screening,
		ConfirmedAt: s.now(),
	}

	s.resetLocked()
	s.logger.Info("booking submitted", "order_id", order.ID, "booking_id", result.BookingID)

	return confirmation, nil
}

func (s *Store) book(ctx context.Context, order domain.Order) (*domain.BookingResult, error) {
	if s.catalog != nil {
		screening, err := s.catalog.GetScreening(ctx, order.ScreeningID)
		if err != nil {
			return nil, externalError("failed to refresh screening", err)
		}
		if screening.SoldOut() {
			return nil, ErrScreeningSoldOut
		}
	}

	result, err := s.gateway.SubmitBooking(ctx, order)
	if err != nil {
		if errors.Is(err, domain.ErrSeatAlreadyReserved) {
			return nil, &Error{Kind: KindStaleResource, Msg: ErrSeatUnavailable.Msg, Err: err}
		}
		return nil, externalError("booking submission failed", err)
	}

	return result, nil
}

// Abort cancels an in-flight submission and waits until it has returned, or
// until ctx is done. It is a no-op when nothing is in flight. Once Abort
// returns nil, Reset is safe to call.
func (s *Store) Abort(ctx context.Context) error {
	s.mu.Lock()
	sub := s.submission
	if sub != nil {
		sub.aborted = true
	}
	s.mu.Unlock()

	if sub == nil {
		return nil
	}

	sub.cancel()

	select {
	case <-sub.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func checkBookable(st State) error {
	if st.Movie == nil {
		return ErrMovieRequired
	}
	if st.Theater == nil {
		return ErrTheaterRequired
	}
	if st.Screening == nil {
		return ErrScreeningRequired
	}

	n := len(st.SelectedSeats)
	if n == 0 || n != st.TicketTypeCounts.Total() {
		return ErrSeatCountMismatch
	}
	if st.Screening.SoldOut() {
		return ErrScreeningSoldOut
	}

	return nil
}
