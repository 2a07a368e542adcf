package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/metinatakli/movie-checkout/internal/domain"
)

// Service holds the individual booking steps. Gateways decide how the steps
// are sequenced and compensated.
type Service struct {
	reservations domain.ReservationRepository
	payments     domain.PaymentProvider
	logger       *slog.Logger
}

func NewService(
	reservations domain.ReservationRepository,
	payments domain.PaymentProvider,
	logger *slog.Logger) *Service {

	return &Service{
		reservations: reservations,
		payments:     payments,
		logger:       logger,
	}
}

// Existing returns the booking already made for the order, or nil.
func (s *Service) Existing(ctx context.Context, orderID string) (*domain.BookingResult, error) {
	reservation, err := s.reservations.GetByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if reservation.PaymentStatus == domain.PaymentStatusCanceled {
		return nil, fmt.Errorf("order %s: %w", orderID, domain.ErrPaymentFailed)
	}

	return &domain.BookingResult{BookingID: reservation.ID}, nil
}

// Reserve persists the reservation and claims its seats.
func (s *Service) Reserve(ctx context.Context, reservationID string, order domain.Order) (*domain.Reservation, error) {
	reservation := domain.NewReservation(reservationID, order)

	err := s.reservations.Create(ctx, reservation)
	if err != nil {
		return nil, err
	}

	s.logger.Info("seats reserved",
		"reservation_id", reservation.ID,
		"order_id", order.ID,
		"screening_id", order.ScreeningID,
		"seats", order.SeatIDs)

	return &reservation, nil
}

// OpenPayment creates a checkout session for the reservation and links it.
func (s *Service) OpenPayment(ctx context.Context, reservation domain.Reservation) (*domain.CheckoutSession, error) {
	checkoutSession, err := s.payments.CreateCheckoutSession(ctx, reservation, reservation.TotalPrice)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPaymentFailed, err)
	}

	err = s.reservations.AttachCheckoutSession(ctx, reservation.ID, checkoutSession.ID)
	if err != nil {
		return nil, err
	}

	return checkoutSession, nil
}

// Release cancels the reservation and frees its seats.
func (s *Service) Release(ctx context.Context, reservationID string) error {
	err := s.reservations.Cancel(ctx, reservationID)
	if err != nil {
		s.logger.Error("failed to release reservation", "reservation_id", reservationID, "error", err)
		return err
	}

	s.logger.Warn("reservation released", "reservation_id", reservationID)
	return nil
}
