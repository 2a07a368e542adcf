package orchestration

import (
	"context"
	"errors"

	"github.com/metinatakli/movie-checkout/internal/booking"
	"github.com/metinatakli/movie-checkout/internal/domain"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
)

type Activities struct {
	Service *booking.Service
}

func NewActivities(service *booking.Service) *Activities {
	return &Activities{Service: service}
}

// FindExisting returns the booking already made for the order, or nil.
func (a *Activities) FindExisting(ctx context.Context, orderID string) (*domain.BookingResult, error) {
	result, err := a.Service.Existing(ctx, orderID)
	if errors.Is(err, domain.ErrPaymentFailed) {
		return nil, temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeOrderCanceled, err)
	}

	return result, err
}

func (a *Activities) ReserveSeats(ctx context.Context, reservationID string, order domain.Order) (*domain.Reservation, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("Reserving seats", "orderID", order.ID, "seats", order.SeatIDs)

	reservation, err := a.Service.Reserve(ctx, reservationID, order)
	if err != nil {
		if errors.Is(err, domain.ErrSeatAlreadyReserved) || errors.Is(err, domain.ErrDuplicateOrder) {
			return nil, temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeSeatTaken, err)
		}
		return nil, err
	}

	return reservation, nil
}

func (a *Activities) OpenPayment(ctx context.Context, reservation domain.Reservation) (*domain.CheckoutSession, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("Opening payment", "reservationID", reservation.ID)

	checkoutSession, err := a.Service.OpenPayment(ctx, reservation)
	if err != nil {
		if errors.Is(err, domain.ErrPaymentFailed) {
			return nil, temporal.NewApplicationErrorWithCause(err.Error(), ErrTypePaymentFailed, err)
		}
		return nil, err
	}

	return checkoutSession, nil
}

// ReleaseSeats is the compensation for ReserveSeats.
func (a *Activities) ReleaseSeats(ctx context.Context, reservationID string) error {
	logger := activity.GetLogger(ctx)
	logger.Info("Releasing seats", "reservationID", reservationID)

	err := a.Service.Release(ctx, reservationID)
	if errors.Is(err, domain.ErrRecordNotFound) {
		return nil
	}

	return err
}
