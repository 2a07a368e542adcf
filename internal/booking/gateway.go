package booking

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/metinatakli/movie-checkout/internal/domain"
)

// Gateway books orders in-process: reserve, then open a payment, releasing the
// reservation when the payment cannot be opened.
type Gateway struct {
	service *Service
	newID   func() string
}

func NewGateway(service *Service) *Gateway {
	return &Gateway{
		service: service,
		newID:   uuid.NewString,
	}
}

func (g *Gateway) SubmitBooking(ctx context.Context, order domain.Order) (*domain.BookingResult, error) {
	existing, err := g.service.Existing(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		return existing, nil
	}

	reservation, err := g.service.Reserve(ctx, g.newID(), order)
	if err != nil {
		return nil, err
	}

	checkoutSession, err := g.service.OpenPayment(ctx, *reservation)
	if err != nil {
		// the caller may have been canceled, the seats still have to be freed
		releaseErr := g.service.Release(context.WithoutCancel(ctx), reservation.ID)
		return nil, errors.Join(err, releaseErr)
	}

	return &domain.BookingResult{
		BookingID:  reservation.ID,
		PaymentURL: checkoutSession.URL,
	}, nil
}
