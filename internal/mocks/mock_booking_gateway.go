package mocks

import (
	"context"

	"github.com/metinatakli/movie-checkout/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockBookingGateway struct {
	mock.Mock
}

func (m *MockBookingGateway) SubmitBooking(ctx context.Context, order domain.Order) (*domain.BookingResult, error) {
	args := m.Called(ctx, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingResult), args.Error(1)
}
