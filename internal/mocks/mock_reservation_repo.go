package mocks

import (
	"context"

	"github.com/metinatakli/movie-checkout/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockReservationRepo struct {
	mock.Mock
	domain.ReservationRepository
}

func (m *MockReservationRepo) Create(ctx context.Context, reservation domain.Reservation) error {
	args := m.Called(ctx, reservation)
	return args.Error(0)
}

func (m *MockReservationRepo) AttachCheckoutSession(ctx context.Context, reservationID, checkoutSessionID string) error {
	args := m.Called(ctx, reservationID, checkoutSessionID)
	return args.Error(0)
}

func (m *MockReservationRepo) Cancel(ctx context.Context, reservationID string) error {
	args := m.Called(ctx, reservationID)
	return args.Error(0)
}

func (m *MockReservationRepo) GetByOrderID(ctx context.Context, orderID string) (*domain.Reservation, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepo) GetByCheckoutSessionID(ctx context.Context, checkoutSessionID string) (*domain.Reservation, error) {
	args := m.Called(ctx, checkoutSessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepo) UpdatePaymentStatus(ctx context.Context, reservationID string, status domain.PaymentStatus) error {
	args := m.Called(ctx, reservationID, status)
	return args.Error(0)
}
