package mocks

import (
	"context"

	"github.com/metinatakli/movie-checkout/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockPaymentProvider struct {
	mock.Mock
	domain.PaymentProvider
}

func (m *MockPaymentProvider) CreateCheckoutSession(
	ctx context.Context,
	reservation domain.Reservation,
	amount decimal.Decimal) (*domain.CheckoutSession, error) {

	args := m.Called(ctx, reservation, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CheckoutSession), args.Error(1)
}
