package payment

import (
	"context"
	"fmt"

	"github.com/metinatakli/movie-checkout/internal/domain"
	"github.com/shopspring/decimal"
)

// MockPaymentProvider hands out fake checkout sessions. It is used when no
// Stripe key is configured.
type MockPaymentProvider struct {
	baseUrl string
}

func NewMockPaymentProvider(baseUrl string) *MockPaymentProvider {
	return &MockPaymentProvider{baseUrl: baseUrl}
}

func (m *MockPaymentProvider) CreateCheckoutSession(
	ctx context.Context,
	reservation domain.Reservation,
	amount decimal.Decimal) (*domain.CheckoutSession, error) {

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	id := "cs_mock_" + reservation.ID

	return &domain.CheckoutSession{
		ID:  id,
		URL: fmt.Sprintf("%s?session_id=%s", m.baseUrl, id),
	}, nil
}
