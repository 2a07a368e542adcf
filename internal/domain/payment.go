package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCanceled  PaymentStatus = "canceled"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

type CheckoutSession struct {
	ID  string
	URL string
}

type PaymentProvider interface {
	CreateCheckoutSession(ctx context.Context, reservation Reservation, amount decimal.Decimal) (*CheckoutSession, error)
}
