package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Reservation struct {
	ID                string
	OrderID           string
	ScreeningID       int
	SeatIDs           []string
	TicketTypeCounts  TicketTypeCounts
	TotalPrice        decimal.Decimal
	Currency          string
	CustomerEmail     string
	PaymentStatus     PaymentStatus
	CheckoutSessionID string
	CreatedAt         time.Time
}

func NewReservation(id string, order Order) Reservation {
	return Reservation{
		ID:               id,
		OrderID:          order.ID,
		ScreeningID:      order.ScreeningID,
		SeatIDs:          order.SeatIDs,
		TicketTypeCounts: order.TicketTypeCounts,
		TotalPrice:       order.TotalPrice,
		Currency:         order.Currency,
		CustomerEmail:    order.CustomerEmail,
		PaymentStatus:    PaymentStatusPending,
	}
}

type ReservationRepository interface {
	// Create stores the reservation and its seats. It returns
	// ErrSeatAlreadyReserved when any seat is held by another reservation.
	Create(ctx context.Context, reservation Reservation) error
	AttachCheckoutSession(ctx context.Context, reservationID, checkoutSessionID string) error
	Cancel(ctx context.Context, reservationID string) error
	GetByOrderID(ctx context.Context, orderID string) (*Reservation, error)
	GetByCheckoutSessionID(ctx context.Context, checkoutSessionID string) (*Reservation, error)
	UpdatePaymentStatus(ctx context.Context, reservationID string, status PaymentStatus) error
}
