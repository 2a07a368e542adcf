package orchestration

import "github.com/metinatakli/movie-checkout/internal/domain"

const (
	// ErrTypeSeatTaken marks a reservation rejected because a seat is held
	// by another booking. It is never retried.
	ErrTypeSeatTaken = "SeatTaken"
	// ErrTypePaymentFailed marks a checkout session that could not be opened
	// after all retries.
	ErrTypePaymentFailed = "PaymentFailed"
	// ErrTypeOrderCanceled marks an order whose earlier booking was canceled.
	ErrTypeOrderCanceled = "OrderCanceled"
)

type BookingInput struct {
	ReservationID string
	Order         domain.Order
}

type BookingStatus struct {
	OrderID   string
	Stage     string
	Reserved  bool
	Released  bool
	LastError string
}
