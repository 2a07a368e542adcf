package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type TicketCategory string

const (
	TicketAdult TicketCategory = "adult"
	TicketTeen  TicketCategory = "teen"
	TicketChild TicketCategory = "child"
)

// TicketCategories lists the categories in display order.
var TicketCategories = []TicketCategory{TicketAdult, TicketTeen, TicketChild}

func (c TicketCategory) Valid() bool {
	switch c {
	case TicketAdult, TicketTeen, TicketChild:
		return true
	}
	return false
}

type TicketTypeCounts map[TicketCategory]int

func (t TicketTypeCounts) Total() int {
	total := 0
	for _, n := range t {
		total += n
	}
	return total
}

func (t TicketTypeCounts) Clone() TicketTypeCounts {
	c := make(TicketTypeCounts, len(t))
	for k, v := range t {
		c[k] = v
	}
	return c
}

// Order is the request handed to the booking gateway.
type Order struct {
	ID               string           `json:"orderId"`
	ScreeningID      int              `json:"screeningId"`
	SeatIDs          []string         `json:"seatIds"`
	TicketTypeCounts TicketTypeCounts `json:"ticketTypeCounts"`
	TotalPrice       decimal.Decimal  `json:"totalPrice"`
	Currency         string           `json:"currency"`
	CustomerEmail    string           `json:"customerEmail"`
}

type BookingResult struct {
	BookingID  string `json:"bookingId"`
	PaymentURL string `json:"paymentUrl,omitempty"`
}

// Confirmation is returned to the presentation layer after a successful
// submission. It echoes the selections that were booked.
type Confirmation struct {
	BookingID   string    `json:"bookingId"`
	PaymentURL  string    `json:"paymentUrl,omitempty"`
	Order       Order     `json:"order"`
	Movie       Movie     `json:"movie"`
	Theater     Theater   `json:"theater"`
	Screening   Screening `json:"screening"`
	ConfirmedAt time.Time `json:"confirmedAt"`
}

type BookingGateway interface {
	SubmitBooking(ctx context.Context, order Order) (*BookingResult, error)
}
