package queue

import (
	"time"

	"github.com/metinatakli/movie-checkout/internal/domain"
	"github.com/shopspring/decimal"
)

const BookingConfirmedQueue = "booking.confirmed"

// BookingConfirmedEvent is published once the payment of a reservation has
// completed.
type BookingConfirmedEvent struct {
	BookingID        string                  `json:"bookingId"`
	OrderID          string                  `json:"orderId"`
	ScreeningID      int                     `json:"screeningId"`
	MovieTitle       string                  `json:"movieTitle"`
	TheaterName      string                  `json:"theaterName"`
	ScreenName       string                  `json:"screenName"`
	StartTime        time.Time               `json:"startTime"`
	SeatIDs          []string                `json:"seatIds"`
	TicketTypeCounts domain.TicketTypeCounts `json:"ticketTypeCounts"`
	TotalPrice       decimal.Decimal         `json:"totalPrice"`
	Currency         string                  `json:"currency"`
	CustomerEmail    string                  `json:"customerEmail"`
	ConfirmedAt      time.Time               `json:"confirmedAt"`
}

// ShowDetails names what a reservation was made for.
type ShowDetails struct {
	Movie     domain.Movie
	Theater   domain.Theater
	Screening domain.Screening
}

func NewBookingConfirmedEvent(reservation domain.Reservation, show ShowDetails, confirmedAt time.Time) BookingConfirmedEvent {
	return BookingConfirmedEvent{
		BookingID:        reservation.ID,
		OrderID:          reservation.OrderID,
		ScreeningID:      reservation.ScreeningID,
		MovieTitle:       show.Movie.Title,
		TheaterName:      show.Theater.Name,
		ScreenName:       show.Screening.ScreenName,
		StartTime:        show.Screening.StartTime,
		SeatIDs:          reservation.SeatIDs,
		TicketTypeCounts: reservation.TicketTypeCounts,
		TotalPrice:       reservation.TotalPrice,
		Currency:         reservation.Currency,
		CustomerEmail:    reservation.CustomerEmail,
		ConfirmedAt:      confirmedAt,
	}
}
