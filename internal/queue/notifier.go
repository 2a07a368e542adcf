package queue

import (
	"context"
	"log/slog"
	"time"

	"github.com/metinatakli/movie-checkout/internal/mailer"
)

const bookingConfirmedTemplate = "booking_confirmed.tmpl"

// MailNotifier emails the customer of each paid booking.
type MailNotifier struct {
	mailer   mailer.Mailer
	location *time.Location
	logger   *slog.Logger
}

func NewMailNotifier(m mailer.Mailer, loc *time.Location, logger *slog.Logger) *MailNotifier {
	return &MailNotifier{
		mailer:   m,
		location: loc,
		logger:   logger,
	}
}

func (n *MailNotifier) HandleBookingConfirmed(ctx context.Context, event BookingConfirmedEvent) error {
	data := map[string]any{
		"BookingID":   event.BookingID,
		"MovieTitle":  event.MovieTitle,
		"TheaterName": event.TheaterName,
		"StartTime":   event.StartTime.In(n.location).Format("2006-01-02 15:04"),
		"SeatIDs":     event.SeatIDs,
		"TotalPrice":  event.TotalPrice.String(),
		"Currency":    event.Currency,
	}

	err := n.mailer.Send(event.CustomerEmail, bookingConfirmedTemplate, data)
	if err != nil {
		return err
	}

	n.logger.Info("booking confirmation sent", "booking_id", event.BookingID, "recipient", event.CustomerEmail)
	return nil
}
