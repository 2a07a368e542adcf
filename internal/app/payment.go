package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/metinatakli/movie-checkout/internal/domain"
	"github.com/metinatakli/movie-checkout/internal/queue"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

const (
	maxWebhookBytes = 65536
	publishTimeout  = 5 * time.Second
)

// StripeWebhookHandler settles reservations once Stripe reports the outcome
// of their checkout session. A completed payment publishes the booking
// confirmation that mails the customer.
func (app *Application) StripeWebhookHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBytes))
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	event, err := webhook.ConstructEventWithOptions(
		payload,
		r.Header.Get("Stripe-Signature"),
		app.config.Stripe.WebhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		logger.Warn("rejected stripe webhook", "error", err)
		app.badRequestResponse(w, r, errors.New("invalid webhook signature"))
		return
	}

	switch event.Type {
	case stripe.EventTypeCheckoutSessionCompleted, stripe.EventTypeCheckoutSessionExpired:
	default:
		w.WriteHeader(http.StatusNoContent)
		return
	}

	var session stripe.CheckoutSession
	err = json.Unmarshal(event.Data.Raw, &session)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	reservation, err := app.reservationRepo.GetByCheckoutSessionID(r.Context(), session.ID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			logger.Warn("webhook for unknown checkout session", "checkout_session_id", session.ID)
			w.WriteHeader(http.StatusNoContent)
			return
		}
		app.serverErrorResponse(w, r, err)
		return
	}

	if reservation.PaymentStatus != domain.PaymentStatusPending {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if event.Type == stripe.EventTypeCheckoutSessionExpired {
		err = app.reservationRepo.Cancel(r.Context(), reservation.ID)
		if err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}

		logger.Info("payment expired", "reservation_id", reservation.ID, "order_id", reservation.OrderID)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	// Looked up before settling so that a failure leaves the reservation
	// pending and Stripe's retry finds it again.
	show, err := app.showDetails(r.Context(), reservation.ScreeningID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.reservationRepo.UpdatePaymentStatus(r.Context(), reservation.ID, domain.PaymentStatusCompleted)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	logger.Info("payment completed", "reservation_id", reservation.ID, "order_id", reservation.OrderID)

	app.publishConfirmation(r, queue.NewBookingConfirmedEvent(*reservation, *show, time.Now().UTC()))

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) showDetails(ctx context.Context, screeningID int) (*queue.ShowDetails, error) {
	screening, err := app.catalog.GetScreening(ctx, screeningID)
	if err != nil {
		return nil, fmt.Errorf("get screening %d: %w", screeningID, err)
	}

	movie, err := app.catalog.GetMovie(ctx, screening.MovieID)
	if err != nil {
		return nil, fmt.Errorf("get movie %d: %w", screening.MovieID, err)
	}

	theater, err := app.catalog.GetTheater(ctx, screening.TheaterID)
	if err != nil {
		return nil, fmt.Errorf("get theater %d: %w", screening.TheaterID, err)
	}

	return &queue.ShowDetails{Movie: *movie, Theater: *theater, Screening: *screening}, nil
}

// publishConfirmation is best effort. The payment is settled whether or not
// the confirmation mail goes out.
func (app *Application) publishConfirmation(r *http.Request, event queue.BookingConfirmedEvent) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), publishTimeout)
	defer cancel()

	err := app.publisher.PublishBookingConfirmed(ctx, event)
	if err != nil {
		app.contextGetLogger(r).Error("failed to publish booking confirmation",
			"booking_id", event.BookingID,
			"error", err,
		)
	}
}
