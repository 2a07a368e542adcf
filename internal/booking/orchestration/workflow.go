package orchestration

import (
	"fmt"
	"time"

	"github.com/metinatakli/movie-checkout/internal/domain"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

const statusQuery = "get-status"

// BookingWorkflow reserves the order's seats and opens a payment for them.
// The reservation is released when the payment step fails or the workflow
// is canceled after seats were reserved.
func BookingWorkflow(ctx workflow.Context, input BookingInput) (*domain.BookingResult, error) {
	logger := workflow.GetLogger(ctx)

	status := BookingStatus{
		OrderID: input.Order.ID,
		Stage:   "start",
	}

	err := workflow.SetQueryHandler(ctx, statusQuery, func() (BookingStatus, error) {
		return status, nil
	})
	if err != nil {
		return nil, err
	}

	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 10 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:        500 * time.Millisecond,
			BackoffCoefficient:     2.0,
			MaximumInterval:        5 * time.Second,
			MaximumAttempts:        3,
			NonRetryableErrorTypes: []string{ErrTypeSeatTaken, ErrTypeOrderCanceled},
		},
	})

	var a *Activities

	status.Stage = "lookup"
	var existing *domain.BookingResult
	err = workflow.ExecuteActivity(ctx, a.FindExisting, input.Order.ID).Get(ctx, &existing)
	if err != nil {
		status.LastError = err.Error()
		return nil, err
	}

	if existing != nil {
		logger.Info("Order already booked", "orderID", input.Order.ID, "bookingID", existing.BookingID)
		status.Stage = "completed"
		return existing, nil
	}

	release := func(reservationID string) {
		// runs even when the workflow itself was canceled
		releaseCtx, _ := workflow.NewDisconnectedContext(ctx)
		releaseErr := workflow.ExecuteActivity(releaseCtx, a.ReleaseSeats, reservationID).Get(releaseCtx, nil)
		if releaseErr != nil {
			logger.Error("Release failed", "reservationID", reservationID, "error", releaseErr)
			return
		}
		status.Released = true
		status.Stage = "released"
	}

	status.Stage = "reserve"
	var reservation domain.Reservation
	err = workflow.ExecuteActivity(ctx, a.ReserveSeats, input.ReservationID, input.Order).Get(ctx, &reservation)
	if err != nil {
		status.LastError = fmt.Sprintf("reserve failed: %v", err)
		if temporal.IsCanceledError(err) {
			// the activity may have committed before the cancellation landed
			release(input.ReservationID)
		}
		return nil, err
	}
	status.Reserved = true

	status.Stage = "payment"
	var checkoutSession domain.CheckoutSession
	err = workflow.ExecuteActivity(ctx, a.OpenPayment, reservation).Get(ctx, &checkoutSession)
	if err != nil {
		status.LastError = fmt.Sprintf("payment failed: %v", err)
		logger.Error("Payment failed, releasing seats", "reservationID", reservation.ID, "error", err)

		release(reservation.ID)
		return nil, err
	}

	status.Stage = "completed"
	logger.Info("Booking completed", "orderID", input.Order.ID, "reservationID", reservation.ID)

	return &domain.BookingResult{
		BookingID:  reservation.ID,
		PaymentURL: checkoutSession.URL,
	}, nil
}
