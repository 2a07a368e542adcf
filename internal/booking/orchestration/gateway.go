package orchestration

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/metinatakli/movie-checkout/internal/domain"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"
)

// Gateway submits bookings as Temporal workflows and waits for their result.
type Gateway struct {
	client    client.Client
	taskQueue string
	newID     func() string
}

func NewGateway(c client.Client, taskQueue string) *Gateway {
	return &Gateway{
		client:    c,
		taskQueue: taskQueue,
		newID:     uuid.NewString,
	}
}

func WorkflowID(orderID string) string {
	return fmt.Sprintf("booking-%s", orderID)
}

func (g *Gateway) SubmitBooking(ctx context.Context, order domain.Order) (*domain.BookingResult, error) {
	options := client.StartWorkflowOptions{
		ID:        WorkflowID(order.ID),
		TaskQueue: g.taskQueue,
	}

	input := BookingInput{
		ReservationID: g.newID(),
		Order:         order,
	}

	run, err := g.client.ExecuteWorkflow(ctx, options, BookingWorkflow, input)
	if err != nil {
		return nil, err
	}

	var result domain.BookingResult
	err = run.Get(ctx, &result)
	if err != nil {
		if ctx.Err() != nil {
			// the workflow outlives the caller unless it is told to stop
			cancelErr := g.client.CancelWorkflow(context.WithoutCancel(ctx), run.GetID(), run.GetRunID())
			return nil, errors.Join(ctx.Err(), cancelErr)
		}
		return nil, translateError(err)
	}

	return &result, nil
}

func translateError(err error) error {
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return err
	}

	switch appErr.Type() {
	case ErrTypeSeatTaken:
		return fmt.Errorf("%w: %w", domain.ErrSeatAlreadyReserved, err)
	case ErrTypePaymentFailed, ErrTypeOrderCanceled:
		return fmt.Errorf("%w: %w", domain.ErrPaymentFailed, err)
	}

	return err
}
