package app

import (
	"context"
	"net/http"
	"time"

	"github.com/metinatakli/movie-checkout/api"
)

const submitLockGrace = 10 * time.Second

func (app *Application) SubmitBooking(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.SubmitBookingRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	unlock := app.lockCheckout(w, r, app.config.Checkout.SubmitTimeout+submitLockGrace)
	if unlock == nil {
		return
	}
	defer unlock()

	store, err := app.loadCheckout(r)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), app.config.Checkout.SubmitTimeout)
	defer cancel()

	confirmation, err := store.Submit(ctx, string(input.CustomerEmail))
	if err != nil {
		// The checkout now carries the order id a retry has to reuse.
		saveErr := app.saveCheckout(r, store)
		if saveErr != nil {
			logger.Error("failed to save checkout after failed submission", "error", saveErr)
		}
		app.workflowErrorResponse(w, r, err)
		return
	}

	// The booking exists from here on, so a failed cleanup is only logged.
	err = app.checkoutRepo.Delete(context.WithoutCancel(r.Context()), app.sessionID(r))
	if err != nil {
		logger.Error("failed to clear submitted checkout", "error", err)
	}

	err = app.writeJSON(w, http.StatusCreated, toApiConfirmation(*confirmation), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
