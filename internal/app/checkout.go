package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/metinatakli/movie-checkout/api"
	"github.com/metinatakli/movie-checkout/internal/domain"
	"github.com/metinatakli/movie-checkout/internal/workflow"
)

func (app *Application) storeOptions(r *http.Request) []workflow.Option {
	return []workflow.Option{
		workflow.WithCatalog(app.catalog),
		workflow.WithSeatInventory(app.seatInventory),
		workflow.WithBookingGateway(app.bookingGateway),
		workflow.WithLogger(app.contextGetLogger(r)),
		workflow.WithCurrency(app.config.Checkout.Currency),
	}
}

// loadCheckout restores the store of the current session. A session without
// a saved checkout, or with one that no longer passes validation, starts
// over from the first step.
func (app *Application) loadCheckout(r *http.Request) (*workflow.Store, error) {
	sessionID := app.sessionID(r)

	data, err := app.checkoutRepo.Get(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrCheckoutNotFound) {
			return workflow.New(app.pricingRules, app.storeOptions(r)...), nil
		}
		return nil, err
	}

	var st workflow.State
	err = json.Unmarshal(data, &st)
	if err == nil {
		var store *workflow.Store
		store, err = workflow.Restore(app.pricingRules, st, app.storeOptions(r)...)
		if err == nil {
			return store, nil
		}
	}

	app.contextGetLogger(r).Warn("discarding unreadable checkout", "error", err)

	return workflow.New(app.pricingRules, app.storeOptions(r)...), nil
}

func (app *Application) saveCheckout(r *http.Request, store *workflow.Store) error {
	data, err := json.Marshal(store.Snapshot())
	if err != nil {
		return fmt.Errorf("encode checkout: %w", err)
	}

	return app.checkoutRepo.Save(r.Context(), app.sessionID(r), data, app.config.Checkout.TTL)
}

// checkoutLockTTL bounds how long a crashed request can keep the checkout
// of its session locked.
const checkoutLockTTL = 15 * time.Second

// lockCheckout takes the session's checkout lock so that no other request of
// the session loads or saves the checkout until unlock is called. When the
// lock cannot be taken the error response is written and unlock is nil.
func (app *Application) lockCheckout(w http.ResponseWriter, r *http.Request, ttl time.Duration) (unlock func()) {
	sessionID := app.sessionID(r)

	token, err := app.checkoutRepo.Lock(r.Context(), sessionID, ttl)
	if err != nil {
		if errors.Is(err, domain.ErrCheckoutLocked) {
			app.workflowErrorResponse(w, r, errCheckoutBusy)
			return nil
		}
		app.serverErrorResponse(w, r, err)
		return nil
	}

	return func() {
		err := app.checkoutRepo.Unlock(context.WithoutCancel(r.Context()), sessionID, token)
		if err != nil {
			app.contextGetLogger(r).Error("failed to release checkout lock", "error", err)
		}
	}
}

// mutateCheckout applies one store operation to the session's checkout and
// saves the result under the checkout lock. A rejected operation leaves the
// saved checkout as it was.
func (app *Application) mutateCheckout(w http.ResponseWriter, r *http.Request, mutate func(store *workflow.Store) error) {
	unlock := app.lockCheckout(w, r, checkoutLockTTL)
	if unlock == nil {
		return
	}
	defer unlock()

	store, err := app.loadCheckout(r)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = mutate(store)
	if err != nil {
		app.workflowErrorResponse(w, r, err)
		return
	}

	err = app.saveCheckout(r, store)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.writeCheckout(w, r, store)
}

func (app *Application) writeCheckout(w http.ResponseWriter, r *http.Request, store *workflow.Store) {
	resp := api.CheckoutResponse{
		Checkout: app.toApiCheckout(store.Snapshot()),
	}

	err := app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetCheckout(w http.ResponseWriter, r *http.Request) {
	store, err := app.loadCheckout(r)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.writeCheckout(w, r, store)
}

func (app *Application) ResetCheckout(w http.ResponseWriter, r *http.Request) {
	unlock := app.lockCheckout(w, r, checkoutLockTTL)
	if unlock == nil {
		return
	}
	defer unlock()

	err := app.checkoutRepo.Delete(r.Context(), app.sessionID(r))
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.contextGetLogger(r).Info("checkout reset")

	app.writeCheckout(w, r, workflow.New(app.pricingRules, app.storeOptions(r)...))
}

func (app *Application) SelectMovie(w http.ResponseWriter, r *http.Request) {
	var input api.SelectMovieRequest

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

	movie, err := app.catalog.GetMovie(r.Context(), input.MovieId)
	if err != nil {
		app.catalogErrorResponse(w, r, err)
		return
	}

	app.mutateCheckout(w, r, func(store *workflow.Store) error {
		return store.SelectMovie(*movie)
	})
}

func (app *Application) SelectTheater(w http.ResponseWriter, r *http.Request) {
	var input api.SelectTheaterRequest

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

	theater, err := app.catalog.GetTheater(r.Context(), input.TheaterId)
	if err != nil {
		app.catalogErrorResponse(w, r, err)
		return
	}

	app.mutateCheckout(w, r, func(store *workflow.Store) error {
		return store.SelectTheater(*theater)
	})
}

func (app *Application) SelectDate(w http.ResponseWriter, r *http.Request) {
	var input api.SelectDateRequest

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

	date := input.Date.Format(time.DateOnly)

	app.mutateCheckout(w, r, func(store *workflow.Store) error {
		return store.SelectDate(date)
	})
}

// SelectScreening looks the screening up again so that the availability the
// store checks is current.
func (app *Application) SelectScreening(w http.ResponseWriter, r *http.Request) {
	var input api.SelectScreeningRequest

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

	screening, err := app.catalog.GetScreening(r.Context(), input.ScreeningId)
	if err != nil {
		app.catalogErrorResponse(w, r, err)
		return
	}

	app.mutateCheckout(w, r, func(store *workflow.Store) error {
		return store.SelectScreening(*screening)
	})
}

func (app *Application) SetTicketCount(w http.ResponseWriter, r *http.Request) {
	var input api.SetTicketCountRequest

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

	app.mutateCheckout(w, r, func(store *workflow.Store) error {
		return store.SetTicketTypeCount(domain.TicketCategory(input.Category), input.Count)
	})
}

func (app *Application) AdvanceStep(w http.ResponseWriter, r *http.Request) {
	app.mutateCheckout(w, r, func(store *workflow.Store) error {
		return store.AdvanceStep()
	})
}

func (app *Application) RetreatStep(w http.ResponseWriter, r *http.Request) {
	app.mutateCheckout(w, r, func(store *workflow.Store) error {
		return store.RetreatStep()
	})
}
