package app

import (
	"net/http"

	"github.com/metinatakli/movie-checkout/api"
	"github.com/metinatakli/movie-checkout/internal/workflow"
)

// GetSeatMap fetches the current layout of the selected screening. Seats of
// the selection that were taken meanwhile are dropped, the updated checkout
// is saved and the request fails with a stale resource error.
func (app *Application) GetSeatMap(w http.ResponseWriter, r *http.Request) {
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

	seats, err := store.LoadSeatMap(r.Context())
	if seats != nil {
		saveErr := app.saveCheckout(r, store)
		if saveErr != nil {
			app.serverErrorResponse(w, r, saveErr)
			return
		}
	}

	if err != nil {
		app.workflowErrorResponse(w, r, err)
		return
	}

	st := store.Snapshot()

	resp := api.SeatMapResponse{
		ScreeningId:   st.Screening.ID,
		Seats:         toApiSeats(seats),
		SelectedSeats: append([]string{}, st.SelectedSeats...),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) SelectSeat(w http.ResponseWriter, r *http.Request, seatId string) {
	err := app.validator.Var(seatId, "seat_id")
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	app.mutateCheckout(w, r, func(store *workflow.Store) error {
		return store.SelectSeat(seatId)
	})
}

func (app *Application) UnselectSeat(w http.ResponseWriter, r *http.Request, seatId string) {
	err := app.validator.Var(seatId, "seat_id")
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	app.mutateCheckout(w, r, func(store *workflow.Store) error {
		return store.UnselectSeat(seatId)
	})
}
