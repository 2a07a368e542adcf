package app

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/metinatakli/movie-checkout/api"
)

func (app *Application) ListMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := app.catalog.ListMovies(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.MovieListResponse{
		Movies: toApiMovies(movies),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) ListTheaters(w http.ResponseWriter, r *http.Request, params api.ListTheatersParams) {
	var region string
	if params.Region != nil {
		region = strings.TrimSpace(*params.Region)
	}

	theaters, err := app.catalog.ListTheaters(r.Context(), region)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.TheaterListResponse{
		Theaters: toApiTheaters(theaters),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) ListScreenings(
	w http.ResponseWriter,
	r *http.Request,
	movieId int,
	theaterId int,
	params api.ListScreeningsParams) {

	if movieId < 1 {
		app.badRequestResponse(w, r, fmt.Errorf("movie ID must be greater than zero"))
		return
	}

	if theaterId < 1 {
		app.badRequestResponse(w, r, fmt.Errorf("theater ID must be greater than zero"))
		return
	}

	screenings, err := app.catalog.ListScreenings(r.Context(), movieId, theaterId, params.Date.Format(time.DateOnly))
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.ScreeningListResponse{
		Screenings: toApiScreenings(screenings),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
