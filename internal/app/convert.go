package app

import (
	"time"

	"github.com/metinatakli/movie-checkout/api"
	"github.com/metinatakli/movie-checkout/internal/domain"
	"github.com/metinatakli/movie-checkout/internal/workflow"
	"github.com/oapi-codegen/runtime/types"
)

func toApiMovie(movie domain.Movie) api.Movie {
	genres := movie.Genres
	if genres == nil {
		genres = []string{}
	}

	return api.Movie{
		Id:        movie.ID,
		Title:     movie.Title,
		PosterUrl: movie.PosterUrl,
		Genres:    genres,
		AgeRating: string(movie.AgeRating),
		Runtime:   movie.Runtime,
	}
}

func toApiMovies(movies []domain.Movie) []api.Movie {
	result := make([]api.Movie, len(movies))
	for i, movie := range movies {
		result[i] = toApiMovie(movie)
	}
	return result
}

func toApiTheater(theater domain.Theater) api.Theater {
	return api.Theater{
		Id:      theater.ID,
		Name:    theater.Name,
		Region:  theater.Region,
		Address: theater.Address,
	}
}

func toApiTheaters(theaters []domain.Theater) []api.Theater {
	result := make([]api.Theater, len(theaters))
	for i, theater := range theaters {
		result[i] = toApiTheater(theater)
	}
	return result
}

func toApiScreening(screening domain.Screening) api.Screening {
	return api.Screening{
		Id:             screening.ID,
		MovieId:        screening.MovieID,
		TheaterId:      screening.TheaterID,
		ScreenName:     screening.ScreenName,
		StartTime:      screening.StartTime,
		EndTime:        screening.EndTime,
		UnitPrice:      screening.UnitPrice,
		AvailableSeats: screening.AvailableSeats,
		SoldOut:        screening.SoldOut(),
	}
}

func toApiScreenings(screenings []domain.Screening) []api.Screening {
	result := make([]api.Screening, len(screenings))
	for i, screening := range screenings {
		result[i] = toApiScreening(screening)
	}
	return result
}

func toApiSeats(seats []domain.Seat) []api.Seat {
	result := make([]api.Seat, len(seats))
	for i, seat := range seats {
		result[i] = api.Seat{
			Id:       seat.ID,
			Row:      seat.Row,
			Column:   seat.Column,
			Status:   api.SeatStatus(seat.Status),
			Category: api.SeatCategory(seat.Category),
		}
	}
	return result
}

func toApiTicketCounts(counts domain.TicketTypeCounts) map[string]int {
	result := make(map[string]int, len(domain.TicketCategories))
	for _, category := range domain.TicketCategories {
		result[string(category)] = counts[category]
	}
	return result
}

func toApiOrder(order domain.Order) api.Order {
	return api.Order{
		OrderId:          order.ID,
		ScreeningId:      order.ScreeningID,
		SeatIds:          order.SeatIDs,
		TicketTypeCounts: toApiTicketCounts(order.TicketTypeCounts),
		TotalPrice:       order.TotalPrice,
		Currency:         order.Currency,
		CustomerEmail:    order.CustomerEmail,
	}
}

func toApiConfirmation(confirmation domain.Confirmation) api.BookingConfirmationResponse {
	resp := api.BookingConfirmationResponse{
		BookingId:   confirmation.BookingID,
		ConfirmedAt: confirmation.ConfirmedAt,
		Order:       toApiOrder(confirmation.Order),
	}

	if confirmation.PaymentURL != "" {
		resp.PaymentUrl = &confirmation.PaymentURL
	}

	return resp
}

func (app *Application) toApiCheckout(st workflow.State) api.Checkout {
	checkout := api.Checkout{
		Step:             int(st.Step),
		StepName:         st.Step.String(),
		CanAdvance:       workflow.CanAdvance(st) == nil,
		Currency:         app.config.Checkout.Currency,
		SelectedSeats:    append([]string{}, st.SelectedSeats...),
		TicketTypeCounts: toApiTicketCounts(st.TicketTypeCounts),
		TotalPrice:       st.TotalPrice,
		PriceBreakdown:   []api.PriceLine{},
	}

	if st.Movie != nil {
		movie := toApiMovie(*st.Movie)
		checkout.Movie = &movie
	}

	if st.Theater != nil {
		theater := toApiTheater(*st.Theater)
		checkout.Theater = &theater
	}

	if st.Date != nil {
		if date, err := time.Parse(time.DateOnly, *st.Date); err == nil {
			checkout.Date = &types.Date{Time: date}
		}
	}

	if st.Screening != nil {
		screening := toApiScreening(*st.Screening)
		checkout.Screening = &screening

		for _, line := range app.pricingRules.Breakdown(st.TicketTypeCounts, st.Screening.UnitPrice) {
			checkout.PriceBreakdown = append(checkout.PriceBreakdown, api.PriceLine{
				Category:  string(line.Category),
				Count:     line.Count,
				UnitPrice: line.UnitPrice,
				Subtotal:  line.Subtotal,
			})
		}
	}

	return checkout
}
