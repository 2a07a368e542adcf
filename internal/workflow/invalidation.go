package workflow

import (
	"maps"
	"slices"

	"github.com/metinatakli/movie-checkout/internal/domain"
)

type field int

const (
	fieldMovie field = iota
	fieldTheater
	fieldDate
	fieldScreening
	fieldSeats
	fieldTickets
)

// invalidates maps a selection to the selections that depend on it. Setting
// a field clears the field and every dependent field first.
var invalidates = map[field][]field{
	fieldMovie:     {fieldTheater, fieldDate, fieldScreening, fieldSeats, fieldTickets},
	fieldTheater:   {fieldDate, fieldScreening, fieldSeats},
	fieldDate:      {fieldScreening, fieldSeats},
	fieldScreening: {fieldSeats, fieldTickets},
}

var clearers = map[field]func(*State){
	fieldMovie: func(st *State) {
		st.Movie = nil
	},
	fieldTheater: func(st *State) {
		st.Theater = nil
	},
	fieldDate: func(st *State) {
		st.Date = nil
	},
	fieldScreening: func(st *State) {
		st.Screening = nil
		st.SeatMap = nil
	},
	fieldSeats: func(st *State) {
		for i := range st.SeatMap {
			if st.SeatMap[i].Status == domain.SeatSelected {
				st.SeatMap[i].Status = domain.SeatAvailable
			}
		}
		st.SelectedSeats = []string{}
	},
	fieldTickets: func(st *State) {
		st.TicketTypeCounts = domain.TicketTypeCounts{}
	},
}

// invalidate clears f and everything that depends on it.
func invalidate(st *State, f field) {
	clearers[f](st)

	for _, dep := range invalidates[f] {
		clearers[dep](st)
	}
}

// dropStaleOrderID forgets the order id once the screening, seats or ticket
// counts of next differ from prev, so a changed order is never booked under
// an id the gateway may already know.
func dropStaleOrderID(prev State, next *State) {
	if next.OrderID == "" {
		return
	}

	if screeningID(prev.Screening) != screeningID(next.Screening) ||
		!slices.Equal(prev.SelectedSeats, next.SelectedSeats) ||
		!maps.Equal(prev.TicketTypeCounts, next.TicketTypeCounts) {
		next.OrderID = ""
	}
}
