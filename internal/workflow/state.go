package workflow

import (
	"fmt"
	"slices"

	"github.com/metinatakli/movie-checkout/internal/domain"
	"github.com/shopspring/decimal"
)

// State is the in-progress booking. It is serializable so that a store can
// be rebuilt with Restore.
type State struct {
	Step             Step                    `json:"step"`
	Movie            *domain.Movie           `json:"movie"`
	Theater          *domain.Theater         `json:"theater"`
	Date             *string                 `json:"date"`
	Screening        *domain.Screening       `json:"screening"`
	SeatMap          []domain.Seat           `json:"seatMap,omitempty"`
	SelectedSeats    []string                `json:"selectedSeats"`
	TicketTypeCounts domain.TicketTypeCounts `json:"ticketTypeCounts"`
	TotalPrice       decimal.Decimal         `json:"totalPrice"`
	// OrderID is assigned by the first Submit and reused by retries until
	// the order contents change.
	OrderID string `json:"orderId,omitempty"`
}

func initialState() State {
	return State{
		Step:             StepMovieSelection,
		SelectedSeats:    []string{},
		TicketTypeCounts: domain.TicketTypeCounts{},
		TotalPrice:       decimal.Zero,
	}
}

func (st State) clone() State {
	c := st

	if st.Movie != nil {
		m := *st.Movie
		m.Genres = slices.Clone(st.Movie.Genres)
		c.Movie = &m
	}
	if st.Theater != nil {
		t := *st.Theater
		c.Theater = &t
	}
	if st.Date != nil {
		d := *st.Date
		c.Date = &d
	}
	if st.Screening != nil {
		s := *st.Screening
		c.Screening = &s
	}

	c.SeatMap = slices.Clone(st.SeatMap)
	c.SelectedSeats = slices.Clone(st.SelectedSeats)
	if c.SelectedSeats == nil {
		c.SelectedSeats = []string{}
	}
	c.TicketTypeCounts = st.TicketTypeCounts.Clone()

	return c
}

func (st *State) seatIndex(id string) int {
	return slices.IndexFunc(st.SeatMap, func(s domain.Seat) bool {
		return s.ID == id
	})
}

// Validate checks the cross-entity invariants that must hold whenever a
// later step reads the state.
func (st State) Validate(maxTickets int) error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: "+format, append([]any{ErrInvalidState}, args...)...)
	}

	if !st.Step.Valid() {
		return invalid("unknown step %d", st.Step)
	}
	if st.Theater != nil && st.Movie == nil {
		return invalid("theater selected without a movie")
	}
	if st.Date != nil && st.Theater == nil {
		return invalid("date selected without a theater")
	}
	if st.Screening != nil {
		if st.Movie == nil || st.Theater == nil {
			return invalid("screening selected without a movie and theater")
		}
		if st.Screening.MovieID != st.Movie.ID || st.Screening.TheaterID != st.Theater.ID {
			return invalid("screening %d does not belong to the selected movie and theater", st.Screening.ID)
		}
	}
	if len(st.SelectedSeats) > 0 && st.Screening == nil {
		return invalid("seats selected without a screening")
	}

	total := 0
	for category, n := range st.TicketTypeCounts {
		if !category.Valid() {
			return invalid("unknown ticket category %q", category)
		}
		if n < 0 {
			return invalid("negative count for %s", category)
		}
		total += n
	}
	if total > maxTickets {
		return invalid("%d tickets exceed the limit of %d", total, maxTickets)
	}
	if len(st.SelectedSeats) > total {
		return invalid("%d seats selected for %d tickets", len(st.SelectedSeats), total)
	}

	seen := make(map[string]bool, len(st.SelectedSeats))
	for _, id := range st.SelectedSeats {
		if seen[id] {
			return invalid("seat %s selected twice", id)
		}
		seen[id] = true

		i := st.seatIndex(id)
		if i < 0 {
			return invalid("selected seat %s is not part of the seat map", id)
		}
		if st.SeatMap[i].Status != domain.SeatSelected {
			return invalid("selected seat %s has status %s", id, st.SeatMap[i].Status)
		}
	}

	return nil
}
