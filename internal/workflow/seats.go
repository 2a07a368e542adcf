package workflow

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/metinatakli/movie-checkout/internal/domain"
	"github.com/metinatakli/movie-checkout/internal/seatmap"
)

// LoadSeatMap fetches the selected screening's layout from the inventory
// service and replaces the seat map with it. The result is only applied if
// the screening did not change while the call was outstanding.
//
// Selected seats that are occupied in the fresh layout are dropped from the
// selection. The fresh map is applied and an ErrSeatUnavailable-wrapping
// error names the dropped seats.
func (s *Store) LoadSeatMap(ctx context.Context) ([]domain.Seat, error) {
	s.mu.Lock()
	if s.inventory == nil {
		s.mu.Unlock()
		return nil, ErrNoInventory
	}
	if s.submission != nil {
		s.mu.Unlock()
		return nil, ErrSubmissionPending
	}
	if s.state.Screening == nil {
		s.mu.Unlock()
		return nil, ErrScreeningRequired
	}

	gen := s.generation
	id := s.state.Screening.ID
	s.fetching++
	s.mu.Unlock()

	layout, err := s.inventory.GetSeatLayout(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetching--

	if err != nil {
		return nil, externalError("failed to fetch seat layout", err)
	}
	if gen != s.generation || s.submission != nil {
		return nil, ErrSelectionChanged
	}

	next := s.state.clone()
	next.SeatMap = seatmap.FromLayout(*layout)

	kept := make([]string, 0, len(next.SelectedSeats))
	var lost []string

	for _, seatID := range next.SelectedSeats {
		i := next.seatIndex(seatID)
		if i < 0 || !next.SeatMap[i].Selectable() {
			lost = append(lost, seatID)
			continue
		}

		next.SeatMap[i].Status = domain.SeatSelected
		kept = append(kept, seatID)
	}
	next.SelectedSeats = kept

	dropStaleOrderID(s.state, &next)
	s.recompute(&next)
	s.state = next

	seats := slices.Clone(next.SeatMap)

	if len(lost) > 0 {
		s.logger.Warn("selected seats became unavailable", "screening_id", id, "seats", lost)
		return seats, &Error{
			Kind: KindStaleResource,
			Msg:  fmt.Sprintf("seats %s are no longer available, please select again", strings.Join(lost, ", ")),
			Err:  ErrSeatUnavailable,
		}
	}

	return seats, nil
}
