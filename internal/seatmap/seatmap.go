// Package seatmap derives the rendered seat grid of a hall from the
// inventory service's layout. It never decides availability on its own.
package seatmap

import (
	"fmt"

	"github.com/metinatakli/movie-checkout/internal/domain"
)

// aisleThreshold is the column count above which the two middle columns
// become an aisle.
const aisleThreshold = 8

// Generate returns rows*columns seats in row-major order. Rows are lettered
// from 'A' and columns are numbered from 1.
func Generate(rows, columns int, occupiedSeatIDs map[string]struct{}) []domain.Seat {
	if rows <= 0 || columns <= 0 {
		return []domain.Seat{}
	}

	seats := make([]domain.Seat, 0, rows*columns)

	for r := 0; r < rows; r++ {
		row := RowLabel(r)

		for c := 0; c < columns; c++ {
			seat := domain.Seat{
				ID:       SeatID(row, c+1),
				Row:      row,
				Column:   c + 1,
				Status:   domain.SeatAvailable,
				Category: domain.SeatRegular,
			}

			switch {
			case IsAisle(columns, c):
				seat.Status = domain.SeatDisabled
			case contains(occupiedSeatIDs, seat.ID):
				seat.Status = domain.SeatOccupied
			}

			seats = append(seats, seat)
		}
	}

	return seats
}

// FromLayout generates the grid for an inventory layout and tags the seats
// of premium rows.
func FromLayout(layout domain.SeatLayout) []domain.Seat {
	occupied := make(map[string]struct{}, len(layout.OccupiedSeatIDs))
	for _, id := range layout.OccupiedSeatIDs {
		occupied[id] = struct{}{}
	}

	premium := make(map[string]struct{}, len(layout.PremiumRows))
	for _, row := range layout.PremiumRows {
		premium[row] = struct{}{}
	}

	seats := Generate(layout.Rows, layout.Columns, occupied)
	for i := range seats {
		if seats[i].Status != domain.SeatDisabled && contains(premium, seats[i].Row) {
			seats[i].Category = domain.SeatPremium
		}
	}

	return seats
}

// IsAisle reports whether the 0-indexed column is an aisle cell in a grid
// of the given width.
func IsAisle(columns, column int) bool {
	if columns <= aisleThreshold {
		return false
	}

	mid := columns / 2
	return column == mid-1 || column == mid
}

// RowLabel converts a 0-indexed row to its letter: 0 -> A, 25 -> Z, 26 -> AA.
func RowLabel(index int) string {
	label := ""
	for index >= 0 {
		label = string(rune('A'+index%26)) + label
		index = index/26 - 1
	}
	return label
}

func SeatID(row string, column int) string {
	return fmt.Sprintf("%s%d", row, column)
}

func contains(set map[string]struct{}, key string) bool {
	_, ok := set[key]
	return ok
}
