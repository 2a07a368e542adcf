package domain

import "context"

type SeatStatus string

const (
	SeatAvailable SeatStatus = "available"
	SeatOccupied  SeatStatus = "occupied"
	SeatSelected  SeatStatus = "selected"
	SeatDisabled  SeatStatus = "disabled"
)

type SeatCategory string

const (
	SeatRegular SeatCategory = "regular"
	SeatPremium SeatCategory = "premium"
)

type Seat struct {
	ID       string       `json:"id"`
	Row      string       `json:"row"`
	Column   int          `json:"column"`
	Status   SeatStatus   `json:"status"`
	Category SeatCategory `json:"category"`
}

// Selectable reports whether the seat can be picked by a user.
func (s Seat) Selectable() bool {
	return s.Status == SeatAvailable
}

// SeatLayout is the inventory service's view of a screening's hall. It is
// the only authoritative source for occupancy.
type SeatLayout struct {
	ScreeningID     int      `json:"screeningId"`
	Rows            int      `json:"rows"`
	Columns         int      `json:"columns"`
	OccupiedSeatIDs []string `json:"occupiedSeatIds"`
	PremiumRows     []string `json:"premiumRows,omitempty"`
}

type SeatInventoryService interface {
	GetSeatLayout(ctx context.Context, screeningID int) (*SeatLayout, error)
}
