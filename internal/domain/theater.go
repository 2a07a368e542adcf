package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Theater struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Region  string `json:"region"`
	Address string `json:"address"`
}

// Screening is a snapshot of a single showing. A screening with no
// remaining seats is sold out.
type Screening struct {
	ID             int             `json:"id"`
	MovieID        int             `json:"movieId"`
	TheaterID      int             `json:"theaterId"`
	ScreenName     string          `json:"screenName"`
	StartTime      time.Time       `json:"startTime"`
	EndTime        time.Time       `json:"endTime"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	AvailableSeats int             `json:"availableSeats"`
}

func (s Screening) SoldOut() bool {
	return s.AvailableSeats <= 0
}

// Date returns the screening's calendar date in the YYYY-MM-DD form used by
// the date selection step.
func (s Screening) Date() string {
	return s.StartTime.Format(time.DateOnly)
}
