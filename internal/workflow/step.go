package workflow

import "fmt"

// Step is a stage of the checkout wizard.
type Step int

const (
	StepMovieSelection Step = iota + 1
	StepTheaterSelection
	StepDateTimeSelection
	StepSeatSelection
	StepPayment
)

const (
	firstStep = StepMovieSelection
	lastStep  = StepPayment
)

func (s Step) String() string {
	switch s {
	case StepMovieSelection:
		return "movie-selection"
	case StepTheaterSelection:
		return "theater-selection"
	case StepDateTimeSelection:
		return "date-time-selection"
	case StepSeatSelection:
		return "seat-selection"
	case StepPayment:
		return "payment"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

func (s Step) Valid() bool {
	return s >= firstStep && s <= lastStep
}
