package workflow

// guard is the precondition for leaving a step forward.
type guard func(st State) error

var guards = map[Step]guard{
	StepMovieSelection: func(st State) error {
		if st.Movie == nil {
			return ErrMovieRequired
		}
		return nil
	},
	StepTheaterSelection: func(st State) error {
		if st.Theater == nil {
			return ErrTheaterRequired
		}
		return nil
	},
	StepDateTimeSelection: func(st State) error {
		if st.Screening == nil {
			return ErrScreeningRequired
		}
		return nil
	},
	StepSeatSelection: func(st State) error {
		if len(st.SelectedSeats) == 0 || len(st.SelectedSeats) != st.TicketTypeCounts.Total() {
			return ErrSeatCountMismatch
		}
		return nil
	},
	StepPayment: func(st State) error {
		return ErrSubmitToComplete
	},
}

// CanAdvance runs the guard of the state's current step.
func CanAdvance(st State) error {
	g, ok := guards[st.Step]
	if !ok {
		return ErrInvalidState
	}
	return g(st)
}
