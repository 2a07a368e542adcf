package workflow

import (
	"context"
	"errors"
)

// ErrorKind classifies why an operation on the store was rejected.
type ErrorKind int

const (
	// KindSelectionOrder means an upstream selection is missing or does not
	// match. The caller should have disabled the control.
	KindSelectionOrder ErrorKind = iota + 1
	// KindCapacity means a ticket or seat limit would be exceeded.
	KindCapacity
	// KindInvalidInput means the argument itself is malformed.
	KindInvalidInput
	// KindStaleResource means a screening or seat stopped being available.
	// The user has to select again.
	KindStaleResource
	// KindExternal means a collaborator call failed. Retrying from the
	// same step is safe.
	KindExternal
	// KindPending means another asynchronous operation is still running.
	KindPending
)

func (k ErrorKind) String() string {
	switch k {
	case KindSelectionOrder:
		return "selection_order"
	case KindCapacity:
		return "capacity"
	case KindInvalidInput:
		return "invalid_input"
	case KindStaleResource:
		return "stale_resource"
	case KindExternal:
		return "external"
	case KindPending:
		return "pending"
	default:
		return "unknown"
	}
}

// Error is returned by every rejected store operation. A rejected operation
// never changes the state.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of a store error, or zero if err did not come from
// the store.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func newError(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func externalError(msg string, err error) *Error {
	return &Error{Kind: KindExternal, Msg: msg, Err: err}
}

var (
	ErrMovieRequired     = newError(KindSelectionOrder, "a movie must be selected first")
	ErrTheaterRequired   = newError(KindSelectionOrder, "a theater must be selected first")
	ErrScreeningRequired = newError(KindSelectionOrder, "a screening must be selected first")
	ErrScreeningMismatch = newError(KindSelectionOrder, "screening does not belong to the selected movie, theater and date")
	ErrSeatMapNotLoaded  = newError(KindSelectionOrder, "seat map has not been loaded")
	ErrFirstStep         = newError(KindSelectionOrder, "already at the first step")
	ErrNotAtPayment      = newError(KindSelectionOrder, "booking can only be submitted from the payment step")
	ErrSubmitToComplete  = newError(KindSelectionOrder, "the payment step is completed by submitting the booking")

	ErrTicketLimitExceeded   = newError(KindCapacity, "maximum number of tickets per booking exceeded")
	ErrTicketsBelowSelection = newError(KindCapacity, "ticket count cannot be lower than the number of selected seats")
	ErrSeatLimitReached      = newError(KindCapacity, "every ticket already has a seat")
	ErrSeatCountMismatch     = newError(KindCapacity, "number of selected seats must match the number of tickets")

	ErrInvalidDate         = newError(KindInvalidInput, "date must be in YYYY-MM-DD format")
	ErrUnknownCategory     = newError(KindInvalidInput, "unknown ticket category")
	ErrNegativeTicketCount = newError(KindInvalidInput, "ticket count cannot be negative")
	ErrSeatNotFound        = newError(KindInvalidInput, "seat does not exist in this screening")
	ErrSeatNotSelected     = newError(KindInvalidInput, "seat is not selected")
	ErrSeatAlreadySelected = newError(KindInvalidInput, "seat is already selected")
	ErrInvalidState        = newError(KindInvalidInput, "checkout state is inconsistent")

	ErrScreeningSoldOut = newError(KindStaleResource, "screening is sold out")
	ErrSeatUnavailable  = newError(KindStaleResource, "seat is not available")
	ErrSelectionChanged = newError(KindStaleResource, "selection changed while the request was in flight")

	ErrNoInventory = newError(KindExternal, "seat inventory service is not configured")
	ErrNoGateway   = newError(KindExternal, "booking gateway is not configured")

	// ErrSubmissionAborted is returned by a Submit that Abort cancelled. A
	// booking the gateway created anyway is not applied to the store.
	ErrSubmissionAborted = &Error{Kind: KindExternal, Msg: "booking submission was aborted", Err: context.Canceled}

	ErrSubmissionPending = newError(KindPending, "a booking submission is in progress")
)
