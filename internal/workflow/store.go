// Package workflow holds the state of an in-progress booking and enforces
// the order in which the checkout wizard collects it.
//
// A Store is created per booking session. Every mutator is atomic: it either
// applies completely or returns an *Error and leaves the state untouched.
// Derived values (the total price) are recomputed after every successful
// mutation.
package workflow

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/metinatakli/movie-checkout/internal/domain"
	"github.com/metinatakli/movie-checkout/internal/pricing"
	"github.com/shopspring/decimal"
)

const DefaultCurrency = "KRW"

type Store struct {
	mu sync.Mutex

	rules     pricing.Rules
	inventory domain.SeatInventoryService
	gateway   domain.BookingGateway
	catalog   domain.CatalogService
	logger    *slog.Logger
	currency  string
	now       func() time.Time
	newID     func() string

	state State

	// generation changes whenever the screening is replaced or the store is
	// reset, so results of calls started earlier can be discarded.
	generation uint64
	fetching   int
	submission *submission
}

type submission struct {
	cancel  context.CancelFunc
	done    chan struct{}
	aborted bool
}

type Option func(*Store)

func WithSeatInventory(inventory domain.SeatInventoryService) Option {
	return func(s *Store) {
		s.inventory = inventory
	}
}

func WithBookingGateway(gateway domain.BookingGateway) Option {
	return func(s *Store) {
		s.gateway = gateway
	}
}

// WithCatalog lets Submit re-read the screening before handing the order to
// the gateway.
func WithCatalog(catalog domain.CatalogService) Option {
	return func(s *Store) {
		s.catalog = catalog
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

func WithCurrency(currency string) Option {
	return func(s *Store) {
		s.currency = currency
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func WithOrderIDs(newID func() string) Option {
	return func(s *Store) {
		s.newID = newID
	}
}

func New(rules pricing.Rules, opts ...Option) *Store {
	s := &Store{
		rules:    rules,
		logger:   slog.Default(),
		currency: DefaultCurrency,
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
		state:    initialState(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Restore rebuilds a store from a snapshot. The snapshot is validated and
// its derived price recomputed.
func Restore(rules pricing.Rules, st State, opts ...Option) (*Store, error) {
	st = st.clone()
	if st.TicketTypeCounts == nil {
		st.TicketTypeCounts = domain.TicketTypeCounts{}
	}

	err := st.Validate(rules.MaxTickets)
	if err != nil {
		return nil, err
	}

	s := New(rules, opts...)
	s.state = st
	s.recompute(&s.state)

	return s, nil
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.clone()
}

func (s *Store) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.Step
}

// Pending reports whether a seat map fetch or a booking submission is
// outstanding.
func (s *Store) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.fetching > 0 || s.submission != nil
}

func (s *Store) Rules() pricing.Rules {
	return s.rules
}

// apply runs fn on a copy of the state and commits the copy only if fn
// succeeds.
func (s *Store) apply(op string, fn func(st *State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.submission != nil {
		return ErrSubmissionPending
	}

	next := s.state.clone()
	screeningBefore := screeningID(s.state.Screening)

	err := fn(&next)
	if err != nil {
		s.logger.Debug("checkout operation rejected", "op", op, "step", s.state.Step.String(), "error", err)
		return err
	}

	dropStaleOrderID(s.state, &next)
	s.recompute(&next)
	s.state = next

	if screeningID(next.Screening) != screeningBefore {
		s.generation++
	}

	return nil
}

// recompute derives every computed field from the selections.
func (s *Store) recompute(st *State) {
	if st.Screening == nil {
		st.TotalPrice = decimal.Zero
		return
	}

	st.TotalPrice = s.rules.Total(st.TicketTypeCounts, st.Screening.UnitPrice)
}

func (s *Store) SelectMovie(movie domain.Movie) error {
	return s.apply("select_movie", func(st *State) error {
		invalidate(st, fieldMovie)
		st.Movie = &movie
		return nil
	})
}

func (s *Store) SelectTheater(theater domain.Theater) error {
	return s.apply("select_theater", func(st *State) error {
		if st.Movie == nil {
			return ErrMovieRequired
		}

		invalidate(st, fieldTheater)
		st.Theater = &theater
		return nil
	})
}

// SelectDate takes a calendar date in YYYY-MM-DD form.
func (s *Store) SelectDate(date string) error {
	return s.apply("select_date", func(st *State) error {
		if st.Theater == nil {
			return ErrTheaterRequired
		}

		_, err := time.Parse(time.DateOnly, date)
		if err != nil {
			return ErrInvalidDate
		}

		invalidate(st, fieldDate)
		st.Date = &date
		return nil
	})
}

// SelectScreening picks a showing of the selected movie at the selected
// theater. When no date was chosen yet, the screening's date is taken.
func (s *Store) SelectScreening(screening domain.Screening) error {
	return s.apply("select_screening", func(st *State) error {
		if st.Movie == nil {
			return ErrMovieRequired
		}
		if st.Theater == nil {
			return ErrTheaterRequired
		}
		if screening.MovieID != st.Movie.ID || screening.TheaterID != st.Theater.ID {
			return ErrScreeningMismatch
		}
		if st.Date != nil && *st.Date != screening.Date() {
			return ErrScreeningMismatch
		}
		if screening.SoldOut() {
			return ErrScreeningSoldOut
		}

		invalidate(st, fieldScreening)
		st.Screening = &screening
		if st.Date == nil {
			date := screening.Date()
			st.Date = &date
		}
		return nil
	})
}

func (s *Store) SetTicketTypeCount(category domain.TicketCategory, count int) error {
	return s.apply("set_ticket_count", func(st *State) error {
		if !category.Valid() {
			return ErrUnknownCategory
		}
		if count < 0 {
			return ErrNegativeTicketCount
		}

		total := st.TicketTypeCounts.Total() - st.TicketTypeCounts[category] + count
		if total > s.rules.MaxTickets {
			return ErrTicketLimitExceeded
		}
		if total < len(st.SelectedSeats) {
			return ErrTicketsBelowSelection
		}

		if count == 0 {
			delete(st.TicketTypeCounts, category)
		} else {
			st.TicketTypeCounts[category] = count
		}
		return nil
	})
}

// SelectSeat adds a seat of the loaded seat map to the selection.
func (s *Store) SelectSeat(seatID string) error {
	return s.apply("select_seat", func(st *State) error {
		if st.Screening == nil {
			return ErrScreeningRequired
		}
		if st.SeatMap == nil {
			return ErrSeatMapNotLoaded
		}

		if slices.Contains(st.SelectedSeats, seatID) {
			return ErrSeatAlreadySelected
		}

		i := st.seatIndex(seatID)
		if i < 0 {
			return ErrSeatNotFound
		}
		if !st.SeatMap[i].Selectable() {
			return ErrSeatUnavailable
		}
		if len(st.SelectedSeats) >= st.TicketTypeCounts.Total() {
			return ErrSeatLimitReached
		}

		st.SeatMap[i].Status = domain.SeatSelected
		st.SelectedSeats = append(st.SelectedSeats, seatID)
		return nil
	})
}

func (s *Store) UnselectSeat(seatID string) error {
	return s.apply("unselect_seat", func(st *State) error {
		pos := slices.Index(st.SelectedSeats, seatID)
		if pos < 0 {
			return ErrSeatNotSelected
		}

		st.SelectedSeats = slices.Delete(st.SelectedSeats, pos, pos+1)
		if i := st.seatIndex(seatID); i >= 0 {
			st.SeatMap[i].Status = domain.SeatAvailable
		}
		return nil
	})
}

// CalculatePrice recomputes the total from the current counts and screening.
func (s *Store) CalculatePrice() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recompute(&s.state)
	return s.state.TotalPrice
}

func (s *Store) AdvanceStep() error {
	return s.apply("advance_step", func(st *State) error {
		err := CanAdvance(*st)
		if err != nil {
			return err
		}

		st.Step++
		s.logger.Debug("checkout advanced", "step", st.Step.String())
		return nil
	})
}

// RetreatStep moves one step back. Selections are kept.
func (s *Store) RetreatStep() error {
	return s.apply("retreat_step", func(st *State) error {
		if st.Step <= firstStep {
			return ErrFirstStep
		}

		st.Step--
		return nil
	})
}

// Reset discards the booking. It is rejected while a submission is in
// flight; Abort it first.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.submission != nil {
		return ErrSubmissionPending
	}

	s.resetLocked()
	return nil
}

func (s *Store) resetLocked() {
	s.state = initialState()
	s.generation++
}

func screeningID(screening *domain.Screening) int {
	if screening == nil {
		return 0
	}
	return screening.ID
}
