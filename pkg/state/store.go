package state

import (
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Reducer is a pure state transition.
type Reducer[S, A any] func(S, A) S

// Ticket identifies one issued request. Only the latest ticket may resolve.
type Ticket uint64

// Store owns a state value and serialises every change through its reducer.
// Requests are fenced with tickets so a slow stale response can't overwrite
// a newer one.
type Store[S, A any] struct {
	mu     sync.Mutex
	state  S
	reduce Reducer[S, A]
	gen    Ticket
	subs   map[int]func(S)
	nextID int
	logger zerolog.Logger
}

func NewStore[S, A any](initial S, reduce Reducer[S, A]) *Store[S, A] {
	return &Store[S, A]{
		state:  initial,
		reduce: reduce,
		subs:   make(map[int]func(S)),
		logger: log.With().Str("component", "store").Logger(),
	}
}

func NewPagedStore() *Store[Paged, PagedAction] {
	return NewStore(NewPaged(), ReducePaged)
}

func NewDetailStore() *Store[Detail, DetailAction] {
	return NewStore(Detail{}, ReduceDetail)
}

func NewActivationStore() *Store[Activation, ActivationAction] {
	return NewStore(Activation{}, ReduceActivation)
}

func (s *Store[S, A]) State() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies action and returns the new state.
func (s *Store[S, A]) Dispatch(action A) S {
	s.mu.Lock()
	next := s.apply(action)
	subs := s.subscribers()
	s.mu.Unlock()

	notify(subs, next)
	return next
}

// Begin dispatches a begin action and issues a ticket for the request it
// starts. Earlier tickets become stale.
func (s *Store[S, A]) Begin(action A) Ticket {
	s.mu.Lock()
	s.gen++
	ticket := s.gen
	next := s.apply(action)
	subs := s.subscribers()
	s.mu.Unlock()

	notify(subs, next)
	return ticket
}

// Resolve applies a completion for ticket. It returns false and leaves the
// state untouched when a newer request has been issued or the store was
// reset.
func (s *Store[S, A]) Resolve(ticket Ticket, action A) bool {
	s.mu.Lock()
	if ticket != s.gen {
		current := s.gen
		s.mu.Unlock()
		s.logger.Debug().
			Uint64("ticket", uint64(ticket)).
			Uint64("current", uint64(current)).
			Msgf("Dropping stale %T", action)
		return false
	}
	next := s.apply(action)
	subs := s.subscribers()
	s.mu.Unlock()

	notify(subs, next)
	return true
}

// Reset dispatches a clean action and invalidates every outstanding ticket.
func (s *Store[S, A]) Reset(clean A) S {
	s.mu.Lock()
	s.gen++
	next := s.apply(clean)
	subs := s.subscribers()
	s.mu.Unlock()

	notify(subs, next)
	return next
}

// Subscribe registers fn to be called with every new state. Callbacks run
// outside the store lock.
func (s *Store[S, A]) Subscribe(fn func(S)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store[S, A]) apply(action A) S {
	s.state = s.reduce(s.state, action)
	return s.state
}

func (s *Store[S, A]) subscribers() []func(S) {
	if len(s.subs) == 0 {
		return nil
	}
	out := make([]func(S), 0, len(s.subs))
	for _, fn := range s.subs {
		out = append(out, fn)
	}
	return out
}

func notify[S any](subs []func(S), state S) {
	for _, fn := range subs {
		fn(state)
	}
}
