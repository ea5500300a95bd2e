package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/niksmo/storefront/internal/core/intent"
)

// A Listener observes every reduced intent together with the state snapshot
// taken right after the reduction.
//
// Notify is called while the store is locked: it must not block and must not
// call back into the store. Intents returned by Notify are dispatched right
// after the current one, in order.
type Listener interface {
	Notify(in intent.Intent, st State) []intent.Intent
}

type ListenerFunc func(in intent.Intent, st State) []intent.Intent

func (f ListenerFunc) Notify(in intent.Intent, st State) []intent.Intent {
	return f(in, st)
}

type Opt func(*Store)

func InitialStateOpt(st State) Opt {
	return func(s *Store) {
		s.state = st
	}
}

func ListenersOpt(ls ...Listener) Opt {
	return func(s *Store) {
		s.listeners = append(s.listeners, ls...)
	}
}

// A Store holds the state of one storefront session.
//
// Intents are reduced one at a time. Asynchronous work started on behalf of
// an intent is tracked with Hold so callers can wait for quiescence.
type Store struct {
	mu        sync.RWMutex
	state     State
	listeners []Listener

	idleMu  sync.Mutex
	pending int
	idle    chan struct{}
}

func New(opts ...Opt) *Store {
	s := &Store{state: InitialState()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register adds listeners. Listeners are notified in registration order.
func (s *Store) Register(ls ...Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, ls...)
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Select applies a selector to the current snapshot.
func Select[T any](s *Store, selector func(State) T) T {
	return selector(s.State())
}

// Dispatch reduces the intents in order. Follow-up intents returned by
// listeners are reduced before Dispatch returns.
func (s *Store) Dispatch(ins ...intent.Intent) {
	const op = "Store.Dispatch"
	log := slog.With("op", op)

	s.mu.Lock()
	defer s.mu.Unlock()

	queue := append([]intent.Intent(nil), ins...)
	for len(queue) != 0 {
		in := queue[0]
		queue = queue[1:]

		s.state = Reduce(s.state, in)
		log.Debug("reduced", "intent", in.Name())

		snapshot := s.state
		for _, l := range s.listeners {
			queue = append(queue, l.Notify(in, snapshot)...)
		}
	}
}

// Hold marks one unit of asynchronous work as in flight. The returned
// function releases it; calling it more than once has no effect.
func (s *Store) Hold() (release func()) {
	s.idleMu.Lock()
	if s.pending == 0 {
		s.idle = make(chan struct{})
	}
	s.pending++
	s.idleMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(s.release)
	}
}

func (s *Store) release() {
	s.idleMu.Lock()
	defer s.idleMu.Unlock()
	s.pending--
	if s.pending == 0 {
		close(s.idle)
	}
}

// WaitIdle blocks until no work is in flight or ctx is done.
func (s *Store) WaitIdle(ctx context.Context) error {
	for {
		s.idleMu.Lock()
		if s.pending == 0 {
			s.idleMu.Unlock()
			return nil
		}
		idle := s.idle
		s.idleMu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-idle:
		}
	}
}
