package dashboard

import (
	"reflect"
	"sync"
)

// Store owns the State. Every change goes through Dispatch under one lock,
// so actions apply in arrival order.
type Store struct {
	mu     sync.RWMutex
	state  State
	subs   map[int]chan State
	nextID int
}

func NewStore() *Store {
	return &Store{
		state: InitialState(),
		subs:  make(map[int]chan State),
	}
}

// Dispatch reduces a into the current state and notifies subscribers. A
// refused action that left the state as it was is not a new version. The
// error is the one returned by Reduce.
func (s *Store) Dispatch(a Action) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := Reduce(s.state, a)
	if err != nil && reflect.DeepEqual(next, s.state) {
		return s.state.Clone(), err
	}
	next.Version = s.state.Version + 1
	s.state = next
	s.broadcast(next)
	return next.Clone(), err
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Subscribe returns a channel that always holds the latest state not yet
// read. Slow readers skip intermediate versions. Call cancel to release it.
func (s *Store) Subscribe() (updates <-chan State, cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan State, 1)
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
}

// broadcast must be called with mu held.
func (s *Store) broadcast(st State) {
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- st.Clone()
	}
}
