package state

import "fmt"

// ReducerError reports a reducer failure or panic. The prior state is
// always retained when one occurs.
type ReducerError struct {
	Kind    Kind
	Cause   error
	Panicky bool // True when the reducer panicked rather than erroring
}

func (e *ReducerError) Error() string {
	if e.Panicky {
		return fmt.Sprintf("state: reducer panicked on kind %d: %v", e.Kind, e.Cause)
	}
	return fmt.Sprintf("state: reducer failed on kind %d: %v", e.Kind, e.Cause)
}

func (e *ReducerError) Unwrap() error {
	return e.Cause
}

// Store owns the current snapshot. The application shell is the only
// dispatcher; subscribers are notified after each successful dispatch.
type Store struct {
	state   AppState
	reducer Reducer
	subs    []func(AppState)
}

// NewStore creates a store with an initial snapshot
func NewStore(initial AppState, reducer Reducer) *Store {
	return &Store{state: initial, reducer: reducer}
}

// State returns the current snapshot
func (s *Store) State() AppState {
	return s.state
}

// Subscribe registers a post-dispatch callback and returns its remover.
// Screens must call the remover when popped.
func (s *Store) Subscribe(fn func(AppState)) func() {
	s.subs = append(s.subs, fn)
	idx := len(s.subs) - 1
	return func() {
		s.subs[idx] = nil
	}
}

// Dispatch runs the reducer. On error or panic the prior state is
// retained bit-for-bit and a *ReducerError is returned; subscribers are
// only notified on success.
func (s *Store) Dispatch(msg Message) (err error) {
	prior := s.state

	var next AppState
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = &ReducerError{Kind: msg.Kind, Cause: fmt.Errorf("%v", r), Panicky: true}
			}
		}()
		var rerr error
		next, rerr = s.reducer(prior, msg)
		if rerr != nil {
			err = &ReducerError{Kind: msg.Kind, Cause: rerr}
		}
	}()

	if err != nil {
		s.state = prior
		return err
	}

	s.state = next
	for _, fn := range s.subs {
		if fn != nil {
			fn(next)
		}
	}
	return nil
}
