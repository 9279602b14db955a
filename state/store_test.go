package state

import (
	"errors"
	"fmt"
	"testing"
)

const kindBump = KindUser + 1

// bumpReducer counts dispatches in Local
func bumpReducer(st AppState, msg Message) (AppState, error) {
	if msg.Kind == kindBump {
		n, _ := st.Local.(int)
		st.Local = n + 1
	}
	return st, nil
}

func TestDispatchReplacesSnapshot(t *testing.T) {
	s := NewStore(AppState{ScreenID: "main"}, bumpReducer)

	for i := 0; i < 3; i++ {
		if err := s.Dispatch(Message{Kind: kindBump}); err != nil {
			t.Fatalf("dispatch %d: %v", i, err)
		}
	}
	if got := s.State().Local.(int); got != 3 {
		t.Errorf("Local = %d, want 3", got)
	}
	if s.State().ScreenID != "main" {
		t.Errorf("untouched field changed: %q", s.State().ScreenID)
	}
}

func TestPanickingReducerRetainsState(t *testing.T) {
	boom := func(st AppState, msg Message) (AppState, error) {
		if msg.Kind == kindBump {
			panic("reducer exploded")
		}
		return st, nil
	}
	initial := AppState{ScreenID: "main", Theme: "ocean", Status: "ok", Local: 42}
	s := NewStore(initial, boom)

	err := s.Dispatch(Message{Kind: kindBump})
	if err == nil {
		t.Fatal("panicking reducer returned nil error")
	}

	var rerr *ReducerError
	if !errors.As(err, &rerr) {
		t.Fatalf("error type %T, want *ReducerError", err)
	}
	if !rerr.Panicky {
		t.Error("ReducerError.Panicky = false for a panic")
	}
	if rerr.Kind != kindBump {
		t.Errorf("ReducerError.Kind = %d, want %d", rerr.Kind, kindBump)
	}

	// The snapshot must be bit-for-bit what it was before the dispatch
	if s.State() != initial {
		t.Errorf("state after panic = %+v, want %+v", s.State(), initial)
	}
}

func TestFailingReducerRetainsState(t *testing.T) {
	cause := errors.New("validation failed")
	failing := func(st AppState, msg Message) (AppState, error) {
		st.Status = "half-written"
		return st, cause
	}
	initial := AppState{Status: "before"}
	s := NewStore(initial, failing)

	err := s.Dispatch(Message{Kind: kindBump})
	if !errors.Is(err, cause) {
		t.Errorf("error chain does not include the reducer's cause: %v", err)
	}
	if s.State().Status != "before" {
		t.Errorf("failed dispatch leaked partial state: %q", s.State().Status)
	}
}

func TestSubscribersNotifiedOnSuccessOnly(t *testing.T) {
	calls := 0
	s := NewStore(AppState{}, func(st AppState, msg Message) (AppState, error) {
		if msg.Kind == KindNone {
			return st, fmt.Errorf("rejected")
		}
		return st, nil
	})
	s.Subscribe(func(AppState) { calls++ })

	s.Dispatch(Message{Kind: kindBump})
	if calls != 1 {
		t.Errorf("successful dispatch notified %d times, want 1", calls)
	}

	s.Dispatch(Message{Kind: KindNone})
	if calls != 1 {
		t.Errorf("failed dispatch notified subscribers, calls=%d", calls)
	}
}

func TestSubscribeRemover(t *testing.T) {
	s := NewStore(AppState{}, bumpReducer)
	calls := 0
	remove := s.Subscribe(func(AppState) { calls++ })

	s.Dispatch(Message{Kind: kindBump})
	remove()
	s.Dispatch(Message{Kind: kindBump})

	if calls != 1 {
		t.Errorf("removed subscriber called %d times, want 1", calls)
	}
}

func TestCancelToken(t *testing.T) {
	tok := NewCancelToken()
	if tok.Cancelled() {
		t.Error("fresh token reports cancelled")
	}
	tok.Cancel()
	if !tok.Cancelled() {
		t.Error("cancelled token reports live")
	}
	// Idempotent
	tok.Cancel()
	if !tok.Cancelled() {
		t.Error("second cancel flipped the token back")
	}
}
