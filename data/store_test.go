package data

import (
	"errors"
	"testing"
)

func mustAdd(t *testing.T, s *MemoryStore, item Item) int {
	t.Helper()
	id, err := s.Add(item)
	if err != nil {
		t.Fatalf("add %q: %v", item.Title, err)
	}
	return id
}

func TestAddCompleteDeleteLifecycle(t *testing.T) {
	s := NewMemoryStore()

	// 1. Add two items
	a := mustAdd(t, s, Item{Title: "write report"})
	b := mustAdd(t, s, Item{Title: "send report"})
	if got := len(s.GetAll()); got != 2 {
		t.Fatalf("store has %d items, want 2", got)
	}

	// 2. Complete the first
	done := true
	if err := s.Update(a, Changes{Done: &done}); err != nil {
		t.Fatalf("complete: %v", err)
	}
	items := s.GetAll()
	if !items[0].Done || items[1].Done {
		t.Errorf("done flags = %v,%v, want true,false", items[0].Done, items[1].Done)
	}

	// 3. Delete both; the store must end empty
	if err := s.Delete(a); err != nil {
		t.Fatalf("delete a: %v", err)
	}
	if err := s.Delete(b); err != nil {
		t.Fatalf("delete b: %v", err)
	}
	if got := len(s.GetAll()); got != 0 {
		t.Errorf("store has %d items after full delete, want 0", got)
	}
}

func TestUpdateUnknownID(t *testing.T) {
	s := NewMemoryStore()
	title := "x"
	if err := s.Update(42, Changes{Title: &title}); !errors.Is(err, ErrNotFound) {
		t.Errorf("update unknown id: %v, want ErrNotFound", err)
	}
	if err := s.Delete(42); !errors.Is(err, ErrNotFound) {
		t.Errorf("delete unknown id: %v, want ErrNotFound", err)
	}
}

func TestPartialUpdateLeavesOtherFields(t *testing.T) {
	s := NewMemoryStore()
	id := mustAdd(t, s, Item{Title: "original"})

	done := true
	if err := s.Update(id, Changes{Done: &done}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got := s.GetAll()[0]
	if got.Title != "original" {
		t.Errorf("title changed by unrelated update: %q", got.Title)
	}
	if !got.Done {
		t.Error("done flag not applied")
	}
}

func TestParentCycleRejected(t *testing.T) {
	s := NewMemoryStore()
	a := mustAdd(t, s, Item{Title: "a"})
	b := mustAdd(t, s, Item{Title: "b", ParentID: a})
	c := mustAdd(t, s, Item{Title: "c", ParentID: b})

	// a → c would close a parent cycle a→c→b→a
	if err := s.Update(a, Changes{ParentID: &c}); !errors.Is(err, ErrCycle) {
		t.Errorf("parent cycle: %v, want ErrCycle", err)
	}

	// The rejected update must not have moved a
	for _, it := range s.GetAll() {
		if it.ID == a && it.ParentID != 0 {
			t.Errorf("rejected update wrote ParentID=%d", it.ParentID)
		}
	}
}

func TestDependencyCycleRejected(t *testing.T) {
	s := NewMemoryStore()
	a := mustAdd(t, s, Item{Title: "a"})
	b := mustAdd(t, s, Item{Title: "b", DependsOn: []int{a}})

	deps := []int{b}
	if err := s.Update(a, Changes{DependsOn: &deps}); !errors.Is(err, ErrCycle) {
		t.Errorf("dependency cycle: %v, want ErrCycle", err)
	}
}

func TestCrossRelationCycleRejected(t *testing.T) {
	s := NewMemoryStore()

	// b is a child of a; a depending on b closes a cycle through both
	// relations even though neither relation is cyclic alone
	a := mustAdd(t, s, Item{Title: "a"})
	b := mustAdd(t, s, Item{Title: "b", ParentID: a})

	deps := []int{b}
	if err := s.Update(a, Changes{DependsOn: &deps}); !errors.Is(err, ErrCycle) {
		t.Errorf("cross-relation cycle: %v, want ErrCycle", err)
	}
}

func TestSelfReferenceRejected(t *testing.T) {
	s := NewMemoryStore()
	a := mustAdd(t, s, Item{Title: "a"})

	if err := s.Update(a, Changes{ParentID: &a}); !errors.Is(err, ErrCycle) {
		t.Errorf("self parent: %v, want ErrCycle", err)
	}
	deps := []int{a}
	if err := s.Update(a, Changes{DependsOn: &deps}); !errors.Is(err, ErrCycle) {
		t.Errorf("self dependency: %v, want ErrCycle", err)
	}
}

func TestUnknownRelationRejected(t *testing.T) {
	s := NewMemoryStore()
	if _, err := s.Add(Item{Title: "x", ParentID: 99}); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown parent: %v, want ErrNotFound", err)
	}
	if _, err := s.Add(Item{Title: "y", DependsOn: []int{99}}); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown dependency: %v, want ErrNotFound", err)
	}
}

func TestDeleteReparentsAndStripsDeps(t *testing.T) {
	s := NewMemoryStore()
	parent := mustAdd(t, s, Item{Title: "parent"})
	child := mustAdd(t, s, Item{Title: "child", ParentID: parent})
	other := mustAdd(t, s, Item{Title: "other", DependsOn: []int{parent}})

	if err := s.Delete(parent); err != nil {
		t.Fatalf("delete: %v", err)
	}

	for _, it := range s.GetAll() {
		switch it.ID {
		case child:
			if it.ParentID != 0 {
				t.Errorf("child still parented to %d", it.ParentID)
			}
		case other:
			if len(it.DependsOn) != 0 {
				t.Errorf("dangling dependency survives: %v", it.DependsOn)
			}
		}
	}
}

func TestSubscribeNotifiesOnMutation(t *testing.T) {
	s := NewMemoryStore()
	calls := 0
	remove := s.Subscribe(func() { calls++ })

	id := mustAdd(t, s, Item{Title: "x"})
	done := true
	s.Update(id, Changes{Done: &done})
	s.Delete(id)
	if calls != 3 {
		t.Errorf("subscriber called %d times, want 3", calls)
	}

	remove()
	mustAdd(t, s, Item{Title: "y"})
	if calls != 3 {
		t.Errorf("removed subscriber still called, count=%d", calls)
	}
}

func TestRejectedAddDoesNotConsumeID(t *testing.T) {
	s := NewMemoryStore()
	if _, err := s.Add(Item{Title: "bad", ParentID: 7}); err == nil {
		t.Fatal("expected add to fail")
	}
	a := mustAdd(t, s, Item{Title: "good"})
	b := mustAdd(t, s, Item{Title: "next"})
	if b != a+1 {
		t.Errorf("ids not consecutive after rejected add: %d then %d", a, b)
	}
}
