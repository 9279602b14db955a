// Package data defines the domain record interface screens consume and an
// in-memory implementation used by the demo and tests. The engine core
// never touches this package directly.
package data

import (
	"errors"
	"fmt"
	"sort"
)

// Item is one domain record. Records form two independent relations: a
// parent hierarchy and explicit dependency links. Both are checked for
// cycles.
type Item struct {
	ID        int
	Title     string
	Done      bool
	ParentID  int   // 0 = top level
	DependsOn []int // Other item ids this one depends on
}

// Changes is a partial update; nil fields are left untouched
type Changes struct {
	Title     *string
	Done      *bool
	ParentID  *int
	DependsOn *[]int
}

// ErrNotFound reports an unknown item id
var ErrNotFound = errors.New("data: item not found")

// ErrCycle reports a parent or dependency assignment that would create a
// cycle across either relation
var ErrCycle = errors.New("data: relation would create a cycle")

// Store is the domain data interface consumed by screens
type Store interface {
	GetAll() []Item
	Add(item Item) (int, error)
	Update(id int, changes Changes) error
	Delete(id int) error

	// Subscribe registers a change callback and returns its remover
	Subscribe(onChange func()) func()
}

// MemoryStore is a Store backed by a map, for the demo and for tests
type MemoryStore struct {
	items  map[int]Item
	nextID int
	subs   []func()
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[int]Item), nextID: 1}
}

func (s *MemoryStore) notify() {
	for _, fn := range s.subs {
		if fn != nil {
			fn()
		}
	}
}

// GetAll returns all items ordered by id
func (s *MemoryStore) GetAll() []Item {
	out := make([]Item, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Add inserts the item, assigning its id. Parent and dependency links are
// validated against both relations.
func (s *MemoryStore) Add(item Item) (int, error) {
	item.ID = s.nextID
	if err := s.validateRelations(item); err != nil {
		return 0, err
	}
	s.nextID++
	s.items[item.ID] = item
	s.notify()
	return item.ID, nil
}

// Update applies the changes. Relation changes are validated before any
// field is written, so a rejected update leaves the item untouched.
func (s *MemoryStore) Update(id int, changes Changes) error {
	item, ok := s.items[id]
	if !ok {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}

	next := item
	if changes.Title != nil {
		next.Title = *changes.Title
	}
	if changes.Done != nil {
		next.Done = *changes.Done
	}
	if changes.ParentID != nil {
		next.ParentID = *changes.ParentID
	}
	if changes.DependsOn != nil {
		next.DependsOn = append([]int(nil), (*changes.DependsOn)...)
	}

	if err := s.validateRelations(next); err != nil {
		return err
	}

	s.items[id] = next
	s.notify()
	return nil
}

// Delete removes the item. Children are reparented to top level and
// dangling dependency links are dropped.
func (s *MemoryStore) Delete(id int) error {
	if _, ok := s.items[id]; !ok {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	delete(s.items, id)

	for cid, c := range s.items {
		changed := false
		if c.ParentID == id {
			c.ParentID = 0
			changed = true
		}
		deps := c.DependsOn[:0:0]
		for _, d := range c.DependsOn {
			if d != id {
				deps = append(deps, d)
			}
		}
		if len(deps) != len(c.DependsOn) {
			c.DependsOn = deps
			changed = true
		}
		if changed {
			s.items[cid] = c
		}
	}
	s.notify()
	return nil
}

// Subscribe registers a change callback
func (s *MemoryStore) Subscribe(onChange func()) func() {
	s.subs = append(s.subs, onChange)
	idx := len(s.subs) - 1
	return func() {
		s.subs[idx] = nil
	}
}

// validateRelations checks referenced ids exist and that neither the
// parent hierarchy nor the dependency graph gains a cycle. Both relations
// are walked together: a parent edge and a dependency edge compose into
// a cycle just as readily as two edges of the same kind.
func (s *MemoryStore) validateRelations(item Item) error {
	if item.ParentID != 0 {
		if _, ok := s.items[item.ParentID]; !ok {
			return fmt.Errorf("%w: parent id %d", ErrNotFound, item.ParentID)
		}
	}
	for _, d := range item.DependsOn {
		if _, ok := s.items[d]; !ok {
			return fmt.Errorf("%w: dependency id %d", ErrNotFound, d)
		}
	}

	if s.wouldCycle(item) {
		return fmt.Errorf("%w: item %d", ErrCycle, item.ID)
	}
	return nil
}

// wouldCycle runs a DFS from item over the union of parent and dependency
// edges, as they would exist after the change, looking for a path back to
// item.
func (s *MemoryStore) wouldCycle(item Item) bool {
	edges := func(id int) []int {
		it, ok := s.items[id]
		if id == item.ID {
			it, ok = item, true
		}
		if !ok {
			return nil
		}
		var out []int
		if it.ParentID != 0 {
			out = append(out, it.ParentID)
		}
		out = append(out, it.DependsOn...)
		return out
	}

	visited := make(map[int]bool)
	var stack []int
	stack = append(stack, edges(item.ID)...)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id == item.ID {
			return true
		}
		if visited[id] {
			continue
		}
		visited[id] = true
		stack = append(stack, edges(id)...)
	}
	return false
}
