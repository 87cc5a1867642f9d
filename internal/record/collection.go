// Package record holds the immutable snapshot collection shared by the
// customer registry, the pipeline and the task list.
package record

import "fmt"

// Record is anything with a stable identity.
type Record interface {
	RecordID() string
}

// Collection is an ordered, immutable snapshot of records of one kind.
// Every mutating method returns a new Collection and leaves the receiver
// untouched, so holders of an older value keep a consistent view.
type Collection[T Record] struct {
	items []T
	index map[string]int
}

// NewCollection builds a snapshot from items in the given order.
func NewCollection[T Record](items []T) (Collection[T], error) {
	c := Collection[T]{
		items: make([]T, 0, len(items)),
		index: make(map[string]int, len(items)),
	}
	for _, item := range items {
		id := item.RecordID()
		if id == "" {
			return Collection[T]{}, fmt.Errorf("%w: empty id", ErrInvalidRecord)
		}
		if _, exists := c.index[id]; exists {
			return Collection[T]{}, fmt.Errorf("%w: %s", ErrDuplicateIdentity, id)
		}
		c.index[id] = len(c.items)
		c.items = append(c.items, item)
	}
	return c, nil
}

// Len returns the number of records.
func (c Collection[T]) Len() int {
	return len(c.items)
}

// Items returns a copy of the records in order.
func (c Collection[T]) Items() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// IDs returns the identities in order.
func (c Collection[T]) IDs() []string {
	ids := make([]string, len(c.items))
	for i, item := range c.items {
		ids[i] = item.RecordID()
	}
	return ids
}

// Get looks up a record by id.
func (c Collection[T]) Get(id string) (T, bool) {
	i, ok := c.index[id]
	if !ok {
		var zero T
		return zero, false
	}
	return c.items[i], true
}

// Contains reports whether id is present.
func (c Collection[T]) Contains(id string) bool {
	_, ok := c.index[id]
	return ok
}

// Add appends a record, rejecting identity collisions.
func (c Collection[T]) Add(item T) (Collection[T], error) {
	id := item.RecordID()
	if id == "" {
		return c, fmt.Errorf("%w: empty id", ErrInvalidRecord)
	}
	if c.Contains(id) {
		return c, fmt.Errorf("%w: %s", ErrDuplicateIdentity, id)
	}
	items := make([]T, len(c.items), len(c.items)+1)
	copy(items, c.items)
	return rebuild(append(items, item)), nil
}

// Replace swaps the record carrying the same id, keeping its position.
func (c Collection[T]) Replace(item T) (Collection[T], error) {
	i, ok := c.index[item.RecordID()]
	if !ok {
		return c, fmt.Errorf("%w: %s", ErrUnknownIdentity, item.RecordID())
	}
	items := c.Items()
	items[i] = item
	return Collection[T]{items: items, index: c.index}, nil
}

// Delete removes the record with the given id.
func (c Collection[T]) Delete(id string) (Collection[T], error) {
	i, ok := c.index[id]
	if !ok {
		return c, fmt.Errorf("%w: %s", ErrUnknownIdentity, id)
	}
	items := make([]T, 0, len(c.items)-1)
	items = append(items, c.items[:i]...)
	items = append(items, c.items[i+1:]...)
	return rebuild(items), nil
}

func rebuild[T Record](items []T) Collection[T] {
	index := make(map[string]int, len(items))
	for i, item := range items {
		index[item.RecordID()] = i
	}
	return Collection[T]{items: items, index: index}
}
