package tview

import "slices"

// ItemsSource is the read side of a bound item sequence.
type ItemsSource[T any] interface {
	// Len returns the number of items.
	Len() int
	// At returns the item at the given zero-based index. Callers must check
	// the index against Len first.
	At(index int) T
}

// ChangeAction describes how a collection was mutated.
type ChangeAction int

const (
	// ChangeAdd means Count items were inserted starting at Index.
	ChangeAdd ChangeAction = iota
	// ChangeRemove means Count items were removed starting at Index.
	ChangeRemove
	// ChangeReplace means the item at Index was replaced by a new value.
	ChangeReplace
	// ChangeReset means the whole content changed. Index and Count are zero.
	ChangeReset
)

func (a ChangeAction) String() string {
	switch a {
	case ChangeAdd:
		return "add"
	case ChangeRemove:
		return "remove"
	case ChangeReplace:
		return "replace"
	case ChangeReset:
		return "reset"
	}
	return "unknown"
}

// CollectionChange is delivered to observers after a mutation.
type CollectionChange struct {
	Action ChangeAction
	Index  int
	Count  int
}

// Collection is an ordered, observable list of items. Observers are notified
// synchronously after every effective mutation, in subscription order.
//
// A Collection is not safe for concurrent use; mutate it from the
// application's event goroutine (see [Application.QueueUpdate]).
type Collection[T any] struct {
	items     []T
	observers []*collectionObserver
}

type collectionObserver struct {
	notify func(CollectionChange)
}

// NewCollection returns a collection holding the given items.
func NewCollection[T any](items ...T) *Collection[T] {
	return &Collection[T]{items: slices.Clone(items)}
}

// Len returns the number of items.
func (c *Collection[T]) Len() int {
	return len(c.items)
}

// At returns the item at index.
func (c *Collection[T]) At(index int) T {
	return c.items[index]
}

// Items returns a copy of the current items.
func (c *Collection[T]) Items() []T {
	return slices.Clone(c.items)
}

// Observe registers a change observer. The returned function removes it.
func (c *Collection[T]) Observe(notify func(CollectionChange)) (cancel func()) {
	observer := &collectionObserver{notify: notify}
	c.observers = append(c.observers, observer)
	return func() {
		c.observers = slices.DeleteFunc(c.observers, func(o *collectionObserver) bool {
			return o == observer
		})
	}
}

// Add appends items to the end of the collection.
func (c *Collection[T]) Add(items ...T) *Collection[T] {
	if len(items) == 0 {
		return c
	}
	index := len(c.items)
	c.items = append(c.items, items...)
	c.notify(CollectionChange{Action: ChangeAdd, Index: index, Count: len(items)})
	return c
}

// Insert inserts item before index. An index equal to Len appends. Out of
// range indices are ignored.
func (c *Collection[T]) Insert(index int, item T) *Collection[T] {
	if index < 0 || index > len(c.items) {
		return c
	}
	c.items = slices.Insert(c.items, index, item)
	c.notify(CollectionChange{Action: ChangeAdd, Index: index, Count: 1})
	return c
}

// RemoveAt removes the item at index. Out of range indices are ignored.
func (c *Collection[T]) RemoveAt(index int) *Collection[T] {
	return c.RemoveRange(index, 1)
}

// RemoveRange removes count items starting at index. The range is truncated
// at the end of the collection.
func (c *Collection[T]) RemoveRange(index, count int) *Collection[T] {
	if index < 0 || index >= len(c.items) || count <= 0 {
		return c
	}
	count = min(count, len(c.items)-index)
	c.items = slices.Delete(c.items, index, index+count)
	c.notify(CollectionChange{Action: ChangeRemove, Index: index, Count: count})
	return c
}

// Replace sets the item at index to item.
func (c *Collection[T]) Replace(index int, item T) *Collection[T] {
	if index < 0 || index >= len(c.items) {
		return c
	}
	c.items[index] = item
	c.notify(CollectionChange{Action: ChangeReplace, Index: index, Count: 1})
	return c
}

// Reset replaces the whole content.
func (c *Collection[T]) Reset(items []T) *Collection[T] {
	c.items = slices.Clone(items)
	c.notify(CollectionChange{Action: ChangeReset})
	return c
}

func (c *Collection[T]) notify(change CollectionChange) {
	// Observers may unsubscribe while being notified.
	for _, observer := range slices.Clone(c.observers) {
		observer.notify(change)
	}
}

var _ ItemsSource[int] = &Collection[int]{}
