package tview

import (
	"slices"

	"github.com/emirpasic/gods/v2/sets/treeset"
)

// SelectionChange lists the indices that entered and left the selection in
// one mutation. Index shifts caused by insertions or removals in the items
// source are not reported.
type SelectionChange struct {
	Added   []int
	Removed []int
}

// Selection holds the selected indices of an items source together with the
// anchor used for range extension. Every mutation keeps the number of
// selected items within [CardinalityBound] of the mode.
type Selection[T any] struct {
	source   ItemsSource[T]
	identity Identity[T]
	mode     SelectionMode

	indices *treeset.Set[int]
	// The index of the last non-extending selection, -1 if none.
	anchor int

	changed func(SelectionChange)
}

// NewSelection returns an empty selection over source.
func NewSelection[T any](source ItemsSource[T], mode SelectionMode, identity Identity[T]) *Selection[T] {
	if identity == nil {
		identity = ReferenceIdentity[T]()
	}
	s := &Selection[T]{
		source:   source,
		identity: identity,
		mode:     mode,
		indices:  treeset.New[int](),
		anchor:   -1,
	}
	s.fill(0)
	return s
}

// SetChangedFunc sets the function called after every effective change.
func (s *Selection[T]) SetChangedFunc(handler func(SelectionChange)) *Selection[T] {
	s.changed = handler
	return s
}

// Mode returns the selection mode.
func (s *Selection[T]) Mode() SelectionMode {
	return s.mode
}

// SetMode changes the selection mode and trims the selection to the new
// bound. The anchor item survives the trim when it is selected.
func (s *Selection[T]) SetMode(mode SelectionMode) *Selection[T] {
	if mode == s.mode {
		return s
	}
	s.mode = mode
	s.mutate(func() {
		switch bound := CardinalityBound(mode); {
		case bound == 0:
			s.indices.Clear()
			s.anchor = -1
		case s.indices.Size() > bound:
			keep := s.indices.Values()[0]
			if s.indices.Contains(s.anchor) {
				keep = s.anchor
			}
			s.indices.Clear()
			s.indices.Add(keep)
			s.anchor = keep
		}
		s.fill(0)
	})
	return s
}

// SetSource replaces the items source and clears the selection.
func (s *Selection[T]) SetSource(source ItemsSource[T]) *Selection[T] {
	s.source = source
	s.mutate(func() {
		s.indices.Clear()
		s.anchor = -1
		s.fill(0)
	})
	return s
}

func (s *Selection[T]) count() int {
	if s.source == nil {
		return 0
	}
	return s.source.Len()
}

func (s *Selection[T]) valid(index int) bool {
	return index >= 0 && index < s.count()
}

// Len returns the number of selected items.
func (s *Selection[T]) Len() int {
	return s.indices.Size()
}

// Anchor returns the anchor index, or -1.
func (s *Selection[T]) Anchor() int {
	return s.anchor
}

// IsSelectedIndex reports whether the item at index is selected.
func (s *Selection[T]) IsSelectedIndex(index int) bool {
	return s.indices.Contains(index)
}

// IsSelected reports whether an item identical to item is selected.
func (s *Selection[T]) IsSelected(item T) bool {
	for _, index := range s.indices.Values() {
		if s.valid(index) && s.identity(s.source.At(index), item) {
			return true
		}
	}
	return false
}

// SelectedIndex returns the lowest selected index, or -1.
func (s *Selection[T]) SelectedIndex() int {
	if s.indices.Empty() {
		return -1
	}
	return s.indices.Values()[0]
}

// SelectedIndices returns the selected indices in ascending order.
func (s *Selection[T]) SelectedIndices() []int {
	return s.indices.Values()
}

// SelectedItems returns the selected items in source order.
func (s *Selection[T]) SelectedItems() []T {
	items := make([]T, 0, s.indices.Size())
	for _, index := range s.indices.Values() {
		if s.valid(index) {
			items = append(items, s.source.At(index))
		}
	}
	return items
}

// Select adds the item at index to the selection. In a single mode the
// previous selection is replaced.
func (s *Selection[T]) Select(index int) *Selection[T] {
	if s.mode == SelectionNone || !s.valid(index) {
		return s
	}
	s.mutate(func() {
		if CardinalityBound(s.mode) == 1 {
			s.indices.Clear()
		}
		s.indices.Add(index)
		s.anchor = index
	})
	return s
}

// SelectItem selects the first item identical to item.
func (s *Selection[T]) SelectItem(item T) *Selection[T] {
	return s.Select(IndexOf(s.source, item, s.identity))
}

// SelectOnly makes the item at index the only selected item.
func (s *Selection[T]) SelectOnly(index int) *Selection[T] {
	if s.mode == SelectionNone || !s.valid(index) {
		return s
	}
	s.mutate(func() {
		s.indices.Clear()
		s.indices.Add(index)
		s.anchor = index
	})
	return s
}

// SelectOnlyItem makes the first item identical to item the only selected
// item.
func (s *Selection[T]) SelectOnlyItem(item T) *Selection[T] {
	return s.SelectOnly(IndexOf(s.source, item, s.identity))
}

// DeselectIndex removes the item at index from the selection. With
// SelectionAlwaysSelected the last selected item cannot be deselected.
func (s *Selection[T]) DeselectIndex(index int) *Selection[T] {
	if s.mode == SelectionNone || !s.indices.Contains(index) {
		return s
	}
	if s.mode.Has(SelectionAlwaysSelected) && s.indices.Size() == 1 {
		return s
	}
	s.mutate(func() {
		s.indices.Remove(index)
	})
	return s
}

// Deselect removes every selected item identical to item.
func (s *Selection[T]) Deselect(item T) *Selection[T] {
	for _, index := range s.indices.Values() {
		if s.valid(index) && s.identity(s.source.At(index), item) {
			s.DeselectIndex(index)
		}
	}
	return s
}

// ToggleIndex flips the item at index in or out of the selection. The
// anchor moves to index.
func (s *Selection[T]) ToggleIndex(index int) *Selection[T] {
	if s.mode == SelectionNone || !s.valid(index) {
		return s
	}
	if s.indices.Contains(index) {
		s.anchor = index
		return s.DeselectIndex(index)
	}
	return s.Select(index)
}

// Toggle flips the first item identical to item.
func (s *Selection[T]) Toggle(item T) *Selection[T] {
	return s.ToggleIndex(IndexOf(s.source, item, s.identity))
}

// ExtendRangeTo selects the closed range between the anchor and index and
// deselects everything else. The anchor does not move. Indices outside the
// source are clamped to its bounds. Without an anchor, or in a mode that
// does not allow multiple items, it behaves like SelectOnly.
func (s *Selection[T]) ExtendRangeTo(index int) *Selection[T] {
	n := s.count()
	if s.mode == SelectionNone || n == 0 {
		return s
	}
	index = max(0, min(index, n-1))
	if !s.mode.AllowsMultiple() || !s.valid(s.anchor) {
		return s.SelectOnly(index)
	}
	from, to := min(s.anchor, index), max(s.anchor, index)
	s.mutate(func() {
		s.indices.Clear()
		for i := from; i <= to; i++ {
			s.indices.Add(i)
		}
	})
	return s
}

// Clear deselects everything. With SelectionAlwaysSelected and a non-empty
// source it does nothing.
func (s *Selection[T]) Clear() *Selection[T] {
	if s.mode.Has(SelectionAlwaysSelected) && s.count() > 0 {
		return s
	}
	s.mutate(func() {
		s.indices.Clear()
	})
	return s
}

// Apply executes instruction for the item at index. It reports whether an
// instruction was applied, which is false for InstructionNone and for
// indices outside the source.
func (s *Selection[T]) Apply(instruction SelectionInstruction, index int) bool {
	if instruction == InstructionNone || s.mode == SelectionNone || !s.valid(index) {
		return false
	}
	switch instruction {
	case InstructionSelectOnly:
		s.SelectOnly(index)
	case InstructionToggle:
		s.ToggleIndex(index)
	case InstructionRangeExtend:
		s.ExtendRangeTo(index)
	default:
		return false
	}
	return true
}

// ItemsChanged keeps the stored indices pointing at the same items after
// the source was mutated. Only indices whose item left the source are
// reported as removed.
func (s *Selection[T]) ItemsChanged(change CollectionChange) {
	var report SelectionChange
	old := s.indices.Values()
	switch change.Action {
	case ChangeAdd:
		s.indices.Clear()
		for _, index := range old {
			if index >= change.Index {
				index += change.Count
			}
			s.indices.Add(index)
		}
		if s.anchor >= change.Index {
			s.anchor += change.Count
		}
	case ChangeRemove:
		end := change.Index + change.Count
		s.indices.Clear()
		for _, index := range old {
			switch {
			case index < change.Index:
				s.indices.Add(index)
			case index >= end:
				s.indices.Add(index - change.Count)
			default:
				report.Removed = append(report.Removed, index)
			}
		}
		switch {
		case s.anchor >= end:
			s.anchor -= change.Count
		case s.anchor >= change.Index:
			s.anchor = -1
		}
	case ChangeReplace:
		if s.indices.Contains(change.Index) {
			s.indices.Remove(change.Index)
			report.Removed = append(report.Removed, change.Index)
		}
	case ChangeReset:
		report.Removed = old
		s.indices.Clear()
		s.anchor = -1
	}
	if s.fill(change.Index) {
		report.Added = s.indices.Values()
	}
	if s.changed != nil && (len(report.Added) > 0 || len(report.Removed) > 0) {
		s.changed(report)
	}
}

// fill selects the item nearest to near when the mode requires a selected
// item and there is none. It reports whether an item was selected.
func (s *Selection[T]) fill(near int) bool {
	if !s.mode.Has(SelectionAlwaysSelected) || !s.indices.Empty() {
		return false
	}
	n := s.count()
	if n == 0 {
		return false
	}
	if s.valid(s.anchor) {
		near = s.anchor
	}
	near = max(0, min(near, n-1))
	s.indices.Add(near)
	s.anchor = near
	return true
}

// mutate runs f and reports the difference to the changed handler.
func (s *Selection[T]) mutate(f func()) {
	before := s.indices.Values()
	f()
	change := diffIndices(before, s.indices.Values())
	if s.changed != nil && (len(change.Added) > 0 || len(change.Removed) > 0) {
		s.changed(change)
	}
}

// diffIndices compares two ascending index lists.
func diffIndices(before, after []int) SelectionChange {
	var change SelectionChange
	for _, index := range after {
		if _, found := slices.BinarySearch(before, index); !found {
			change.Added = append(change.Added, index)
		}
	}
	for _, index := range before {
		if _, found := slices.BinarySearch(after, index); !found {
			change.Removed = append(change.Removed, index)
		}
	}
	return change
}
