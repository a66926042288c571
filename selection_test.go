package tview

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func letters(n int) *Collection[string] {
	items := make([]string, n)
	for i := range items {
		items[i] = string(rune('a' + i))
	}
	return NewCollection(items...)
}

func TestSelectionSingleReplaces(t *testing.T) {
	t.Parallel()
	s := NewSelection[string](letters(5), SelectionSingle, nil)

	s.Select(1)
	s.Select(3)
	assert.Equal(t, []int{3}, s.SelectedIndices())
	assert.Equal(t, []string{"d"}, s.SelectedItems())
	assert.False(t, s.IsSelected("b"))

	s.SelectItem("a")
	assert.Equal(t, []string{"a"}, s.SelectedItems())
}

func TestSelectionNoneIgnoresMutations(t *testing.T) {
	t.Parallel()
	s := NewSelection[string](letters(5), SelectionNone, nil)

	s.Select(1)
	s.ToggleIndex(2)
	s.ExtendRangeTo(4)
	s.SelectOnly(0)
	assert.False(t, s.Apply(InstructionSelectOnly, 1))
	assert.Zero(t, s.Len())
	assert.Equal(t, -1, s.SelectedIndex())
}

func TestSelectionToggle(t *testing.T) {
	t.Parallel()
	s := NewSelection[string](letters(5), SelectionMultiple, nil)

	s.ToggleIndex(2)
	assert.True(t, s.IsSelectedIndex(2))
	s.ToggleIndex(2)
	assert.False(t, s.IsSelectedIndex(2))

	s.Toggle("a").Toggle("c")
	assert.Equal(t, []string{"a", "c"}, s.SelectedItems())
	assert.Equal(t, 2, s.Anchor())
}

func TestSelectionExtendRangeKeepsAnchor(t *testing.T) {
	t.Parallel()
	s := NewSelection[string](letters(8), SelectionMultiple, nil)

	s.SelectOnly(2)
	s.ExtendRangeTo(5)
	assert.Equal(t, []int{2, 3, 4, 5}, s.SelectedIndices())
	assert.Equal(t, 2, s.Anchor())

	s.ExtendRangeTo(0)
	assert.Equal(t, []int{0, 1, 2}, s.SelectedIndices())
	assert.Equal(t, 2, s.Anchor())
}

func TestSelectionExtendRangeClamps(t *testing.T) {
	t.Parallel()
	s := NewSelection[string](letters(4), SelectionMultiple, nil)

	s.SelectOnly(1)
	s.ExtendRangeTo(100)
	assert.Equal(t, []int{1, 2, 3}, s.SelectedIndices())
	s.ExtendRangeTo(-7)
	assert.Equal(t, []int{0, 1}, s.SelectedIndices())

	empty := NewSelection[string](NewCollection[string](), SelectionMultiple, nil)
	empty.ExtendRangeTo(3)
	assert.Zero(t, empty.Len())
}

func TestSelectionExtendRangeWithoutAnchor(t *testing.T) {
	t.Parallel()
	s := NewSelection[string](letters(6), SelectionMultiple, nil)

	s.ExtendRangeTo(4)
	assert.Equal(t, []int{4}, s.SelectedIndices())
	assert.Equal(t, 4, s.Anchor())
}

func TestSelectionExtendRangeInSingleMode(t *testing.T) {
	t.Parallel()
	s := NewSelection[string](letters(6), SelectionSingle, nil)

	s.SelectOnly(1)
	s.ExtendRangeTo(4)
	assert.Equal(t, []int{4}, s.SelectedIndices())
}

func TestSelectionAlwaysSelected(t *testing.T) {
	t.Parallel()
	items := letters(3)
	s := NewSelection[string](items, SelectionSingle|SelectionAlwaysSelected, nil)
	assert.Equal(t, []int{0}, s.SelectedIndices())

	s.DeselectIndex(0)
	s.ToggleIndex(0)
	s.Clear()
	assert.Equal(t, []int{0}, s.SelectedIndices())

	s.Select(2)
	items.RemoveAt(2)
	s.ItemsChanged(CollectionChange{Action: ChangeRemove, Index: 2, Count: 1})
	assert.Equal(t, []int{1}, s.SelectedIndices())
}

func TestSelectionSetModeTrims(t *testing.T) {
	t.Parallel()
	s := NewSelection[string](letters(6), SelectionMultiple, nil)
	s.SelectOnly(3)
	s.ExtendRangeTo(5)

	s.SetMode(SelectionSingle)
	assert.Equal(t, []int{3}, s.SelectedIndices())

	s.SetMode(SelectionNone)
	assert.Zero(t, s.Len())
	assert.Equal(t, -1, s.Anchor())
}

func TestSelectionItemsChanged(t *testing.T) {
	t.Parallel()

	t.Run("add shifts indices", func(t *testing.T) {
		t.Parallel()
		items := letters(5)
		s := NewSelection[string](items, SelectionMultiple, nil)
		s.Select(1).Select(3)

		items.Insert(2, "x")
		s.ItemsChanged(CollectionChange{Action: ChangeAdd, Index: 2, Count: 1})
		assert.Equal(t, []int{1, 4}, s.SelectedIndices())
		assert.Equal(t, []string{"b", "d"}, s.SelectedItems())
		assert.Equal(t, 4, s.Anchor())
	})

	t.Run("remove drops selected item", func(t *testing.T) {
		t.Parallel()
		items := letters(5)
		s := NewSelection[string](items, SelectionMultiple, nil)
		var changes []SelectionChange
		s.SetChangedFunc(func(c SelectionChange) { changes = append(changes, c) })
		s.Select(1).Select(3)
		changes = nil

		items.RemoveAt(1)
		s.ItemsChanged(CollectionChange{Action: ChangeRemove, Index: 1, Count: 1})
		assert.Equal(t, []int{2}, s.SelectedIndices())
		assert.Equal(t, []string{"d"}, s.SelectedItems())
		require.Len(t, changes, 1)
		assert.Equal(t, []int{1}, changes[0].Removed)
		assert.Empty(t, changes[0].Added)
	})

	t.Run("replace deselects", func(t *testing.T) {
		t.Parallel()
		items := letters(3)
		s := NewSelection[string](items, SelectionSingle, nil)
		s.Select(1)

		items.Replace(1, "z")
		s.ItemsChanged(CollectionChange{Action: ChangeReplace, Index: 1, Count: 1})
		assert.Zero(t, s.Len())
		assert.False(t, s.IsSelected("z"))
	})

	t.Run("reset clears", func(t *testing.T) {
		t.Parallel()
		items := letters(3)
		s := NewSelection[string](items, SelectionMultiple, nil)
		s.Select(0).Select(2)

		items.Reset([]string{"q"})
		s.ItemsChanged(CollectionChange{Action: ChangeReset})
		assert.Zero(t, s.Len())
		assert.Equal(t, -1, s.Anchor())
	})
}

func TestSelectionChangedFunc(t *testing.T) {
	t.Parallel()
	s := NewSelection[string](letters(4), SelectionSingle, nil)
	var changes []SelectionChange
	s.SetChangedFunc(func(c SelectionChange) { changes = append(changes, c) })

	s.Select(0)
	s.Select(0)
	s.Select(2)
	require.Len(t, changes, 2)
	assert.Equal(t, SelectionChange{Added: []int{0}}, changes[0])
	assert.Equal(t, SelectionChange{Added: []int{2}, Removed: []int{0}}, changes[1])
}

func TestSelectionCardinalityBound(t *testing.T) {
	t.Parallel()
	modes := []SelectionMode{
		SelectionNone,
		SelectionSingle,
		SelectionMultiple,
		SelectionToggle,
		SelectionSingle | SelectionAlwaysSelected,
		SelectionMultiple | SelectionToggle,
		SelectionAlwaysSelected,
	}
	for _, mode := range modes {
		t.Run(mode.String(), func(t *testing.T) {
			t.Parallel()
			rng := rand.New(rand.NewPCG(1, uint64(mode)))
			s := NewSelection[string](letters(10), mode, nil)
			for range 500 {
				index := rng.IntN(12) - 1
				switch rng.IntN(6) {
				case 0:
					s.Select(index)
				case 1:
					s.DeselectIndex(index)
				case 2:
					s.ToggleIndex(index)
				case 3:
					s.ExtendRangeTo(index)
				case 4:
					s.SelectOnly(index)
				case 5:
					s.Apply(SelectionInstruction(rng.IntN(4)), index)
				}
				require.LessOrEqual(t, s.Len(), CardinalityBound(mode))
				if mode.Has(SelectionAlwaysSelected) {
					require.Equal(t, 1, s.Len())
				}
			}
		})
	}
}
