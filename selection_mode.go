package tview

import (
	"fmt"
	"math"
	"strings"
)

// SelectionMode configures how a [ListBox] selects items. The values are
// flags and may be combined.
type SelectionMode uint8

const (
	// SelectionNone disables selection.
	SelectionNone SelectionMode = 0
	// SelectionSingle allows at most one selected item.
	SelectionSingle SelectionMode = 1 << (iota - 1)
	// SelectionMultiple allows any number of selected items. Shift extends a
	// range from the anchor and Control toggles.
	SelectionMultiple
	// SelectionToggle makes a plain pointer press toggle the pressed item.
	SelectionToggle
	// SelectionAlwaysSelected keeps at least one item selected while the
	// source is not empty.
	SelectionAlwaysSelected
)

var selectionModeNames = []struct {
	mode SelectionMode
	name string
}{
	{SelectionSingle, "single"},
	{SelectionMultiple, "multiple"},
	{SelectionToggle, "toggle"},
	{SelectionAlwaysSelected, "always-selected"},
}

// Has reports whether all flags in flag are set.
func (m SelectionMode) Has(flag SelectionMode) bool {
	return flag != 0 && m&flag == flag
}

// AllowsMultiple reports whether range extension is permitted.
func (m SelectionMode) AllowsMultiple() bool {
	return m.Has(SelectionMultiple)
}

// AllowsToggle reports whether the mode permits toggling items in and out
// of the selection.
func (m SelectionMode) AllowsToggle() bool {
	return m.Has(SelectionMultiple) || m.Has(SelectionToggle)
}

func (m SelectionMode) String() string {
	if m == SelectionNone {
		return "none"
	}
	var names []string
	for _, entry := range selectionModeNames {
		if m.Has(entry.mode) {
			names = append(names, entry.name)
		}
	}
	return strings.Join(names, "|")
}

// ParseSelectionMode parses a "|" or ","-separated list of mode names, for
// example "multiple|toggle". The empty string and "none" yield
// SelectionNone.
func ParseSelectionMode(s string) (SelectionMode, error) {
	var mode SelectionMode
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == '|' || r == ',' || r == ' '
	})
	for _, field := range fields {
		if field == "none" {
			continue
		}
		found := false
		for _, entry := range selectionModeNames {
			if entry.name == field {
				mode |= entry.mode
				found = true
				break
			}
		}
		if !found {
			return SelectionNone, fmt.Errorf("unknown selection mode %q", field)
		}
	}
	return mode, nil
}

// CardinalityBound returns the maximum number of selected items mode
// permits: 0 for SelectionNone, unbounded for Multiple or Toggle, and 1
// otherwise.
func CardinalityBound(mode SelectionMode) int {
	switch {
	case mode == SelectionNone:
		return 0
	case mode.AllowsToggle():
		return math.MaxInt
	default:
		return 1
	}
}
