package engine

import "selectkit/internal/option"

// State is the full engine snapshot handed to subscribers on every
// change. Slices inside a snapshot are replaced wholesale by the engine
// and must be treated as immutable by consumers.
type State[T comparable] struct {
	Open   bool
	Search string

	Options   []option.Option[T] // canonical flat list
	Grouped   []option.Group[T]
	HasGroups bool
	Filtered  []option.Option[T] // in-order subsequence of Options

	HighlightedIndex int // index into Filtered, -1 for none

	Values          []T                // nil in single mode with no value, empty in multi
	SelectedOptions []option.Option[T] // subset of Options matching Values

	Loading   bool
	Focused   bool
	Disabled  bool
	Composing bool
}

// Highlighted returns the currently highlighted option, if any.
func (s State[T]) Highlighted() (option.Option[T], bool) {
	if s.HighlightedIndex < 0 || s.HighlightedIndex >= len(s.Filtered) {
		return option.Option[T]{}, false
	}
	return s.Filtered[s.HighlightedIndex], true
}

// SelectedValue returns the single-mode value, if set.
func (s State[T]) SelectedValue() (T, bool) {
	if len(s.Values) == 0 {
		var zero T
		return zero, false
	}
	return s.Values[0], true
}

// HasValue reports whether anything is selected.
func (s State[T]) HasValue() bool {
	return len(s.Values) > 0
}

// IsSelected reports whether v is part of the committed value.
func (s State[T]) IsSelected(v T) bool {
	for _, sel := range s.Values {
		if sel == v {
			return true
		}
	}
	return false
}
