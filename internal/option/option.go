// Package option holds the canonical option model: normalization of raw
// option input into a flat list plus an optional grouped view, lookup by
// value, and the selection-set algebra used by the engine.
package option

// Option is one selectable unit. Options are treated as immutable: the
// engine replaces lists wholesale and never mutates an Option in place.
type Option[T comparable] struct {
	Value       T
	Label       string
	Disabled    bool
	Group       string
	Data        map[string]any
	Icon        string
	Description string
}

// Group is a presentation-only grouping of options.
type Group[T comparable] struct {
	Label   string
	Options []Option[T]
}

// Normalized is the canonical form of an option list: the flat list the
// engine filters and highlights over, plus the grouped view if any
// grouping was present in the input.
type Normalized[T comparable] struct {
	Flat      []Option[T]
	Grouped   []Group[T]
	HasGroups bool
}

// Normalize builds the canonical form from a flat option list. If any
// option carries a Group label, groups are derived by first-seen order;
// ungrouped options collapse into a trailing group with an empty label.
func Normalize[T comparable](opts []Option[T]) Normalized[T] {
	n := Normalized[T]{Flat: opts}

	hasGroups := false
	for _, o := range opts {
		if o.Group != "" {
			hasGroups = true
			break
		}
	}
	if !hasGroups {
		n.Grouped = []Group[T]{{Label: "", Options: opts}}
		return n
	}

	n.HasGroups = true
	index := make(map[string]int)
	var grouped []Group[T]
	var ungrouped []Option[T]
	for _, o := range opts {
		if o.Group == "" {
			ungrouped = append(ungrouped, o)
			continue
		}
		i, ok := index[o.Group]
		if !ok {
			i = len(grouped)
			index[o.Group] = i
			grouped = append(grouped, Group[T]{Label: o.Group})
		}
		grouped[i].Options = append(grouped[i].Options, o)
	}
	if len(ungrouped) > 0 {
		grouped = append(grouped, Group[T]{Label: "", Options: ungrouped})
	}
	n.Grouped = grouped
	return n
}

// NormalizeGroups builds the canonical form from explicit grouped input.
// The flat view is the groups flattened in order, with each option's
// Group field set to its group label.
func NormalizeGroups[T comparable](groups []Group[T]) Normalized[T] {
	n := Normalized[T]{Grouped: groups, HasGroups: true}
	for _, g := range groups {
		for _, o := range g.Options {
			o.Group = g.Label
			n.Flat = append(n.Flat, o)
		}
	}
	return n
}

// FindByValue returns the first option whose value equals v.
func FindByValue[T comparable](opts []Option[T], v T) (Option[T], bool) {
	for _, o := range opts {
		if o.Value == v {
			return o, true
		}
	}
	return Option[T]{}, false
}

// FindIndex returns the index of the first option whose value equals v,
// or -1 if no option matches.
func FindIndex[T comparable](opts []Option[T], v T) int {
	for i, o := range opts {
		if o.Value == v {
			return i
		}
	}
	return -1
}

// Values extracts the values of the given options, in order.
func Values[T comparable](opts []Option[T]) []T {
	vals := make([]T, len(opts))
	for i, o := range opts {
		vals[i] = o.Value
	}
	return vals
}
