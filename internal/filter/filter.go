// Package filter provides pure search predicates over option lists. The
// predicates hold no state; Apply keeps the source order so the filtered
// list is always an in-order subsequence of its input.
package filter

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"selectkit/internal/option"
)

// Func decides whether an option matches a search query.
type Func[T comparable] func(opt option.Option[T], query string) bool

// Substring matches when the option label contains the query,
// case-insensitively. An empty query matches everything.
func Substring[T comparable](opt option.Option[T], query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(opt.Label), strings.ToLower(query))
}

// Prefix matches when the option label starts with the query,
// case-insensitively.
func Prefix[T comparable](opt option.Option[T], query string) bool {
	if query == "" {
		return true
	}
	return strings.HasPrefix(strings.ToLower(opt.Label), strings.ToLower(query))
}

// Fuzzy matches the option label with fzf-style subsequence matching.
func Fuzzy[T comparable](opt option.Option[T], query string) bool {
	if query == "" {
		return true
	}
	return len(fuzzy.Find(query, []string{opt.Label})) > 0
}

// MultiField builds a predicate that matches when any of the extracted
// fields contains the query, case-insensitively. Typical fields are the
// label plus description or entries from the option's Data map.
func MultiField[T comparable](fields func(option.Option[T]) []string) Func[T] {
	return func(opt option.Option[T], query string) bool {
		if query == "" {
			return true
		}
		q := strings.ToLower(query)
		for _, f := range fields(opt) {
			if strings.Contains(strings.ToLower(f), q) {
				return true
			}
		}
		return false
	}
}

// Apply filters opts with fn, preserving the source order. A nil fn or
// empty query returns the input unchanged.
func Apply[T comparable](opts []option.Option[T], query string, fn Func[T]) []option.Option[T] {
	if fn == nil || query == "" {
		return opts
	}
	out := make([]option.Option[T], 0, len(opts))
	for _, o := range opts {
		if fn(o, query) {
			out = append(out, o)
		}
	}
	return out
}

// Scored is an option paired with its fuzzy match score.
type Scored[T comparable] struct {
	Option option.Option[T]
	Score  int
}

// RankScored fuzzy-matches opts against the query and returns the matches
// ranked best-first. Hosts that want relevance ordering use this directly;
// the engine's own filter path stays order-preserving.
func RankScored[T comparable](opts []option.Option[T], query string) []Scored[T] {
	if query == "" {
		out := make([]Scored[T], len(opts))
		for i, o := range opts {
			out[i] = Scored[T]{Option: o}
		}
		return out
	}
	labels := make([]string, len(opts))
	for i, o := range opts {
		labels[i] = o.Label
	}
	matches := fuzzy.Find(query, labels)
	out := make([]Scored[T], len(matches))
	for i, m := range matches {
		out[i] = Scored[T]{Option: opts[m.Index], Score: m.Score}
	}
	return out
}
