// Package keymap maps physical key events, with modifier state and the
// widget's open/closed context, to named engine actions through a
// declarative binding table. The dispatcher decides only WHAT should
// happen; the engine carries it out.
package keymap

import (
	"unicode"
	"unicode/utf8"
)

// Action is a named engine operation resolved from a key event.
type Action int

const (
	ActionNone Action = iota
	ActionOpen
	ActionClose
	ActionHighlightNext
	ActionHighlightPrev
	ActionHighlightFirst
	ActionHighlightLast
	ActionPageDown
	ActionPageUp
	ActionSelectHighlighted
	ActionClearSearch
	ActionRemoveLastSelected
	ActionClearValue
	ActionTypeAhead
)

// Key names follow the DOM KeyboardEvent.key convention so host bindings
// can forward events without translation.
const (
	KeyArrowDown = "ArrowDown"
	KeyArrowUp   = "ArrowUp"
	KeyHome      = "Home"
	KeyEnd       = "End"
	KeyPageUp    = "PageUp"
	KeyPageDown  = "PageDown"
	KeyEnter     = "Enter"
	KeySpace     = " "
	KeyEscape    = "Escape"
	KeyBackspace = "Backspace"
	KeyDelete    = "Delete"
	KeyTab       = "Tab"
)

// Event is a physical key press with its modifier state.
type Event struct {
	Key   string
	Ctrl  bool
	Alt   bool
	Shift bool
	Meta  bool
}

// Context is the slice of engine state the dispatcher needs to resolve a
// binding.
type Context struct {
	Open        bool
	Multiple    bool
	Searchable  bool
	Clearable   bool
	Disabled    bool
	Composing   bool
	SearchEmpty bool
	HasValue    bool
}

// Binding maps one key in one open/closed context to an action, with an
// optional extra guard on the context.
type Binding struct {
	Key    string
	Open   bool
	When   func(Context) bool
	Action Action
}

// DefaultBindings is the stock binding table. Order matters: the first
// binding whose key, context, and guard all match wins.
func DefaultBindings() []Binding {
	return []Binding{
		{Key: KeyArrowDown, Open: false, Action: ActionOpen},
		{Key: KeyArrowUp, Open: false, Action: ActionOpen},
		{Key: KeyArrowDown, Open: true, Action: ActionHighlightNext},
		{Key: KeyArrowUp, Open: true, Action: ActionHighlightPrev},
		{Key: KeyHome, Open: true, Action: ActionHighlightFirst},
		{Key: KeyEnd, Open: true, Action: ActionHighlightLast},
		{Key: KeyPageDown, Open: true, Action: ActionPageDown},
		{Key: KeyPageUp, Open: true, Action: ActionPageUp},
		{Key: KeyEnter, Open: false, Action: ActionOpen},
		{Key: KeyEnter, Open: true, Action: ActionSelectHighlighted},
		{Key: KeySpace, Open: false, Action: ActionOpen},
		{Key: KeySpace, Open: true, Action: ActionSelectHighlighted},
		// Escape clears the search first; a second press closes.
		{Key: KeyEscape, Open: true, When: func(c Context) bool { return !c.SearchEmpty }, Action: ActionClearSearch},
		{Key: KeyEscape, Open: true, Action: ActionClose},
		{Key: KeyBackspace, Open: true, When: removesTag, Action: ActionRemoveLastSelected},
		{Key: KeyBackspace, Open: false, When: removesTag, Action: ActionRemoveLastSelected},
		{Key: KeyDelete, Open: true, When: clearsValue, Action: ActionClearValue},
		{Key: KeyDelete, Open: false, When: clearsValue, Action: ActionClearValue},
	}
}

func removesTag(c Context) bool  { return c.Multiple && c.SearchEmpty && c.HasValue }
func clearsValue(c Context) bool { return c.Clearable && c.HasValue }

// Resolver resolves key events against a binding table.
type Resolver struct {
	bindings []Binding
}

// NewResolver builds a resolver; nil bindings selects the default table.
func NewResolver(bindings []Binding) *Resolver {
	if bindings == nil {
		bindings = DefaultBindings()
	}
	return &Resolver{bindings: bindings}
}

// Resolve maps ev to an action. The second return reports whether the
// event was handled; unhandled events must keep their default behavior in
// the host (notably text input while searching).
func (r *Resolver) Resolve(ev Event, ctx Context) (Action, bool) {
	if ctx.Disabled || ctx.Composing {
		return ActionNone, false
	}

	// Space must reach the text input while the user is typing a search.
	if ev.Key == KeySpace && ctx.Searchable && ctx.Open {
		return ActionNone, false
	}

	for _, b := range r.bindings {
		if b.Key != ev.Key || b.Open != ctx.Open {
			continue
		}
		if b.When != nil && !b.When(ctx) {
			continue
		}
		return b.Action, true
	}

	// Type-ahead: a printable character on a closed searchable select
	// opens it and seeds the search text.
	if !ctx.Open && ctx.Searchable && isPrintable(ev) {
		return ActionTypeAhead, true
	}

	return ActionNone, false
}

func isPrintable(ev Event) bool {
	if ev.Ctrl || ev.Alt || ev.Meta {
		return false
	}
	if utf8.RuneCountInString(ev.Key) != 1 {
		return false
	}
	r, _ := utf8.DecodeRuneInString(ev.Key)
	return unicode.IsPrint(r)
}
