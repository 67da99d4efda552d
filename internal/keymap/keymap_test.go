package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func resolve(t *testing.T, ev Event, ctx Context) (Action, bool) {
	t.Helper()
	return NewResolver(nil).Resolve(ev, ctx)
}

func TestArrowsOpenWhenClosedNavigateWhenOpen(t *testing.T) {
	act, handled := resolve(t, Event{Key: KeyArrowDown}, Context{})
	assert.True(t, handled)
	assert.Equal(t, ActionOpen, act)

	act, handled = resolve(t, Event{Key: KeyArrowDown}, Context{Open: true})
	assert.True(t, handled)
	assert.Equal(t, ActionHighlightNext, act)

	act, _ = resolve(t, Event{Key: KeyArrowUp}, Context{Open: true})
	assert.Equal(t, ActionHighlightPrev, act)
}

func TestHomeEndPageKeys(t *testing.T) {
	open := Context{Open: true}

	act, _ := resolve(t, Event{Key: KeyHome}, open)
	assert.Equal(t, ActionHighlightFirst, act)
	act, _ = resolve(t, Event{Key: KeyEnd}, open)
	assert.Equal(t, ActionHighlightLast, act)
	act, _ = resolve(t, Event{Key: KeyPageDown}, open)
	assert.Equal(t, ActionPageDown, act)
	act, _ = resolve(t, Event{Key: KeyPageUp}, open)
	assert.Equal(t, ActionPageUp, act)
}

func TestSpaceReachesSearchInput(t *testing.T) {
	act, handled := resolve(t, Event{Key: KeySpace}, Context{Open: true, Searchable: true})
	assert.False(t, handled, "space must not be intercepted while typing a search")
	assert.Equal(t, ActionNone, act)

	act, handled = resolve(t, Event{Key: KeySpace}, Context{Open: true})
	assert.True(t, handled)
	assert.Equal(t, ActionSelectHighlighted, act)
}

func TestEscapeClearsSearchThenCloses(t *testing.T) {
	act, _ := resolve(t, Event{Key: KeyEscape}, Context{Open: true, SearchEmpty: false})
	assert.Equal(t, ActionClearSearch, act)

	act, _ = resolve(t, Event{Key: KeyEscape}, Context{Open: true, SearchEmpty: true})
	assert.Equal(t, ActionClose, act)
}

func TestBackspaceRemovesLastTag(t *testing.T) {
	ctx := Context{Open: true, Multiple: true, SearchEmpty: true, HasValue: true}
	act, handled := resolve(t, Event{Key: KeyBackspace}, ctx)
	assert.True(t, handled)
	assert.Equal(t, ActionRemoveLastSelected, act)

	// With search text present, backspace belongs to the input.
	ctx.SearchEmpty = false
	_, handled = resolve(t, Event{Key: KeyBackspace}, ctx)
	assert.False(t, handled)

	// Single mode never removes tags with backspace.
	_, handled = resolve(t, Event{Key: KeyBackspace}, Context{SearchEmpty: true, HasValue: true})
	assert.False(t, handled)
}

func TestDeleteClearsValueWhenClearable(t *testing.T) {
	act, handled := resolve(t, Event{Key: KeyDelete}, Context{Clearable: true, HasValue: true})
	assert.True(t, handled)
	assert.Equal(t, ActionClearValue, act)

	_, handled = resolve(t, Event{Key: KeyDelete}, Context{HasValue: true})
	assert.False(t, handled)
}

func TestTypeAheadOnClosedSearchable(t *testing.T) {
	act, handled := resolve(t, Event{Key: "a"}, Context{Searchable: true})
	assert.True(t, handled)
	assert.Equal(t, ActionTypeAhead, act)

	// Modifier chords are not type-ahead.
	_, handled = resolve(t, Event{Key: "a", Ctrl: true}, Context{Searchable: true})
	assert.False(t, handled)

	// Non-searchable selects ignore characters.
	_, handled = resolve(t, Event{Key: "a"}, Context{})
	assert.False(t, handled)

	// Open selects route characters to the input, not type-ahead.
	_, handled = resolve(t, Event{Key: "a"}, Context{Open: true, Searchable: true})
	assert.False(t, handled)
}

func TestDisabledAndComposingIgnoreEverything(t *testing.T) {
	_, handled := resolve(t, Event{Key: KeyEnter}, Context{Disabled: true})
	assert.False(t, handled)

	_, handled = resolve(t, Event{Key: KeyEnter}, Context{Open: true, Composing: true})
	assert.False(t, handled, "IME composition must pass through untouched")
}
