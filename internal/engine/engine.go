// Package engine is the headless select state machine: one instance per
// logical widget, owning the canonical state and exposing the operation
// surface host bindings call into. Hosts subscribe for full state
// snapshots and receive typed events for the moments in between.
package engine

import (
	"context"
	"sync"

	"selectkit/internal/filter"
	"selectkit/internal/keymap"
	"selectkit/internal/loader"
	"selectkit/internal/option"
)

// Engine drives one select widget. All operations are safe for use from
// the host thread plus the engine's own load completions; state is
// guarded by a mutex and snapshots are value copies.
type Engine[T comparable] struct {
	mu    sync.Mutex
	cfg   Config[T]
	state State[T]

	em        *emitter
	subs      map[int]func(State[T])
	nextSub   int
	resolver  *keymap.Resolver
	debouncer *loader.Debouncer

	loadCancel context.CancelFunc

	baseID    string
	dismissID uint64
	destroyed bool
}

// New constructs an engine from functional options.
func New[T comparable](opts ...Opt[T]) *Engine[T] {
	var cfg Config[T]
	for _, o := range opts {
		o(&cfg)
	}
	cfg.normalize()

	e := &Engine[T]{
		cfg:       cfg,
		em:        newEmitter(cfg.onPanic),
		subs:      make(map[int]func(State[T])),
		resolver:  keymap.NewResolver(cfg.bindings),
		debouncer: loader.NewDebouncer(cfg.debounce),
	}

	e.baseID = cfg.id
	if e.baseID == "" {
		e.baseID = cfg.idGen()
	}

	var n option.Normalized[T]
	if len(cfg.groups) > 0 {
		n = option.NormalizeGroups(cfg.groups)
	} else {
		n = option.Normalize(cfg.options)
	}
	e.state = State[T]{
		Options:          n.Flat,
		Grouped:          n.Grouped,
		HasGroups:        n.HasGroups,
		Filtered:         n.Flat,
		HighlightedIndex: -1,
		Disabled:         cfg.disabled,
	}
	e.initValue()

	if cfg.contains != nil {
		e.dismissID = dismissals.register(cfg.contains, e.Close)
	}
	return e
}

func (e *Engine[T]) initValue() {
	if e.cfg.multiple {
		e.state.Values = []T{}
		e.state.SelectedOptions = []option.Option[T]{}
		if e.cfg.hasValue {
			for _, v := range e.cfg.value {
				if opt, ok := option.FindByValue(e.state.Options, v); ok {
					e.state.SelectedOptions = option.Add(e.state.SelectedOptions, opt, e.cfg.maxSelected)
				}
			}
			e.state.Values = option.Values(e.state.SelectedOptions)
		}
		return
	}
	if e.cfg.hasValue && len(e.cfg.value) > 0 {
		v := e.cfg.value[0]
		e.state.Values = []T{v}
		if opt, ok := option.FindByValue(e.state.Options, v); ok {
			e.state.SelectedOptions = []option.Option[T]{opt}
		}
	}
}

// BaseID returns the instance's base id for derived DOM ids.
func (e *Engine[T]) BaseID() string { return e.baseID }

// State returns the current snapshot.
func (e *Engine[T]) State() State[T] {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Subscribe registers fn to receive every state snapshot after a change.
// The returned function unsubscribes.
func (e *Engine[T]) Subscribe(fn func(State[T])) func() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.nextSub++
	id := e.nextSub
	e.subs[id] = fn
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.subs, id)
	}
}

// On registers an event handler for one event type and returns its
// unsubscribe function.
func (e *Engine[T]) On(t EventType, fn Handler) func() {
	return e.em.on(t, fn)
}

// publish notifies subscribers with the snapshot, then emits events.
// Never called with the state lock held.
func (e *Engine[T]) publish(snap State[T], events ...Event) {
	e.mu.Lock()
	subs := make([]func(State[T]), 0, len(e.subs))
	for _, fn := range e.subs {
		subs = append(subs, fn)
	}
	e.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
	for _, ev := range events {
		e.em.emit(ev)
	}
}

// Open opens the menu and seeds the highlight: the first selected
// option when one is visible, otherwise the first enabled option.
// No-op while disabled or already open.
func (e *Engine[T]) Open() {
	e.mu.Lock()
	if e.state.Disabled || e.state.Open {
		e.mu.Unlock()
		return
	}
	e.state.Open = true
	e.state.HighlightedIndex = e.initialHighlightLocked()
	snap := e.state
	e.mu.Unlock()
	e.publish(snap, OpenEvent{})
}

func (e *Engine[T]) initialHighlightLocked() int {
	for _, sel := range e.state.SelectedOptions {
		if i := option.FindIndex(e.state.Filtered, sel.Value); i >= 0 {
			return i
		}
	}
	return firstEnabled(e.state.Filtered)
}

// Close closes the menu, clearing the search text and highlight and
// restoring the unfiltered list. No-op when already closed.
func (e *Engine[T]) Close() {
	e.mu.Lock()
	if !e.state.Open {
		e.mu.Unlock()
		return
	}
	e.state.Open = false
	e.state.Search = ""
	e.state.Filtered = e.state.Options
	e.state.HighlightedIndex = -1
	snap := e.state
	e.mu.Unlock()
	e.publish(snap, CloseEvent{})
}

// ToggleOpen opens a closed menu and closes an open one.
func (e *Engine[T]) ToggleOpen() {
	if e.State().Open {
		e.Close()
	} else {
		e.Open()
	}
}

// SelectOption commits opt. Single mode replaces the value; multi mode
// toggles membership subject to the max/min bounds. Disabled options and
// bound violations are silent no-ops.
func (e *Engine[T]) SelectOption(opt option.Option[T]) {
	e.mu.Lock()
	if e.state.Disabled || opt.Disabled {
		e.mu.Unlock()
		return
	}

	var events []Event
	if e.cfg.multiple {
		was := option.Contains(e.state.SelectedOptions, opt)
		next := option.Toggle(e.state.SelectedOptions, opt, e.cfg.minSelected, e.cfg.maxSelected)
		if len(next) == len(e.state.SelectedOptions) {
			e.mu.Unlock()
			return
		}
		e.state.SelectedOptions = next
		e.state.Values = option.Values(next)
		action := ChangeSelect
		if was {
			action = ChangeDeselect
		}
		events = append(events, ChangeEvent[T]{
			Action:   action,
			Option:   opt,
			Values:   e.state.Values,
			Selected: e.state.SelectedOptions,
		})
	} else {
		e.state.SelectedOptions = []option.Option[T]{opt}
		e.state.Values = []T{opt.Value}
		events = append(events, ChangeEvent[T]{
			Action:   ChangeSelect,
			Option:   opt,
			Values:   e.state.Values,
			Selected: e.state.SelectedOptions,
		})
	}

	events = append(events, e.afterSelectLocked()...)
	snap := e.state
	e.mu.Unlock()
	e.publish(snap, events...)
}

// afterSelectLocked applies closeOnSelect/blurOnSelect and returns the
// extra events they produce.
func (e *Engine[T]) afterSelectLocked() []Event {
	var events []Event
	if e.cfg.closeOnSelect && e.state.Open {
		e.state.Open = false
		e.state.Search = ""
		e.state.Filtered = e.state.Options
		e.state.HighlightedIndex = -1
		events = append(events, CloseEvent{})
	}
	if e.cfg.blurOnSelect && e.state.Focused {
		e.state.Focused = false
		events = append(events, BlurEvent{})
	}
	return events
}

// DeselectOption removes opt from the selection. Single mode clears the
// value; multi mode is a no-op when removal would violate minSelected.
func (e *Engine[T]) DeselectOption(opt option.Option[T]) {
	if !e.cfg.multiple {
		e.mu.Lock()
		selected := e.state.IsSelected(opt.Value)
		e.mu.Unlock()
		if selected {
			e.ClearValue()
		}
		return
	}

	e.mu.Lock()
	if e.state.Disabled {
		e.mu.Unlock()
		return
	}
	next := option.Remove(e.state.SelectedOptions, opt, e.cfg.minSelected)
	if len(next) == len(e.state.SelectedOptions) {
		e.mu.Unlock()
		return
	}
	e.state.SelectedOptions = next
	e.state.Values = option.Values(next)
	ev := ChangeEvent[T]{
		Action:   ChangeDeselect,
		Option:   opt,
		Values:   e.state.Values,
		Selected: e.state.SelectedOptions,
	}
	snap := e.state
	e.mu.Unlock()
	e.publish(snap, ev)
}

// ClearValue resets the selection to empty. No-op when nothing is
// selected.
func (e *Engine[T]) ClearValue() {
	e.mu.Lock()
	if !e.state.HasValue() {
		e.mu.Unlock()
		return
	}
	if e.cfg.multiple {
		e.state.Values = []T{}
		e.state.SelectedOptions = []option.Option[T]{}
	} else {
		e.state.Values = nil
		e.state.SelectedOptions = nil
	}
	ev := ChangeEvent[T]{
		Action:   ChangeClear,
		Values:   e.state.Values,
		Selected: e.state.SelectedOptions,
	}
	snap := e.state
	e.mu.Unlock()
	e.publish(snap, ev)
}

// SetSearchValue stores the search text immediately so the host input
// stays responsive, then runs the filter/load step, debounced when a
// debounce interval is configured.
func (e *Engine[T]) SetSearchValue(text string) {
	e.mu.Lock()
	if e.state.Disabled {
		e.mu.Unlock()
		return
	}
	e.state.Search = text
	snap := e.state
	e.mu.Unlock()
	e.publish(snap, SearchEvent{Query: text})

	e.debouncer.Do(e.runSearch)
}

// runSearch performs the deferred half of SetSearchValue with whatever
// text is current by the time the debounce fires.
func (e *Engine[T]) runSearch() {
	e.mu.Lock()
	if e.destroyed {
		e.mu.Unlock()
		return
	}
	query := e.state.Search

	if e.cfg.loadFn == nil {
		e.state.Filtered = filter.Apply(e.state.Options, query, e.cfg.filterFn)
		e.state.HighlightedIndex = -1
		if e.state.Open {
			e.state.HighlightedIndex = firstEnabled(e.state.Filtered)
		}
		snap := e.state
		e.mu.Unlock()
		e.publish(snap)
		return
	}

	// Supersede any in-flight load before starting the next one.
	if e.loadCancel != nil {
		e.loadCancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	e.loadCancel = cancel
	e.state.Loading = true
	snap := e.state
	e.mu.Unlock()
	e.publish(snap, LoadingEvent{Loading: true})

	go e.load(ctx, query)
}

// load resolves one async fetch. A load superseded by a newer query
// returns without touching state; the newer load owns the loading flag.
func (e *Engine[T]) load(ctx context.Context, query string) {
	opts, err := loader.Run(ctx, e.cfg.loadFn, query)
	if ctx.Err() != nil {
		return
	}

	e.mu.Lock()
	if e.destroyed {
		e.mu.Unlock()
		return
	}
	e.state.Loading = false
	if err != nil {
		snap := e.state
		e.mu.Unlock()
		e.publish(snap, LoadingEvent{Loading: false}, ErrorEvent{Err: err})
		return
	}
	e.replaceOptionsLocked(opts)
	e.state.Filtered = e.state.Options
	e.state.HighlightedIndex = -1
	if e.state.Open {
		e.state.HighlightedIndex = firstEnabled(e.state.Filtered)
	}
	snap := e.state
	e.mu.Unlock()
	e.publish(snap, LoadingEvent{Loading: false})
}

// replaceOptionsLocked swaps in a new option list and reconciles
// SelectedOptions against it. Values intentionally keeps entries whose
// option vanished (stale-value tolerance); only SelectedOptions drops
// them.
func (e *Engine[T]) replaceOptionsLocked(opts []option.Option[T]) {
	n := option.Normalize(opts)
	e.state.Options = n.Flat
	e.state.Grouped = n.Grouped
	e.state.HasGroups = n.HasGroups

	reconciled := make([]option.Option[T], 0, len(e.state.Values))
	for _, v := range e.state.Values {
		if opt, ok := option.FindByValue(n.Flat, v); ok {
			reconciled = append(reconciled, opt)
		}
	}
	e.state.SelectedOptions = reconciled
}

// SetOptions replaces the option list at runtime, re-applying the
// current search filter.
func (e *Engine[T]) SetOptions(opts []option.Option[T]) {
	e.mu.Lock()
	e.replaceOptionsLocked(opts)
	e.state.Filtered = filter.Apply(e.state.Options, e.state.Search, e.cfg.filterFn)
	e.state.HighlightedIndex = -1
	if e.state.Open {
		e.state.HighlightedIndex = firstEnabled(e.state.Filtered)
	}
	snap := e.state
	e.mu.Unlock()
	e.publish(snap)
}

// SetGroups replaces the option list from explicit groups.
func (e *Engine[T]) SetGroups(groups []option.Group[T]) {
	e.SetOptions(option.NormalizeGroups(groups).Flat)
}

// CreateOption invokes the configured creation callback with the given
// text, then adds the result, selects it, and clears the search. A
// missing callback or a nil result is a silent no-op; a callback error is
// returned to the caller.
func (e *Engine[T]) CreateOption(ctx context.Context, text string) error {
	e.mu.Lock()
	if !e.cfg.creatable || e.cfg.onCreate == nil || e.state.Disabled {
		e.mu.Unlock()
		return nil
	}
	e.mu.Unlock()

	created, err := e.cfg.onCreate(ctx, text)
	if err != nil {
		return err
	}
	if created == nil {
		return nil
	}
	opt := *created

	e.mu.Lock()
	if e.destroyed {
		e.mu.Unlock()
		return nil
	}
	opts := make([]option.Option[T], len(e.state.Options), len(e.state.Options)+1)
	copy(opts, e.state.Options)
	e.replaceOptionsLocked(append(opts, opt))

	var events []Event
	if e.cfg.multiple {
		next := option.Add(e.state.SelectedOptions, opt, e.cfg.maxSelected)
		if len(next) != len(e.state.SelectedOptions) {
			e.state.SelectedOptions = next
			e.state.Values = option.Values(next)
			events = append(events, ChangeEvent[T]{
				Action:   ChangeSelect,
				Option:   opt,
				Values:   e.state.Values,
				Selected: e.state.SelectedOptions,
			})
		}
	} else {
		e.state.SelectedOptions = []option.Option[T]{opt}
		e.state.Values = []T{opt.Value}
		events = append(events, ChangeEvent[T]{
			Action:   ChangeSelect,
			Option:   opt,
			Values:   e.state.Values,
			Selected: e.state.SelectedOptions,
		})
	}

	e.state.Search = ""
	e.state.Filtered = e.state.Options
	e.state.HighlightedIndex = -1
	if e.state.Open {
		e.state.HighlightedIndex = option.FindIndex(e.state.Filtered, opt.Value)
	}
	events = append(events, CreateEvent[T]{Option: opt})
	events = append(events, e.afterSelectLocked()...)
	snap := e.state
	e.mu.Unlock()
	e.publish(snap, events...)
	return nil
}

// highlightTo recomputes the highlight with compute and publishes when it
// moved.
func (e *Engine[T]) highlightTo(compute func(opts []option.Option[T], current int) int) {
	e.mu.Lock()
	if e.state.Disabled {
		e.mu.Unlock()
		return
	}
	idx := compute(e.state.Filtered, e.state.HighlightedIndex)
	if idx == e.state.HighlightedIndex {
		e.mu.Unlock()
		return
	}
	e.state.HighlightedIndex = idx
	ev := HighlightEvent[T]{Index: idx}
	if idx >= 0 {
		ev.Option = e.state.Filtered[idx]
	}
	snap := e.state
	e.mu.Unlock()
	e.publish(snap, ev)
}

// SetHighlightedIndex moves the highlight to i, settling on the nearest
// enabled option; -1 clears it.
func (e *Engine[T]) SetHighlightedIndex(i int) {
	e.highlightTo(func(opts []option.Option[T], _ int) int {
		if i < 0 {
			return -1
		}
		return nearestEnabled(opts, i)
	})
}

// HighlightNext moves down one enabled option, wrapping at the end.
func (e *Engine[T]) HighlightNext() { e.highlightTo(nextEnabled[T]) }

// HighlightPrev moves up one enabled option, wrapping at the start.
func (e *Engine[T]) HighlightPrev() { e.highlightTo(prevEnabled[T]) }

// HighlightFirst jumps to the first enabled option.
func (e *Engine[T]) HighlightFirst() {
	e.highlightTo(func(opts []option.Option[T], _ int) int { return firstEnabled(opts) })
}

// HighlightLast jumps to the last enabled option.
func (e *Engine[T]) HighlightLast() {
	e.highlightTo(func(opts []option.Option[T], _ int) int { return lastEnabled(opts) })
}

// HighlightNextPage moves down a page, clamping at the end.
func (e *Engine[T]) HighlightNextPage() {
	e.highlightTo(func(opts []option.Option[T], cur int) int {
		return pageEnabled(opts, cur, e.cfg.pageSize)
	})
}

// HighlightPrevPage moves up a page, clamping at the start.
func (e *Engine[T]) HighlightPrevPage() {
	e.highlightTo(func(opts []option.Option[T], cur int) int {
		return pageEnabled(opts, cur, -e.cfg.pageSize)
	})
}

// Focus marks the widget focused.
func (e *Engine[T]) Focus() {
	e.mu.Lock()
	if e.state.Focused || e.state.Disabled {
		e.mu.Unlock()
		return
	}
	e.state.Focused = true
	snap := e.state
	e.mu.Unlock()
	e.publish(snap, FocusEvent{})
}

// Blur marks the widget unfocused.
func (e *Engine[T]) Blur() {
	e.mu.Lock()
	if !e.state.Focused {
		e.mu.Unlock()
		return
	}
	e.state.Focused = false
	snap := e.state
	e.mu.Unlock()
	e.publish(snap, BlurEvent{})
}

// SetComposing flags IME composition; key events are passed through
// unhandled while it is set.
func (e *Engine[T]) SetComposing(composing bool) {
	e.mu.Lock()
	if e.state.Composing == composing {
		e.mu.Unlock()
		return
	}
	e.state.Composing = composing
	snap := e.state
	e.mu.Unlock()
	e.publish(snap)
}

// SetDisabled enables or disables the whole widget.
func (e *Engine[T]) SetDisabled(disabled bool) {
	e.mu.Lock()
	if e.state.Disabled == disabled {
		e.mu.Unlock()
		return
	}
	e.state.Disabled = disabled
	snap := e.state
	e.mu.Unlock()
	e.publish(snap)
}

// HandleKey resolves a key event through the binding table and performs
// the resulting action. It reports whether the event was consumed;
// unconsumed events must keep their default behavior in the host.
func (e *Engine[T]) HandleKey(ev keymap.Event) bool {
	e.mu.Lock()
	ctx := keymap.Context{
		Open:        e.state.Open,
		Multiple:    e.cfg.multiple,
		Searchable:  e.cfg.searchable,
		Clearable:   e.cfg.clearable,
		Disabled:    e.state.Disabled,
		Composing:   e.state.Composing,
		SearchEmpty: e.state.Search == "",
		HasValue:    e.state.HasValue(),
	}
	e.mu.Unlock()

	action, handled := e.resolver.Resolve(ev, ctx)
	if !handled {
		return false
	}

	switch action {
	case keymap.ActionOpen:
		e.Open()
	case keymap.ActionClose:
		e.Close()
	case keymap.ActionHighlightNext:
		e.HighlightNext()
	case keymap.ActionHighlightPrev:
		e.HighlightPrev()
	case keymap.ActionHighlightFirst:
		e.HighlightFirst()
	case keymap.ActionHighlightLast:
		e.HighlightLast()
	case keymap.ActionPageDown:
		e.HighlightNextPage()
	case keymap.ActionPageUp:
		e.HighlightPrevPage()
	case keymap.ActionSelectHighlighted:
		if opt, ok := e.State().Highlighted(); ok {
			e.SelectOption(opt)
		}
	case keymap.ActionClearSearch:
		e.SetSearchValue("")
	case keymap.ActionRemoveLastSelected:
		sel := e.State().SelectedOptions
		if len(sel) > 0 {
			e.DeselectOption(sel[len(sel)-1])
		}
	case keymap.ActionClearValue:
		e.ClearValue()
	case keymap.ActionTypeAhead:
		e.Open()
		e.SetSearchValue(ev.Key)
	}
	return true
}

// Destroy cancels the pending debounce and any in-flight load,
// unregisters outside-pointer dismissal, and drops all subscribers and
// handlers. The engine must not be used afterwards.
func (e *Engine[T]) Destroy() {
	e.mu.Lock()
	if e.destroyed {
		e.mu.Unlock()
		return
	}
	e.destroyed = true
	cancel := e.loadCancel
	e.loadCancel = nil
	e.subs = make(map[int]func(State[T]))
	e.mu.Unlock()

	e.debouncer.Cancel()
	if cancel != nil {
		cancel()
	}
	if e.dismissID != 0 {
		dismissals.unregister(e.dismissID)
	}
	e.em.clear()
}
