package engine

import (
	"context"
	"time"

	"go.uber.org/zap"

	"selectkit/internal/filter"
	"selectkit/internal/keymap"
	"selectkit/internal/loader"
	"selectkit/internal/option"
)

// CreateFunc builds a new option from search text. Returning a nil option
// (with a nil error) means "nothing to create" and the operation is a
// silent no-op.
type CreateFunc[T comparable] func(ctx context.Context, text string) (*option.Option[T], error)

// Config is the normalized, immutable-per-instance behavior bag. Build it
// through New's functional options; zero values fall back to the defaults
// documented on each option.
type Config[T comparable] struct {
	options []option.Option[T]
	groups  []option.Group[T]

	value    []T
	hasValue bool

	multiple   bool
	disabled   bool
	searchable bool
	clearable  bool
	required   bool

	closeOnSelect    bool
	closeOnSelectSet bool
	blurOnSelect     bool

	maxSelected int
	minSelected int

	creatable bool
	onCreate  CreateFunc[T]

	filterFn filter.Func[T]
	loadFn   loader.Func[T]
	debounce time.Duration

	pageSize int

	id    string
	idGen func() string

	contains func(target any) bool

	bindings []keymap.Binding
	logger   *zap.Logger
	onPanic  FailurePolicy
}

func (c *Config[T]) normalize() {
	if !c.closeOnSelectSet {
		c.closeOnSelect = !c.multiple
	}
	if c.filterFn == nil {
		c.filterFn = filter.Substring[T]
	}
	if c.pageSize <= 0 {
		c.pageSize = 10
	}
	if c.idGen == nil {
		c.idGen = NextID
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	if c.onPanic == nil {
		c.onPanic = logFailure(c.logger)
	}
}

// Opt configures an engine at construction.
type Opt[T comparable] func(*Config[T])

// WithOptions sets the initial flat option list.
func WithOptions[T comparable](opts []option.Option[T]) Opt[T] {
	return func(c *Config[T]) { c.options = opts }
}

// WithGroups sets the initial option list from explicit groups.
func WithGroups[T comparable](groups []option.Group[T]) Opt[T] {
	return func(c *Config[T]) { c.groups = groups }
}

// WithValue sets the initial committed value(s).
func WithValue[T comparable](values ...T) Opt[T] {
	return func(c *Config[T]) {
		c.value = values
		c.hasValue = true
	}
}

// WithMultiple switches the engine to multi-select mode.
func WithMultiple[T comparable]() Opt[T] {
	return func(c *Config[T]) { c.multiple = true }
}

// WithDisabled constructs the engine disabled.
func WithDisabled[T comparable]() Opt[T] {
	return func(c *Config[T]) { c.disabled = true }
}

// WithSearchable enables the search input.
func WithSearchable[T comparable]() Opt[T] {
	return func(c *Config[T]) { c.searchable = true }
}

// WithClearable enables clearing the whole value (clear button, Delete).
func WithClearable[T comparable]() Opt[T] {
	return func(c *Config[T]) { c.clearable = true }
}

// WithRequired marks the widget required for the aria bundle.
func WithRequired[T comparable]() Opt[T] {
	return func(c *Config[T]) { c.required = true }
}

// WithCloseOnSelect overrides the default close-on-select behavior
// (default: close in single mode, stay open in multi mode).
func WithCloseOnSelect[T comparable](close bool) Opt[T] {
	return func(c *Config[T]) {
		c.closeOnSelect = close
		c.closeOnSelectSet = true
	}
}

// WithBlurOnSelect blurs the widget after a selection.
func WithBlurOnSelect[T comparable]() Opt[T] {
	return func(c *Config[T]) { c.blurOnSelect = true }
}

// WithMaxSelected bounds the selection size in multi mode. Zero means
// unbounded.
func WithMaxSelected[T comparable](max int) Opt[T] {
	return func(c *Config[T]) { c.maxSelected = max }
}

// WithMinSelected prevents deselecting below min in multi mode.
func WithMinSelected[T comparable](min int) Opt[T] {
	return func(c *Config[T]) { c.minSelected = min }
}

// WithCreatable enables option creation from search text.
func WithCreatable[T comparable](fn CreateFunc[T]) Opt[T] {
	return func(c *Config[T]) {
		c.creatable = true
		c.onCreate = fn
	}
}

// WithFilter replaces the default case-insensitive substring filter.
func WithFilter[T comparable](fn filter.Func[T]) Opt[T] {
	return func(c *Config[T]) { c.filterFn = fn }
}

// WithLoader installs an async option loader driven by the search text.
func WithLoader[T comparable](fn loader.Func[T]) Opt[T] {
	return func(c *Config[T]) { c.loadFn = fn }
}

// WithSearchDebounce delays the filter/load step after a keystroke.
func WithSearchDebounce[T comparable](d time.Duration) Opt[T] {
	return func(c *Config[T]) { c.debounce = d }
}

// WithPageSize sets the PageUp/PageDown jump distance (default 10).
func WithPageSize[T comparable](n int) Opt[T] {
	return func(c *Config[T]) { c.pageSize = n }
}

// WithID fixes the base id instead of generating one.
func WithID[T comparable](id string) Opt[T] {
	return func(c *Config[T]) { c.id = id }
}

// WithIDGenerator injects the id generator used when no fixed id is set.
func WithIDGenerator[T comparable](gen func() string) Opt[T] {
	return func(c *Config[T]) { c.idGen = gen }
}

// WithContains registers the engine for outside-pointer dismissal with
// the given containment predicate (true when the target is inside the
// widget's owned region).
func WithContains[T comparable](contains func(target any) bool) Opt[T] {
	return func(c *Config[T]) { c.contains = contains }
}

// WithBindings replaces the default key binding table.
func WithBindings[T comparable](bindings []keymap.Binding) Opt[T] {
	return func(c *Config[T]) { c.bindings = bindings }
}

// WithLogger sets the engine logger (default: no-op).
func WithLogger[T comparable](l *zap.Logger) Opt[T] {
	return func(c *Config[T]) { c.logger = l }
}

// WithFailurePolicy overrides how event-handler panics are reported.
func WithFailurePolicy[T comparable](p FailurePolicy) Opt[T] {
	return func(c *Config[T]) { c.onPanic = p }
}
