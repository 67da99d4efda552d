package engine

import (
	"sync"

	"go.uber.org/zap"

	"selectkit/internal/option"
)

// EventType identifies one of the fixed engine events.
type EventType string

const (
	EventChange    EventType = "change"
	EventSearch    EventType = "search"
	EventOpen      EventType = "open"
	EventClose     EventType = "close"
	EventFocus     EventType = "focus"
	EventBlur      EventType = "blur"
	EventCreate    EventType = "create"
	EventHighlight EventType = "highlight"
	EventLoading   EventType = "loading"
	EventError     EventType = "error"
)

// Event is implemented by every engine event.
type Event interface {
	Type() EventType
}

// ChangeAction tags what kind of value change a ChangeEvent carries.
type ChangeAction string

const (
	ChangeSelect   ChangeAction = "select"
	ChangeDeselect ChangeAction = "deselect"
	ChangeClear    ChangeAction = "clear"
	ChangeCreate   ChangeAction = "create"
)

// ChangeEvent is emitted when the committed value changes.
type ChangeEvent[T comparable] struct {
	Action   ChangeAction
	Option   option.Option[T] // the option the action applied to, zero for clear
	Values   []T
	Selected []option.Option[T]
}

func (e ChangeEvent[T]) Type() EventType { return EventChange }

// SearchEvent is emitted when the search text changes.
type SearchEvent struct {
	Query string
}

func (e SearchEvent) Type() EventType { return EventSearch }

// OpenEvent is emitted when the menu opens.
type OpenEvent struct{}

func (e OpenEvent) Type() EventType { return EventOpen }

// CloseEvent is emitted when the menu closes.
type CloseEvent struct{}

func (e CloseEvent) Type() EventType { return EventClose }

// FocusEvent is emitted when the widget gains focus.
type FocusEvent struct{}

func (e FocusEvent) Type() EventType { return EventFocus }

// BlurEvent is emitted when the widget loses focus.
type BlurEvent struct{}

func (e BlurEvent) Type() EventType { return EventBlur }

// CreateEvent is emitted after a caller-created option is added.
type CreateEvent[T comparable] struct {
	Option option.Option[T]
}

func (e CreateEvent[T]) Type() EventType { return EventCreate }

// HighlightEvent is emitted when the highlighted option moves.
type HighlightEvent[T comparable] struct {
	Option option.Option[T] // zero when Index is -1
	Index  int
}

func (e HighlightEvent[T]) Type() EventType { return EventHighlight }

// LoadingEvent is emitted when async loading starts or finishes.
type LoadingEvent struct {
	Loading bool
}

func (e LoadingEvent) Type() EventType { return EventLoading }

// ErrorEvent is emitted when a caller-supplied loader fails.
type ErrorEvent struct {
	Err error
}

func (e ErrorEvent) Type() EventType { return EventError }

// Handler receives engine events.
type Handler func(Event)

// FailurePolicy decides what happens when an event handler panics.
// Delivery to remaining handlers always continues.
type FailurePolicy func(ev Event, recovered any)

// logFailure is the default policy: log and move on.
func logFailure(logger *zap.Logger) FailurePolicy {
	return func(ev Event, recovered any) {
		logger.Error("event handler panicked",
			zap.String("event", string(ev.Type())),
			zap.Any("panic", recovered))
	}
}

type handlerEntry struct {
	id int
	fn Handler
}

// emitter is a typed publish/subscribe dispatcher. Dispatch is
// synchronous and in subscription order; a panicking handler is reported
// to the failure policy and never aborts the other handlers.
type emitter struct {
	mu       sync.Mutex
	nextID   int
	handlers map[EventType][]handlerEntry
	onPanic  FailurePolicy
}

func newEmitter(onPanic FailurePolicy) *emitter {
	return &emitter{
		handlers: make(map[EventType][]handlerEntry),
		onPanic:  onPanic,
	}
}

// on registers a handler and returns its unsubscribe function.
func (em *emitter) on(t EventType, fn Handler) func() {
	em.mu.Lock()
	defer em.mu.Unlock()
	em.nextID++
	id := em.nextID
	em.handlers[t] = append(em.handlers[t], handlerEntry{id: id, fn: fn})
	return func() {
		em.mu.Lock()
		defer em.mu.Unlock()
		entries := em.handlers[t]
		for i, e := range entries {
			if e.id == id {
				em.handlers[t] = append(entries[:i], entries[i+1:]...)
				return
			}
		}
	}
}

// emit delivers ev to every handler registered for its type.
func (em *emitter) emit(ev Event) {
	em.mu.Lock()
	entries := make([]handlerEntry, len(em.handlers[ev.Type()]))
	copy(entries, em.handlers[ev.Type()])
	em.mu.Unlock()

	for _, e := range entries {
		em.call(ev, e.fn)
	}
}

func (em *emitter) call(ev Event, fn Handler) {
	defer func() {
		if r := recover(); r != nil && em.onPanic != nil {
			em.onPanic(ev, r)
		}
	}()
	fn(ev)
}

// clear drops every handler. Used by Destroy.
func (em *emitter) clear() {
	em.mu.Lock()
	defer em.mu.Unlock()
	em.handlers = make(map[EventType][]handlerEntry)
}
