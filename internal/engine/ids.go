package engine

import (
	"fmt"
	"sync/atomic"
)

// DOM-facing ids derive from a per-instance base id. The default base
// comes from a process-wide counter; callers can inject their own
// generator or reset the counter for deterministic tests.

var idCounter atomic.Uint64

// NextID returns the next generated base id, "selectkit-<n>".
func NextID() string {
	return fmt.Sprintf("selectkit-%d", idCounter.Add(1))
}

// ResetIDCounter rewinds the process-wide id counter. Test helper.
func ResetIDCounter() {
	idCounter.Store(0)
}

func triggerID(base string) string        { return base + "-trigger" }
func inputID(base string) string          { return base + "-input" }
func menuID(base string) string           { return base + "-menu" }
func optionID(base string, i int) string  { return fmt.Sprintf("%s-option-%d", base, i) }
func groupID(base string, i int) string   { return fmt.Sprintf("%s-group-%d", base, i) }
