package dumpsort

import (
	"fmt"

	"github.com/pgschema/pgdumpsort/internal/catalog"
)

// FatalError reports an invariant violation in the input (§7 class 1):
// an out-of-range dumpId, an out-of-range dependency target, or
// internal corruption detected mid-sort. Callers should abort the run.
type FatalError struct {
	Reason string
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("dumpsort: invalid input: %s", e.Reason)
}

func fatalf(format string, args ...any) error {
	return &FatalError{Reason: fmt.Sprintf(format, args...)}
}

// Warning is a non-fatal diagnostic emitted when a cycle could not be
// matched to a known repair pattern, or was resolved only by the
// catch-all circular-FK / arbitrary-break patterns (§7 class 3).
type Warning struct {
	Message string
	Objects []*catalog.Object
}
