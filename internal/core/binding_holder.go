package core

import (
	"sync/atomic"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"pinball-hwbind/internal/types"
)

// BindingHolder publishes the active binding set. A reload resolves a new
// set off to the side and swaps it in whole; the active set is never
// mutated in place.
type BindingHolder struct {
	active atomic.Pointer[types.BindingSet]
}

// Swap installs set when it is validated and returns the set it replaced.
func (h *BindingHolder) Swap(set types.BindingSet) (types.BindingSet, error) {
	if !set.Validated {
		return types.BindingSet{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("refusing to activate unvalidated binding set " + set.ID)
	}
	previous := h.active.Swap(&set)
	if previous == nil {
		return types.BindingSet{}, nil
	}
	return *previous, nil
}

func (h *BindingHolder) Active() (types.BindingSet, bool) {
	current := h.active.Load()
	if current == nil {
		return types.BindingSet{}, false
	}
	return *current, true
}
