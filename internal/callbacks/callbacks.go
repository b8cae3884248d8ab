// Package callbacks wires page controls to server-side handlers. A handler is
// registered against the output property it computes and the input
// properties it reads; Dispatch runs it with the current input values.
package callbacks

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

var (
	ErrUnknownOutput   = errors.New("no callback registered for output")
	ErrDuplicateOutput = errors.New("output already has a callback")
	ErrBadSignal       = errors.New("signal must be written as id.property")
)

// Signal names one property of one page control, e.g. teams-dropdown.value.
type Signal struct {
	ID       string
	Property string
}

func (s Signal) String() string {
	return s.ID + "." + s.Property
}

// ParseSignal splits "id.property" at the last dot.
func ParseSignal(s string) (Signal, error) {
	i := strings.LastIndex(s, ".")
	if i <= 0 || i == len(s)-1 {
		return Signal{}, fmt.Errorf("%w: %q", ErrBadSignal, s)
	}
	return Signal{ID: s[:i], Property: s[i+1:]}, nil
}

// Handler receives input values in registration order.
type Handler func(args []string) (any, error)

type callback struct {
	inputs  []Signal
	handler Handler
}

type Registry struct {
	mu        sync.RWMutex
	callbacks map[Signal]callback
}

func NewRegistry() *Registry {
	return &Registry{
		callbacks: make(map[Signal]callback),
	}
}

func (r *Registry) Register(output Signal, inputs []Signal, h Handler) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.callbacks[output]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateOutput, output)
	}
	in := make([]Signal, len(inputs))
	copy(in, inputs)
	r.callbacks[output] = callback{inputs: in, handler: h}
	return nil
}

// Inputs returns the signals the output's callback reads.
func (r *Registry) Inputs(output Signal) ([]Signal, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cb, ok := r.callbacks[output]
	if !ok {
		return nil, false
	}
	in := make([]Signal, len(cb.inputs))
	copy(in, cb.inputs)
	return in, true
}

// Outputs lists registered outputs sorted by name.
func (r *Registry) Outputs() []Signal {
	r.mu.RLock()
	defer r.mu.RUnlock()
	outs := make([]Signal, 0, len(r.callbacks))
	for s := range r.callbacks {
		outs = append(outs, s)
	}
	sort.Slice(outs, func(i, j int) bool { return outs[i].String() < outs[j].String() })
	return outs
}

// Dispatch runs the callback for output on the calling goroutine. Inputs
// missing from state are passed as empty strings.
func (r *Registry) Dispatch(output Signal, state map[Signal]string) (any, error) {
	r.mu.RLock()
	cb, ok := r.callbacks[output]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOutput, output)
	}

	args := make([]string, len(cb.inputs))
	for i, in := range cb.inputs {
		args[i] = state[in]
	}
	return cb.handler(args)
}
