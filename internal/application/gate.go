package application

import "context"

// Gate is a counting admission gate bounding the number of in-flight
// operations. It is shared between the metadata-extraction fanout and the
// rename fanout so a folder with thousands of files cannot exhaust file
// handles. No ordering is guaranteed among admitted operations.
type Gate struct {
	slots chan struct{}
}

// NewGate creates a gate admitting at most width concurrent operations.
// Widths below one are clamped to one.
func NewGate(width int) *Gate {
	if width < 1 {
		width = 1
	}
	return &Gate{slots: make(chan struct{}, width)}
}

// Acquire blocks until a slot frees. It fails only when ctx is done.
func (g *Gate) Acquire(ctx context.Context) error {
	select {
	case g.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release frees a slot taken by Acquire. Callers must release exactly once
// per successful Acquire, on every exit path.
func (g *Gate) Release() {
	<-g.slots
}

// Width returns the gate's admission capacity.
func (g *Gate) Width() int {
	return cap(g.slots)
}
