package physics

import (
	"sync"

	"github.com/Carmen-Shannon/umbra-go/common"
)

// debugDraw is the implementation of the DebugDraw interface.
type debugDraw struct {
	mu    *sync.Mutex
	lines []common.LineSegment
	dirty bool
}

// DebugDraw defines the interface for the physics debug line accumulator.
// Simulation code adds world-space line segments as it steps; the renderer's
// debug pass uploads the accumulated list only when IsDirty reports new data,
// so an unchanged line buffer is never re-uploaded.
type DebugDraw interface {
	// AddLine appends a debug line segment and marks the accumulator dirty.
	//
	// Parameters:
	//   - line: the line segment to append
	AddLine(line common.LineSegment)

	// Lines returns the accumulated line segments and clears the dirty flag.
	// The returned slice is a snapshot owned by the caller.
	//
	// Returns:
	//   - []common.LineSegment: the accumulated lines
	Lines() []common.LineSegment

	// IsDirty reports whether lines were added since the last Lines call.
	//
	// Returns:
	//   - bool: true if new line data is pending
	IsDirty() bool

	// Clear drops every accumulated line without marking the accumulator
	// dirty.
	Clear()
}

var _ DebugDraw = &debugDraw{}

// NewDebugDraw creates an empty debug line accumulator.
//
// Returns:
//   - DebugDraw: the new accumulator
func NewDebugDraw() DebugDraw {
	return &debugDraw{mu: &sync.Mutex{}}
}

func (d *debugDraw) AddLine(line common.LineSegment) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lines = append(d.lines, line)
	d.dirty = true
}

func (d *debugDraw) Lines() []common.LineSegment {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dirty = false
	out := make([]common.LineSegment, len(d.lines))
	copy(out, d.lines)
	return out
}

func (d *debugDraw) IsDirty() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dirty
}

func (d *debugDraw) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lines = d.lines[:0]
}
