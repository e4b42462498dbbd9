package physics

import (
	"testing"

	"github.com/Carmen-Shannon/umbra-go/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddLineMarksDirty(t *testing.T) {
	d := NewDebugDraw()
	assert.False(t, d.IsDirty())

	d.AddLine(common.LineSegment{
		From:  [3]float32{0, 0, 0},
		To:    [3]float32{1, 0, 0},
		Color: common.Color{1, 0, 0, 1},
	})
	assert.True(t, d.IsDirty())
}

func TestLinesSnapshotClearsDirtyOnly(t *testing.T) {
	d := NewDebugDraw()
	d.AddLine(common.LineSegment{To: [3]float32{1, 0, 0}})
	d.AddLine(common.LineSegment{To: [3]float32{0, 1, 0}})

	lines := d.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, [3]float32{1, 0, 0}, lines[0].To)

	// Reading clears the dirty flag but keeps the accumulated lines, so an
	// unchanged buffer is never re-uploaded yet can still be redrawn.
	assert.False(t, d.IsDirty())
	assert.Len(t, d.Lines(), 2)

	d.AddLine(common.LineSegment{To: [3]float32{0, 0, 1}})
	assert.True(t, d.IsDirty())
	assert.Len(t, d.Lines(), 3)
}

func TestClearDropsPendingLines(t *testing.T) {
	d := NewDebugDraw()
	d.AddLine(common.LineSegment{To: [3]float32{1, 1, 1}})

	d.Clear()
	assert.Empty(t, d.Lines())
}
