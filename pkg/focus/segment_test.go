package focus

import (
	"testing"

	"github.com/philipparndt/arfocus/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentsAreUnique(t *testing.T) {
	segments := Segments()
	require.Len(t, segments, 8)

	seen := make(map[Segment]bool)
	for _, s := range segments {
		assert.False(t, seen[s], "duplicate segment %v", s)
		seen[s] = true
	}
}

func TestSegmentOpenDirections(t *testing.T) {
	cases := []struct {
		corner    Corner
		alignment Alignment
		want      Direction
	}{
		{TopLeft, Horizontal, Left},
		{TopLeft, Vertical, Up},
		{TopRight, Horizontal, Right},
		{TopRight, Vertical, Up},
		{BottomLeft, Horizontal, Left},
		{BottomLeft, Vertical, Down},
		{BottomRight, Horizontal, Right},
		{BottomRight, Vertical, Down},
	}
	for _, tc := range cases {
		s := Segment{Corner: tc.corner, Alignment: tc.alignment}
		assert.Equal(t, tc.want, s.OpenDirection(), "%v %v", tc.corner, tc.alignment)
	}
}

func TestSegmentOpeningMovesOutward(t *testing.T) {
	for _, s := range Segments() {
		assert.Equal(t, geometry.Vector3{}, s.Offset(0))

		closed := s.Position(0)
		open := s.Position(1)
		// Every segment moves away from the square's center
		assert.Greater(t, open.Length(), closed.Length(), "%v %v", s.Corner, s.Alignment)
		assert.InDelta(t, SegmentLength/2, s.Offset(1).Length(), 1e-12)
	}
}

func TestSegmentHomeOnBorder(t *testing.T) {
	s := Segment{Corner: TopLeft, Alignment: Horizontal}
	assert.Equal(t, geometry.NewVector3(-SegmentLength/2, 0, -SquareSize/2), s.Home())

	s = Segment{Corner: BottomRight, Alignment: Vertical}
	assert.Equal(t, geometry.NewVector3(SquareSize/2, 0, SegmentLength/2), s.Home())
}
