package focus

import "github.com/philipparndt/arfocus/pkg/geometry"

// Corner is the corner of the indicator square a segment belongs to
type Corner int

const (
	TopLeft Corner = iota
	TopRight
	BottomLeft
	BottomRight
)

func (c Corner) String() string {
	switch c {
	case TopLeft:
		return "top-left"
	case TopRight:
		return "top-right"
	case BottomLeft:
		return "bottom-left"
	case BottomRight:
		return "bottom-right"
	}
	return "unknown"
}

// Alignment is the orientation of a segment along the square's border
type Alignment int

const (
	Horizontal Alignment = iota
	Vertical
)

func (a Alignment) String() string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Direction is the way a segment moves when the indicator opens
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "unknown"
}

// vector is the unit offset in the indicator's local XZ plane. Up on the
// square is local -Z.
func (d Direction) vector() geometry.Vector3 {
	switch d {
	case Up:
		return geometry.NewVector3(0, 0, -1)
	case Down:
		return geometry.NewVector3(0, 0, 1)
	case Left:
		return geometry.NewVector3(-1, 0, 0)
	default:
		return geometry.NewVector3(1, 0, 0)
	}
}

// Square dimensions in indicator units, before the indicator scale
const (
	SquareSize    = 0.17
	SegmentLength = SquareSize / 2
)

// Segment is one of the eight border pieces of the indicator square
type Segment struct {
	Corner    Corner
	Alignment Alignment
}

var openDirections = [4][2]Direction{
	TopLeft:     {Horizontal: Left, Vertical: Up},
	TopRight:    {Horizontal: Right, Vertical: Up},
	BottomLeft:  {Horizontal: Left, Vertical: Down},
	BottomRight: {Horizontal: Right, Vertical: Down},
}

// Segments returns all eight segments, two per corner
func Segments() []Segment {
	out := make([]Segment, 0, 8)
	for c := TopLeft; c <= BottomRight; c++ {
		out = append(out, Segment{Corner: c, Alignment: Horizontal}, Segment{Corner: c, Alignment: Vertical})
	}
	return out
}

// OpenDirection returns the direction the segment moves when opening
func (s Segment) OpenDirection() Direction {
	return openDirections[s.Corner][s.Alignment]
}

// Home returns the segment center on the closed square
func (s Segment) Home() geometry.Vector3 {
	sx, sz := -1.0, -1.0
	if s.Corner == TopRight || s.Corner == BottomRight {
		sx = 1
	}
	if s.Corner == BottomLeft || s.Corner == BottomRight {
		sz = 1
	}

	half := SquareSize / 2
	if s.Alignment == Horizontal {
		return geometry.NewVector3(sx*SegmentLength/2, 0, sz*half)
	}
	return geometry.NewVector3(sx*half, 0, sz*SegmentLength/2)
}

// Offset returns the displacement from Home for an openness in [0, 1]
func (s Segment) Offset(openness float64) geometry.Vector3 {
	return s.OpenDirection().vector().Mul(openness * SegmentLength / 2)
}

// Position returns the segment center for an openness in [0, 1]
func (s Segment) Position(openness float64) geometry.Vector3 {
	return s.Home().Add(s.Offset(openness))
}
