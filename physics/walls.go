package physics

import (
	"github.com/jakecoffman/cp/v2"
	"github.com/oliverbestmann/play/gm"
)

// Walls holds the static boundary segments around the visible screen.
// They are created once and never rebuilt.
type Walls struct {
	Body   *cp.Body
	Top    *cp.Shape
	Bottom *cp.Shape
	Left   *cp.Shape
	Right  *cp.Shape
}

// NewWalls creates four segments along the edges of a screen of the given
// size, centered at the origin, and adds them to the space.
func NewWalls(space *Space, size gm.Vec, thickness float64) Walls {
	body := cp.NewStaticBody()

	hw, hh := size.X/2, size.Y/2

	segment := func(a, b gm.Vec) *cp.Shape {
		shape := cp.NewSegment(body, cpVecOf(a), cpVecOf(b), thickness)
		shape.SetElasticity(1)
		shape.SetFriction(0)
		return shape
	}

	walls := Walls{
		Body:   body,
		Top:    segment(gm.VecOf(-hw, hh), gm.VecOf(hw, hh)),
		Bottom: segment(gm.VecOf(-hw, -hh), gm.VecOf(hw, -hh)),
		Left:   segment(gm.VecOf(-hw, -hh), gm.VecOf(-hw, hh)),
		Right:  segment(gm.VecOf(hw, -hh), gm.VecOf(hw, hh)),
	}

	space.Add(body, nil)
	for _, shape := range walls.Shapes() {
		space.Add(nil, shape)
	}

	return walls
}

// Shapes returns the segments in the order top, bottom, left, right.
func (w Walls) Shapes() []*cp.Shape {
	return []*cp.Shape{w.Top, w.Bottom, w.Left, w.Right}
}
