package physics

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp/v2"
)

// DrawDebug draws all shapes of the space on top of the target image.
// The transform maps world coordinates to screen coordinates.
func DrawDebug(target *ebiten.Image, space *Space, transform ebiten.GeoM) {
	cp.DrawSpace(space.Raw(), debugImage{Image: target, Transform: transform})
}

type debugImage struct {
	Image     *ebiten.Image
	Transform ebiten.GeoM
}

func (d debugImage) apply(v cp.Vector) (float32, float32) {
	x, y := d.Transform.Apply(v.X, v.Y)
	return float32(x), float32(y)
}

func (d debugImage) draw(p vector.Path, outline cp.FColor, fill cp.FColor) {
	vector.FillPath(d.Image, &p, colorOf(fill), true, vector.FillRuleNonZero)
	vector.StrokePath(d.Image, &p, colorOf(outline), true, &vector.StrokeOptions{Width: 1})
}

func colorOf(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(c.R * 255),
		G: uint8(c.G * 255),
		B: uint8(c.B * 255),
		A: uint8(c.A * 255),
	}
}

func (d debugImage) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	x, y := d.apply(pos)

	// scale the radius with the x axis of the transform
	sx, _ := d.Transform.Apply(radius, 0)
	ox, _ := d.Transform.Apply(0, 0)
	scaled := float32(math.Abs(sx - ox))

	var p vector.Path
	p.Arc(x, y, scaled, 0, math.Pi*2, vector.Clockwise)
	p.MoveTo(x, y)
	p.LineTo(x+float32(math.Cos(angle))*scaled, y-float32(math.Sin(angle))*scaled)

	d.draw(p, outline, fill)
}

func (d debugImage) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	ax, ay := d.apply(a)
	bx, by := d.apply(b)

	var p vector.Path
	p.MoveTo(ax, ay)
	p.LineTo(bx, by)
	d.draw(p, fill, cp.FColor{})
}

func (d debugImage) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	// fat segments are drawn as thin lines, the radius is only a few pixels
	d.DrawSegment(a, b, outline, data)
}

func (d debugImage) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count == 0 {
		return
	}

	var p vector.Path

	x, y := d.apply(verts[0])
	p.MoveTo(x, y)

	for _, vert := range verts[1:count] {
		x, y := d.apply(vert)
		p.LineTo(x, y)
	}

	p.Close()

	d.draw(p, outline, fill)
}

func (d debugImage) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	d.DrawCircle(pos, 0, size/2, fill, fill, data)
}

func (d debugImage) Flags() uint {
	return 0
}

func (d debugImage) OutlineColor() cp.FColor {
	return cp.FColor{R: 1, G: 1, B: 1, A: 1}
}

func (d debugImage) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if shape.UserData != nil {
		// tagged shapes take part in collision callbacks
		return cp.FColor{R: 1, G: 0.5, A: 0.5}
	}

	return cp.FColor{G: 1, A: 0.5}
}

func (d debugImage) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.75, A: 1}
}

func (d debugImage) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, A: 1}
}

func (d debugImage) Data() interface{} {
	return nil
}
