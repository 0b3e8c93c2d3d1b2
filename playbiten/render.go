package playbiten

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/oliverbestmann/play"
	"github.com/oliverbestmann/play/gm"
	"github.com/oliverbestmann/play/physics"
)

var background = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// DrawWorld draws all visible actors in creation order.
func DrawWorld(screen *ebiten.Image, world *play.World) {
	screen.Fill(background)

	transform := WorldTransform(world.Config().ScreenSize())

	for actor := range world.Actors() {
		if actor.IsHidden() {
			continue
		}

		drawActor(screen, actor, transform)
	}
}

// DrawDebug draws the physics shapes on top of the screen.
func DrawDebug(screen *ebiten.Image, world *play.World) {
	physics.DrawDebug(screen, world.Space(), WorldTransform(world.Config().ScreenSize()))
}

func drawActor(screen *ebiten.Image, actor *play.Actor, transform ebiten.GeoM) {
	geom := actor.Geometry()

	var path vector.Path

	switch geom.Kind {
	case physics.ShapeCircle:
		x, y := transform.Apply(actor.X(), actor.Y())
		path.Arc(float32(x), float32(y), float32(geom.Radius), 0, 2*math.Pi, vector.Clockwise)

	default:
		corners := boxCorners(actor.Position(), geom.Width, geom.Height, gm.DegToRad(actor.Angle()))

		for idx, corner := range corners {
			x, y := transform.Apply(corner.X, corner.Y)
			if idx == 0 {
				path.MoveTo(float32(x), float32(y))
			} else {
				path.LineTo(float32(x), float32(y))
			}
		}

		path.Close()
	}

	vector.FillPath(screen, &path, actor.Color(), true, vector.FillRuleNonZero)
}

func boxCorners(center gm.Vec, width, height float64, angle gm.Rad) [4]gm.Vec {
	hw, hh := width/2, height/2

	sin, cos := math.Sincos(angle.Radians())

	rotate := func(x, y float64) gm.Vec {
		return gm.Vec{
			X: center.X + x*cos - y*sin,
			Y: center.Y + x*sin + y*cos,
		}
	}

	return [4]gm.Vec{
		rotate(-hw, -hh),
		rotate(hw, -hh),
		rotate(hw, hh),
		rotate(-hw, hh),
	}
}
