package playbiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/oliverbestmann/play"
	"github.com/oliverbestmann/play/gm"
)

// CaptureInput takes the mouse snapshot for the current frame.
func CaptureInput(screenSize gm.Vec) play.Input {
	x, y := ebiten.CursorPosition()

	return play.Input{
		Cursor:               ScreenToWorld(gm.VecOf(float64(x), float64(y)), screenSize),
		ClickHappened:        inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		ClickReleaseHappened: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
		Pressed:              ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
	}
}

// WorldTransform maps world coordinates, origin in the center and y pointing
// up, to screen pixels.
func WorldTransform(screenSize gm.Vec) ebiten.GeoM {
	var geom ebiten.GeoM
	geom.Scale(1, -1)
	geom.Translate(screenSize.X/2, screenSize.Y/2)
	return geom
}

func ScreenToWorld(screen gm.Vec, screenSize gm.Vec) gm.Vec {
	return gm.Vec{
		X: screen.X - screenSize.X/2,
		Y: screenSize.Y/2 - screen.Y,
	}
}
