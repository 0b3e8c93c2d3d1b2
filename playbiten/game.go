package playbiten

import (
	"errors"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/oliverbestmann/play"
)

// ErrExit can be returned by a handler to end the game loop without an error.
var ErrExit = errors.New("exit")

type WindowConfig struct {
	Title         string
	DisableResize bool

	// draw the physics shapes on top of the actors
	Debug bool
}

// Run opens a window and ticks the world once per frame until the window is
// closed or a handler fails.
func Run(world *play.World, win WindowConfig) error {
	config := world.Config()

	ebiten.SetWindowTitle(win.Title)
	ebiten.SetWindowSize(config.Width, config.Height)
	ebiten.SetTPS(config.FrameRate)

	if !win.DisableResize {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	var options ebiten.RunGameOptions
	options.SingleThread = true

	g := &game{world: world, debug: win.Debug}

	err := ebiten.RunGameWithOptions(g, &options)
	if errors.Is(err, ErrExit) {
		return nil
	}

	return err
}

type game struct {
	world *play.World
	debug bool
}

func (g *game) Update() error {
	input := CaptureInput(g.world.Config().ScreenSize())

	if err := g.world.Tick(input); err != nil {
		if !errors.Is(err, ErrExit) {
			g.world.Logger().Warn("Frame failed", slog.Any("error", err))
		}

		return err
	}

	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	DrawWorld(screen, g.world)

	if g.debug {
		DrawDebug(screen, g.world)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	config := g.world.Config()
	return config.Width, config.Height
}
