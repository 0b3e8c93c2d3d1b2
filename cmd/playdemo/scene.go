package main

import (
	"context"
	"image/color"
	"log/slog"
	"time"

	"github.com/oliverbestmann/play"
	"github.com/oliverbestmann/play/gm"
)

var (
	colorBall   = color.RGBA{R: 220, G: 60, B: 60, A: 255}
	colorPaddle = color.RGBA{R: 40, G: 40, B: 40, A: 255}
	colorHit    = color.RGBA{R: 250, G: 200, B: 40, A: 255}
	colorBox    = color.RGBA{R: 60, G: 120, B: 220, A: 255}
)

func buildScene(world *play.World) error {
	ball := world.NewCircle(gm.VecOf(0, 100), 15)
	ball.SetColor(colorBall)

	opts := play.DefaultPhysics()
	opts.XSpeed = 180
	opts.YSpeed = -60
	opts.ObeysGravity = false
	if err := ball.StartPhysics(opts); err != nil {
		return err
	}

	paddle := world.NewBox(gm.VecOf(0, -200), 160, 20)
	paddle.SetColor(colorPaddle)

	if err := paddle.StartPhysics(play.PhysicsOptions{CanMove: false, Bounciness: 1}); err != nil {
		return err
	}

	// flash the paddle while the ball touches it
	err := ball.WhenTouching(func(ctx context.Context) error {
		paddle.SetColor(colorHit)

		if err := play.Sleep(ctx, 200*time.Millisecond); err != nil {
			return err
		}

		paddle.SetColor(colorPaddle)
		return nil
	}, paddle)
	if err != nil {
		return err
	}

	err = ball.WhenStoppedTouching(play.Do(func() {
		slog.Debug("Ball left the paddle", slog.Any("position", ball.Position()))
	}), paddle)
	if err != nil {
		return err
	}

	err = ball.WhenTouchingWall(func(ctx context.Context) error {
		ev, _ := play.EventOf(ctx)
		slog.Info("Ball hit a wall", slog.String("wall", ev.Wall.String()))
		return nil
	})
	if err != nil {
		return err
	}

	// resizing rebuilds the shape, the callbacks above keep working
	err = paddle.WhenClicked(func(ctx context.Context) error {
		if paddle.Size() == 100 {
			return paddle.SetSize(150)
		}

		return paddle.SetSize(100)
	})
	if err != nil {
		return err
	}

	world.WhenMouseClicked(func(ctx context.Context) error {
		cursor := world.Mouse().Cursor
		if paddle.IsTouchingPoint(cursor) {
			return nil
		}

		box := world.NewBox(cursor, 30, 30)
		box.SetColor(colorBox)

		if err := box.StartPhysics(play.DefaultPhysics()); err != nil {
			return err
		}

		return box.WhenTouchingWall(play.Do(box.Remove), play.WallBottom)
	})

	return nil
}
