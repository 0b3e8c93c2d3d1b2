package play

import (
	"fmt"
	"image/color"
	"iter"
	"log/slog"
	"strconv"

	"github.com/jakecoffman/cp/v2"
	"github.com/oliverbestmann/play/gm"
	"github.com/oliverbestmann/play/internal/set"
	"github.com/oliverbestmann/play/physics"
)

// ActorId is a process unique handle of an actor. Ids are allocated in
// increasing order and never reused.
type ActorId uint32

// NoActor is the discriminator of global callbacks.
const NoActor ActorId = 0

func (id ActorId) String() string {
	return strconv.Itoa(int(id))
}

func (id ActorId) LogValue() slog.Value {
	return slog.StringValue(id.String())
}

// World owns all actors, the physics space and the registered callbacks.
// A World is not safe for concurrent use, all calls must happen on the
// goroutine that ticks the world or from within a handler.
type World struct {
	config Config
	logger *slog.Logger

	space  *physics.Space
	walls  physics.Walls
	bridge *bridge

	registry  *Registry
	scheduler *scheduler

	nextId ActorId
	actors map[ActorId]*Actor
	order  set.Set[ActorId]

	// weak back references: actors whose callbacks name the key actor
	dependents map[ActorId]*set.Set[ActorId]

	input        Input
	clickedActor ActorId
	ticking      bool
	frame        uint64
}

type Option func(w *World)

func WithConfig(config Config) Option {
	return func(w *World) {
		w.config = config
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(w *World) {
		w.logger = logger
	}
}

func NewWorld(options ...Option) (*World, error) {
	w := &World{
		config:     DefaultConfig(),
		logger:     slog.Default(),
		registry:   NewRegistry(),
		scheduler:  newScheduler(),
		actors:     map[ActorId]*Actor{},
		dependents: map[ActorId]*set.Set[ActorId]{},
	}

	for _, option := range options {
		option(w)
	}

	if err := w.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	w.space = physics.NewSpace(w.config.Gravity.Vec(), w.config.SimulationSteps)

	b, err := newBridge(w.logger, w.space, w.ledgerOf)
	if err != nil {
		return nil, fmt.Errorf("create collision bridge: %w", err)
	}

	w.bridge = b

	w.walls = physics.NewWalls(w.space, w.config.ScreenSize(), w.config.WallThickness)
	for _, side := range AllWalls {
		w.bridge.tagWall(w.wallShape(side), side)
	}

	return w, nil
}

func (w *World) Config() Config {
	return w.config
}

func (w *World) Logger() *slog.Logger {
	return w.logger
}

// Space gives access to the physics space, mostly for debug rendering.
func (w *World) Space() *physics.Space {
	return w.space
}

// Frame returns the number of ticks run so far.
func (w *World) Frame() uint64 {
	return w.frame
}

func (w *World) SetGravity(gravity gm.Vec) {
	w.config.Gravity = GravityConfig{Horizontal: gravity.X, Vertical: gravity.Y}
	w.space.SetGravity(gravity)
}

func (w *World) SetSimulationSteps(steps int) {
	w.config.SimulationSteps = max(steps, 1)
	w.space.SetSteps(steps)
}

// Actor returns the live actor with the given id.
func (w *World) Actor(id ActorId) (*Actor, bool) {
	actor, ok := w.actors[id]
	return actor, ok
}

// Actors iterates over all live actors in creation order.
func (w *World) Actors() iter.Seq[*Actor] {
	return func(yield func(*Actor) bool) {
		for id := range w.order.Values() {
			actor, ok := w.actors[id]
			if !ok {
				continue
			}

			if !yield(actor) {
				return
			}
		}
	}
}

// NewBox creates a rectangular actor centered at pos.
func (w *World) NewBox(pos gm.Vec, width, height float64) *Actor {
	return w.newActor(pos, physics.Geometry{Kind: physics.ShapeBox, Width: width, Height: height})
}

// NewCircle creates a round actor centered at pos.
func (w *World) NewCircle(pos gm.Vec, radius float64) *Actor {
	return w.newActor(pos, physics.Geometry{Kind: physics.ShapeCircle, Radius: radius})
}

func (w *World) newActor(pos gm.Vec, geom physics.Geometry) *Actor {
	w.nextId += 1

	actor := &Actor{
		id:       w.nextId,
		world:    w,
		alive:    true,
		geom:     geom,
		size:     100,
		position: pos,
		color:    color.RGBA{R: 0, G: 0, B: 0, A: 255},
		mode:     NoPhysics,
	}

	w.buildBody(actor)

	w.actors[actor.id] = actor
	w.order.Insert(actor.id)

	return actor
}

func (w *World) ledgerOf(id ActorId) *Ledger {
	actor, ok := w.actors[id]
	if !ok {
		return nil
	}

	return &actor.events
}

func (w *World) wallShape(side WallSide) *cp.Shape {
	switch side {
	case WallTop:
		return w.walls.Top
	case WallBottom:
		return w.walls.Bottom
	case WallLeft:
		return w.walls.Left
	case WallRight:
		return w.walls.Right
	default:
		return nil
	}
}

func (w *World) addDependent(target, dependent ActorId) {
	deps, ok := w.dependents[target]
	if !ok {
		deps = &set.Set[ActorId]{}
		w.dependents[target] = deps
	}

	deps.Insert(dependent)
}

// liveDependents returns the live actors that registered a callback naming target.
func (w *World) liveDependents(target ActorId) []*Actor {
	deps, ok := w.dependents[target]
	if !ok {
		return nil
	}

	var result []*Actor
	for id := range deps.Values() {
		actor, ok := w.actors[id]
		if !ok {
			deps.Remove(id)
			continue
		}

		result = append(result, actor)
	}

	return result
}

// Close stops all handlers that are still in flight.
func (w *World) Close() {
	w.scheduler.Close()
}
