package play

import (
	"log/slog"

	"github.com/jakecoffman/cp/v2"
	"github.com/oliverbestmann/play/physics"
)

// Role tells whether a tagged shape belongs to an actor or a wall.
type Role uint8

const (
	RoleActor Role = iota + 1
	RoleWall
)

// TagId is unique for the lifetime of the tagged shape and survives a
// rebuild of an actors shape.
type TagId uint64

// Tag is stored in the UserData of a cp.Shape. A shape with nil UserData has
// never been tagged. The collision type cp assigns to every new shape is never
// used to identify a shape.
type Tag struct {
	Role Role
	Id   TagId
}

func tagOf(shape *cp.Shape) (Tag, bool) {
	if shape == nil {
		return Tag{}, false
	}

	tag, ok := shape.UserData.(Tag)
	return tag, ok
}

type phase uint8

const (
	phaseBegin phase = iota
	phaseSeparate
)

func phaseOf(kind Kind) phase {
	if kind == WhenStoppedTouching || kind == WhenStoppedTouchingWall {
		return phaseSeparate
	}

	return phaseBegin
}

type tagOwner struct {
	Role  Role
	Actor ActorId
	Wall  WallSide
}

type pairRegistration struct {
	callback *Callback

	ownerTag, otherTag     Tag
	ownerShape, otherShape *cp.Shape
}

// bridge translates the raw begin/separate hooks of the physics engine into
// ledger updates of the actors that registered interest in a pair.
type bridge struct {
	logger *slog.Logger
	space  *physics.Space

	// resolves the ledger of a live actor
	ledgerOf func(id ActorId) *Ledger

	nextTag TagId
	owners  map[TagId]tagOwner

	// pair registrations stored under both directions
	pairs [2]map[TagId]map[TagId]*pairRegistration

	// wall registrations per actor tag, duplicates are allowed
	walls map[TagId][]*pairRegistration
}

func newBridge(logger *slog.Logger, space *physics.Space, ledgerOf func(id ActorId) *Ledger) (*bridge, error) {
	b := &bridge{
		logger:   logger,
		space:    space,
		ledgerOf: ledgerOf,
		owners:   map[TagId]tagOwner{},
		walls:    map[TagId][]*pairRegistration{},
	}

	b.pairs[phaseBegin] = map[TagId]map[TagId]*pairRegistration{}
	b.pairs[phaseSeparate] = map[TagId]map[TagId]*pairRegistration{}

	if err := space.InstallContactHooks(b.onBegin, b.onSeparate); err != nil {
		return nil, err
	}

	return b, nil
}

// tagActor makes sure the shape carries a tag owned by the given actor.
func (b *bridge) tagActor(shape *cp.Shape, actor ActorId) Tag {
	tag, ok := tagOf(shape)
	if !ok {
		b.nextTag += 1
		tag = Tag{Role: RoleActor, Id: b.nextTag}
		shape.UserData = tag
	}

	b.space.Track(shape)
	b.owners[tag.Id] = tagOwner{Role: RoleActor, Actor: actor}

	return tag
}

// tagWall tags a wall segment, this happens once when the world is built.
func (b *bridge) tagWall(shape *cp.Shape, side WallSide) Tag {
	b.nextTag += 1
	tag := Tag{Role: RoleWall, Id: b.nextTag}

	shape.UserData = tag
	b.space.Track(shape)
	b.owners[tag.Id] = tagOwner{Role: RoleWall, Wall: side}

	return tag
}

// restoreTag puts a previous tag onto a freshly built shape, so that existing
// references by tag stay valid.
func (b *bridge) restoreTag(shape *cp.Shape, tag Tag, actor ActorId) {
	shape.UserData = tag
	b.space.Track(shape)
	b.owners[tag.Id] = tagOwner{Role: RoleActor, Actor: actor}
}

// registerPair registers a touching or stopped touching callback between
// the owner of the callback and another actor.
func (b *bridge) registerPair(cb *Callback, ownerShape, otherShape *cp.Shape) error {
	ph := phaseOf(cb.Kind)

	if err := b.checkPair(cb, ownerShape, otherShape); err != nil {
		return err
	}

	ownerTag := b.tagActor(ownerShape, cb.Owner)
	otherTag := b.tagActor(otherShape, cb.Other)

	reg := &pairRegistration{
		callback:   cb,
		ownerTag:   ownerTag,
		otherTag:   otherTag,
		ownerShape: ownerShape,
		otherShape: otherShape,
	}

	b.store(ph, ownerTag.Id, otherTag.Id, reg)
	b.store(ph, otherTag.Id, ownerTag.Id, reg)

	b.logger.Debug(
		"Registered collision callback",
		slog.String("kind", cb.Kind.String()),
		slog.Any("actor", cb.Owner),
		slog.Any("other", cb.Other),
	)

	return nil
}

// checkPair fails if the unordered pair already has a callback of the same phase.
func (b *bridge) checkPair(cb *Callback, ownerShape, otherShape *cp.Shape) error {
	ownerTag, ok1 := tagOf(ownerShape)
	otherTag, ok2 := tagOf(otherShape)
	if !ok1 || !ok2 {
		// one of the shapes was never registered
		return nil
	}

	if b.lookup(phaseOf(cb.Kind), ownerTag.Id, otherTag.Id) != nil {
		return &DuplicateRegistrationError{Kind: cb.Kind, Actor: cb.Owner, Other: cb.Other}
	}

	return nil
}

func (b *bridge) registerWall(cb *Callback, ownerShape, wallShape *cp.Shape) {
	ownerTag := b.tagActor(ownerShape, cb.Owner)
	wallTag, _ := tagOf(wallShape)

	b.walls[ownerTag.Id] = append(b.walls[ownerTag.Id], &pairRegistration{
		callback:   cb,
		ownerTag:   ownerTag,
		otherTag:   wallTag,
		ownerShape: ownerShape,
		otherShape: wallShape,
	})
}

// unregister removes the pair registration of exactly this callback.
func (b *bridge) unregister(cb *Callback) {
	ph := phaseOf(cb.Kind)

	for tagA, byOther := range b.pairs[ph] {
		for tagB, reg := range byOther {
			if reg.callback == cb {
				delete(byOther, tagB)
			}
		}

		if len(byOther) == 0 {
			delete(b.pairs[ph], tagA)
		}
	}

	for tag, regs := range b.walls {
		b.walls[tag] = deleteCallback(regs, cb)
		if len(b.walls[tag]) == 0 {
			delete(b.walls, tag)
		}
	}
}

// forget removes the tag and every registration stored under it, including
// the copies nested under other tags.
func (b *bridge) forget(tag Tag) {
	delete(b.owners, tag.Id)
	delete(b.walls, tag.Id)

	for _, byTag := range b.pairs {
		for other := range byTag[tag.Id] {
			delete(byTag[other], tag.Id)
			if len(byTag[other]) == 0 {
				delete(byTag, other)
			}
		}

		delete(byTag, tag.Id)
	}
}

// hasPairs reports whether any pair registration references the tag.
func (b *bridge) hasPairs(tag Tag) bool {
	return len(b.pairs[phaseBegin][tag.Id]) > 0 || len(b.pairs[phaseSeparate][tag.Id]) > 0
}

func (b *bridge) store(ph phase, a, other TagId, reg *pairRegistration) {
	byOther, ok := b.pairs[ph][a]
	if !ok {
		byOther = map[TagId]*pairRegistration{}
		b.pairs[ph][a] = byOther
	}

	byOther[other] = reg
}

// lookup tries both orderings, registration is symmetric but the
// engine might report the shapes in any order.
func (b *bridge) lookup(ph phase, a, c TagId) *pairRegistration {
	if reg := b.pairs[ph][a][c]; reg != nil {
		return reg
	}

	return b.pairs[ph][c][a]
}

// resolvedContact is a reported contact between two known tagged shapes.
// For wall contacts actor holds the tag of the actor side.
type resolvedContact struct {
	tagA, tagB TagId

	wall  WallSide
	actor TagId
}

// resolve maps both shapes to their tags. Contacts between two walls and
// contacts involving unknown shapes are ignored.
func (b *bridge) resolve(shapeA, shapeB *cp.Shape) (resolvedContact, bool) {
	tagA, okA := tagOf(shapeA)
	tagB, okB := tagOf(shapeB)
	if !okA || !okB {
		return resolvedContact{}, false
	}

	ownerA, okA := b.owners[tagA.Id]
	ownerB, okB := b.owners[tagB.Id]
	if !okA || !okB {
		return resolvedContact{}, false
	}

	contact := resolvedContact{tagA: tagA.Id, tagB: tagB.Id}

	switch {
	case ownerA.Role == RoleWall && ownerB.Role == RoleWall:
		return resolvedContact{}, false

	case ownerA.Role == RoleWall:
		contact.wall = ownerA.Wall
		contact.actor = tagB.Id

	case ownerB.Role == RoleWall:
		contact.wall = ownerB.Wall
		contact.actor = tagA.Id
	}

	return contact, true
}

// wallCallbacks returns the first touching and stopped wall callbacks the
// owner of the actor tag registered for the given side.
func (b *bridge) wallCallbacks(actor TagId, side WallSide) (touching, stopped *Callback) {
	for _, reg := range b.walls[actor] {
		cb := reg.callback
		if cb.Wall != side {
			continue
		}

		if cb.Kind == WhenTouchingWall && touching == nil {
			touching = cb
		}

		if cb.Kind == WhenStoppedTouchingWall && stopped == nil {
			stopped = cb
		}
	}

	return touching, stopped
}

func (b *bridge) onBegin(shapeA, shapeB *cp.Shape) bool {
	contact, ok := b.resolve(shapeA, shapeB)
	if !ok {
		return true
	}

	if contact.wall != WallNone {
		b.beginWall(contact)
		return true
	}

	begin := b.lookup(phaseBegin, contact.tagA, contact.tagB)
	separate := b.lookup(phaseSeparate, contact.tagA, contact.tagB)

	if begin != nil {
		if ledger := b.ledgerOf(begin.callback.Owner); ledger != nil {
			ledger.Touch(begin.callback.contactKey(), begin.callback)
		}
	}

	if separate != nil {
		// presence only, so the stop can be detected later
		if ledger := b.ledgerOf(separate.callback.Owner); ledger != nil {
			ledger.Touch(separate.callback.contactKey(), nil)
		}
	}

	// never veto the physical response
	return true
}

func (b *bridge) onSeparate(shapeA, shapeB *cp.Shape) {
	contact, ok := b.resolve(shapeA, shapeB)
	if !ok {
		return
	}

	if contact.wall != WallNone {
		b.separateWall(contact)
		return
	}

	begin := b.lookup(phaseBegin, contact.tagA, contact.tagB)
	separate := b.lookup(phaseSeparate, contact.tagA, contact.tagB)

	if separate != nil {
		if ledger := b.ledgerOf(separate.callback.Owner); ledger != nil {
			ledger.Separate(separate.callback.contactKey(), separate.callback)
		}
	}

	if begin != nil {
		if ledger := b.ledgerOf(begin.callback.Owner); ledger != nil {
			// no-op if the separate registration of the same owner cleared it already
			ledger.Separate(begin.callback.contactKey(), nil)
		}
	}
}

// beginWall records a wall contact of a simulated actor. Bounces resolve
// within the sub steps of a single frame, polling at the end of the frame
// would miss them.
func (b *bridge) beginWall(contact resolvedContact) {
	touching, stopped := b.wallCallbacks(contact.actor, contact.wall)
	if touching == nil && stopped == nil {
		return
	}

	owner := b.owners[contact.actor].Actor

	ledger := b.ledgerOf(owner)
	if ledger == nil {
		return
	}

	// a nil touching callback tracks presence only
	ledger.Touch(ContactKey{Wall: contact.wall}, touching)
}

func (b *bridge) separateWall(contact resolvedContact) {
	_, stopped := b.wallCallbacks(contact.actor, contact.wall)

	owner := b.owners[contact.actor].Actor

	if ledger := b.ledgerOf(owner); ledger != nil {
		ledger.Separate(ContactKey{Wall: contact.wall}, stopped)
	}
}

func deleteCallback(regs []*pairRegistration, cb *Callback) []*pairRegistration {
	result := regs[:0]
	for _, reg := range regs {
		if reg.callback != cb {
			result = append(result, reg)
		}
	}

	return result
}
