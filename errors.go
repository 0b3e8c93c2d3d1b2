package play

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDuplicateRegistration = errors.New("duplicate collision callback")
	ErrStaleCallbacks        = errors.New("collision callbacks still registered")
	ErrNotInHandler          = errors.New("not called from within a callback")
	ErrActorRemoved          = errors.New("actor was removed")
	ErrTickInProgress        = errors.New("world is already ticking")
)

// DuplicateRegistrationError is returned when a second touching or stopped
// touching callback is registered for the same pair of actors.
type DuplicateRegistrationError struct {
	Kind  Kind
	Actor ActorId
	Other ActorId
}

func (err *DuplicateRegistrationError) Error() string {
	return fmt.Sprintf(
		"actors %s and %s already have a %s callback, you can only use one. "+
			"Put all your code into a single callback instead",
		err.Actor, err.Other, err.Kind,
	)
}

func (err *DuplicateRegistrationError) Unwrap() error {
	return ErrDuplicateRegistration
}

// StaleCallbackError is returned when the physics of an actor is restarted
// while collision callbacks still reference the actor.
type StaleCallbackError struct {
	Actor ActorId

	// Owners lists the actors holding a callback that names Actor,
	// including Actor itself if it registered callbacks.
	Owners []ActorId
}

func (err *StaleCallbackError) Error() string {
	owners := make([]string, 0, len(err.Owners))
	for _, owner := range err.Owners {
		owners = append(owners, owner.String())
	}

	return fmt.Sprintf(
		"cannot restart physics of actor %s while collision callbacks of actors [%s] reference it, "+
			"remove the callbacks first",
		err.Actor, strings.Join(owners, ", "),
	)
}

func (err *StaleCallbackError) Unwrap() error {
	return ErrStaleCallbacks
}
