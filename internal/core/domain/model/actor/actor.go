// Package actor provides the value object identifying who performs a
// transition, together with the role capability checks the workflow consults.
// Authentication is out of scope: callers hand the core an already resolved
// Actor, and the core only asks whether that actor may perform the transition.
package actor

import (
	"errors"
	"fmt"

	"mestrack/internal/core/domain/model/kernel"
	"mestrack/internal/pkg/errs"
)

// ErrActorIsNotConstructed is returned when an Actor instance was not created
// through NewActor.
var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// ErrNotPermitted is the sentinel for role capability failures.
var ErrNotPermitted = errors.New("actor role does not permit this action")

// Role classifies an actor's responsibilities on the shop floor.
type Role int

const (
	// RoleUnknown catches uninitialized Role values.
	RoleUnknown Role = iota

	// RoleOperator performs operations on serials.
	RoleOperator

	// RoleSupervisor operates and additionally reassigns work.
	RoleSupervisor

	// RoleAdmin holds every capability.
	RoleAdmin

	// RoleRepairer handles defects; it does not operate.
	RoleRepairer
)

func roleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:    "Unknown",
		RoleOperator:   "Operator",
		RoleSupervisor: "Supervisor",
		RoleAdmin:      "Admin",
		RoleRepairer:   "Repairer",
	}
}

// String implements fmt.Stringer; unknown values render as "Unknown".
func (r Role) String() string {
	if str, ok := roleStrings()[r]; ok {
		return str
	}
	return "Unknown"
}

// RoleFromString parses a role name, case-sensitively.
func RoleFromString(s string) (Role, error) {
	for role, str := range roleStrings() {
		if role != RoleUnknown && str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role",
		fmt.Errorf("%q is not a known role", s))
}

// Validate rejects RoleUnknown and out-of-range values.
func (r Role) Validate() error {
	if r <= RoleUnknown || r > RoleRepairer {
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// CanOperate reports whether the role may start, approve, reject and release
// operations.
func (r Role) CanOperate() bool {
	return r == RoleOperator || r == RoleSupervisor || r == RoleAdmin
}

// CanReassign reports whether the role may move claims between actors.
func (r Role) CanReassign() bool {
	return r == RoleSupervisor || r == RoleAdmin
}

// CanResolveDefects reports whether the role may assign and resolve defects.
func (r Role) CanResolveDefects() bool {
	return r == RoleRepairer || r == RoleAdmin
}

// Actor identifies the person performing a transition. It is immutable.
type Actor struct {
	id   kernel.UUID
	name string
	role Role

	isConstructed bool
}

// NewActor creates an Actor value object.
func NewActor(id kernel.UUID, name string, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if name == "" {
		return Actor{}, errs.NewValueIsRequiredError("actor name")
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}

	return Actor{id: id, name: name, role: role, isConstructed: true}, nil
}

// Validate ensures the Actor was created through NewActor.
func (a Actor) Validate() error {
	if !a.isConstructed {
		return ErrActorIsNotConstructed
	}
	return nil
}

// ID returns the actor identifier.
func (a Actor) ID() kernel.UUID { return a.id }

// Name returns the actor's display name.
func (a Actor) Name() string { return a.name }

// Role returns the actor's role.
func (a Actor) Role() Role { return a.role }
