package actor

import (
	"errors"
	"fmt"
	"strings"

	"freshmarket/internal/core/domain/model/kernel"
	"freshmarket/internal/pkg/errs"
	"freshmarket/internal/pkg/guard"
)

// ErrActorIsNotConstructed is returned when an Actor was not created via NewActor.
var ErrActorIsNotConstructed = errs.NewValueIsRequiredError(
	"actor must be created via NewActor constructor")

// Role classifies the acting user for authorization decisions.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleCustomer places orders and receives deliveries.
	RoleCustomer

	// RoleVendor sells produce and fulfills deliveries.
	RoleVendor

	// RoleGrower produces and sells directly, and fulfills deliveries.
	RoleGrower

	// RoleAdmin bypasses relationship checks entirely.
	RoleAdmin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:  "unknown",
		RoleCustomer: "customer",
		RoleVendor:   "vendor",
		RoleGrower:   "grower",
		RoleAdmin:    "admin",
	}
}

// RoleFromString parses a role token case-insensitively.
func RoleFromString(s string) (Role, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for role, str := range getRoleStrings() {
		if role != RoleUnknown && str == normalized {
			return role, nil
		}
	}

	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role",
		fmt.Errorf("%q is not a recognized role", s))
}

// String returns the lowercase token form of the role.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// Validate checks that the role is one of the defined roles.
func (r Role) Validate() error {
	if r != RoleCustomer && r != RoleVendor && r != RoleGrower && r != RoleAdmin {
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// IsFulfiller reports whether the role advances deliveries through
// pickup, transit, and delivery states.
func (r Role) IsFulfiller() bool {
	return r == RoleVendor || r == RoleGrower
}

// Actor identifies the authenticated user behind a request: who they are,
// what role they act in, and the display name shown on records they touch.
// Session validation happens upstream; this value object only carries the
// already-verified identity.
type Actor struct {
	id   kernel.UUID
	role Role
	name string

	guard guard.ConstructorGuard
}

// NewActor creates an Actor from a verified identity. The display name may
// be empty; consumers fall back to "Unknown" where a name is required.
func NewActor(id kernel.UUID, role Role, name string) (Actor, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return Actor{}, err
	}

	return Actor{
		id:    id,
		role:  role,
		name:  strings.TrimSpace(name),
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Actor was created through NewActor.
func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

// ID returns the actor's unique identifier.
func (a Actor) ID() kernel.UUID {
	return a.id
}

// Role returns the role the actor acts in.
func (a Actor) Role() Role {
	return a.role
}

// Name returns the actor's display name, possibly empty.
func (a Actor) Name() string {
	return a.name
}

// IsAdmin reports whether the actor bypasses relationship checks.
func (a Actor) IsAdmin() bool {
	return a.role == RoleAdmin
}
