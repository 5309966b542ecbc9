// Package access decides whether a caller may run an operation on a
// resource kind. It knows nothing about HTTP; the middleware package adapts
// it to echo.
package access

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnauthenticated means the operation needs a caller and none was given.
	ErrUnauthenticated = errors.New("authentication credentials were not provided")
	// ErrForbidden means the caller is known but lacks the privilege.
	ErrForbidden = errors.New("you do not have permission to perform this action")
)

// Operation is one of the generic resource operations.
type Operation int

const (
	OpList Operation = iota
	OpRetrieve
	OpCreate
	OpReplace
	OpPartialUpdate
	OpDelete
)

var opNames = [...]string{"list", "retrieve", "create", "replace", "partial_update", "delete"}

func (o Operation) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("operation(%d)", int(o))
}

// ReadOnly reports whether o never changes stored data.
func (o Operation) ReadOnly() bool { return o == OpList || o == OpRetrieve }

// Caller is the identity a request runs as. The zero value is anonymous.
type Caller struct {
	UserID   uint64
	Username string
	IsStaff  bool
}

// Authenticated reports whether the caller presented a valid token.
func (c Caller) Authenticated() bool { return c.UserID != 0 }

// Scope groups resource kinds that share an authorization rule.
type Scope int

const (
	// ScopeCatalog covers halls, plays, performances, actors and genres.
	ScopeCatalog Scope = iota
	// ScopeBooking covers reservations and tickets.
	ScopeBooking
)

// Policy authorizes one operation for one caller.
type Policy interface {
	Authorize(c Caller, scope Scope, op Operation) error
}

// PolicyFunc adapts a function to Policy.
type PolicyFunc func(c Caller, scope Scope, op Operation) error

func (f PolicyFunc) Authorize(c Caller, scope Scope, op Operation) error { return f(c, scope, op) }

// Authenticated requires a caller for every operation.
var Authenticated Policy = PolicyFunc(func(c Caller, _ Scope, _ Operation) error {
	if !c.Authenticated() {
		return ErrUnauthenticated
	}
	return nil
})

// StaffCatalog opens reads to everyone, lets any authenticated caller write
// bookings and reserves catalog writes for staff.
var StaffCatalog Policy = PolicyFunc(func(c Caller, scope Scope, op Operation) error {
	if op.ReadOnly() {
		return nil
	}
	if !c.Authenticated() {
		return ErrUnauthenticated
	}
	if scope == ScopeCatalog && !c.IsStaff {
		return ErrForbidden
	}
	return nil
})

// ByName returns the policy configured by name: "staff" (default) or
// "authenticated".
func ByName(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "staff":
		return StaffCatalog, nil
	case "authenticated":
		return Authenticated, nil
	}
	return nil, fmt.Errorf("unknown access policy %q", name)
}
