package domain

import (
	"errors"
	"fmt"
)

// ErrUnknownRole is returned by ParseRole for names outside the role set.
var ErrUnknownRole = errors.New("unknown role")

// Role is the access level attached to a dashboard user.
type Role string

const (
	RoleExecutive Role = "executive"
	RoleAnalyst   Role = "analyst"
	RoleViewer    Role = "viewer"
)

// ParseRole converts a stored role name into a Role.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleExecutive, RoleAnalyst, RoleViewer:
		return r, nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownRole)
}

func (r Role) String() string { return string(r) }
