package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownRole is returned when a value is outside the role set.
var ErrUnknownRole = errors.New("unknown user role")

// Role is the closed set of account roles.
type Role int

const (
	RoleUnknown Role = iota
	RoleCustomer
	RoleVendor
)

func (r Role) Wire() (string, error) {
	switch r {
	case RoleCustomer:
		return "customer", nil
	case RoleVendor:
		return "vendor", nil
	case RoleUnknown:
	}
	return "", fmt.Errorf("%w: %d", ErrUnknownRole, int(r))
}

func (r Role) String() string {
	s, err := r.Wire()
	if err != nil {
		return "unknown"
	}
	return s
}

// ParseRole maps a wire string to a Role. Empty input means customer,
// matching the backend default.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "customer":
		return RoleCustomer, nil
	case "vendor":
		return RoleVendor, nil
	}
	return RoleUnknown, fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

func (r Role) MarshalText() ([]byte, error) {
	s, err := r.Wire()
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

func (r *Role) UnmarshalText(b []byte) error {
	parsed, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
