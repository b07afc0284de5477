package policy

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Role is the closed set of user roles. The zero value is not a valid role.
type Role uint8

const (
	RoleUnknown Role = iota
	Administrator
	HousingManager
	SalesStaff
	Resident
)

var roleNames = [...]string{
	RoleUnknown:    "",
	Administrator:  "administrator",
	HousingManager: "housing_manager",
	SalesStaff:     "sales_staff",
	Resident:       "resident",
}

// AllRoles in table order.
var AllRoles = []Role{Administrator, HousingManager, SalesStaff, Resident}

func (r Role) String() string {
	if int(r) < len(roleNames) {
		return roleNames[r]
	}
	return ""
}

func (r Role) Valid() bool { return r >= Administrator && r <= Resident }

// IsStaff reports roles that manage payments and complaints.
func (r Role) IsStaff() bool { return r == Administrator || r == HousingManager }

func ParseRole(s string) (Role, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range roleNames {
		if i > 0 && name == s {
			return Role(i), nil
		}
	}
	return RoleUnknown, fmt.Errorf("unknown role %q", s)
}

func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid role %d", r)
	}
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(b []byte) error {
	parsed, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Value stores the role as its name.
func (r Role) Value() (driver.Value, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid role %d", r)
	}
	return r.String(), nil
}

func (r *Role) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return r.UnmarshalText([]byte(v))
	case []byte:
		return r.UnmarshalText(v)
	case nil:
		*r = RoleUnknown
		return nil
	}
	return fmt.Errorf("cannot scan %T into Role", src)
}

// Actor is the authenticated identity performing a request.
type Actor struct {
	ID   uuid.UUID
	Role Role
}
