package models

// Role identifies what a user is allowed to do on the platform
type Role string

const (
	RolePassenger Role = "passenger"
	RoleAgent     Role = "agent"
	RoleOperator  Role = "operator"
	RoleAdmin     Role = "admin"
)

// roleLevels orders roles by privilege. A role satisfies any requirement
// at or below its own level.
var roleLevels = map[Role]int{
	RolePassenger: 1,
	RoleAgent:     2,
	RoleOperator:  3,
	RoleAdmin:     4,
}

// IsValid reports whether the role is one of the closed set
func (r Role) IsValid() bool {
	_, ok := roleLevels[r]
	return ok
}

// Level returns the privilege level of the role (0 for unknown roles)
func (r Role) Level() int {
	return roleLevels[r]
}

// AtLeast reports whether the role's privilege level meets the required role's
func (r Role) AtLeast(required Role) bool {
	return roleLevels[r] >= roleLevels[required] && roleLevels[required] > 0
}

// CanBookForOthers reports whether the role may create bookings on behalf
// of walk-in customers
func (r Role) CanBookForOthers() bool {
	return r == RoleAgent || r == RoleAdmin
}
