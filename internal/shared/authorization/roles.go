package authorization

type UserRole string

const (
	RoleAdmin          UserRole = "admin"
	RoleDeveloper      UserRole = "developer"
	RoleQA             UserRole = "qa"
	RoleProductManager UserRole = "product_manager"
	RoleReporter       UserRole = "reporter"
)

var validRoles = map[UserRole]bool{
	RoleAdmin:          true,
	RoleDeveloper:      true,
	RoleQA:             true,
	RoleProductManager: true,
	RoleReporter:       true,
}

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

func (r UserRole) IsValid() bool {
	return validRoles[r]
}

// CanReview reports whether the role resolves approval steps at all.
// Reporters file issues but never sit on the review side of the workflow.
func (r UserRole) CanReview() bool {
	switch r {
	case RoleDeveloper, RoleQA, RoleProductManager, RoleAdmin:
		return true
	}
	return false
}

// AllRoles returns every valid role in a stable order.
func AllRoles() []UserRole {
	return []UserRole{RoleAdmin, RoleDeveloper, RoleQA, RoleProductManager, RoleReporter}
}

func ParseUserRole(s string) UserRole {
	role := UserRole(s)
	if role.IsValid() {
		return role
	}
	return RoleReporter
}
