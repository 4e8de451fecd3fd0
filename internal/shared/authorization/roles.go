package authorization

type UserRole string

const (
	RoleStandard   UserRole = "standard"
	RoleSupervisor UserRole = "supervisor"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsSupervisor() bool {
	return r == RoleSupervisor
}

func (r UserRole) IsValid() bool {
	return r == RoleStandard || r == RoleSupervisor
}

func ParseUserRole(s string) UserRole {
	role := UserRole(s)
	if !role.IsValid() {
		return RoleStandard
	}
	return role
}

// CanManageCatalog reports whether the role may create, update, or delete
// movies. Catalog management is the only supervisor-exclusive capability;
// every handler consults this single function instead of re-deriving role
// logic per endpoint.
func (r UserRole) CanManageCatalog() bool {
	return r.IsSupervisor()
}
