package authorization

// UserRole distinguishes back-office admins from advertisers. Admins approve
// and reject reservations and adjust ledgers; advertisers manage their own
// reservations only.
type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleAdvertiser UserRole = "advertiser"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

func (r UserRole) IsValid() bool {
	return r == RoleAdmin || r == RoleAdvertiser
}

// ParseUserRole maps unknown values to the least-privileged role.
func ParseUserRole(s string) UserRole {
	role := UserRole(s)
	if role.IsValid() {
		return role
	}
	return RoleAdvertiser
}
