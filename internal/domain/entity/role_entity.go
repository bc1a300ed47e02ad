package entity

// Role represents an authorization role; every user holds exactly one.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleEmployer Role = "EMPLOYER"
	RoleSeeker   Role = "SEEKER"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEmployer, RoleSeeker:
		return true
	}
	return false
}
