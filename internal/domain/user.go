package domain

// Role distinguishes ordinary users from administrators.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is a credential record. Users are immutable once created.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Role         Role
}
