package domain

// Principal is the authenticated caller as asserted by a verified token.
type Principal struct {
	UserID   string
	Username string
	Role     Role
}

// IsAdmin reports whether the caller holds the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
