package domain

// Principal is the authenticated identity resolved for a single
// request. It carries only what the credential embeds and has no
// lifecycle beyond the request.
type Principal struct {
	ID   string
	Role Role
}

// IsAdmin reports whether the principal holds the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// OwnsOrAdmin reports whether the principal may access a resource
// owned by ownerID.
func (p Principal) OwnsOrAdmin(ownerID string) bool {
	return p.ID == ownerID || p.IsAdmin()
}
