package auth

// Policy answers the access questions shared by every operation.
type Policy struct {
	AdminRole string
}

// NewPolicy creates a policy with the configured admin role label.
func NewPolicy(adminRole string) Policy {
	return Policy{AdminRole: adminRole}
}

// IsAdmin reports whether the caller holds the admin role.
func (p Policy) IsAdmin(caller Identity) bool {
	return p.AdminRole != "" && caller.Role == p.AdminRole
}

// CanAccessUser allows the account owner or an admin.
func (p Policy) CanAccessUser(caller Identity, userID int) bool {
	return caller.UserID == userID || p.IsAdmin(caller)
}

// OwnsProduct allows only the creator, whatever the caller's role.
func (p Policy) OwnsProduct(caller Identity, ownerID int) bool {
	return caller.UserID == ownerID
}
