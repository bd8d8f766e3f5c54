package auth

import "tradedesk/internal/models"

// authorityPrefix is prepended to a role to form its authorization scope.
const authorityPrefix = "ROLE_"

// systemActor names changes made outside any user session, such as the
// bootstrap admin.
const systemActor = "system"

// Principal is an authenticated identity and its single role.
type Principal struct {
	Username string
	// PasswordHash is only populated by authentication; sessions never carry it.
	PasswordHash string
	Role         models.Role
}

// Authority returns the scope string for the principal's role, e.g. ROLE_ADMIN.
func (p *Principal) Authority() string {
	return authorityPrefix + string(p.Role)
}

// HasAnyRole reports whether the principal holds one of roles.
func (p *Principal) HasAnyRole(roles ...models.Role) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

// ActorName returns the username recorded in audit columns and logs.
func ActorName(p *Principal) string {
	if p == nil || p.Username == "" {
		return systemActor
	}
	return p.Username
}
