package access

// AdminGroup is the identity-provider group whose members hold admin rights.
const AdminGroup = "ADMIN"

const groupsClaim = "cognito:groups"

// Caller is the authenticated identity attached to every request by the
// resolver boundary. Claims are the raw token claims as asserted by the
// identity provider for this invocation.
type Caller struct {
	AccountID string
	Claims    map[string]interface{}
}

// IsAdmin reports whether the caller's token claims place them in the admin
// group. It reads only the presented claims: the Account record's isAdmin
// field is advisory and may be stale after group membership changes, so it is
// never consulted for authorization.
func (c Caller) IsAdmin() bool {
	return IsAdmin(c.Claims)
}

// IsAdmin checks the group-membership claim for the admin group. The claim
// may arrive as a list of strings, a single string, or be absent entirely.
func IsAdmin(claims map[string]interface{}) bool {
	if claims == nil {
		return false
	}
	switch groups := claims[groupsClaim].(type) {
	case string:
		return groups == AdminGroup
	case []string:
		for _, g := range groups {
			if g == AdminGroup {
				return true
			}
		}
	case []interface{}:
		for _, g := range groups {
			if s, ok := g.(string); ok && s == AdminGroup {
				return true
			}
		}
	}
	return false
}
