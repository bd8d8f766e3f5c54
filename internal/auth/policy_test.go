package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tradedesk/internal/models"
)

func TestDefaultPolicy(t *testing.T) {
	policy := DefaultPolicy()
	user := &Principal{Username: "trader", Role: models.RoleUser}
	admin := &Principal{Username: "admin", Role: models.RoleAdmin}

	tests := []struct {
		name      string
		method    string
		path      string
		principal *Principal
		want      Decision
	}{
		{"anonymous login page", "GET", "/login", nil, Allow},
		{"anonymous login submit", "POST", "/login", nil, Allow},
		{"anonymous login other method", "DELETE", "/login", nil, DenyUnauthenticated},
		{"anonymous static asset", "GET", "/css/app.css", nil, Allow},
		{"anonymous static root", "GET", "/css", nil, Allow},
		{"anonymous access denied page", "GET", "/app/error", nil, Allow},
		{"anonymous health", "GET", "/health", nil, Allow},
		{"anonymous swagger", "GET", "/swagger/index.html", nil, Allow},
		{"anonymous record list", "GET", "/bidList/list", nil, DenyUnauthenticated},
		{"anonymous user list", "GET", "/user/list", nil, DenyUnauthenticated},
		{"anonymous logout", "POST", "/app-logout", nil, DenyUnauthenticated},
		{"user record list", "GET", "/trade/list", user, Allow},
		{"user record delete", "GET", "/rating/delete/3", user, Allow},
		{"user user list", "GET", "/user/list", user, DenyForbidden},
		{"user bare user prefix", "GET", "/user", user, DenyForbidden},
		{"user trailing slash", "GET", "/user/", user, DenyForbidden},
		{"user dot segments", "GET", "/bidList/../user/list", user, DenyForbidden},
		{"user lookalike prefix", "GET", "/username", user, Allow},
		{"admin user list", "GET", "/user/list", admin, Allow},
		{"admin record list", "GET", "/curvePoint/list", admin, Allow},
		{"relative path", "GET", "user/list", user, DenyForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.Decide(tt.method, tt.path, tt.principal))
		})
	}
}

func TestPolicyNoMatchingRule(t *testing.T) {
	policy := NewPolicy(Rule{Pattern: "/open", Public: true})

	assert.Equal(t, Allow, policy.Decide("GET", "/open", nil))
	assert.Equal(t, DenyUnauthenticated, policy.Decide("GET", "/closed", nil))
	assert.Equal(t, Allow, policy.Decide("GET", "/closed", &Principal{Username: "u", Role: models.RoleUser}))
}

func TestNewPolicyCopiesRules(t *testing.T) {
	rules := []Rule{{Pattern: "/open", Public: true}}
	policy := NewPolicy(rules...)
	rules[0].Public = false

	assert.Equal(t, Allow, policy.Decide("GET", "/open", nil))
}

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "allow", Allow.String())
	assert.Equal(t, "deny_unauthenticated", DenyUnauthenticated.String())
	assert.Equal(t, "deny_forbidden", DenyForbidden.String())
	assert.Equal(t, "unknown", Decision(42).String())
}
