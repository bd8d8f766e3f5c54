package auth

import (
	"path"
	"strings"

	"tradedesk/internal/models"
)

// Fixed routes the policy and the login flow agree on.
const (
	LoginRoute        = "/login"
	LogoutRoute       = "/app-logout"
	LandingRoute      = "/bidList/list"
	AccessDeniedRoute = "/app/error"
)

// AccessDeniedMessage is rendered on every forbidden request.
const AccessDeniedMessage = "You are not authorized for the requested data."

// Decision is the outcome of evaluating a request against the policy.
type Decision int

const (
	Allow Decision = iota
	DenyUnauthenticated
	DenyForbidden
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case DenyUnauthenticated:
		return "deny_unauthenticated"
	case DenyForbidden:
		return "deny_forbidden"
	}
	return "unknown"
}

// Rule grants access to requests whose path matches Pattern. Patterns are
// exact paths or a prefix ending in "/**", which also matches the bare
// prefix. A public rule admits anonymous callers; otherwise the caller must
// be authenticated and, when Roles is set, hold one of them.
type Rule struct {
	Pattern string
	Methods []string
	Public  bool
	Roles   []models.Role
}

func (r Rule) matches(method, p string) bool {
	if len(r.Methods) > 0 {
		ok := false
		for _, m := range r.Methods {
			if strings.EqualFold(m, method) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if prefix, found := strings.CutSuffix(r.Pattern, "/**"); found {
		return prefix == "" || p == prefix || strings.HasPrefix(p, prefix+"/")
	}
	return p == r.Pattern
}

// defaultRules is evaluated top-down; the first match wins.
var defaultRules = []Rule{
	{Pattern: "/css/**", Public: true},
	{Pattern: "/js/**", Public: true},
	{Pattern: "/img/**", Public: true},
	{Pattern: "/favicon.ico", Public: true},
	{Pattern: AccessDeniedRoute, Public: true},
	{Pattern: "/error", Public: true},
	{Pattern: "/health", Public: true},
	{Pattern: "/metrics", Public: true},
	{Pattern: "/swagger/**", Public: true},
	{Pattern: LoginRoute, Methods: []string{"GET", "POST"}, Public: true},
	{Pattern: "/user/**", Roles: []models.Role{models.RoleAdmin}},
	{Pattern: "/**"},
}

// Policy is an ordered, read-only rule list.
type Policy struct {
	rules []Rule
}

// NewPolicy creates a Policy from rules, evaluated in order.
func NewPolicy(rules ...Rule) *Policy {
	return &Policy{rules: append([]Rule(nil), rules...)}
}

// DefaultPolicy returns the console's fixed rule set.
func DefaultPolicy() *Policy {
	return NewPolicy(defaultRules...)
}

// Decide evaluates a request. principal is nil for anonymous callers.
// Paths are cleaned first so "/x/../user/list" and "/user/" are judged as
// the routes they resolve to.
func (p *Policy) Decide(method, requestPath string, principal *Principal) Decision {
	cleaned := path.Clean("/" + requestPath)

	for _, r := range p.rules {
		if !r.matches(method, cleaned) {
			continue
		}
		switch {
		case r.Public:
			return Allow
		case principal == nil:
			return DenyUnauthenticated
		case len(r.Roles) == 0 || principal.HasAnyRole(r.Roles...):
			return Allow
		default:
			return DenyForbidden
		}
	}

	if principal == nil {
		return DenyUnauthenticated
	}
	return Allow
}
