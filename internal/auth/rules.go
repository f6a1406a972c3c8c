package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// Requirement is the access demanded by a rule.
type Requirement int

const (
	// RequirePublic allows the request regardless of authentication.
	RequirePublic Requirement = iota
	// RequireAuthenticated allows the request only with an installed principal.
	RequireAuthenticated
)

// Rule matches requests by method and path pattern. An empty Method matches
// any method. Patterns use "*" for exactly one path segment and "**" for any
// remaining suffix; matching is case-sensitive.
type Rule struct {
	Method      string
	Pattern     string
	Requirement Requirement
}

// RuleTable is an ordered first-match-wins access control list, constructed
// at startup and injected into the request pipeline.
type RuleTable struct {
	rules        []Rule
	defaultAllow bool
}

// NewRuleTable builds a table with the given rules and default policy for
// unmatched requests.
func NewRuleTable(rules []Rule, defaultAllow bool) *RuleTable {
	return &RuleTable{rules: append([]Rule(nil), rules...), defaultAllow: defaultAllow}
}

// Match returns the first rule matching the method and path.
func (t *RuleTable) Match(method, path string) (Rule, bool) {
	for _, rule := range t.rules {
		if rule.Method != "" && rule.Method != method {
			continue
		}
		if matchPattern(rule.Pattern, path) {
			return rule, true
		}
	}
	return Rule{}, false
}

// Allows decides whether a request with the given authentication state may
// proceed.
func (t *RuleTable) Allows(method, path string, authenticated bool) bool {
	rule, ok := t.Match(method, path)
	if !ok {
		return t.defaultAllow
	}
	if rule.Requirement == RequireAuthenticated {
		return authenticated
	}
	return true
}

// Handle enforces the table as middleware; it runs after principal
// installation and short-circuits with 401 before the handler when denied.
func (t *RuleTable) Handle(c *fiber.Ctx) error {
	_, authenticated := PrincipalFromContext(c)
	if !t.Allows(c.Method(), c.Path(), authenticated) {
		return apperrors.NewUnauthorized("authentication required")
	}
	return c.Next()
}

func matchPattern(pattern, path string) bool {
	patternSegs := strings.Split(strings.Trim(pattern, "/"), "/")
	pathSegs := strings.Split(strings.Trim(path, "/"), "/")

	for i, seg := range patternSegs {
		if seg == "**" {
			return true
		}
		if i >= len(pathSegs) {
			return false
		}
		if seg == "*" {
			continue
		}
		if seg != pathSegs[i] {
			return false
		}
	}
	return len(patternSegs) == len(pathSegs)
}
