package auth

import (
	"net/http"
	"testing"
)

func TestRuleTable_Matching(t *testing.T) {
	table := NewRuleTable([]Rule{
		{Method: http.MethodGet, Pattern: "/api/mypages/orders", Requirement: RequireAuthenticated},
		{Method: http.MethodPost, Pattern: "/api/shops/*/follows", Requirement: RequireAuthenticated},
		{Method: http.MethodGet, Pattern: "/api/members/*/followers", Requirement: RequirePublic},
		{Method: http.MethodGet, Pattern: "/api/auth/**", Requirement: RequirePublic},
		{Pattern: "/ws/**", Requirement: RequirePublic},
	}, false)

	tests := []struct {
		name          string
		method        string
		path          string
		authenticated bool
		want          bool
	}{
		{name: "authenticated rule with principal", method: http.MethodGet, path: "/api/mypages/orders", authenticated: true, want: true},
		{name: "authenticated rule without principal", method: http.MethodGet, path: "/api/mypages/orders", authenticated: false, want: false},
		{name: "single wildcard matches one segment", method: http.MethodPost, path: "/api/shops/7/follows", authenticated: true, want: true},
		{name: "single wildcard rejects two segments", method: http.MethodPost, path: "/api/shops/7/8/follows", authenticated: true, want: false},
		{name: "public rule without principal", method: http.MethodGet, path: "/api/members/42/followers", authenticated: false, want: true},
		{name: "method specific: GET rule does not cover POST", method: http.MethodPost, path: "/api/members/42/followers", authenticated: true, want: false},
		{name: "multi wildcard matches deep path", method: http.MethodGet, path: "/api/auth/members/42/profile", authenticated: false, want: true},
		{name: "any-method rule", method: http.MethodDelete, path: "/ws/chat/room1", authenticated: false, want: true},
		{name: "case sensitive", method: http.MethodGet, path: "/API/mypages/orders", authenticated: true, want: false},
		{name: "unmatched path uses default deny", method: http.MethodGet, path: "/api/unknown", authenticated: true, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := table.Allows(tt.method, tt.path, tt.authenticated); got != tt.want {
				t.Errorf("Allows(%s %s, auth=%v) = %v, want %v", tt.method, tt.path, tt.authenticated, got, tt.want)
			}
		})
	}
}

func TestRuleTable_FirstMatchWins(t *testing.T) {
	table := NewRuleTable([]Rule{
		{Method: http.MethodGet, Pattern: "/api/auth/members/me", Requirement: RequireAuthenticated},
		{Method: http.MethodGet, Pattern: "/api/auth/members/*", Requirement: RequirePublic},
	}, false)

	if table.Allows(http.MethodGet, "/api/auth/members/me", false) {
		t.Errorf("the earlier authenticated rule should win over the later public one")
	}
	if !table.Allows(http.MethodGet, "/api/auth/members/42", false) {
		t.Errorf("other member paths should fall through to the public rule")
	}
}

func TestRuleTable_DefaultAllow(t *testing.T) {
	table := NewRuleTable(nil, true)
	if !table.Allows(http.MethodGet, "/anything", false) {
		t.Errorf("empty table with default allow should permit")
	}
}

func TestDefaultRules_CatchAll(t *testing.T) {
	table := NewRuleTable(DefaultRules(), false)

	// The production list ends with a catch-all allow; unlisted paths pass.
	if !table.Allows(http.MethodGet, "/some/new/endpoint", false) {
		t.Errorf("catch-all rule should permit unlisted paths")
	}
	// Listed authenticated routes still require a principal.
	if table.Allows(http.MethodGet, "/api/mypages/orders", false) {
		t.Errorf("mypage orders must require authentication")
	}
	if table.Allows(http.MethodPost, "/api/shops/7/follows", false) {
		t.Errorf("follow toggle must require authentication")
	}
}
