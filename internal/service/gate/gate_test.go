package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGate_Classify(t *testing.T) {
	g := New(DefaultConfig())

	tests := []struct {
		name       string
		path       string
		hasSession bool
		want       Decision
	}{
		{name: "root without session", path: "/", want: Decision{Kind: Redirect, Target: "/login"}},
		{name: "root with session", path: "/", hasSession: true, want: Decision{Kind: Redirect, Target: "/login"}},
		{name: "login without session", path: "/login", want: Decision{Kind: Allow}},
		{name: "login with session", path: "/login", hasSession: true, want: Decision{Kind: Redirect, Target: "/dashboard"}},
		{name: "dashboard page without session", path: "/dashboard/merchants", want: Decision{Kind: Redirect, Target: "/login", NoCache: true}},
		{name: "dashboard page with session", path: "/dashboard/merchants", hasSession: true, want: Decision{Kind: Allow, MarkAdminCheck: true}},
		{name: "dashboard root with session", path: "/dashboard", hasSession: true, want: Decision{Kind: Allow, MarkAdminCheck: true}},
		{name: "dashboard root without session", path: "/dashboard", want: Decision{Kind: Redirect, Target: "/login", NoCache: true}},
		{name: "api without session", path: "/api/anything", want: Decision{Kind: Allow}},
		{name: "api with session", path: "/api/anything", hasSession: true, want: Decision{Kind: Allow}},
		{name: "build assets", path: "/_next/static/chunk.js", want: Decision{Kind: Allow}},
		{name: "favicon", path: "/favicon.ico", want: Decision{Kind: Allow}},
		{name: "lookalike prefix is not protected", path: "/dashboards", want: Decision{Kind: Allow}},
		{name: "other path", path: "/about", want: Decision{Kind: Allow}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.Classify(tt.path, tt.hasSession))
		})
	}
}

func TestGate_InfrastructureWinsOverProtectedPrefix(t *testing.T) {
	g := New(Config{InfraPrefixes: []string{"/dashboard/static/"}})

	assert.Equal(t, Decision{Kind: Allow}, g.Classify("/dashboard/static/logo.svg", false))
	assert.Equal(t, Decision{Kind: Redirect, Target: "/login", NoCache: true}, g.Classify("/dashboard/drivers", false))
}

func TestGate_Matches(t *testing.T) {
	g := New(DefaultConfig())

	for _, p := range []string{"/", "/login", "/dashboard", "/dashboard/transactions/42"} {
		assert.True(t, g.Matches(p), p)
	}
	for _, p := range []string{"/api/drivers", "/favicon.ico", "/_next/image", "/health", "/dashboardx"} {
		assert.False(t, g.Matches(p), p)
	}
}

func TestNew_Defaults(t *testing.T) {
	g := New(Config{DashboardPath: "/admin/"})

	assert.Equal(t, "/login", g.LoginPath())
	assert.Equal(t, "/admin", g.DashboardPath())
	assert.Equal(t, Decision{Kind: Redirect, Target: "/admin"}, g.Classify("/login", true))
	assert.Equal(t, Decision{Kind: Allow}, g.Classify("/api/x", false))
}

func TestDecision_String(t *testing.T) {
	assert.Equal(t, "redirect:/login", Decision{Kind: Redirect, Target: "/login"}.String())
	assert.Equal(t, "allow:admin_check", Decision{Kind: Allow, MarkAdminCheck: true}.String())
	assert.Equal(t, "allow", Decision{}.String())
}
