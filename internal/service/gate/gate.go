// Package gate classifies page navigations before any page logic runs.
//
// The gate only looks at the request path and whether the session marker
// cookies are present. It never parses or verifies tokens; protected
// navigations that pass are marked for a secondary admin check.
package gate

import (
	"strings"
)

type Kind int

const (
	Allow Kind = iota
	Redirect
)

func (k Kind) String() string {
	if k == Redirect {
		return "redirect"
	}
	return "allow"
}

// Decision is the outcome of classifying one navigation.
type Decision struct {
	Kind   Kind
	Target string // redirect target, empty for Allow

	// NoCache asks for the redirect response to carry Cache-Control: no-store.
	NoCache bool
	// MarkAdminCheck asks downstream code to verify role/admin status.
	MarkAdminCheck bool
}

func (d Decision) String() string {
	switch {
	case d.Kind == Redirect:
		return "redirect:" + d.Target
	case d.MarkAdminCheck:
		return "allow:admin_check"
	default:
		return "allow"
	}
}

type Config struct {
	RootPath      string
	LoginPath     string
	DashboardPath string

	// InfraPrefixes and InfraExact describe build assets, framework internals,
	// the API namespace and the favicon.
	InfraPrefixes []string
	InfraExact    []string
}

func DefaultConfig() Config {
	return Config{
		RootPath:      "/",
		LoginPath:     "/login",
		DashboardPath: "/dashboard",
		InfraPrefixes: []string{"/_next/", "/static/", "/assets/", "/api/"},
		InfraExact:    []string{"/favicon.ico"},
	}
}

type Gate struct {
	cfg Config
}

// New returns a gate; zero fields of cfg fall back to DefaultConfig.
func New(cfg Config) *Gate {
	def := DefaultConfig()
	if cfg.RootPath == "" {
		cfg.RootPath = def.RootPath
	}
	if cfg.LoginPath == "" {
		cfg.LoginPath = def.LoginPath
	}
	if cfg.DashboardPath == "" {
		cfg.DashboardPath = def.DashboardPath
	}
	cfg.DashboardPath = strings.TrimSuffix(cfg.DashboardPath, "/")
	if cfg.InfraPrefixes == nil {
		cfg.InfraPrefixes = def.InfraPrefixes
	}
	if cfg.InfraExact == nil {
		cfg.InfraExact = def.InfraExact
	}
	return &Gate{cfg: cfg}
}

func (g *Gate) LoginPath() string     { return g.cfg.LoginPath }
func (g *Gate) DashboardPath() string { return g.cfg.DashboardPath }

// Classify decides what happens to a navigation. First match wins.
func (g *Gate) Classify(path string, hasSession bool) Decision {
	switch {
	case g.isInfrastructure(path):
		return Decision{Kind: Allow}

	case path == g.cfg.RootPath:
		return Decision{Kind: Redirect, Target: g.cfg.LoginPath}

	case path == g.cfg.LoginPath:
		if hasSession {
			return Decision{Kind: Redirect, Target: g.cfg.DashboardPath}
		}
		return Decision{Kind: Allow}

	case g.isProtected(path):
		if !hasSession {
			return Decision{Kind: Redirect, Target: g.cfg.LoginPath, NoCache: true}
		}
		return Decision{Kind: Allow, MarkAdminCheck: true}
	}

	return Decision{Kind: Allow}
}

// Matches reports whether the gate applies to path at all.
// Everything else (assets, API, favicon) bypasses it.
func (g *Gate) Matches(path string) bool {
	return path == g.cfg.RootPath || path == g.cfg.LoginPath || g.isProtected(path)
}

// IsProtected reports whether path lives under the dashboard namespace.
func (g *Gate) IsProtected(path string) bool {
	return g.isProtected(path)
}

func (g *Gate) isProtected(path string) bool {
	return path == g.cfg.DashboardPath || strings.HasPrefix(path, g.cfg.DashboardPath+"/")
}

func (g *Gate) isInfrastructure(path string) bool {
	for _, exact := range g.cfg.InfraExact {
		if path == exact {
			return true
		}
	}
	for _, prefix := range g.cfg.InfraPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
