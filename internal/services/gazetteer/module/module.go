// Package module wires the gazetteer into the API using modkit
package module

import (
	"net/http"

	"chatner/internal/modkit"
	"chatner/internal/modkit/httpkit"
	str "chatner/internal/platform/strings"
	gazhttp "chatner/internal/services/gazetteer/http"
	gazrepo "chatner/internal/services/gazetteer/repo"
	gazsvc "chatner/internal/services/gazetteer/service"
)

// Ports is the port set the gazetteer exposes for cross-module wiring
type Ports struct {
	Reader gazsvc.Service
}

// Module implements the gazetteer module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws   []func(http.Handler) http.Handler
	ports any

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc gazsvc.Service
}

// New constructs the gazetteer module; a nil deps.PG degrades lookups to
// empty results instead of failing construction
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("gazetteer"),
		modkit.WithPrefix("/gazetteer"),
	}, opts...)...)

	svc := gazsvc.New(deps.PG, gazrepo.NewPG())

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Reader: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		gazhttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }
