// Package module wires detection event recording into the API using modkit
package module

import (
	"net/http"

	"chatner/internal/modkit"
	"chatner/internal/modkit/httpkit"
	str "chatner/internal/platform/strings"
	"chatner/internal/services/detections/domain"
	dethttp "chatner/internal/services/detections/http"
	detrepo "chatner/internal/services/detections/repo"
	detsvc "chatner/internal/services/detections/service"
)

// Ports is the port set detections expose for cross-module wiring
type Ports struct {
	Sink domain.SinkPort
}

// Module implements the detections module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws   []func(http.Handler) http.Handler
	ports any

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc  *detsvc.Service
	repo *detrepo.CH
}

// New constructs the detections module; without a clickhouse connection the
// sink becomes a no-op and no routes are mounted
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("detections"),
		modkit.WithPrefix("/detections"),
	}, opts...)...)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
	}

	if deps.CH == nil {
		m.ports = Ports{Sink: noopSink{}}
		m.register = b.Register
		return m
	}

	m.repo = detrepo.NewCH(deps.CH)
	m.svc = detsvc.New(m.repo, detsvc.Config{
		QueueDepth: deps.Cfg.MayInt("DETECTIONS_QUEUE", 256),
		MaxBatch:   deps.Cfg.MayInt("DETECTIONS_BATCH", 500),
	})
	m.ports = Ports{Sink: m.svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		dethttp.Register(r, m.repo)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	if m.repo == nil {
		return
	}
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

// Close stops the background writer, flushing anything pending
func (m *Module) Close() {
	if m.svc != nil {
		m.svc.Close()
	}
}

// noopSink swallows events when recording is disabled
type noopSink struct{}

func (noopSink) Enqueue([]domain.Event) {}
