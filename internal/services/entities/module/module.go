// Package module wires entity detection into the API using modkit
package module

import (
	"net/http"
	"strings"

	"chatner/internal/modkit"
	"chatner/internal/modkit/httpkit"
	str "chatner/internal/platform/strings"
	detdom "chatner/internal/services/detections/domain"
	enthttp "chatner/internal/services/entities/http"
	entsvc "chatner/internal/services/entities/service"
	gazdom "chatner/internal/services/gazetteer/domain"
)

// PortsIn are the cross-module ports entities consume, injected via
// modkit.WithPorts by the composition root
type PortsIn struct {
	Places gazdom.ReaderPort
	Events detdom.SinkPort
}

// Ports is the port set entities expose for cross-module wiring
type Ports struct {
	Detect entsvc.Service
}

// Module implements the entities module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws   []func(http.Handler) http.Handler
	ports any

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc entsvc.Service
}

// New constructs the entities module; lexicon tables and engines are built
// here, once, so a broken table fails startup
func New(deps modkit.Deps, opts ...modkit.Option) (modkit.Module, error) {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("entities"),
		modkit.WithPrefix("/entities"),
	}, opts...)...)

	langs := strings.Split(deps.Cfg.MayString("ENTITIES_LANGUAGES", "en,hi"), ",")
	svcOpts := []entsvc.Option{
		entsvc.WithBatchWorkers(deps.Cfg.MayInt("ENTITIES_BATCH_WORKERS", entsvc.DefaultBatchWorkers)),
	}
	if in, ok := b.Ports.(PortsIn); ok {
		if in.Places != nil {
			svcOpts = append(svcOpts, entsvc.WithPlaces(in.Places))
		}
		if in.Events != nil {
			svcOpts = append(svcOpts, entsvc.WithSink(in.Events))
		}
	}

	svc, err := entsvc.New(langs, svcOpts...)
	if err != nil {
		return nil, err
	}

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Detect: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		enthttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m, nil
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
