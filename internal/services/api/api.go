// Package api composes the HTTP API for the application
package api

import (
	stdhttp "net/http"

	"chatner/internal/platform/config"
	"chatner/internal/platform/logger"
	phttp "chatner/internal/platform/net/http"
	"chatner/internal/platform/store"

	"chatner/internal/modkit"
	"chatner/internal/modkit/httpkit"
	"chatner/internal/modkit/module"

	"chatner/internal/core/version"
	detmod "chatner/internal/services/detections/module"
	entmod "chatner/internal/services/entities/module"
	gazmod "chatner/internal/services/gazetteer/module"
)

// Options are the API options
type Options struct {
	Config config.Conf
	Store  *store.Store
	Logger *logger.Logger
}

// Mount mounts the API service onto the given router and returns a closer
// that flushes background writers
func Mount(r phttp.Router, opt Options) (func(), error) {
	deps := modkit.Deps{
		Log: *opt.Logger,
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		CH:  opt.Store.CH,
	}

	// infrastructure modules first so their ports can be injected
	gaz := gazmod.New(deps)
	det := detmod.New(deps)

	ents, err := entmod.New(deps, modkit.WithPorts(entmod.PortsIn{
		Places: module.MustPortsOf[gazmod.Ports](gaz).Reader,
		Events: module.MustPortsOf[detmod.Ports](det).Sink,
	}))
	if err != nil {
		return nil, err
	}

	mods := []module.Module{gaz, det, ents}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		httpkit.Get(api, "/version", func(*stdhttp.Request) (any, error) {
			return version.Info(), nil
		})

		for _, m := range mods {
			// register each module's ports under its own name for cross-module lookups
			module.Register(m.Name(), m.Ports())

			// mount module routes under its prefix
			m.MountRoutes(api)
		}
	})

	closer := func() {
		if c, ok := det.(interface{ Close() }); ok {
			c.Close()
		}
	}
	return closer, nil
}
