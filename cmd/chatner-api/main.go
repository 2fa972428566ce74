package main

import (
	"context"
	"os/signal"
	"syscall"

	"chatner/internal/modkit/repokit"
	"chatner/internal/platform/config"
	"chatner/internal/platform/logger"
	phttp "chatner/internal/platform/net/http"
	"chatner/internal/platform/store"

	"chatner/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	pgCfg := root.Prefix("SERVICE_PGSQL_")      // pgCfg lives under SERVICE_PGSQL_*
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_") // chCfg lives under SERVICE_CLICKHOUSE_*

	// bring up logging early
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// open the platform store; both backends are optional here, the engines
	// themselves need neither
	st, err := store.Open(ctx, store.Config{
		AppName: "chatner",
		PG: store.PGConfig{
			Enabled:     pgCfg.MayBool("ENABLED", false),
			URL:         pgCfg.MayString("DBURL", ""),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", false),
		},
		CH: store.CHConfig{
			Enabled: chCfg.MayBool("ENABLED", false),
			URL:     chCfg.MayString("DBURL", ""),
			Role:    "api",
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// fail fast when a configured backend is unreachable
	repokit.MustGuard(ctx, st)

	// http server (reads CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	// mount the API
	closer, err := api.Mount(srv.Router(), api.Options{
		Config: apiCfg,
		Store:  st,
		Logger: l,
	})
	if err != nil {
		l.Panic().Err(err).Msg("api.Mount failed")
	}
	defer closer()

	// shut the listener down when the process is signalled
	go func() {
		<-ctx.Done()
		if err := srv.Shutdown(context.Background()); err != nil {
			l.Error().Err(err).Msg("http shutdown failed")
		}
	}()

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
