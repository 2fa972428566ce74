// chatner-scan replays a window of recorded detection events through the
// current engines and records fresh events stamped with the current version,
// so engine changes can be compared against historical traffic
package main

import (
	"context"
	"flag"
	"log"
	"strings"
	"time"

	"chatner/internal/platform/config"
	"chatner/internal/platform/logger"
	pnet "chatner/internal/platform/net"
	"chatner/internal/platform/store"

	detrepo "chatner/internal/services/detections/repo"
	detsvc "chatner/internal/services/detections/service"
	entdom "chatner/internal/services/entities/domain"
	entsvc "chatner/internal/services/entities/service"
)

func main() {
	root := config.New()
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_")
	l := logger.Get()

	var (
		startStr = flag.String("start", "", "inclusive hour, e.g. 2026-08-01T00")
		endStr   = flag.String("end", "", "exclusive hour, e.g. 2026-08-01T03")
		limit    = flag.Int("limit", 10000, "max events to replay")
		langs    = flag.String("langs", "en,hi", "comma separated lexicon languages")
	)
	flag.Parse()

	if *startStr == "" || *endStr == "" {
		log.Fatal("start/end are required (hour resolution)")
	}
	start, err := time.Parse("2006-01-02T15", *startStr)
	if err != nil {
		log.Fatalf("bad -start: %v", err)
	}
	end, err := time.Parse("2006-01-02T15", *endStr)
	if err != nil {
		log.Fatalf("bad -end: %v", err)
	}
	if !start.Before(end) {
		log.Fatal("start must be < end")
	}

	ctx := context.Background()
	st, err := store.Open(ctx, store.Config{
		AppName: "chatner",
		CH: store.CHConfig{
			Enabled: true,
			URL:     chCfg.MustString("DBURL"),
			Role:    "scan",
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

	repo := detrepo.NewCH(st.CH)
	sink := detsvc.New(repo, detsvc.Config{})

	svc, err := entsvc.New(strings.Split(*langs, ","), entsvc.WithSink(sink))
	if err != nil {
		l.Panic().Err(err).Msg("engine construction failed")
	}

	evs, err := repo.ListRange(ctx, start.UTC(), end.UTC(), *limit)
	if err != nil {
		l.Panic().Err(err).Msg("list range failed")
	}

	replayed, skipped := 0, 0
	for _, ev := range evs {
		// city lookups need postgres, which the scan job does not open
		if ev.Text == "" || ev.EntityType == string(entdom.TypeCity) {
			skipped++
			continue
		}
		// fresh events keep the original correlation ids so runs can be joined
		evCtx := pnet.WithRequest(ctx, ev.RequestID, ev.ConversationID)
		if _, err := svc.Detect(evCtx, entdom.EntityType(ev.EntityType), entdom.DetectInput{
			Text:   ev.Text,
			Locale: ev.Locale,
		}); err != nil {
			l.Warn().Err(err).Str("id", ev.ID).Msg("replay failed")
			continue
		}
		replayed++
	}

	// drain the writer before exit
	sink.Close()
	l.Info().Int("replayed", replayed).Int("skipped", skipped).Msg("scan complete")
}
