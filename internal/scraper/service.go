// Package scraper runs the ingestion pipeline: fetch the dump, resolve the
// round and tick from its world line, skip ticks that are already stored,
// decode everything, and write the records into the round's partitions.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tombiddulph/BushtarionScraper/pkg/announce"
	"github.com/tombiddulph/BushtarionScraper/pkg/checkpoint"
	"github.com/tombiddulph/BushtarionScraper/pkg/dump"
	"github.com/tombiddulph/BushtarionScraper/pkg/logger"
	"github.com/tombiddulph/BushtarionScraper/pkg/metrics"
	"github.com/tombiddulph/BushtarionScraper/pkg/store"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Fetcher retrieves the raw dump body.
type Fetcher interface {
	Dump(ctx context.Context) (string, error)
}

// Service coordinates one scrape run end to end.
type Service struct {
	logger      *logger.Logger
	fetcher     Fetcher
	store       store.Store
	checkpoints checkpoint.Store
	announcer   announce.Announcer
	interval    time.Duration

	now func() time.Time
}

// NewService creates a new scraper service instance.
func NewService(
	l *logger.Logger,
	f Fetcher,
	st store.Store,
	cp checkpoint.Store,
	an announce.Announcer,
	interval time.Duration,
) *Service {
	return &Service{
		logger:      l,
		fetcher:     f,
		store:       st,
		checkpoints: cp,
		announcer:   an,
		interval:    interval,
		now:         time.Now,
	}
}

// Start runs the scrape on a fixed interval until the context is canceled.
// A failed run is logged and counted; the schedule keeps going.
func (s *Service) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		s.logger.Info("scrape run starting",
			zap.Time("next_run", s.now().Add(s.interval)))

		if err := s.Run(ctx); err != nil {
			s.logger.Error("scrape run failed", err)
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Run executes a single ingestion run. A failed fetch and an already
// ingested tick both end the run cleanly with no writes; structural parse
// failures and store failures are returned as run errors.
func (s *Service) Run(ctx context.Context) error {
	now := s.now()
	metrics.RunsTotal.Inc()

	content, err := s.fetcher.Dump(ctx)
	if err != nil {
		s.logger.Warn("dump fetch failed", zap.Error(err))
		metrics.FetchErrorsTotal.Inc()
		return nil
	}

	// Pre-pass: only the world line, to learn the round and tick before
	// touching the store or decoding the rest.
	world, err := dump.ScanWorld(content)
	if err != nil {
		metrics.ParseErrorsTotal.Inc()
		s.logger.Error("dump parse failed", err)
		return fmt.Errorf("scanning dump: %w", err)
	}
	if world == nil {
		metrics.ParseErrorsTotal.Inc()
		err := errors.New("dump contains no world line")
		s.logger.Error("dump parse failed", err)
		return err
	}

	round, tick := world.Round, world.CurrentTick
	runLog := s.logger.With(zap.Int("round", round), zap.Int("tick", tick))

	if s.seen(ctx, round, tick) {
		runLog.Warn("tick already ingested", zap.String("source", "checkpoint"))
		metrics.DuplicateTicksTotal.Inc()
		return nil
	}

	exists, err := s.store.HasWorldTick(ctx, round, tick)
	if err != nil {
		metrics.StoreErrorsTotal.Inc()
		return fmt.Errorf("checking world tick: %w", err)
	}
	if exists {
		runLog.Warn("tick already ingested", zap.String("source", "store"))
		metrics.DuplicateTicksTotal.Inc()
		return nil
	}

	records, err := dump.Parse(content)
	if err != nil {
		metrics.ParseErrorsTotal.Inc()
		s.logger.Error("dump parse failed", err)
		return fmt.Errorf("parsing dump: %w", err)
	}
	records.StampAll(now)

	if err := s.store.EnsurePartitions(ctx, round); err != nil {
		metrics.StoreErrorsTotal.Inc()
		return fmt.Errorf("ensuring partitions: %w", err)
	}

	if err := s.write(ctx, runLog, records); err != nil {
		metrics.StoreErrorsTotal.Inc()
		return err
	}

	if err := s.checkpoints.Save(ctx, checkpoint.Checkpoint{Round: round, Tick: tick}); err != nil {
		runLog.Warn("checkpoint save failed", zap.Error(err))
	}

	if err := s.announcer.Announce(ctx, announce.Event{
		Round:     round,
		Tick:      tick,
		Players:   len(records.Players),
		Alliances: len(records.Alliances),
		TimeAdded: now,
	}); err != nil {
		runLog.Warn("tick announce failed", zap.Error(err))
		metrics.AnnounceErrorsTotal.Inc()
	}

	elapsed := time.Since(now)
	metrics.RunDuration.Observe(elapsed.Seconds())
	runLog.Info("scrape run complete",
		zap.Int("players", len(records.Players)),
		zap.Int("alliances", len(records.Alliances)),
		zap.Duration("elapsed", elapsed))
	return nil
}

// seen consults the checkpoint fast path. Checkpoint errors only cost us
// the shortcut, so they are logged and ignored.
func (s *Service) seen(ctx context.Context, round, tick int) bool {
	cp, err := s.checkpoints.Load(ctx)
	if err != nil {
		s.logger.Warn("checkpoint load failed", zap.Error(err))
		return false
	}
	return cp != nil && cp.Round == round && cp.Tick == tick
}

// write issues the three record batches concurrently; they touch disjoint
// partitions. Upserts within a batch are sequential, and a failure does
// not roll back earlier writes from this run.
func (s *Service) write(ctx context.Context, runLog *logger.Logger, records *dump.Records) error {
	round := records.World.Round
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := s.store.InsertWorld(gctx, records.World); err != nil {
			if errors.Is(err, store.ErrDuplicateTick) {
				// A concurrent run got here first. The tick is recorded
				// either way, so this run's world write is a no-op.
				runLog.Warn("world tick written by concurrent run")
				return nil
			}
			return fmt.Errorf("writing world record: %w", err)
		}
		metrics.RecordsWrittenTotal.WithLabelValues("world").Inc()
		runLog.Debug("added world", zap.String("id", records.World.ID))
		return nil
	})

	g.Go(func() error {
		for _, p := range records.Players {
			if err := s.store.UpsertPlayer(gctx, round, p); err != nil {
				return fmt.Errorf("writing player record: %w", err)
			}
			metrics.RecordsWrittenTotal.WithLabelValues("player").Inc()
			runLog.Debug("added player", zap.String("pk", p.Pk))
		}
		return nil
	})

	g.Go(func() error {
		for _, a := range records.Alliances {
			if err := s.store.UpsertAlliance(gctx, round, a); err != nil {
				return fmt.Errorf("writing alliance record: %w", err)
			}
			metrics.RecordsWrittenTotal.WithLabelValues("alliance").Inc()
			runLog.Debug("added alliance", zap.String("pk", a.Pk))
		}
		return nil
	})

	return g.Wait()
}
