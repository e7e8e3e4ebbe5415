package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-baseball/internal/domain/intel"
	"github.com/riskibarqy/fantasy-baseball/internal/platform/logging"
	"github.com/robfig/cron/v3"
	"github.com/sourcegraph/conc"
)

const (
	DefaultWarmSchedule = "0 */6 * * *"
	warmTimeout         = 2 * time.Minute
)

// CacheWarmer periodically fetches the shared leaderboards and the community
// feed so that the first request after expiry does not pay for the download.
type CacheWarmer struct {
	statcast   StatcastProvider
	discipline DisciplineProvider
	social     SocialFeed
	schedule   string
	season     int
	logger     *logging.Logger
	now        func() time.Time
	cron       *cron.Cron
}

func NewCacheWarmer(
	statcast StatcastProvider,
	discipline DisciplineProvider,
	social SocialFeed,
	schedule string,
	season int,
	logger *logging.Logger,
) *CacheWarmer {
	if logger == nil {
		logger = logging.Default()
	}
	if strings.TrimSpace(schedule) == "" {
		schedule = DefaultWarmSchedule
	}
	return &CacheWarmer{
		statcast:   statcast,
		discipline: discipline,
		social:     social,
		schedule:   schedule,
		season:     season,
		logger:     logger,
		now:        time.Now,
		cron:       cron.New(),
	}
}

// Start registers the warm job and runs one warm pass in the background.
func (w *CacheWarmer) Start() error {
	if _, err := w.cron.AddFunc(w.schedule, w.run); err != nil {
		return fmt.Errorf("failed to schedule cache warm: %w", err)
	}
	w.cron.Start()
	w.logger.Info("cache warmer started", "schedule", w.schedule)

	go w.run()
	return nil
}

// Stop halts the schedule and waits for a running pass to finish.
func (w *CacheWarmer) Stop() {
	<-w.cron.Stop().Done()
	w.logger.Info("cache warmer stopped")
}

func (w *CacheWarmer) run() {
	ctx, cancel := context.WithTimeout(context.Background(), warmTimeout)
	defer cancel()

	started := w.now()
	failed := w.Warm(ctx)
	w.logger.Info("cache warm finished", "failed", failed, "elapsed", time.Since(started).String())
}

// Warm fetches every shared dataset once and returns how many fetches failed.
func (w *CacheWarmer) Warm(ctx context.Context) int {
	year := seasonYear(w.season, w.now())

	var (
		wg      conc.WaitGroup
		results = make(chan error, 5)
	)
	for _, playerType := range []intel.PlayerType{intel.Batter, intel.Pitcher} {
		wg.Go(func() {
			_, err := w.statcast.Boards(ctx, playerType, year)
			results <- w.check(ctx, "savant", playerType.String(), err)
		})
		wg.Go(func() {
			_, err := w.discipline.Discipline(ctx, playerType, year)
			results <- w.check(ctx, "fangraphs", playerType.String(), err)
		})
	}
	wg.Go(func() {
		_, err := w.social.Hot(ctx)
		results <- w.check(ctx, "reddit", "hot", err)
	})
	wg.Wait()
	close(results)

	failed := 0
	for err := range results {
		if err != nil {
			failed++
		}
	}
	return failed
}

func (w *CacheWarmer) check(ctx context.Context, source, dataset string, err error) error {
	if err != nil {
		w.logger.WarnContext(ctx, "cache warm fetch failed", "source", source, "dataset", dataset, "error", err)
	}
	return err
}
