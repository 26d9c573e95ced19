package worker

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/omotosho-cloud/church-visitor-manager/internal/metrics"
	"github.com/omotosho-cloud/church-visitor-manager/internal/services"
)

// Job runs the queue processor on a fixed tick, plus one immediate run at
// start. A tick that fires while the previous run is still executing is
// skipped entirely; the isRunning flag is the only concurrency control, so
// this guards a single process only.
type Job struct {
	ticker    *time.Ticker
	quit      chan struct{}
	processor services.ProcessorService
	isRunning bool
	mu        sync.Mutex
	logger    zerolog.Logger
}

func NewJob(interval time.Duration, processor services.ProcessorService, logger zerolog.Logger) *Job {
	return &Job{
		ticker:    time.NewTicker(interval),
		quit:      make(chan struct{}),
		processor: processor,
		logger:    logger.With().Str("component", "worker").Logger(),
	}
}

func (j *Job) Start(ctx context.Context, wg *sync.WaitGroup) {
	j.logger.Info().Msg("follow-up processor job started")
	go func() {
		// first run fires immediately so due items left over from a
		// restart are not delayed by a full interval
		j.run(ctx)

		for {
			select {
			case <-j.ticker.C:
				j.run(ctx)
			case <-j.quit:
				j.ticker.Stop()
				j.logger.Info().Msg("follow-up processor job stopped by toggle")
				return
			case <-ctx.Done():
				j.ticker.Stop()
				j.logger.Info().Msg("shutdown signal received, stopping follow-up processor job")
				wg.Done()
				return
			}
		}
	}()
}

func (j *Job) Stop() {
	close(j.quit)
}

func (j *Job) run(ctx context.Context) {
	j.mu.Lock()
	if j.isRunning {
		j.mu.Unlock()
		j.logger.Warn().Msg("previous run still executing, skipping this tick")
		metrics.RecordSkippedTick()
		return
	}
	j.isRunning = true
	j.mu.Unlock()

	defer func() {
		j.mu.Lock()
		j.isRunning = false
		j.mu.Unlock()
	}()

	if err := j.processor.ProcessDueMessages(ctx); err != nil {
		j.logger.Error().Err(err).Msg("unexpected error while processing due messages")
	}
}
