package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/omotosho-cloud/church-visitor-manager/internal/services"
)

// Queue scan cadence. Delivery granularity is at-least-a-minute: an item
// scheduled for time T sends somewhere in [T, T+interval], later if a tick
// overruns.
const jobInterval = time.Minute

// JobManager owns the lifecycle of the follow-up processor job. The
// automation toggle in the dashboard starts and stops it through here.
type JobManager struct {
	currentJob *Job
	mu         sync.Mutex
	processor  services.ProcessorService
	wg         *sync.WaitGroup
	logger     zerolog.Logger
}

func NewJobManager(processor services.ProcessorService, wg *sync.WaitGroup, logger zerolog.Logger) *JobManager {
	return &JobManager{
		processor: processor,
		wg:        wg,
		logger:    logger,
	}
}

func (m *JobManager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.currentJob != nil {
		return errors.New("job is already running")
	}
	m.wg.Add(1)

	m.currentJob = NewJob(jobInterval, m.processor, m.logger)
	m.currentJob.Start(ctx, m.wg)

	return nil
}

func (m *JobManager) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.currentJob == nil {
		return errors.New("actively running job not found")
	}

	m.currentJob.Stop()
	m.currentJob = nil
	m.wg.Done()
	return nil
}

func (m *JobManager) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentJob != nil
}
