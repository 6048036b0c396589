package services

import (
	"context"
	"sync"
	"time"

	"github.com/careaxis/copilot/internal/domain/entities"
	"github.com/careaxis/copilot/internal/domain/providers"
	"github.com/careaxis/copilot/internal/infrastructure/observability"
)

// PatientPoller periodically re-fetches the patient list for the reports
// view. Teardown is explicit and tied to the view's lifecycle so stale
// updates never fire after navigation away.
type PatientPoller struct {
	directory providers.PatientDirectory
	interval  time.Duration
	onUpdate  func([]entities.Patient)

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewPatientPoller creates a poller that delivers each fetched list to
// onUpdate
func NewPatientPoller(directory providers.PatientDirectory, interval time.Duration, onUpdate func([]entities.Patient)) *PatientPoller {
	return &PatientPoller{
		directory: directory,
		interval:  interval,
		onUpdate:  onUpdate,
	}
}

// Start fetches immediately and then on every tick until the context is
// cancelled or Stop is called. Calling Start on a running poller is a
// no-op.
func (p *PatientPoller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})

	go p.run(ctx, p.done)
}

func (p *PatientPoller) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	p.fetch(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			observability.LoggerFromContext(ctx).Debug().Msg("patient poller stopped")
			return
		case <-ticker.C:
			p.fetch(ctx)
		}
	}
}

func (p *PatientPoller) fetch(ctx context.Context) {
	patients, err := p.directory.ListPatients(ctx)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Msg("patient list refresh failed")
		return
	}
	if ctx.Err() != nil {
		return
	}
	p.onUpdate(patients)
}

// Stop tears the poller down and waits for the loop to exit. Idempotent.
func (p *PatientPoller) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	done := p.done
	p.cancel = nil
	p.done = nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}
