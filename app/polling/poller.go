package polling

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/vibast-solutions/ms-go-school-fees/app/entity"
	"github.com/vibast-solutions/ms-go-school-fees/app/factory"
	"github.com/vibast-solutions/ms-go-school-fees/app/provider"
)

const DefaultInterval = 5 * time.Second

var (
	ErrAlreadyRunning = errors.New("poller is already running")
	ErrNilSnapshot    = errors.New("provider returned no snapshot")
)

type Option func(*Poller)

func WithLogger(logger logrus.FieldLogger) Option {
	return func(p *Poller) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithOnUpdate registers fn to receive every successfully fetched snapshot.
// fn runs on the refreshing goroutine and must not modify the snapshot.
func WithOnUpdate(fn func(*entity.Snapshot)) Option {
	return func(p *Poller) {
		p.onUpdate = fn
	}
}

// Poller keeps the last good snapshot from a provider and refreshes it on a
// fixed interval while ShouldPoll holds. At most one read is outstanding at
// any time: a Refresh that arrives while another is in flight waits for and
// shares that result.
type Poller struct {
	provider provider.SnapshotProvider
	interval time.Duration
	logger   logrus.FieldLogger
	onUpdate func(*entity.Snapshot)

	group singleflight.Group

	mu       sync.RWMutex
	snapshot *entity.Snapshot

	runMu  sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewPoller(source provider.SnapshotProvider, interval time.Duration, opts ...Option) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	p := &Poller{
		provider: source,
		interval: interval,
		logger:   factory.NewModuleLogger("polling"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Snapshot returns the last successfully fetched snapshot, or nil before the
// first success. The returned value is shared and must be treated as read-only.
func (p *Poller) Snapshot() *entity.Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshot
}

// Active reports whether the loop would keep refreshing given the current
// snapshot. With no snapshot yet there is nothing to decide on, so it is true.
func (p *Poller) Active() bool {
	snap := p.Snapshot()
	return snap == nil || ShouldPoll(snap.Children, snap.Payments)
}

// Refresh reads a new snapshot, joining a read already in flight. The shared
// read runs under the context of the caller that started it; a caller whose
// own ctx ends first stops waiting and gets ctx.Err() while the read finishes.
func (p *Poller) Refresh(ctx context.Context) (*entity.Snapshot, error) {
	ch := p.group.DoChan("refresh", func() (interface{}, error) {
		return p.fetch(ctx)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*entity.Snapshot), nil
	}
}

func (p *Poller) fetch(ctx context.Context) (*entity.Snapshot, error) {
	ctx = factory.WithRefreshID(ctx, uuid.NewString())
	logger := factory.LoggerWithContext(p.logger, ctx)

	start := time.Now()
	snap, err := p.provider.Fetch(ctx)
	if err == nil && snap == nil {
		err = ErrNilSnapshot
	}
	latency := time.Since(start)
	if err != nil {
		logger.WithError(err).WithField("latency", latency.String()).Warn("refresh_failed")
		return nil, err
	}

	p.mu.Lock()
	p.snapshot = snap
	p.mu.Unlock()

	logger.WithFields(logrus.Fields{
		"latency":  latency.String(),
		"children": len(snap.Children),
		"payments": len(snap.Payments),
	}).Debug("refresh_completed")

	if p.onUpdate != nil {
		p.onUpdate(snap)
	}
	return snap, nil
}

// Run refreshes once, then once per interval until polling is no longer
// needed (returns nil) or ctx is done (returns ctx.Err()). Failed refreshes
// are logged and leave the previous snapshot in place.
func (p *Poller) Run(ctx context.Context) error {
	_, _ = p.Refresh(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !p.Active() {
			p.logger.Info("polling_stopped")
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			_, _ = p.Refresh(ctx)
		}
	}
}

// Start runs the loop in the background. The returned channel is closed when
// the loop exits, either on Stop, on ctx cancellation or because polling is
// no longer needed.
func (p *Poller) Start(ctx context.Context) (<-chan struct{}, error) {
	p.runMu.Lock()
	defer p.runMu.Unlock()

	if p.done != nil {
		return nil, ErrAlreadyRunning
	}

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	p.cancel, p.done = cancel, done

	go func() {
		err := p.Run(runCtx)
		if err != nil && !errors.Is(err, context.Canceled) {
			p.logger.WithError(err).Warn("polling_aborted")
		}

		p.runMu.Lock()
		if p.done == done {
			p.cancel()
			p.cancel, p.done = nil, nil
		}
		p.runMu.Unlock()
		close(done)
	}()

	return done, nil
}

// Stop cancels a running loop and waits for it to exit. The last snapshot is kept.
func (p *Poller) Stop() {
	p.runMu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.runMu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}
