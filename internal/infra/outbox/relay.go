package outbox

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"gear-ledger/internal/pkg/clock"
	"gear-ledger/internal/pkg/config"
	"gear-ledger/internal/pkg/errs"
	"gear-ledger/internal/usecase/shared"

	"github.com/google/uuid"
)

const maxRetryDelay = time.Hour

// Relay drains queued notification jobs on a fixed interval. A poll leases a
// batch in one short unit of work, delivers each job outside any transaction
// and records every outcome in its own unit, so a retried commit never
// redelivers. Jobs whose outcome is lost are picked up again once the lease
// lapses.
type Relay struct {
	uow    shared.UnitOfWork
	sender Sender
	clock  clock.Clock
	cfg    config.OutboxConfig

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewRelay(uow shared.UnitOfWork, sender Sender, clk clock.Clock, cfg config.OutboxConfig) *Relay {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 20
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Second
	}
	if cfg.LeaseTimeout <= 0 {
		cfg.LeaseTimeout = 2 * time.Minute
	}
	return &Relay{uow: uow, sender: sender, clock: clk, cfg: cfg}
}

// Start launches the polling goroutine. Calling Start twice is a no-op.
func (r *Relay) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.done = make(chan struct{})

	go r.loop(ctx, r.done)
	slog.Info("outbox relay started", "interval", r.cfg.PollInterval.String(), "batch_size", r.cfg.BatchSize)
}

// Stop cancels the loop and waits for the in-flight poll, or for ctx.
func (r *Relay) Stop(ctx context.Context) error {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel, r.done = nil, nil
	r.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()

	select {
	case <-done:
		slog.Info("outbox relay stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Relay) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(r.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := r.RunOnce(ctx); err != nil {
				if errors.Is(err, context.Canceled) {
					return
				}
				slog.Warn("outbox poll failed", "error", err.Error())
			}
		}
	}
}

// RunOnce leases and delivers one batch of due jobs, returning how many were
// claimed. Delivery continues past a failed outcome write; the first such
// error is returned.
func (r *Relay) RunOnce(ctx context.Context) (int, error) {
	var jobs []shared.NotificationJob
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := r.clock.Now()
		claimed, err := tx.Notifications().ClaimDue(ctx, tx.DB(), now, now.Add(r.cfg.LeaseTimeout), r.cfg.BatchSize)
		if err != nil {
			return err
		}
		jobs = claimed
		return nil
	})
	if err != nil {
		return 0, errs.Mark(err, errs.ErrNotificationFailure)
	}

	var firstErr error
	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			return len(jobs), err
		}
		if err := r.deliver(ctx, job); err != nil {
			slog.Error("failed to record notification outcome", "job_id", job.ID.String(), "error", err.Error())
			if firstErr == nil {
				firstErr = errs.Mark(err, errs.ErrNotificationFailure)
			}
		}
	}
	return len(jobs), firstErr
}

// deliver sends job and then records the outcome in a unit of its own.
func (r *Relay) deliver(ctx context.Context, job shared.NotificationJob) error {
	msg, err := Decode(job.Payload)
	if err != nil {
		slog.Error("dropping undecodable notification job", "job_id", job.ID.String(), "error", err.Error())
		return r.record(ctx, job.ID, shared.JobStatusFailed, err.Error(), r.clock.Now())
	}

	sendErr := r.sender.Send(ctx, job, msg)
	now := r.clock.Now()
	if sendErr == nil {
		return r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Notifications().MarkSent(ctx, tx.DB(), job.ID)
		})
	}

	attempts := job.Attempts + 1
	if attempts >= r.cfg.MaxAttempts {
		slog.Error("notification job failed permanently",
			"job_id", job.ID.String(),
			"attempts", attempts,
			"error", sendErr.Error())
		return r.record(ctx, job.ID, shared.JobStatusFailed, sendErr.Error(), now)
	}

	next := now.Add(RetryDelay(r.cfg.PollInterval, attempts))
	slog.Warn("notification delivery failed, rescheduling",
		"job_id", job.ID.String(),
		"attempts", attempts,
		"next_run_at", next.Format(time.RFC3339),
		"error", sendErr.Error())
	return r.record(ctx, job.ID, shared.JobStatusQueued, sendErr.Error(), next)
}

func (r *Relay) record(ctx context.Context, jobID uuid.UUID, status, lastError string, runAt time.Time) error {
	return r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Notifications().MarkRetry(ctx, tx.DB(), jobID, status, lastError, runAt)
	})
}

// RetryDelay doubles base per attempt, capped at one hour.
func RetryDelay(base time.Duration, attempts int) time.Duration {
	if attempts < 1 {
		attempts = 1
	}
	d := base
	for i := 1; i < attempts; i++ {
		d *= 2
		if d >= maxRetryDelay {
			return maxRetryDelay
		}
	}
	return d
}
