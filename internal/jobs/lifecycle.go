package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// LifecycleStore is the subset of the booking repository the sweep needs.
type LifecycleStore interface {
	ConfirmPaid(ctx context.Context) (int64, error)
	CompletePastStays(ctx context.Context, now time.Time) (int64, error)
	MarkNoShows(ctx context.Context, now time.Time) (int64, error)
}

// Lifecycle runs the server-driven booking status transitions on a schedule:
// paid pending bookings become confirmed, confirmed stays past checkout
// become completed, confirmed stays whose check-in passed without payment
// become no-shows. Cancellation is always guest-driven and never happens
// here.
type Lifecycle struct {
	store    LifecycleStore
	schedule string
	cron     *cron.Cron
}

// NewLifecycle creates the lifecycle sweeper. schedule is a standard cron
// expression, e.g. "0 * * * *" for hourly.
func NewLifecycle(store LifecycleStore, schedule string) *Lifecycle {
	return &Lifecycle{
		store:    store,
		schedule: schedule,
		cron:     cron.New(),
	}
}

// Start schedules the sweep and runs it once immediately to catch up after
// downtime.
func (l *Lifecycle) Start() error {
	if _, err := l.cron.AddFunc(l.schedule, l.Sweep); err != nil {
		return err
	}
	l.cron.Start()
	go l.Sweep()
	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish.
func (l *Lifecycle) Stop() {
	ctx := l.cron.Stop()
	<-ctx.Done()
}

// Sweep applies both transitions once.
func (l *Lifecycle) Sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now().UTC()

	confirmed, err := l.store.ConfirmPaid(ctx)
	if err != nil {
		log.Error().Err(err).Msg("lifecycle sweep: confirming paid bookings failed")
	}

	completed, err := l.store.CompletePastStays(ctx, now)
	if err != nil {
		log.Error().Err(err).Msg("lifecycle sweep: completing past stays failed")
	}

	noShows, err := l.store.MarkNoShows(ctx, now)
	if err != nil {
		log.Error().Err(err).Msg("lifecycle sweep: marking no-shows failed")
	}

	if confirmed > 0 || completed > 0 || noShows > 0 {
		log.Info().
			Int64("confirmed", confirmed).
			Int64("completed", completed).
			Int64("no_shows", noShows).
			Msg("booking lifecycle sweep applied transitions")
	}
}
