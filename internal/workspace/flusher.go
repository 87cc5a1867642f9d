package workspace

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// StartFlusher retries dirty slots on schedule until ctx is done. The
// returned channel is closed once the scheduler has stopped.
func (w *Workspace) StartFlusher(ctx context.Context, schedule cron.Schedule) <-chan struct{} {
	c := cron.New()
	c.Schedule(schedule, cron.FuncJob(func() {
		dirty := w.Dirty()
		if len(dirty) == 0 {
			return
		}
		if err := w.Flush(ctx); err != nil {
			w.logger.Warn("flush incomplete", slog.Any("slots", dirty), slog.String("error", err.Error()))
			return
		}
		w.logger.Info("flushed dirty snapshots", slog.Any("slots", dirty))
	}))
	c.Start()

	done := make(chan struct{})
	go func() {
		<-ctx.Done()
		<-c.Stop().Done()
		close(done)
	}()
	return done
}
