package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

const sideEffectTimeout = 10 * time.Second

// sideEffects runs post-commit work (event publishing, customer messages) in
// the background. Failures are logged and never reach the caller.
type sideEffects struct {
	wg      sync.WaitGroup
	logger  *slog.Logger
	timeout time.Duration
}

func newSideEffects(logger *slog.Logger) *sideEffects {
	return &sideEffects{logger: logger, timeout: sideEffectTimeout}
}

// run starts fn on a context that survives the request but is bounded by
// the side-effect timeout.
func (e *sideEffects) run(ctx context.Context, name string, fn func(ctx context.Context) error) {
	detached := context.WithoutCancel(ctx)
	reqID := middleware.GetReqID(ctx)

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		ctx, cancel := context.WithTimeout(detached, e.timeout)
		defer cancel()

		if err := fn(ctx); err != nil {
			e.logger.Warn(name+" failed", "request_id", reqID, "error", err)
		}
	}()
}

// Wait blocks until every started side effect has returned.
func (e *sideEffects) Wait() {
	e.wg.Wait()
}

func (s *OrderService) logFor(ctx context.Context) *slog.Logger {
	return loggerFor(ctx, s.logger)
}

func loggerFor(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if id := middleware.GetReqID(ctx); id != "" {
		return logger.With("request_id", id)
	}
	return logger
}
