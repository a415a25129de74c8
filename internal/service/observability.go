package service

import (
	"context"
	"sort"
	"time"

	"github.com/alexanderramin/daybook/internal/logging"
)

// UseCaseEvent describes one completed entry or recommendation use case.
type UseCaseEvent struct {
	Name      string
	StartedAt time.Time
	Duration  time.Duration
	Success   bool
	Err       error
	Fields    map[string]any
}

// Degraded reports whether the use case succeeded only by absorbing a
// failure: an external catalog error or a placeholder entry body.
func (e UseCaseEvent) Degraded() bool {
	if _, ok := e.Fields["external_error"]; ok {
		return true
	}
	d, _ := e.Fields["degraded"].(bool)
	return d
}

// UseCaseObserver receives use-case execution events.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver ignores all events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logUseCaseObserver struct {
	logger logging.Logger
}

// NewLogUseCaseObserver logs failures at error, degraded outcomes at warn
// and everything else at debug.
func NewLogUseCaseObserver(logger logging.Logger) UseCaseObserver {
	if logger == nil {
		return NoopUseCaseObserver{}
	}
	return &logUseCaseObserver{logger: logger.With("component", "service")}
}

func (o *logUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	keys := make([]string, 0, len(event.Fields))
	for k := range event.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]any, 0, 6+len(keys)*2)
	args = append(args,
		"use_case", event.Name,
		"duration_ms", event.Duration.Milliseconds(),
		"success", event.Success,
	)
	for _, k := range keys {
		args = append(args, k, event.Fields[k])
	}

	switch {
	case event.Err != nil:
		o.logger.Error(ctx, "use case failed", append(args, "error", event.Err.Error())...)
	case event.Degraded():
		o.logger.Warn(ctx, "use case degraded", args...)
	default:
		o.logger.Debug(ctx, "use case completed", args...)
	}
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopUseCaseObserver{}
}
