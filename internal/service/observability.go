package service

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"time"
)

// UseCaseEvent is emitted once per service call.
type UseCaseEvent struct {
	Name      string
	StartedAt time.Time
	Duration  time.Duration
	Success   bool
	Err       error
	Fields    map[string]any
}

// UseCaseObserver receives use-case events. Implementations must be safe for
// concurrent use.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver drops every event.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logUseCaseObserver struct {
	logger *slog.Logger
}

// NewLogUseCaseObserver writes one slog text line per event to w.
func NewLogUseCaseObserver(w io.Writer) UseCaseObserver {
	if w == nil {
		return NoopUseCaseObserver{}
	}
	return &logUseCaseObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *logUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	keys := make([]string, 0, len(event.Fields))
	for k := range event.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attrs := make([]any, 0, 6+len(keys)*2)
	attrs = append(attrs,
		"use_case", event.Name,
		"duration_ms", event.Duration.Milliseconds(),
		"success", event.Success,
	)
	for _, k := range keys {
		attrs = append(attrs, k, event.Fields[k])
	}
	if event.Err != nil {
		attrs = append(attrs, "error", event.Err.Error())
		o.logger.ErrorContext(ctx, "tably_use_case", attrs...)
		return
	}
	o.logger.InfoContext(ctx, "tably_use_case", attrs...)
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopUseCaseObserver{}
}

// useCaseSpan collects fields for one call and reports them on end.
type useCaseSpan struct {
	obs    UseCaseObserver
	name   string
	start  time.Time
	fields map[string]any
}

func startUseCase(obs UseCaseObserver, name string) *useCaseSpan {
	return &useCaseSpan{obs: obs, name: name, start: time.Now(), fields: map[string]any{}}
}

func (s *useCaseSpan) set(key string, value any) {
	s.fields[key] = value
}

func (s *useCaseSpan) end(ctx context.Context, err error) {
	s.obs.ObserveUseCase(ctx, UseCaseEvent{
		Name:      s.name,
		StartedAt: s.start,
		Duration:  time.Since(s.start),
		Success:   err == nil,
		Err:       err,
		Fields:    s.fields,
	})
}
