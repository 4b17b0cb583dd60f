package watch

import (
	"context"

	"github.com/willibrandon/gohintpath/observability"
)

// Handler performs the rewrite an Action asks for.
type Handler func(ctx context.Context, action Action) error

// Loop feeds a Source's notifications to a Machine and hands every resulting
// Action to a Handler. Notifications, state changes and handler calls all happen
// on the goroutine that calls Run.
type Loop struct {
	Machine *Machine
	Source  *Source
	Handler Handler
	Logger  observability.Logger
}

// Run processes notifications until ctx is cancelled or the source is closed. A
// handler error is logged and does not stop the loop.
func (l *Loop) Run(ctx context.Context) error {
	logger := l.Logger
	if logger == nil {
		logger = observability.NewNullLogger()
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case n, ok := <-l.Source.Notifications():
			if !ok {
				return nil
			}
			for _, ev := range l.Source.Translate(n) {
				l.dispatch(ctx, logger, ev)
			}

		case err, ok := <-l.Source.Errors():
			if !ok {
				return nil
			}
			logger.Warn("File watcher error: {Error}", err)
		}
	}
}

// Dispatch applies one event outside of Run, on the caller's goroutine.
func (l *Loop) Dispatch(ctx context.Context, ev Event) {
	logger := l.Logger
	if logger == nil {
		logger = observability.NewNullLogger()
	}
	l.dispatch(ctx, logger, ev)
}

func (l *Loop) dispatch(ctx context.Context, logger observability.Logger, ev Event) {
	before := l.Machine.State()
	action, ok := l.Machine.Handle(ev)
	logger.Debug("{Event} {PackageId}: {From} -> {To}", ev.Kind, ev.Package.ID, before, l.Machine.State())
	if !ok {
		return
	}

	if err := l.Handler(ctx, action); err != nil {
		logger.Error("Unexpected error: {Error}", err)
	}
}
