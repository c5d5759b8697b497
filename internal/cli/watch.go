package cli

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/calinea/pkg/component"
	"github.com/aretw0/calinea/pkg/ports"
)

// WatchSource is a catalog that reports changed message IDs.
type WatchSource interface {
	ports.Catalog
	ports.Watchable
}

// settleDelay lets the file system finish writing before a reload.
var settleDelay = 100 * time.Millisecond

// RunWatch renders the message id, then renders it again every time the
// source reports a change to it. It returns when ctx is cancelled or the
// source stops watching. Load failures are reported and the watcher keeps
// waiting for a fix.
func RunWatch(ctx context.Context, src WatchSource, id string, render func(*component.Node) error, out io.Writer, logger *slog.Logger) error {
	events, err := src.Watch(ctx)
	if err != nil {
		return err
	}

	logger.Info("Starting watcher", "id", id)
	renderOnce(ctx, src, id, render, out, logger)
	PrintSystemMessage(out, "Waiting for changes to '%s'...", id)

	for {
		select {
		case <-ctx.Done():
			logger.Info("Stopping watcher")
			return nil
		case changed, ok := <-events:
			if !ok {
				return nil
			}
			if changed != id {
				logger.Debug("Ignoring change", "id", changed)
				continue
			}
			logger.Info("Change detected, triggering reload", "id", changed)
			select {
			case <-ctx.Done():
				logger.Info("Stopping watcher")
				return nil
			case <-time.After(settleDelay):
			}
			drain(events)
			PrintSystemMessage(out, "Change detected in '%s'.", changed)
			renderOnce(ctx, src, id, render, out, logger)
		}
	}
}

func renderOnce(ctx context.Context, src ports.Catalog, id string, render func(*component.Node) error, out io.Writer, logger *slog.Logger) {
	node, err := src.Get(ctx, id)
	if err != nil {
		logger.Error("Load failed", "id", id, "err", err)
		PrintSystemMessage(out, "Could not load '%s': %v", id, err)
		return
	}
	if err := render(node); err != nil {
		logger.Error("Render failed", "id", id, "err", err)
		PrintSystemMessage(out, "Could not render '%s': %v", id, err)
	}
}

// drain discards events queued while waiting, so one burst of writes
// causes a single reload.
func drain(events <-chan string) {
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		default:
			return
		}
	}
}
