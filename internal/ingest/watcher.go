package ingest

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/docmineai/docmine/constants"
	"github.com/docmineai/docmine/internal/common"
)

// WatchConfig configures the documents-directory watcher.
type WatchConfig struct {
	Root     string
	Debounce time.Duration // coalesce rapid create/write bursts
}

// StartWatcher watches the documents directory and emits a debounced
// signal (the most recent triggering path) whenever a supported file is
// created or modified. The channels close when ctx is cancelled.
func StartWatcher(ctx context.Context, cfg WatchConfig, logger *slog.Logger) (<-chan string, <-chan error, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Root == "" {
		return nil, nil, errors.New("no watch root provided")
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = common.GetEnvAsDuration("DOCMINE_WATCH_DEBOUNCE", 2*time.Second)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Error("watch.create_failed", "error", err)
		return nil, nil, err
	}
	if err := w.Add(cfg.Root); err != nil {
		logger.Error("watch.add_root_failed", "root", cfg.Root, "error", err)
		_ = w.Close()
		return nil, nil, err
	}

	evCh := make(chan string, 16)
	errCh := make(chan error, 1)

	go func() {
		defer close(evCh)
		defer close(errCh)
		defer func() { _ = w.Close() }()

		var timer *time.Timer
		var pending string
		fire := make(chan struct{}, 1)

		for {
			select {
			case <-ctx.Done():
				return

			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Rename) {
					continue
				}
				if _, supported := constants.MapExtToFormat(filepath.Ext(ev.Name)); !supported {
					continue
				}
				pending = ev.Name
				if timer == nil {
					timer = time.AfterFunc(cfg.Debounce, func() {
						select {
						case fire <- struct{}{}:
						default:
						}
					})
				} else {
					timer.Reset(cfg.Debounce)
				}

			case <-fire:
				timer = nil
				logger.Info("watch.changed", "path", pending)
				select {
				case evCh <- pending:
				default:
				}

			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				select {
				case errCh <- err:
				default:
				}
			}
		}
	}()

	logger.Info("watch.started", "root", cfg.Root, "debounce", cfg.Debounce)
	return evCh, errCh, nil
}
