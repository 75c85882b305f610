// Package watch processes transcript files dropped into an inbox directory.
// Each new .txt file is run through the extraction pipeline and its markdown
// and JSON reports are written to the outbox.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/minuted/internal/config"
	"github.com/fyrsmithlabs/minuted/internal/pipeline"
	"github.com/fyrsmithlabs/minuted/internal/report"
)

// settleDelay gives writers time to finish before a new file is read.
const settleDelay = 200 * time.Millisecond

// Watcher watches an inbox directory for transcript files.
type Watcher struct {
	inbox    string
	outbox   string
	watcher  *fsnotify.Watcher
	pipeline *pipeline.Pipeline
	reports  *report.Generator
	logger   *zap.Logger
}

// NewWatcher creates a watcher for the configured inbox. Both directories
// are created if missing.
func NewWatcher(cfg config.WatchConfig, p *pipeline.Pipeline, logger *zap.Logger) (*Watcher, error) {
	if p == nil {
		return nil, fmt.Errorf("pipeline cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	for _, dir := range []string{cfg.Inbox, cfg.Outbox} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("initializing filesystem watcher: %w", err)
	}
	if err := fsw.Add(cfg.Inbox); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", cfg.Inbox, err)
	}

	return &Watcher{
		inbox:    cfg.Inbox,
		outbox:   cfg.Outbox,
		watcher:  fsw,
		pipeline: p,
		reports:  report.NewGenerator(logger.Named("report")),
		logger:   logger,
	}, nil
}

// Run processes inbox events until the context is canceled. Files already
// present in the inbox at startup are processed first. Per-file failures
// are logged and do not stop the loop.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	w.logger.Info("watching inbox",
		zap.String("inbox", w.inbox),
		zap.String("outbox", w.outbox))

	w.processExisting()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !isTranscript(event.Name) {
				continue
			}
			time.Sleep(settleDelay)
			w.processFile(event.Name)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", zap.Error(err))
		}
	}
}

// processExisting handles files dropped before the watcher started.
func (w *Watcher) processExisting() {
	entries, err := os.ReadDir(w.inbox)
	if err != nil {
		w.logger.Warn("reading inbox", zap.Error(err))
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := filepath.Join(w.inbox, entry.Name())
		if isTranscript(name) {
			w.processFile(name)
		}
	}
}

func (w *Watcher) processFile(path string) {
	start := time.Now()
	result, err := w.pipeline.RunFile(path)
	if err != nil {
		w.logger.Error("processing transcript failed",
			zap.String("path", path),
			zap.Error(err))
		return
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	opts := report.Options{
		Title:        "Meeting Summary: " + base,
		IncludeStats: true,
	}

	if md, err := w.reports.Markdown(result.Items, opts); err != nil {
		w.logger.Error("rendering markdown report", zap.String("path", path), zap.Error(err))
	} else if err := w.reports.Save(md, filepath.Join(w.outbox, base), "markdown"); err != nil {
		w.logger.Error("saving markdown report", zap.String("path", path), zap.Error(err))
	}

	if doc, err := w.reports.JSON(result.Items, opts); err != nil {
		w.logger.Error("rendering json report", zap.String("path", path), zap.Error(err))
	} else if err := w.reports.Save(doc, filepath.Join(w.outbox, base), "json"); err != nil {
		w.logger.Error("saving json report", zap.String("path", path), zap.Error(err))
	}

	w.logger.Info("processed transcript",
		zap.String("path", path),
		zap.Int("messages", len(result.Messages)),
		zap.Int("items", len(result.Items)),
		zap.Duration("duration", time.Since(start)))
}

func isTranscript(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".txt")
}
