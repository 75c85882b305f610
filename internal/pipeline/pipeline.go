// Package pipeline wires the transcript normalizer and the action detector
// into the one-way flow consumed by the CLI, the HTTP API and the watcher:
// raw text -> messages -> items -> statistics.
package pipeline

import (
	"time"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/minuted/internal/action"
	"github.com/fyrsmithlabs/minuted/internal/config"
	"github.com/fyrsmithlabs/minuted/internal/transcript"
)

// Result is the outcome of one transcript run.
type Result struct {
	Messages []transcript.Message
	Items    []action.Item
	Stats    action.Stats
}

// Pipeline runs normalize -> extract -> aggregate. It allocates fresh state
// per call and is safe for concurrent use; batch callers may run one file
// per goroutine.
type Pipeline struct {
	normalizer *transcript.Normalizer
	detector   *action.Detector
	logger     *zap.Logger
}

// Option tweaks pipeline construction.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock pins the reference time used for deadline resolution.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// New creates a pipeline from extraction config.
func New(cfg config.ExtractConfig, logger *zap.Logger, opts ...Option) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return &Pipeline{
		normalizer: transcript.NewNormalizer(logger.Named("transcript")),
		detector: action.NewDetector(action.DetectorConfig{
			CaptureContext: cfg.CaptureContext,
			ContextWindow:  cfg.ContextWindow,
			Now:            o.now,
			Logger:         logger.Named("action"),
		}),
		logger: logger,
	}
}

// Run processes in-memory transcript content.
func (p *Pipeline) Run(content string) (*Result, error) {
	messages, err := p.normalizer.Normalize(content)
	if err != nil {
		return nil, err
	}
	return p.extract(messages)
}

// RunFile processes a transcript file.
func (p *Pipeline) RunFile(path string) (*Result, error) {
	messages, err := p.normalizer.NormalizeFile(path)
	if err != nil {
		return nil, err
	}
	return p.extract(messages)
}

func (p *Pipeline) extract(messages []transcript.Message) (*Result, error) {
	items, err := p.detector.Extract(toActionMessages(messages))
	if err != nil {
		return nil, err
	}
	return &Result{
		Messages: messages,
		Items:    items,
		Stats:    action.Statistics(items),
	}, nil
}

// toActionMessages converts normalizer output to the detector's input shape.
func toActionMessages(messages []transcript.Message) []action.Message {
	out := make([]action.Message, len(messages))
	for i, m := range messages {
		out[i] = action.Message{
			Timestamp: m.Timestamp,
			Speaker:   m.Speaker,
			Text:      m.Text,
		}
	}
	return out
}
