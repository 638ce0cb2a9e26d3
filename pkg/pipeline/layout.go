package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/waterflow/pkg/config"
	"github.com/matzehuels/waterflow/pkg/dataset"
	"github.com/matzehuels/waterflow/pkg/observability"
	"github.com/matzehuels/waterflow/pkg/snapshot"
	"github.com/matzehuels/waterflow/pkg/waterflow"
)

// =============================================================================
// Session - Scripted Layout Run
// =============================================================================

// Result is the outcome of one scripted session.
type Result struct {
	Snapshot snapshot.Snapshot `json:"snapshot"`
	Stats    Stats             `json:"stats"`
}

// Stats describes the work a session did.
type Stats struct {
	Layout   observability.Counters `json:"layout"`
	Source   dataset.Stats          `json:"source"`
	Duration time.Duration          `json:"duration"`
}

// Session owns an engine over a synthetic dataset, configured from a run
// configuration. The CLI 'browse' command drives one interactively; [Run]
// replays the configuration's scroll script.
type Session struct {
	Engine   *waterflow.Engine
	Source   *dataset.Source
	Counters *observability.Counters
	Config   config.Config
}

// NewSession validates cfg and builds its engine and dataset. Layout events
// go to the counters and, at debug level, to logger.
func NewSession(cfg config.Config, logger *log.Logger, opts ...waterflow.Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ec, err := cfg.EngineConfig()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}

	s := &Session{
		Source:   dataset.New(cfg.Dataset),
		Counters: &observability.Counters{},
		Config:   cfg,
	}
	hooks := observability.Chain(s.Counters, observability.NewLogHooks(logger))
	opts = append([]waterflow.Option{waterflow.WithLogger(logger), waterflow.WithHooks(hooks)}, opts...)
	s.Engine = waterflow.New(s.Source, ec, cfg.ViewportSize(), opts...)
	return s, nil
}

// Stats returns the totals collected so far.
func (s *Session) Stats() Stats {
	return Stats{Layout: *s.Counters, Source: s.Source.Stats()}
}

// Snapshot captures the engine.
func (s *Session) Snapshot() snapshot.Snapshot {
	return snapshot.FromEngine(s.Engine)
}

// Step scrolls by delta, lays out and spends one predictive slice.
func (s *Session) Step(delta float64) {
	s.Engine.ScrollBy(delta)
	s.Engine.Layout()
	s.Predict()
}

// Predict spends one predictive slice of the configured budget and returns
// the number of steps taken.
func (s *Session) Predict() int {
	if budget := s.Config.Scroll.PredictBudget.Std(); budget > 0 {
		return s.Engine.OnPredictLayout(budget)
	}
	return 0
}

// Run replays the scroll script of cfg: an initial layout, an optional
// jump, then cfg.Scroll.Steps scrolls, each followed by a layout and a
// predictive slice. Cancelling ctx stops between steps.
func Run(ctx context.Context, cfg config.Config, logger *log.Logger) (Result, error) {
	start := time.Now()
	if logger == nil {
		logger = log.Default()
	}
	s, err := NewSession(cfg, logger)
	if err != nil {
		return Result{}, err
	}

	s.Engine.Layout()
	s.Predict()

	if idx := cfg.Scroll.JumpTo; idx >= 0 {
		if err := s.Engine.ScrollToIndex(idx, waterflow.SourceImmediate); err != nil {
			return Result{}, fmt.Errorf("jump to %d: %w", idx, err)
		}
		s.Predict()
	}

	for i := range cfg.Scroll.Steps {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		s.Step(cfg.Scroll.Step)
		logger.Debug("scroll step", "step", i+1, "offset", s.Engine.Offset(), "extent", s.Engine.ContentExtent())
	}

	res := Result{Snapshot: s.Snapshot(), Stats: s.Stats()}
	res.Stats.Duration = time.Since(start)
	return res, nil
}
