// Package planner ties input validation, the decomposition search and the
// result presentation together behind a single calculate call.
package planner

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/piwi3910/TapePlanner/internal/engine"
	"github.com/piwi3910/TapePlanner/internal/importer"
	"github.com/piwi3910/TapePlanner/internal/model"
)

// ErrNoInput marks a calculation where no raw entry was a valid length.
// It is reported through the presenter lines, not treated as a failure.
var ErrNoInput = errors.New("no valid tape length")

// Report is the full outcome of one calculation.
type Report struct {
	Lengths    []float64        `json:"lengths"`
	Allocation model.Allocation `json:"allocation"`
	Stats      engine.Stats     `json:"stats"`
	Err        error            `json:"-"`
	Lines      []model.Line     `json:"lines"`
}

// Solved reports whether the calculation produced an accepted allocation.
func (r Report) Solved() bool {
	return r.Err == nil
}

// Planner runs calculations with a fixed set of search bounds.
type Planner struct {
	search  engine.Options
	timeout time.Duration
	logger  *zap.Logger
}

// Option configures a Planner.
type Option func(*Planner)

// WithLogger sets the logger used for calculation diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Planner) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithSearchOptions bounds the decomposition search.
func WithSearchOptions(opts engine.Options) Option {
	return func(p *Planner) {
		p.search = opts
	}
}

// WithTimeout limits the wall time of each search. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(p *Planner) {
		p.timeout = d
	}
}

// WithConfig applies the search bounds stored in the application config.
func WithConfig(cfg model.AppConfig) Option {
	return func(p *Planner) {
		p.search = engine.Options{MaxNodes: cfg.MaxSearchNodes}
		p.timeout = cfg.SearchTimeout()
	}
}

// New creates a Planner. Without options the search is unbounded and
// nothing is logged.
func New(opts ...Option) *Planner {
	p := &Planner{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run validates the raw entries, searches for an allocation and renders
// the outcome. The search is skipped when no entry is valid.
func (p *Planner) Run(ctx context.Context, raw []string) Report {
	lengths := importer.ParseLengths(raw)
	p.logger.Debug("validated tape lengths",
		zap.Int("entries", len(raw)),
		zap.Int("valid", len(lengths)),
	)

	if len(lengths) == 0 {
		return Report{
			Lengths: lengths,
			Err:     ErrNoInput,
			Lines:   Present(lengths, model.Allocation{}, ErrNoInput),
		}
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	start := time.Now()
	alloc, stats, err := engine.Search(ctx, lengths, p.search)
	fields := []zap.Field{
		zap.Int("tapes", len(lengths)),
		zap.Int("nodes", stats.Nodes),
		zap.Int("pruned", stats.Pruned),
		zap.Duration("elapsed", time.Since(start)),
	}
	if err != nil {
		p.logger.Debug("no allocation", append(fields, zap.Error(err))...)
	} else {
		p.logger.Debug("allocation found", append(fields, zap.Stringer("ratio", alloc.Ratio))...)
	}

	return Report{
		Lengths:    lengths,
		Allocation: alloc,
		Stats:      stats,
		Err:        err,
		Lines:      Present(lengths, alloc, err),
	}
}

// Calculate runs an unbounded calculation over raw text entries and
// returns the display lines.
func Calculate(raw []string) []model.Line {
	return New().Run(context.Background(), raw).Lines
}
