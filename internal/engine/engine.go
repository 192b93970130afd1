// Package engine wires query analysis, vector-space ranking, and result
// assembly behind a load-once lifecycle: Initialize reads a bundle into
// memory, Search answers every query from that snapshot.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/rimbakita/kemari/internal/analysis"
	"github.com/rimbakita/kemari/internal/config"
	"github.com/rimbakita/kemari/internal/corpus"
	"github.com/rimbakita/kemari/internal/gazetteer"
	"github.com/rimbakita/kemari/internal/models"
	"github.com/rimbakita/kemari/internal/query"
	"github.com/rimbakita/kemari/internal/ranking"
	"github.com/rimbakita/kemari/internal/storage"
)

var (
	// ErrNotReady is returned by Search before Initialize has succeeded.
	ErrNotReady = errors.New("engine not initialized")

	// ErrBundleMismatch means the bundle was built by a different analysis
	// pipeline than this binary runs, so its vectors cannot be trusted.
	ErrBundleMismatch = errors.New("bundle analyzer mismatch")
)

// Engine serves listing searches over one loaded bundle.
type Engine struct {
	cfg      *config.Config
	logger   *zap.Logger
	text     *analysis.Analyzer
	analyzer *query.Analyzer

	mu     sync.Mutex
	ready  atomic.Bool
	store  *corpus.Store
	ranker *ranking.Ranker
	info   storage.BundleInfo
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New creates an engine. It performs no I/O; call Initialize before Search.
func New(cfg *config.Config, opts ...Option) *Engine {
	text := analysis.New()
	e := &Engine{
		cfg:      cfg,
		logger:   zap.NewNop(),
		text:     text,
		analyzer: query.NewWith(text, gazetteer.New()),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Initialize loads the configured bundle, verifies it was built with the
// same analysis pipeline, and assembles the in-memory corpus. It is
// idempotent: once ready, further calls are no-ops.
func (e *Engine) Initialize(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ready.Load() {
		return nil
	}
	start := time.Now()

	bundle, err := storage.LoadBundle(ctx, e.cfg.Bundle.Path)
	if err != nil {
		return fmt.Errorf("failed to load bundle: %w", err)
	}

	fp, err := analysis.ParseFingerprint(bundle.Info.AnalyzerFingerprint)
	if err != nil {
		return fmt.Errorf("%w: unreadable fingerprint: %v", ErrBundleMismatch, err)
	}
	if !fp.Equal(e.text.Fingerprint()) {
		return fmt.Errorf("%w: %s was built with a different analysis pipeline",
			ErrBundleMismatch, e.cfg.Bundle.Path)
	}

	store, err := corpus.Build(bundle.Listings, bundle.Vectors, bundle.DocFreqs)
	if err != nil {
		return fmt.Errorf("failed to build corpus: %w", err)
	}

	e.store = store
	e.ranker = ranking.NewRanker(store)
	e.info = bundle.Info
	e.ready.Store(true)

	stats := store.Stats()
	e.logger.Info("engine initialized",
		zap.String("bundle", e.cfg.Bundle.Path),
		zap.Int("listings", stats.Listings),
		zap.Int("vocabulary", stats.Vocabulary),
		zap.Int("regions", stats.Regions),
		zap.Duration("took", time.Since(start)))
	return nil
}

// Ready reports whether Initialize has completed.
func (e *Engine) Ready() bool {
	return e.ready.Load()
}

// BundleInfo returns the metadata of the loaded bundle, zero before Initialize.
func (e *Engine) BundleInfo() storage.BundleInfo {
	if !e.ready.Load() {
		return storage.BundleInfo{}
	}
	return e.info
}

// Search answers a free-text query with the configured default limit.
func (e *Engine) Search(ctx context.Context, text string) (*models.SearchResponse, error) {
	return e.SearchWithLimit(ctx, text, 0)
}

// SearchWithLimit answers a free-text query. limit <= 0 uses the configured
// default; values above the configured maximum are clamped down to it.
func (e *Engine) SearchWithLimit(ctx context.Context, text string, limit int) (*models.SearchResponse, error) {
	if !e.ready.Load() {
		return nil, ErrNotReady
	}
	start := time.Now()

	analyzed := e.analyzer.Analyze(text)
	matches := e.match(analyzed)
	total := len(matches)

	if limit = e.clampLimit(limit); limit > 0 && limit < len(matches) {
		matches = matches[:limit]
	}

	resp := &models.SearchResponse{
		Results:   make([]*models.SearchResult, 0, len(matches)),
		Total:     total,
		Query:     *analyzed,
		QueryTime: time.Since(start).Milliseconds(),
	}
	for _, m := range matches {
		resp.Results = append(resp.Results, m.listing.Result(m.score))
	}

	e.logger.Debug("search completed",
		zap.String("query", text),
		zap.Strings("tokens", analyzed.Tokens),
		zap.String("intent", string(analyzed.Intent)),
		zap.String("region", analyzed.Region),
		zap.Int("results", len(resp.Results)),
		zap.Int("total", total),
		zap.Int64("took_ms", resp.QueryTime))
	return resp, nil
}

func (e *Engine) clampLimit(limit int) int {
	if limit <= 0 {
		limit = e.cfg.Search.DefaultLimit
	}
	if max := e.cfg.Search.MaxLimit; max > 0 && limit > max {
		limit = max
	}
	return limit
}
