package indexer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rimbakita/kemari/internal/watcher"
)

// Watch rebuilds the bundle whenever the dataset file changes, then blocks
// until ctx is cancelled.
func (idx *Indexer) Watch(ctx context.Context) error {
	if idx.cfg.Index.DatasetPath == "" {
		return fmt.Errorf("no dataset configured")
	}
	w := watcher.New(idx.cfg.Index.DatasetPath, func() {
		if _, err := idx.Build(ctx); err != nil && idx.logger != nil {
			idx.logger.Error("bundle rebuild failed", zap.Error(err))
		}
	},
		watcher.WithDebounce(time.Duration(idx.cfg.Index.WatchDebounceMS)*time.Millisecond),
		watcher.WithLogger(idx.logger),
	)
	if err := w.Start(ctx); err != nil {
		return err
	}
	defer w.Stop()
	<-ctx.Done()
	return nil
}
