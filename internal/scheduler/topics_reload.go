// Package scheduler runs the periodic background jobs of the service.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/caselens/caselens/internal/index"
	"github.com/caselens/caselens/internal/logger"
	"github.com/caselens/caselens/internal/sources/topics"
)

// TopicsReloader handles periodic reloading of the browse topics file.
type TopicsReloader struct {
	loader        *topics.Loader
	mapper        *topics.Mapper
	index         *index.TopicIndex
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewTopicsReloader creates a topics reloader.
func NewTopicsReloader(
	topicsFile string,
	idx *index.TopicIndex,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *TopicsReloader {
	return &TopicsReloader{
		loader:        topics.NewLoader(topicsFile),
		mapper:        topics.NewMapper(),
		index:         idx,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads topics immediately, then keeps them fresh on a ticker and on
// manual triggers.
func (tr *TopicsReloader) Start(ctx context.Context) error {
	if err := tr.Reload(); err != nil {
		return fmt.Errorf("initial topics reload failed: %w", err)
	}

	ticker := time.NewTicker(tr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := tr.Reload(); err != nil {
					tr.logger.Error("failed to reload topics", logger.Error(err))
				}
			case <-tr.manualTrigger:
				tr.logger.Info("manual topics reload triggered")
				if err := tr.Reload(); err != nil {
					tr.logger.Error("failed to reload topics", logger.Error(err))
				}
			case <-tr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader.
func (tr *TopicsReloader) Stop() {
	close(tr.stopCh)
}

// Reload loads the topics file and swaps the index contents.
func (tr *TopicsReloader) Reload() error {
	config, err := tr.loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load topics: %w", err)
	}

	mapped, err := tr.mapper.MapTopics(config)
	if err != nil {
		return fmt.Errorf("failed to map topics: %w", err)
	}

	tr.index.Update(mapped)
	tr.logger.Info("topics loaded", logger.Int("count", len(mapped)))
	return nil
}
