// Package ticker polls the MVG disruption messages in the background
// and keeps the current ones available to the web handlers.
package ticker

import (
	"context"
	"log/slog"
	"time"

	"gomvg/internal/mvg"
)

// Fetcher periodically refreshes the disruption store from the MVG API.
type Fetcher struct {
	client   *mvg.Client
	store    *Store
	interval time.Duration
	logger   *slog.Logger
}

// NewFetcher creates a disruption fetcher.
func NewFetcher(client *mvg.Client, store *Store, interval time.Duration, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		client:   client,
		store:    store,
		interval: interval,
		logger:   logger,
	}
}

// Start begins polling. Blocks until the context is cancelled.
func (f *Fetcher) Start(ctx context.Context) {
	// Fetch immediately on start
	f.refresh(ctx)

	t := time.NewTicker(f.interval)
	defer t.Stop()

	for {
		select {
		case <-t.C:
			f.refresh(ctx)
		case <-ctx.Done():
			f.logger.Info("disruption fetcher stopped")
			return
		}
	}
}

// refresh is best-effort: on failure the store keeps its previous
// contents and the next tick tries again.
func (f *Fetcher) refresh(ctx context.Context) {
	messages, err := f.client.Messages(ctx)
	if err != nil {
		f.logger.Warn("fetching disruption messages failed", "error", err)
		return
	}

	disruptions := convertMessages(messages, time.Now())
	f.store.Set(disruptions)
	f.logger.Info("disruptions updated", "total", len(messages), "active", len(disruptions))
}

// convertMessages turns raw API messages into Disruptions, keeping only
// those valid at the given instant. A missing validity bound is treated
// as open-ended.
func convertMessages(messages []mvg.Message, now time.Time) []Disruption {
	var disruptions []Disruption
	for _, m := range messages {
		if m.ValidFrom != nil && now.Before(time.UnixMilli(*m.ValidFrom)) {
			continue
		}
		if m.ValidTo != nil && now.After(time.UnixMilli(*m.ValidTo)) {
			continue
		}

		d := Disruption{}
		if m.Title != nil {
			d.Title = *m.Title
		}
		if m.Description != nil {
			d.Description = *m.Description
		}
		if m.Type != nil {
			d.Type = *m.Type
		}
		if m.ValidFrom != nil {
			d.ValidFrom = time.UnixMilli(*m.ValidFrom)
		}
		if m.ValidTo != nil {
			d.ValidTo = time.UnixMilli(*m.ValidTo)
		}

		seen := make(map[string]bool)
		for _, line := range m.Lines {
			if line.Label == nil || *line.Label == "" || seen[*line.Label] {
				continue
			}
			d.Labels = append(d.Labels, *line.Label)
			seen[*line.Label] = true
		}

		disruptions = append(disruptions, d)
	}
	return disruptions
}
