package usecase

import (
	"context"
	"log"
	"time"
)

// Refresher periodically refreshes the cart snapshot so the checklist view
// tracks changes made outside this process.
type Refresher struct {
	service  *ChecklistService
	interval time.Duration
}

// NewRefresher creates a refresher for the given service and interval.
func NewRefresher(service *ChecklistService, interval time.Duration) *Refresher {
	return &Refresher{service: service, interval: interval}
}

// Run blocks, refreshing at each interval until the context is cancelled.
// Refresh failures are logged and the next tick retries.
func (r *Refresher) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.service.Refresh(ctx); err != nil {
				log.Printf("[REFRESH] Cart refresh failed: %v", err)
			}
		}
	}
}
