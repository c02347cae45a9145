package server

import (
	"context"
	"log"
	"time"

	"github.com/cicconee/marine-forecast/internal/forecast"
)

// worker regenerates forecasts every d until it receives on killCh.
type worker struct {
	forecasts *forecast.Service
	logger    *log.Logger
	d         time.Duration
	killCh    <-chan struct{}
}

func (w *worker) start() {
	ticker := time.NewTicker(w.d)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.refresh(context.Background())
		case <-w.killCh:
			return
		}
	}
}

func (w *worker) refresh(ctx context.Context) {
	result := w.forecasts.Run(ctx)
	if !result.OK() {
		w.logger.Printf("worker: failed refreshing forecasts: %s", result.Message)
		return
	}

	w.logger.Printf("worker: %s", result.Message)
}
