package forecast

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
)

// Status is the outcome of a generator run.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// RunResult reports how a generator run went. It is safe to show to
// clients.
type RunResult struct {
	Status  Status `json:"status"`
	Message string `json:"message"`
}

// OK reports whether the run succeeded.
func (r RunResult) OK() bool {
	return r.Status == StatusSuccess
}

// Service generates forecasts and serves the persisted set.
//
// Every generation replaces the whole persisted set; nothing is merged
// and no history is kept.
type Service struct {
	// Builds the forecasts.
	Generator *Generator

	// Where the forecast set is persisted.
	Store Store

	Logger *log.Logger
}

// New will return a pointer to a Service.
func New(g *Generator, s Store, l *log.Logger) *Service {
	return &Service{
		Generator: g,
		Store:     s,
		Logger:    l,
	}
}

func (s *Service) logger() *log.Logger {
	if s.Logger == nil {
		return log.Default()
	}

	return s.Logger
}

// Generate computes forecasts for every zone and saves them, replacing
// whatever was saved before.
func (s *Service) Generate(ctx context.Context) error {
	forecasts, err := s.Generator.Generate(ctx)
	if err != nil {
		return fmt.Errorf("generating forecasts: %w", err)
	}

	if err := s.Store.Save(ctx, forecasts); err != nil {
		return fmt.Errorf("saving forecasts: %w", err)
	}

	return nil
}

// Run calls Generate and converts its outcome into a RunResult. Errors
// are carried in the result message instead of being returned.
func (s *Service) Run(ctx context.Context) RunResult {
	runID := uuid.NewString()

	if err := s.Generate(ctx); err != nil {
		s.logger().Printf("Service.Run: run failed (runID=%s): %v", runID, err)
		return RunResult{
			Status:  StatusError,
			Message: err.Error(),
		}
	}

	s.logger().Printf("Service.Run: forecasts generated (runID=%s, zones=%d, source=%s)",
		runID,
		s.Generator.Zones.Len(),
		s.Generator.Source.Name())

	return RunResult{
		Status:  StatusSuccess,
		Message: fmt.Sprintf("Forecasts generated for %d zones (run %s)", s.Generator.Zones.Len(), runID),
	}
}

// Forecasts returns the persisted forecast set. It is empty if nothing
// has been generated yet.
func (s *Service) Forecasts(ctx context.Context) ([]ZoneForecast, error) {
	forecasts, err := s.Store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading forecasts: %w", err)
	}

	return forecasts, nil
}
