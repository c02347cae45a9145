package forecast

import (
	"context"
	"fmt"

	"github.com/cicconee/marine-forecast/internal/zone"
	"golang.org/x/time/rate"
)

// Source is the interface that wraps the Compute method.
//
// Compute returns the Readings for z, dayOffset days after today. A
// Source backed by real ocean model output (Copernicus Marine over
// OPeNDAP) can replace SimulatedSource without touching classification
// or storage.
type Source interface {
	Name() string
	Compute(ctx context.Context, z zone.Zone, dayOffset int) (Readings, error)
}

// SimulatedSource fabricates deterministic readings. Wave height grows
// linearly with the day offset. Temperature and current are the same for
// every zone and day; they are the knobs a real data source would drive
// from upwelling indicators.
type SimulatedSource struct {
	BaseWave    float64
	WaveStep    float64
	Temperature float64
	Current     float64
}

// NewSimulatedSource returns a SimulatedSource whose three days land in
// SAFE, CAUTION and DANGER under DefaultThresholds.
func NewSimulatedSource() *SimulatedSource {
	return &SimulatedSource{
		BaseWave:    1.5,
		WaveStep:    0.4,
		Temperature: 22.5,
		Current:     0.5,
	}
}

func (s *SimulatedSource) Name() string {
	return "simulated"
}

func (s *SimulatedSource) Compute(ctx context.Context, z zone.Zone, dayOffset int) (Readings, error) {
	if err := ctx.Err(); err != nil {
		return Readings{}, err
	}

	if dayOffset < 0 {
		return Readings{}, fmt.Errorf("negative day offset %d for zone %s", dayOffset, z.Name)
	}

	return Readings{
		WaveHeight:  s.BaseWave + float64(dayOffset)*s.WaveStep,
		Temperature: s.Temperature,
		Current:     s.Current,
	}, nil
}

// RateLimitedSource wraps a Source with rate limiting.
type RateLimitedSource struct {
	source  Source
	limiter *rate.Limiter
	name    string
}

// NewRateLimitedSource creates a new rate limited source.
// rps is the maximum calls to Compute per second and burst the
// maximum burst size.
func NewRateLimitedSource(source Source, rps float64, burst int) *RateLimitedSource {
	return &RateLimitedSource{
		source:  source,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		name:    fmt.Sprintf("%s [rate limited]", source.Name()),
	}
}

// Compute waits for the limiter, or for ctx to be done, before calling
// the wrapped Source.
func (r *RateLimitedSource) Compute(ctx context.Context, z zone.Zone, dayOffset int) (Readings, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return Readings{}, fmt.Errorf("rate limit wait canceled: %w", err)
	}

	return r.source.Compute(ctx, z, dayOffset)
}

func (r *RateLimitedSource) Name() string {
	return r.name
}

var (
	_ Source = (*SimulatedSource)(nil)
	_ Source = (*RateLimitedSource)(nil)
)
