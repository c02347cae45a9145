package forecast

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cicconee/marine-forecast/internal/geometry"
	"github.com/cicconee/marine-forecast/internal/zone"
)

// Generator builds the forecasts for every zone in Zones from the
// readings of Source.
type Generator struct {
	Zones      zone.Table
	Source     Source
	Thresholds Thresholds

	// Now returns the generation time. It defaults to time.Now.
	Now func() time.Time
}

// NewGenerator returns a Generator using DefaultThresholds.
func NewGenerator(zones zone.Table, source Source) *Generator {
	return &Generator{
		Zones:      zones,
		Source:     source,
		Thresholds: DefaultThresholds(),
		Now:        time.Now,
	}
}

func (g *Generator) now() time.Time {
	if g.Now == nil {
		return time.Now()
	}

	return g.Now()
}

// Generate returns one ZoneForecast per zone, in table order, each with
// Days entries starting at the generation date. The generation time is
// read once and shared by every zone and entry.
func (g *Generator) Generate(ctx context.Context) ([]ZoneForecast, error) {
	if g.Source == nil {
		return nil, errors.New("generator has no source")
	}

	now := g.now()
	lastUpdate := now.Format(TimestampLayout)

	forecasts := make([]ZoneForecast, 0, g.Zones.Len())
	for _, z := range g.Zones.All() {
		entries := make([]Entry, 0, Days)
		for offset := 0; offset < Days; offset++ {
			readings, err := g.Source.Compute(ctx, z, offset)
			if err != nil {
				return nil, fmt.Errorf("computing readings (zone=%s, dayOffset=%d): %w", z.Name, offset, err)
			}

			entries = append(entries, g.entry(now, offset, readings))
		}

		forecasts = append(forecasts, ZoneForecast{
			Zone:       z.Name,
			Lat:        z.Lat(),
			Lon:        z.Lon(),
			Forecasts:  entries,
			LastUpdate: lastUpdate,
		})
	}

	return forecasts, nil
}

// entry classifies readings for the day offset days after now. Values
// are rounded before classification so the stored entry is consistent
// with its labels.
func (g *Generator) entry(now time.Time, offset int, r Readings) Entry {
	day := now.AddDate(0, 0, offset)
	wave := geometry.Round(r.WaveHeight, 2)
	temp := geometry.Round(r.Temperature, 2)
	current := geometry.Round(r.Current, 2)

	return Entry{
		Date:         day.Format(DateLayout),
		Day:          day.Weekday().String(),
		WaveHeight:   wave,
		Temperature:  temp,
		Current:      current,
		Safety:       g.Thresholds.Classify(wave, current),
		FishingIndex: g.Thresholds.FishingIndexFor(temp),
	}
}
