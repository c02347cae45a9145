package forecast

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cicconee/marine-forecast/internal/zone"
)

// fixedNow is a Sunday.
var fixedNow = time.Date(2026, time.October, 18, 9, 30, 0, 0, time.UTC)

func newTestGenerator() *Generator {
	g := NewGenerator(zone.Default(), NewSimulatedSource())
	g.Now = func() time.Time { return fixedNow }
	return g
}

func TestGenerator_Generate(t *testing.T) {
	forecasts, err := newTestGenerator().Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	zones := zone.Default().All()
	if len(forecasts) != len(zones) {
		t.Fatalf("Generate() returned %d zones, want %d", len(forecasts), len(zones))
	}

	for i, zf := range forecasts {
		if zf.Zone != zones[i].Name {
			t.Errorf("zone %d = %s, want %s", i, zf.Zone, zones[i].Name)
		}
		if zf.Lat != zones[i].Lat() || zf.Lon != zones[i].Lon() {
			t.Errorf("zone %s coordinates = (%v, %v)", zf.Zone, zf.Lat, zf.Lon)
		}
		if zf.LastUpdate != "2026-10-18 09:30:00" {
			t.Errorf("zone %s LastUpdate = %s", zf.Zone, zf.LastUpdate)
		}
		if len(zf.Forecasts) != Days {
			t.Fatalf("zone %s has %d entries, want %d", zf.Zone, len(zf.Forecasts), Days)
		}
	}
}

func TestGenerator_EntriesAreChronological(t *testing.T) {
	forecasts, err := newTestGenerator().Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	wantDates := []string{"2026-10-18", "2026-10-19", "2026-10-20"}
	wantDays := []string{"Sunday", "Monday", "Tuesday"}

	for _, zf := range forecasts {
		for i, e := range zf.Forecasts {
			if e.Date != wantDates[i] {
				t.Errorf("zone %s entry %d date = %s, want %s", zf.Zone, i, e.Date, wantDates[i])
			}
			if e.Day != wantDays[i] {
				t.Errorf("zone %s entry %d day = %s, want %s", zf.Zone, i, e.Day, wantDays[i])
			}
			if i > 0 && e.WaveHeight < zf.Forecasts[i-1].WaveHeight {
				t.Errorf("zone %s wave height decreased at entry %d", zf.Zone, i)
			}
		}
	}
}

func TestGenerator_Classification(t *testing.T) {
	forecasts, err := newTestGenerator().Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	want := []struct {
		wave   float64
		safety Safety
	}{
		{1.5, SafetySafe},
		{1.9, SafetyCaution},
		{2.3, SafetyDanger},
	}

	for _, zf := range forecasts {
		for i, e := range zf.Forecasts {
			if e.WaveHeight != want[i].wave {
				t.Errorf("zone %s entry %d wave = %v, want %v", zf.Zone, i, e.WaveHeight, want[i].wave)
			}
			if e.Safety != want[i].safety {
				t.Errorf("zone %s entry %d safety = %s, want %s", zf.Zone, i, e.Safety, want[i].safety)
			}
			if e.FishingIndex != FishingExcellent {
				t.Errorf("zone %s entry %d fishing index = %s, want %s", zf.Zone, i, e.FishingIndex, FishingExcellent)
			}
		}
	}
}

type failingSource struct {
	failAt int
	calls  int
}

func (f *failingSource) Name() string { return "failing" }

func (f *failingSource) Compute(ctx context.Context, z zone.Zone, dayOffset int) (Readings, error) {
	f.calls++
	if f.calls == f.failAt {
		return Readings{}, errors.New("upstream unavailable")
	}
	return Readings{WaveHeight: 1, Temperature: 20, Current: 0.1}, nil
}

func TestGenerator_SourceError(t *testing.T) {
	g := newTestGenerator()
	g.Source = &failingSource{failAt: 4}

	forecasts, err := g.Generate(context.Background())
	if err == nil {
		t.Fatal("Generate() should fail when the source fails")
	}
	if forecasts != nil {
		t.Errorf("Generate() returned partial forecasts: %d zones", len(forecasts))
	}
}

func TestGenerator_NoSource(t *testing.T) {
	g := &Generator{Zones: zone.Default()}

	if _, err := g.Generate(context.Background()); err == nil {
		t.Error("Generate() without a source should fail")
	}
}
