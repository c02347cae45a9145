package forecast

import (
	"context"
	"errors"
	"testing"

	"github.com/cicconee/marine-forecast/internal/zone"
)

func dakar(t *testing.T) zone.Zone {
	t.Helper()

	z, ok := zone.Default().Get("Dakar")
	if !ok {
		t.Fatal("default table has no Dakar zone")
	}
	return z
}

func TestSimulatedSource_Compute(t *testing.T) {
	src := NewSimulatedSource()
	ctx := context.Background()
	z := dakar(t)

	previous := -1.0
	for offset := 0; offset < Days; offset++ {
		r, err := src.Compute(ctx, z, offset)
		if err != nil {
			t.Fatalf("Compute(offset=%d) error = %v", offset, err)
		}

		if r.WaveHeight < previous {
			t.Errorf("wave height decreased at offset %d: %v < %v", offset, r.WaveHeight, previous)
		}
		previous = r.WaveHeight

		if r.Temperature != 22.5 {
			t.Errorf("Temperature = %v, want 22.5", r.Temperature)
		}
		if r.Current != 0.5 {
			t.Errorf("Current = %v, want 0.5", r.Current)
		}
	}

	if _, err := src.Compute(ctx, z, -1); err == nil {
		t.Error("Compute() with a negative offset should fail")
	}
}

func TestSimulatedSource_Deterministic(t *testing.T) {
	src := NewSimulatedSource()
	ctx := context.Background()

	first, _ := src.Compute(ctx, dakar(t), 2)
	second, _ := src.Compute(ctx, dakar(t), 2)

	if first != second {
		t.Errorf("Compute() not deterministic: %+v != %+v", first, second)
	}
}

func TestSimulatedSource_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSimulatedSource().Compute(ctx, dakar(t), 0)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Compute() error = %v, want context.Canceled", err)
	}
}

func TestRateLimitedSource(t *testing.T) {
	src := NewRateLimitedSource(NewSimulatedSource(), 1, 1)

	if src.Name() != "simulated [rate limited]" {
		t.Errorf("Name() = %q", src.Name())
	}

	ctx := context.Background()
	if _, err := src.Compute(ctx, dakar(t), 0); err != nil {
		t.Fatalf("first Compute() error = %v", err)
	}

	// The burst is spent, so the next call has to wait about a second.
	canceled, cancel := context.WithCancel(ctx)
	cancel()

	if _, err := src.Compute(canceled, dakar(t), 1); err == nil {
		t.Error("Compute() with a canceled context should fail while waiting")
	}
}
