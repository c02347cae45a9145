package forecast

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func generate(t *testing.T, now time.Time) []ZoneForecast {
	t.Helper()

	g := newTestGenerator()
	g.Now = func() time.Time { return now }

	forecasts, err := g.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	return forecasts
}

func TestFileStore_LoadMissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "data", "forecasts.json"))

	forecasts, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if forecasts == nil || len(forecasts) != 0 {
		t.Errorf("Load() = %v, want empty non-nil slice", forecasts)
	}
}

func TestFileStore_SaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(filepath.Join(dir, "data", "forecasts.json"))
	ctx := context.Background()

	want := generate(t, fixedNow)
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	leftovers, err := filepath.Glob(store.Path + ".*.tmp")
	if err != nil {
		t.Fatalf("Glob() error = %v", err)
	}
	if len(leftovers) != 0 {
		t.Errorf("temporary files left behind: %v", leftovers)
	}

	info, err := os.Stat(store.Path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0644 {
		t.Errorf("data file mode = %v, want -rw-r--r--", perm)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(got) != len(want) {
		t.Fatalf("Load() returned %d zones, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Zone != want[i].Zone || got[i].LastUpdate != want[i].LastUpdate {
			t.Errorf("zone %d = %s@%s, want %s@%s", i, got[i].Zone, got[i].LastUpdate, want[i].Zone, want[i].LastUpdate)
		}
		if len(got[i].Forecasts) != Days {
			t.Errorf("zone %s has %d entries, want %d", got[i].Zone, len(got[i].Forecasts), Days)
		}
		for j := range want[i].Forecasts {
			if got[i].Forecasts[j] != want[i].Forecasts[j] {
				t.Errorf("zone %s entry %d = %+v, want %+v", got[i].Zone, j, got[i].Forecasts[j], want[i].Forecasts[j])
			}
		}
	}
}

func TestFileStore_SaveReplaces(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "forecasts.json"))
	ctx := context.Background()

	if err := store.Save(ctx, generate(t, fixedNow)); err != nil {
		t.Fatalf("first Save() error = %v", err)
	}

	later := fixedNow.Add(24 * time.Hour)
	if err := store.Save(ctx, generate(t, later)); err != nil {
		t.Fatalf("second Save() error = %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	seen := map[string]int{}
	for _, zf := range got {
		seen[zf.Zone]++
		if zf.LastUpdate != later.Format(TimestampLayout) {
			t.Errorf("zone %s LastUpdate = %s, want the second run", zf.Zone, zf.LastUpdate)
		}
	}

	if len(got) != 5 {
		t.Errorf("Load() returned %d zones after two saves, want 5", len(got))
	}
	for name, n := range seen {
		if n != 1 {
			t.Errorf("zone %s saved %d times", name, n)
		}
	}
}

func TestFileStore_SaveUnwritable(t *testing.T) {
	dir := t.TempDir()

	// A regular file where the data directory should be.
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("writing blocker: %v", err)
	}

	store := NewFileStore(filepath.Join(blocker, "forecasts.json"))
	if err := store.Save(context.Background(), generate(t, fixedNow)); err == nil {
		t.Error("Save() into an unwritable location should fail")
	}
}

func TestFileStore_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forecasts.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	if _, err := NewFileStore(path).Load(context.Background()); err == nil {
		t.Error("Load() of a corrupt file should fail")
	}
}

func TestFileStore_SaveWhileLoading(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "forecasts.json"))
	ctx := context.Background()

	sets := [][]ZoneForecast{
		generate(t, fixedNow),
		generate(t, fixedNow.Add(24*time.Hour)),
	}

	var wg sync.WaitGroup
	done := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(done)

		for i := 0; i < 100; i++ {
			if err := store.Save(ctx, sets[i%2]); err != nil {
				t.Errorf("Save() #%d error = %v", i, err)
				return
			}
		}
	}()

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for {
				forecasts, err := store.Load(ctx)
				if err != nil {
					t.Errorf("Load() error = %v", err)
					return
				}
				if msg := checkSnapshot(forecasts); msg != "" {
					t.Error(msg)
					return
				}

				select {
				case <-done:
					return
				default:
				}
			}
		}()
	}

	wg.Wait()
}
