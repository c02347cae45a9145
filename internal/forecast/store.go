package forecast

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Store is the storage that can write and read the forecast set.
//
// Save replaces everything previously saved with forecasts. Load returns
// the last saved set, or an empty non-nil slice if nothing was saved.
type Store interface {
	Save(ctx context.Context, forecasts []ZoneForecast) error
	Load(ctx context.Context) ([]ZoneForecast, error)
}

// FileStore keeps the forecast set as a JSON array in a single file.
type FileStore struct {
	// The path of the JSON file.
	Path string
}

// NewFileStore creates and returns a FileStore writing to path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Save writes forecasts to a temporary file next to Path and renames it
// over Path, so readers see either the old or the new set.
func (s *FileStore) Save(ctx context.Context, forecasts []ZoneForecast) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if forecasts == nil {
		forecasts = []ZoneForecast{}
	}

	data, err := json.MarshalIndent(forecasts, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling forecasts: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.Path), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.Path), filepath.Base(s.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", tmp.Name(), err)
	}

	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return fmt.Errorf("setting mode of %s: %w", tmp.Name(), err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmp.Name(), err)
	}

	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("replacing %s: %w", s.Path, err)
	}

	return nil
}

// Load reads the forecast set from Path. A missing file is not an
// error: it means nothing has been generated yet.
func (s *FileStore) Load(ctx context.Context) ([]ZoneForecast, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []ZoneForecast{}, nil
		}

		return nil, fmt.Errorf("reading %s: %w", s.Path, err)
	}

	var forecasts []ZoneForecast
	if err := json.Unmarshal(data, &forecasts); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", s.Path, err)
	}

	if forecasts == nil {
		forecasts = []ZoneForecast{}
	}

	return forecasts, nil
}

var _ Store = (*FileStore)(nil)
