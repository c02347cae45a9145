// Package config loads the server settings from a .env file, the
// environment and command line flags, in increasing precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Store kinds accepted by the -store flag.
const (
	StoreFile     = "file"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

// Config is the server configuration.
type Config struct {
	// The port the server listens on, on all interfaces.
	Port string

	// The JSON file FileStore writes to.
	DataFile string

	// One of StoreFile, StoreSQLite or StorePostgres.
	Store string

	// The database connection string. A file path for sqlite.
	DSN string

	// Optional JSON file replacing the built-in zone table.
	ZonesFile string

	// How often forecasts are regenerated in the background. Zero
	// disables it.
	Refresh time.Duration

	// Rate limit applied to the forecast source.
	SourceRPS   float64
	SourceBurst int
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Port:        "8080",
		DataFile:    filepath.Join("data", "forecasts.json"),
		Store:       StoreFile,
		SourceRPS:   50,
		SourceBurst: 15,
	}
}

// Load loads .env from the working directory if it exists, then builds
// the Config from the environment and args. args should not include the
// program name.
func Load(args []string) (Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return Config{}, fmt.Errorf("loading .env: %w", err)
		}
	}

	return parse(args, os.Getenv)
}

func parse(args []string, getenv func(string) string) (Config, error) {
	c := Default()

	if err := c.applyEnv(getenv); err != nil {
		return Config{}, err
	}

	fs := flag.NewFlagSet("marine-forecast", flag.ContinueOnError)
	fs.StringVar(&c.Port, "p", c.Port, "the port the server should listen on")
	fs.StringVar(&c.DataFile, "data", c.DataFile, "the JSON file forecasts are written to")
	fs.StringVar(&c.Store, "store", c.Store, "where forecasts are kept: file, sqlite or postgres")
	fs.StringVar(&c.DSN, "dsn", c.DSN, "database connection string for the sqlite or postgres store")
	fs.StringVar(&c.ZonesFile, "zones", c.ZonesFile, "JSON file replacing the built-in zones")
	fs.DurationVar(&c.Refresh, "refresh", c.Refresh, "regenerate forecasts on this interval (0 disables)")
	fs.Float64Var(&c.SourceRPS, "source-rps", c.SourceRPS, "maximum forecast source calls per second")
	fs.IntVar(&c.SourceBurst, "source-burst", c.SourceBurst, "forecast source burst size")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if c.Store == StoreSQLite && c.DSN == "" {
		c.DSN = filepath.Join("data", "forecasts.db")
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv("MARINE_PORT"); v != "" {
		c.Port = v
	}

	if v := getenv("MARINE_DATA_FILE"); v != "" {
		c.DataFile = v
	}

	if v := getenv("MARINE_STORE"); v != "" {
		c.Store = v
	}

	if v := getenv("MARINE_DSN"); v != "" {
		c.DSN = v
	}

	if v := getenv("MARINE_ZONES_FILE"); v != "" {
		c.ZonesFile = v
	}

	if v := getenv("MARINE_REFRESH"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parsing MARINE_REFRESH: %w", err)
		}
		c.Refresh = d
	}

	if v := getenv("MARINE_SOURCE_RPS"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parsing MARINE_SOURCE_RPS: %w", err)
		}
		c.SourceRPS = rps
	}

	if v := getenv("MARINE_SOURCE_BURST"); v != "" {
		burst, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing MARINE_SOURCE_BURST: %w", err)
		}
		c.SourceBurst = burst
	}

	return nil
}

// Validate checks that the configuration can be used to start the
// server.
func (c Config) Validate() error {
	if c.Port == "" {
		return errors.New("port is empty")
	}

	switch c.Store {
	case StoreFile:
		if c.DataFile == "" {
			return errors.New("data file is empty")
		}
	case StoreSQLite:
	case StorePostgres:
		if c.DSN == "" {
			return errors.New("postgres store needs a dsn")
		}
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}

	if c.Refresh < 0 {
		return fmt.Errorf("negative refresh interval %s", c.Refresh)
	}

	if c.SourceRPS <= 0 {
		return fmt.Errorf("source rps must be positive, got %v", c.SourceRPS)
	}

	if c.SourceBurst <= 0 {
		return fmt.Errorf("source burst must be positive, got %d", c.SourceBurst)
	}

	return nil
}
