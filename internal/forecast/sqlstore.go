package forecast

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Dialect is a SQL database flavour SQLStore can talk to. Its value is
// the database/sql driver name.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// Rebind rewrites the ? placeholders in query into the form the dialect
// expects.
func (d Dialect) Rebind(query string) string {
	if d != DialectPostgres {
		return query
	}

	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}

// dsn returns dsn with the connection settings the dialect needs. For
// sqlite that is WAL journaling and a busy timeout, so other processes
// opening the same file wait for locks instead of failing.
func (d Dialect) dsn(dsn string) string {
	if d != DialectSQLite {
		return dsn
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}

	return dsn + sep + "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}

// readTxOptions returns the options of the transaction Load reads in, so
// both of its queries see the same saved set.
func (d Dialect) readTxOptions() *sql.TxOptions {
	if d == DialectPostgres {
		return &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
	}

	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS zone_forecasts (
		zone_position INTEGER NOT NULL,
		zone TEXT PRIMARY KEY,
		lat DOUBLE PRECISION NOT NULL,
		lon DOUBLE PRECISION NOT NULL,
		last_update TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS forecast_entries (
		zone TEXT NOT NULL REFERENCES zone_forecasts(zone),
		day_offset INTEGER NOT NULL,
		forecast_date TEXT NOT NULL,
		day_label TEXT NOT NULL,
		wave_height DOUBLE PRECISION NOT NULL,
		temperature DOUBLE PRECISION NOT NULL,
		current_speed DOUBLE PRECISION NOT NULL,
		safety TEXT NOT NULL,
		fishing_index TEXT NOT NULL,
		PRIMARY KEY (zone, day_offset)
	)`,
}

// SQLStore keeps the forecast set in two tables, zone_forecasts and
// forecast_entries. Only the latest set is kept.
type SQLStore struct {
	// The database connection.
	DB *sql.DB

	// The flavour of DB.
	Dialect Dialect
}

// NewSQLStore creates and returns a SQLStore on db.
func NewSQLStore(db *sql.DB, d Dialect) *SQLStore {
	return &SQLStore{DB: db, Dialect: d}
}

// OpenSQLStore opens a connection for dialect d, verifies it and creates
// the tables if they are missing. For sqlite, dsn is a file path and its
// directory is created first.
func OpenSQLStore(ctx context.Context, d Dialect, dsn string) (*SQLStore, error) {
	switch d {
	case DialectSQLite:
		if err := os.MkdirAll(filepath.Dir(dsn), 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	case DialectPostgres:
	default:
		return nil, fmt.Errorf("unsupported dialect %q", d)
	}

	db, err := sql.Open(string(d), d.dsn(dsn))
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", d, err)
	}

	// sqlite allows a single writer. One connection queues writers and
	// readers in database/sql instead of failing them with SQLITE_BUSY.
	if d == DialectSQLite {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to %s database: %w", d, err)
	}

	s := NewSQLStore(db, d)
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Migrate creates the forecast tables if they do not exist.
func (s *SQLStore) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrating schema: %w", err)
		}
	}

	return nil
}

// Close closes the database connection.
func (s *SQLStore) Close() error {
	return s.DB.Close()
}

// Save deletes every stored row and inserts forecasts in one
// transaction.
func (s *SQLStore) Save(ctx context.Context, forecasts []ZoneForecast) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM forecast_entries`); err != nil {
		return fmt.Errorf("deleting entries: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM zone_forecasts`); err != nil {
		return fmt.Errorf("deleting zones: %w", err)
	}

	for i, zf := range forecasts {
		z := newZoneEntity(i, zf)
		if err := z.Insert(ctx, tx, s.Dialect); err != nil {
			return fmt.Errorf("inserting zone (zone=%s): %w", zf.Zone, err)
		}

		for offset, e := range zf.Forecasts {
			entity := newEntryEntity(zf.Zone, offset, e)
			if err := entity.Insert(ctx, tx, s.Dialect); err != nil {
				return fmt.Errorf("inserting entry (zone=%s, dayOffset=%d): %w", zf.Zone, offset, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing forecasts: %w", err)
	}

	return nil
}

// Load reads the stored set with zones in their saved order and entries
// ascending by day offset. Both tables are read in one transaction.
func (s *SQLStore) Load(ctx context.Context) ([]ZoneForecast, error) {
	tx, err := s.DB.BeginTx(ctx, s.Dialect.readTxOptions())
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	zones, err := s.selectZones(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("selecting zones: %w", err)
	}

	entries, err := s.selectEntries(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("selecting entries: %w", err)
	}

	byZone := make(map[string]int, len(zones))
	forecasts := make([]ZoneForecast, 0, len(zones))
	for _, z := range zones {
		byZone[z.Zone] = len(forecasts)
		forecasts = append(forecasts, z.ToZoneForecast())
	}

	for _, e := range entries {
		i, ok := byZone[e.Zone]
		if !ok {
			continue
		}
		forecasts[i].Forecasts = append(forecasts[i].Forecasts, e.ToEntry())
	}

	return forecasts, nil
}

func (s *SQLStore) selectZones(ctx context.Context, db Querier) ([]zoneEntity, error) {
	query := `SELECT zone_position, zone, lat, lon, last_update FROM zone_forecasts
			  ORDER BY zone_position`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var zones []zoneEntity
	for rows.Next() {
		z := zoneEntity{}
		if err := z.Scan(rows); err != nil {
			return nil, err
		}
		zones = append(zones, z)
	}

	return zones, rows.Err()
}

func (s *SQLStore) selectEntries(ctx context.Context, db Querier) ([]entryEntity, error) {
	query := `SELECT zone, day_offset, forecast_date, day_label, wave_height, temperature,
			  current_speed, safety, fishing_index FROM forecast_entries
			  ORDER BY zone, day_offset`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []entryEntity
	for rows.Next() {
		e := entryEntity{}
		if err := e.Scan(rows); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

var _ Store = (*SQLStore)(nil)
