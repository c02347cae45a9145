package forecast

import (
	"context"
)

// zoneEntity is a row of the zone_forecasts table. Position keeps the
// zone table order.
type zoneEntity struct {
	Position   int
	Zone       string
	Lat        float64
	Lon        float64
	LastUpdate string
}

func newZoneEntity(position int, zf ZoneForecast) zoneEntity {
	return zoneEntity{
		Position:   position,
		Zone:       zf.Zone,
		Lat:        zf.Lat,
		Lon:        zf.Lon,
		LastUpdate: zf.LastUpdate,
	}
}

// ToZoneForecast returns this zoneEntity as a ZoneForecast with no
// entries.
func (z *zoneEntity) ToZoneForecast() ZoneForecast {
	return ZoneForecast{
		Zone:       z.Zone,
		Lat:        z.Lat,
		Lon:        z.Lon,
		Forecasts:  []Entry{},
		LastUpdate: z.LastUpdate,
	}
}

// Scan will scan the query result in scanner into this zoneEntity.
func (z *zoneEntity) Scan(scanner Scanner) error {
	return scanner.Scan(
		&z.Position,
		&z.Zone,
		&z.Lat,
		&z.Lon,
		&z.LastUpdate)
}

// Insert writes this zoneEntity into the database.
func (z *zoneEntity) Insert(ctx context.Context, db Execer, d Dialect) error {
	query := `INSERT INTO zone_forecasts(zone_position, zone, lat, lon, last_update)
			  VALUES(?, ?, ?, ?, ?)`

	_, err := db.ExecContext(ctx, d.Rebind(query),
		z.Position,
		z.Zone,
		z.Lat,
		z.Lon,
		z.LastUpdate)

	return err
}

// entryEntity is a row of the forecast_entries table. A row belongs to a
// zone_forecasts row and is identified by Zone and DayOffset.
type entryEntity struct {
	Zone         string
	DayOffset    int
	Date         string
	Day          string
	WaveHeight   float64
	Temperature  float64
	Current      float64
	Safety       string
	FishingIndex string
}

func newEntryEntity(zoneName string, offset int, e Entry) entryEntity {
	return entryEntity{
		Zone:         zoneName,
		DayOffset:    offset,
		Date:         e.Date,
		Day:          e.Day,
		WaveHeight:   e.WaveHeight,
		Temperature:  e.Temperature,
		Current:      e.Current,
		Safety:       string(e.Safety),
		FishingIndex: string(e.FishingIndex),
	}
}

// ToEntry returns this entryEntity as an Entry.
func (e *entryEntity) ToEntry() Entry {
	return Entry{
		Date:         e.Date,
		Day:          e.Day,
		WaveHeight:   e.WaveHeight,
		Temperature:  e.Temperature,
		Current:      e.Current,
		Safety:       Safety(e.Safety),
		FishingIndex: FishingIndex(e.FishingIndex),
	}
}

// Scan will scan the query result in scanner into this entryEntity.
func (e *entryEntity) Scan(scanner Scanner) error {
	return scanner.Scan(
		&e.Zone,
		&e.DayOffset,
		&e.Date,
		&e.Day,
		&e.WaveHeight,
		&e.Temperature,
		&e.Current,
		&e.Safety,
		&e.FishingIndex)
}

// Insert writes this entryEntity into the database. The zone row it
// belongs to must already exist.
func (e *entryEntity) Insert(ctx context.Context, db Execer, d Dialect) error {
	query := `INSERT INTO forecast_entries(zone, day_offset, forecast_date, day_label,
			  wave_height, temperature, current_speed, safety, fishing_index)
			  VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := db.ExecContext(ctx, d.Rebind(query),
		e.Zone,
		e.DayOffset,
		e.Date,
		e.Day,
		e.WaveHeight,
		e.Temperature,
		e.Current,
		e.Safety,
		e.FishingIndex)

	return err
}
