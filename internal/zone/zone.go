// Package zone holds the fixed set of coastal zones forecasts are
// generated for.
package zone

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/cicconee/marine-forecast/internal/geometry"
)

// Zone is a named coastal location. It is the unit of forecast
// granularity.
type Zone struct {
	Name  string
	Point geometry.Point
}

func (z Zone) Lat() float64 {
	return z.Point.Lat()
}

func (z Zone) Lon() float64 {
	return z.Point.Lon()
}

// Table is an ordered, immutable set of zones. The order zones are
// given to NewTable is the order forecasts are generated and served in.
//
// The zero value is an empty Table.
type Table struct {
	zones  []Zone
	byName map[string]int
}

// NewTable validates zones and returns them as a Table. Every zone needs
// a unique, non-empty name and a valid point.
func NewTable(zones ...Zone) (Table, error) {
	if len(zones) == 0 {
		return Table{}, errors.New("zone table is empty")
	}

	t := Table{
		zones:  make([]Zone, 0, len(zones)),
		byName: make(map[string]int, len(zones)),
	}

	for i, z := range zones {
		name := strings.TrimSpace(z.Name)
		if name == "" {
			return Table{}, fmt.Errorf("zone %d: name is empty", i)
		}

		if _, ok := t.byName[name]; ok {
			return Table{}, fmt.Errorf("zone %d: duplicate name %q", i, name)
		}

		if err := z.Point.Validate(); err != nil {
			return Table{}, fmt.Errorf("zone %q: %w", name, err)
		}

		t.byName[name] = len(t.zones)
		t.zones = append(t.zones, Zone{
			Name:  name,
			Point: geometry.NewPoint(z.Lon(), z.Lat()),
		})
	}

	return t, nil
}

// Len returns the number of zones in the table.
func (t Table) Len() int {
	return len(t.zones)
}

// All returns a copy of the zones in table order.
func (t Table) All() []Zone {
	result := make([]Zone, len(t.zones))
	copy(result, t.zones)
	return result
}

// Get returns the zone called name.
func (t Table) Get(name string) (Zone, bool) {
	i, ok := t.byName[name]
	if !ok {
		return Zone{}, false
	}

	return t.zones[i], true
}

// Default returns the built-in table: five fishing ports along the
// Senegalese coast, north to south, inside the Canary upwelling system.
func Default() Table {
	t, err := NewTable(defaultZones()...)
	if err != nil {
		panic(fmt.Sprintf("zone: invalid default table: %v", err))
	}

	return t
}

func defaultZones() []Zone {
	return []Zone{
		{Name: "Saint-Louis", Point: geometry.NewPoint(-16.4818, 16.0326)},
		{Name: "Kayar", Point: geometry.NewPoint(-17.1194, 14.9189)},
		{Name: "Dakar", Point: geometry.NewPoint(-17.4467, 14.6928)},
		{Name: "Mbour", Point: geometry.NewPoint(-16.9692, 14.4199)},
		{Name: "Joal-Fadiouth", Point: geometry.NewPoint(-16.8333, 14.1667)},
	}
}

// fileZone is the JSON shape of a zone in a zone file.
type fileZone struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// LoadFile reads a JSON array of {"name", "lat", "lon"} objects from
// filename and returns it as a Table.
func LoadFile(filename string) (Table, error) {
	file, err := os.Open(filename)
	if err != nil {
		return Table{}, fmt.Errorf("opening zone file: %w", err)
	}
	defer file.Close()

	var entries []fileZone
	if err := json.NewDecoder(file).Decode(&entries); err != nil {
		return Table{}, fmt.Errorf("decoding zone file %s: %w", filename, err)
	}

	zones := make([]Zone, 0, len(entries))
	for _, e := range entries {
		zones = append(zones, Zone{Name: e.Name, Point: geometry.NewPoint(e.Lon, e.Lat)})
	}

	return NewTable(zones...)
}
