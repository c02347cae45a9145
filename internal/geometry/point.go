package geometry

import (
	"fmt"
	"math"
)

// Point is a WGS84 coordinate stored as {lat, lon}.
type Point []float64

// NewPoint returns the Point for longitude x and latitude y.
func NewPoint(x, y float64) Point {
	return Point{y, x}
}

func (p Point) X() float64 {
	return p[1]
}

func (p Point) Y() float64 {
	return p[0]
}

func (p Point) Lon() float64 {
	return p.X()
}

func (p Point) Lat() float64 {
	return p.Y()
}

// RoundedLon returns the longitude rounded to the 4th
// decimal place.
func (p Point) RoundedLon() float64 {
	return Round(p.Lon(), 4)
}

// RoundedLat returns the latitude rounded to the 4th
// decimal place.
func (p Point) RoundedLat() float64 {
	return Round(p.Lat(), 4)
}

// Validate reports whether p holds both coordinates and
// they fall inside the latitude and longitude ranges.
func (p Point) Validate() error {
	if len(p) < 2 {
		return fmt.Errorf("point has %d coordinates, want 2", len(p))
	}

	if p.Lat() < -90 || p.Lat() > 90 {
		return fmt.Errorf("latitude %f out of range", p.Lat())
	}

	if p.Lon() < -180 || p.Lon() > 180 {
		return fmt.Errorf("longitude %f out of range", p.Lon())
	}

	return nil
}

// Round rounds val to precision decimal places.
func Round(val float64, precision uint) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}

// String formats p as degrees with hemisphere letters, rounded to
// the 4th decimal place, e.g. "14.6928°N, 17.4467°W".
func (p Point) String() string {
	if len(p) < 2 {
		return ""
	}

	lat, ns := p.RoundedLat(), "N"
	if lat < 0 {
		lat, ns = -lat, "S"
	}

	lon, ew := p.RoundedLon(), "E"
	if lon < 0 {
		lon, ew = -lon, "W"
	}

	return fmt.Sprintf("%.4f°%s, %.4f°%s", lat, ns, lon, ew)
}
