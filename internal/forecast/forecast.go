package forecast

// Days is the number of daily entries generated per zone: today and the
// two days after it.
const Days = 3

const (
	// TimestampLayout formats ZoneForecast.LastUpdate.
	TimestampLayout = "2006-01-02 15:04:05"

	// DateLayout formats Entry.Date.
	DateLayout = "2006-01-02"
)

// Readings are the raw oceanographic values a Source produces for one
// zone and day.
type Readings struct {
	// Significant wave height in metres.
	WaveHeight float64

	// Sea surface temperature in degrees Celsius.
	Temperature float64

	// Surface current speed in metres per second.
	Current float64
}

// Safety is the risk level of going to sea.
type Safety string

const (
	SafetySafe    Safety = "SAFE"
	SafetyCaution Safety = "CAUTION"
	SafetyDanger  Safety = "DANGER"
)

// FishingIndex rates the expected fishing conditions.
type FishingIndex string

const (
	FishingExcellent FishingIndex = "EXCELLENT"
	FishingAverage   FishingIndex = "AVERAGE"
)

// Entry is the forecast for one zone on one day.
type Entry struct {
	Date         string       `json:"date"`
	Day          string       `json:"day"`
	WaveHeight   float64      `json:"wave_height"`
	Temperature  float64      `json:"temperature"`
	Current      float64      `json:"current"`
	Safety       Safety       `json:"safety"`
	FishingIndex FishingIndex `json:"fishing_index"`
}

// ZoneForecast is a zone with its entries in chronological order. All
// ZoneForecast values from one generator run share LastUpdate.
type ZoneForecast struct {
	Zone       string  `json:"zone"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	Forecasts  []Entry `json:"forecasts"`
	LastUpdate string  `json:"last_update"`
}

// Thresholds are the limits used to classify readings.
type Thresholds struct {
	// Wave height in metres above which the sea is dangerous.
	DangerWave float64

	// Current speed in m/s above which the sea is dangerous.
	DangerCurrent float64

	// Wave height in metres above which caution is advised.
	CautionWave float64

	// Water colder than this, in degrees Celsius, signals upwelling
	// and excellent fishing.
	ExcellentTemp float64
}

// DefaultThresholds returns the thresholds the dashboard ships with.
func DefaultThresholds() Thresholds {
	return Thresholds{
		DangerWave:    2.2,
		DangerCurrent: 0.7,
		CautionWave:   1.8,
		ExcellentTemp: 23,
	}
}

// Classify returns the Safety for a wave height and current speed.
func (t Thresholds) Classify(wave, current float64) Safety {
	switch {
	case wave > t.DangerWave || current > t.DangerCurrent:
		return SafetyDanger
	case wave > t.CautionWave:
		return SafetyCaution
	default:
		return SafetySafe
	}
}

// FishingIndexFor returns the FishingIndex for a sea temperature.
func (t Thresholds) FishingIndexFor(temp float64) FishingIndex {
	if temp < t.ExcellentTemp {
		return FishingExcellent
	}

	return FishingAverage
}
