package climate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const (
	MsgMissingLocation  = "Missing required parameters: location is required."
	MsgMissingStartDate = "Missing required parameters: date_range with start_date required."

	DefaultDatasetMode = "Global"
)

// Coord is a coordinate that also accepts numeric strings ("19.07").
type Coord float64

func (c *Coord) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		b = []byte(strings.TrimSpace(s))
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("invalid coordinate %q", string(b))
	}
	*c = Coord(f)
	return nil
}

type Location struct {
	Latitude  *Coord `json:"latitude,omitempty"`
	Longitude *Coord `json:"longitude,omitempty"`
	CityName  string `json:"city_name,omitempty"`
	// Name is looked up in the city table when coordinates are missing.
	Name string `json:"name,omitempty"`
}

func (l *Location) empty() bool {
	return l == nil || (l.Latitude == nil && l.Longitude == nil && l.CityName == "" && l.Name == "")
}

type DateRange struct {
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date,omitempty"`
}

type Request struct {
	Location          *Location  `json:"location" validate:"required"`
	DateRange         *DateRange `json:"date_range" validate:"required"`
	IncludeAIInsights bool       `json:"include_ai_insights,omitempty"`
	DatasetMode       string     `json:"dataset_mode,omitempty"`
}

// InputError is a client mistake reported with HTTP 400.
type InputError struct {
	Msg string
}

func (e *InputError) Error() string { return e.Msg }

// Validate applies the required-field rules that struct tags cannot express.
func (r *Request) Validate() error {
	if r.Location.empty() {
		return &InputError{Msg: MsgMissingLocation}
	}
	if r.DateRange == nil || strings.TrimSpace(r.DateRange.StartDate) == "" {
		return &InputError{Msg: MsgMissingStartDate}
	}
	return nil
}

type Condition struct {
	Probability float64 `json:"probability"`
	Label       string  `json:"label"`
	Threshold   string  `json:"threshold"`
	Description string  `json:"description"`
}

type Summary struct {
	DataPoints  int    `json:"data_points"`
	DateRange   string `json:"date_range"`
	Location    string `json:"location"`
	RiskLevel   string `json:"risk_level"`
	DataQuality string `json:"data_quality"`
}

type Probabilities struct {
	Rain        Condition `json:"rain"`
	ExtremeHeat Condition `json:"extreme_heat"`
	HighWind    Condition `json:"high_wind"`
	Cloudy      Condition `json:"cloudy"`
	GoodWeather Condition `json:"good_weather"`
	Sunny       Condition `json:"sunny"`
	Temperature Condition `json:"temperature"`
	Summary     Summary   `json:"summary"`
}

type ResolvedLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	CityName  string  `json:"city_name"`
}

type Report struct {
	Location       ResolvedLocation `json:"location"`
	DateRange      DateRange        `json:"date_range"`
	Probabilities  Probabilities    `json:"probabilities"`
	DataSources    []string         `json:"data_sources"`
	AnalysisPeriod string           `json:"analysis_period"`
	DatasetMode    string           `json:"dataset_mode"`
	AIInsights     string           `json:"ai_insights,omitempty"`
}
