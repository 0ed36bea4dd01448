package climate

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
	"time"
)

const jitter = 10

// Rand is the randomness source. Tests inject a fixed sequence.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

type season struct {
	rain, sunny, cloudy, temp float64
}

var (
	spring  = season{rain: 25, sunny: 60, cloudy: 40, temp: 28}
	monsoon = season{rain: 70, sunny: 45, cloudy: 60, temp: 32}
	autumn  = season{rain: 50, sunny: 55, cloudy: 45, temp: 26}
	winter  = season{rain: 15, sunny: 70, cloudy: 30, temp: 20}
)

var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.DateTime,
}

// Estimator produces synthetic seasonal probabilities: a base chosen by
// hemisphere and month, plus uniform noise of up to 10 points either way.
type Estimator struct {
	mu  sync.Mutex
	rnd Rand
}

func NewEstimator(r Rand) *Estimator {
	if r == nil {
		r = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), uint64(time.Now().Unix())))
	}
	return &Estimator{rnd: r}
}

// Estimate returns an *InputError for client mistakes and a plain error for
// anything else, such as an unparsable start date.
func (e *Estimator) Estimate(req Request) (*Report, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	loc, err := resolve(req.Location)
	if err != nil {
		return nil, err
	}

	start, err := parseDate(req.DateRange.StartDate)
	if err != nil {
		return nil, err
	}

	dates := DateRange{StartDate: req.DateRange.StartDate, EndDate: req.DateRange.EndDate}
	if dates.EndDate == "" {
		dates.EndDate = dates.StartDate
	}
	period := dates.StartDate + " to " + dates.EndDate

	base := seasonFor(loc.Latitude, int(start.Month())-1)

	e.mu.Lock()
	probs := Probabilities{
		Rain:        e.condition(base.rain, "Moderate", ">5mm", "Chance of rainfall"),
		ExtremeHeat: e.condition(math.Max(5, base.temp-25), "Low", ">35°C", "Risk of extreme heat"),
		HighWind:    e.condition(20, "Low", ">40km/h", "Strong wind conditions"),
		Cloudy:      e.condition(base.cloudy, "High", ">70%", "Cloud coverage"),
		GoodWeather: e.condition(100-base.rain, "High", "Clear skies", "Favorable conditions"),
		Sunny:       e.condition(base.sunny, "High", ">50%", "Sunny conditions"),
		Temperature: e.condition(base.temp, "Moderate", "°C", "Temperature forecast"),
	}
	probs.Summary = Summary{
		DataPoints:  100 + e.rnd.IntN(501),
		DateRange:   period,
		Location:    loc.CityName,
		RiskLevel:   "Moderate",
		DataQuality: "Good",
	}
	e.mu.Unlock()

	mode := req.DatasetMode
	if mode == "" {
		mode = DefaultDatasetMode
	}

	report := &Report{
		Location:       loc,
		DateRange:      dates,
		Probabilities:  probs,
		DataSources:    []string{"Historical Climate Data", "Weather Stations", "Satellite Data"},
		AnalysisPeriod: period,
		DatasetMode:    mode,
	}
	if req.IncludeAIInsights {
		report.AIInsights = insights(loc.CityName, probs)
	}
	return report, nil
}

// seasonFor picks the base for a 0-based month. Latitude 0 counts as southern.
func seasonFor(lat float64, month int) season {
	if lat > 0 {
		switch {
		case month >= 2 && month <= 4:
			return spring
		case month >= 5 && month <= 7:
			return monsoon
		case month >= 8 && month <= 10:
			return autumn
		default:
			return winter
		}
	}

	switch {
	case month >= 8 && month <= 10:
		return spring
	case month >= 11 || month <= 1:
		return monsoon
	case month >= 2 && month <= 4:
		return autumn
	default:
		return winter
	}
}

func (e *Estimator) condition(base float64, label, threshold, desc string) Condition {
	v := base + e.rnd.Float64()*2*jitter - jitter
	return Condition{
		Probability: round2(clamp(v, 0, 100)),
		Label:       label,
		Threshold:   threshold,
		Description: desc,
	}
}

func insights(city string, p Probabilities) string {
	rain := p.Rain.Probability
	sunny := p.Sunny.Probability

	var sb strings.Builder
	fmt.Fprintf(&sb, "Based on historical data for %s, ", city)

	switch {
	case rain > 60:
		fmt.Fprintf(&sb, "there's a high %.1f%% chance of rain, so carry an umbrella. ", rain)
	case rain > 30:
		fmt.Fprintf(&sb, "there's a moderate %.1f%% chance of rain, keep an umbrella handy. ", rain)
	default:
		fmt.Fprintf(&sb, "there's only a %.1f%% chance of rain, so you'll likely stay dry. ", rain)
	}

	switch {
	case sunny > 70:
		fmt.Fprintf(&sb, "With %.1f%% sunny conditions expected, it's perfect for outdoor activities! ", sunny)
	case sunny > 50:
		fmt.Fprintf(&sb, "Expect %.1f%% sunny conditions - good weather for most activities. ", sunny)
	default:
		fmt.Fprintf(&sb, "Limited sunshine with %.1f%% sunny conditions - might be cloudy. ", sunny)
	}

	fmt.Fprintf(&sb, "Temperature around %.1f°C is expected.", p.Temperature.Probability)
	return sb.String()
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid start_date %q: expected YYYY-MM-DD", s)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
