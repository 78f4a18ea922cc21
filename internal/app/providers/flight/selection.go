package flight

import (
	"fmt"
	"regexp"

	"github.com/francois-poidevin/flightboard/internal/app"
	"github.com/francois-poidevin/flightboard/internal/app/tools"
)

// three letter airline designator followed by a flight number
var commercialPattern = regexp.MustCompile(`^[A-Za-z]{3}[0-9]+`)

// Filter - geometric and altitude thresholds around the reference location
type Filter struct {
	Location         tools.Location
	MaxDistanceKm    float64
	MaxAltitudeFt    float64
	LowAltitudeFt    float64
	LowMaxDistanceKm float64
}

// NewFilter builds a filter from the configuration
func NewFilter(location tools.Location, conf Configuration) Filter {
	return Filter{
		Location:         location,
		MaxDistanceKm:    conf.MaxDistanceKm,
		MaxAltitudeFt:    conf.MaxAltitudeFt,
		LowAltitudeFt:    conf.LowAltitudeFt,
		LowMaxDistanceKm: conf.LowMaxDistanceKm,
	}
}

// Candidate - an aircraft that passed the filter
type Candidate struct {
	Aircraft   app.Aircraft
	DistanceKm float64
}

// Tracking - what the provider reported last, carried from one fetch to the next
type Tracking struct {
	Callsign string
	Messages []string
}

// Check returns the candidate for an aircraft, or the reason it is rejected
func (f Filter) Check(ac app.Aircraft) (Candidate, error) {
	if ac.Callsign == "" {
		return Candidate{}, fmt.Errorf("plane %s has no flight number", ac.Hex)
	}
	if !ac.HasPosition {
		return Candidate{}, fmt.Errorf("plane %s has no position", ac.Callsign)
	}

	dist := f.Location.Distance(ac.Lat, ac.Lon)
	if dist > f.MaxDistanceKm {
		return Candidate{}, fmt.Errorf("plane %s too far away %fkm", ac.Callsign, dist)
	}
	if ac.AltitudeFt > f.MaxAltitudeFt {
		return Candidate{}, fmt.Errorf("plane %s too high %fft", ac.Callsign, ac.AltitudeFt)
	}
	if ac.AltitudeFt < f.LowAltitudeFt && dist > f.LowMaxDistanceKm {
		return Candidate{}, fmt.Errorf("plane %s flying low at %fft and too far away %fkm", ac.Callsign, ac.AltitudeFt, dist)
	}
	return Candidate{Aircraft: ac, DistanceKm: dist}, nil
}

// IsCommercial tells whether a callsign looks like an airline flight number
func IsCommercial(callsign string) bool {
	return commercialPattern.MatchString(callsign)
}

// isBetter - commercial flights first, then the nearest one
func isBetter(current *Candidate, candidate Candidate) bool {
	if current == nil {
		return true
	}
	currentCommercial := IsCommercial(current.Aircraft.Callsign)
	candidateCommercial := IsCommercial(candidate.Aircraft.Callsign)
	if currentCommercial != candidateCommercial {
		return candidateCommercial
	}
	return candidate.DistanceKm < current.DistanceKm
}

// Select returns the best candidate of the list, nil when none passes the filter.
// reject is called for every skipped aircraft and may be nil.
func Select(aircraft []app.Aircraft, f Filter, reject func(error)) *Candidate {
	var best *Candidate
	for _, ac := range aircraft {
		candidate, err := f.Check(ac)
		if err != nil {
			if reject != nil {
				reject(err)
			}
			continue
		}
		if isBetter(best, candidate) {
			c := candidate
			best = &c
		}
	}
	return best
}

// Evaluate decides what a selection means against the previous state.
// lookup is true when best is a new aircraft whose messages still have to be built.
func Evaluate(best *Candidate, prev Tracking) (next Tracking, result app.FetchResult, lookup bool) {
	if best == nil {
		if len(prev.Messages) == 0 {
			return Tracking{}, app.NoChange, false
		}
		return Tracking{}, app.Update, false
	}
	if prev.Callsign != "" && best.Aircraft.Callsign == prev.Callsign {
		return prev, app.NoChange, false
	}
	return Tracking{Callsign: best.Aircraft.Callsign}, app.Update, true
}
