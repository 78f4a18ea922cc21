package flight

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/francois-poidevin/flightboard/internal/app"
	"github.com/francois-poidevin/flightboard/internal/app/feeds/route"
	"github.com/sirupsen/logrus"
)

// AircraftSource - the live ADS-B feed
type AircraftSource interface {
	Fetch(ctx context.Context) ([]app.Aircraft, error)
}

// RouteLookup - the callsign route service
type RouteLookup interface {
	Lookup(ctx context.Context, callsign string) (route.Route, error)
}

// Provider shows the flight code and route of the most relevant nearby aircraft
type Provider struct {
	Log    *logrus.Logger
	feed   AircraftSource
	routes RouteLookup
	filter Filter

	// guards numPlanes, read by the status line
	mu        sync.Mutex
	numPlanes int

	tracking Tracking
}

func New(log *logrus.Logger, feed AircraftSource, routes RouteLookup, filter Filter) *Provider {
	return &Provider{
		Log:    log,
		feed:   feed,
		routes: routes,
		filter: filter,
	}
}

func (p *Provider) Fetch(ctx context.Context) app.FetchResult {
	aircraft, err := p.feed.Fetch(ctx)
	if err != nil {
		p.Log.WithContext(ctx).WithFields(logrus.Fields{
			"Error": err,
		}).Error("Unable to get aircraft data")
		return app.Error
	}

	p.mu.Lock()
	p.numPlanes = len(aircraft)
	p.mu.Unlock()

	best := Select(aircraft, p.filter, func(reason error) {
		p.Log.WithContext(ctx).Debug(reason.Error())
	})

	next, result, lookup := Evaluate(best, p.tracking)
	switch {
	case best == nil && result == app.Update:
		p.Log.WithContext(ctx).Info("No nearby planes anymore")
	case best == nil:
		p.Log.WithContext(ctx).Debug("No nearby planes")
	case !lookup:
		p.Log.WithContext(ctx).WithFields(logrus.Fields{
			"callsign": best.Aircraft.Callsign,
		}).Debug("Plane already detected")
	default:
		p.Log.WithContext(ctx).WithFields(logrus.Fields{
			"hex":      best.Aircraft.Hex,
			"callsign": best.Aircraft.Callsign,
			"distance": fmt.Sprintf("%.2fkm (%.2fnm)", best.DistanceKm, best.DistanceKm*app.KMTONM),
			"altitude": fmt.Sprintf("%.0fft (%.0fm)", best.Aircraft.AltitudeFt, best.Aircraft.AltitudeFt*app.FEETTOMETER),
		}).Info("Nearest plane")
		next.Messages = p.buildMessages(ctx, best.Aircraft.Callsign)
	}

	p.tracking = next
	return result
}

// buildMessages returns [flight code, ORIGDEST] with the route left out when unknown
func (p *Provider) buildMessages(ctx context.Context, callsign string) []string {
	flightCode := IcaoToIataFlight(callsign)

	r, err := p.routes.Lookup(ctx, callsign)
	if err != nil {
		if errors.Is(err, route.ErrNoRoute) {
			p.Log.WithContext(ctx).WithFields(logrus.Fields{
				"callsign": callsign,
			}).Info("No flight route for callsign")
		} else {
			p.Log.WithContext(ctx).WithFields(logrus.Fields{
				"callsign": callsign,
				"Error":    err,
			}).Warn("Unable to get flight route")
		}
		return []string{flightCode}
	}

	if r.CallsignIATA != "" {
		flightCode = r.CallsignIATA
	}
	messages := []string{flightCode}
	if r.HasAirports() {
		messages = append(messages, r.Origin+r.Destination)
	}

	p.Log.WithContext(ctx).WithFields(logrus.Fields{
		"callsign": callsign,
		"messages": messages,
	}).Info("Flight route")
	return messages
}

func (p *Provider) Messages() []string {
	return append([]string(nil), p.tracking.Messages...)
}

// Status - number of aircraft in the last feed
func (p *Provider) Status() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return fmt.Sprintf("Num planes: %d", p.numPlanes)
}
