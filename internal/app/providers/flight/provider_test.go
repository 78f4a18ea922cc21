package flight

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/francois-poidevin/flightboard/internal/app"
	"github.com/francois-poidevin/flightboard/internal/app/feeds/route"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

var log *logrus.Logger

func init() {
	log = logrus.New()
	log.Out = io.Discard
}

type fakeFeed struct {
	aircraft []app.Aircraft
	err      error
}

func (f *fakeFeed) Fetch(ctx context.Context) ([]app.Aircraft, error) {
	return f.aircraft, f.err
}

type fakeRoutes struct {
	routes  map[string]route.Route
	err     error
	lookups []string
}

func (f *fakeRoutes) Lookup(ctx context.Context, callsign string) (route.Route, error) {
	f.lookups = append(f.lookups, callsign)
	if f.err != nil {
		return route.Route{}, f.err
	}
	r, ok := f.routes[callsign]
	if !ok {
		return route.Route{}, route.ErrNoRoute
	}
	return r, nil
}

func TestProviderEndToEnd(t *testing.T) {
	feed := &fakeFeed{aircraft: []app.Aircraft{plane("7C1234", "QFA123", 1.0, 3000)}}
	routes := &fakeRoutes{routes: map[string]route.Route{
		"QFA123": {CallsignIATA: "QF123", Origin: "SYD", Destination: "MEL"},
	}}
	p := New(log, feed, routes, testFilter)
	ctx := context.Background()

	assert.Equal(t, app.Update, p.Fetch(ctx))
	assert.Equal(t, []string{"QF123", "SYDMEL"}, p.Messages())
	assert.Equal(t, "Num planes: 1", p.Status())

	// same aircraft again: no re-render and no second lookup
	assert.Equal(t, app.NoChange, p.Fetch(ctx))
	assert.Equal(t, []string{"QF123", "SYDMEL"}, p.Messages())
	assert.Len(t, routes.lookups, 1)

	// aircraft gone
	feed.aircraft = nil
	assert.Equal(t, app.Update, p.Fetch(ctx))
	assert.Empty(t, p.Messages())
	assert.Equal(t, app.NoChange, p.Fetch(ctx))

	// the same aircraft coming back is a change again
	feed.aircraft = []app.Aircraft{plane("7C1234", "QFA123", 1.0, 3000)}
	assert.Equal(t, app.Update, p.Fetch(ctx))
	assert.Equal(t, []string{"QF123", "SYDMEL"}, p.Messages())
}

func TestProviderCommercialPreferred(t *testing.T) {
	feed := &fakeFeed{aircraft: []app.Aircraft{
		plane("1", "VHABC", 0.5, 3000),
		plane("2", "JST501", 2.0, 3000),
	}}
	p := New(log, feed, &fakeRoutes{}, testFilter)

	assert.Equal(t, app.Update, p.Fetch(context.Background()))
	assert.Equal(t, []string{"JQ501"}, p.Messages())
}

func TestProviderFeedError(t *testing.T) {
	feed := &fakeFeed{aircraft: []app.Aircraft{plane("1", "QFA1", 1.0, 3000)}}
	p := New(log, feed, &fakeRoutes{}, testFilter)
	ctx := context.Background()

	assert.Equal(t, app.Update, p.Fetch(ctx))
	assert.Equal(t, []string{"QF1"}, p.Messages())

	feed.err = errors.New("connection refused")
	assert.Equal(t, app.Error, p.Fetch(ctx))
	assert.Equal(t, []string{"QF1"}, p.Messages())
}

func TestProviderRouteDegradation(t *testing.T) {
	t.Run("route service down", func(t *testing.T) {
		feed := &fakeFeed{aircraft: []app.Aircraft{plane("1", "QFA123", 1.0, 3000)}}
		p := New(log, feed, &fakeRoutes{err: errors.New("timeout")}, testFilter)

		assert.Equal(t, app.Update, p.Fetch(context.Background()))
		assert.Equal(t, []string{"QF123"}, p.Messages())
	})

	t.Run("route without airports", func(t *testing.T) {
		feed := &fakeFeed{aircraft: []app.Aircraft{plane("1", "UAL7", 1.0, 3000)}}
		routes := &fakeRoutes{routes: map[string]route.Route{"UAL7": {CallsignIATA: "UA7"}}}
		p := New(log, feed, routes, testFilter)

		assert.Equal(t, app.Update, p.Fetch(context.Background()))
		assert.Equal(t, []string{"UA7"}, p.Messages())
	})

	t.Run("unmapped airline without route", func(t *testing.T) {
		feed := &fakeFeed{aircraft: []app.Aircraft{plane("1", "UAL7", 1.0, 3000)}}
		p := New(log, feed, &fakeRoutes{}, testFilter)

		assert.Equal(t, app.Update, p.Fetch(context.Background()))
		assert.Equal(t, []string{"UAL7"}, p.Messages())
	})
}

func TestProviderMessagesIsACopy(t *testing.T) {
	feed := &fakeFeed{aircraft: []app.Aircraft{plane("1", "QFA1", 1.0, 3000)}}
	p := New(log, feed, &fakeRoutes{}, testFilter)
	p.Fetch(context.Background())

	msgs := p.Messages()
	msgs[0] = "XXX"
	assert.Equal(t, []string{"QF1"}, p.Messages())
}
