package route

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var log *logrus.Logger

func init() {
	log = logrus.New()
	log.Out = io.Discard
}

func newTestClient(url string) *Client {
	return New(log, Configuration{URL: url, Timeout: 2, CacheSize: 8, CacheTTL: 10})
}

func TestLookup(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/v0/callsign/QFA123", r.URL.Path)
		io.WriteString(w, `{"response":{"flightroute":{
			"callsign":"QFA123","callsign_icao":"QFA123","callsign_iata":"QF123",
			"origin":{"iata_code":"SYD","icao_code":"YSSY","name":"Sydney"},
			"destination":{"iata_code":"MEL","icao_code":"YMML","name":"Melbourne"}}}}`)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL + "/v0/")

	r, err := client.Lookup(context.Background(), " qfa123 ")
	require.NoError(t, err)
	assert.Equal(t, "QF123", r.CallsignIATA)
	assert.Equal(t, "SYD", r.Origin)
	assert.Equal(t, "MEL", r.Destination)
	assert.True(t, r.HasAirports())

	// second lookup is served from the cache
	_, err = client.Lookup(context.Background(), "QFA123")
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestLookupNoRoute(t *testing.T) {
	t.Run("unknown callsign", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `{"response":"unknown callsign"}`)
		}))
		defer srv.Close()

		client := newTestClient(srv.URL)
		_, err := client.Lookup(context.Background(), "VOZ999")
		assert.True(t, errors.Is(err, ErrNoRoute))

		_, err = client.Lookup(context.Background(), "VOZ999")
		assert.True(t, errors.Is(err, ErrNoRoute))
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("missing flightroute", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"response":{}}`)
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL).Lookup(context.Background(), "JST501")
		assert.True(t, errors.Is(err, ErrNoRoute))
	})

	t.Run("empty callsign", func(t *testing.T) {
		_, err := newTestClient("http://127.0.0.1:1").Lookup(context.Background(), "  ")
		assert.True(t, errors.Is(err, ErrNoRoute))
	})
}

func TestLookupErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Lookup(context.Background(), "QFA1")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoRoute))

	// failures are not cached
	_, err = client.Lookup(context.Background(), "QFA1")
	require.Error(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestLookupMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"response":{"flightroute":`)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Lookup(context.Background(), "QFA1")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoRoute))
}

func TestLookupRateLimit(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		io.WriteString(w, `{"response":{"flightroute":{"callsign_iata":"QF1",
			"origin":{"iata_code":"SYD"},"destination":{"iata_code":"LHR"}}}}`)
	}))
	defer srv.Close()

	// one request a minute: the first lookup takes the only token
	c := New(log, Configuration{URL: srv.URL, Timeout: 2, CacheSize: 8, CacheTTL: 10, RequestsPerMinute: 1})

	_, err := c.Lookup(context.Background(), "QFA1")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = c.Lookup(ctx, "QFA2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "route lookup rate limit")

	cancelled, cancelNow := context.WithCancel(context.Background())
	cancelNow()
	_, err = c.Lookup(cancelled, "QFA3")
	assert.True(t, errors.Is(err, context.Canceled))

	// cached callsigns do not wait for the limiter
	r, err := c.Lookup(ctx, "QFA1")
	require.NoError(t, err)
	assert.Equal(t, "QF1", r.CallsignIATA)

	assert.Equal(t, int32(1), calls.Load())
}
