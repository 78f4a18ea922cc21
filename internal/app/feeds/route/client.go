package route

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// ErrNoRoute - the service does not know a route for the callsign
var ErrNoRoute = errors.New("no flight route")

// Route - what the service knows about a callsign
type Route struct {
	CallsignIATA string `json:"callsignIata"`
	Origin       string `json:"origin"`
	Destination  string `json:"destination"`
}

// HasAirports is true when both ends of the route are known
func (r Route) HasAirports() bool {
	return r.Origin != "" && r.Destination != ""
}

// Client looks routes up by callsign, with an expiring cache and a rate limit
type Client struct {
	Log        *logrus.Logger
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	// a nil entry caches an unknown callsign
	cache *expirable.LRU[string, *Route]
}

type lookupResponse struct {
	Response json.RawMessage `json:"response"`
}

type flightRouteResponse struct {
	FlightRoute *struct {
		CallsignIATA *string `json:"callsign_iata"`
		Origin       struct {
			IATACode string `json:"iata_code"`
		} `json:"origin"`
		Destination struct {
			IATACode string `json:"iata_code"`
		} `json:"destination"`
	} `json:"flightroute"`
}

func New(log *logrus.Logger, conf Configuration) *Client {
	timeout := time.Duration(conf.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	limit := rate.Inf
	if conf.RequestsPerMinute > 0 {
		limit = rate.Limit(float64(conf.RequestsPerMinute) / 60.0)
	}

	size := conf.CacheSize
	if size <= 0 {
		size = 128
	}

	return &Client{
		Log:     log,
		baseURL: strings.TrimRight(conf.URL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(limit, 1),
		cache:   expirable.NewLRU[string, *Route](size, nil, time.Duration(conf.CacheTTL)*time.Minute),
	}
}

// Lookup returns the route of a callsign, ErrNoRoute when the service has none
func (c *Client) Lookup(ctx context.Context, callsign string) (Route, error) {
	callsign = strings.ToUpper(strings.TrimSpace(callsign))
	if callsign == "" {
		return Route{}, ErrNoRoute
	}

	if cached, ok := c.cache.Get(callsign); ok {
		c.Log.WithContext(ctx).WithFields(logrus.Fields{
			"callsign": callsign,
		}).Debug("Route cache hit")
		if cached == nil {
			return Route{}, ErrNoRoute
		}
		return *cached, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return Route{}, fmt.Errorf("route lookup rate limit: %w", err)
	}

	r, err := c.fetch(ctx, callsign)
	switch {
	case err == nil:
		c.cache.Add(callsign, &r)
	case errors.Is(err, ErrNoRoute):
		c.cache.Add(callsign, nil)
	}
	return r, err
}

func (c *Client) fetch(ctx context.Context, callsign string) (Route, error) {
	start := time.Now()
	endpoint := c.baseURL + "/callsign/" + url.PathEscape(callsign)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Route{}, fmt.Errorf("failed to build route request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Route{}, fmt.Errorf("failed to fetch route: %w", err)
	}
	defer func() {
		resp.Body.Close()
	}()

	c.Log.WithContext(ctx).WithFields(logrus.Fields{
		"callsign": callsign,
		"status":   resp.StatusCode,
		"duration": time.Since(start),
	}).Debug("Finished route request")

	// adsbdb answers unknown callsigns with a 404 and a plain string response
	if resp.StatusCode == http.StatusNotFound {
		return Route{}, ErrNoRoute
	}
	if resp.StatusCode != http.StatusOK {
		return Route{}, fmt.Errorf("route service returned status %d", resp.StatusCode)
	}

	var lookup lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&lookup); err != nil {
		return Route{}, fmt.Errorf("failed to parse route response: %w", err)
	}

	raw := bytes.TrimSpace(lookup.Response)
	if len(raw) == 0 || raw[0] != '{' {
		return Route{}, ErrNoRoute
	}

	var fr flightRouteResponse
	if err := json.Unmarshal(raw, &fr); err != nil {
		return Route{}, fmt.Errorf("failed to parse route response: %w", err)
	}
	if fr.FlightRoute == nil {
		return Route{}, ErrNoRoute
	}

	r := Route{
		Origin:      fr.FlightRoute.Origin.IATACode,
		Destination: fr.FlightRoute.Destination.IATACode,
	}
	if fr.FlightRoute.CallsignIATA != nil {
		r.CallsignIATA = *fr.FlightRoute.CallsignIATA
	}
	return r, nil
}
