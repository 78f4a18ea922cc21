package adsb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/francois-poidevin/flightboard/internal/app"
	"github.com/sirupsen/logrus"
)

// ErrMalformed - the feed answered but the payload has no aircraft list
var ErrMalformed = errors.New("malformed aircraft feed")

// Client reads the aircraft.json document served by dump1090/readsb
type Client struct {
	Log        *logrus.Logger
	url        string
	httpClient *http.Client
}

// feedResponse - the subset of aircraft.json we use
type feedResponse struct {
	Now      float64         `json:"now"`
	Aircraft *[]feedAircraft `json:"aircraft"`
}

type feedAircraft struct {
	Hex     string      `json:"hex"`
	Flight  *string     `json:"flight"`
	Lat     *float64    `json:"lat"`
	Lon     *float64    `json:"lon"`
	AltGeom interface{} `json:"alt_geom"`
	AltBaro interface{} `json:"alt_baro"`
}

func New(log *logrus.Logger, conf Configuration) *Client {
	timeout := time.Duration(conf.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		Log: log,
		url: conf.URL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch returns every aircraft of the feed, entries without callsign included
func (c *Client) Fetch(ctx context.Context) ([]app.Aircraft, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build feed request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch aircraft feed: %w", err)
	}
	defer func() {
		resp.Body.Close()
	}()

	c.Log.WithContext(ctx).WithFields(logrus.Fields{
		"status":   resp.StatusCode,
		"duration": time.Since(start),
	}).Debug("Finished adsb request")

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("feed returned status %d: %s", resp.StatusCode, string(body))
	}

	var feed feedResponse
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("failed to parse aircraft feed: %w", err)
	}
	if feed.Aircraft == nil {
		return nil, ErrMalformed
	}

	result := make([]app.Aircraft, 0, len(*feed.Aircraft))
	for _, ac := range *feed.Aircraft {
		result = append(result, convert(ac))
	}
	return result, nil
}

func convert(ac feedAircraft) app.Aircraft {
	aircraft := app.Aircraft{
		Hex: ac.Hex,
	}
	if ac.Flight != nil {
		aircraft.Callsign = strings.TrimSpace(*ac.Flight)
	}
	if ac.Lat != nil && ac.Lon != nil {
		aircraft.Lat = *ac.Lat
		aircraft.Lon = *ac.Lon
		aircraft.HasPosition = true
	}
	// geometric altitude first, barometric as fallback, 0 when none is reported
	if alt, ok := parseAltitude(ac.AltGeom); ok {
		aircraft.AltitudeFt = alt
	} else if alt, ok := parseAltitude(ac.AltBaro); ok {
		aircraft.AltitudeFt = alt
	}
	return aircraft
}

// parseAltitude accepts a number or the "ground" marker
func parseAltitude(val interface{}) (float64, bool) {
	switch v := val.(type) {
	case float64:
		return v, true
	case string:
		if v == "ground" {
			return 0, true
		}
	}
	return 0, false
}
