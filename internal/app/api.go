package app

import (
	"context"
)

//Aircraft - one entry of the ADS-B aircraft feed
type Aircraft struct {
	Hex         string  `json:"hex"`
	Callsign    string  `json:"flight"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	AltitudeFt  float64 `json:"altitude"`
	HasPosition bool    `json:"hasPosition"`
}

//FetchResult - outcome of one provider fetch
type FetchResult int

const (
	// NoChange - nothing to re-render
	NoChange FetchResult = iota
	// Update - the provider message set changed
	Update
	// Error - the fetch failed, previous messages stay valid
	Error
)

func (r FetchResult) String() string {
	switch r {
	case Update:
		return "UPDATE"
	case NoChange:
		return "NO_CHANGE"
	case Error:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

const (
	FEETTOMETER = 0.3048
	KMTONM      = 0.539957
)

//MessageProvider - a source of display messages
type MessageProvider interface {
	// Fetch runs one fetch cycle and may replace the message set
	Fetch(ctx context.Context) FetchResult
	// Messages returns a copy of the latest message set, empty when there is nothing to show
	Messages() []string
}

//StatusReporter - optionally implemented by providers that have an ancillary status line
type StatusReporter interface {
	Status() string
}

//Display - the board the messages are rendered on
type Display interface {
	Init(ctx context.Context, params interface{}) error
	// Show renders a message already padded to the board width
	Show(ctx context.Context, text string) error
	// Status writes an ancillary line (data time, connectivity, ...)
	Status(ctx context.Context, line int, text string) error
	Close() error
}
