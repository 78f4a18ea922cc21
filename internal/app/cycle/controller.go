// Package cycle drives the board: it polls the message providers in priority
// order, detects staleness and cycles through the active messages.
//
// A Controller is driven by a single goroutine calling Tick. Snapshot may be
// called concurrently.
package cycle

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/francois-poidevin/flightboard/internal/app"
	"github.com/sirupsen/logrus"
)

// NoSource - no provider messages are active
const NoSource = -1

// Settings - timings and board geometry
type Settings struct {
	RequestInterval time.Duration
	CycleInterval   time.Duration
	StaleTimeout    time.Duration
	Width           int
}

// State - everything the loop keeps between ticks
type State struct {
	LastFetch   time.Time `json:"lastFetch"`
	LastSuccess time.Time `json:"lastSuccess"`
	LastAdvance time.Time `json:"lastAdvance"`
	Messages    []string  `json:"messages"`
	Cursor      int       `json:"cursor"`
	Stale       bool      `json:"stale"`
	Source      int       `json:"source"`
	Shown       string    `json:"shown"`
}

type Controller struct {
	Log          *logrus.Logger
	settings     Settings
	display      app.Display
	connectivity func() string
	now          func() time.Time
	providers    []app.MessageProvider

	// written by Tick only, locked for Snapshot readers
	mu     sync.Mutex
	state  State
	status []string
}

// New builds a controller. providers are listed by decreasing priority.
func New(log *logrus.Logger, settings Settings, display app.Display, connectivity func() string, now func() time.Time, providers ...app.MessageProvider) *Controller {
	if now == nil {
		now = time.Now
	}
	if connectivity == nil {
		connectivity = func() string { return "Unknown" }
	}
	return &Controller{
		Log:          log,
		settings:     settings,
		display:      display,
		connectivity: connectivity,
		now:          now,
		providers:    providers,
		state:        State{Source: NoSource},
	}
}

// Tick runs the fetch, staleness and cycle gates once, then refreshes the status lines
func (c *Controller) Tick(ctx context.Context) {
	pending := false

	if c.state.LastFetch.IsZero() || c.now().Sub(c.state.LastFetch) >= c.settings.RequestInterval {
		if c.poll(ctx) {
			pending = true
		}
	}

	if c.checkStale(ctx) {
		pending = true
	}

	now := c.now()
	if pending || now.Sub(c.state.LastAdvance) >= c.settings.CycleInterval {
		c.advance(ctx, now, pending)
	}

	c.renderStatus(ctx)
}

// poll asks the providers for data, stopping at the first one with messages.
// It returns true when the active message set was replaced.
func (c *Controller) poll(ctx context.Context) bool {
	selected := NoSource
	var result app.FetchResult
	var messages []string
	failed := false

	for idx, p := range c.providers {
		res := p.Fetch(ctx)
		if res == app.Error {
			failed = true
		}
		msgs := p.Messages()
		if len(msgs) == 0 {
			continue
		}
		selected, result, messages = idx, res, msgs
		break
	}

	done := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.LastFetch = done

	if selected == NoSource {
		if failed {
			return false
		}
		c.markSuccess(done)
		if c.state.Source == NoSource {
			return false
		}
		c.Log.WithContext(ctx).Info("Nothing to show")
		c.state.Messages = nil
		c.state.Cursor = 0
		c.state.Source = NoSource
		return true
	}

	if result != app.Error {
		c.markSuccess(done)
	} else if c.state.Stale {
		// keep the board blank until a provider answers again
		return false
	}

	if result == app.Update || selected != c.state.Source {
		c.Log.WithContext(ctx).WithFields(logrus.Fields{
			"source":   selected,
			"result":   result,
			"messages": messages,
		}).Info("New messages")
		c.state.Messages = messages
		c.state.Cursor = 0
		c.state.Source = selected
		return true
	}
	return false
}

// callers hold c.mu
func (c *Controller) markSuccess(t time.Time) {
	c.state.LastSuccess = t
	c.state.Stale = false
}

// checkStale blanks the board once when no fetch succeeded for too long
func (c *Controller) checkStale(ctx context.Context) bool {
	now := c.now()
	if c.state.Stale || c.state.LastSuccess.IsZero() || now.Sub(c.state.LastSuccess) <= c.settings.StaleTimeout {
		return false
	}

	c.Log.WithContext(ctx).WithFields(logrus.Fields{
		"lastSuccess": c.state.LastSuccess,
	}).Warn("Data is stale")

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Stale = true
	c.state.Messages = []string{c.blank()}
	c.state.Cursor = 0
	c.state.Source = NoSource
	return true
}

// advance shows the message under the cursor and moves the cursor on
func (c *Controller) advance(ctx context.Context, now time.Time, pending bool) {
	c.mu.Lock()
	if c.state.Cursor >= len(c.state.Messages) {
		c.state.Cursor = 0
	}
	show := false
	var text string
	switch {
	case len(c.state.Messages) > 0:
		text = Pad(c.state.Messages[c.state.Cursor], c.settings.Width)
		show = true
	case pending:
		text = c.blank()
		show = true
	}
	c.state.Cursor++
	c.state.LastAdvance = now
	if show {
		c.state.Shown = text
	}
	c.mu.Unlock()

	if !show {
		return
	}

	c.Log.WithContext(ctx).WithFields(logrus.Fields{
		"message": text,
	}).Debug("Cycling to next message")

	if err := c.display.Show(ctx, text); err != nil {
		c.Log.WithContext(ctx).WithFields(logrus.Fields{
			"Error": err,
		}).Error("Unable to show message")
	}
}

// renderStatus computes every status line each tick and writes only the lines
// that changed since the previous tick to the display
func (c *Controller) renderStatus(ctx context.Context) {
	lines := []string{
		c.dataLine(),
		"Net: " + c.connectivity(),
	}
	for _, p := range c.providers {
		if r, ok := p.(app.StatusReporter); ok {
			lines = append(lines, r.Status())
		}
	}

	for idx, line := range lines {
		if idx < len(c.status) && c.status[idx] == line {
			continue
		}
		if err := c.display.Status(ctx, idx, line); err != nil {
			c.Log.WithContext(ctx).WithFields(logrus.Fields{
				"Error": err,
				"line":  idx,
			}).Debug("Unable to show status")
		}
	}

	c.mu.Lock()
	c.status = lines
	c.mu.Unlock()
}

func (c *Controller) dataLine() string {
	if c.state.LastSuccess.IsZero() {
		return "Data: none"
	}
	return "Data: " + c.state.LastSuccess.Local().Format("2006-01-02 15:04:05")
}

func (c *Controller) blank() string {
	return strings.Repeat(" ", c.settings.Width)
}

// Snapshot returns a copy of the loop state
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	s.Messages = append([]string(nil), c.state.Messages...)
	return s
}

// StatusLines returns a copy of the last status lines
func (c *Controller) StatusLines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.status...)
}

// Pad right pads or truncates text to width characters
func Pad(text string, width int) string {
	if width <= 0 {
		return text
	}
	n := utf8.RuneCountInString(text)
	if n == width {
		return text
	}
	if n < width {
		return text + strings.Repeat(" ", width-n)
	}
	runes := []rune(text)
	return string(runes[:width])
}
