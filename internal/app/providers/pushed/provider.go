// Package pushed holds messages an operator pushes to the board over the HTTP API.
// They take priority over every other provider until they expire or are cleared.
package pushed

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/francois-poidevin/flightboard/internal/app"
	"github.com/sirupsen/logrus"
)

// ErrEmpty - a push must carry at least one message
var ErrEmpty = errors.New("no message to push")

// Configuration settings for pushed messages
type Configuration struct {
	TTL int `toml:"ttl" default:"300" comment:"default lifetime of a pushed message set (sec), 0 keeps it until cleared"`
}

type Provider struct {
	Log        *logrus.Logger
	defaultTTL time.Duration
	now        func() time.Time

	mu       sync.Mutex
	messages []string
	expires  time.Time
	changed  bool
}

func New(log *logrus.Logger, conf Configuration, now func() time.Time) *Provider {
	if now == nil {
		now = time.Now
	}
	return &Provider{
		Log:        log,
		defaultTTL: time.Duration(conf.TTL) * time.Second,
		now:        now,
	}
}

// Push replaces the pushed messages. ttl <= 0 uses the configured default.
func (p *Provider) Push(messages []string, ttl time.Duration) error {
	if len(messages) == 0 {
		return ErrEmpty
	}
	if ttl <= 0 {
		ttl = p.defaultTTL
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.messages = append([]string(nil), messages...)
	p.expires = time.Time{}
	if ttl > 0 {
		p.expires = p.now().Add(ttl)
	}
	p.changed = true

	p.Log.WithFields(logrus.Fields{
		"messages": messages,
		"ttl":      ttl,
	}).Info("Messages pushed")
	return nil
}

// Clear drops the pushed messages
func (p *Provider) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.messages) == 0 {
		return
	}
	p.messages = nil
	p.expires = time.Time{}
	p.changed = true
}

func (p *Provider) Fetch(ctx context.Context) app.FetchResult {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.messages) > 0 && !p.expires.IsZero() && !p.now().Before(p.expires) {
		p.Log.WithContext(ctx).Info("Pushed messages expired")
		p.messages = nil
		p.expires = time.Time{}
		p.changed = true
	}

	if p.changed {
		p.changed = false
		return app.Update
	}
	return app.NoChange
}

func (p *Provider) Messages() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.messages...)
}

// Expires returns when the pushed messages expire, zero when they do not
func (p *Provider) Expires() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.expires
}
