package timed

import (
	"context"
	"slices"
	"time"

	"github.com/francois-poidevin/flightboard/internal/app"
	"github.com/sirupsen/logrus"
)

// Provider shows scheduled announcements while their window is active
type Provider struct {
	Log      *logrus.Logger
	schedule Schedule
	now      func() time.Time
	current  []string
}

func New(log *logrus.Logger, schedule Schedule, now func() time.Time) *Provider {
	if now == nil {
		now = time.Now
	}
	return &Provider{
		Log:      log,
		schedule: schedule,
		now:      now,
	}
}

func (p *Provider) Fetch(ctx context.Context) app.FetchResult {
	now := p.now()

	if w, ok := p.schedule.Active(now); ok {
		if slices.Equal(p.current, w.Messages) {
			return app.NoChange
		}
		p.Log.WithContext(ctx).WithFields(logrus.Fields{
			"start":    w.Start,
			"end":      w.End(),
			"messages": w.Messages,
		}).Info("Scheduled messages active")
		p.current = append([]string(nil), w.Messages...)
		return app.Update
	}

	if len(p.current) > 0 {
		p.Log.WithContext(ctx).Info("Scheduled messages over")
		p.current = nil
		return app.Update
	}
	return app.NoChange
}

func (p *Provider) Messages() []string {
	return append([]string(nil), p.current...)
}
