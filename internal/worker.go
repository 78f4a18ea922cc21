package internal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/francois-poidevin/flightboard/config"
	"github.com/francois-poidevin/flightboard/internal/app"
	"github.com/francois-poidevin/flightboard/internal/app/cycle"
	dbDisplay "github.com/francois-poidevin/flightboard/internal/app/displays/db"
	fileDisplay "github.com/francois-poidevin/flightboard/internal/app/displays/file"
	stdoutDisplay "github.com/francois-poidevin/flightboard/internal/app/displays/stdout"
	terminalDisplay "github.com/francois-poidevin/flightboard/internal/app/displays/terminal"
	"github.com/francois-poidevin/flightboard/internal/app/feeds/adsb"
	"github.com/francois-poidevin/flightboard/internal/app/feeds/route"
	"github.com/francois-poidevin/flightboard/internal/app/netstat"
	"github.com/francois-poidevin/flightboard/internal/app/providers/flight"
	"github.com/francois-poidevin/flightboard/internal/app/providers/pushed"
	"github.com/francois-poidevin/flightboard/internal/app/providers/timed"
	"github.com/francois-poidevin/flightboard/internal/app/tools"
	"github.com/sirupsen/logrus"
)

// ErrUnknownDisplay - Displaytype is none of STDOUT, FILE, DB, TERMINAL
var ErrUnknownDisplay = errors.New("wrong display specified")

// Board - a configured board ready to run
type Board struct {
	Log        *logrus.Logger
	Controller *cycle.Controller
	// Pushed receives the messages posted to the HTTP API
	Pushed *pushed.Provider

	display app.Display
	params  interface{}
	tick    time.Duration
}

// NewBoard wires the providers, the display and the controller from conf
func NewBoard(ctx context.Context,
	log *logrus.Logger,
	conf config.Configuration) (*Board, error) {

	fb := conf.Flightboard

	location, err := tools.GetLocation(fb.Location)
	if err != nil {
		log.WithContext(ctx).WithFields(logrus.Fields{
			"Error": err,
		}).Error("Unable to interpret parameter location")
		return nil, err
	}

	schedule, err := timed.NewSchedule(fb.Schedule)
	if err != nil {
		log.WithContext(ctx).WithFields(logrus.Fields{
			"Error": err,
		}).Error("Unable to interpret parameter schedule")
		return nil, err
	}

	display, params, err := newDisplay(log, fb.Displaytype, conf)
	if err != nil {
		return nil, err
	}

	push := pushed.New(log, fb.Push, nil)
	flights := flight.New(log,
		adsb.New(log, fb.Adsb),
		route.New(log, fb.Route),
		flight.NewFilter(location, fb.Flight))

	settings := cycle.Settings{
		RequestInterval: time.Duration(fb.Request) * time.Second,
		CycleInterval:   time.Duration(fb.Cycle) * time.Second,
		StaleTimeout:    time.Duration(fb.Stale) * time.Second,
		Width:           fb.Width,
	}

	tick := time.Duration(fb.Tick) * time.Second
	if tick <= 0 {
		tick = time.Second
	}

	return &Board{
		Log:        log,
		Controller: cycle.New(log, settings, display, netstat.Status, nil, push, timed.New(log, schedule, nil), flights),
		Pushed:     push,
		display:    display,
		params:     params,
		tick:       tick,
	}, nil
}

func newDisplay(log *logrus.Logger, displayType string, conf config.Configuration) (app.Display, interface{}, error) {
	switch displayType {
	case "STDOUT":
		log.Info("Initiate stdOut Display")
		return stdoutDisplay.New(log, nil), nil, nil
	case "FILE":
		log.Info("Initiate File Display")
		return fileDisplay.New(log), conf.Flightboard.File, nil
	case "DB":
		log.Info("Initiate DB Display")
		return dbDisplay.New(log), conf.Flightboard.DB, nil
	case "TERMINAL":
		log.Info("Initiate Terminal Display")
		return terminalDisplay.New(log), nil, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownDisplay, displayType)
	}
}

// Run ticks the controller until ctx is done
func (b *Board) Run(ctx context.Context) error {
	if err := b.display.Init(ctx, b.params); err != nil {
		b.Log.WithContext(ctx).WithFields(logrus.Fields{
			"Error": err,
		}).Error("Unable to init display")
		return err
	}
	defer func() {
		if err := b.display.Close(); err != nil {
			b.Log.WithContext(ctx).WithFields(logrus.Fields{
				"Error": err,
			}).Warn("Unable to close display")
		}
	}()

	ticker := time.NewTicker(b.tick)
	defer ticker.Stop()

	b.Controller.Tick(ctx)
	for {
		select {
		case <-ctx.Done():
			b.Log.WithContext(ctx).Info("Board stopped")
			return nil
		case <-ticker.C:
			b.Controller.Tick(ctx)
		}
	}
}

//Execute - start the worker, until a signal is received or ctx is done
func Execute(ctx context.Context,
	log *logrus.Logger,
	conf config.Configuration) error {

	log.WithContext(ctx).WithFields(logrus.Fields{
		"location":    conf.Flightboard.Location,
		"tick":        conf.Flightboard.Tick,
		"request":     conf.Flightboard.Request,
		"cycle":       conf.Flightboard.Cycle,
		"stale":       conf.Flightboard.Stale,
		"width":       conf.Flightboard.Width,
		"displayType": conf.Flightboard.Displaytype,
		"feed":        conf.Flightboard.Adsb.URL,
		"routes":      conf.Flightboard.Route.URL,
		"windows":     len(conf.Flightboard.Schedule),
	}).Info("START with Configuration params: ")

	board, err := NewBoard(ctx, log, conf)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go sigCatch(ctx, cancel, log)

	return board.Run(ctx)
}

func sigCatch(ctx context.Context, cancel context.CancelFunc, log *logrus.Logger) {
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT)
	defer signal.Stop(sigc)

	select {
	case s := <-sigc:
		log.WithContext(ctx).Info("Signal: " + s.String())
		cancel()
	case <-ctx.Done():
	}
}
