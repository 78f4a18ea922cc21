package config

import (
	"github.com/francois-poidevin/flightboard/internal/app/displays/db"
	"github.com/francois-poidevin/flightboard/internal/app/displays/file"
	"github.com/francois-poidevin/flightboard/internal/app/feeds/adsb"
	"github.com/francois-poidevin/flightboard/internal/app/feeds/route"
	"github.com/francois-poidevin/flightboard/internal/app/providers/flight"
	"github.com/francois-poidevin/flightboard/internal/app/providers/pushed"
	"github.com/francois-poidevin/flightboard/internal/app/providers/timed"
)

// Configuration contains conectivity settings
type Configuration struct {
	Log struct {
		Level      string `toml:"level" default:"info" comment:"Log level: trace, debug, info, warn, error, fatal and panic"`
		Format     string `toml:"format" default:"text" comment:"Log format: text or json"`
		File       string `toml:"file" default:"" comment:"Log file, rotated when set, stdout otherwise"`
		MaxSize    int    `toml:"maxSize" default:"10" comment:"max size of a log file before rotation (MB)"`
		MaxBackups int    `toml:"maxBackups" default:"3" comment:"number of rotated log files kept"`
		MaxAge     int    `toml:"maxAge" default:"28" comment:"days a rotated log file is kept"`
		Compress   bool   `toml:"compress" default:"false" comment:"gzip rotated log files"`
	} `toml:"Log" comment:"###############################\n Logs Settings \n##############################"`

	Flightboard struct {
		Location    string                      `toml:"location" default:"-33.9429,151.2562" comment:"board location 'lat,lon'"`
		Tick        int                         `toml:"tick" default:"1" comment:"control loop period (sec)"`
		Request     int                         `toml:"request" default:"5" comment:"minimum time between two provider fetches (sec)"`
		Cycle       int                         `toml:"cycle" default:"30" comment:"time a message stays on the board (sec)"`
		Stale       int                         `toml:"stale" default:"30" comment:"the board is blanked when no fetch succeeded for this long (sec)"`
		Width       int                         `toml:"width" default:"12" comment:"number of characters of the board"`
		Displaytype string                      `toml:"displaytype" default:"STDOUT" comment:"the display type used (STDOUT|FILE|DB|TERMINAL)"`
		Flight      flight.Configuration        `toml:"flight" comment:"###############################\n nearby aircraft selection \n##############################"`
		Adsb        adsb.Configuration          `toml:"adsb" comment:"###############################\n ADS-B feed \n##############################"`
		Route       route.Configuration         `toml:"route" comment:"###############################\n route lookup service \n##############################"`
		Push        pushed.Configuration        `toml:"push" comment:"###############################\n pushed messages \n##############################"`
		HTTP        HTTPConfiguration           `toml:"http" comment:"###############################\n startHttp API \n##############################"`
		File        file.Configuration          `toml:"file" comment:"###############################\n file display configuration \n##############################"`
		DB          db.Configuration            `toml:"db" comment:"###############################\n db display configuration \n##############################"`
		Schedule    []timed.WindowConfiguration `toml:"schedule" comment:"scheduled announcements, they take priority over flights"`
	} `toml:"Flightboard" comment:"###############################\n Flightboard Settings \n##############################"`
}

// HTTPConfiguration settings for the REST API
type HTTPConfiguration struct {
	Listen string `toml:"listen" default:":8080" comment:"listen address"`
}
