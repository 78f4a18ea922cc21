package adsb

// Configuration settings for the local ADS-B feed
type Configuration struct {
	URL     string `toml:"url" default:"http://raspberrypi:8080/data/aircraft.json" comment:"dump1090/readsb aircraft.json endpoint"`
	Timeout int    `toml:"timeout" default:"10" comment:"request timeout (sec)"`
}
