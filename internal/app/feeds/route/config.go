package route

// Configuration settings for the callsign route lookup service
type Configuration struct {
	URL               string `toml:"url" default:"https://api.adsbdb.com/v0" comment:"route service base url, callsign is appended as /callsign/<CALLSIGN>"`
	Timeout           int    `toml:"timeout" default:"10" comment:"request timeout (sec)"`
	CacheSize         int    `toml:"cacheSize" default:"128" comment:"number of callsigns kept in the lookup cache"`
	CacheTTL          int    `toml:"cacheTTL" default:"60" comment:"lookup cache entry lifetime (min)"`
	RequestsPerMinute int    `toml:"requestsPerMinute" default:"30" comment:"max route requests per minute, 0 for unlimited"`
}
