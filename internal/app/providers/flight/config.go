package flight

// Configuration settings for the nearby aircraft selection
type Configuration struct {
	MaxDistanceKm    float64 `toml:"maxDistanceKm" default:"2.5" comment:"aircraft further than this are ignored (km)"`
	MaxAltitudeFt    float64 `toml:"maxAltitudeFt" default:"7000" comment:"aircraft higher than this are ignored (ft)"`
	LowAltitudeFt    float64 `toml:"lowAltitudeFt" default:"1000" comment:"below this altitude the tighter radius applies (ft), 0 to disable"`
	LowMaxDistanceKm float64 `toml:"lowMaxDistanceKm" default:"1" comment:"radius for low flying aircraft (km)"`
}
