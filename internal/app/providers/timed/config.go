package timed

// WindowConfiguration - one scheduled announcement
type WindowConfiguration struct {
	Start    string   `toml:"start" comment:"window start, RFC 3339 (2026-01-23T05:00:00+11:00)"`
	Duration int      `toml:"duration" comment:"window length (sec)"`
	Messages []string `toml:"messages" comment:"messages cycled while the window is active"`
}
