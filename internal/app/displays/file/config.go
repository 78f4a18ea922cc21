package file

// Configuration settings for the file display
type Configuration struct {
	Output string `toml:"output" default:"log/board.log" comment:"output file name, board and status lines are appended"`
}
