package cli

// Options collects the persistent flags shared by every command.
type Options struct {
	ConfigPath string
	Paths      []string
	Suffixes   []string
	LogLevel   string
	Watch      bool
}
