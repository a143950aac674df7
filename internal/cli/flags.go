package cli

import "github.com/idilsaglam/tada/internal/config"

// Flags holds the global flags. Config is loaded in the Before hook and
// available to all commands.
type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	Theme      string
	NoColor    bool
	ForceColor bool

	Config *config.Config
}
