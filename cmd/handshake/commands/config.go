package commands

import (
	"github.com/mosaicnetworks/handshake/src/config"
)

//CLIConfig contains configuration for the connect commands
type CLIConfig struct {
	Handshake config.Config `mapstructure:",squash"`
}

//NewDefaultCLIConfig creates a CLIConfig with default values
func NewDefaultCLIConfig() *CLIConfig {
	return &CLIConfig{
		Handshake: *config.NewDefaultConfig(),
	}
}
