package commands

import (
	"github.com/spf13/cobra"
)

var (
	_config = NewDefaultCLIConfig()
)

//RootCmd is the root command for the handshake tool
var RootCmd = &cobra.Command{
	Use:              "handshake",
	Short:            "cluster node handshake probe",
	TraverseChildren: true,
}
