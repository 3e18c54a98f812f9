package main

import (
	"os"

	cmd "github.com/mosaicnetworks/handshake/cmd/handshake/commands"
)

func main() {
	rootCmd := cmd.RootCmd

	rootCmd.AddCommand(
		cmd.VersionCmd,
		cmd.NewConnectRPCCmd(),
		cmd.NewConnectWSCmd())

	//Do not print usage when error occurs
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
