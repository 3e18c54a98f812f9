package commands

import (
	"os"

	"github.com/mosaicnetworks/handshake/src/handshake"
	bnet "github.com/mosaicnetworks/handshake/src/net"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

//NewConnectRPCCmd returns the command that performs a JSON-RPC handshake
//over HTTP(S)
func NewConnectRPCCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "connect-rpc",
		Short:   "Handshake with a node over HTTP(S) JSON-RPC",
		Aliases: []string{"crp"},
		PreRunE: loadConfig,
		RunE:    connectRPC,
	}
	AddConnectFlags(cmd)
	return cmd
}

//NewConnectWSCmd returns the command that performs a pubsub handshake over
//WS(S), including ephemeral identity generation
func NewConnectWSCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "connect-rpc-with-websocket",
		Short:   "Handshake with a node over WS(S) pubsub",
		Aliases: []string{"cws"},
		PreRunE: loadConfig,
		RunE:    connectWS,
	}
	AddConnectFlags(cmd)
	return cmd
}

func connectRPC(cmd *cobra.Command, args []string) error {
	logger := _config.Handshake.Logger()

	trans := bnet.NewRPCTransport(
		_config.Handshake.Timeout,
		_config.Handshake.SkipVerify,
		logger,
	)

	engine := handshake.NewEngine(trans, false, logger)

	logger.Infof("Connecting to %s", _config.Handshake.Address)

	outcome := engine.Run(_config.Handshake.Address, _config.Handshake.Secure)

	return report(outcome, logger)
}

func connectWS(cmd *cobra.Command, args []string) error {
	logger := _config.Handshake.Logger()

	trans := bnet.NewWSTransport(
		_config.Handshake.Timeout,
		_config.Handshake.SkipVerify,
		logger,
	)

	engine := handshake.NewEngine(trans, true, logger)

	logger.Infof("Connecting to %s", _config.Handshake.Address)

	outcome := engine.Run(_config.Handshake.Address, _config.Handshake.Secure)

	return report(outcome, logger)
}

// report logs the terminal outcome and exits with the code mapped from its
// error kind.
func report(outcome *handshake.Outcome, logger *logrus.Entry) error {
	if outcome.Succeeded {
		logger.WithField("latency", outcome.Latency).
			Infof("Handshake response was %s", outcome.Detail)
		return nil
	}

	logger.WithFields(logrus.Fields{
		"kind":    outcome.Kind,
		"latency": outcome.Latency,
	}).Error(outcome.Detail)

	os.Exit(outcome.Kind.ExitCode())

	return nil
}

/*******************************************************************************
* CONFIG
*******************************************************************************/

//AddConnectFlags adds flags shared by the connect commands
func AddConnectFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("address", "a", _config.Handshake.Address, "ip:port of the remote node, without scheme")
	cmd.Flags().BoolP("secure", "s", _config.Handshake.Secure, "Use the encrypted variant (https/wss)")
	cmd.Flags().DurationP("timeout", "t", _config.Handshake.Timeout, "Connect and handshake timeout")
	cmd.Flags().Bool("skip-verify", _config.Handshake.SkipVerify, "Do not verify the server TLS certificate (testing only)")
	cmd.Flags().String("datadir", _config.Handshake.DataDir, "Top-level directory for configuration")
	cmd.Flags().String("log", _config.Handshake.LogLevel, "debug, info, warn, error, fatal, panic")
	cmd.Flags().String("log-file", _config.Handshake.LogFile, "Also write logs to this file")
}

func loadConfig(cmd *cobra.Command, args []string) error {

	err := bindFlagsLoadViper(cmd)
	if err != nil {
		return err
	}

	_config, err = parseConfig()
	if err != nil {
		return err
	}

	_config.Handshake.Logger().WithFields(logrus.Fields{
		"handshake.DataDir":    _config.Handshake.DataDir,
		"handshake.Address":    _config.Handshake.Address,
		"handshake.Secure":     _config.Handshake.Secure,
		"handshake.SkipVerify": _config.Handshake.SkipVerify,
		"handshake.Timeout":    _config.Handshake.Timeout,
		"handshake.LogLevel":   _config.Handshake.LogLevel,
	}).Debug("CONNECT")

	return nil
}

//Bind all flags and read the config into viper
func bindFlagsLoadViper(cmd *cobra.Command) error {
	// cmd.Flags() includes flags from this command and all persistent flags
	// from the parent
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	viper.SetConfigName("handshake")               // name of config file (without extension)
	viper.AddConfigPath(_config.Handshake.DataDir) // search root directory

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		_config.Handshake.Logger().Debugf("Using config file: %s", viper.ConfigFileUsed())
	} else if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		_config.Handshake.Logger().Debugf("No config file found in: %s", _config.Handshake.DataDir)
	} else {
		return err
	}

	return nil
}

//Retrieve the default environment configuration.
func parseConfig() (*CLIConfig, error) {
	conf := NewDefaultCLIConfig()
	err := viper.Unmarshal(conf)
	if err != nil {
		return nil, err
	}
	return conf, err
}
