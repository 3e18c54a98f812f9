// Package config defines the configuration for a handshake run.
//
// Regardless of how the tool is started, it uses the Config object defined
// in this package to store and forward configuration options. On top of the
// command-line flags, an optional configuration file is read from the data
// directory:
//
//  handshake.toml // (optional) values for any of the flags, in TOML form.
//
// No other state is read from or written to disk.
package config
