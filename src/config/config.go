package config

import (
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/mosaicnetworks/handshake/src/common"
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

// Default configuration values.
const (
	DefaultLogLevel = "info"
	DefaultTimeout  = 5000 * time.Millisecond
)

// Config contains all the configuration properties of a handshake run.
type Config struct {
	// DataDir is the directory searched for an optional handshake.toml
	// configuration file.
	DataDir string `mapstructure:"datadir"`

	// LogLevel determines the chattiness of the log output.
	LogLevel string `mapstructure:"log"`

	// LogFile, when set, duplicates log output to a file.
	LogFile string `mapstructure:"log-file"`

	// Address is the ip:port of the remote node to handshake with. It is
	// taken as given; no DNS resolution or endpoint discovery is performed.
	Address string `mapstructure:"address"`

	// Secure selects the encrypted transport variant: https instead of
	// http, wss instead of ws. There is no negotiation or fallback; it is
	// the caller's responsibility to know what the remote endpoint speaks.
	Secure bool `mapstructure:"secure"`

	// SkipVerify controls whether TLS verifies the server's certificate
	// chain and host name. In this mode, TLS is susceptible to
	// man-in-the-middle attacks. This should be used only for testing.
	SkipVerify bool `mapstructure:"skip-verify"`

	// Timeout bounds both the connection attempt and the handshake
	// exchange. Each phase gets the full duration.
	Timeout time.Duration `mapstructure:"timeout"`

	logger *logrus.Logger
}

// NewDefaultConfig returns a config object with default values.
func NewDefaultConfig() *Config {
	return &Config{
		DataDir:  DefaultDataDir(),
		LogLevel: DefaultLogLevel,
		Timeout:  DefaultTimeout,
	}
}

// NewTestConfig returns a config object with default values and a special
// logger for debugging tests.
func NewTestConfig(t testing.TB, level logrus.Level) *Config {
	config := NewDefaultConfig()
	config.logger = common.NewTestLogger(t, level)
	return config
}

// Logger returns a formatted logrus Entry, with prefix set to "handshake".
// When LogFile is set, output is duplicated to that file through an lfshook.
func (c *Config) Logger() *logrus.Entry {
	if c.logger == nil {
		c.logger = logrus.New()
		c.logger.Level = LogLevel(c.LogLevel)
		c.logger.Formatter = new(prefixed.TextFormatter)

		if c.LogFile != "" {
			pathMap := lfshook.PathMap{}
			for _, level := range logrus.AllLevels {
				pathMap[level] = c.LogFile
			}
			c.logger.Hooks.Add(lfshook.NewHook(pathMap, &logrus.TextFormatter{}))
		}
	}
	return c.logger.WithField("prefix", "handshake")
}

// DefaultDataDir returns the default directory name for top-level handshake
// config based on the underlying OS, attempting to respect conventions.
func DefaultDataDir() string {
	// Try to place the data folder in the user's home dir
	home := HomeDir()
	if home != "" {
		if runtime.GOOS == "darwin" {
			return filepath.Join(home, ".Handshake")
		} else if runtime.GOOS == "windows" {
			return filepath.Join(home, "AppData", "Roaming", "Handshake")
		} else {
			return filepath.Join(home, ".handshake")
		}
	}
	// As we cannot guess a stable location, return empty and handle later
	return ""
}

// HomeDir returns the user's home directory.
func HomeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

// LogLevel parses a string into a Logrus log level.
func LogLevel(l string) logrus.Level {
	switch l {
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "panic":
		return logrus.PanicLevel
	default:
		return logrus.InfoLevel
	}
}
