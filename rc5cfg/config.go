package rc5cfg

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/jessevdk/go-flags"
	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/lightningnetwork/lnd/rc5"
	"github.com/lightningnetwork/lnd/rc5/build"
)

const (
	// DefaultConfigFilename is the default configuration file name the
	// CLI tries to load.
	DefaultConfigFilename = "rc5cli.conf"

	// DefaultLogDirname is the default log directory name.
	DefaultLogDirname = "logs"

	// DefaultLogFilename is the default log file name.
	DefaultLogFilename = "rc5cli.log"

	// DefaultWordSize is RC5-32, the nominal choice for the cipher.
	DefaultWordSize = 4

	// DefaultRounds is the nominal round count for RC5-32.
	DefaultRounds = 12

	// DefaultDebugLevel is the default log level for all subsystems.
	DefaultDebugLevel = "info"

	// KeyLenFromKey is the KeyLen value that makes the expected key
	// length follow the length of the supplied key.
	KeyLenFromKey = -1
)

var (
	// DefaultAppDir is the default directory holding the config file and
	// logs.
	DefaultAppDir = btcutil.AppDataDir("rc5cli", false)

	// DefaultConfigFile is the default full path of the config file.
	DefaultConfigFile = filepath.Join(DefaultAppDir, DefaultConfigFilename)

	// DefaultLogDir is the default full path of the log directory.
	DefaultLogDir = filepath.Join(DefaultAppDir, DefaultLogDirname)
)

// Config holds the cipher parameters and logging options of the CLI.
//
//nolint:lll
type Config struct {
	WordSize int `long:"wordsize" description:"RC5 word size in bytes (2, 4 or 8)"`
	Rounds   int `long:"rounds" description:"Number of RC5 rounds (0-255)"`
	KeyLen   int `long:"keylen" description:"Expected key length in bytes; -1 uses the length of the supplied key"`

	DebugLevel string `long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems"`

	LogDir         string `long:"logdir" description:"Directory to log output"`
	NoFileLog      bool   `long:"nofilelog" description:"Disable logging to a file"`
	MaxLogFiles    int    `long:"maxlogfiles" description:"Maximum logfiles to keep (0 for no rotation)"`
	MaxLogFileSize int    `long:"maxlogfilesize" description:"Maximum logfile size in MB"`
	LogCompressor  string `long:"logcompressor" description:"Compression algorithm to use when rotating logs" choice:"gzip" choice:"zstd"`
}

// Overrides carries values set explicitly on the command line. Each one
// that is set replaces the corresponding value loaded from the config file.
type Overrides struct {
	WordSize   fn.Option[int]
	Rounds     fn.Option[int]
	KeyLen     fn.Option[int]
	DebugLevel fn.Option[string]
	LogDir     fn.Option[string]
}

// DefaultConfig returns all default values for the Config struct.
func DefaultConfig() Config {
	return Config{
		WordSize:       DefaultWordSize,
		Rounds:         DefaultRounds,
		KeyLen:         KeyLenFromKey,
		DebugLevel:     DefaultDebugLevel,
		LogDir:         DefaultLogDir,
		MaxLogFiles:    build.DefaultMaxLogFiles,
		MaxLogFileSize: build.DefaultMaxLogFileSize,
		LogCompressor:  build.Gzip,
	}
}

// LoadConfig starts from the default config, overwrites it with the options
// found in the ini file at configFile, applies the command line overrides and
// validates the result.
//
// An empty configFile means DefaultConfigFile. A missing default config file
// is not an error, but a missing file that was asked for explicitly is.
func LoadConfig(configFile string, overrides Overrides) (*Config, error) {
	explicit := configFile != ""
	if !explicit {
		configFile = DefaultConfigFile
	}
	configFile = CleanAndExpandPath(configFile)

	cfg := DefaultConfig()
	if err := flags.IniParse(configFile, &cfg); err != nil {
		// A parse error always fails, otherwise we can proceed as
		// possibly the default config file doesn't exist which is OK.
		var iniErr *flags.IniError
		if errors.As(err, &iniErr) || explicit ||
			!errors.Is(err, os.ErrNotExist) {

			return nil, fmt.Errorf("unable to load config file "+
				"%v: %w", configFile, err)
		}
	}

	cfg.Apply(overrides)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Apply replaces the config values for every override that is set.
func (c *Config) Apply(o Overrides) {
	o.WordSize.WhenSome(func(v int) { c.WordSize = v })
	o.Rounds.WhenSome(func(v int) { c.Rounds = v })
	o.KeyLen.WhenSome(func(v int) { c.KeyLen = v })
	o.DebugLevel.WhenSome(func(v string) { c.DebugLevel = v })
	o.LogDir.WhenSome(func(v string) { c.LogDir = v })
}

// Validate checks that the config values are usable and normalizes the log
// directory path.
func (c *Config) Validate() error {
	switch c.WordSize {
	case 2, 4, 8:
	default:
		return fmt.Errorf("%w: %d bytes, must be 2, 4 or 8",
			rc5.ErrInvalidWordSize, c.WordSize)
	}

	if c.Rounds < 0 || c.Rounds > rc5.MaxRounds {
		return fmt.Errorf("%w: %d not in [0, %d]", rc5.ErrInvalidRounds,
			c.Rounds, rc5.MaxRounds)
	}

	if c.KeyLen < KeyLenFromKey || c.KeyLen > rc5.MaxKeyLen {
		return fmt.Errorf("%w: %d not in [%d, %d]",
			rc5.ErrInvalidKeyLength, c.KeyLen, KeyLenFromKey,
			rc5.MaxKeyLen)
	}

	if !build.SupportedLogCompressor(c.LogCompressor) {
		return fmt.Errorf("invalid log compressor: %v",
			c.LogCompressor)
	}

	if c.MaxLogFiles < 0 || c.MaxLogFileSize <= 0 {
		return fmt.Errorf("invalid log file limits: maxlogfiles=%d, "+
			"maxlogfilesize=%d", c.MaxLogFiles, c.MaxLogFileSize)
	}

	c.LogDir = CleanAndExpandPath(c.LogDir)

	return nil
}

// ExpectedKeyLen returns the key length an engine should be created with for
// the given key.
func (c *Config) ExpectedKeyLen(key []byte) int {
	if c.KeyLen == KeyLenFromKey {
		return len(key)
	}

	return c.KeyLen
}

// LogFile returns the full path of the log file.
func (c *Config) LogFile() string {
	return filepath.Join(c.LogDir, DefaultLogFilename)
}

// RotatorConfig returns the log rotation options.
func (c *Config) RotatorConfig() *build.RotatorConfig {
	return &build.RotatorConfig{
		Compressor:     c.LogCompressor,
		MaxLogFiles:    c.MaxLogFiles,
		MaxLogFileSize: c.MaxLogFileSize,
	}
}

// CleanAndExpandPath expands environment variables and leading ~ in the
// passed path, cleans the result, and returns it.
// This function is taken from https://github.com/btcsuite/btcd
func CleanAndExpandPath(path string) string {
	if path == "" {
		return ""
	}

	// Expand initial ~ to OS specific home directory.
	if strings.HasPrefix(path, "~") {
		var homeDir string
		u, err := user.Current()
		if err == nil {
			homeDir = u.HomeDir
		} else {
			homeDir = os.Getenv("HOME")
		}

		path = strings.Replace(path, "~", homeDir, 1)
	}

	// NOTE: The os.ExpandEnv doesn't work with Windows-style %VARIABLE%,
	// but the variables can still be expanded via POSIX-style $VARIABLE.
	return filepath.Clean(os.ExpandEnv(path))
}
