package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/lightningnetwork/lnd/rc5/rc5cfg"
	"github.com/urfave/cli"
	"golang.org/x/term"
)

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[rc5cli] %v\n", err)
	os.Exit(1)
}

// session is the state a command runs with: the validated config, the key
// and a cleanup function for the log file.
type session struct {
	cfg     *rc5cfg.Config
	key     []byte
	cleanup func()
}

// overridesFromContext turns the global flags that were set explicitly into
// config overrides.
func overridesFromContext(ctx *cli.Context) rc5cfg.Overrides {
	var o rc5cfg.Overrides
	if ctx.GlobalIsSet("wordsize") {
		o.WordSize = fn.Some(ctx.GlobalInt("wordsize"))
	}
	if ctx.GlobalIsSet("rounds") {
		o.Rounds = fn.Some(ctx.GlobalInt("rounds"))
	}
	if ctx.GlobalIsSet("keylen") {
		o.KeyLen = fn.Some(ctx.GlobalInt("keylen"))
	}
	if ctx.GlobalIsSet("debuglevel") {
		o.DebugLevel = fn.Some(ctx.GlobalString("debuglevel"))
	}
	if ctx.GlobalIsSet("logdir") {
		o.LogDir = fn.Some(ctx.GlobalString("logdir"))
	}

	return o
}

// newSession loads the config, sets up logging and obtains the key, either
// from the --key flag or from the terminal.
func newSession(ctx *cli.Context) (*session, error) {
	cfg, err := rc5cfg.LoadConfig(
		ctx.GlobalString("configfile"), overridesFromContext(ctx),
	)
	if err != nil {
		return nil, err
	}

	cleanup, err := initLogging(cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize logging: %w", err)
	}

	var key []byte
	if ctx.GlobalIsSet("key") {
		key, err = parseHex(ctx.GlobalString("key"))
	} else {
		key, err = readKey("Input RC5 key (hex): ")
	}
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("unable to read key: %w", err)
	}

	return &session{
		cfg:     cfg,
		key:     key,
		cleanup: cleanup,
	}, nil
}

// readKey reads a hex encoded key from the terminal without echoing it.
func readKey(text string) ([]byte, error) {
	fmt.Print(text)

	// The variable syscall.Stdin is of a different type in the Windows API
	// that's why we need the explicit cast. And of course the linter
	// doesn't like it either.
	raw, err := term.ReadPassword(int(syscall.Stdin)) // nolint:unconvert
	fmt.Println()
	if err != nil {
		return nil, err
	}

	return parseHex(string(raw))
}

// parseHex decodes a hex string, ignoring surrounding white space, embedded
// spaces and an optional 0x prefix.
func parseHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	s = strings.ReplaceAll(s, " ", "")

	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex %q: %w", s, err)
	}

	return b, nil
}

func main() {
	app := cli.NewApp()
	app.Name = "rc5cli"
	app.Usage = "encrypt and decrypt single RC5 blocks"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name: "configfile",
			Usage: "The path to the config file, defaults to " +
				rc5cfg.DefaultConfigFile + ".",
			TakesFile: true,
		},
		cli.IntFlag{
			Name:  "wordsize, w",
			Value: rc5cfg.DefaultWordSize,
			Usage: "The RC5 word size in bytes: 2, 4 or 8.",
		},
		cli.IntFlag{
			Name:  "rounds, r",
			Value: rc5cfg.DefaultRounds,
			Usage: "The number of RC5 rounds, 0 to 255.",
		},
		cli.IntFlag{
			Name:  "keylen, b",
			Value: rc5cfg.KeyLenFromKey,
			Usage: "The expected key length in bytes, -1 to " +
				"accept the length of the given key.",
		},
		cli.StringFlag{
			Name: "key, k",
			Usage: "The hex encoded key. If not set, the key is " +
				"read from the terminal.",
		},
		cli.StringFlag{
			Name:  "debuglevel",
			Value: rc5cfg.DefaultDebugLevel,
			Usage: "The log level, optionally per subsystem.",
		},
		cli.StringFlag{
			Name:      "logdir",
			Value:     rc5cfg.DefaultLogDir,
			Usage:     "The directory of the log file.",
			TakesFile: true,
		},
	}
	app.Commands = []cli.Command{
		encryptCommand,
		decryptCommand,
		scheduleCommand,
	}

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}
