package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/lightningnetwork/lnd/rc5"
	"github.com/lightningnetwork/lnd/rc5/rc5cfg"
	"github.com/urfave/cli"
)

var encryptCommand = cli.Command{
	Name:      "encrypt",
	Category:  "Blocks",
	Usage:     "Encrypt a single block.",
	ArgsUsage: "block",
	Description: `
	Encrypt one hex encoded block of exactly two words and print the
	ciphertext as hex. No padding or chaining is applied.`,
	Action: func(ctx *cli.Context) error {
		return runBlockCommand(ctx, rc5.BlockCipher.EncryptBlock)
	},
}

var decryptCommand = cli.Command{
	Name:      "decrypt",
	Category:  "Blocks",
	Usage:     "Decrypt a single block.",
	ArgsUsage: "block",
	Description: `
	Decrypt one hex encoded block of exactly two words and print the
	plaintext as hex.`,
	Action: func(ctx *cli.Context) error {
		return runBlockCommand(ctx, rc5.BlockCipher.DecryptBlock)
	},
}

var scheduleCommand = cli.Command{
	Name:     "schedule",
	Category: "Keys",
	Usage:    "Print the expanded key table.",
	Description: `
	Print the RC5 key schedule derived from the key, one word per line
	in hex.`,
	Action: func(ctx *cli.Context) error {
		s, err := newSession(ctx)
		if err != nil {
			return err
		}
		defer s.cleanup()

		words, err := scheduleHex(s.cfg, s.key)
		if err != nil {
			return err
		}

		fmt.Println(strings.Join(words, "\n"))

		return nil
	},
}

// blockOp is either BlockCipher.EncryptBlock or BlockCipher.DecryptBlock.
type blockOp func(rc5.BlockCipher, []byte) ([]byte, error)

// runBlockCommand parses the block argument, applies op and prints the
// result.
func runBlockCommand(ctx *cli.Context, op blockOp) error {
	if ctx.NArg() != 1 {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}

	in, err := parseHex(ctx.Args().First())
	if err != nil {
		return err
	}

	s, err := newSession(ctx)
	if err != nil {
		return err
	}
	defer s.cleanup()

	out, err := processBlock(s.cfg, s.key, in, op)
	if err != nil {
		return err
	}

	fmt.Println(hex.EncodeToString(out))

	return nil
}

// processBlock creates an engine from the config and key and runs op over
// one block.
func processBlock(cfg *rc5cfg.Config, key, in []byte,
	op blockOp) ([]byte, error) {

	engine, err := rc5.New(
		key, cfg.WordSize, cfg.Rounds, cfg.ExpectedKeyLen(key),
	)
	if err != nil {
		return nil, err
	}

	cliLog.Debugf("Processing %d byte block with RC5-%d/%d/%d",
		len(in), cfg.WordSize*8, cfg.Rounds, cfg.ExpectedKeyLen(key))

	return op(engine, in)
}

// scheduleHex returns the key schedule words as fixed width hex strings.
func scheduleHex(cfg *rc5cfg.Config, key []byte) ([]string, error) {
	keyLen := cfg.ExpectedKeyLen(key)

	switch cfg.WordSize {
	case 2:
		return formatSchedule[uint16](key, cfg.Rounds, keyLen)

	case 4:
		return formatSchedule[uint32](key, cfg.Rounds, keyLen)

	case 8:
		return formatSchedule[uint64](key, cfg.Rounds, keyLen)

	default:
		return nil, fmt.Errorf("%w: %d bytes, must be 2, 4 or 8",
			rc5.ErrInvalidWordSize, cfg.WordSize)
	}
}

func formatSchedule[W rc5.Word](key []byte, rounds,
	keyLen int) ([]string, error) {

	engine, err := rc5.NewEngine[W](key, rounds, keyLen)
	if err != nil {
		return nil, err
	}

	schedule, err := engine.KeySchedule()
	if err != nil {
		return nil, err
	}

	width := engine.BlockSize()
	words := make([]string, 0, len(schedule))
	for _, w := range schedule {
		words = append(words, fmt.Sprintf("%0*x", width, w))
	}

	return words, nil
}
