package rc5

import "errors"

var (
	// ErrInvalidKeyLength is returned when the stored key does not have
	// the configured length, or cannot be split into whole words.
	ErrInvalidKeyLength = errors.New("invalid key length")

	// ErrInvalidBlockLength is returned when an input block is not
	// exactly two words long.
	ErrInvalidBlockLength = errors.New("invalid block length")

	// ErrInvalidWordSize is returned when a word size other than 2, 4 or
	// 8 bytes is requested.
	ErrInvalidWordSize = errors.New("invalid word size")

	// ErrInvalidRounds is returned when the round count is outside
	// [0, MaxRounds].
	ErrInvalidRounds = errors.New("invalid number of rounds")
)
