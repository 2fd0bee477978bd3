// Package rc5 implements the RC5 block cipher for 16, 32 and 64 bit words
// with a configurable number of rounds and key length. Only single blocks are
// processed; modes of operation and padding are left to the caller, who can
// wrap an engine as a crypto/cipher.Block with NewBlock.
package rc5

import (
	"fmt"
)

// BlockCipher is an RC5 engine whose word size is chosen at runtime.
type BlockCipher interface {
	// BlockSize returns the size of a block in bytes.
	BlockSize() int

	// EncryptBlock encrypts exactly one block.
	EncryptBlock(src []byte) ([]byte, error)

	// DecryptBlock decrypts exactly one block.
	DecryptBlock(src []byte) ([]byte, error)
}

// New returns an RC5 engine for the given word size in bytes (2, 4 or 8),
// round count and expected key length in bytes.
func New(key []byte, wordBytes, rounds, keyLen int) (BlockCipher, error) {
	switch wordBytes {
	case 2:
		return newBlockCipher[uint16](key, rounds, keyLen)

	case 4:
		return newBlockCipher[uint32](key, rounds, keyLen)

	case 8:
		return newBlockCipher[uint64](key, rounds, keyLen)

	default:
		return nil, fmt.Errorf("%w: %d bytes, must be 2, 4 or 8",
			ErrInvalidWordSize, wordBytes)
	}
}

// newBlockCipher creates an Engine[W] and returns it as a BlockCipher, making
// sure a failed construction yields a nil interface.
func newBlockCipher[W Word](key []byte, rounds, keyLen int) (BlockCipher,
	error) {

	e, err := NewEngine[W](key, rounds, keyLen)
	if err != nil {
		return nil, err
	}

	return e, nil
}
