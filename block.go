package rc5

import (
	"crypto/cipher"
	"fmt"
)

// block adapts an Engine to the crypto/cipher.Block interface so that a
// caller can run it under a mode of its own choosing.
type block[W Word] struct {
	engine *Engine[W]
}

// NewBlock returns a cipher.Block backed by an RC5 engine with the given word
// size in bytes and round count. The key length is taken from key, and the
// key is validated up front since cipher.Block cannot report errors.
func NewBlock(key []byte, wordBytes, rounds int) (cipher.Block, error) {
	switch wordBytes {
	case 2:
		return newBlock[uint16](key, rounds)

	case 4:
		return newBlock[uint32](key, rounds)

	case 8:
		return newBlock[uint64](key, rounds)

	default:
		return nil, fmt.Errorf("%w: %d bytes, must be 2, 4 or 8",
			ErrInvalidWordSize, wordBytes)
	}
}

func newBlock[W Word](key []byte, rounds int) (cipher.Block, error) {
	e, err := NewEngine[W](key, rounds, len(key))
	if err != nil {
		return nil, err
	}
	if err := e.validateKey(); err != nil {
		return nil, err
	}

	return &block[W]{engine: e}, nil
}

// BlockSize returns the cipher's block size.
//
// NOTE: This is part of the cipher.Block interface.
func (b *block[W]) BlockSize() int {
	return b.engine.BlockSize()
}

// Encrypt encrypts the first block in src into dst. Dst and src must overlap
// entirely or not at all.
//
// NOTE: This is part of the cipher.Block interface.
func (b *block[W]) Encrypt(dst, src []byte) {
	b.checkLen(dst, src)
	b.engine.encrypt(dst, src)
}

// Decrypt decrypts the first block in src into dst. Dst and src must overlap
// entirely or not at all.
//
// NOTE: This is part of the cipher.Block interface.
func (b *block[W]) Decrypt(dst, src []byte) {
	b.checkLen(dst, src)
	b.engine.decrypt(dst, src)
}

func (b *block[W]) checkLen(dst, src []byte) {
	bs := b.engine.BlockSize()
	if len(src) < bs {
		panic("rc5: input not full block")
	}
	if len(dst) < bs {
		panic("rc5: output not full block")
	}
}
