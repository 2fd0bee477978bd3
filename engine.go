package rc5

import (
	"fmt"
)

// Engine is an RC5 block cipher instance with word type W, a fixed number of
// rounds and a fixed key length. A block is two words, so an Engine[uint32]
// operates on 8 byte blocks.
//
// An Engine is immutable once created and is safe for concurrent use.
type Engine[W Word] struct {
	rounds int
	keyLen int
	key    []byte

	// schedule is the expanded key, computed once in NewEngine. It is nil
	// when the key did not pass validation.
	schedule []W
}

// A compile-time check to ensure Engine implements the BlockCipher
// interface for every supported word type.
var (
	_ BlockCipher = (*Engine[uint16])(nil)
	_ BlockCipher = (*Engine[uint32])(nil)
	_ BlockCipher = (*Engine[uint64])(nil)
)

// NewEngine creates a new RC5 engine for the word type W. The key is copied.
//
// A key whose length does not match keyLen does not make construction fail;
// instead every subsequent operation on the engine returns
// ErrInvalidKeyLength.
func NewEngine[W Word](key []byte, rounds, keyLen int) (*Engine[W], error) {
	if rounds < 0 || rounds > MaxRounds {
		return nil, fmt.Errorf("%w: %d not in [0, %d]", ErrInvalidRounds,
			rounds, MaxRounds)
	}
	if keyLen < 0 || keyLen > MaxKeyLen {
		return nil, fmt.Errorf("%w: %d not in [0, %d]",
			ErrInvalidKeyLength, keyLen, MaxKeyLen)
	}

	e := &Engine[W]{
		rounds: rounds,
		keyLen: keyLen,
		key:    append([]byte(nil), key...),
	}

	if err := e.validateKey(); err != nil {
		log.Debugf("RC5-%d/%d/%d engine created with unusable key: %v",
			wordBits[W](), rounds, keyLen, err)

		return e, nil
	}

	e.schedule = expandKey[W](e.key, rounds)

	log.Tracef("RC5-%d/%d/%d engine created, schedule_words=%d",
		wordBits[W](), rounds, keyLen, len(e.schedule))

	return e, nil
}

// validateKey checks that the stored key has the configured length and can
// be split into whole words.
func (e *Engine[W]) validateKey() error {
	if len(e.key) != e.keyLen {
		return fmt.Errorf("%w: got %d bytes, want %d",
			ErrInvalidKeyLength, len(e.key), e.keyLen)
	}

	if u := wordBytes[W](); len(e.key)%u != 0 {
		return fmt.Errorf("%w: %d bytes is not a multiple of the "+
			"%d byte word size", ErrInvalidKeyLength, len(e.key), u)
	}

	return nil
}

// validateBlock checks that b holds exactly one block.
func (e *Engine[W]) validateBlock(b []byte) error {
	if len(b) != e.BlockSize() {
		return fmt.Errorf("%w: got %d bytes, want %d",
			ErrInvalidBlockLength, len(b), e.BlockSize())
	}

	return nil
}

// BlockSize returns the block size in bytes, two words.
//
// NOTE: This is part of the BlockCipher interface.
func (e *Engine[W]) BlockSize() int {
	return 2 * wordBytes[W]()
}

// Rounds returns the number of rounds the engine applies.
func (e *Engine[W]) Rounds() int {
	return e.rounds
}

// KeySchedule returns a copy of the expanded key table S, which holds
// 2*(rounds+1) words.
func (e *Engine[W]) KeySchedule() ([]W, error) {
	if err := e.validateKey(); err != nil {
		return nil, err
	}

	return append([]W(nil), e.schedule...), nil
}

// EncryptBlock encrypts a single block and returns the ciphertext in a newly
// allocated slice.
//
// NOTE: This is part of the BlockCipher interface.
func (e *Engine[W]) EncryptBlock(src []byte) ([]byte, error) {
	if err := e.validateKey(); err != nil {
		return nil, err
	}
	if err := e.validateBlock(src); err != nil {
		return nil, err
	}

	dst := make([]byte, len(src))
	e.encrypt(dst, src)

	return dst, nil
}

// DecryptBlock decrypts a single block and returns the plaintext in a newly
// allocated slice.
//
// NOTE: This is part of the BlockCipher interface.
func (e *Engine[W]) DecryptBlock(src []byte) ([]byte, error) {
	if err := e.validateKey(); err != nil {
		return nil, err
	}
	if err := e.validateBlock(src); err != nil {
		return nil, err
	}

	dst := make([]byte, len(src))
	e.decrypt(dst, src)

	return dst, nil
}

// encrypt runs the RC5 encryption rounds over src and writes the result to
// dst. Both slices must hold at least one block, and may overlap entirely.
func (e *Engine[W]) encrypt(dst, src []byte) {
	u := wordBytes[W]()
	s := e.schedule

	a := wordFromBytes[W](src) + s[0]
	b := wordFromBytes[W](src[u:]) + s[1]

	for i := 1; i <= e.rounds; i++ {
		a = rotl(a^b, b) + s[2*i]
		b = rotl(b^a, a) + s[2*i+1]
	}

	putWord(dst, a)
	putWord(dst[u:], b)
}

// decrypt is the inverse of encrypt.
func (e *Engine[W]) decrypt(dst, src []byte) {
	u := wordBytes[W]()
	s := e.schedule

	a := wordFromBytes[W](src)
	b := wordFromBytes[W](src[u:])

	for i := e.rounds; i >= 1; i-- {
		b = rotr(b-s[2*i+1], a) ^ a
		a = rotr(a-s[2*i], b) ^ b
	}

	putWord(dst, a-s[0])
	putWord(dst[u:], b-s[1])
}
