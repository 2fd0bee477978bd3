package rc5

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	"pgregory.net/rapid"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()

	b, err := hex.DecodeString(s)
	require.NoError(t, err)

	return b
}

// vectorTests are published RC5 test vectors, all with keyLen == len(key).
var vectorTests = []struct {
	name       string
	wordBytes  int
	rounds     int
	key        string
	plaintext  string
	ciphertext string
}{
	{
		name:       "RC5-32/12/16 sequential key",
		wordBytes:  4,
		rounds:     12,
		key:        "000102030405060708090a0b0c0d0e0f",
		plaintext:  "0011223344556677",
		ciphertext: "2ddc149bcf088b9e",
	},
	{
		name:       "RC5-32/12/16 random key",
		wordBytes:  4,
		rounds:     12,
		key:        "2bd6459f82c5b300952c49104881ff48",
		plaintext:  "ea024714ad5c4d84",
		ciphertext: "11e43b86d231ea64",
	},
	{
		name:       "RC5-32/12/16 sequential key inverse",
		wordBytes:  4,
		rounds:     12,
		key:        "000102030405060708090a0b0c0d0e0f",
		plaintext:  "96950dda654a3d62",
		ciphertext: "0011223344556677",
	},
	{
		name:       "RC5-32/12/16 random key inverse",
		wordBytes:  4,
		rounds:     12,
		key:        "2bd6459f82c5b300952c49104881ff48",
		plaintext:  "638b3a5ef72b663f",
		ciphertext: "ea024714ad5c4d84",
	},
	{
		name:       "RC5-16/16/8",
		wordBytes:  2,
		rounds:     16,
		key:        "0001020304050607",
		plaintext:  "00010203",
		ciphertext: "23a8d72e",
	},
	{
		name:       "RC5-32/20/16",
		wordBytes:  4,
		rounds:     20,
		key:        "000102030405060708090a0b0c0d0e0f",
		plaintext:  "0001020304050607",
		ciphertext: "2a0edc0e9431ff73",
	},
	{
		name:      "RC5-64/24/24",
		wordBytes: 8,
		rounds:    24,
		key: "000102030405060708090a0b0c0d0e0f" +
			"1011121314151617",
		plaintext:  "000102030405060708090a0b0c0d0e0f",
		ciphertext: "a46772820edbce0235abea32ae7178da",
	},
}

// TestVectors checks encryption and decryption against the published
// vectors.
func TestVectors(t *testing.T) {
	t.Parallel()

	for _, test := range vectorTests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			key := mustHex(t, test.key)
			pt := mustHex(t, test.plaintext)
			ct := mustHex(t, test.ciphertext)

			engine, err := New(
				key, test.wordBytes, test.rounds, len(key),
			)
			require.NoError(t, err)
			require.Equal(t, 2*test.wordBytes, engine.BlockSize())

			got, err := engine.EncryptBlock(pt)
			require.NoError(t, err)
			require.Equal(t, ct, got)

			got, err = engine.DecryptBlock(ct)
			require.NoError(t, err)
			require.Equal(t, pt, got)
		})
	}
}

// TestInvalidKeyLength asserts that a key not matching the configured length
// is accepted at construction, but rejected by every operation.
func TestInvalidKeyLength(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		keySize   int
		keyLen    int
		wordBytes int
	}{
		{
			name:      "key shorter than configured",
			keySize:   8,
			keyLen:    16,
			wordBytes: 4,
		},
		{
			name:      "key longer than configured",
			keySize:   24,
			keyLen:    16,
			wordBytes: 8,
		},
		{
			name:      "empty key with non-zero length",
			keySize:   0,
			keyLen:    2,
			wordBytes: 2,
		},
		{
			name:      "key not a multiple of the word size",
			keySize:   10,
			keyLen:    10,
			wordBytes: 4,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			key := bytes.Repeat([]byte{0xaa}, tc.keySize)
			engine, err := New(key, tc.wordBytes, 12, tc.keyLen)
			require.NoError(t, err)

			block := make([]byte, engine.BlockSize())

			_, err = engine.EncryptBlock(block)
			require.ErrorIs(t, err, ErrInvalidKeyLength)

			_, err = engine.DecryptBlock(block)
			require.ErrorIs(t, err, ErrInvalidKeyLength)
		})
	}

	engine, err := NewEngine[uint32](make([]byte, 4), 12, 8)
	require.NoError(t, err)

	_, err = engine.KeySchedule()
	require.ErrorIs(t, err, ErrInvalidKeyLength)
}

// TestInvalidBlockLength asserts that blocks which are not exactly two words
// long are rejected in both directions.
func TestInvalidBlockLength(t *testing.T) {
	t.Parallel()

	engine, err := NewEngine[uint32](make([]byte, 16), 12, 16)
	require.NoError(t, err)

	for _, size := range []int{0, 1, 4, 7, 9, 16} {
		block := make([]byte, size)

		_, err := engine.EncryptBlock(block)
		require.ErrorIs(t, err, ErrInvalidBlockLength, "size %d", size)

		_, err = engine.DecryptBlock(block)
		require.ErrorIs(t, err, ErrInvalidBlockLength, "size %d", size)
	}
}

// TestInvalidParameters covers the constructor validation.
func TestInvalidParameters(t *testing.T) {
	t.Parallel()

	key := make([]byte, 16)

	for _, wordBytes := range []int{0, 1, 3, 16} {
		engine, err := New(key, wordBytes, 12, 16)
		require.ErrorIs(t, err, ErrInvalidWordSize)
		require.Nil(t, engine)
	}

	for _, rounds := range []int{-1, MaxRounds + 1} {
		engine, err := New(key, 4, rounds, 16)
		require.ErrorIs(t, err, ErrInvalidRounds)
		require.Nil(t, engine)
	}

	for _, keyLen := range []int{-1, MaxKeyLen + 1} {
		engine, err := New(key, 4, 12, keyLen)
		require.ErrorIs(t, err, ErrInvalidKeyLength)
		require.Nil(t, engine)
	}
}

// TestKeySchedule checks the size of the schedule, that the empty key is
// handled, and that callers get their own copy.
func TestKeySchedule(t *testing.T) {
	t.Parallel()

	for _, rounds := range []int{0, 1, 12, MaxRounds} {
		engine, err := NewEngine[uint64](nil, rounds, 0)
		require.NoError(t, err)

		s, err := engine.KeySchedule()
		require.NoError(t, err)
		require.Len(t, s, 2*(rounds+1))
	}

	engine, err := NewEngine[uint16](make([]byte, 8), 16, 8)
	require.NoError(t, err)

	s1, err := engine.KeySchedule()
	require.NoError(t, err)

	s1[0] ^= 0xffff

	s2, err := engine.KeySchedule()
	require.NoError(t, err)
	require.NotEqual(t, s1, s2)
	require.Equal(t, expandKey[uint16](make([]byte, 8), 16), s2)
}

// TestKeyIsCopied makes sure changing the caller's key slice after
// construction does not affect the engine.
func TestKeyIsCopied(t *testing.T) {
	t.Parallel()

	key := mustHex(t, "000102030405060708090a0b0c0d0e0f")
	engine, err := New(key, 4, 12, len(key))
	require.NoError(t, err)

	key[0] ^= 0xff

	ct, err := engine.EncryptBlock(mustHex(t, "0011223344556677"))
	require.NoError(t, err)
	require.Equal(t, mustHex(t, "2ddc149bcf088b9e"), ct)
}

// engineParams draws a valid engine configuration and a matching block.
func engineParams(rt *rapid.T) (BlockCipher, []byte) {
	wordBytes := rapid.SampledFrom([]int{2, 4, 8}).Draw(rt, "wordBytes")
	rounds := rapid.IntRange(0, 40).Draw(rt, "rounds")
	words := rapid.IntRange(0, 8).Draw(rt, "keyWords")
	key := rapid.SliceOfN(
		rapid.Byte(), words*wordBytes, words*wordBytes,
	).Draw(rt, "key")
	block := rapid.SliceOfN(
		rapid.Byte(), 2*wordBytes, 2*wordBytes,
	).Draw(rt, "block")

	engine, err := New(key, wordBytes, rounds, len(key))
	require.NoError(rt, err)

	return engine, block
}

// TestRoundTripProperty asserts that decryption inverts encryption and that
// both are deterministic for every width, round count and key.
func TestRoundTripProperty(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		engine, pt := engineParams(rt)

		ct, err := engine.EncryptBlock(pt)
		require.NoError(rt, err)
		require.Len(rt, ct, len(pt))

		again, err := engine.EncryptBlock(pt)
		require.NoError(rt, err)
		require.Equal(rt, ct, again)

		got, err := engine.DecryptBlock(ct)
		require.NoError(rt, err)
		require.Equal(rt, pt, got)
	})
}

// TestKeySensitivityProperty asserts that flipping a single key bit changes
// the ciphertext of a fixed plaintext.
func TestKeySensitivityProperty(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		wordBytes := rapid.SampledFrom([]int{2, 4, 8}).Draw(
			rt, "wordBytes",
		)
		rounds := rapid.IntRange(8, 32).Draw(rt, "rounds")
		words := rapid.IntRange(1, 8).Draw(rt, "keyWords")
		key := rapid.SliceOfN(
			rapid.Byte(), words*wordBytes, words*wordBytes,
		).Draw(rt, "key")
		pt := rapid.SliceOfN(
			rapid.Byte(), 2*wordBytes, 2*wordBytes,
		).Draw(rt, "plaintext")
		bit := rapid.IntRange(0, len(key)*8-1).Draw(rt, "bit")

		flipped := append([]byte(nil), key...)
		flipped[bit/8] ^= 1 << (bit % 8)

		e1, err := New(key, wordBytes, rounds, len(key))
		require.NoError(rt, err)
		e2, err := New(flipped, wordBytes, rounds, len(flipped))
		require.NoError(rt, err)

		ct1, err := e1.EncryptBlock(pt)
		require.NoError(rt, err)
		ct2, err := e2.EncryptBlock(pt)
		require.NoError(rt, err)

		require.NotEqual(rt, ct1, ct2)
	})
}

// TestConcurrentUse runs many encryptions and decryptions through a single
// engine at once. Run with -race to catch shared state.
func TestConcurrentUse(t *testing.T) {
	t.Parallel()

	key := mustHex(t, "2bd6459f82c5b300952c49104881ff48")
	engine, err := New(key, 4, 12, len(key))
	require.NoError(t, err)

	pt := mustHex(t, "ea024714ad5c4d84")
	ct := mustHex(t, "11e43b86d231ea64")

	var g errgroup.Group
	for i := 0; i < 32; i++ {
		g.Go(func() error {
			for j := 0; j < 100; j++ {
				got, err := engine.EncryptBlock(pt)
				if err != nil {
					return err
				}
				if !bytes.Equal(got, ct) {
					t.Errorf("unexpected ciphertext %x", got)
				}

				got, err = engine.DecryptBlock(ct)
				if err != nil {
					return err
				}
				if !bytes.Equal(got, pt) {
					t.Errorf("unexpected plaintext %x", got)
				}
			}

			return nil
		})
	}
	require.NoError(t, g.Wait())
}
