package rc5

import "math/bits"

// Word is the set of unsigned integer types an RC5 engine can operate on.
// The bit width of the type is the RC5 word size w, and all arithmetic on a
// Word is performed modulo 2^w, which Go's unsigned types already do.
type Word interface {
	~uint16 | ~uint32 | ~uint64
}

// wordBits returns the width of W in bits.
func wordBits[W Word]() uint {
	var zero W
	return uint(bits.Len64(uint64(^zero)))
}

// wordBytes returns the width of W in bytes.
func wordBytes[W Word]() int {
	return int(wordBits[W]() / 8)
}

// rotl rotates x to the left by n mod w bits. Only the low log2(w) bits of n
// are significant, which is exactly what the data-dependent rotations of RC5
// require.
func rotl[W Word](x, n W) W {
	w := wordBits[W]()
	s := uint(n) & (w - 1)

	// A shift by w yields zero for unsigned operands, so s == 0 is
	// handled without a special case.
	return x<<s | x>>(w-s)
}

// rotr rotates x to the right by n mod w bits.
func rotr[W Word](x, n W) W {
	w := wordBits[W]()
	s := uint(n) & (w - 1)

	return x>>s | x<<(w-s)
}

// wordFromBytes decodes a little-endian word from the first wordBytes bytes
// of b. The caller must ensure b is long enough.
func wordFromBytes[W Word](b []byte) W {
	n := wordBytes[W]()
	_ = b[n-1]

	var x W
	for i := n - 1; i >= 0; i-- {
		x = x<<8 | W(b[i])
	}

	return x
}

// putWord encodes x into the first wordBytes bytes of b in little-endian
// order.
func putWord[W Word](b []byte, x W) {
	n := wordBytes[W]()
	_ = b[n-1]

	for i := 0; i < n; i++ {
		b[i] = byte(x)
		x >>= 8
	}
}
