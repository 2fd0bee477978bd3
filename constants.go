package rc5

const (
	// MaxRounds is the largest round count the RC5 parameterization
	// allows.
	MaxRounds = 255

	// MaxKeyLen is the largest key length in bytes the RC5
	// parameterization allows.
	MaxKeyLen = 255
)

// magicConstants holds the key schedule generator constants of a word width.
// P is the odd integer nearest (e-2)*2^w and Q the odd integer nearest
// (phi-1)*2^w.
type magicConstants struct {
	p uint64
	q uint64
}

// magicTable maps a word width in bits to its generator constants.
var magicTable = map[uint]magicConstants{
	16: {
		p: 0xb7e1,
		q: 0x9e37,
	},
	32: {
		p: 0xb7e15163,
		q: 0x9e3779b9,
	},
	64: {
		p: 0xb7e151628aed2a6b,
		q: 0x9e3779b97f4a7c15,
	},
}

// magic returns the P and Q constants for the width of W.
func magic[W Word]() (W, W) {
	c := magicTable[wordBits[W]()]
	return W(c.p), W(c.q)
}
