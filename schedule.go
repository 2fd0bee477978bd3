package rc5

// expandKey derives the RC5 key schedule S of 2*(rounds+1) words from the raw
// key. The key length must be a multiple of the word size; callers validate
// this before calling.
func expandKey[W Word](key []byte, rounds int) []W {
	u := wordBytes[W]()

	// Load the key into L as little-endian words. An empty key still
	// yields a single zero word so the mixing loop has something to
	// index.
	l := make([]W, max(len(key)/u, 1))
	for i := 0; i+u <= len(key); i += u {
		l[i/u] = wordFromBytes[W](key[i:])
	}

	// Initialize S with the arithmetic progression P, P+Q, P+2Q, ...
	p, q := magic[W]()
	t := 2 * (rounds + 1)
	s := make([]W, t)
	s[0] = p
	for i := 1; i < t; i++ {
		s[i] = s[i-1] + q
	}

	// Mix the secret key into S, cycling over the larger of the two
	// arrays three times.
	var (
		a, b W
		i, j int
	)
	for k := 3 * max(t, len(l)); k > 0; k-- {
		a = rotl(s[i]+a+b, 3)
		s[i] = a

		b = rotl(l[j]+a+b, a+b)
		l[j] = b

		i = (i + 1) % t
		j = (j + 1) % len(l)
	}

	return s
}
