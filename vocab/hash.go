package vocab

// FNV-1a 64-bit constants. These are part of the binary format contract:
// models hash words with this exact function at build time and again at
// query time, so changing either constant invalidates every previously
// written model file.
const (
	fnvOffset = 14695981039346656037
	fnvPrime  = 1099511628211
)

// HashForVocab returns the format-stable 64-bit hash of a word. It is the
// single hash both vocabulary representations key on.
func HashForVocab(word string) uint64 {
	h := uint64(fnvOffset)
	for i := 0; i < len(word); i++ {
		h ^= uint64(word[i])
		h *= fnvPrime
	}
	return h
}

// HashForVocabBytes is HashForVocab for a byte slice, avoiding a string
// conversion on read paths that already hold bytes.
func HashForVocabBytes(word []byte) uint64 {
	h := uint64(fnvOffset)
	for _, b := range word {
		h ^= uint64(b)
		h *= fnvPrime
	}
	return h
}
