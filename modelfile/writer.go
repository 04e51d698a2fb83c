package modelfile

import (
	"fmt"
	"io"

	"github.com/hupe1980/vocabgo/internal/hash"
)

// Snapshot is the serializable state of a finalized vocabulary: the raw
// region bytes plus the NUL-framed words section.
type Snapshot struct {
	VocabType         VocabType
	EntryCount        uint64
	ProbingMultiplier float64 // Zero for the sorted type
	Region            []byte
	Words             []byte
}

// Write serializes snap to w, compressing the words section with the given
// algorithm, and returns the number of bytes written. The region bytes are
// written untouched so a reader can map them back in place.
func (s Snapshot) Write(w io.Writer, compression CompressionType) (int64, error) {
	words, err := compressWords(s.Words, compression)
	if err != nil {
		return 0, fmt.Errorf("compress words: %w", err)
	}

	crc := hash.NewCRC32C()
	crc.Write(s.Region)
	crc.Write(words)

	header := &FileHeader{
		Magic:             MagicNumber,
		Version:           Version,
		VocabType:         s.VocabType,
		WordsCompression:  compression,
		EntryCount:        s.EntryCount,
		ProbingMultiplier: s.ProbingMultiplier,
		RegionOffset:      HeaderSize,
		RegionSize:        uint64(len(s.Region)),
		WordsOffset:       HeaderSize + uint64(len(s.Region)),
		WordsSize:         uint64(len(words)),
		Checksum:          crc.Sum32(),
	}

	var written int64
	for _, chunk := range [][]byte{header.Encode(), s.Region, words} {
		n, err := w.Write(chunk)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, nil
}
