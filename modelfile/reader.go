package modelfile

import (
	"fmt"

	"github.com/hupe1980/vocabgo/internal/hash"
)

// File is a decoded model file. Region aliases the input bytes so a
// memory-mapped file can be used without copying; Words is decompressed into
// fresh memory unless the file was written uncompressed.
type File struct {
	Header *FileHeader
	Region []byte
	Words  []byte
}

// Load decodes data, verifies the body checksum, and returns views into it.
// The returned File is only valid while data stays mapped or referenced.
func Load(data []byte) (*File, error) {
	header, err := DecodeHeader(data)
	if err != nil {
		return nil, err
	}

	regionEnd := header.RegionOffset + header.RegionSize
	wordsEnd := header.WordsOffset + header.WordsSize
	if header.RegionOffset < HeaderSize ||
		regionEnd < header.RegionOffset ||
		header.WordsOffset < regionEnd ||
		wordsEnd < header.WordsOffset ||
		wordsEnd > uint64(len(data)) {
		return nil, ErrTruncated
	}

	region := data[header.RegionOffset:regionEnd]
	wordsRaw := data[header.WordsOffset:wordsEnd]

	crc := hash.NewCRC32C()
	crc.Write(region)
	crc.Write(wordsRaw)
	if crc.Sum32() != header.Checksum {
		return nil, ErrChecksum
	}

	words, err := decompressWords(wordsRaw, header.WordsCompression)
	if err != nil {
		return nil, fmt.Errorf("decompress words: %w", err)
	}

	return &File{
		Header: header,
		Region: region,
		Words:  words,
	}, nil
}
