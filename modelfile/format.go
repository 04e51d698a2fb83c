package modelfile

import (
	"encoding/binary"
	"errors"
	"math"
)

const (
	MagicNumber = 0x564F4331 // "VOC1"
	Version     = 1
)

// VocabType selects the vocabulary representation stored in the file.
type VocabType uint8

const (
	VocabSorted  VocabType = 0
	VocabProbing VocabType = 1
)

var (
	ErrInvalidMagic     = errors.New("modelfile: invalid magic number")
	ErrInvalidVersion   = errors.New("modelfile: unsupported version")
	ErrInvalidVocabType = errors.New("modelfile: unknown vocabulary type")
	ErrTruncated        = errors.New("modelfile: file smaller than header describes")
	ErrChecksum         = errors.New("modelfile: body checksum mismatch")
)

// FileHeader describes the layout of a vocabulary model file.
// It is stored at the beginning of the file.
type FileHeader struct {
	Magic             uint32
	Version           uint32
	VocabType         VocabType
	WordsCompression  CompressionType
	_                 [6]byte // Padding to align the following fields to 8 bytes
	EntryCount        uint64
	ProbingMultiplier float64 // Stored as IEEE 754 bits; zero for the sorted type
	RegionOffset      uint64  // Offset to start of the vocabulary region
	RegionSize        uint64
	WordsOffset       uint64 // Offset to start of the words section
	WordsSize         uint64 // On-disk size, after any compression
	Checksum          uint32 // CRC32C of the body (everything after header)
	_                 [28]byte // Reserved for future use
}

// Size of the header in bytes. Kept a multiple of 8 so the region that
// follows stays uint64-aligned inside a page-aligned mapping.
const HeaderSize = 4 + 4 + 1 + 1 + 6 + 8 + 8 + 8 + 8 + 8 + 8 + 4 + 28

func (h *FileHeader) Encode() []byte {
	buf := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(buf[0:], h.Magic)
	binary.LittleEndian.PutUint32(buf[4:], h.Version)
	buf[8] = byte(h.VocabType)
	buf[9] = byte(h.WordsCompression)
	// Padding [10:16]
	binary.LittleEndian.PutUint64(buf[16:], h.EntryCount)
	binary.LittleEndian.PutUint64(buf[24:], math.Float64bits(h.ProbingMultiplier))
	binary.LittleEndian.PutUint64(buf[32:], h.RegionOffset)
	binary.LittleEndian.PutUint64(buf[40:], h.RegionSize)
	binary.LittleEndian.PutUint64(buf[48:], h.WordsOffset)
	binary.LittleEndian.PutUint64(buf[56:], h.WordsSize)
	binary.LittleEndian.PutUint32(buf[64:], h.Checksum)
	return buf
}

func DecodeHeader(buf []byte) (*FileHeader, error) {
	if len(buf) < HeaderSize {
		return nil, errors.New("modelfile: buffer too small for header")
	}
	h := &FileHeader{}
	h.Magic = binary.LittleEndian.Uint32(buf[0:])
	if h.Magic != MagicNumber {
		return nil, ErrInvalidMagic
	}
	h.Version = binary.LittleEndian.Uint32(buf[4:])
	if h.Version != Version {
		return nil, ErrInvalidVersion
	}
	h.VocabType = VocabType(buf[8])
	if h.VocabType != VocabSorted && h.VocabType != VocabProbing {
		return nil, ErrInvalidVocabType
	}
	h.WordsCompression = CompressionType(buf[9])
	h.EntryCount = binary.LittleEndian.Uint64(buf[16:])
	h.ProbingMultiplier = math.Float64frombits(binary.LittleEndian.Uint64(buf[24:]))
	h.RegionOffset = binary.LittleEndian.Uint64(buf[32:])
	h.RegionSize = binary.LittleEndian.Uint64(buf[40:])
	h.WordsOffset = binary.LittleEndian.Uint64(buf[48:])
	h.WordsSize = binary.LittleEndian.Uint64(buf[56:])
	h.Checksum = binary.LittleEndian.Uint32(buf[64:])
	return h, nil
}
