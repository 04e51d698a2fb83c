package modelfile

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func testSnapshot() Snapshot {
	region := make([]byte, 0, 40)
	for _, w := range []uint64{4, 100, 200, 300, 400} {
		region = append(region,
			byte(w), byte(w>>8), byte(w>>16), byte(w>>24),
			byte(w>>32), byte(w>>40), byte(w>>48), byte(w>>56))
	}
	return Snapshot{
		VocabType:  VocabSorted,
		EntryCount: 4,
		Region:     region,
		Words:      []byte("<unk>\x00one\x00two\x00three\x00four\x00"),
	}
}

func TestSnapshot_RoundTrip(t *testing.T) {
	for _, compression := range []CompressionType{CompressionNone, CompressionLZ4, CompressionZSTD} {
		snap := testSnapshot()

		var buf bytes.Buffer
		n, err := snap.Write(&buf, compression)
		require.NoError(t, err)
		require.Equal(t, int64(buf.Len()), n)

		file, err := Load(buf.Bytes())
		require.NoError(t, err)

		require.Equal(t, snap.VocabType, file.Header.VocabType)
		require.Equal(t, compression, file.Header.WordsCompression)
		require.Equal(t, snap.EntryCount, file.Header.EntryCount)
		require.Equal(t, snap.Region, file.Region)
		require.Equal(t, snap.Words, file.Words)
	}
}

func TestSnapshot_CompressibleWords(t *testing.T) {
	snap := testSnapshot()
	snap.Words = []byte(strings.Repeat("wordwordword\x00", 4096))

	var buf bytes.Buffer
	_, err := snap.Write(&buf, CompressionZSTD)
	require.NoError(t, err)
	require.Less(t, buf.Len(), HeaderSize+len(snap.Region)+len(snap.Words))

	file, err := Load(buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, snap.Words, file.Words)
}

func TestLoad_ChecksumMismatch(t *testing.T) {
	var buf bytes.Buffer
	_, err := testSnapshot().Write(&buf, CompressionNone)
	require.NoError(t, err)

	data := buf.Bytes()
	data[len(data)-1] ^= 0xff

	_, err = Load(data)
	require.ErrorIs(t, err, ErrChecksum)
}

func TestLoad_HeaderErrors(t *testing.T) {
	var buf bytes.Buffer
	_, err := testSnapshot().Write(&buf, CompressionNone)
	require.NoError(t, err)
	data := buf.Bytes()

	bad := append([]byte(nil), data...)
	bad[0] ^= 0xff
	_, err = Load(bad)
	require.ErrorIs(t, err, ErrInvalidMagic)

	bad = append([]byte(nil), data...)
	bad[4] = 99
	_, err = Load(bad)
	require.ErrorIs(t, err, ErrInvalidVersion)

	bad = append([]byte(nil), data...)
	bad[8] = 7
	_, err = Load(bad)
	require.ErrorIs(t, err, ErrInvalidVocabType)

	_, err = Load(data[:len(data)-4])
	require.ErrorIs(t, err, ErrTruncated)
}

func TestHeader_EncodeDecode(t *testing.T) {
	h := &FileHeader{
		Magic:             MagicNumber,
		Version:           Version,
		VocabType:         VocabProbing,
		WordsCompression:  CompressionLZ4,
		EntryCount:        1234,
		ProbingMultiplier: 1.5,
		RegionOffset:      HeaderSize,
		RegionSize:        4096,
		WordsOffset:       HeaderSize + 4096,
		WordsSize:         999,
		Checksum:          0xdeadbeef,
	}

	buf := h.Encode()
	require.Len(t, buf, HeaderSize)

	got, err := DecodeHeader(buf)
	require.NoError(t, err)
	require.Equal(t, h, got)
}
