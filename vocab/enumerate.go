package vocab

import (
	"bufio"
	"bytes"
	"errors"
	"io"

	"github.com/hupe1980/vocabgo/core"
)

// ErrWordsTruncated is returned by ReadWords when the words section ends in
// the middle of a record.
var ErrWordsTruncated = errors.New("vocab: words section not NUL-terminated")

// EnumerateVocab observes each (identifier, surface string) pair as a
// vocabulary is built or replayed from a binary words section. Add is called
// in ascending identifier order starting at core.UnknownWordID.
type EnumerateVocab interface {
	Add(index core.WordIndex, word string)
}

// EnumerateFunc adapts a function to the EnumerateVocab interface.
type EnumerateFunc func(index core.WordIndex, word string)

// Add calls f(index, word).
func (f EnumerateFunc) Add(index core.WordIndex, word string) { f(index, word) }

// WriteWordsWrapper tees an enumeration into a NUL-framed buffer destined for
// the words section of a model file, optionally forwarding each pair to an
// inner sink. The frame is the on-disk words format: each word's bytes
// followed by a NUL, starting with the unknown token for identifier 0.
type WriteWordsWrapper struct {
	inner  EnumerateVocab
	buffer bytes.Buffer
}

// NewWriteWordsWrapper returns a wrapper forwarding to inner, which may be
// nil when only the serialized buffer is wanted.
func NewWriteWordsWrapper(inner EnumerateVocab) *WriteWordsWrapper {
	return &WriteWordsWrapper{inner: inner}
}

// Add buffers word and forwards the pair to the inner sink.
func (w *WriteWordsWrapper) Add(index core.WordIndex, word string) {
	if w.inner != nil {
		w.inner.Add(index, word)
	}
	w.buffer.WriteString(word)
	w.buffer.WriteByte(0)
}

// Buffer returns the accumulated NUL-framed words. The slice is invalidated
// by further Add calls.
func (w *WriteWordsWrapper) Buffer() []byte { return w.buffer.Bytes() }

// Write flushes the accumulated words to dst in a single call.
func (w *WriteWordsWrapper) Write(dst io.Writer) error {
	_, err := dst.Write(w.buffer.Bytes())
	return err
}

// ReadWords replays a NUL-framed words section into to, returning the number
// of words read. When to is nil the section is left unread and
// core.MaxWordIndex is returned, signalling that string identities are
// unavailable.
func ReadWords(r io.Reader, to EnumerateVocab) (core.WordIndex, error) {
	if to == nil {
		return core.MaxWordIndex, nil
	}

	br := bufio.NewReader(r)
	var index core.WordIndex
	for {
		word, err := br.ReadBytes(0)
		if errors.Is(err, io.EOF) {
			if len(word) != 0 {
				return 0, ErrWordsTruncated
			}
			return index, nil
		}
		if err != nil {
			return 0, err
		}
		to.Add(index, string(word[:len(word)-1]))
		index++
	}
}
