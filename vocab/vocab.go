package vocab

import (
	"errors"

	"github.com/hupe1980/vocabgo/core"
)

var (
	// ErrRegionTooSmall is returned when the caller-owned region cannot hold
	// the structure sized for the requested entry count.
	ErrRegionTooSmall = errors.New("vocab: memory region too small")

	// ErrUnaligned is returned when a region does not start on an 8-byte
	// boundary.
	ErrUnaligned = errors.New("vocab: memory region not 8-byte aligned")

	// ErrEntryCountMismatch is returned by LoadedBinary when the entry count
	// recorded in the region disagrees with the count the caller configured.
	ErrEntryCountMismatch = errors.New("vocab: stored entry count does not match configured entries")
)

// Vocabulary is the read side shared by both representations.
type Vocabulary interface {
	// Index returns the identifier for word, or core.UnknownWordID when the
	// word is out of vocabulary.
	Index(word string) core.WordIndex

	// Bound returns an exclusive upper bound on assigned identifiers.
	Bound() core.WordIndex

	// SawUnk reports whether the unknown word token was explicitly present.
	SawUnk() bool

	// BeginSentence and EndSentence return the cached identifiers of the
	// sentence markers, core.UnknownWordID when absent.
	BeginSentence() core.WordIndex
	EndSentence() core.WordIndex
}

// special caches the sentence marker identifiers so hot paths never re-hash
// the marker strings.
type special struct {
	beginSentence core.WordIndex
	endSentence   core.WordIndex
}

func (s *special) setSpecial(begin, end core.WordIndex) {
	s.beginSentence = begin
	s.endSentence = end
}

// BeginSentence returns the identifier of <s>, core.UnknownWordID if absent.
func (s *special) BeginSentence() core.WordIndex { return s.beginSentence }

// EndSentence returns the identifier of </s>, core.UnknownWordID if absent.
func (s *special) EndSentence() core.WordIndex { return s.endSentence }
