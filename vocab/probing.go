package vocab

import (
	"io"

	"github.com/hupe1980/vocabgo/core"
	"github.com/hupe1980/vocabgo/internal/probing"
)

// ProbingSize returns the region size in bytes a ProbingVocabulary needs for
// the given entry count under cfg.ProbingMultiplier.
func ProbingSize(entries int, cfg Config) int {
	return probing.Size(entries, cfg.ProbingMultiplier)
}

// ProbingVocabulary is the fast representation: an open-addressing hash table
// keyed by the 64-bit word hash. Identifiers are assigned in insertion order
// and never reordered, so streaming callers can use them immediately.
type ProbingVocabulary struct {
	special

	lookup    *probing.Table
	available core.WordIndex
	sawUnk    bool
	finalized bool

	enumerate EnumerateVocab
}

// NewProbingVocabulary returns an empty vocabulary. SetupMemory must be
// called before any other operation.
func NewProbingVocabulary() *ProbingVocabulary {
	return &ProbingVocabulary{}
}

// SetupMemory binds the vocabulary to a caller-owned region sized by
// ProbingSize for entries. The region must be 8-byte aligned, zeroed when
// building fresh, and must outlive the vocabulary. Existing table contents
// are preserved so a region filled from a model file can be rebound.
func (v *ProbingVocabulary) SetupMemory(region []byte, entries int, cfg Config) error {
	if err := cfg.validate(); err != nil {
		return err
	}

	t, err := probing.New(region, entries, cfg.ProbingMultiplier)
	if err != nil {
		return err
	}

	v.lookup = t
	v.available = 1
	v.sawUnk = false
	v.finalized = false
	v.setSpecial(core.UnknownWordID, core.UnknownWordID)

	return nil
}

// ConfigureEnumerate registers a sink that receives each (identifier, word)
// pair as it is inserted. The unknown token is reported immediately for
// identifier 0 so the enumeration always starts aligned with the identifier
// space.
func (v *ProbingVocabulary) ConfigureEnumerate(to EnumerateVocab, _ int) {
	v.enumerate = to
	if v.enumerate != nil {
		v.enumerate.Add(core.UnknownWordID, core.UnknownWord)
	}
}

// Insert assigns the next identifier to word and returns it. Identifiers are
// final immediately. Inserting the unknown token records its presence and
// stores nothing. Not valid after finalization.
func (v *ProbingVocabulary) Insert(word string) core.WordIndex {
	if v.finalized {
		panic("vocab: Insert after FinishedLoading")
	}
	if word == core.UnknownWord {
		v.sawUnk = true
		return core.UnknownWordID
	}

	index := v.available
	if err := v.lookup.Insert(HashForVocab(word), uint32(index)); err != nil {
		panic("vocab: insert exceeds configured entry count")
	}
	v.available++

	if v.enumerate != nil {
		v.enumerate.Add(index, word)
	}

	return index
}

// FinishedLoading fixes the sentence marker identifiers and seals the
// vocabulary. The reorder argument exists for interface symmetry with the
// sorted representation and is ignored; probing identifiers never move.
func (v *ProbingVocabulary) FinishedLoading(_ []core.ProbBackoff) {
	if v.finalized {
		panic("vocab: FinishedLoading called twice")
	}
	v.finalized = true
	v.setSpecial(v.Index(core.BeginSentenceWord), v.Index(core.EndSentenceWord))
}

// Index returns the identifier for word, core.UnknownWordID when absent.
func (v *ProbingVocabulary) Index(word string) core.WordIndex {
	value, ok := v.lookup.Find(HashForVocab(word))
	if !ok {
		return core.UnknownWordID
	}
	return core.WordIndex(value)
}

// Bound returns one past the highest assigned identifier. After LoadedBinary
// without an enumeration sink the table alone cannot recover the count, so
// Bound reports core.MaxWordIndex as a conservative upper bound.
func (v *ProbingVocabulary) Bound() core.WordIndex { return v.available }

// SawUnk reports whether the unknown token was inserted explicitly.
func (v *ProbingVocabulary) SawUnk() bool { return v.sawUnk }

// UnkCountChangePadding returns zero: the probing table stores nothing for
// the unknown token, so its presence never changes the region size.
func (v *ProbingVocabulary) UnkCountChangePadding() int { return 0 }

// LoadedBinary rebinds a vocabulary whose region was populated from a model
// file. The words section is replayed from r into to; when to is nil the
// count cannot be recovered and Bound degrades to core.MaxWordIndex. Binary
// models always carry an unknown entry, so SawUnk reports true afterwards.
func (v *ProbingVocabulary) LoadedBinary(r io.Reader, to EnumerateVocab) error {
	n, err := ReadWords(r, to)
	if err != nil {
		return err
	}

	v.available = n
	v.sawUnk = true
	v.finalized = true
	v.setSpecial(v.Index(core.BeginSentenceWord), v.Index(core.EndSentenceWord))

	return nil
}
