package vocab

import (
	"io"
	"sort"

	"github.com/hupe1980/vocabgo/core"
	"github.com/hupe1980/vocabgo/internal/mem"
	"github.com/hupe1980/vocabgo/internal/sorteduniform"
)

// SortedSize returns the region size in bytes a SortedVocabulary needs for
// the given entry count: one count word plus one hash per entry.
func SortedSize(entries int, _ Config) int {
	return 8 * (entries + 1)
}

// SortedVocabulary is the compact representation: a sorted array of 64-bit
// word hashes searched with interpolation search. Identifiers are assigned
// by hash rank at finalization, so records inserted alongside words must be
// permuted through FinishedLoading's reorder argument.
type SortedVocabulary struct {
	special

	// words views the caller-owned region: words[0] holds the finalized
	// entry count, words[1:] the hash keys.
	words     []uint64
	size      int
	capacity  int
	bound     core.WordIndex
	sawUnk    bool
	finalized bool

	enumerate EnumerateVocab
	staged    []string
}

// NewSortedVocabulary returns an empty vocabulary. SetupMemory must be called
// before any other operation.
func NewSortedVocabulary() *SortedVocabulary {
	return &SortedVocabulary{}
}

// SetupMemory binds the vocabulary to a caller-owned region sized by
// SortedSize for entries. The region must be 8-byte aligned and must outlive
// the vocabulary. Any previously bound state is discarded.
func (v *SortedVocabulary) SetupMemory(region []byte, entries int, cfg Config) error {
	if len(region) < SortedSize(entries, cfg) {
		return ErrRegionTooSmall
	}
	if !mem.Aligned8(region) {
		return ErrUnaligned
	}

	v.words = mem.Uint64View(region, entries+1)
	v.size = 0
	v.capacity = entries
	v.bound = 0
	v.sawUnk = false
	v.finalized = false
	v.setSpecial(core.UnknownWordID, core.UnknownWordID)

	return nil
}

// ConfigureEnumerate registers a sink that receives every (identifier, word)
// pair at finalization. Because identifiers are only fixed by the final sort,
// the words are staged in memory until FinishedLoading; maxEntries sizes that
// staging buffer.
func (v *SortedVocabulary) ConfigureEnumerate(to EnumerateVocab, maxEntries int) {
	v.enumerate = to
	v.staged = make([]string, 0, maxEntries)
}

// Insert stages a word and returns its provisional identifier, valid only
// until FinishedLoading reassigns identifiers by hash order. Inserting the
// unknown token records its presence and stores nothing. Not valid after
// finalization.
func (v *SortedVocabulary) Insert(word string) core.WordIndex {
	if v.finalized {
		panic("vocab: Insert after FinishedLoading")
	}
	if word == core.UnknownWord {
		v.sawUnk = true
		return core.UnknownWordID
	}
	if v.size == v.capacity {
		panic("vocab: insert exceeds configured entry count")
	}

	v.words[1+v.size] = HashForVocab(word)
	if v.enumerate != nil {
		v.staged = append(v.staged, word)
	}
	v.size++

	return core.WordIndex(v.size)
}

// FinishedLoading sorts the hashes, permuting reorder in lockstep so that
// reorder[i] ends up at the slot of the word that received identifier i+1.
// reorder must align with insertion order (entry i for the word returned as
// provisional identifier i+1) and may be nil when no per-word records exist.
// Fixes the sentence marker identifiers and seals the vocabulary.
func (v *SortedVocabulary) FinishedLoading(reorder []core.ProbBackoff) {
	if v.finalized {
		panic("vocab: FinishedLoading called twice")
	}
	if reorder != nil && len(reorder) != v.size {
		panic("vocab: reorder length does not match inserted words")
	}

	sort.Sort(&jointSorter{
		keys:    v.words[1 : 1+v.size],
		records: reorder,
		staged:  v.staged,
	})

	if v.enumerate != nil {
		// Identifier 0 is always the unknown token, whether or not it was
		// inserted, so enumeration and binary replay stay aligned.
		v.enumerate.Add(core.UnknownWordID, core.UnknownWord)
		for i, w := range v.staged {
			v.enumerate.Add(core.WordIndex(i+1), w)
		}
		v.staged = nil
	}

	v.words[0] = uint64(v.size)
	v.bound = core.WordIndex(v.size + 1)
	v.finalized = true
	v.setSpecial(v.Index(core.BeginSentenceWord), v.Index(core.EndSentenceWord))
}

// Index returns the identifier for word, core.UnknownWordID when absent.
// Valid only after FinishedLoading or LoadedBinary.
func (v *SortedVocabulary) Index(word string) core.WordIndex {
	i, ok := sorteduniform.Find(v.words[1:1+v.size], HashForVocab(word))
	if !ok {
		return core.UnknownWordID
	}
	return core.WordIndex(i + 1)
}

// Bound returns one past the highest assigned identifier.
func (v *SortedVocabulary) Bound() core.WordIndex { return v.bound }

// SawUnk reports whether the unknown token was inserted explicitly.
func (v *SortedVocabulary) SawUnk() bool { return v.sawUnk }

// UnkCountChangePadding returns the extra bytes a region grows by when an
// unknown token still has to be materialized: zero once the token was seen,
// one hash slot otherwise.
func (v *SortedVocabulary) UnkCountChangePadding() int {
	if v.sawUnk {
		return 0
	}
	return 8
}

// LoadedBinary rebinds a vocabulary whose region was populated from a model
// file. The entry count stored in the region must match the count SetupMemory
// was configured with. The words section is replayed from r into to; binary
// models always carry an unknown entry, so SawUnk reports true afterwards.
func (v *SortedVocabulary) LoadedBinary(r io.Reader, to EnumerateVocab) error {
	stored := v.words[0]
	if stored != uint64(v.capacity) {
		return ErrEntryCountMismatch
	}

	// Restore the lookup state before replaying so the sink resolves words
	// against the fully bound vocabulary.
	v.size = int(stored)
	v.bound = core.WordIndex(v.size + 1)
	v.sawUnk = true
	v.finalized = true
	v.setSpecial(v.Index(core.BeginSentenceWord), v.Index(core.EndSentenceWord))

	if _, err := ReadWords(r, to); err != nil {
		return err
	}

	return nil
}

// jointSorter orders keys ascending while carrying records and staged words
// through the identical permutation.
type jointSorter struct {
	keys    []uint64
	records []core.ProbBackoff
	staged  []string
}

func (s *jointSorter) Len() int           { return len(s.keys) }
func (s *jointSorter) Less(i, j int) bool { return s.keys[i] < s.keys[j] }

func (s *jointSorter) Swap(i, j int) {
	s.keys[i], s.keys[j] = s.keys[j], s.keys[i]
	if s.records != nil {
		s.records[i], s.records[j] = s.records[j], s.records[i]
	}
	if s.staged != nil {
		s.staged[i], s.staged[j] = s.staged[j], s.staged[i]
	}
}
