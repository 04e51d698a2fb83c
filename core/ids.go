package core

// WordIndex is a dense identifier for a vocabulary word. Valid indices for a
// finalized vocabulary are [0, Bound()). Index 0 is reserved for the unknown
// word and always resolves, whether or not the source text contained the
// unknown token.
type WordIndex uint32

// UnknownWordID is the reserved index of the unknown word.
const UnknownWordID WordIndex = 0

// MaxWordIndex is the maximum possible value for a WordIndex. It doubles as
// the degraded Bound() sentinel for probing vocabularies loaded from a binary
// without an enumeration sink.
const MaxWordIndex = ^WordIndex(0)

// Reserved special tokens. Scoring assumes all three resolve after loading.
const (
	UnknownWord       = "<unk>"
	BeginSentenceWord = "<s>"
	EndSentenceWord   = "</s>"
)

// ProbBackoff is the per-word unigram record reordered in lockstep with the
// sorted vocabulary during FinishedLoading. Slot 0 belongs to the unknown
// word and is never moved.
type ProbBackoff struct {
	Prob    float32
	Backoff float32
}
