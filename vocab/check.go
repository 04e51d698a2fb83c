package vocab

import (
	"fmt"

	"github.com/hupe1980/vocabgo/core"
)

// SpecialWordMissingError reports that a reserved token was absent after
// loading under the ThrowUp policy.
type SpecialWordMissingError struct {
	Word string
}

func (e *SpecialWordMissingError) Error() string {
	return fmt.Sprintf("vocab: special word %q is missing from the vocabulary", e.Word)
}

// MissingUnknown applies cfg.UnknownMissing for an absent unknown token.
func MissingUnknown(cfg Config) error {
	switch cfg.UnknownMissing {
	case Silent:
		return nil
	case Complain:
		cfg.logger().Warn("unknown word token missing; out-of-vocabulary words will score as unknown without an explicit entry", "word", core.UnknownWord)
		return nil
	default:
		return &SpecialWordMissingError{Word: core.UnknownWord}
	}
}

// MissingSentenceMarker applies cfg.SentenceMarkerMissing for an absent
// sentence marker word.
func MissingSentenceMarker(cfg Config, word string) error {
	switch cfg.SentenceMarkerMissing {
	case Silent:
		return nil
	case Complain:
		cfg.logger().Warn("sentence marker missing from vocabulary", "word", word)
		return nil
	default:
		return &SpecialWordMissingError{Word: word}
	}
}

// CheckSpecials validates the reserved tokens of a finalized vocabulary
// against the configured policies. A sentence marker that resolves to the
// unknown identifier counts as missing.
func CheckSpecials(cfg Config, v Vocabulary) error {
	if !v.SawUnk() {
		if err := MissingUnknown(cfg); err != nil {
			return err
		}
	}
	if v.BeginSentence() == core.UnknownWordID {
		if err := MissingSentenceMarker(cfg, core.BeginSentenceWord); err != nil {
			return err
		}
	}
	if v.EndSentence() == core.UnknownWordID {
		if err := MissingSentenceMarker(cfg, core.EndSentenceWord); err != nil {
			return err
		}
	}
	return nil
}
