package vocab

import (
	"errors"
	"log/slog"
)

// MissingPolicy decides what happens when a reserved special token is absent
// after loading.
type MissingPolicy uint8

const (
	// ThrowUp surfaces a SpecialWordMissingError to the caller.
	ThrowUp MissingPolicy = iota
	// Complain logs a warning and continues.
	Complain
	// Silent continues without a word.
	Silent
)

// ErrProbingMultiplier is returned when Config.ProbingMultiplier does not
// leave any open-addressing slack.
var ErrProbingMultiplier = errors.New("vocab: probing multiplier must be greater than 1")

// Config carries the sizing knobs and special-token policies shared by both
// vocabulary representations.
type Config struct {
	// ProbingMultiplier is the space multiple for the probing
	// representation: the table allocates multiplier * entries slots.
	// Must be > 1; time/space tradeoff.
	ProbingMultiplier float64

	// UnknownMissing is applied when the unknown word token was never seen.
	UnknownMissing MissingPolicy

	// SentenceMarkerMissing is applied when <s> or </s> fails to resolve.
	SentenceMarkerMissing MissingPolicy

	// Logger receives Complain-policy warnings. Defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns the defaults: 1.5 probing multiplier, complain about
// a missing unknown token, fail hard on missing sentence markers.
func DefaultConfig() Config {
	return Config{
		ProbingMultiplier:     1.5,
		UnknownMissing:        Complain,
		SentenceMarkerMissing: ThrowUp,
	}
}

func (c Config) validate() error {
	if c.ProbingMultiplier <= 1 {
		return ErrProbingMultiplier
	}
	return nil
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
