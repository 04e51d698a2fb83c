package vocabgo

import (
	"github.com/hupe1980/vocabgo/modelfile"
	"github.com/hupe1980/vocabgo/resource"
	"github.com/hupe1980/vocabgo/vocab"
)

// options holds the configuration assembled from Option values.
type options struct {
	logger      *Logger
	vocabConfig vocab.Config
	vocabType   modelfile.VocabType
	compression modelfile.CompressionType
	rc          *resource.Controller
	enumerate   vocab.EnumerateVocab

	blockCacheBytes int64
	blockSize       int64
}

// Option configures a Builder or LoadModel call.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		logger:      NoopLogger(),
		vocabConfig: vocab.DefaultConfig(),
		vocabType:   modelfile.VocabSorted,
		compression: modelfile.CompressionZSTD,
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	o.vocabConfig.Logger = o.logger.Logger
	return o
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithSortedVocabulary selects the compact sorted representation: 8 bytes per
// word, lookups by interpolation search, identifiers assigned at Finish.
// This is the default.
func WithSortedVocabulary() Option {
	return func(o *options) {
		o.vocabType = modelfile.VocabSorted
	}
}

// WithProbingVocabulary selects the hashed representation: roughly twice the
// memory for expected constant-time lookups, identifiers final at Insert.
func WithProbingVocabulary() Option {
	return func(o *options) {
		o.vocabType = modelfile.VocabProbing
	}
}

// WithProbingMultiplier sets the space multiple for the probing
// representation. Must be greater than 1. Defaults to 1.5.
func WithProbingMultiplier(multiplier float64) Option {
	return func(o *options) {
		o.vocabConfig.ProbingMultiplier = multiplier
	}
}

// WithUnknownMissing sets the policy applied when the unknown word token was
// never inserted. Defaults to vocab.Complain.
func WithUnknownMissing(policy vocab.MissingPolicy) Option {
	return func(o *options) {
		o.vocabConfig.UnknownMissing = policy
	}
}

// WithSentenceMarkerMissing sets the policy applied when a sentence marker
// does not resolve. Defaults to vocab.ThrowUp.
func WithSentenceMarkerMissing(policy vocab.MissingPolicy) Option {
	return func(o *options) {
		o.vocabConfig.SentenceMarkerMissing = policy
	}
}

// WithWordsCompression sets the compression applied to the words section on
// Save. Defaults to modelfile.CompressionZSTD.
func WithWordsCompression(compression modelfile.CompressionType) Option {
	return func(o *options) {
		o.compression = compression
	}
}

// WithResourceController attaches a resource controller. Vocabulary regions
// charge its memory budget, LoadModel takes a load slot, and Save and
// LoadModel traffic passes through its IO limiter.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.rc = rc
	}
}

// WithEnumerateSink registers a sink that observes every (identifier, word)
// pair, during building or while replaying the words section of a loaded
// model. Loading a probing model without a sink leaves Bound degraded to
// core.MaxWordIndex.
func WithEnumerateSink(to vocab.EnumerateVocab) Option {
	return func(o *options) {
		o.enumerate = to
	}
}

// WithBlockCache wraps the store handed to LoadModel in a block-level read
// cache of at most capacityBytes, useful for remote stores where every read
// is a round trip. blockSize <= 0 selects the 4KB default.
func WithBlockCache(capacityBytes, blockSize int64) Option {
	return func(o *options) {
		o.blockCacheBytes = capacityBytes
		o.blockSize = blockSize
	}
}
