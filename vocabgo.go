package vocabgo

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/hupe1980/vocabgo/blobstore"
	"github.com/hupe1980/vocabgo/core"
	"github.com/hupe1980/vocabgo/internal/cache"
	"github.com/hupe1980/vocabgo/internal/conv"
	"github.com/hupe1980/vocabgo/internal/mem"
	"github.com/hupe1980/vocabgo/modelfile"
	"github.com/hupe1980/vocabgo/resource"
	"github.com/hupe1980/vocabgo/vocab"
)

// mutableVocabulary is the build/load side shared by both representations.
type mutableVocabulary interface {
	vocab.Vocabulary

	SetupMemory(region []byte, entries int, cfg vocab.Config) error
	Insert(word string) core.WordIndex
	FinishedLoading(reorder []core.ProbBackoff)
	ConfigureEnumerate(to vocab.EnumerateVocab, maxEntries int)
	LoadedBinary(r io.Reader, to vocab.EnumerateVocab) error
}

var (
	_ mutableVocabulary = (*vocab.SortedVocabulary)(nil)
	_ mutableVocabulary = (*vocab.ProbingVocabulary)(nil)
)

// Builder accumulates words and their unigram records, then freezes them into
// a Model. A Builder is single-use and not safe for concurrent use.
type Builder struct {
	opts    *options
	vocab   mutableVocabulary
	words   *vocab.WriteWordsWrapper
	region  []byte
	charged int64

	entries   int
	inserted  int
	records   []core.ProbBackoff
	unkRecord core.ProbBackoff
	finished  bool
}

// NewBuilder creates a builder sized for expectedEntries words, not counting
// the unknown token. The vocabulary region is allocated up front and charged
// against the resource controller, if one is configured.
func NewBuilder(expectedEntries int, opts ...Option) (*Builder, error) {
	if expectedEntries <= 0 {
		return nil, fmt.Errorf("vocabgo: expected entries must be positive, got %d", expectedEntries)
	}

	o := applyOptions(opts)

	var (
		v    mutableVocabulary
		size int
	)
	switch o.vocabType {
	case modelfile.VocabProbing:
		v = vocab.NewProbingVocabulary()
		size = vocab.ProbingSize(expectedEntries, o.vocabConfig)
	default:
		v = vocab.NewSortedVocabulary()
		size = vocab.SortedSize(expectedEntries, o.vocabConfig)
	}

	if !o.rc.TryAcquireMemory(int64(size)) {
		return nil, ErrMemoryBudget
	}

	region := mem.AllocAligned(size)
	if err := v.SetupMemory(region, expectedEntries, o.vocabConfig); err != nil {
		o.rc.ReleaseMemory(int64(size))
		return nil, err
	}

	words := vocab.NewWriteWordsWrapper(o.enumerate)
	v.ConfigureEnumerate(words, expectedEntries)

	return &Builder{
		opts:    o,
		vocab:   v,
		words:   words,
		region:  region,
		charged: int64(size),
		entries: expectedEntries,
		records: make([]core.ProbBackoff, 0, expectedEntries),
	}, nil
}

// Insert adds a word with its unigram record and returns its identifier. For
// the sorted representation the identifier is provisional until Finish; for
// the probing representation it is final immediately. Inserting the unknown
// token records its presence and its record without consuming capacity.
func (b *Builder) Insert(word string, record core.ProbBackoff) (core.WordIndex, error) {
	if b.finished {
		return core.UnknownWordID, ErrFinished
	}
	if word == core.UnknownWord {
		id := b.vocab.Insert(word)
		b.unkRecord = record
		return id, nil
	}
	if b.inserted == b.entries {
		return core.UnknownWordID, ErrTooManyEntries
	}

	id := b.vocab.Insert(word)
	b.records = append(b.records, record)
	b.inserted++

	return id, nil
}

// Finish freezes the vocabulary, validates the special tokens against the
// configured policies, and returns the Model. The builder must not be used
// afterwards. The returned model owns the vocabulary region until Close.
func (b *Builder) Finish() (*Model, error) {
	if b.finished {
		return nil, ErrFinished
	}
	b.finished = true

	b.vocab.FinishedLoading(b.records)

	if err := vocab.CheckSpecials(b.opts.vocabConfig, b.vocab); err != nil {
		b.opts.rc.ReleaseMemory(b.charged)
		return nil, err
	}

	// Slot 0 belongs to the unknown word; the remaining records were permuted
	// into identifier order by FinishedLoading.
	records := make([]core.ProbBackoff, b.inserted+1)
	records[0] = b.unkRecord
	copy(records[1:], b.records)

	m := &Model{
		vocab:       b.vocab,
		vocabType:   b.opts.vocabType,
		region:      b.region,
		words:       b.words.Buffer(),
		records:     records,
		compression: b.opts.compression,
		logger:      b.opts.logger,
		rc:          b.opts.rc,
		charged:     b.charged,
	}

	switch b.opts.vocabType {
	case modelfile.VocabProbing:
		m.entryCount = uint64(b.entries)
		m.multiplier = b.opts.vocabConfig.ProbingMultiplier
	default:
		// The sorted region is a dense prefix, so it shrinks to the words
		// actually inserted.
		m.entryCount = uint64(b.inserted)
		m.region = b.region[:vocab.SortedSize(b.inserted, b.opts.vocabConfig)]
	}

	b.opts.logger.Info("vocabulary finalized",
		"entries", b.inserted,
		"type", uint8(b.opts.vocabType),
		"saw_unk", b.vocab.SawUnk(),
	)

	return m, nil
}

// Model is a frozen, queryable vocabulary.
//
// Models built by a Builder own their region in heap memory; models loaded
// from a mappable store bind directly onto the mapped file. Either way the
// region stays valid until Close, and no method may be called afterwards.
type Model struct {
	vocab       vocab.Vocabulary
	vocabType   modelfile.VocabType
	entryCount  uint64
	multiplier  float64
	region      []byte
	words       []byte
	records     []core.ProbBackoff
	compression modelfile.CompressionType
	logger      *Logger
	rc          *resource.Controller
	charged     int64
	blob        blobstore.Blob
	closed      bool
}

// Index returns the identifier for word, core.UnknownWordID when the word is
// out of vocabulary. Safe for concurrent use.
func (m *Model) Index(word string) core.WordIndex { return m.vocab.Index(word) }

// Bound returns an exclusive upper bound on assigned identifiers. For a
// probing model loaded without an enumeration sink this degrades to
// core.MaxWordIndex.
func (m *Model) Bound() core.WordIndex { return m.vocab.Bound() }

// SawUnk reports whether the unknown word token was explicitly present.
func (m *Model) SawUnk() bool { return m.vocab.SawUnk() }

// BeginSentence returns the identifier of <s>, core.UnknownWordID if absent.
func (m *Model) BeginSentence() core.WordIndex { return m.vocab.BeginSentence() }

// EndSentence returns the identifier of </s>, core.UnknownWordID if absent.
func (m *Model) EndSentence() core.WordIndex { return m.vocab.EndSentence() }

// EntryCount returns the entry count recorded for the model file: the number
// of words for the sorted representation, the table capacity for probing.
func (m *Model) EntryCount() uint64 { return m.entryCount }

// Records returns the unigram records indexed by final identifier, slot 0
// holding the unknown word's record. Nil for models loaded from a file, which
// carries no records.
func (m *Model) Records() []core.ProbBackoff { return m.records }

// Restrict builds a restriction permitting only the given words plus the
// unknown identifier.
func (m *Model) Restrict(words []string) *vocab.Restriction {
	return vocab.NewRestriction(m.vocab, words)
}

// Save serializes the model to store under name. The words section is
// compressed with the configured algorithm, and the write is throttled by the
// resource controller's IO limit.
func (m *Model) Save(ctx context.Context, store blobstore.BlobStore, name string) error {
	if m.closed {
		return ErrClosed
	}

	snap := modelfile.Snapshot{
		VocabType:         m.vocabType,
		EntryCount:        m.entryCount,
		ProbingMultiplier: m.multiplier,
		Region:            m.region,
		Words:             m.words,
	}

	w, err := store.Create(ctx, name)
	if err != nil {
		m.logger.LogSave(ctx, name, 0, err)
		return err
	}

	written, err := snap.Write(resource.NewRateLimitedWriter(ctx, w, m.rc), m.compression)
	if err != nil {
		w.Close()
		m.logger.LogSave(ctx, name, written, err)
		return err
	}

	err = w.Close()
	m.logger.LogSave(ctx, name, written, err)
	return err
}

// Close releases the model's memory budget and, for mapped models, the
// underlying mapping. Safe to call more than once.
func (m *Model) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true

	m.rc.ReleaseMemory(m.charged)
	m.charged = 0

	if m.blob != nil {
		err := m.blob.Close()
		m.blob = nil
		return err
	}
	return nil
}

// LoadModel opens name from store and binds a Model onto it.
//
// When the store's blobs support memory mapping the vocabulary region is used
// in place without copying and the mapping stays open until Model.Close.
// Otherwise the file is streamed into memory, throttled by the resource
// controller's IO limit and charged against its memory budget. A block cache
// configured with WithBlockCache wraps the store before reading.
func LoadModel(ctx context.Context, store blobstore.BlobStore, name string, opts ...Option) (*Model, error) {
	o := applyOptions(opts)

	if err := o.rc.AcquireLoad(ctx); err != nil {
		return nil, err
	}
	defer o.rc.ReleaseLoad()

	if o.blockCacheBytes > 0 {
		blockCache := cache.NewShardedLRUBlockCache(o.blockCacheBytes, o.rc)
		// The cache only serves this load; dropping it afterwards returns its
		// blocks to the memory budget.
		defer blockCache.Close()
		store = blobstore.NewCachingStore(store, blockCache, o.blockSize)
	}

	blob, err := store.Open(ctx, name)
	if err != nil {
		o.logger.LogLoad(ctx, name, 0, false, err)
		return nil, err
	}

	m, err := bindModel(ctx, o, blob)
	if err != nil {
		blob.Close()
		o.logger.LogLoad(ctx, name, 0, false, err)
		return nil, err
	}

	size := blob.Size()
	if m.blob == nil {
		// Fully copied into memory; the handle is no longer needed.
		blob.Close()
	}

	o.logger.LogLoad(ctx, name, size, m.blob != nil, nil)
	return m, nil
}

// bindModel reads or maps blob and binds the vocabulary structures onto it.
// On success the returned model has taken ownership of blob if and only if
// m.blob is non-nil; on error the caller closes blob.
func bindModel(ctx context.Context, o *options, blob blobstore.Blob) (*Model, error) {
	var (
		data    []byte
		mapped  bool
		charged int64
	)

	if mb, ok := blob.(blobstore.Mappable); ok {
		if b, err := mb.Bytes(); err == nil {
			data = b
			mapped = true
		}
	}

	release := func() { o.rc.ReleaseMemory(charged) }

	if !mapped {
		size := blob.Size()
		if err := o.rc.AcquireMemory(ctx, size); err != nil {
			return nil, err
		}
		charged = size

		rr, err := blob.ReadRange(ctx, 0, size)
		if err != nil {
			release()
			return nil, err
		}
		data, err = io.ReadAll(resource.NewRateLimitedReader(ctx, rr, o.rc))
		rr.Close()
		if err != nil {
			release()
			return nil, err
		}
	}

	file, err := modelfile.Load(data)
	if err != nil {
		release()
		return nil, err
	}

	region := file.Region
	if !mem.Aligned8(region) {
		if !o.rc.TryAcquireMemory(int64(len(region))) {
			release()
			return nil, ErrMemoryBudget
		}
		charged += int64(len(region))
		aligned := mem.AllocAligned(len(region))
		copy(aligned, region)
		region = aligned
	}

	cfg := o.vocabConfig
	entries, err := conv.Uint64ToInt(file.Header.EntryCount)
	if err != nil {
		release()
		return nil, err
	}

	var v mutableVocabulary
	switch file.Header.VocabType {
	case modelfile.VocabProbing:
		cfg.ProbingMultiplier = file.Header.ProbingMultiplier
		v = vocab.NewProbingVocabulary()
	default:
		v = vocab.NewSortedVocabulary()
	}

	if err := v.SetupMemory(region, entries, cfg); err != nil {
		release()
		return nil, err
	}
	if err := v.LoadedBinary(bytes.NewReader(file.Words), o.enumerate); err != nil {
		release()
		return nil, err
	}
	if err := vocab.CheckSpecials(cfg, v); err != nil {
		release()
		return nil, err
	}

	m := &Model{
		vocab:       v,
		vocabType:   file.Header.VocabType,
		entryCount:  file.Header.EntryCount,
		multiplier:  file.Header.ProbingMultiplier,
		region:      region,
		words:       file.Words,
		compression: o.compression,
		logger:      o.logger,
		rc:          o.rc,
		charged:     charged,
	}
	if mapped {
		// The region, and the words section when stored uncompressed, alias
		// the mapping. Keep it open for the model's lifetime.
		m.blob = blob
	}
	return m, nil
}
