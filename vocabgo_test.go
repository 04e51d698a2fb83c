package vocabgo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hupe1980/vocabgo/blobstore"
	"github.com/hupe1980/vocabgo/core"
	"github.com/hupe1980/vocabgo/modelfile"
	"github.com/hupe1980/vocabgo/resource"
	"github.com/hupe1980/vocabgo/vocab"
)

func buildModel(t *testing.T, opts ...Option) *Model {
	t.Helper()

	words := []string{"<s>", "</s>", "the", "quick", "brown", "fox"}
	b, err := NewBuilder(len(words), opts...)
	require.NoError(t, err)

	_, err = b.Insert(core.UnknownWord, core.ProbBackoff{Prob: -5})
	require.NoError(t, err)
	for i, w := range words {
		_, err := b.Insert(w, core.ProbBackoff{Prob: float32(-i)})
		require.NoError(t, err)
	}

	m, err := b.Finish()
	require.NoError(t, err)
	return m
}

func TestBuilder_SortedLookup(t *testing.T) {
	m := buildModel(t)
	defer m.Close()

	require.True(t, m.SawUnk())
	require.Equal(t, core.WordIndex(7), m.Bound())

	require.Equal(t, core.UnknownWordID, m.Index("zebra"))
	require.NotEqual(t, core.UnknownWordID, m.Index("fox"))
	require.Equal(t, m.Index("<s>"), m.BeginSentence())
	require.Equal(t, m.Index("</s>"), m.EndSentence())

	// Every inserted word resolves to a distinct identifier.
	seen := map[core.WordIndex]bool{}
	for _, w := range []string{"<s>", "</s>", "the", "quick", "brown", "fox"} {
		id := m.Index(w)
		require.False(t, seen[id], "duplicate identifier for %q", w)
		seen[id] = true
	}
}

func TestBuilder_RecordsFollowReorder(t *testing.T) {
	m := buildModel(t)
	defer m.Close()

	records := m.Records()
	require.Len(t, records, 7)
	require.Equal(t, float32(-5), records[core.UnknownWordID].Prob)

	// Insertion order was <s>, </s>, the, quick, brown, fox with Prob -0..-5;
	// the records must have followed the identifier reassignment.
	for i, w := range []string{"<s>", "</s>", "the", "quick", "brown", "fox"} {
		require.Equal(t, float32(-i), records[m.Index(w)].Prob, "record for %q", w)
	}
}

func TestBuilder_ProbingIdentifiersStable(t *testing.T) {
	b, err := NewBuilder(3, WithProbingVocabulary(), WithSentenceMarkerMissing(vocab.Silent))
	require.NoError(t, err)

	idA, err := b.Insert("alpha", core.ProbBackoff{})
	require.NoError(t, err)
	idB, err := b.Insert("beta", core.ProbBackoff{})
	require.NoError(t, err)
	require.Equal(t, core.WordIndex(1), idA)
	require.Equal(t, core.WordIndex(2), idB)

	m, err := b.Finish()
	require.NoError(t, err)
	defer m.Close()

	require.Equal(t, idA, m.Index("alpha"))
	require.Equal(t, idB, m.Index("beta"))
	require.Equal(t, core.UnknownWordID, m.BeginSentence())
}

func TestBuilder_Errors(t *testing.T) {
	b, err := NewBuilder(1, WithSentenceMarkerMissing(vocab.Silent))
	require.NoError(t, err)

	_, err = b.Insert("one", core.ProbBackoff{})
	require.NoError(t, err)
	_, err = b.Insert("two", core.ProbBackoff{})
	require.ErrorIs(t, err, ErrTooManyEntries)

	// The unknown token never consumes capacity.
	_, err = b.Insert(core.UnknownWord, core.ProbBackoff{})
	require.NoError(t, err)

	m, err := b.Finish()
	require.NoError(t, err)
	defer m.Close()

	_, err = b.Insert("three", core.ProbBackoff{})
	require.ErrorIs(t, err, ErrFinished)
	_, err = b.Finish()
	require.ErrorIs(t, err, ErrFinished)
}

func TestBuilder_MissingSentenceMarkerFails(t *testing.T) {
	b, err := NewBuilder(1)
	require.NoError(t, err)
	_, err = b.Insert("word", core.ProbBackoff{})
	require.NoError(t, err)

	_, err = b.Finish()
	var missing *vocab.SpecialWordMissingError
	require.ErrorAs(t, err, &missing)
}

func TestBuilder_MemoryBudget(t *testing.T) {
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 16})
	_, err := NewBuilder(1000, WithResourceController(rc))
	require.ErrorIs(t, err, ErrMemoryBudget)
	require.Zero(t, rc.MemoryUsage())
}

func TestBuilder_DeterministicAcrossInstances(t *testing.T) {
	words := []string{"<s>", "</s>", "the", "quick", "brown", "fox"}

	for _, tc := range []struct {
		name string
		opts []Option
	}{
		{"sorted", []Option{WithSortedVocabulary()}},
		{"probing", []Option{WithProbingVocabulary()}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			build := func() *Model {
				b, err := NewBuilder(len(words), tc.opts...)
				require.NoError(t, err)
				for _, w := range words {
					_, err := b.Insert(w, core.ProbBackoff{})
					require.NoError(t, err)
				}
				m, err := b.Finish()
				require.NoError(t, err)
				return m
			}

			a, b := build(), build()
			defer a.Close()
			defer b.Close()

			// The same insertion sequence yields identical identifiers in
			// independent instances.
			require.Equal(t, a.Bound(), b.Bound())
			for _, w := range append(words, "zebra") {
				require.Equal(t, a.Index(w), b.Index(w))
			}
		})
	}
}

func TestModel_Restrict(t *testing.T) {
	m := buildModel(t)
	defer m.Close()

	r := m.Restrict([]string{"fox", "quick", "zebra"})
	require.True(t, r.Allows(core.UnknownWordID))
	require.True(t, r.Allows(m.Index("fox")))
	require.True(t, r.Allows(m.Index("quick")))
	require.False(t, r.Allows(m.Index("brown")))
	require.EqualValues(t, 3, r.Cardinality())
}

func TestSaveLoad_RoundTripMemoryStore(t *testing.T) {
	for _, tc := range []struct {
		name string
		opts []Option
	}{
		{"sorted/zstd", []Option{WithSortedVocabulary()}},
		{"sorted/none", []Option{WithSortedVocabulary(), WithWordsCompression(modelfile.CompressionNone)}},
		{"probing/lz4", []Option{WithProbingVocabulary(), WithWordsCompression(modelfile.CompressionLZ4)}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			store := blobstore.NewMemoryStore()

			m := buildModel(t, tc.opts...)
			require.NoError(t, m.Save(ctx, store, "model.vocab"))

			replayed := map[core.WordIndex]string{}
			sink := vocab.EnumerateFunc(func(id core.WordIndex, w string) {
				replayed[id] = w
			})

			loaded, err := LoadModel(ctx, store, "model.vocab", WithEnumerateSink(sink))
			require.NoError(t, err)
			defer loaded.Close()

			require.Equal(t, core.UnknownWord, replayed[core.UnknownWordID])
			require.Len(t, replayed, 7)
			for id, w := range replayed {
				if id == core.UnknownWordID {
					continue
				}
				require.Equal(t, id, loaded.Index(w))
				require.Equal(t, m.Index(w), loaded.Index(w))
			}

			require.True(t, loaded.SawUnk())
			require.Equal(t, m.BeginSentence(), loaded.BeginSentence())
			require.Equal(t, m.EndSentence(), loaded.EndSentence())
			require.Equal(t, core.UnknownWordID, loaded.Index("zebra"))

			m.Close()
		})
	}
}

func TestSaveLoad_MappedLocalStore(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewLocalStore(t.TempDir())

	m := buildModel(t)
	require.NoError(t, m.Save(ctx, store, "models/v1.vocab"))
	m.Close()

	loaded, err := LoadModel(ctx, store, "models/v1.vocab")
	require.NoError(t, err)

	require.Equal(t, core.WordIndex(7), loaded.Bound())
	require.NotEqual(t, core.UnknownWordID, loaded.Index("fox"))
	require.NotEqual(t, core.UnknownWordID, loaded.BeginSentence())

	// A loaded model can be saved again.
	require.NoError(t, loaded.Save(ctx, store, "models/v2.vocab"))
	require.NoError(t, loaded.Close())
	require.ErrorIs(t, loaded.Save(ctx, store, "models/v3.vocab"), ErrClosed)

	reloaded, err := LoadModel(ctx, store, "models/v2.vocab")
	require.NoError(t, err)
	defer reloaded.Close()
	require.NotEqual(t, core.UnknownWordID, reloaded.Index("quick"))
}

func TestLoadModel_ProbingWithoutSinkDegradesBound(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	m := buildModel(t, WithProbingVocabulary())
	require.NoError(t, m.Save(ctx, store, "model.vocab"))
	m.Close()

	loaded, err := LoadModel(ctx, store, "model.vocab")
	require.NoError(t, err)
	defer loaded.Close()

	require.Equal(t, core.MaxWordIndex, loaded.Bound())
	require.NotEqual(t, core.UnknownWordID, loaded.Index("fox"))
}

func TestLoadModel_BlockCache(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	m := buildModel(t)
	require.NoError(t, m.Save(ctx, store, "model.vocab"))
	m.Close()

	loaded, err := LoadModel(ctx, store, "model.vocab",
		WithBlockCache(1<<20, 512),
	)
	require.NoError(t, err)
	defer loaded.Close()

	require.NotEqual(t, core.UnknownWordID, loaded.Index("brown"))
}

func TestLoadModel_NotFound(t *testing.T) {
	_, err := LoadModel(context.Background(), blobstore.NewMemoryStore(), "missing.vocab")
	require.ErrorIs(t, err, blobstore.ErrNotFound)
}

// opaqueStore hides the Mappable fast path so loads take the streaming route.
type opaqueStore struct{ blobstore.BlobStore }

func (s opaqueStore) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	b, err := s.BlobStore.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	return struct{ blobstore.Blob }{b}, nil
}

func TestLoadModel_ResourceAccounting(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	m := buildModel(t)
	require.NoError(t, m.Save(ctx, store, "model.vocab"))
	m.Close()

	rc := resource.NewController(resource.Config{MemoryLimitBytes: 1 << 20})
	loaded, err := LoadModel(ctx, opaqueStore{store}, "model.vocab", WithResourceController(rc))
	require.NoError(t, err)
	require.Positive(t, rc.MemoryUsage())

	require.NoError(t, loaded.Close())
	require.Zero(t, rc.MemoryUsage())
}
