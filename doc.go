// Package vocabgo builds, persists, and queries the vocabulary index of an
// n-gram language model: the mapping from word strings to the dense integer
// identifiers the rest of the model is keyed by.
//
// Two representations are available. The sorted vocabulary stores 8 bytes
// per word and resolves lookups with interpolation search; the probing
// vocabulary trades roughly twice the memory for expected constant-time
// lookups. Identifier 0 is always the unknown word.
//
// A vocabulary is built once with a Builder and then frozen:
//
//	b, _ := vocabgo.NewBuilder(3)
//	b.Insert("<s>", vocabgo.ProbBackoff{})
//	b.Insert("hello", vocabgo.ProbBackoff{Prob: -1.2})
//	b.Insert("</s>", vocabgo.ProbBackoff{})
//	model, err := b.Finish()
//
// Models serialize to a single checksummed file that can live in any
// blobstore.BlobStore. Loading from a local store memory-maps the file and
// binds the lookup structures directly onto the mapped pages; loading from a
// remote store streams it, optionally through a block cache.
//
//	_ = model.Save(ctx, store, "models/v1.vocab")
//	m, err := vocabgo.LoadModel(ctx, store, "models/v1.vocab")
//	id := m.Index("hello")
package vocabgo
