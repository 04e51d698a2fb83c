package vocab

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/vocabgo/core"
)

// Restriction is a set of permitted word identifiers, used to constrain
// decoding or scoring to a sub-vocabulary. The unknown identifier is always
// permitted so out-of-vocabulary words keep a well-defined path.
type Restriction struct {
	allowed *roaring.Bitmap
}

// NewRestriction builds a restriction from the identifiers v assigns to
// words. Words that are out of vocabulary contribute nothing beyond the
// always-permitted unknown identifier.
func NewRestriction(v Vocabulary, words []string) *Restriction {
	allowed := roaring.New()
	allowed.Add(uint32(core.UnknownWordID))
	for _, w := range words {
		if id := v.Index(w); id != core.UnknownWordID {
			allowed.Add(uint32(id))
		}
	}
	return &Restriction{allowed: allowed}
}

// Allows reports whether id is in the permitted set.
func (r *Restriction) Allows(id core.WordIndex) bool {
	return r.allowed.Contains(uint32(id))
}

// Cardinality returns the number of permitted identifiers, including the
// unknown identifier.
func (r *Restriction) Cardinality() uint64 {
	return r.allowed.GetCardinality()
}

// Union widens the restriction to also permit everything other permits.
func (r *Restriction) Union(other *Restriction) {
	r.allowed.Or(other.allowed)
}

// Intersect narrows the restriction to identifiers both permit. The unknown
// identifier survives because every restriction contains it.
func (r *Restriction) Intersect(other *Restriction) {
	r.allowed.And(other.allowed)
}
