package differ

import (
	"cardgen/internal/decl"
)

// verdict: результат классификации без ссылок на декларации; его и кэшируем.
type verdict struct {
	Status     Status
	Categories []Category
	Confidence Confidence
	Rationale  string
}

// Differ compares the public declarations of two parsed versions of a file.
// It is safe for concurrent use when the cache is.
type Differ struct {
	rules  Rules
	digest string
	cache  *Cache
}

// New builds a Differ; empty rule lists fall back to the defaults and a nil
// cache disables memoization.
func New(rules Rules, cache *Cache) *Differ {
	rules = rules.WithDefaults()
	return &Differ{rules: rules, digest: rules.Digest(), cache: cache}
}

func (df *Differ) Rules() Rules   { return df.rules }
func (df *Differ) Digest() string { return df.digest }

// Diff aligns public declarations by exact name. Either file may be nil
// when it exists on one side only. The result lists declarations in the new
// file's order followed by removed ones in the old file's order.
func (df *Differ) Diff(old, new *decl.File) ([]SignatureDiff, error) {
	var oldPub, newPub []*decl.Decl
	if old != nil {
		oldPub = old.Public()
	}
	if new != nil {
		newPub = new.Public()
	}
	oldByName := make(map[string]*decl.Decl, len(oldPub))
	for _, d := range oldPub {
		oldByName[d.Name] = d
	}

	diffs := make([]SignatureDiff, 0, max(len(oldPub), len(newPub)))
	matched := make(map[string]bool, len(newPub))
	for _, nd := range newPub {
		od := oldByName[nd.Name]
		if od != nil {
			matched[nd.Name] = true
		}
		d, err := df.Compare(od, nd, old, new)
		if err != nil {
			return nil, err
		}
		diffs = append(diffs, d)
	}
	for _, od := range oldPub {
		if matched[od.Name] {
			continue
		}
		d, err := df.Compare(od, nil, old, new)
		if err != nil {
			return nil, err
		}
		diffs = append(diffs, d)
	}
	return diffs, nil
}

// Compare classifies one declaration pair; files resolve named error sets
// and may be nil.
func (df *Differ) Compare(old, new *decl.Decl, oldFile, newFile *decl.File) (SignatureDiff, error) {
	d, err := NewSignatureDiff(old, new)
	if err != nil {
		return SignatureDiff{}, err
	}
	switch {
	case old == nil:
		d.apply(verdict{
			Status:     StatusAdded,
			Categories: []Category{APIStructureChanged},
			Confidence: High,
			Rationale:  "new public " + new.Kind.String() + " `" + new.Name + "`",
		})
		return d, nil
	case new == nil:
		d.apply(verdict{
			Status:     StatusRemoved,
			Categories: []Category{APIStructureChanged},
			Confidence: High,
			Rationale:  "public " + old.Kind.String() + " `" + old.Name + "` removed",
		})
		return d, nil
	}

	oldSide, newSide := side{d: old, file: oldFile}, side{d: new, file: newFile}
	var key Key
	if df.cache != nil {
		key = df.key(oldSide, newSide)
		if v, ok := df.cache.get(key); ok {
			d.apply(v)
			return d, nil
		}
	}
	v := df.rules.classify(oldSide, newSide)
	if df.cache != nil {
		df.cache.put(key, v)
	}
	d.apply(v)
	return d, nil
}
