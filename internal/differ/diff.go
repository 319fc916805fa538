package differ

import (
	"errors"
	"slices"

	"cardgen/internal/decl"
)

var (
	// ErrSameVersion is returned when both declarations come from one version.
	ErrSameVersion = errors.New("declarations belong to the same version")
	// ErrNoDeclaration is returned when neither side is present.
	ErrNoDeclaration = errors.New("no declaration on either side")
)

// SignatureDiff is the classified comparison of one declaration name.
type SignatureDiff struct {
	Name       string
	Old        *decl.Decl // nil для added
	New        *decl.Decl // nil для removed
	Status     Status
	Categories []Category
	Confidence Confidence
	Rationale  string
}

// NewSignatureDiff pairs two declarations. Either may be nil, not both;
// declarations of the same version are rejected.
func NewSignatureDiff(old, new *decl.Decl) (SignatureDiff, error) {
	switch {
	case old == nil && new == nil:
		return SignatureDiff{}, ErrNoDeclaration
	case old != nil && new != nil && old.Version == new.Version:
		return SignatureDiff{}, ErrSameVersion
	}
	d := SignatureDiff{Old: old, New: new}
	if new != nil {
		d.Name = new.Name
	} else {
		d.Name = old.Name
	}
	return d, nil
}

// Has reports whether the diff carries category c.
func (d SignatureDiff) Has(c Category) bool {
	return slices.Contains(d.Categories, c)
}

// Impact reports whether the diff matters for migration (is not no_change).
func (d SignatureDiff) Impact() bool {
	return d.Status != StatusUnchanged
}

// Decl returns the newest side of the pair.
func (d SignatureDiff) Decl() *decl.Decl {
	if d.New != nil {
		return d.New
	}
	return d.Old
}

func (d SignatureDiff) verdict() verdict {
	return verdict{
		Status:     d.Status,
		Categories: d.Categories,
		Confidence: d.Confidence,
		Rationale:  d.Rationale,
	}
}

func (d *SignatureDiff) apply(v verdict) {
	d.Status = v.Status
	d.Categories = slices.Clone(v.Categories)
	d.Confidence = v.Confidence
	d.Rationale = v.Rationale
}
