package scoring

import "nomen/domain/core"

// FundamentalsRecord is the caller-supplied bundle of non-name numeric
// covariates for one entity. A field that was never measured is simply
// absent from the map: absence propagates as reduced confidence, never as
// a false zero.
type FundamentalsRecord map[core.FeatureKey]float64

// Get returns a field and whether it is present.
func (f FundamentalsRecord) Get(key core.FeatureKey) (float64, bool) {
	v, ok := f[key]
	return v, ok
}

// Has reports presence of a field
func (f FundamentalsRecord) Has(key core.FeatureKey) bool {
	_, ok := f[key]
	return ok
}
