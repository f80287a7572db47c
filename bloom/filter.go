// Package bloom provides article-ID deduplication using Bloom filters.
// Europe PMC cursor pagination can return the same record on adjacent
// pages; the filter keeps each article from being written twice without
// holding every seen identifier in memory.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter wraps a Bloom filter for article identifier deduplication.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected articles
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add marks an article identifier as seen.
func (f *Filter) Add(id string) {
	f.f.AddString(id)
}

// Seen returns true if the identifier might have been seen before.
// False positives are possible; false negatives are not. A false positive
// skips one article, which is acceptable for deduplication.
func (f *Filter) Seen(id string) bool {
	return f.f.TestString(id)
}

// EstimatedCount returns the approximate number of identifiers added.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
