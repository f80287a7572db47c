package pmcfetch

import "sort"

// LicenseCount is one entry of a license distribution.
type LicenseCount struct {
	License string
	Count   int
}

// Stats accumulates aggregate statistics over a corpus of articles.
type Stats struct {
	Total        int
	WithAbstract int
	WithText     int

	licenses map[string]int
}

// NewStats returns an empty Stats accumulator.
func NewStats() *Stats {
	return &Stats{licenses: make(map[string]int)}
}

// Observe adds one article to the statistics.
func (s *Stats) Observe(a *Article) {
	s.Total++
	if a.Abstract != "" {
		s.WithAbstract++
	}
	if a.Text != nil {
		s.WithText++
	}
	s.AddLicense(a.License, 1)
}

// AddLicense adds n occurrences of a license tag. Used when statistics
// come pre-aggregated from a catalog query.
func (s *Stats) AddLicense(license string, n int) {
	if s.licenses == nil {
		s.licenses = make(map[string]int)
	}
	s.licenses[license] += n
}

// Licenses returns the license distribution ordered by descending count,
// then by license tag for a stable report.
func (s *Stats) Licenses() []LicenseCount {
	out := make([]LicenseCount, 0, len(s.licenses))
	for license, count := range s.licenses {
		out = append(out, LicenseCount{License: license, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].License < out[j].License
	})
	return out
}

// PercentWithAbstract returns the share of articles with an abstract, 0-100.
func (s *Stats) PercentWithAbstract() float64 {
	return s.percent(s.WithAbstract)
}

// PercentWithText returns the share of articles with full text, 0-100.
func (s *Stats) PercentWithText() float64 {
	return s.percent(s.WithText)
}

func (s *Stats) percent(n int) float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(n) / float64(s.Total) * 100
}
