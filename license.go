package pmcfetch

import "strings"

// Licenses that do not permit derivative works. Records carrying one of
// these are excluded when filtering a corpus for reuse.
var noDerivativeLicenses = map[string]struct{}{
	"cc":          {},
	"cc by-nd":    {},
	"cc by-nc-nd": {},
}

// NormalizeLicense lowercases and trims a raw license tag.
func NormalizeLicense(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// LicenseAllowed reports whether a record with the given license tag may be
// kept when filtering for derivative use. Records with no license tag are
// kept; only known no-derivative tags are excluded.
func LicenseAllowed(license string) bool {
	if license == "" {
		return true
	}
	_, blocked := noDerivativeLicenses[NormalizeLicense(license)]
	return !blocked
}
