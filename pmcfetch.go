// Package pmcfetch fetches scientific-article metadata and full text from
// the Europe PMC and NCBI APIs, normalizes article markup into a uniform
// section-keyed text model, and writes one JSON record per article.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency or concern (e.g., http/, jats/, sqlite/).
package pmcfetch
