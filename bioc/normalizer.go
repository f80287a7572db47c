// Package bioc normalizes BioC passage JSON (as served by the NCBI BioNLP
// pmcoa service) into the section model.
package bioc

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/fwojciec/pmcfetch"
)

// canonicalSections maps BioC section_type labels to canonical section
// names. Labels not listed here fall back to "Other".
var canonicalSections = map[string]string{
	"TITLE":    "Title",
	"ABSTRACT": "Abstract",
	"INTRO":    "Introduction",
	"METHODS":  "Methods",
	"RESULTS":  "Results",
	"DISCUSS":  "Discussion",
	"CONCL":    "Conclusions",
	"CASE":     "Case Report",
	"SUPPL":    "Supplementary Material",
	"FIG":      "Figures",
	"TABLE":    "Tables",
	"APPENDIX": "Appendix",
	"ABBR":     "Abbreviations",
	"ACK_FUND": "Acknowledgments",
	"AUTH_CONT": "Author Contributions",
	"COMP_INT": "Competing Interests",
	"KEYWORD":  "Keywords",
}

// Reference passages never enter the model.
var referenceSections = map[string]struct{}{
	"REF":          {},
	"REFERENCE":    {},
	"REFERENCES":   {},
	"BIBLIOGRAPHY": {},
}

type collection struct {
	Documents []struct {
		Passages []passage `json:"passages"`
	} `json:"documents"`
}

type passage struct {
	Infons map[string]string `json:"infons"`
	Text   string            `json:"text"`
}

// Normalize converts a BioC JSON payload into a section model. The payload
// is either a single collection object or a one-element array of
// collections. Passages are grouped under canonical section names in
// arrival order; reference passages and empty passages are dropped.
// An empty passage list yields an empty model, not an error.
func Normalize(data []byte) (*pmcfetch.SectionModel, error) {
	coll, err := decode(data)
	if err != nil {
		return nil, err
	}

	model := pmcfetch.NewSectionModel()
	for _, doc := range coll.Documents {
		for _, p := range doc.Passages {
			text := strings.TrimSpace(p.Text)
			if text == "" {
				continue
			}

			label := strings.ToUpper(strings.TrimSpace(p.Infons["section_type"]))
			if _, isRef := referenceSections[label]; isRef {
				continue
			}

			name, ok := canonicalSections[label]
			if !ok {
				name = "Other"
			}
			model.Add(name, text)
		}
	}
	return model, nil
}

// decode parses the payload, unwrapping the one-element array form the
// service sometimes returns.
func decode(data []byte) (*collection, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var colls []collection
		if err := json.Unmarshal(trimmed, &colls); err != nil {
			return nil, pmcfetch.Errorf(pmcfetch.EPARSE, "not valid BioC JSON: %v", err)
		}
		if len(colls) == 0 {
			return &collection{}, nil
		}
		return &colls[0], nil
	}

	var coll collection
	if err := json.Unmarshal(trimmed, &coll); err != nil {
		return nil, pmcfetch.Errorf(pmcfetch.EPARSE, "not valid BioC JSON: %v", err)
	}
	return &coll, nil
}
