package pmcfetch

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SectionModel is the normalized full-text representation of an article:
// an ordered mapping from section name to an ordered list of paragraphs.
// Section order reflects document order (or passage arrival order), not
// alphabetical order. A section never maps to an empty paragraph list.
type SectionModel struct {
	names []string
	paras map[string][]string
}

// NewSectionModel returns an empty SectionModel.
func NewSectionModel() *SectionModel {
	return &SectionModel{paras: make(map[string][]string)}
}

// Add appends a paragraph to the named section, creating the section on
// first use. Empty section names and empty paragraphs are ignored, which
// preserves the invariant that no key maps to an empty list.
func (m *SectionModel) Add(section, paragraph string) {
	if section == "" || paragraph == "" {
		return
	}
	if _, ok := m.paras[section]; !ok {
		m.names = append(m.names, section)
	}
	m.paras[section] = append(m.paras[section], paragraph)
}

// Append appends multiple paragraphs to the named section.
func (m *SectionModel) Append(section string, paragraphs ...string) {
	for _, p := range paragraphs {
		m.Add(section, p)
	}
}

// Sections returns the section names in insertion order.
func (m *SectionModel) Sections() []string {
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}

// Paragraphs returns the paragraphs of the named section in order.
// Returns nil if the section does not exist.
func (m *SectionModel) Paragraphs(section string) []string {
	paras, ok := m.paras[section]
	if !ok {
		return nil
	}
	out := make([]string, len(paras))
	copy(out, paras)
	return out
}

// Has reports whether the named section exists.
func (m *SectionModel) Has(section string) bool {
	_, ok := m.paras[section]
	return ok
}

// Len returns the number of sections.
func (m *SectionModel) Len() int {
	return len(m.names)
}

// ParagraphCount returns the total number of paragraphs across all sections.
func (m *SectionModel) ParagraphCount() int {
	n := 0
	for _, paras := range m.paras {
		n += len(paras)
	}
	return n
}

// MarshalJSON encodes the model as a JSON object with keys in section order.
func (m *SectionModel) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range m.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(m.paras[name])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object into the model, preserving the key
// order of the document.
func (m *SectionModel) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object for section model, got %v", tok)
	}

	m.names = nil
	m.paras = make(map[string][]string)

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected string key in section model, got %v", tok)
		}

		var paras []string
		if err := dec.Decode(&paras); err != nil {
			return err
		}
		m.Append(name, paras...)
	}

	// Consume closing brace.
	if _, err := dec.Token(); err != nil {
		return err
	}

	return nil
}
