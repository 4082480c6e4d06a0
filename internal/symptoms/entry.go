package symptoms

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Report is one symptom's severity within an entry.
type Report struct {
	Symptom  string
	Severity Severity
}

// Entry is one dated record. Reports are kept in catalog order and only hold
// symptoms that were actually reported.
type Entry struct {
	Date    string
	Reports []Report

	// tokens from stored data that do not match "Name (Severity)"; kept so
	// a foreign log survives a load/save cycle unchanged
	unparsed []string
}

// Severity returns the reported severity for name, or None.
func (e Entry) Severity(name string) Severity {
	for _, r := range e.Reports {
		if r.Symptom == name {
			return r.Severity
		}
	}
	return None
}

// Symptoms renders the display string, e.g. "Wheezing (Mild), Fatigue (Severe)".
func (e Entry) Symptoms() string {
	parts := make([]string, 0, len(e.Reports)+len(e.unparsed))
	for _, r := range e.Reports {
		parts = append(parts, fmt.Sprintf("%s (%s)", r.Symptom, r.Severity))
	}
	parts = append(parts, e.unparsed...)
	return strings.Join(parts, ", ")
}

type storedEntry struct {
	Date     string `json:"date"`
	Symptoms string `json:"symptoms"`
}

func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(storedEntry{Date: e.Date, Symptoms: e.Symptoms()})
}

func (e *Entry) UnmarshalJSON(data []byte) error {
	var s storedEntry
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*e = parseEntry(s.Date, s.Symptoms)
	return nil
}

var tokenRe = regexp.MustCompile(`^(.+?)\s*\((Mild|Moderate|Severe)\)$`)

func parseEntry(date, symptoms string) Entry {
	e := Entry{Date: date}
	for _, tok := range strings.Split(symptoms, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		m := tokenRe.FindStringSubmatch(tok)
		if m == nil {
			e.unparsed = append(e.unparsed, tok)
			continue
		}
		sev, _ := ParseSeverity(m[2])
		e.Reports = append(e.Reports, Report{Symptom: m[1], Severity: sev})
	}
	return e
}

// newEntry builds an entry from selections in catalog order, dropping skips.
func newEntry(date string, catalog Catalog, selections map[string]Severity) Entry {
	e := Entry{Date: date}
	for _, d := range catalog {
		if sev := selections[d.Name]; sev != None {
			e.Reports = append(e.Reports, Report{Symptom: d.Name, Severity: sev})
		}
	}
	return e
}

func (e Entry) clone() Entry {
	e.Reports = append([]Report(nil), e.Reports...)
	e.unparsed = append([]string(nil), e.unparsed...)
	return e
}

func cloneEntries(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[i] = e.clone()
	}
	return out
}
