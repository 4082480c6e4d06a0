package symptoms

import (
	"fmt"
	"strings"
)

// Lookup finds a catalog symptom by name, ignoring case and surrounding space.
func (c Catalog) Lookup(name string) (Definition, bool) {
	name = strings.TrimSpace(name)
	for _, d := range c {
		if strings.EqualFold(d.Name, name) {
			return d, true
		}
	}
	return Definition{}, false
}

// ParseSelections turns "Name=Severity" pairs into a selection map keyed by
// the catalog's spelling of each name. Symptoms not mentioned are skipped.
func ParseSelections(catalog Catalog, pairs []string) (map[string]Severity, error) {
	out := make(map[string]Severity, len(pairs))
	for _, p := range pairs {
		name, level, ok := strings.Cut(p, "=")
		if !ok {
			return nil, &ValidationError{Reason: fmt.Sprintf("expected Name=Severity, got %q", p)}
		}
		d, ok := catalog.Lookup(name)
		if !ok {
			return nil, &ValidationError{Reason: fmt.Sprintf("unknown symptom %q", strings.TrimSpace(name))}
		}
		sev, err := ParseSeverity(level)
		if err != nil {
			return nil, &ValidationError{Reason: err.Error()}
		}
		out[d.Name] = sev
	}
	return out, nil
}
