package report

import (
	"fmt"
	"strings"
	"time"

	"copdcare/internal/account"
	"copdcare/internal/symptoms"
)

type GenerateOptions struct {
	Budget  int
	Profile *account.Profile
	Now     time.Time
}

type Generator struct {
	entries    []symptoms.Entry
	summarizer *Summarizer
}

func NewGenerator(entries []symptoms.Entry, catalog symptoms.Catalog) *Generator {
	return &Generator{entries: entries, summarizer: NewSummarizer(catalog)}
}

// Generate renders a report for a doctor visit: a header, then the most
// detailed summary whose body fits in opts.Budget characters.
func (g *Generator) Generate(opts GenerateOptions) (string, string) {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	var sb strings.Builder
	sb.WriteString("# COPD Symptom Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated %s\n", opts.Now.Format("2006-01-02")))
	if p := opts.Profile; p != nil {
		if p.Name != "" {
			sb.WriteString(fmt.Sprintf("Patient: %s\n", p.Name))
		}
		if p.ConditionSeverity != "" {
			sb.WriteString(fmt.Sprintf("COPD severity: %s\n", p.ConditionSeverity))
		}
		if len(p.Medications) > 0 {
			sb.WriteString(fmt.Sprintf("Medications: %s\n", strings.Join(p.Medications, ", ")))
		}
	}
	sb.WriteString("\n")

	summaries := g.summarizer.Summarize(g.entries)
	level, body := g.summarizer.BestFit(summaries, opts.Budget)
	sb.WriteString(body)
	return level, sb.String()
}
