package report

import (
	"fmt"
	"sort"
	"strings"

	"copdcare/internal/symptoms"
)

const (
	LevelDetailed   = "detailed"
	LevelCompressed = "compressed"
	LevelUltra      = "ultra"
)

// Levels in decreasing order of detail.
var Levels = []string{LevelDetailed, LevelCompressed, LevelUltra}

type Summarizer struct {
	catalog symptoms.Catalog
}

func NewSummarizer(catalog symptoms.Catalog) *Summarizer {
	return &Summarizer{catalog: catalog}
}

func (s *Summarizer) Summarize(entries []symptoms.Entry) map[string]string {
	sorted := make([]symptoms.Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date > sorted[j].Date })

	stats := s.collect(sorted)
	return map[string]string{
		LevelDetailed:   s.buildDetailed(sorted, stats),
		LevelCompressed: s.buildCompressed(sorted, stats),
		LevelUltra:      s.buildUltra(sorted, stats),
	}
}

// BestFit picks the most detailed summary that fits in budget characters,
// falling back to the ultra level.
func (s *Summarizer) BestFit(summaries map[string]string, budget int) (string, string) {
	for _, lvl := range Levels {
		text := summaries[lvl]
		if len(text) <= budget {
			return lvl, text
		}
	}
	return LevelUltra, summaries[LevelUltra]
}

type symptomStats struct {
	name   string
	days   int
	worst  symptoms.Severity
	latest string
	trend  string
}

func (s *Summarizer) collect(sorted []symptoms.Entry) []symptomStats {
	stats := make([]symptomStats, len(s.catalog))
	for i, d := range s.catalog {
		st := symptomStats{name: d.Name}
		var ordinals []int
		for _, e := range sorted {
			sev := e.Severity(d.Name)
			ordinals = append(ordinals, int(sev))
			if sev == symptoms.None {
				continue
			}
			st.days++
			if st.latest == "" {
				st.latest = e.Date
			}
			if sev > st.worst {
				st.worst = sev
			}
		}
		st.trend = trend(ordinals)
		stats[i] = st
	}
	return stats
}

// trend compares the mean ordinal of the newer half of the log against the
// older half. ordinals are newest first.
func trend(ordinals []int) string {
	if len(ordinals) < 2 {
		return "steady"
	}
	half := len(ordinals) / 2
	recent := mean(ordinals[:half])
	older := mean(ordinals[len(ordinals)-half:])
	switch {
	case recent-older >= 0.5:
		return "worsening"
	case older-recent >= 0.5:
		return "improving"
	default:
		return "steady"
	}
}

func mean(xs []int) float64 {
	sum := 0
	for _, x := range xs {
		sum += x
	}
	return float64(sum) / float64(len(xs))
}

func (s *Summarizer) buildDetailed(sorted []symptoms.Entry, stats []symptomStats) string {
	var sb strings.Builder

	sb.WriteString("### Symptom History\n")
	if len(sorted) == 0 {
		sb.WriteString("- no entries recorded\n")
	}
	for _, e := range sorted {
		sb.WriteString(fmt.Sprintf("- %s: %s\n", e.Date, e.Symptoms()))
	}
	sb.WriteString("\n")

	sb.WriteString("### By Symptom\n")
	for _, st := range stats {
		if st.days == 0 {
			sb.WriteString(fmt.Sprintf("- %s: not reported\n", st.name))
			continue
		}
		sb.WriteString(fmt.Sprintf("- %s: %d of %d days, worst %s, last on %s, %s\n",
			st.name, st.days, len(sorted), st.worst, st.latest, st.trend))
	}
	sb.WriteString("\n")
	return sb.String()
}

func (s *Summarizer) buildCompressed(sorted []symptoms.Entry, stats []symptomStats) string {
	var sb strings.Builder
	if len(sorted) == 0 {
		return "**Entries:** none\n"
	}

	sb.WriteString(fmt.Sprintf("**Entries:** %d (%s to %s)\n\n", len(sorted), sorted[len(sorted)-1].Date, sorted[0].Date))
	sb.WriteString(fmt.Sprintf("**Latest (%s):** %s\n\n", sorted[0].Date, sorted[0].Symptoms()))

	var parts []string
	for _, st := range stats {
		if st.days > 0 {
			parts = append(parts, fmt.Sprintf("%s %dd/%s/%s", st.name, st.days, st.worst, st.trend))
		}
	}
	sb.WriteString("**Symptoms:** ")
	sb.WriteString(strings.Join(parts, "; "))
	sb.WriteString("\n")
	return sb.String()
}

func (s *Summarizer) buildUltra(sorted []symptoms.Entry, stats []symptomStats) string {
	if len(sorted) == 0 {
		return "No symptom entries."
	}
	worst := symptomStats{}
	for _, st := range stats {
		if st.worst > worst.worst || (st.worst == worst.worst && st.days > worst.days) {
			worst = st
		}
	}
	text := fmt.Sprintf("%d entries, %s..%s", len(sorted), sorted[len(sorted)-1].Date, sorted[0].Date)
	if worst.days > 0 {
		text += fmt.Sprintf("; worst %s (%s)", worst.name, worst.worst)
	}
	return text + "."
}
