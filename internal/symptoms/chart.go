package symptoms

import "sort"

type Series struct {
	Symptom string `json:"symptom"`
	Points  []int  `json:"points"`
}

// ChartData is a multi-line chart: Labels is the date axis and every series
// has one point per label.
type ChartData struct {
	Labels []string `json:"labels"`
	Series []Series `json:"series"`
}

// DeriveChartSeries lays entries out on a left-to-right timeline (oldest date
// first) with one series per catalog symptom. A symptom an entry does not
// report is plotted as 0.
func DeriveChartSeries(entries []Entry, catalog Catalog) ChartData {
	sorted := cloneEntries(entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})

	data := ChartData{
		Labels: make([]string, len(sorted)),
		Series: make([]Series, len(catalog)),
	}
	for i, e := range sorted {
		data.Labels[i] = e.Date
	}
	for s, d := range catalog {
		points := make([]int, len(sorted))
		for i, e := range sorted {
			points[i] = int(e.Severity(d.Name))
		}
		data.Series[s] = Series{Symptom: d.Name, Points: points}
	}
	return data
}
