package symptoms

import (
	"context"
	"errors"
	"testing"

	"copdcare/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStorage struct {
	data     map[string]string
	failSet  bool
	failGet  bool
	setCalls int
}

func newMemStorage() *memStorage {
	return &memStorage{data: map[string]string{}}
}

func (m *memStorage) Get(_ context.Context, key string) (string, bool, error) {
	if m.failGet {
		return "", false, errors.New("disk unavailable")
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memStorage) Set(_ context.Context, key, value string) error {
	m.setCalls++
	if m.failSet {
		return errors.New("disk full")
	}
	m.data[key] = value
	return nil
}

func always(Entry) bool { return true }
func never(Entry) bool  { return false }

func loadedLog(t *testing.T, st Storage) *Log {
	t.Helper()
	l := NewLog(st, DefaultCatalog, nil)
	require.NoError(t, l.Load(context.Background()))
	return l
}

func dates(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Date
	}
	return out
}

func TestLoad_MissingKeyIsEmpty(t *testing.T) {
	l := NewLog(newMemStorage(), DefaultCatalog, nil)
	assert.True(t, l.Loading())

	require.NoError(t, l.Load(context.Background()))
	assert.False(t, l.Loading())
	assert.Empty(t, l.Entries())
}

func TestLoad_CorruptDataFailsOpen(t *testing.T) {
	st := newMemStorage()
	st.data[StorageKey] = "{not json"

	l := NewLog(st, DefaultCatalog, nil)
	err := l.Load(context.Background())

	var de *DeserializationError
	require.ErrorAs(t, err, &de)
	assert.False(t, l.Loading())
	assert.Empty(t, l.Entries())

	// still usable afterwards
	_, err = l.Upsert(context.Background(), "2024-01-01", map[string]Severity{"Fatigue": Mild}, nil)
	assert.NoError(t, err)
}

func TestLoad_ReadFailure(t *testing.T) {
	st := newMemStorage()
	st.failGet = true

	l := NewLog(st, DefaultCatalog, nil)
	err := l.Load(context.Background())

	var pe *PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "read", pe.Op)
	assert.False(t, l.Loading())
}

func TestLoad_SortsDescending(t *testing.T) {
	st := newMemStorage()
	st.data[StorageKey] = `[{"date":"2024-01-01","symptoms":"Fatigue (Mild)"},{"date":"2024-03-01","symptoms":"Wheezing (Severe)"}]`

	l := loadedLog(t, st)
	assert.Equal(t, []string{"2024-03-01", "2024-01-01"}, dates(l.Entries()))
}

func TestLoad_DuplicateDatesKeepFirst(t *testing.T) {
	st := newMemStorage()
	st.data[StorageKey] = `[{"date":"2024-01-01","symptoms":"Fatigue (Mild)"},` +
		`{"date":"2024-01-02","symptoms":"Wheezing (Severe)"},` +
		`{"date":"2024-01-01","symptoms":"Fatigue (Severe)"}]`

	l := loadedLog(t, st)
	require.Equal(t, []string{"2024-01-02", "2024-01-01"}, dates(l.Entries()))
	assert.Equal(t, Mild, l.Entries()[1].Severity("Fatigue"))

	chart := DeriveChartSeries(l.Entries(), l.Catalog())
	assert.Equal(t, []string{"2024-01-01", "2024-01-02"}, chart.Labels)
}

func TestUpsert_Scenario(t *testing.T) {
	ctx := context.Background()
	st := newMemStorage()
	l := loadedLog(t, st)

	out, err := l.Upsert(ctx, "2024-03-01", map[string]Severity{"Fatigue": Moderate, "Wheezing": None}, nil)
	require.NoError(t, err)
	assert.Equal(t, Inserted, out)

	entries := l.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "2024-03-01", entries[0].Date)
	assert.Equal(t, "Fatigue (Moderate)", entries[0].Symptoms())

	out, err = l.Upsert(ctx, "2024-02-01", map[string]Severity{"Wheezing": Severe}, nil)
	require.NoError(t, err)
	assert.Equal(t, Inserted, out)
	assert.Equal(t, []string{"2024-03-01", "2024-02-01"}, dates(l.Entries()))

	assert.JSONEq(t,
		`[{"date":"2024-03-01","symptoms":"Fatigue (Moderate)"},{"date":"2024-02-01","symptoms":"Wheezing (Severe)"}]`,
		st.data[StorageKey])
}

func TestUpsert_DistinctDatesSortedDescending(t *testing.T) {
	ctx := context.Background()
	l := loadedLog(t, newMemStorage())

	input := []string{"2024-05-02", "2023-12-31", "2024-05-10", "2024-01-15", "2022-07-04"}
	for _, d := range input {
		_, err := l.Upsert(ctx, d, map[string]Severity{"Chronic Cough": Mild}, nil)
		require.NoError(t, err)
	}

	assert.Equal(t,
		[]string{"2024-05-10", "2024-05-02", "2024-01-15", "2023-12-31", "2022-07-04"},
		dates(l.Entries()))
}

func TestUpsert_CatalogOrderInDisplayString(t *testing.T) {
	l := loadedLog(t, newMemStorage())

	_, err := l.Upsert(context.Background(), "2024-01-01", map[string]Severity{
		"Chest Tightness":     Severe,
		"Shortness of Breath": Mild,
		"Fatigue":             Moderate,
	}, nil)
	require.NoError(t, err)

	assert.Equal(t,
		"Shortness of Breath (Mild), Fatigue (Moderate), Chest Tightness (Severe)",
		l.Entries()[0].Symptoms())
}

func TestUpsert_ConfirmedReplace(t *testing.T) {
	ctx := context.Background()
	l := loadedLog(t, newMemStorage())

	_, err := l.Upsert(ctx, "2024-01-01", map[string]Severity{"Fatigue": Mild, "Wheezing": Severe}, nil)
	require.NoError(t, err)

	var asked Entry
	out, err := l.Upsert(ctx, "2024-01-01", map[string]Severity{"Chronic Cough": Moderate}, func(e Entry) bool {
		asked = e
		return true
	})
	require.NoError(t, err)
	assert.Equal(t, Replaced, out)
	assert.Equal(t, "Wheezing (Severe), Fatigue (Mild)", asked.Symptoms())

	entries := l.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "Chronic Cough (Moderate)", entries[0].Symptoms())
	assert.Equal(t, None, entries[0].Severity("Fatigue"))
}

func TestUpsert_DeclinedReplaceLeavesLogUnchanged(t *testing.T) {
	ctx := context.Background()
	st := newMemStorage()
	l := loadedLog(t, st)

	_, err := l.Upsert(ctx, "2024-01-01", map[string]Severity{"Fatigue": Mild}, nil)
	require.NoError(t, err)
	before := st.data[StorageKey]
	calls := st.setCalls

	for _, confirm := range []ConfirmFunc{never, nil} {
		out, err := l.Upsert(ctx, "2024-01-01", map[string]Severity{"Fatigue": Severe}, confirm)
		require.NoError(t, err)
		assert.Equal(t, Cancelled, out)
	}

	assert.Equal(t, "Fatigue (Mild)", l.Entries()[0].Symptoms())
	assert.Equal(t, before, st.data[StorageKey])
	assert.Equal(t, calls, st.setCalls)
}

func TestUpsert_Validation(t *testing.T) {
	tests := []struct {
		name       string
		date       string
		selections map[string]Severity
		reason     string
	}{
		{"missing date", "", map[string]Severity{"Fatigue": Mild}, "missing date"},
		{"bad date", "03/01/2024", map[string]Severity{"Fatigue": Mild}, "invalid date"},
		{"impossible date", "2024-02-30", map[string]Severity{"Fatigue": Mild}, "invalid date"},
		{"all skipped", "2024-01-01", map[string]Severity{"Fatigue": None, "Wheezing": None}, "no symptoms selected"},
		{"nothing given", "2024-01-01", nil, "no symptoms selected"},
		{"unknown symptom", "2024-01-01", map[string]Severity{"Headache": Mild}, "unknown symptom"},
		{"out of range severity", "2024-01-01", map[string]Severity{"Fatigue": Severity(7)}, "invalid severity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newMemStorage()
			l := loadedLog(t, st)

			_, err := l.Upsert(context.Background(), tt.date, tt.selections, always)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Contains(t, ve.Reason, tt.reason)
			assert.Empty(t, l.Entries())
			assert.Zero(t, st.setCalls)
		})
	}
}

func TestUpsert_PersistFailureKeepsMemory(t *testing.T) {
	ctx := context.Background()
	st := newMemStorage()
	l := loadedLog(t, st)

	_, err := l.Upsert(ctx, "2024-01-01", map[string]Severity{"Fatigue": Mild}, nil)
	require.NoError(t, err)

	st.failSet = true
	_, err = l.Upsert(ctx, "2024-01-02", map[string]Severity{"Fatigue": Severe}, nil)

	var pe *PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "write", pe.Op)
	assert.Equal(t, []string{"2024-01-01"}, dates(l.Entries()))
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	l := loadedLog(t, newMemStorage())

	for _, d := range []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04"} {
		_, err := l.Upsert(ctx, d, map[string]Severity{"Wheezing": Mild}, nil)
		require.NoError(t, err)
	}

	removed, err := l.Delete(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-03", removed.Date)
	assert.Equal(t, []string{"2024-01-04", "2024-01-02", "2024-01-01"}, dates(l.Entries()))

	for _, idx := range []int{3, 10, -1} {
		_, err = l.Delete(ctx, idx)
		var ie *IndexError
		require.ErrorAs(t, err, &ie)
		assert.Equal(t, 3, ie.Len)
	}
	assert.Len(t, l.Entries(), 3)
}

func TestDelete_PersistFailureKeepsMemory(t *testing.T) {
	ctx := context.Background()
	st := newMemStorage()
	l := loadedLog(t, st)

	_, err := l.Upsert(ctx, "2024-01-01", map[string]Severity{"Wheezing": Mild}, nil)
	require.NoError(t, err)

	st.failSet = true
	_, err = l.Delete(ctx, 0)

	var pe *PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.Len(t, l.Entries(), 1)
}

func TestEntriesReturnsCopy(t *testing.T) {
	l := loadedLog(t, newMemStorage())
	_, err := l.Upsert(context.Background(), "2024-01-01", map[string]Severity{"Fatigue": Mild}, nil)
	require.NoError(t, err)

	got := l.Entries()
	got[0].Date = "changed"
	got[0].Reports[0].Severity = Severe
	assert.Equal(t, "2024-01-01", l.Entries()[0].Date)
	assert.Equal(t, Mild, l.Entries()[0].Severity("Fatigue"))

	found, ok := l.Find("2024-01-01")
	require.True(t, ok)
	found.Reports[0].Severity = Severe
	assert.Equal(t, Mild, l.Entries()[0].Severity("Fatigue"))
}

func TestRoundTripThroughSQLite(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	st, err := store.New(dir)
	require.NoError(t, err)

	l := loadedLog(t, st)
	_, err = l.Upsert(ctx, "2024-03-01", map[string]Severity{"Fatigue": Moderate}, nil)
	require.NoError(t, err)
	_, err = l.Upsert(ctx, "2024-02-01", map[string]Severity{"Wheezing": Severe, "Chronic Cough": Mild}, nil)
	require.NoError(t, err)
	_, err = l.Upsert(ctx, "2024-04-01", map[string]Severity{"Chest Tightness": Mild}, nil)
	require.NoError(t, err)
	_, err = l.Upsert(ctx, "2024-03-01", map[string]Severity{"Fatigue": Severe}, always)
	require.NoError(t, err)
	_, err = l.Delete(ctx, 0)
	require.NoError(t, err)

	want := l.Entries()
	require.NoError(t, st.Close())

	st, err = store.New(dir)
	require.NoError(t, err)
	defer st.Close()

	reloaded := loadedLog(t, st)
	assert.Equal(t, want, reloaded.Entries())
}

func TestForeignTokensSurviveReload(t *testing.T) {
	ctx := context.Background()
	st := newMemStorage()
	st.data[StorageKey] = `[{"date":"2024-01-01","symptoms":"Fatigue (Mild), Dizziness (a bit)"}]`

	l := loadedLog(t, st)
	e := l.Entries()[0]
	assert.Equal(t, Mild, e.Severity("Fatigue"))
	assert.Equal(t, "Fatigue (Mild), Dizziness (a bit)", e.Symptoms())

	_, err := l.Upsert(ctx, "2024-01-02", map[string]Severity{"Wheezing": Mild}, nil)
	require.NoError(t, err)
	assert.Contains(t, st.data[StorageKey], "Dizziness (a bit)")
}
