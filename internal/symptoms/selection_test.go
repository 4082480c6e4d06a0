package symptoms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSelections(t *testing.T) {
	got, err := ParseSelections(DefaultCatalog, []string{
		"fatigue=moderate",
		" Shortness of Breath = Severe",
		"Wheezing=skip",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]Severity{
		"Fatigue":             Moderate,
		"Shortness of Breath": Severe,
		"Wheezing":            None,
	}, got)
}

func TestParseSelections_Errors(t *testing.T) {
	for _, pairs := range [][]string{
		{"Fatigue"},
		{"Headache=Mild"},
		{"Fatigue=awful"},
	} {
		_, err := ParseSelections(DefaultCatalog, pairs)
		var ve *ValidationError
		assert.ErrorAs(t, err, &ve, pairs)
	}
}

func TestCatalog(t *testing.T) {
	assert.Len(t, DefaultCatalog, 6)
	assert.Equal(t, "Shortness of Breath", DefaultCatalog.Names()[0])
	assert.True(t, DefaultCatalog.Contains("Wheezing"))
	assert.False(t, DefaultCatalog.Contains("wheezing"))

	d, ok := DefaultCatalog.Lookup("  chest tightness")
	assert.True(t, ok)
	assert.Equal(t, "Chest Tightness", d.Name)
}
