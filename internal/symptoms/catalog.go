package symptoms

// Definition is one tracked symptom type.
type Definition struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Catalog is the ordered list of tracked symptoms. Its order fixes the order of
// tokens in an entry's display string and of series in a chart.
type Catalog []Definition

var DefaultCatalog = Catalog{
	{Name: "Shortness of Breath", Description: "Difficulty in breathing, often worsened by physical activity."},
	{Name: "Chronic Cough", Description: "Persistent cough that produces mucus, often more noticeable in the morning."},
	{Name: "Wheezing", Description: "A high-pitched whistling sound made during breathing, often a sign of airway obstruction."},
	{Name: "Fatigue", Description: "A feeling of tiredness and exhaustion that can result from decreased oxygen levels."},
	{Name: "Sputum Production", Description: "Excess mucus production in the lungs, varying in color and consistency."},
	{Name: "Chest Tightness", Description: "A feeling of pressure or constriction in the chest, often associated with difficulty in breathing."},
}

func (c Catalog) Names() []string {
	names := make([]string, len(c))
	for i, d := range c {
		names[i] = d.Name
	}
	return names
}

func (c Catalog) Contains(name string) bool {
	return c.index(name) >= 0
}

func (c Catalog) index(name string) int {
	for i, d := range c {
		if d.Name == name {
			return i
		}
	}
	return -1
}
