// internal/analysis/config.go
package analysis

// Config carries the business rules applied by every aggregation: the
// exporter and charge-category block-lists, the outlier threshold, the
// top-N size for the variety view, and the named category groups used by
// the charge analyzer ("Repacking" spans two raw categories).
type Config struct {
	ExcludedExporters  []string
	ExcludedCategories []string
	OutlierStdDevs     float64
	TopVarieties       int
	CategoryGroups     map[string][]string
}

// DefaultConfig returns the production business rules.
func DefaultConfig() Config {
	return Config{
		ExcludedExporters:  []string{"Videxport", "VIDEXPORT", "Del Monte"},
		ExcludedCategories: []string{"GROWER ADVANCES"},
		OutlierStdDevs:     2,
		TopVarieties:       10,
		CategoryGroups: map[string][]string{
			"Repacking": {"PACKING MATERIALS", "REPACKING CHARGES"},
		},
	}
}
