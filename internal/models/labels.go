package models

// AccentLabels is the closed set of display labels the classifier can
// produce, in the order the underlying model enumerates its classes.
var AccentLabels = []string{
	"American",
	"British",
	"Australian",
	"Indian",
	"Canadian",
	"Bermudian",
	"Scottish",
	"African",
	"Irish",
	"New Zealand",
	"Welsh",
	"Malaysian",
	"Filipino",
	"Singaporean",
	"Hong Kong",
	"South Atlantic",
}

// IsAccentLabel reports whether label is one of the canonical display labels.
func IsAccentLabel(label string) bool {
	for _, l := range AccentLabels {
		if l == label {
			return true
		}
	}
	return false
}
