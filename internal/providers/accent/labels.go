package accent

// displayLabels maps the classifier's native class names to user-facing
// labels. "southatlandtic" is misspelled in the model's own class list, so
// the key must stay misspelled too.
var displayLabels = map[string]string{
	"us":             "American",
	"england":        "British",
	"australia":      "Australian",
	"indian":         "Indian",
	"canada":         "Canadian",
	"bermuda":        "Bermudian",
	"scotland":       "Scottish",
	"african":        "African",
	"ireland":        "Irish",
	"newzealand":     "New Zealand",
	"wales":          "Welsh",
	"malaysia":       "Malaysian",
	"philippines":    "Filipino",
	"singapore":      "Singaporean",
	"hongkong":       "Hong Kong",
	"southatlandtic": "South Atlantic",
}

// DisplayLabel resolves a raw model class name to its display label.
func DisplayLabel(code string) (string, bool) {
	label, ok := displayLabels[code]
	return label, ok
}
