// Package labels maps the bilingual (Swedish/English) field labels found
// on station pages onto canonical field names. Lookup is exact-match
// after trimming; an unrecognized label yields no mapping, which callers
// log and skip.
package labels

import "strings"

// factLabels covers the "aside information" region.
var factLabels = map[string]string{
	"Land":                         "land",
	"Country":                      "land",
	"Elektrisk effekt":             "elektriskEffekt",
	"Electric capacity":            "elektriskEffekt",
	"Vattendrag":                   "vattendrag",
	"Watercourse":                  "vattendrag",
	"Fallhöjd":                     "fallhojd",
	"Head":                         "fallhojd",
	"Vattenföring":                 "vattenforing",
	"Flow rate":                    "vattenforing",
	"Turbintyp":                    "turbintyp",
	"Turbine type":                 "turbintyp",
	"Vattenfalls ägarandel":        "agarandel",
	"Vattenfall's ownership share": "agarandel",
	"Status":                       "driftStatus",
}

// waterLabels covers the "water information" region.
var waterLabels = map[string]string{
	"Ovan damm":           "ovanDamm",
	"Above pond":          "ovanDamm",
	"Under damm":          "underDamm",
	"Below pond":          "underDamm",
	"Totalt":              "totalt",
	"Total":               "totalt",
	"Genom turbin":        "genomTurbin",
	"Through turbine":     "genomTurbin",
	"Genom dammluckan":    "genomDammLucka",
	"Through pond hatch":  "genomDammLucka",
	"Senaste uppdatering": "senasteUppdatering",
	"Last update":         "senasteUppdatering",
}

// Fact resolves a fact-region label to its canonical field name.
func Fact(label string) (string, bool) {
	canonical, ok := factLabels[strings.TrimSpace(label)]
	return canonical, ok
}

// Water resolves a water-region label to its canonical field name.
func Water(label string) (string, bool) {
	canonical, ok := waterLabels[strings.TrimSpace(label)]
	return canonical, ok
}

// Operating coerces a raw status text into the driftStatus boolean.
// The text counts as operating when it contains one of the two known
// phrases in either language, unless the phrase is negated ("Not in
// operation", "Ej i drift").
func Operating(text string) bool {
	s := strings.ToLower(strings.TrimSpace(text))
	if strings.Contains(s, "not in operation") || strings.Contains(s, "ej i drift") || strings.Contains(s, "inte i drift") {
		return false
	}
	return strings.Contains(s, "i drift") || strings.Contains(s, "in operation")
}
