package constants

import (
	"strings"
)

type Category string

const (
	Controllers   Category = "Controllers"
	Sensors       Category = "Sensors"
	Drives        Category = "Drives"
	Motors        Category = "Motors"
	PowerSupplies Category = "Power Supplies"
	Cables        Category = "Cables"
	Connectors    Category = "Connectors"
	Relays        Category = "Relays"
	Switches      Category = "Switches"
	HMI           Category = "HMI"
	Safety        Category = "Safety"
	Pneumatics    Category = "Pneumatics"
	Enclosures    Category = "Enclosures"
	Other         Category = "Other"
)

var allCategories = []Category{
	Controllers,
	Sensors,
	Drives,
	Motors,
	PowerSupplies,
	Cables,
	Connectors,
	Relays,
	Switches,
	HMI,
	Safety,
	Pneumatics,
	Enclosures,
	Other,
}

// defaultSynonyms maps free-text product-type labels, English and Hebrew,
// to a canonical category. Keys are stored pre-normalized (lowercase,
// single spaces, quote marks removed) to match NormalizeLabel output.
var defaultSynonyms = map[string]Category{
	// Controllers
	"plc":            Controllers,
	"controller":     Controllers,
	"plc controller": Controllers,
	"cpu":            Controllers,
	"i/o module":     Controllers,
	"io module":      Controllers,
	"בקר":            Controllers,
	"בקרים":          Controllers,
	"בקר מתוכנת":     Controllers,
	// Sensors
	"sensor":          Sensors,
	"proximity":       Sensors,
	"photoelectric":   Sensors,
	"encoder":         Sensors,
	"pressure sensor": Sensors,
	"חיישן":           Sensors,
	"חיישנים":         Sensors,
	"רגש":             Sensors,
	// Drives
	"drive":           Drives,
	"vfd":             Drives,
	"inverter":        Drives,
	"servo drive":     Drives,
	"frequency drive": Drives,
	"משנה תדר":        Drives,
	"ממיר תדר":        Drives,
	// Motors
	"motor":       Motors,
	"servo motor": Motors,
	"gearmotor":   Motors,
	"מנוע":        Motors,
	"מנועים":      Motors,
	// Power supplies
	"power supply":   PowerSupplies,
	"psu":            PowerSupplies,
	"power supplies": PowerSupplies,
	"ספק כוח":        PowerSupplies,
	"ספקי כוח":       PowerSupplies,
	"ספק":            PowerSupplies,
	// Cables
	"cable":  Cables,
	"wire":   Cables,
	"wiring": Cables,
	"כבל":    Cables,
	"כבלים":  Cables,
	// Connectors
	"connector": Connectors,
	"terminal":  Connectors,
	"terminals": Connectors,
	"מחבר":      Connectors,
	"מחברים":    Connectors,
	"מהדק":      Connectors,
	"מהדקים":    Connectors,
	// Relays
	"relay":     Relays,
	"contactor": Relays,
	"ממסר":      Relays,
	"ממסרים":    Relays,
	"מגען":      Relays,
	// Switches
	"switch":       Switches,
	"push button":  Switches,
	"pushbutton":   Switches,
	"limit switch": Switches,
	"מפסק":         Switches,
	"מפסקים":       Switches,
	"לחצן":         Switches,
	// HMI
	"hmi":          HMI,
	"touch panel":  HMI,
	"touch screen": HMI,
	"display":      HMI,
	"מסך":          HMI,
	"מסך מגע":      HMI,
	"צג":           HMI,
	// Safety
	"safety":        Safety,
	"safety relay":  Safety,
	"light curtain": Safety,
	"e-stop":        Safety,
	"בטיחות":        Safety,
	// Pneumatics
	"pneumatic":  Pneumatics,
	"pneumatics": Pneumatics,
	"valve":      Pneumatics,
	"cylinder":   Pneumatics,
	"פנאומטיקה":  Pneumatics,
	"שסתום":      Pneumatics,
	"צילינדר":    Pneumatics,
	// Enclosures
	"enclosure": Enclosures,
	"cabinet":   Enclosures,
	"panel":     Enclosures,
	"ארון":      Enclosures,
	"ארון חשמל": Enclosures,
	"לוח":       Enclosures,
}

func AsStringSlice() []string {
	result := make([]string, len(allCategories))
	for i, cat := range allCategories {
		result[i] = string(cat)
	}
	return result
}

// DefaultSynonyms returns a copy of the built-in synonym table keyed by
// normalized label.
func DefaultSynonyms() map[string]Category {
	out := make(map[string]Category, len(defaultSynonyms))
	for k, v := range defaultSynonyms {
		out[k] = v
	}
	return out
}

// NormalizeLabel lowercases, trims, collapses internal whitespace, and strips
// quote marks (Hebrew abbreviations like מק"ט appear with several different
// quote characters depending on the source encoding).
func NormalizeLabel(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = strings.Map(func(r rune) rune {
		switch r {
		case '"', '\'', '׳', '״', '“', '”', '‘', '’':
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// Canonicalize resolves a free-text category label to a canonical category.
// The boolean reports whether the label actually matched; unmatched labels
// resolve to Other.
func Canonicalize(input string) (Category, bool) {
	normalized := NormalizeLabel(input)
	if normalized == "" {
		return Other, false
	}

	if cat, ok := defaultSynonyms[normalized]; ok {
		return cat, true
	}

	// check if it matches any category string
	for _, cat := range allCategories {
		if normalized == strings.ToLower(string(cat)) {
			return cat, true
		}
	}

	return Other, false
}
