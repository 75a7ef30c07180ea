package production

import (
	"strings"
	"unicode"
)

// Floor identifies one production stage. The set is closed; unknown names
// never become floors.
type Floor int

const (
	FloorUnknown Floor = iota
	FloorKnitting
	FloorLinking
	FloorChecking
	FloorWashing
	FloorBoarding
	FloorSecondaryChecking
	FloorBranding
	FloorFinalChecking
	FloorWarehouse
	FloorDispatch
)

var floorNames = [...]string{
	FloorUnknown:           "",
	FloorKnitting:          "Knitting",
	FloorLinking:           "Linking",
	FloorChecking:          "Checking",
	FloorWashing:           "Washing",
	FloorBoarding:          "Boarding",
	FloorSecondaryChecking: "Secondary Checking",
	FloorBranding:          "Branding",
	FloorFinalChecking:     "Final Checking",
	FloorWarehouse:         "Warehouse",
	FloorDispatch:          "Dispatch",
}

// AllFloors lists every known floor in canonical production order.
func AllFloors() []Floor {
	return []Floor{
		FloorKnitting,
		FloorLinking,
		FloorChecking,
		FloorWashing,
		FloorBoarding,
		FloorSecondaryChecking,
		FloorBranding,
		FloorFinalChecking,
		FloorWarehouse,
		FloorDispatch,
	}
}

func (f Floor) String() string {
	if !f.Valid() {
		return "Unknown"
	}
	return floorNames[f]
}

func (f Floor) Valid() bool {
	return f > FloorUnknown && f <= FloorDispatch
}

// IsGrading reports whether completed units on f are classified into M1-M4.
func (f Floor) IsGrading() bool {
	switch f {
	case FloorChecking, FloorSecondaryChecking, FloorFinalChecking:
		return true
	}
	return false
}

// floorSynonyms maps normalized process-step names to floors.
var floorSynonyms = map[string]Floor{
	"knitting":           FloorKnitting,
	"knit":               FloorKnitting,
	"knitted":            FloorKnitting,
	"linking":            FloorLinking,
	"link":               FloorLinking,
	"linked":             FloorLinking,
	"checking":           FloorChecking,
	"check":              FloorChecking,
	"first checking":     FloorChecking,
	"1st checking":       FloorChecking,
	"inspection":         FloorChecking,
	"washing":            FloorWashing,
	"wash":               FloorWashing,
	"boarding":           FloorBoarding,
	"board":              FloorBoarding,
	"ironing":            FloorBoarding,
	"pressing":           FloorBoarding,
	"secondary checking": FloorSecondaryChecking,
	"second checking":    FloorSecondaryChecking,
	"2nd checking":       FloorSecondaryChecking,
	"secondary check":    FloorSecondaryChecking,
	"branding":           FloorBranding,
	"brand":              FloorBranding,
	"labelling":          FloorBranding,
	"labeling":           FloorBranding,
	"tagging":            FloorBranding,
	"final checking":     FloorFinalChecking,
	"final check":        FloorFinalChecking,
	"final inspection":   FloorFinalChecking,
	"warehouse":          FloorWarehouse,
	"store":              FloorWarehouse,
	"packing":            FloorWarehouse,
	"dispatch":           FloorDispatch,
	"dispatched":         FloorDispatch,
	"shipping":           FloorDispatch,
}

// ParseFloor maps a free-form step name onto a floor. Matching ignores case,
// punctuation and repeated whitespace.
func ParseFloor(name string) (Floor, bool) {
	f, ok := floorSynonyms[normalizeName(name)]
	return f, ok
}

func normalizeName(name string) string {
	fields := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.Join(fields, " ")
}
