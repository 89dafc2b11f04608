// Package vehicles holds the static vehicle-to-type lookup table used to
// derive category labels for posts. The table is maintained by hand from the
// in-game vehicle sheet; vehicle names are matched exactly.
package vehicles

import "sort"

// Type labels. Posts store the derived set of labels for filtering.
const (
	TypeJet        = "Jet"
	TypePropeller  = "Propeller"
	TypeHelicopter = "Helicopter"
	TypeSeaplane   = "Seaplane"
	TypeGlider     = "Glider"
	TypeMilitary   = "Military"
	TypeGround     = "Ground"
)

// registry maps a vehicle name to its type label.
var registry = map[string]string{
	"Boeing 747":            TypeJet,
	"Boeing 737":            TypeJet,
	"Boeing 777":            TypeJet,
	"Boeing 787":            TypeJet,
	"Airbus A320":           TypeJet,
	"Airbus A330":           TypeJet,
	"Airbus A350":           TypeJet,
	"Airbus A380":           TypeJet,
	"Concorde":              TypeJet,
	"Bombardier CRJ700":     TypeJet,
	"Embraer E190":          TypeJet,
	"McDonnell Douglas MD-11": TypeJet,
	"Cessna 172":            TypePropeller,
	"Cessna 182":            TypePropeller,
	"Piper PA-28":           TypePropeller,
	"Beechcraft Bonanza":    TypePropeller,
	"ATR 72":                TypePropeller,
	"Douglas DC-3":          TypePropeller,
	"De Havilland Beaver":   TypeSeaplane,
	"Grumman Goose":         TypeSeaplane,
	"Icon A5":               TypeSeaplane,
	"Bell 206":              TypeHelicopter,
	"Bell 412":              TypeHelicopter,
	"Sikorsky UH-60":        TypeHelicopter,
	"Airbus H135":           TypeHelicopter,
	"Robinson R44":          TypeHelicopter,
	"Schleicher ASK 21":     TypeGlider,
	"Schempp-Hirth Discus":  TypeGlider,
	"F-16 Fighting Falcon":  TypeMilitary,
	"F/A-18 Super Hornet":   TypeMilitary,
	"F-22 Raptor":           TypeMilitary,
	"A-10 Warthog":          TypeMilitary,
	"C-130 Hercules":        TypeMilitary,
	"P-51 Mustang":          TypeMilitary,
	"Supermarine Spitfire":  TypeMilitary,
	"Eurofighter Typhoon":   TypeMilitary,
	"Fire Truck":            TypeGround,
	"Fuel Tanker":           TypeGround,
	"Pushback Tug":          TypeGround,
	"Stair Truck":           TypeGround,
}

// AllTypes lists every type label, in display order.
var AllTypes = []string{
	TypeJet,
	TypePropeller,
	TypeHelicopter,
	TypeSeaplane,
	TypeGlider,
	TypeMilitary,
	TypeGround,
}

// Names returns every registered vehicle name in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// IsKnown reports whether the vehicle name exists in the registry.
func IsKnown(name string) bool {
	_, ok := registry[name]
	return ok
}

// TypeOf returns the type label for a vehicle name, or "" if unknown.
func TypeOf(name string) string {
	return registry[name]
}

// TypesOf derives the deduplicated, order-preserving set of type labels for a
// vehicle list. Unknown vehicles contribute nothing; callers validate
// membership separately.
func TypesOf(names []string) []string {
	var types []string
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		t := registry[n]
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		types = append(types, t)
	}
	return types
}

// IsType reports whether the label is a known type label.
func IsType(label string) bool {
	for _, t := range AllTypes {
		if t == label {
			return true
		}
	}
	return false
}
