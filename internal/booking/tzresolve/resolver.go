// Package tzresolve maps a club's descriptive location to an IANA timezone
// identifier. Resolution is rule-based: Mexican locations are matched against
// city/state substrings because Mexico spans four timezone regions, while the
// other supported countries map to a single zone each. Resolution never fails;
// unrecognized input falls back to DefaultZone.
package tzresolve

import "strings"

// DefaultZone is used whenever detection cannot produce a supported zone.
const DefaultZone = "America/Mexico_City"

// Location is a club's descriptive address. State and Country may be empty.
type Location struct {
	City    string
	State   string
	Country string
}

// supportedZones is the fixed set of zones clubs may be configured with.
var supportedZones = map[string]struct{}{
	"America/Mexico_City":            {},
	"America/Cancun":                 {},
	"America/Tijuana":                {},
	"America/Hermosillo":             {},
	"America/Mazatlan":               {},
	"America/Chihuahua":              {},
	"America/Argentina/Buenos_Aires": {},
	"America/Santiago":               {},
	"America/Lima":                   {},
	"America/Bogota":                 {},
	"America/Caracas":                {},
	"America/Sao_Paulo":              {},
	"Europe/Madrid":                  {},
}

// countryZones resolves single-timezone countries. Keys are normalized.
var countryZones = []struct {
	match string
	zone  string
}{
	{"argentina", "America/Argentina/Buenos_Aires"},
	{"chile", "America/Santiago"},
	{"peru", "America/Lima"},
	{"colombia", "America/Bogota"},
	{"venezuela", "America/Caracas"},
	{"brasil", "America/Sao_Paulo"},
	{"brazil", "America/Sao_Paulo"},
	{"espana", "Europe/Madrid"},
	{"spain", "Europe/Madrid"},
}

// mexicoZones resolves Mexican regions by city/state substring. Order matters:
// "baja california sur" must be tested before "baja california".
var mexicoZones = []struct {
	matches []string
	zone    string
}{
	{[]string{"baja california sur", "mazatlan", "sinaloa", "nayarit", "la paz"}, "America/Mazatlan"},
	{[]string{"tijuana", "mexicali", "ensenada", "baja california"}, "America/Tijuana"},
	{[]string{"hermosillo", "sonora"}, "America/Hermosillo"},
	{[]string{"chihuahua", "juarez"}, "America/Chihuahua"},
	{[]string{"cancun", "quintana roo", "cozumel", "playa del carmen"}, "America/Cancun"},
}

var accentReplacer = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u", "ñ", "n",
	"Á", "a", "É", "e", "Í", "i", "Ó", "o", "Ú", "u", "Ü", "u", "Ñ", "n",
)

func normalize(s string) string {
	return accentReplacer.Replace(strings.ToLower(strings.TrimSpace(s)))
}

// Resolve maps a location to a timezone identifier. Single-zone countries are
// tested first so that a city name shared with a Mexican region never
// overrides an explicit country match.
func Resolve(loc Location) string {
	country := normalize(loc.Country)
	for _, rule := range countryZones {
		if country != "" && strings.Contains(country, rule.match) {
			return rule.zone
		}
	}

	search := normalize(loc.City + " " + loc.State + " " + loc.Country)
	for _, region := range mexicoZones {
		for _, m := range region.matches {
			if strings.Contains(search, m) {
				return region.zone
			}
		}
	}

	return DefaultZone
}

// IsSupported reports whether tz is in the fixed supported-zone set.
func IsSupported(tz string) bool {
	_, ok := supportedZones[tz]
	return ok
}

// SmartDefault resolves the location and re-validates the result against the
// supported set, falling back to DefaultZone if resolution ever produces a
// zone the rest of the system does not accept.
func SmartDefault(loc Location) string {
	tz := Resolve(loc)
	if !IsSupported(tz) {
		return DefaultZone
	}
	return tz
}
