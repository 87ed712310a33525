package parse

import "strings"

// countryAliases maps lowercased country names, native names, and ISO codes
// to the canonical English name. An unknown country is preserved (title-
// cased), never dropped: losing a row over an unrecognized spelling would be
// worse than passing the spelling through.
var countryAliases = map[string]string{
	"pl": "Poland", "pol": "Poland", "poland": "Poland", "polska": "Poland",
	"de": "Germany", "deu": "Germany", "germany": "Germany", "deutschland": "Germany", "niemcy": "Germany",
	"cz": "Czechia", "cze": "Czechia", "czechia": "Czechia", "czech republic": "Czechia",
	"cesko": "Czechia", "česko": "Czechia", "czechy": "Czechia",
	"gb": "United Kingdom", "uk": "United Kingdom", "gbr": "United Kingdom",
	"united kingdom": "United Kingdom", "great britain": "United Kingdom", "wielka brytania": "United Kingdom",
	"fr": "France", "fra": "France", "france": "France", "francja": "France",
	"es": "Spain", "esp": "Spain", "spain": "Spain", "espana": "Spain", "españa": "Spain", "hiszpania": "Spain",
	"it": "Italy", "ita": "Italy", "italy": "Italy", "italia": "Italy", "wlochy": "Italy", "włochy": "Italy",
	"nl": "Netherlands", "nld": "Netherlands", "netherlands": "Netherlands",
	"nederland": "Netherlands", "holland": "Netherlands", "holandia": "Netherlands",
	"se": "Sweden", "swe": "Sweden", "sweden": "Sweden", "sverige": "Sweden", "szwecja": "Sweden",
	"sk": "Slovakia", "svk": "Slovakia", "slovakia": "Slovakia", "slovensko": "Slovakia", "slowacja": "Slovakia",
	"at": "Austria", "aut": "Austria", "austria": "Austria", "osterreich": "Austria", "österreich": "Austria",
	"us": "United States", "usa": "United States", "united states": "United States",
	"united states of america": "United States", "stany zjednoczone": "United States",
	"lt": "Lithuania", "ltu": "Lithuania", "lithuania": "Lithuania", "lietuva": "Lithuania", "litwa": "Lithuania",
	"ua": "Ukraine", "ukr": "Ukraine", "ukraine": "Ukraine", "ukraina": "Ukraine",
}

// Country canonicalizes a country spelling to its English name. On a lookup
// miss the input is title-cased and returned as-is; nil or blank input
// yields "".
func Country(v any) string {
	s := strings.TrimSpace(asString(v))
	if s == "" {
		return ""
	}
	if canonical, ok := countryAliases[strings.ToLower(s)]; ok {
		return canonical
	}
	return titleCaser.String(s)
}
