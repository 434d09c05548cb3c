package entities

// DefaultAliases is the hand-curated map of known customer name variants to
// their canonical normalized form. Keys and values are lowercase with
// collapsed whitespace; values may still carry a legal suffix, so the
// normalizer looks aliases up both before and after suffix stripping.
//
// Curated from the legacy export review: typos, abbreviations and
// joint-venture labels observed in real offer sheets.
var DefaultAliases = map[string]string{
	// Straye variations
	"straye hybrid":          "straye hybridbygg",
	"straye hybrid as":       "straye hybridbygg",
	"strayeindustri":         "straye industri",
	"strayeindustri as":      "straye industri",
	"straye industribygg":    "straye industri",
	"straye industribygg as": "straye industri",

	// Veidekke variations, all map to Veidekke Entreprenør
	"veidekke":               "veidekke entreprenør",
	"veidekke as":            "veidekke entreprenør",
	"veidekke bygg":          "veidekke entreprenør",
	"veidekke bygg- vest":    "veidekke entreprenør",
	"veidekke bygg vest":     "veidekke entreprenør",
	"veidekke ålesund":       "veidekke entreprenør",
	"seby as/ veidekke as":   "veidekke entreprenør",

	// PEAB variations
	"peab":                   "peab bygg",
	"peab as":                "peab bygg",
	"peab/ straye stålbygg":  "straye stålbygg", // Internal project

	// Probable matches confirmed during review
	"a bygg":                 "a bygg entreprenør",
	"betongbygg":             "as betongbygg",
	"betongbygg as":          "as betongbygg",
	"byggkompaniet":          "byggkompaniet østfold",
	"enter solutions":        "enter solution",
	"enter solutions as":     "enter solution",
	"furuno":                 "furuno norge",
	"furuno as":              "furuno norge",
	"fusen":                  "solenergi fusen",
	"totalbetong":            "totalbetong gruppen",
	"vestre bærum tennis":    "vestre bærum tennisklubb",
	"workman":                "workman norway",
	"workman as":             "workman norway",

	// Joint/combined offers, assigned to Hallmaker
	"hallmaker as/ straye stålbygg as": "hallmaker",
	"straye stålbygg as / hallmaker":   "hallmaker",
	"straye stålbygg as/ hallmaker":    "hallmaker",
	"thermica as/ hallmaker":           "hallmaker",
	"dpend/ straye stålbygg":           "straye stålbygg",

	// Typos and spelling variations
	"byggekompaniet østfold":   "byggkompaniet østfold", // extra 'e'
	"km bygg":                  "kopperud murtnes bygg",
	"km bygg??":                "kopperud murtnes bygg",
	"arealbygg":                "areal bygg",
	"geir nielsen (holmskau)":  "geir nilsen", // Nielsen vs Nilsen
	"høstbakken 11":            "høstbakken eiendom",
	"høstbakken 11 as":         "høstbakken eiendom",
	"matotalbygg":              "ma totalbygg",
	"matotalbygg as":           "ma totalbygg",
	"nordbygg":                 "norbygg",
	"nordbygg as":              "norbygg",
	"park & anlegg":            "park og anlegg",
	"sameie hoffsveien 88":     "sameiet hoffsveien 88/90",
	"sameiet kornmoenga":       "kornmoenga 3 sameie",
	"tatalbygg midt-norge":     "totalbygg midt-norge",
	"tatalbygg midt-norge as":  "totalbygg midt-norge",
	"øm fjell":                 "ø.m. fjeld",
	"øm fjell as":              "ø.m. fjeld",

	// Placeholder entries from sheets with no real customer
	"grinda 9 revidert":        "jesper vogt-lorentzen", // project name, not a customer
	"flere- gikk til km bygg":  "kopperud murtnes bygg",
	"flere":                    "kopperud murtnes bygg",
	"ukjent kunde":             "kopperud murtnes bygg",
	"2581 hjelseth":            "kopperud murtnes bygg",
}

// DefaultResponsibles maps responsible-person initials found in the export
// to full names.
var DefaultResponsibles = map[string]string{
	"HSK": "Håkon Knutsen",
	"KL":  "Kristoffer Larsen",
	"AB":  "Anders Berg",
}
