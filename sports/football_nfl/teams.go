package football_nfl

// teamAliases maps vendor spelling variations to the canonical franchise
// name used across providers.
var teamAliases = map[string]string{
	"KC Chiefs":           "Kansas City Chiefs",
	"LA Rams":             "Los Angeles Rams",
	"L.A. Rams":           "Los Angeles Rams",
	"LA Chargers":         "Los Angeles Chargers",
	"L.A. Chargers":       "Los Angeles Chargers",
	"NY Giants":           "New York Giants",
	"NY Jets":             "New York Jets",
	"NE Patriots":         "New England Patriots",
	"TB Buccaneers":       "Tampa Bay Buccaneers",
	"Tampa Bay Bucs":      "Tampa Bay Buccaneers",
	"SF 49ers":            "San Francisco 49ers",
	"Washington Football": "Washington Commanders",
}
