package basketball_nba

// teamAliases maps vendor spelling variations to the canonical franchise
// name used across providers.
var teamAliases = map[string]string{
	"LA Clippers":            "Los Angeles Clippers",
	"L.A. Clippers":          "Los Angeles Clippers",
	"LA Lakers":              "Los Angeles Lakers",
	"L.A. Lakers":            "Los Angeles Lakers",
	"NY Knicks":              "New York Knicks",
	"GS Warriors":            "Golden State Warriors",
	"SA Spurs":               "San Antonio Spurs",
	"NO Pelicans":            "New Orleans Pelicans",
	"OKC Thunder":            "Oklahoma City Thunder",
	"Portland Trailblazers":  "Portland Trail Blazers",
	"Philadelphia Sixers":    "Philadelphia 76ers",
}
