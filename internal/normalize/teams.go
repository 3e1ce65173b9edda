package normalize

// Team name dictionaries used by the sport resolver. Ordering of lookups
// matters and lives in sport.go; these tables are data only.
//
// College lists are intentionally narrower than the pro dictionaries and
// are checked first: "Indiana Hoosiers" must not be swallowed by the NBA
// "Indiana Pacers" city match, and "Panthers" alone is ambiguous between
// NFL Carolina and NHL Florida.

var nhlTeams = []string{
	"Anaheim Ducks", "Boston Bruins", "Buffalo Sabres", "Calgary Flames",
	"Carolina Hurricanes", "Chicago Blackhawks", "Colorado Avalanche",
	"Columbus Blue Jackets", "Dallas Stars", "Detroit Red Wings",
	"Edmonton Oilers", "Florida Panthers", "Los Angeles Kings",
	"Minnesota Wild", "Montreal Canadiens", "Nashville Predators",
	"New Jersey Devils", "New York Islanders", "New York Rangers",
	"Ottawa Senators", "Philadelphia Flyers", "Pittsburgh Penguins",
	"San Jose Sharks", "Seattle Kraken", "St Louis Blues",
	"Tampa Bay Lightning", "Toronto Maple Leafs", "Utah Hockey Club",
	"Vancouver Canucks", "Vegas Golden Knights", "Washington Capitals",
	"Winnipeg Jets",
}

var nbaTeams = []string{
	"Atlanta Hawks", "Boston Celtics", "Brooklyn Nets", "Charlotte Hornets",
	"Chicago Bulls", "Cleveland Cavaliers", "Dallas Mavericks",
	"Denver Nuggets", "Detroit Pistons", "Golden State Warriors",
	"Houston Rockets", "Indiana Pacers", "Los Angeles Clippers",
	"Los Angeles Lakers", "Memphis Grizzlies", "Miami Heat",
	"Milwaukee Bucks", "Minnesota Timberwolves", "New Orleans Pelicans",
	"New York Knicks", "Oklahoma City Thunder", "Orlando Magic",
	"Philadelphia 76ers", "Phoenix Suns", "Portland Trail Blazers",
	"Sacramento Kings", "San Antonio Spurs", "Toronto Raptors",
	"Utah Jazz", "Washington Wizards",
}

var nflTeams = []string{
	"Arizona Cardinals", "Atlanta Falcons", "Baltimore Ravens",
	"Buffalo Bills", "Carolina Panthers", "Chicago Bears",
	"Cincinnati Bengals", "Cleveland Browns", "Dallas Cowboys",
	"Denver Broncos", "Detroit Lions", "Green Bay Packers",
	"Houston Texans", "Indianapolis Colts", "Jacksonville Jaguars",
	"Kansas City Chiefs", "Las Vegas Raiders", "Los Angeles Chargers",
	"Los Angeles Rams", "Miami Dolphins", "Minnesota Vikings",
	"New England Patriots", "New Orleans Saints", "New York Giants",
	"New York Jets", "Philadelphia Eagles", "Pittsburgh Steelers",
	"San Francisco 49ers", "Seattle Seahawks", "Tampa Bay Buccaneers",
	"Tennessee Titans", "Washington Commanders",
}

var mlbTeams = []string{
	"Arizona Diamondbacks", "Atlanta Braves", "Baltimore Orioles",
	"Boston Red Sox", "Chicago Cubs", "Chicago White Sox",
	"Cincinnati Reds", "Cleveland Guardians", "Colorado Rockies",
	"Detroit Tigers", "Houston Astros", "Kansas City Royals",
	"Los Angeles Angels", "Los Angeles Dodgers", "Miami Marlins",
	"Milwaukee Brewers", "Minnesota Twins", "New York Mets",
	"New York Yankees", "Oakland Athletics", "Philadelphia Phillies",
	"Pittsburgh Pirates", "San Diego Padres", "San Francisco Giants",
	"Seattle Mariners", "St Louis Cardinals", "Tampa Bay Rays",
	"Texas Rangers", "Toronto Blue Jays", "Washington Nationals",
}

// College team names that show up on slips. Narrow by design: full school
// nicknames only, so they win before the pro-league city matches.
var collegeFootballTeams = []string{
	"Alabama Crimson Tide", "Auburn Tigers", "Clemson Tigers",
	"Florida Gators", "Florida State Seminoles", "Georgia Bulldogs",
	"Indiana Hoosiers", "Iowa Hawkeyes", "LSU Tigers",
	"Michigan Wolverines", "Michigan State Spartans", "Notre Dame Fighting Irish",
	"Ohio State Buckeyes", "Oklahoma Sooners", "Oregon Ducks",
	"Penn State Nittany Lions", "Tennessee Volunteers", "Texas Longhorns",
	"Texas A&M Aggies", "USC Trojans", "Washington Huskies",
	"Wisconsin Badgers",
}

var collegeBasketballTeams = []string{
	"Arizona Wildcats", "Baylor Bears", "Duke Blue Devils",
	"Gonzaga Bulldogs", "Houston Cougars", "Kansas Jayhawks",
	"Kentucky Wildcats", "North Carolina Tar Heels", "Purdue Boilermakers",
	"UConn Huskies", "Villanova Wildcats",
}

// Abbreviation forms accepted in parentheses, e.g. "(CIN)" on prop lines.
var nflAbbreviations = map[string]bool{
	"ARI": true, "ATL": true, "BAL": true, "BUF": true, "CAR": true,
	"CHI": true, "CIN": true, "CLE": true, "DAL": true, "DEN": true,
	"DET": true, "GB": true, "HOU": true, "IND": true, "JAX": true,
	"KC": true, "LV": true, "LAC": true, "LAR": true, "MIA": true,
	"MIN": true, "NE": true, "NO": true, "NYG": true, "NYJ": true,
	"PHI": true, "PIT": true, "SF": true, "SEA": true, "TB": true,
	"TEN": true, "WAS": true,
}

var nbaAbbreviations = map[string]bool{
	"ATL": true, "BOS": true, "BKN": true, "CHA": true, "CHI": true,
	"CLE": true, "DAL": true, "DEN": true, "DET": true, "GSW": true,
	"HOU": true, "IND": true, "LAC": true, "LAL": true, "MEM": true,
	"MIA": true, "MIL": true, "MIN": true, "NOP": true, "NYK": true,
	"OKC": true, "ORL": true, "PHX": true, "POR": true, "SAC": true,
	"SAS": true, "TOR": true, "UTA": true, "WAS": true,
}

// Esports league/event markers.
var esportsLeagues = []string{
	"LCS", "LEC", "LCK", "LPL", "CS2", "CSGO", "ESL", "IEM",
	"Valorant", "VCT", "Dota", "The International", "Overwatch League",
}
