package slip

import (
	"strings"

	"github.com/XavierBriggs/Themis/internal/normalize"
)

// Slip stat vocabulary to canonical stat slugs. Keys are folded forms so
// "Receiving Yards", "receiving yards" and "ReceivingYards" all hit.
var statVocabulary = map[string]string{
	// basketball
	"points":        "pts",
	"pts":           "pts",
	"rebounds":      "reb",
	"reb":           "reb",
	"assists":       "ast",
	"ast":           "ast",
	"threes":        "3pm",
	"3pointers":     "3pm",
	"threepointers": "3pm",
	"steals":        "stl",
	"blocks":        "blk",
	"turnovers":     "to",
	"pra":           "pts+reb+ast",
	// football
	"receivingyards":    "rec_yds",
	"rushingyards":      "rush_yds",
	"passingyards":      "pass_yds",
	"receptions":        "rec",
	"passingtouchdowns": "pass_td",
	"touchdowns":        "td",
	"completions":       "cmp",
	"interceptions":     "int",
	// baseball
	"strikeouts": "so",
	"totalbases": "tb",
	"hits":       "h",
	"homeruns":   "hr",
	"rbi":        "rbi",
	"rbis":       "rbi",
	"runs":       "r",
	// hockey
	"shotsongoal": "sog",
	"saves":       "sv",
	"goals":       "g",
}

// CanonicalStatKey normalizes slip stat wording to a canonical slug.
// Plus-combinations ("Points + Rebounds + Assists") map component-wise to
// "pts+reb+ast"; shorthand forms ("PRA") expand to the same slug. Returns
// "" when any component is unrecognized.
func CanonicalStatKey(statText string) string {
	parts := strings.Split(statText, "+")
	slugs := make([]string, 0, len(parts))
	for _, part := range parts {
		slug, ok := statVocabulary[normalize.Fold(part)]
		if !ok {
			return ""
		}
		slugs = append(slugs, slug)
	}
	return strings.Join(slugs, "+")
}

// looksLikeStat guards the prop matcher: trailing words that are not stat
// vocabulary ("ML", "alternate") must not classify as props.
func looksLikeStat(statText string) bool {
	return CanonicalStatKey(statText) != ""
}
