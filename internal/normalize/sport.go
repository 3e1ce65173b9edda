// Package normalize resolves free-text sport and team identifiers from
// pasted bet slips into canonical codes. Resolution never fails: text that
// matches nothing classifies as SportUnclassified so parsing can proceed.
package normalize

import (
	"regexp"
	"strings"

	"github.com/XavierBriggs/Themis/pkg/models"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Fold lowercases and strips non-alphanumerics for fuzzy comparison.
func Fold(s string) string {
	return nonAlnum.ReplaceAllString(strings.ToLower(s), "")
}

// MatchName reports whether two team/player names refer to the same entity
// using bidirectional substring containment on folded forms. Either side
// may be an abbreviated or suffixed form of the other ("Lakers" matches
// "Los Angeles Lakers", "Quinten Post" matches "Q. Post" does not, but
// "Post" does).
func MatchName(a, b string) bool {
	fa, fb := Fold(a), Fold(b)
	if fa == "" || fb == "" {
		return false
	}
	return strings.Contains(fa, fb) || strings.Contains(fb, fa)
}

// Explicit bracketed tags, highest priority. "[MU]" is a legacy combat
// sports marker that predates the "[MMA]" tag on newer slips.
var bracketTags = map[string]models.SportCode{
	"NFL":   models.SportNFL,
	"NBA":   models.SportNBA,
	"NHL":   models.SportNHL,
	"MLB":   models.SportMLB,
	"NCAAF": models.SportNCAAF,
	"CFB":   models.SportNCAAF,
	"NCAAB": models.SportNCAAB,
	"CBB":   models.SportNCAAB,
	"MMA":   models.SportMMA,
	"MU":    models.SportMMA,
	"UFC":   models.SportMMA,
	"ES":    models.SportEsports,
}

// tokenScanTags is the fixed scan order for bare sport-code tokens; map
// iteration order would make text naming two sports classify differently
// run to run.
var tokenScanTags = []string{"NFL", "NBA", "NHL", "MLB", "NCAAF", "CFB", "NCAAB", "CBB", "MMA", "UFC"}

var bracketPattern = regexp.MustCompile(`\[([A-Za-z]{2,6})\]`)

var combatMarkers = []string{"UFC", "Bellator", "PFL", "ONE Championship"}

var (
	footballKeywords = []string{
		"touchdown", "passing yards", "rushing yards", "receiving yards",
		"receptions", "completions", "interceptions thrown", "sacks",
		"field goals", "pass attempts",
	}
	basketballKeywords = []string{
		"points", "rebounds", "assists", "three pointers", "threes",
		"double double", "triple double", "steals", "blocks",
	}
	baseballKeywords = []string{
		"strikeout", "home run", "total bases", "rbi", "hits allowed",
		"earned runs", "pitching outs", "stolen base",
	}
	hockeyKeywords = []string{
		"shots on goal", "goalie saves", "power play", "puck line",
	}
)

var (
	nbaStatCodes = regexp.MustCompile(`\b(PRA|PTS|REB|AST)\b`)
	nflPositions = regexp.MustCompile(`\b(QB|RB|WR|TE)\b`)
	mlbPositions = regexp.MustCompile(`\b(SP|RP|1B|2B|3B|SS|DH)\b|\bpitcher\b`)
	parenAbbrev  = regexp.MustCompile(`\(([A-Z]{2,3})\)`)
)

// ResolveSport classifies free slip text into a sport code. Rules run in
// strict priority order; earlier rules win so narrow identifiers are not
// swallowed by broad ones (college "Indiana" vs the NBA Pacers, "Panthers"
// in both the NFL and the NHL).
func ResolveSport(text string) models.SportCode {
	// 1. Explicit bracketed tags and exact sport-code tokens.
	for _, m := range bracketPattern.FindAllStringSubmatch(text, -1) {
		if code, ok := bracketTags[strings.ToUpper(m[1])]; ok {
			return code
		}
	}
	for _, tag := range tokenScanTags {
		if containsWord(text, tag) {
			return bracketTags[tag]
		}
	}

	// 2. Full league/event markers.
	for _, marker := range combatMarkers {
		if containsFold(text, marker) {
			return models.SportMMA
		}
	}
	for _, league := range esportsLeagues {
		if containsWord(text, league) {
			return models.SportEsports
		}
	}

	// 3. Team dictionaries, most specific league class first. NHL runs
	// before NBA/NFL because of nickname overlaps.
	if matchesAnyTeam(text, collegeFootballTeams) {
		return models.SportNCAAF
	}
	if matchesAnyTeam(text, collegeBasketballTeams) {
		return models.SportNCAAB
	}
	if matchesAnyTeam(text, nhlTeams) {
		return models.SportNHL
	}
	if matchesAnyTeam(text, nbaTeams) {
		return models.SportNBA
	}
	if matchesAnyTeam(text, nflTeams) {
		return models.SportNFL
	}
	if matchesAnyTeam(text, mlbTeams) {
		return models.SportMLB
	}
	for _, m := range parenAbbrev.FindAllStringSubmatch(text, -1) {
		if nbaAbbreviations[m[1]] && !nflAbbreviations[m[1]] {
			return models.SportNBA
		}
		if nflAbbreviations[m[1]] {
			return models.SportNFL
		}
	}

	// 4. Stat vocabulary, refined by a college-name check so NCAAF slips
	// with football wording don't classify as NFL.
	lower := strings.ToLower(text)
	if containsAny(lower, footballKeywords) {
		if matchesAnyTeam(text, collegeFootballTeams) {
			return models.SportNCAAF
		}
		return models.SportNFL
	}
	if containsAny(lower, baseballKeywords) {
		return models.SportMLB
	}
	if containsAny(lower, hockeyKeywords) {
		return models.SportNHL
	}
	if containsAny(lower, basketballKeywords) || nbaStatCodes.MatchString(text) {
		return models.SportNBA
	}

	// 5. Position abbreviations, last resort before giving up.
	if nflPositions.MatchString(text) {
		return models.SportNFL
	}
	if mlbPositions.MatchString(text) {
		return models.SportMLB
	}

	// 6. Unclassified, never an error. A "vs" separator at least tells us
	// this looks like a game.
	return models.SportUnclassified
}

// SplitMatchup extracts the two team names from "A vs B" / "A @ B" /
// "A v B" forms. The second return is false when no separator is found.
func SplitMatchup(text string) (away, home string, ok bool) {
	seps := []string{" vs. ", " vs ", " @ ", " v "}
	for _, sep := range seps {
		if idx := strings.Index(strings.ToLower(text), sep); idx >= 0 {
			away = strings.TrimSpace(text[:idx])
			home = strings.TrimSpace(text[idx+len(sep):])
			if away != "" && home != "" {
				return away, home, true
			}
		}
	}
	return "", "", false
}

func matchesAnyTeam(text string, teams []string) bool {
	folded := Fold(text)
	for _, team := range teams {
		if strings.Contains(folded, Fold(team)) {
			return true
		}
		// Nickname-only mention ("Maple Leafs ML") still counts, but only
		// for multi-word names where the nickname is distinctive.
		if nick := nickname(team); len(nick) >= 5 && strings.Contains(folded, Fold(nick)) {
			return true
		}
	}
	return false
}

// nickname returns the trailing word(s) after the city/school portion.
func nickname(team string) string {
	parts := strings.Fields(team)
	if len(parts) < 2 {
		return ""
	}
	return parts[len(parts)-1]
}

func containsWord(text, word string) bool {
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(word) + `\b`)
	return re.MatchString(text)
}

func containsFold(text, marker string) bool {
	return strings.Contains(Fold(text), Fold(marker))
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
