// Package slip turns free-text, copy-pasted bet-slip text into structured
// wager records. Classification is an ordered chain of pattern matchers,
// most specific first: player prop, spread, total, then moneyline. Blocks
// that match nothing become ParseErrors; a bad block never aborts the rest
// of the paste.
package slip

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/XavierBriggs/Themis/internal/normalize"
	"github.com/XavierBriggs/Themis/internal/odds"
	"github.com/XavierBriggs/Themis/pkg/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ParseError describes one block that could not be classified.
type ParseError struct {
	BlockIndex    int
	RawTextPrefix string
	Reason        string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("block %d (%q): %s", e.BlockIndex, e.RawTextPrefix, e.Reason)
}

var (
	// Trailing signed American price, e.g. "Bengals -3.5 -110".
	oddsPattern = regexp.MustCompile(`([+-]\d{3,5})\s*$`)

	// "$50.00 to win $95.45", "$25 payout $47.73".
	stakeToWinPattern = regexp.MustCompile(`(?i)\$([\d,]+(?:\.\d+)?)\s*(?:to win|to collect|payout|wins?)[:\s]*\$([\d,]+(?:\.\d+)?)`)
	// Standalone "Risk: $110" / "Wager $50" and "To Win: $100".
	stakePattern  = regexp.MustCompile(`(?i)(?:risk|wager|stake|bet)[:\s]*\$([\d,]+(?:\.\d+)?)`)
	payoutPattern = regexp.MustCompile(`(?i)(?:to win|payout|collect)[:\s]*\$([\d,]+(?:\.\d+)?)`)

	// Player prop: "Name (TEAM) Over 28.5 Points" — the team tag is optional
	// and the stat words may be a plus-combination ("Points + Rebounds +
	// Assists") or a shorthand ("PRA").
	propPattern = regexp.MustCompile(`(?i)^([A-Za-z.'\- ]+?)\s*(?:\(([A-Z]{2,3})\))?\s+(Over|Under)\s+(\d+(?:\.\d+)?)\s+([A-Za-z+ 3]+?)\s*(?:[+-]\d{3,5})?\s*$`)

	// Spread: "Team +3.5" with optional trailing price.
	spreadPattern = regexp.MustCompile(`^(.+?)\s+([+-]\d+(?:\.\d+)?)\s*(?:[+-]\d{3,5})?\s*$`)

	// Total: "Over 220.5 ...".
	totalPattern = regexp.MustCompile(`(?i)\b(Over|Under)\s+(\d+(?:\.\d+)?)\b`)

	// Multi-leg markers and the teaser point adjustment header,
	// e.g. "6 Point Teaser" or "Teaser (7.5 pts)".
	parlayMarker  = regexp.MustCompile(`(?i)\bparlay\b`)
	teaserMarker  = regexp.MustCompile(`(?i)\bteaser\b`)
	teaserPoints  = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)[\s-]*(?:point|pt)s?\s+teaser|teaser\s*\((\d+(?:\.\d+)?)\s*(?:point|pt)s?\)`)
	moneylineMark = regexp.MustCompile(`(?i)\b(?:ML|moneyline|money line)\b`)

	// Blocks start at bookmaker ticket markers as well as blank lines.
	ticketMarker = regexp.MustCompile(`(?i)^(?:ticket|bet)\s*#`)
)

var dateLayouts = []string{
	"1/2/2006 3:04 PM",
	"1/2/06 3:04 PM",
	"Jan 2, 2006 3:04 PM",
	"Jan 2 3:04 PM",
	"1/2 3:04 PM",
	"2006-01-02 15:04",
}

var datePattern = regexp.MustCompile(`(?i)((?:\d{1,2}/\d{1,2}(?:/\d{2,4})?|(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s+\d{1,2},?(?:\s+\d{4})?|\d{4}-\d{2}-\d{2})\s+\d{1,2}:\d{2}\s*(?:AM|PM)?)`)

// Parse splits pasted slip text into wagers. Unparseable blocks are
// collected and reported; partial success is the norm.
func Parse(raw string) ([]models.Wager, []ParseError) {
	blocks := splitBlocks(raw)

	var wagers []models.Wager
	var errs []ParseError

	for i, block := range blocks {
		w, err := parseBlock(block)
		if err != nil {
			errs = append(errs, ParseError{
				BlockIndex:    i,
				RawTextPrefix: prefix(block, 40),
				Reason:        err.Error(),
			})
			continue
		}
		wagers = append(wagers, *w)
	}

	return wagers, errs
}

// splitBlocks separates the paste into per-wager chunks on blank lines and
// bookmaker ticket markers.
func splitBlocks(raw string) []string {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")

	var blocks []string
	var cur []string

	flush := func() {
		if len(cur) > 0 {
			blocks = append(blocks, strings.Join(cur, "\n"))
			cur = nil
		}
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			flush()
			continue
		}
		if ticketMarker.MatchString(trimmed) {
			flush()
			continue // marker line itself carries no bet content
		}
		cur = append(cur, trimmed)
	}
	flush()

	return blocks
}

func parseBlock(block string) (*models.Wager, error) {
	lines := strings.Split(block, "\n")

	w := &models.Wager{
		ID:       uuid.NewString(),
		Status:   models.StatusPending,
		PlacedAt: time.Now().UTC(),
	}

	extractOdds(w, lines)
	extractMoney(w, block)
	if ts, ok := extractStartTime(block); ok {
		w.StartTime = ts
	}

	switch {
	case teaserMarker.MatchString(block):
		w.Kind = models.KindTeaser
		return w, parseMultiLeg(w, lines, extractTeaserPoints(block))
	case parlayMarker.MatchString(block):
		w.Kind = models.KindParlay
		return w, parseMultiLeg(w, lines, 0)
	}

	sel, kind, ok := classifySelection(lines)
	if !ok {
		return nil, fmt.Errorf("no bet pattern matched")
	}
	w.Kind = kind
	w.Selection = sel
	w.Sport = normalize.ResolveSport(block)

	if away, home, ok := findMatchup(lines); ok {
		w.AwayTeam, w.HomeTeam = away, home
	} else if sel.Team != "" {
		// Single-team lines still give us half the descriptor; the
		// aggregator can locate a game from one side plus the date.
		w.HomeTeam = sel.Team
	}

	if w.OpeningOdds == 0 {
		return nil, fmt.Errorf("no odds found")
	}
	derivePayout(w)

	return w, nil
}

// classifySelection runs the ordered matcher chain over the block's lines.
// Specificity ordering is explicit: a prop line like "Curry Over 28.5
// Points" would also match the total pattern, so props go first.
func classifySelection(lines []string) (models.Selection, models.BetKind, bool) {
	for _, line := range lines {
		if m := propPattern.FindStringSubmatch(line); m != nil && looksLikeStat(m[5]) {
			lineVal, _ := strconv.ParseFloat(m[4], 64)
			return models.Selection{
				Player:    strings.TrimSpace(m[1]),
				Team:      m[2],
				Direction: direction(m[3]),
				Line:      lineVal,
				Stat:      CanonicalStatKey(m[5]),
			}, models.KindPlayerProp, true
		}
	}

	for _, line := range lines {
		// The total pattern would also hit "Team +3.5" lines' trailing
		// odds, so only spread-shaped lines without Over/Under wording.
		if totalPattern.MatchString(line) {
			continue
		}
		if m := spreadPattern.FindStringSubmatch(line); m != nil && !moneylineMark.MatchString(line) {
			team := strings.TrimSpace(m[1])
			if _, _, isMatchup := normalize.SplitMatchup(team); isMatchup || team == "" {
				continue
			}
			lineVal, _ := strconv.ParseFloat(m[2], 64)
			// A "line" of +-100 or more is a price, not a handicap:
			// "Celtics -110" is a moneyline with odds, not a spread.
			if lineVal >= 100 || lineVal <= -100 {
				continue
			}
			return models.Selection{Team: team, Line: lineVal}, models.KindSpread, true
		}
	}

	for _, line := range lines {
		if m := totalPattern.FindStringSubmatch(line); m != nil {
			lineVal, _ := strconv.ParseFloat(m[2], 64)
			return models.Selection{Direction: direction(m[1]), Line: lineVal}, models.KindTotal, true
		}
	}

	// Moneyline/straight fallback: team name before an "ML" mark or the
	// leading text of the first line.
	for _, line := range lines {
		if loc := moneylineMark.FindStringIndex(line); loc != nil {
			team := strings.TrimSpace(line[:loc[0]])
			if team != "" {
				return models.Selection{Team: team}, models.KindMoneyline, true
			}
		}
	}
	// A line carrying a trailing price names the pick ("Heat -150");
	// matchup lines only name the game, so they are the last resort.
	for _, line := range lines {
		if !oddsPattern.MatchString(line) {
			continue
		}
		team := strings.TrimSpace(oddsPattern.ReplaceAllString(line, ""))
		if team == "" || datePattern.MatchString(team) {
			continue
		}
		if _, _, isMatchup := normalize.SplitMatchup(team); isMatchup {
			continue
		}
		return models.Selection{Team: team}, models.KindMoneyline, true
	}
	for _, line := range lines {
		team := strings.TrimSpace(oddsPattern.ReplaceAllString(line, ""))
		if team != "" && !datePattern.MatchString(team) {
			if away, _, isMatchup := normalize.SplitMatchup(team); isMatchup {
				team = away
			}
			return models.Selection{Team: team}, models.KindMoneyline, true
		}
	}

	return models.Selection{}, "", false
}

func extractOdds(w *models.Wager, lines []string) {
	for _, line := range lines {
		if m := oddsPattern.FindStringSubmatch(line); m != nil {
			if v, err := strconv.Atoi(m[1]); err == nil {
				w.OpeningOdds = v
				return
			}
		}
	}
}

func extractMoney(w *models.Wager, block string) {
	if m := stakeToWinPattern.FindStringSubmatch(block); m != nil {
		w.Stake = parseMoney(m[1])
		w.PotentialPayout = parseMoney(m[2])
		return
	}
	if m := stakePattern.FindStringSubmatch(block); m != nil {
		w.Stake = parseMoney(m[1])
	}
	if m := payoutPattern.FindStringSubmatch(block); m != nil {
		w.PotentialPayout = parseMoney(m[1])
	}
}

func extractStartTime(block string) (time.Time, bool) {
	m := datePattern.FindStringSubmatch(block)
	if m == nil {
		return time.Time{}, false
	}
	candidate := strings.Join(strings.Fields(m[1]), " ")
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, candidate); err == nil {
			if ts.Year() == 0 {
				now := time.Now()
				ts = ts.AddDate(now.Year(), 0, 0)
			}
			return ts, true
		}
	}
	return time.Time{}, false
}

func extractTeaserPoints(block string) float64 {
	m := teaserPoints.FindStringSubmatch(block)
	if m == nil {
		return 0
	}
	for _, g := range m[1:] {
		if g != "" {
			v, _ := strconv.ParseFloat(g, 64)
			return v
		}
	}
	return 0
}

// derivePayout fills PotentialPayout from the odds when the slip did not
// state it. Payout is the net win amount, not the returned stake.
func derivePayout(w *models.Wager) {
	if !w.PotentialPayout.IsZero() || w.Stake.IsZero() || w.OpeningOdds == 0 {
		return
	}
	mult := odds.AmericanToDecimal(w.OpeningOdds) - 1.0
	w.PotentialPayout = w.Stake.Mul(decimal.NewFromFloat(mult)).Round(2)
}

func findMatchup(lines []string) (string, string, bool) {
	for _, line := range lines {
		cleaned := oddsPattern.ReplaceAllString(line, "")
		cleaned = datePattern.ReplaceAllString(cleaned, "")
		if away, home, ok := normalize.SplitMatchup(cleaned); ok {
			return away, home, true
		}
	}
	return "", "", false
}

func direction(s string) models.OverUnder {
	if strings.EqualFold(s, "under") {
		return models.Under
	}
	return models.Over
}

func parseMoney(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func prefix(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) > n {
		return s[:n]
	}
	return s
}
