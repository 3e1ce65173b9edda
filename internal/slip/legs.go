package slip

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/XavierBriggs/Themis/internal/normalize"
	"github.com/XavierBriggs/Themis/pkg/models"
)

// Legs persist as annotated lines inside the parent wager's Notes field,
// one leg per line, so settlement passes can re-derive them without a
// separate storage entity:
//
//	[2026-01-15 19:30] [basketball_nba] Celtics vs Heat | spread Celtics -4.5 <pending>
//	[TBD] [americanfootball_nfl] Bengals vs Ravens | total over 47.0 {teased 39.5} <won>
//
// The {teased N} annotation records the effective post-adjustment line.

const legTimeLayout = "2006-01-02 15:04"

var legLinePattern = regexp.MustCompile(`^\[([^\]]*)\]\s+\[([^\]]+)\]\s+(.*?)\s+\|\s+(moneyline|spread|total|prop)\s+(.+?)(?:\s+\{teased\s+([+-]?\d+(?:\.\d+)?)\})?\s+<(pending|live|won|lost|push)>$`)

var (
	legSpreadSel = regexp.MustCompile(`^(.*)\s+([+-]?\d+(?:\.\d+)?)$`)
	legTotalSel  = regexp.MustCompile(`(?i)^(over|under)\s+(\d+(?:\.\d+)?)$`)
	legPropSel   = regexp.MustCompile(`(?i)^(.*?)\s+(over|under)\s+(\d+(?:\.\d+)?)\s+(\S+)$`)
)

// SerializeLegs renders legs back into the Notes encoding, one per line.
func SerializeLegs(legs []models.WagerLeg) string {
	lines := make([]string, 0, len(legs))
	for _, leg := range legs {
		lines = append(lines, serializeLeg(leg))
	}
	return strings.Join(lines, "\n")
}

func serializeLeg(leg models.WagerLeg) string {
	ts := "TBD"
	if !leg.StartTime.IsZero() {
		ts = leg.StartTime.UTC().Format(legTimeLayout)
	}

	descriptor := leg.HomeTeam
	if leg.AwayTeam != "" {
		descriptor = leg.AwayTeam + " vs " + leg.HomeTeam
	}

	var sel string
	switch leg.Kind {
	case models.KindSpread:
		sel = fmt.Sprintf("spread %s %+g", leg.Selection.Team, leg.Selection.Line)
	case models.KindTotal:
		sel = fmt.Sprintf("total %s %g", leg.Selection.Direction, leg.Selection.Line)
	case models.KindPlayerProp:
		sel = fmt.Sprintf("prop %s %s %g %s", leg.Selection.Player, leg.Selection.Direction, leg.Selection.Line, leg.Selection.Stat)
	default:
		sel = "moneyline " + leg.Selection.Team
	}

	teased := ""
	if leg.Teased {
		teased = fmt.Sprintf(" {teased %g}", leg.TeasedLine)
	}

	return fmt.Sprintf("[%s] [%s] %s | %s%s <%s>", ts, leg.Sport, descriptor, sel, teased, leg.Status)
}

// ParseLegs re-derives legs from a wager's Notes. Lines that do not match
// the leg grammar are ignored: notes may also carry free-form text.
func ParseLegs(notes string) []models.WagerLeg {
	var legs []models.WagerLeg
	for _, line := range strings.Split(notes, "\n") {
		leg, ok := parseLegLine(strings.TrimSpace(line))
		if ok {
			legs = append(legs, leg)
		}
	}
	return legs
}

func parseLegLine(line string) (models.WagerLeg, bool) {
	m := legLinePattern.FindStringSubmatch(line)
	if m == nil {
		return models.WagerLeg{}, false
	}

	leg := models.WagerLeg{
		Sport:  models.SportCode(m[2]),
		Status: models.LegStatus(m[7]),
	}

	if m[1] != "TBD" {
		if ts, err := time.Parse(legTimeLayout, m[1]); err == nil {
			leg.StartTime = ts
		}
	}

	if away, home, ok := normalize.SplitMatchup(m[3]); ok {
		leg.AwayTeam, leg.HomeTeam = away, home
	} else {
		leg.HomeTeam = m[3]
	}

	if m[6] != "" {
		leg.Teased = true
		leg.TeasedLine, _ = strconv.ParseFloat(m[6], 64)
	}

	sel := m[5]
	switch m[4] {
	case "spread":
		sm := legSpreadSel.FindStringSubmatch(sel)
		if sm == nil {
			return models.WagerLeg{}, false
		}
		leg.Kind = models.KindSpread
		leg.Selection.Team = strings.TrimSpace(sm[1])
		leg.Selection.Line, _ = strconv.ParseFloat(sm[2], 64)
	case "total":
		tm := legTotalSel.FindStringSubmatch(sel)
		if tm == nil {
			return models.WagerLeg{}, false
		}
		leg.Kind = models.KindTotal
		leg.Selection.Direction = direction(tm[1])
		leg.Selection.Line, _ = strconv.ParseFloat(tm[2], 64)
	case "prop":
		pm := legPropSel.FindStringSubmatch(sel)
		if pm == nil {
			return models.WagerLeg{}, false
		}
		leg.Kind = models.KindPlayerProp
		leg.Selection.Player = strings.TrimSpace(pm[1])
		leg.Selection.Direction = direction(pm[2])
		leg.Selection.Line, _ = strconv.ParseFloat(pm[3], 64)
		leg.Selection.Stat = pm[4]
	default:
		leg.Kind = models.KindMoneyline
		leg.Selection.Team = strings.TrimSpace(sel)
	}

	return leg, true
}

// AdjustTeaserLine applies the teaser point adjustment in the bettor's
// favor. Overs and favorites get an easier number (line reduced toward or
// past zero for totals, spread shifted up); unders get the line raised.
// Spread legs always shift by +points: -7.5 becomes -1.5 for favorites,
// +3.5 becomes +9.5 for dogs.
func AdjustTeaserLine(kind models.BetKind, dir models.OverUnder, line, points float64) float64 {
	if points == 0 {
		return line
	}
	switch kind {
	case models.KindTotal:
		if dir == models.Over {
			return line - points
		}
		return line + points
	case models.KindSpread:
		return line + points
	default:
		return line
	}
}

// parseMultiLeg decomposes a parlay/teaser block: every line that matches
// a leg-shaped pattern becomes an ordered leg; the legs serialize into the
// wager's Notes verbatim. teaserPts is zero for plain parlays.
func parseMultiLeg(w *models.Wager, lines []string, teaserPts float64) error {
	var legs []models.WagerLeg

	for _, line := range lines {
		if parlayMarker.MatchString(line) || teaserMarker.MatchString(line) {
			continue
		}
		leg, ok := parseLegFromSlipLine(line)
		if !ok {
			continue
		}
		if teaserPts != 0 && (leg.Kind == models.KindSpread || leg.Kind == models.KindTotal) {
			leg.Teased = true
			leg.TeasedLine = AdjustTeaserLine(leg.Kind, leg.Selection.Direction, leg.Selection.Line, teaserPts)
		}
		legs = append(legs, leg)
	}

	if len(legs) < 2 {
		return fmt.Errorf("multi-leg bet with %d parseable legs", len(legs))
	}

	if w.OpeningOdds == 0 {
		return fmt.Errorf("no odds found")
	}
	derivePayout(w)

	// The parent wager's sport is whichever the first leg resolved to;
	// mixed-sport parlays are normal and legs carry their own codes.
	w.Sport = legs[0].Sport
	w.AwayTeam, w.HomeTeam = legs[0].AwayTeam, legs[0].HomeTeam
	w.Notes = SerializeLegs(legs)

	return nil
}

// parseLegFromSlipLine classifies one raw slip line as a leg. Moneyline
// legs require an explicit ML mark so stake/odds lines don't misparse.
func parseLegFromSlipLine(line string) (models.WagerLeg, bool) {
	leg := models.WagerLeg{Status: models.LegPending, Sport: normalize.ResolveSport(line)}

	if ts, ok := extractStartTime(line); ok {
		leg.StartTime = ts
	}
	cleaned := datePattern.ReplaceAllString(line, "")
	cleaned = strings.TrimSpace(oddsPattern.ReplaceAllString(cleaned, ""))
	if cleaned == "" {
		return models.WagerLeg{}, false
	}
	if stakeToWinPattern.MatchString(cleaned) || stakePattern.MatchString(cleaned) || payoutPattern.MatchString(cleaned) {
		return models.WagerLeg{}, false
	}

	if away, home, ok := findMatchup([]string{cleaned}); ok {
		leg.AwayTeam, leg.HomeTeam = away, home
	}

	sel, kind, ok := classifySelection([]string{cleaned})
	if !ok {
		return models.WagerLeg{}, false
	}
	if kind == models.KindMoneyline && !moneylineMark.MatchString(cleaned) {
		return models.WagerLeg{}, false
	}
	if leg.HomeTeam == "" && leg.AwayTeam == "" && sel.Team != "" {
		leg.HomeTeam = sel.Team
	}

	leg.Kind = kind
	leg.Selection = sel
	return leg, true
}
