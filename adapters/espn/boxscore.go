package espn

import (
	"strconv"
	"strings"
	"time"

	"github.com/XavierBriggs/Themis/pkg/models"
)

// ESPN response structures, trimmed to the fields we consume.

type scoreboardResponse struct {
	Events []event `json:"events"`
}

type event struct {
	ID           string        `json:"id"`
	Date         string        `json:"date"`
	Status       eventStatus   `json:"status"`
	Competitions []competition `json:"competitions"`
}

type eventStatus struct {
	Type statusType `json:"type"`
}

type statusType struct {
	State       string `json:"state"` // pre, in, post
	Completed   bool   `json:"completed"`
	ShortDetail string `json:"shortDetail"`
}

type competition struct {
	Competitors []competitor `json:"competitors"`
}

type competitor struct {
	HomeAway string `json:"homeAway"`
	Score    string `json:"score"`
	Team     team   `json:"team"`
}

type team struct {
	DisplayName  string `json:"displayName"`
	Abbreviation string `json:"abbreviation"`
}

type summaryResponse struct {
	BoxScore summaryBoxScore `json:"boxscore"`
}

type summaryBoxScore struct {
	Players []playerGroup `json:"players"`
}

type playerGroup struct {
	Team       team            `json:"team"`
	HomeAway   string          `json:"homeAway"`
	Statistics []statCategory  `json:"statistics"`
}

type statCategory struct {
	Name     string    `json:"name"`  // "passing", "rushing", ... (empty for NBA)
	Names    []string  `json:"names"` // column labels, e.g. "PTS", "YDS"
	Athletes []athlete `json:"athletes"`
}

type athlete struct {
	Athlete athleteInfo `json:"athlete"`
	Stats   []string    `json:"stats"`
}

type athleteInfo struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

func (e *event) toSnapshot(sport models.SportCode) *models.GameSnapshot {
	snap := &models.GameSnapshot{
		GameID:     e.ID,
		Provider:   "espn",
		SportKey:   sport,
		StatusText: e.Status.Type.ShortDetail,
		IsLive:     e.Status.Type.State == "in",
		IsComplete: e.Status.Type.Completed,
		FetchedAt:  time.Now().UTC(),
	}

	if ts, err := time.Parse("2006-01-02T15:04Z", e.Date); err == nil {
		snap.CommenceTime = ts
	}

	if len(e.Competitions) > 0 {
		for _, comp := range e.Competitions[0].Competitors {
			score, _ := strconv.Atoi(comp.Score)
			if comp.HomeAway == "home" {
				snap.HomeTeam = comp.Team.DisplayName
				snap.HomeScore = score
			} else {
				snap.AwayTeam = comp.Team.DisplayName
				snap.AwayScore = score
			}
		}
	}

	return snap
}

// Column-label translation to canonical stat keys. ESPN labels columns
// per category; yardage and touchdown columns mean different stats
// depending on which category they sit in.
var plainLabels = map[string]string{
	"PTS": "pts",
	"REB": "reb",
	"AST": "ast",
	"STL": "stl",
	"BLK": "blk",
	"TO":  "to",
	"SOG": "sog",
	"SV":  "sv",
	"G":   "g",
	"HR":  "hr",
	"RBI": "rbi",
	"R":   "r",
	"H":   "h",
	"TB":  "tb",
	"K":   "so",
}

var categoryLabels = map[string]map[string]string{
	"passing":   {"YDS": "pass_yds", "TD": "pass_td", "INT": "int"},
	"rushing":   {"YDS": "rush_yds", "TD": "rush_td", "CAR": "car"},
	"receiving": {"YDS": "rec_yds", "TD": "rec_td", "REC": "rec", "TGTS": "tgts"},
	"pitching":  {"K": "so", "ER": "er", "IP": "ip"},
}

func normalizeBoxScore(gameID string, sport models.SportCode, resp *summaryResponse) *models.BoxScore {
	box := &models.BoxScore{GameID: gameID, Provider: "espn"}

	for _, group := range resp.BoxScore.Players {
		rows := map[string]*models.PlayerLine{}
		order := []string{}

		for _, category := range group.Statistics {
			for _, ath := range category.Athletes {
				row, ok := rows[ath.Athlete.ID]
				if !ok {
					row = &models.PlayerLine{
						PlayerID:   ath.Athlete.ID,
						PlayerName: ath.Athlete.DisplayName,
						TeamAbbr:   group.Team.Abbreviation,
						Stats:      map[string]float64{},
					}
					rows[ath.Athlete.ID] = row
					order = append(order, ath.Athlete.ID)
				}
				applyStats(row, category.Name, category.Names, ath.Stats)
			}
		}

		lines := make([]models.PlayerLine, 0, len(order))
		for _, id := range order {
			lines = append(lines, *rows[id])
		}
		if group.HomeAway == "home" {
			box.HomePlayers = append(box.HomePlayers, lines...)
		} else {
			box.AwayPlayers = append(box.AwayPlayers, lines...)
		}
	}

	return box
}

func applyStats(row *models.PlayerLine, category string, labels, values []string) {
	perCategory := categoryLabels[strings.ToLower(category)]

	for i, label := range labels {
		if i >= len(values) {
			break
		}
		key := ""
		if perCategory != nil {
			key = perCategory[label]
		}
		if key == "" {
			key = plainLabels[label]
		}
		if key == "" {
			// Made-attempted columns like "3PT" carry "3-7"; keep makes.
			if label == "3PT" {
				if made, ok := parseMade(values[i]); ok {
					row.Stats["3pm"] = made
				}
			}
			continue
		}
		if v, err := strconv.ParseFloat(values[i], 64); err == nil {
			row.Stats[key] = v
		}
	}
}

func parseMade(s string) (float64, bool) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return 0, false
	}
	v, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
