// Package balldontlie adapts the balldontlie NBA API to the
// ProviderAdapter contract. NBA only, but its box scores come with stable
// player IDs, which makes prop settlement a join instead of a fuzzy name
// match.
package balldontlie

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/XavierBriggs/Themis/internal/normalize"
	"github.com/XavierBriggs/Themis/pkg/contracts"
	"github.com/XavierBriggs/Themis/pkg/models"
	"golang.org/x/time/rate"
)

const (
	baseURL = "https://api.balldontlie.io/v1"
	timeout = 10 * time.Second
)

var searchOffsets = []int{0, -1, 1, -2}

// Client implements the ProviderAdapter interface for balldontlie.
type Client struct {
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

var _ contracts.ProviderAdapter = (*Client)(nil)

// NewClient creates a balldontlie adapter. The free tier allows 5
// requests per minute; the limiter enforces that ceiling.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Every(12*time.Second), 1),
	}
}

func (c *Client) Name() string { return "balldontlie" }

func (c *Client) SupportsSport(sport models.SportCode) bool {
	return sport == models.SportNBA
}

func (c *Client) SupportsPlayerStats() bool { return true }

// FindGame searches games by date window and matches the team pair.
func (c *Client) FindGame(ctx context.Context, sport models.SportCode, teamA, teamB string, approxDate time.Time) (*models.GameSnapshot, error) {
	if sport != models.SportNBA {
		return nil, fmt.Errorf("balldontlie: unsupported sport %s", sport)
	}
	if approxDate.IsZero() {
		approxDate = time.Now()
	}

	params := url.Values{}
	for _, offset := range searchOffsets {
		params.Add("dates[]", approxDate.AddDate(0, 0, offset).Format("2006-01-02"))
	}
	params.Set("per_page", "100")

	var resp gamesResponse
	if err := c.fetch(ctx, baseURL+"/games?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("balldontlie games: %w", err)
	}

	for _, g := range resp.Data {
		if !matchesPair(g.VisitorTeam.FullName, g.HomeTeam.FullName, teamA, teamB) {
			continue
		}
		return g.toSnapshot(), nil
	}

	return nil, contracts.ErrGameNotFound
}

// FetchBoxScore retrieves per-player stat rows for a game.
func (c *Client) FetchBoxScore(ctx context.Context, sport models.SportCode, gameID string, date time.Time) (*models.BoxScore, error) {
	params := url.Values{}
	params.Set("game_ids[]", gameID)
	params.Set("per_page", "100")

	var resp statsResponse
	if err := c.fetch(ctx, baseURL+"/stats?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("balldontlie stats: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, contracts.ErrBoxScoreUnavailable
	}

	box := &models.BoxScore{GameID: gameID, Provider: "balldontlie"}
	for _, row := range resp.Data {
		line := models.PlayerLine{
			PlayerID:   strconv.Itoa(row.Player.ID),
			PlayerName: strings.TrimSpace(row.Player.FirstName + " " + row.Player.LastName),
			TeamAbbr:   row.Team.Abbreviation,
			Stats: map[string]float64{
				"pts": float64(row.Pts),
				"reb": float64(row.Reb),
				"ast": float64(row.Ast),
				"stl": float64(row.Stl),
				"blk": float64(row.Blk),
				"to":  float64(row.Turnover),
				"3pm": float64(row.Fg3m),
			},
		}
		if row.Game.HomeTeamID == row.Team.ID {
			box.HomePlayers = append(box.HomePlayers, line)
		} else {
			box.AwayPlayers = append(box.AwayPlayers, line)
		}
	}

	return box, nil
}

func (c *Client) fetch(ctx context.Context, fullURL string, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("balldontlie status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func matchesPair(away, home, teamA, teamB string) bool {
	if teamB == "" {
		return normalize.MatchName(away, teamA) || normalize.MatchName(home, teamA)
	}
	direct := normalize.MatchName(away, teamA) && normalize.MatchName(home, teamB)
	flipped := normalize.MatchName(away, teamB) && normalize.MatchName(home, teamA)
	return direct || flipped
}

// balldontlie keys scores as home_team_score/visitor_team_score where
// other providers use home_score/away_score; normalization happens here.

type gamesResponse struct {
	Data []game `json:"data"`
}

type game struct {
	ID               int     `json:"id"`
	Date             string  `json:"date"`
	Status           string  `json:"status"` // "Final", "3rd Qtr", "7:00 pm ET"
	Period           int     `json:"period"`
	TimeRemaining    string  `json:"time"`
	HomeTeam         bdlTeam `json:"home_team"`
	VisitorTeam      bdlTeam `json:"visitor_team"`
	HomeTeamScore    int     `json:"home_team_score"`
	VisitorTeamScore int     `json:"visitor_team_score"`
}

type bdlTeam struct {
	ID           int    `json:"id"`
	FullName     string `json:"full_name"`
	Abbreviation string `json:"abbreviation"`
}

type statsResponse struct {
	Data []statRow `json:"data"`
}

type statRow struct {
	Player   bdlPlayer `json:"player"`
	Team     bdlTeam   `json:"team"`
	Game     statGame  `json:"game"`
	Pts      int       `json:"pts"`
	Reb      int       `json:"reb"`
	Ast      int       `json:"ast"`
	Stl      int       `json:"stl"`
	Blk      int       `json:"blk"`
	Turnover int       `json:"turnover"`
	Fg3m     int       `json:"fg3m"`
}

type bdlPlayer struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type statGame struct {
	HomeTeamID int `json:"home_team_id"`
}

func (g *game) toSnapshot() *models.GameSnapshot {
	snap := &models.GameSnapshot{
		GameID:     strconv.Itoa(g.ID),
		Provider:   "balldontlie",
		SportKey:   models.SportNBA,
		AwayTeam:   g.VisitorTeam.FullName,
		HomeTeam:   g.HomeTeam.FullName,
		AwayScore:  g.VisitorTeamScore,
		HomeScore:  g.HomeTeamScore,
		StatusText: g.Status,
		IsComplete: g.Status == "Final",
		IsLive:     g.Period > 0 && g.Status != "Final",
		FetchedAt:  time.Now().UTC(),
	}

	if ts, err := time.Parse("2006-01-02", g.Date); err == nil {
		snap.CommenceTime = ts
	}

	return snap
}
