// Package espn adapts ESPN's public site API to the ProviderAdapter
// contract. ESPN is the richest provider in the chain: it carries live
// status detail and full box scores for every sport we settle.
package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/XavierBriggs/Themis/internal/normalize"
	"github.com/XavierBriggs/Themis/pkg/contracts"
	"github.com/XavierBriggs/Themis/pkg/models"
	"golang.org/x/time/rate"
)

const (
	baseURL   = "https://site.api.espn.com/apis/site/v2/sports"
	userAgent = "Mozilla/5.0 (compatible; ThemisBot/1.0)"
	timeout   = 15 * time.Second
)

// Date offsets searched around the slip date: provider date semantics
// (local vs UTC, schedule slippage) are unreliable, and recently completed
// games can sit a few days back.
var searchOffsets = []int{0, -1, 1, -2, -3}

var sportPaths = map[models.SportCode]string{
	models.SportNBA:   "basketball/nba",
	models.SportNFL:   "football/nfl",
	models.SportNHL:   "hockey/nhl",
	models.SportMLB:   "baseball/mlb",
	models.SportNCAAF: "football/college-football",
	models.SportNCAAB: "basketball/mens-college-basketball",
}

// Client implements the ProviderAdapter interface for ESPN.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
}

var _ contracts.ProviderAdapter = (*Client)(nil)

// NewClient creates an ESPN adapter. ESPN has no published quota; the
// limiter keeps us to a polite request rate regardless.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Every(500*time.Millisecond), 2),
	}
}

func (c *Client) Name() string { return "espn" }

func (c *Client) SupportsSport(sport models.SportCode) bool {
	_, ok := sportPaths[sport]
	return ok
}

func (c *Client) SupportsPlayerStats() bool { return true }

// FindGame searches the scoreboard across the date window for a game
// matching both team names.
func (c *Client) FindGame(ctx context.Context, sport models.SportCode, teamA, teamB string, approxDate time.Time) (*models.GameSnapshot, error) {
	path, ok := sportPaths[sport]
	if !ok {
		return nil, fmt.Errorf("espn: unsupported sport %s", sport)
	}
	if approxDate.IsZero() {
		approxDate = time.Now()
	}

	for _, offset := range searchOffsets {
		date := approxDate.AddDate(0, 0, offset)
		board, err := c.fetchScoreboard(ctx, path, date)
		if err != nil {
			return nil, fmt.Errorf("espn scoreboard: %w", err)
		}

		for _, evt := range board.Events {
			snap := evt.toSnapshot(sport)
			if matchesPair(snap, teamA, teamB) {
				return snap, nil
			}
		}
	}

	return nil, contracts.ErrGameNotFound
}

// FetchBoxScore retrieves the game summary and normalizes its per-player
// stat tables.
func (c *Client) FetchBoxScore(ctx context.Context, sport models.SportCode, gameID string, date time.Time) (*models.BoxScore, error) {
	path, ok := sportPaths[sport]
	if !ok {
		return nil, fmt.Errorf("espn: unsupported sport %s", sport)
	}

	url := fmt.Sprintf("%s/%s/summary?event=%s", baseURL, path, gameID)
	var resp summaryResponse
	if err := c.fetch(ctx, url, &resp); err != nil {
		return nil, fmt.Errorf("espn summary: %w", err)
	}

	box := normalizeBoxScore(gameID, sport, &resp)
	if len(box.AwayPlayers) == 0 && len(box.HomePlayers) == 0 {
		return nil, contracts.ErrBoxScoreUnavailable
	}
	return box, nil
}

func (c *Client) fetchScoreboard(ctx context.Context, sportPath string, date time.Time) (*scoreboardResponse, error) {
	url := fmt.Sprintf("%s/%s/scoreboard?dates=%s", baseURL, sportPath, date.Format("20060102"))
	var resp scoreboardResponse
	if err := c.fetch(ctx, url, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) fetch(ctx context.Context, url string, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("espn status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func matchesPair(snap *models.GameSnapshot, teamA, teamB string) bool {
	if teamB == "" {
		// Half a descriptor is enough when the slip only named one side.
		return normalize.MatchName(snap.AwayTeam, teamA) || normalize.MatchName(snap.HomeTeam, teamA)
	}
	direct := normalize.MatchName(snap.AwayTeam, teamA) && normalize.MatchName(snap.HomeTeam, teamB)
	flipped := normalize.MatchName(snap.AwayTeam, teamB) && normalize.MatchName(snap.HomeTeam, teamA)
	return direct || flipped
}
