// Package theoddsapi adapts The Odds API scores endpoint to the
// ProviderAdapter contract. It is a score-only fallback: no box scores,
// but broad sport coverage and reliable completion flags.
package theoddsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/XavierBriggs/Themis/internal/normalize"
	"github.com/XavierBriggs/Themis/pkg/contracts"
	"github.com/XavierBriggs/Themis/pkg/models"
)

const (
	baseURL    = "https://api.the-odds-api.com"
	apiVersion = "v4"
	userAgent  = "Themis/1.0 (Fortuna Settlement Engine)"
	timeout    = 10 * time.Second
	maxRetries = 3
	retryDelay = 2 * time.Second

	// Scores endpoint window: completed games stay retrievable this long.
	daysFrom = 3
)

var supportedSports = map[models.SportCode]bool{
	models.SportNBA:   true,
	models.SportNFL:   true,
	models.SportNHL:   true,
	models.SportMLB:   true,
	models.SportNCAAF: true,
	models.SportNCAAB: true,
	models.SportMMA:   true,
}

// RateLimits tracks remaining vendor quota from response headers.
type RateLimits struct {
	RequestsRemaining int
	RequestsUsed      int
}

// Client implements the ProviderAdapter interface for The Odds API.
type Client struct {
	apiKey     string
	httpClient *http.Client
	rateLimits RateLimits
	mu         sync.RWMutex
}

var _ contracts.ProviderAdapter = (*Client)(nil)

// NewClient creates a new The Odds API scores client.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		rateLimits: RateLimits{RequestsRemaining: 500},
	}
}

func (c *Client) Name() string { return "theoddsapi" }

func (c *Client) SupportsSport(sport models.SportCode) bool {
	return supportedSports[sport]
}

func (c *Client) SupportsPlayerStats() bool { return false }

// FindGame fetches recent and live scores for the sport and matches the
// team pair by normalized name.
func (c *Client) FindGame(ctx context.Context, sport models.SportCode, teamA, teamB string, approxDate time.Time) (*models.GameSnapshot, error) {
	endpoint := fmt.Sprintf("%s/%s/sports/%s/scores", baseURL, apiVersion, sport)

	params := url.Values{}
	params.Set("apiKey", c.apiKey)
	params.Set("daysFrom", strconv.Itoa(daysFrom))
	params.Set("dateFormat", "iso")

	body, err := c.doRequestWithRetry(ctx, endpoint+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("fetch scores failed: %w", err)
	}

	var apiResp []scoreResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("parse scores response: %w", err)
	}

	for _, game := range apiResp {
		if !matchesPair(game.AwayTeam, game.HomeTeam, teamA, teamB) {
			continue
		}
		return game.toSnapshot(sport), nil
	}

	return nil, contracts.ErrGameNotFound
}

// FetchBoxScore is unsupported: The Odds API carries no player stats.
func (c *Client) FetchBoxScore(ctx context.Context, sport models.SportCode, gameID string, date time.Time) (*models.BoxScore, error) {
	return nil, contracts.ErrBoxScoreUnavailable
}

// GetRateLimits returns the last observed vendor quota.
func (c *Client) GetRateLimits() RateLimits {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rateLimits
}

// doRequestWithRetry performs HTTP requests with exponential backoff.
// Client errors other than 429 are not retried.
func (c *Client) doRequestWithRetry(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			backoff := retryDelay * time.Duration(1<<uint(attempt-1))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		body, err := c.doRequest(ctx, fullURL)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if httpErr, ok := err.(*httpError); ok {
			if httpErr.StatusCode >= 400 && httpErr.StatusCode < 500 && httpErr.StatusCode != 429 {
				return nil, err
			}
		}
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

func (c *Client) doRequest(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	c.updateRateLimits(resp.Header)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &httpError{StatusCode: resp.StatusCode, Message: string(body)}
	}

	return body, nil
}

func (c *Client) updateRateLimits(headers http.Header) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if remaining := headers.Get("x-requests-remaining"); remaining != "" {
		if val, err := strconv.Atoi(remaining); err == nil {
			c.rateLimits.RequestsRemaining = val
		}
	}
	if used := headers.Get("x-requests-used"); used != "" {
		if val, err := strconv.Atoi(used); err == nil {
			c.rateLimits.RequestsUsed = val
		}
	}
}

func matchesPair(away, home, teamA, teamB string) bool {
	if teamB == "" {
		return normalize.MatchName(away, teamA) || normalize.MatchName(home, teamA)
	}
	direct := normalize.MatchName(away, teamA) && normalize.MatchName(home, teamB)
	flipped := normalize.MatchName(away, teamB) && normalize.MatchName(home, teamA)
	return direct || flipped
}

// httpError represents an HTTP error with status code.
type httpError struct {
	StatusCode int
	Message    string
}

func (e *httpError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// scoreResponse matches The Odds API scores JSON.
type scoreResponse struct {
	ID           string      `json:"id"`
	SportKey     string      `json:"sport_key"`
	CommenceTime string      `json:"commence_time"`
	Completed    bool        `json:"completed"`
	HomeTeam     string      `json:"home_team"`
	AwayTeam     string      `json:"away_team"`
	Scores       []teamScore `json:"scores"`
	LastUpdate   string      `json:"last_update"`
}

type teamScore struct {
	Name  string `json:"name"`
	Score string `json:"score"`
}

func (r *scoreResponse) toSnapshot(sport models.SportCode) *models.GameSnapshot {
	snap := &models.GameSnapshot{
		GameID:    r.ID,
		Provider:  "theoddsapi",
		SportKey:  sport,
		AwayTeam:  r.AwayTeam,
		HomeTeam:  r.HomeTeam,
		FetchedAt: time.Now().UTC(),
	}

	if ts, err := time.Parse(time.RFC3339, r.CommenceTime); err == nil {
		snap.CommenceTime = ts
	}

	for _, s := range r.Scores {
		score, _ := strconv.Atoi(s.Score)
		if normalize.MatchName(s.Name, r.HomeTeam) {
			snap.HomeScore = score
		} else if normalize.MatchName(s.Name, r.AwayTeam) {
			snap.AwayScore = score
		}
	}

	started := !snap.CommenceTime.IsZero() && time.Now().After(snap.CommenceTime)
	snap.IsComplete = r.Completed
	snap.IsLive = started && !r.Completed && len(r.Scores) > 0

	switch {
	case snap.IsComplete:
		snap.StatusText = "Final"
	case snap.IsLive:
		snap.StatusText = fmt.Sprintf("In progress %d-%d", snap.AwayScore, snap.HomeScore)
	default:
		snap.StatusText = "Scheduled"
	}

	return snap
}
