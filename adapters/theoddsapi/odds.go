package theoddsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/XavierBriggs/Themis/internal/normalize"
	"github.com/XavierBriggs/Themis/pkg/contracts"
	"github.com/XavierBriggs/Themis/pkg/models"
)

type oddsEvent struct {
	ID           string      `json:"id"`
	HomeTeam     string      `json:"home_team"`
	AwayTeam     string      `json:"away_team"`
	CommenceTime time.Time   `json:"commence_time"`
	Bookmakers   []bookmaker `json:"bookmakers"`
}

type bookmaker struct {
	Key        string    `json:"key"`
	LastUpdate time.Time `json:"last_update"`
	Markets    []market  `json:"markets"`
}

type market struct {
	Key      string    `json:"key"`
	Outcomes []outcome `json:"outcomes"`
}

type outcome struct {
	Name  string  `json:"name"`
	Price int     `json:"price"`
	Point float64 `json:"point"`
}

// CurrentQuote fetches the live market price backing a wager's selection,
// used by the CLV refresh to compare against the booked odds. Player
// props are not on the featured odds surface, so prop quotes are
// unavailable here.
func (c *Client) CurrentQuote(ctx context.Context, sport models.SportCode, w *models.Wager) (*contracts.MarketQuote, error) {
	if w.Kind == models.KindPlayerProp || w.IsMultiLeg() {
		return nil, contracts.ErrQuoteUnavailable
	}

	endpoint := fmt.Sprintf("%s/%s/sports/%s/odds", baseURL, apiVersion, sport)

	params := url.Values{}
	params.Set("apiKey", c.apiKey)
	params.Set("regions", "us")
	params.Set("markets", "h2h,spreads,totals")
	params.Set("oddsFormat", "american")
	params.Set("dateFormat", "iso")

	body, err := c.doRequestWithRetry(ctx, endpoint+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("fetch odds failed: %w", err)
	}

	var events []oddsEvent
	if err := json.Unmarshal(body, &events); err != nil {
		return nil, fmt.Errorf("parse odds response: %w", err)
	}

	for _, event := range events {
		if !matchesPair(event.AwayTeam, event.HomeTeam, w.AwayTeam, w.HomeTeam) {
			continue
		}
		return quoteFromEvent(&event, w)
	}
	return nil, contracts.ErrQuoteUnavailable
}

func quoteFromEvent(event *oddsEvent, w *models.Wager) (*contracts.MarketQuote, error) {
	marketKey := map[models.BetKind]string{
		models.KindMoneyline: "h2h",
		models.KindSpread:    "spreads",
		models.KindTotal:     "totals",
	}[w.Kind]
	if marketKey == "" {
		return nil, contracts.ErrQuoteUnavailable
	}

	for _, book := range event.Bookmakers {
		for _, m := range book.Markets {
			if m.Key != marketKey {
				continue
			}
			for _, o := range m.Outcomes {
				if !outcomeMatches(o, w) {
					continue
				}
				return &contracts.MarketQuote{
					Odds:       o.Price,
					Line:       o.Point,
					Book:       book.Key,
					LastUpdate: book.LastUpdate,
				}, nil
			}
		}
	}
	return nil, contracts.ErrQuoteUnavailable
}

func outcomeMatches(o outcome, w *models.Wager) bool {
	switch w.Kind {
	case models.KindMoneyline, models.KindSpread:
		return normalize.MatchName(o.Name, w.Selection.Team)
	case models.KindTotal:
		return normalize.Fold(o.Name) == string(w.Selection.Direction)
	}
	return false
}
