package contracts

import (
	"context"
	"errors"
	"time"

	"github.com/XavierBriggs/Themis/pkg/models"
)

// ErrQuoteUnavailable is returned when no book is currently quoting the
// market behind a wager's selection.
var ErrQuoteUnavailable = errors.New("market quote unavailable")

// MarketQuote is one book's current price on a market side.
type MarketQuote struct {
	Odds       int // American
	Line       float64
	Book       string
	LastUpdate time.Time
}

// QuoteSource resolves the live market price for a wager's selection.
// The CLV model compares it against the booked opening odds.
type QuoteSource interface {
	CurrentQuote(ctx context.Context, sport models.SportCode, w *models.Wager) (*MarketQuote, error)
}
