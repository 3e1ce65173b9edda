package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/XavierBriggs/Themis/internal/clv"
	"github.com/XavierBriggs/Themis/internal/metrics"
	"github.com/XavierBriggs/Themis/internal/settle"
	"github.com/XavierBriggs/Themis/pkg/contracts"
	"github.com/XavierBriggs/Themis/pkg/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Bounded worker batches: how many wagers evaluate concurrently and
	// the pacing delay between batches, protecting provider rate limits.
	batchSize   = 5
	batchPacing = 500 * time.Millisecond

	// Forced CLV refresh inside the closing window before tipoff.
	closingWindow   = 15 * time.Minute
	forcedThrottle  = 2 * time.Minute
	forcedCheckTick = time.Minute

	settledStream = "wagers.settled"
)

// Scheduler drives the periodic settlement and CLV passes over all
// active wagers.
type Scheduler struct {
	store     contracts.WagerStore
	evaluator *settle.Evaluator
	quotes    contracts.QuoteSource
	redis     *redis.Client

	userID         string
	settleInterval time.Duration
	clvInterval    time.Duration

	stopChan chan struct{}
	wg       sync.WaitGroup

	mu         sync.Mutex
	lastForced map[string]time.Time
}

// NewScheduler creates a scheduler over the given collaborators.
func NewScheduler(
	store contracts.WagerStore,
	evaluator *settle.Evaluator,
	quotes contracts.QuoteSource,
	redisClient *redis.Client,
	userID string,
	settleInterval, clvInterval time.Duration,
) *Scheduler {
	return &Scheduler{
		store:          store,
		evaluator:      evaluator,
		quotes:         quotes,
		redis:          redisClient,
		userID:         userID,
		settleInterval: settleInterval,
		clvInterval:    clvInterval,
		stopChan:       make(chan struct{}),
		lastForced:     make(map[string]time.Time),
	}
}

// Start launches the settlement, CLV, and closing-window loops.
func (s *Scheduler) Start(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runLoop(ctx, "Settle", s.settleInterval, s.settlementPass)
	}()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runLoop(ctx, "CLV", s.clvInterval, s.clvPass)
	}()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runLoop(ctx, "CLV-Window", forcedCheckTick, s.forcedCLVPass)
	}()

	fmt.Printf("✓ Scheduler started (settle every %v, CLV every %v)\n", s.settleInterval, s.clvInterval)
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	close(s.stopChan)
	s.wg.Wait()
	fmt.Println("✓ Scheduler stopped")
}

func (s *Scheduler) runLoop(ctx context.Context, name string, interval time.Duration, pass func(context.Context)) {
	// Initial pass immediately
	pass(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pass(ctx)
		case <-s.stopChan:
			return
		case <-ctx.Done():
			return
		}
	}
}

// settlementPass evaluates every active wager in bounded concurrent
// batches. One wager's failure never cancels its siblings; the whole
// pass either completes or is retried wholesale next tick.
func (s *Scheduler) settlementPass(ctx context.Context) {
	start := time.Now()
	wagers, err := s.store.GetActiveWagers(ctx, s.userID)
	if err != nil {
		fmt.Printf("[Settle] ✗ load active wagers: %v\n", err)
		return
	}
	if len(wagers) == 0 {
		return
	}

	for batchStart := 0; batchStart < len(wagers); batchStart += batchSize {
		end := batchStart + batchSize
		if end > len(wagers) {
			end = len(wagers)
		}

		var wg sync.WaitGroup
		for i := batchStart; i < end; i++ {
			wg.Add(1)
			go func(w models.Wager) {
				defer wg.Done()
				s.evaluateOne(ctx, &w)
			}(wagers[i])
		}
		wg.Wait()

		if end < len(wagers) {
			time.Sleep(batchPacing)
		}
	}

	metrics.SettlementPassDuration.Observe(time.Since(start).Seconds())
}

func (s *Scheduler) evaluateOne(ctx context.Context, w *models.Wager) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("[Settle] ✗ panic evaluating wager %s: %v\n", w.ID, r)
		}
	}()

	// Pending wagers whose game has started go live first.
	if w.Status == models.StatusPending && !w.StartTime.IsZero() && time.Now().After(w.StartTime) {
		if err := s.store.MarkActive(ctx, w.ID); err != nil {
			fmt.Printf("[Settle] ✗ mark active %s: %v\n", w.ID, err)
		} else {
			w.Status = models.StatusActive
		}
	}

	out := s.evaluator.Evaluate(ctx, w)

	if out.NotesChanged && !out.Verdict.Resolved() {
		if err := s.store.UpdateNotes(ctx, w.ID, out.Notes); err != nil {
			fmt.Printf("[Settle] ✗ update notes %s: %v\n", w.ID, err)
		}
	}

	if !out.Verdict.Resolved() {
		metrics.SettlementUndetermined.Inc()
		if out.Detail != "" && out.Detail != "already settled" {
			if err := s.store.RecordFetchError(ctx, w.ID, out.Detail); err != nil {
				fmt.Printf("[Settle] ✗ record diagnostic %s: %v\n", w.ID, err)
			}
		}
		return
	}

	upd := contracts.SettlementUpdate{
		Result: out.Verdict.Result(),
		Profit: out.Profit.StringFixed(2),
	}
	if out.NotesChanged {
		upd.Notes = out.Notes
	}

	err := s.store.Settle(ctx, w.ID, upd)
	if errors.Is(err, contracts.ErrAlreadySettled) {
		return // lost the race to a concurrent pass, profit stays single-counted
	}
	if err != nil {
		fmt.Printf("[Settle] ✗ settle %s: %v\n", w.ID, err)
		return
	}

	metrics.WagersSettled.WithLabelValues(string(out.Verdict)).Inc()
	fmt.Printf("[Settle] ✓ wager %s settled %s (%s)\n", w.ID, out.Verdict, out.Detail)
	s.publishSettled(ctx, w, out)
}

// publishSettled announces the settlement on the Redis stream so the
// bankroll and notification services react without polling.
func (s *Scheduler) publishSettled(ctx context.Context, w *models.Wager, out settle.Outcome) {
	if s.redis == nil {
		return
	}
	_, err := s.redis.XAdd(ctx, &redis.XAddArgs{
		Stream: settledStream,
		Values: map[string]interface{}{
			"wager_id":   w.ID,
			"result":     string(out.Verdict),
			"profit":     out.Profit.StringFixed(2),
			"settled_at": time.Now().UTC().Format(time.RFC3339),
		},
	}).Result()
	if err != nil {
		// Settlement is already durable; the stream is best effort.
		fmt.Printf("[Settle] warning: failed to publish stream event: %v\n", err)
	}
}

// clvPass refreshes closing-line value for all active wagers.
func (s *Scheduler) clvPass(ctx context.Context) {
	wagers, err := s.store.GetActiveWagers(ctx, s.userID)
	if err != nil {
		fmt.Printf("[CLV] ✗ load active wagers: %v\n", err)
		return
	}

	for i := range wagers {
		s.refreshCLV(ctx, &wagers[i])
	}
}

// forcedCLVPass refreshes wagers whose game starts inside the closing
// window, throttled per wager so the vendor quota survives busy slates.
func (s *Scheduler) forcedCLVPass(ctx context.Context) {
	wagers, err := s.store.GetActiveWagers(ctx, s.userID)
	if err != nil {
		return
	}

	now := time.Now()

	// Drop throttle entries older than the closing window: forcing only
	// happens before tipoff, so those games have started and the entry
	// would otherwise sit in the map for the life of the process.
	s.mu.Lock()
	for id, last := range s.lastForced {
		if now.Sub(last) > closingWindow {
			delete(s.lastForced, id)
		}
	}
	s.mu.Unlock()

	for i := range wagers {
		w := &wagers[i]
		if w.StartTime.IsZero() {
			continue
		}
		untilStart := w.StartTime.Sub(now)
		if untilStart <= 0 || untilStart > closingWindow {
			continue
		}

		s.mu.Lock()
		last, seen := s.lastForced[w.ID]
		throttled := seen && now.Sub(last) < forcedThrottle
		if !throttled {
			s.lastForced[w.ID] = now
		}
		s.mu.Unlock()
		if throttled {
			continue
		}

		s.refreshCLV(ctx, w)
	}
}

func (s *Scheduler) refreshCLV(ctx context.Context, w *models.Wager) {
	if s.quotes == nil || w.IsMultiLeg() {
		return
	}

	quote, err := s.quotes.CurrentQuote(ctx, w.Sport, w)
	if err != nil {
		if !errors.Is(err, contracts.ErrQuoteUnavailable) {
			fmt.Printf("[CLV] ✗ quote %s: %v\n", w.ID, err)
		}
		return
	}

	closing := quote.Odds
	if lineBearing(w.Kind) && quote.Line != w.Selection.Line {
		// The market has drifted off the booked line; estimate what the
		// booked line would price at before comparing.
		dir := w.Selection.Direction
		if w.Kind == models.KindSpread {
			// A spread gets easier as the handicap rises, same polarity
			// as an Under.
			dir = models.Under
		}
		adj := clv.AdjustLine(w.Sport, w.Selection.Stat, dir, quote.Line, w.Selection.Line, quote.Odds)
		closing = adj.EstimatedOdds
		if adj.Confidence == clv.ConfidenceLow {
			fmt.Printf("[CLV] wager %s: low-confidence line adjustment (%s)\n", w.ID, adj.Explanation)
		}
	}

	clvPct := clv.ComputeCLV(w.OpeningOdds, closing)
	ev := clv.ExpectedValue(w.Stake, clvPct)

	err = s.store.UpdateCLV(ctx, w.ID, contracts.CLVUpdate{
		ClosingOdds:   closing,
		CLVPercent:    clvPct,
		ExpectedValue: ev.StringFixed(2),
	})
	if err != nil {
		fmt.Printf("[CLV] ✗ persist %s: %v\n", w.ID, err)
		return
	}
	metrics.CLVRefreshes.Inc()
}

func lineBearing(kind models.BetKind) bool {
	return kind == models.KindSpread || kind == models.KindTotal || kind == models.KindPlayerProp
}
