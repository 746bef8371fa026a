package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/freedom-sidecar/internal/logger"
	"github.com/MKhiriev/freedom-sidecar/internal/store"
	"github.com/MKhiriev/freedom-sidecar/models"
)

// DefaultBalanceInterval is used when the observer is built with a
// non-positive interval.
const DefaultBalanceInterval = 30 * time.Second

// BalanceObserver periodically asks the engine for a wallet's spendable
// balance and records every answer. It is idle until Start is called.
type BalanceObserver struct {
	source   BalanceSource
	balances store.BalanceRepository
	interval time.Duration
	logger   *logger.Logger

	mu       sync.Mutex
	cancel   context.CancelFunc
	walletID string
	wg       sync.WaitGroup
}

// NewBalanceObserver builds an observer writing into balances.
func NewBalanceObserver(source BalanceSource, balances store.BalanceRepository, interval time.Duration, log *logger.Logger) *BalanceObserver {
	if interval <= 0 {
		interval = DefaultBalanceInterval
	}
	return &BalanceObserver{
		source:   source,
		balances: balances,
		interval: interval,
		logger:   log,
	}
}

// Start stops any running observation, then observes walletID once right
// away and every interval after that. The loop outlives ctx's cancellation
// (a request context usually) and only ends on Stop.
func (o *BalanceObserver) Start(ctx context.Context, walletID string) {
	o.Stop()

	o.mu.Lock()
	jobCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	o.cancel = cancel
	o.walletID = walletID
	o.wg.Add(1)
	o.mu.Unlock()

	log := o.logger.With().Str("wallet_id", walletID).Logger()
	log.Info().Dur("interval", o.interval).Msg("balance observation started")

	go func() {
		defer o.wg.Done()
		t := time.NewTicker(o.interval)
		defer t.Stop()

		o.observe(jobCtx, walletID)
		for {
			select {
			case <-jobCtx.Done():
				log.Info().Msg("balance observation stopped")
				return
			case <-t.C:
				o.observe(jobCtx, walletID)
			}
		}
	}()
}

// Stop cancels the observation loop and waits for it to exit. It is a no-op
// when nothing runs.
func (o *BalanceObserver) Stop() {
	o.mu.Lock()
	cancel := o.cancel
	o.cancel = nil
	o.walletID = ""
	o.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	o.wg.Wait()
}

// Running reports the observed wallet, if any.
func (o *BalanceObserver) Running() (string, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.walletID, o.cancel != nil
}

func (o *BalanceObserver) observe(ctx context.Context, walletID string) {
	wei, err := o.source.SpendableBalance(ctx, walletID)
	if err != nil {
		if ctx.Err() == nil {
			o.logger.Warn().Err(err).Str("wallet_id", walletID).Msg("balance observation failed")
		}
		return
	}

	err = o.balances.Save(ctx, models.BalanceSnapshot{
		WalletID:   walletID,
		BalanceWei: wei,
		ObservedAt: time.Now().UTC(),
	})
	if err != nil && ctx.Err() == nil {
		o.logger.Err(err).Str("wallet_id", walletID).Msg("error saving balance snapshot")
	}
}
