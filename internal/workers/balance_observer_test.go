package workers

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/freedom-sidecar/internal/logger"
	"github.com/MKhiriev/freedom-sidecar/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spySource counts SpendableBalance calls and returns a growing balance.
type spySource struct {
	calls atomic.Int64
	err   error
}

func (s *spySource) SpendableBalance(_ context.Context, _ string) (*big.Int, error) {
	n := s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return big.NewInt(n * 1000), nil
}

// spyBalances records every saved snapshot.
type spyBalances struct {
	mu    sync.Mutex
	saved []models.BalanceSnapshot
	err   error
}

func (s *spyBalances) Save(_ context.Context, snapshot models.BalanceSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = append(s.saved, snapshot)
	return s.err
}

func (s *spyBalances) Latest(_ context.Context, _ string) (models.BalanceSnapshot, error) {
	return models.BalanceSnapshot{}, errors.New("not used")
}

func (s *spyBalances) snapshots() []models.BalanceSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.BalanceSnapshot(nil), s.saved...)
}

// ── Start / Stop ─────────────────────────────────────────────────────────────

func TestBalanceObserver_ObservesImmediately(t *testing.T) {
	src, repo := &spySource{}, &spyBalances{}
	o := NewBalanceObserver(src, repo, time.Hour, logger.Nop())

	o.Start(context.Background(), "w-1")
	defer o.Stop()

	require.Eventually(t, func() bool { return len(repo.snapshots()) == 1 }, time.Second, 5*time.Millisecond)

	got := repo.snapshots()[0]
	assert.Equal(t, "w-1", got.WalletID)
	assert.Equal(t, "1000", got.BalanceWei.String())
	assert.False(t, got.ObservedAt.IsZero())
}

func TestBalanceObserver_ObservesEveryInterval(t *testing.T) {
	src, repo := &spySource{}, &spyBalances{}
	o := NewBalanceObserver(src, repo, 10*time.Millisecond, logger.Nop())

	o.Start(context.Background(), "w-1")
	time.Sleep(55 * time.Millisecond)
	o.Stop()

	assert.GreaterOrEqual(t, src.calls.Load(), int64(3))
}

func TestBalanceObserver_StopStopsGoroutine(t *testing.T) {
	src, repo := &spySource{}, &spyBalances{}
	o := NewBalanceObserver(src, repo, 10*time.Millisecond, logger.Nop())

	o.Start(context.Background(), "w-1")
	time.Sleep(30 * time.Millisecond)
	o.Stop()

	callsAfterStop := src.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, callsAfterStop, src.calls.Load())

	_, running := o.Running()
	assert.False(t, running)
}

func TestBalanceObserver_OutlivesStartContext(t *testing.T) {
	src, repo := &spySource{}, &spyBalances{}
	o := NewBalanceObserver(src, repo, 10*time.Millisecond, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	o.Start(ctx, "w-1")
	cancel()
	defer o.Stop()

	time.Sleep(40 * time.Millisecond)
	assert.GreaterOrEqual(t, src.calls.Load(), int64(2))

	id, running := o.Running()
	assert.True(t, running)
	assert.Equal(t, "w-1", id)
}

func TestBalanceObserver_RestartSwitchesWallet(t *testing.T) {
	src, repo := &spySource{}, &spyBalances{}
	o := NewBalanceObserver(src, repo, time.Hour, logger.Nop())

	o.Start(context.Background(), "w-1")
	o.Start(context.Background(), "w-2")
	defer o.Stop()

	id, running := o.Running()
	assert.True(t, running)
	assert.Equal(t, "w-2", id)
}

func TestBalanceObserver_StopBeforeStart_NoPanic(t *testing.T) {
	o := NewBalanceObserver(&spySource{}, &spyBalances{}, 0, logger.Nop())
	assert.NotPanics(t, func() { o.Stop() })
	assert.Equal(t, DefaultBalanceInterval, o.interval)
}

// ── errors ───────────────────────────────────────────────────────────────────

func TestBalanceObserver_SourceErrorIsNotFatal(t *testing.T) {
	src := &spySource{err: errors.New("engine unavailable")}
	repo := &spyBalances{}
	o := NewBalanceObserver(src, repo, 10*time.Millisecond, logger.Nop())

	o.Start(context.Background(), "w-1")
	time.Sleep(35 * time.Millisecond)
	o.Stop()

	assert.GreaterOrEqual(t, src.calls.Load(), int64(2), "observer must keep polling after a failure")
	assert.Empty(t, repo.snapshots())
}

func TestBalanceObserver_SaveErrorIsNotFatal(t *testing.T) {
	src := &spySource{}
	repo := &spyBalances{err: errors.New("database is locked")}
	o := NewBalanceObserver(src, repo, 10*time.Millisecond, logger.Nop())

	o.Start(context.Background(), "w-1")
	time.Sleep(35 * time.Millisecond)
	o.Stop()

	assert.GreaterOrEqual(t, len(repo.snapshots()), 2)
}
