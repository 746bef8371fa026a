package publisher

import (
	"bytes"
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/freedom-sidecar/internal/config"
	"github.com/MKhiriev/freedom-sidecar/internal/egress"
	"github.com/MKhiriev/freedom-sidecar/internal/logger"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
}

// provisioned returns a publisher whose directory already exists.
func provisioned(t *testing.T, cfg config.Publisher, pinger Pinger) *Publisher {
	t.Helper()
	dataDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dataDir, DirName), 0o700))
	p := New(cfg, dataDir, "127.0.0.1:3128", pinger, logger.Nop())
	require.NoError(t, p.Provision(context.Background()))
	return p
}

func waitDone(t *testing.T, p *Publisher) {
	t.Helper()
	select {
	case <-p.Done():
	case <-time.After(10 * time.Second):
		t.Fatal("publisher did not exit")
	}
}

type pingerFunc func(ctx context.Context, rawURL string) (int, error)

func (f pingerFunc) Ping(ctx context.Context, rawURL string) (int, error) {
	return f(ctx, rawURL)
}

// ── Boot / Stop ──────────────────────────────────────────────────────────────

func TestBoot_RequiresProvision(t *testing.T) {
	p := New(config.Publisher{Command: "true"}, t.TempDir(), "127.0.0.1:3128", nil, logger.Nop())
	assert.ErrorIs(t, p.Boot(context.Background()), ErrNotProvisioned)
}

func TestBoot_ChildSeesOnlyTheForwardProxy(t *testing.T) {
	requireShell(t)
	t.Setenv("HTTP_PROXY", "http://203.0.113.7:8080")
	t.Setenv("no_proxy", "*")
	t.Setenv("NODE_ENV", "")

	p := provisioned(t, config.Publisher{
		Command: "sh",
		Args:    []string{"-c", `printf '%s|%s|%s|%s|%s' "$HTTP_PROXY" "$https_proxy" "$ALL_PROXY" "$no_proxy" "$NODE_ENV" > env.txt`},
	}, nil)

	require.NoError(t, p.Boot(context.Background()))
	waitDone(t, p)
	require.NoError(t, p.Err())

	got, err := os.ReadFile(filepath.Join(p.Dir(), "env.txt"))
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:3128|http://127.0.0.1:3128|http://127.0.0.1:3128||development", string(got))
}

func TestBoot_KeepsExplicitNodeEnv(t *testing.T) {
	requireShell(t)
	t.Setenv("NODE_ENV", "production")

	p := provisioned(t, config.Publisher{
		Command: "sh",
		Args:    []string{"-c", `printf '%s' "$NODE_ENV" > env.txt`},
	}, nil)

	require.NoError(t, p.Boot(context.Background()))
	waitDone(t, p)

	got, err := os.ReadFile(filepath.Join(p.Dir(), "env.txt"))
	require.NoError(t, err)
	assert.Equal(t, "production", string(got))
}

func TestBoot_CommandNotFound(t *testing.T) {
	p := provisioned(t, config.Publisher{Command: "definitely-not-a-real-binary-7f3a"}, nil)

	err := p.Boot(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "starting publisher")
	assert.False(t, p.Running())
}

func TestBoot_TwiceWhileRunning(t *testing.T) {
	requireShell(t)
	p := provisioned(t, config.Publisher{Command: "sleep", Args: []string{"30"}}, nil)

	require.NoError(t, p.Boot(context.Background()))
	t.Cleanup(func() { _ = p.Stop() })

	assert.ErrorIs(t, p.Boot(context.Background()), ErrAlreadyRunning)
}

func TestStop_TerminatesChild(t *testing.T) {
	requireShell(t)
	p := provisioned(t, config.Publisher{Command: "sleep", Args: []string{"30"}}, nil)

	require.NoError(t, p.Boot(context.Background()))
	require.True(t, p.Running())

	start := time.Now()
	require.NoError(t, p.Stop())
	assert.Less(t, time.Since(start), stopGrace, "SIGTERM should end the child before the grace period")
	assert.False(t, p.Running())

	// a second stop is a no-op
	require.NoError(t, p.Stop())
}

func TestStop_NeverBooted(t *testing.T) {
	p := New(config.Publisher{}, t.TempDir(), "127.0.0.1:3128", nil, logger.Nop())
	assert.NoError(t, p.Stop())
	assert.False(t, p.Running())
}

func TestBoot_OutliveBootContext(t *testing.T) {
	requireShell(t)
	p := provisioned(t, config.Publisher{Command: "sleep", Args: []string{"30"}}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, p.Boot(ctx))
	t.Cleanup(func() { _ = p.Stop() })
	cancel()

	time.Sleep(100 * time.Millisecond)
	assert.True(t, p.Running())
}

// ── WaitReady ────────────────────────────────────────────────────────────────

func TestWaitReady_ThroughGuard(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits.Add(1) < 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	_, portStr, err := net.SplitHostPort(srv.Listener.Addr().String())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	guard := egress.NewGuard(nil, nil, logger.Nop())
	p := New(config.Publisher{Port: port, ReadyTimeout: 5 * time.Second}, t.TempDir(), "127.0.0.1:3128", guard, logger.Nop())

	require.NoError(t, p.WaitReady(context.Background()))
	assert.GreaterOrEqual(t, hits.Load(), int32(2))
	assert.Equal(t, "http://127.0.0.1:"+portStr+"/", p.URL())
}

func TestWaitReady_Timeout(t *testing.T) {
	pinger := pingerFunc(func(context.Context, string) (int, error) {
		return 0, errors.New("connection refused")
	})
	p := New(config.Publisher{Port: 2368, ReadyTimeout: 50 * time.Millisecond}, t.TempDir(), "127.0.0.1:3128", pinger, logger.Nop())

	err := p.WaitReady(context.Background())
	require.ErrorIs(t, err, ErrNotReady)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWaitReady_ChildExited(t *testing.T) {
	requireShell(t)
	pinger := pingerFunc(func(context.Context, string) (int, error) {
		return 0, errors.New("connection refused")
	})
	p := provisioned(t, config.Publisher{
		Command:      "sh",
		Args:         []string{"-c", "exit 3"},
		ReadyTimeout: 10 * time.Second,
	}, pinger)

	require.NoError(t, p.Boot(context.Background()))

	err := p.WaitReady(context.Background())
	require.ErrorIs(t, err, ErrExited)
}

// ── Run ──────────────────────────────────────────────────────────────────────

func TestRun_StopsChildOnCancel(t *testing.T) {
	requireShell(t)
	pinger := pingerFunc(func(context.Context, string) (int, error) { return http.StatusOK, nil })
	p := provisioned(t, config.Publisher{Command: "sleep", Args: []string{"30"}}, pinger)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(ctx) }()

	require.Eventually(t, p.Running, 5*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.False(t, p.Running())
}

func TestRun_ReportsUnexpectedExit(t *testing.T) {
	requireShell(t)
	pinger := pingerFunc(func(context.Context, string) (int, error) { return http.StatusOK, nil })
	p := provisioned(t, config.Publisher{Command: "sh", Args: []string{"-c", "sleep 0.2; exit 1"}}, pinger)

	err := p.Run(context.Background())
	require.ErrorIs(t, err, ErrExited)
}

// ── output ───────────────────────────────────────────────────────────────────

func TestLineWriter_SplitsLines(t *testing.T) {
	var buf bytes.Buffer
	log := &logger.Logger{Logger: zerolog.New(&buf)}
	w := newLineWriter(log, "stdout")

	_, err := w.Write([]byte("Ghost boot"))
	require.NoError(t, err)
	_, err = w.Write([]byte("ing\r\n\nlistening on 2368\npartial"))
	require.NoError(t, err)
	w.Flush()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], `"message":"Ghost booting"`)
	assert.Contains(t, lines[0], `"stream":"stdout"`)
	assert.Contains(t, lines[1], `"message":"listening on 2368"`)
	assert.Contains(t, lines[2], `"message":"partial"`)
}

func TestLineWriter_StderrIsWarn(t *testing.T) {
	var buf bytes.Buffer
	w := newLineWriter(&logger.Logger{Logger: zerolog.New(&buf)}, "stderr")

	_, err := w.Write([]byte("deprecated option\n"))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"level":"warn"`)
}
