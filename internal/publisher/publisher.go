package publisher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/MKhiriev/freedom-sidecar/internal/config"
	"github.com/MKhiriev/freedom-sidecar/internal/logger"
)

// Pinger probes a URL and reports the response status. *egress.Guard
// implements it.
type Pinger interface {
	Ping(ctx context.Context, rawURL string) (int, error)
}

const (
	stopGrace    = 10 * time.Second
	pollInterval = 500 * time.Millisecond
)

// proxyEnvKeys are replaced in the child environment. Both spellings are
// set because runtimes disagree on which one they read.
var proxyEnvKeys = []string{
	"HTTP_PROXY", "HTTPS_PROXY", "ALL_PROXY", "NO_PROXY",
	"http_proxy", "https_proxy", "all_proxy", "no_proxy",
}

// Publisher owns the provisioned directory and the child process.
type Publisher struct {
	cfg       config.Publisher
	dir       string
	proxyAddr string
	pinger    Pinger
	logger    *logger.Logger

	mu          sync.Mutex
	provisioned bool
	cmd         *exec.Cmd
	cancel      context.CancelFunc
	done        chan struct{}
	waitErr     error
	stopping    bool
}

// New returns a publisher that provisions into <dataDir>/publisher and
// hands proxyAddr (host:port) to the child as its HTTP proxy.
func New(cfg config.Publisher, dataDir, proxyAddr string, pinger Pinger, log *logger.Logger) *Publisher {
	if log == nil {
		log = logger.Nop()
	}
	return &Publisher{
		cfg:       cfg,
		dir:       filepath.Join(dataDir, DirName),
		proxyAddr: proxyAddr,
		pinger:    pinger,
		logger:    log.WithComponent("publisher"),
	}
}

// Dir returns the provisioned directory.
func (p *Publisher) Dir() string {
	return p.dir
}

func (p *Publisher) setProvisioned() {
	p.mu.Lock()
	p.provisioned = true
	p.mu.Unlock()
}

// Boot starts the child process in the provisioned directory. The process
// outlives ctx; it is stopped by [Publisher.Stop].
func (p *Publisher) Boot(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.provisioned {
		return ErrNotProvisioned
	}
	if p.cmd != nil && !p.exited() {
		return ErrAlreadyRunning
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	cmd := exec.CommandContext(runCtx, p.cfg.Command, p.cfg.Args...)
	cmd.Dir = p.dir
	cmd.Env = p.environ(os.Environ())
	cmd.Stdout = newLineWriter(p.logger, "stdout")
	cmd.Stderr = newLineWriter(p.logger, "stderr")
	cmd.Cancel = func() error {
		return cmd.Process.Signal(syscall.SIGTERM)
	}
	cmd.WaitDelay = stopGrace

	if err := cmd.Start(); err != nil {
		cancel()
		return fmt.Errorf("starting publisher: %w", err)
	}

	p.cmd = cmd
	p.cancel = cancel
	p.done = make(chan struct{})
	p.waitErr = nil
	p.stopping = false

	p.logger.Info().
		Int("pid", cmd.Process.Pid).
		Str("dir", p.dir).
		Str("proxy", p.proxyAddr).
		Msg("publisher started behind the egress proxy")

	go p.wait(cmd, p.done)
	return nil
}

func (p *Publisher) wait(cmd *exec.Cmd, done chan struct{}) {
	err := cmd.Wait()
	flushWriters(cmd)

	p.mu.Lock()
	p.waitErr = err
	stopping := p.stopping
	p.mu.Unlock()
	close(done)

	if stopping {
		p.logger.Info().Msg("publisher stopped")
		return
	}
	p.logger.Error().Err(err).Msg("publisher exited unexpectedly")
}

func (p *Publisher) exited() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// Running reports whether the child process is alive.
func (p *Publisher) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cmd != nil && !p.exited()
}

// Done is closed when the current child process exits. It is nil before the
// first Boot.
func (p *Publisher) Done() <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}

// Err returns the exit error of the last child process, if any.
func (p *Publisher) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.waitErr
}

// Stop sends SIGTERM and waits for the child to exit. After the grace
// period the child is killed. Stopping a publisher that is not running is
// a no-op.
func (p *Publisher) Stop() error {
	p.mu.Lock()
	if p.cmd == nil || p.exited() {
		p.mu.Unlock()
		return nil
	}
	p.stopping = true
	cancel, done := p.cancel, p.done
	p.mu.Unlock()

	cancel()
	<-done
	return nil
}

// WaitReady polls the publisher's local port until it answers with a
// non-5xx status, the ready timeout expires, or the child exits.
func (p *Publisher) WaitReady(ctx context.Context) error {
	if p.cfg.ReadyTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.ReadyTimeout)
		defer cancel()
	}

	url := p.URL()
	done := p.Done()
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		status, err := p.pinger.Ping(ctx, url)
		if err == nil && status < 500 {
			p.logger.Info().Str("url", url).Int("status", status).Msg("publisher is ready")
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %s: %w", ErrNotReady, url, ctx.Err())
		case <-done:
			return p.exitErr()
		case <-ticker.C:
		}
	}
}

// URL returns the loopback address of the publisher.
func (p *Publisher) URL() string {
	return "http://127.0.0.1:" + strconv.Itoa(p.cfg.Port) + "/"
}

// Run provisions, boots and supervises the publisher until ctx is done, at
// which point the child is stopped. An unexpected exit is returned as an
// error wrapping [ErrExited].
func (p *Publisher) Run(ctx context.Context) error {
	if err := p.Provision(ctx); err != nil {
		return err
	}
	if err := p.Boot(ctx); err != nil {
		return err
	}
	if err := p.WaitReady(ctx); err != nil && !errors.Is(err, context.Canceled) {
		_ = p.Stop()
		return err
	}

	select {
	case <-ctx.Done():
		return p.Stop()
	case <-p.Done():
		return p.exitErr()
	}
}

func (p *Publisher) exitErr() error {
	if err := p.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrExited, err)
	}
	return ErrExited
}

// environ returns base with every proxy variable pointing at the forward
// proxy, NO_PROXY cleared and NODE_ENV defaulted.
func (p *Publisher) environ(base []string) []string {
	env := make([]string, 0, len(base)+len(proxyEnvKeys)+1)
	hasNodeEnv := false
	for _, kv := range base {
		key, value, _ := strings.Cut(kv, "=")
		if slices.Contains(proxyEnvKeys, key) || (key == "NODE_ENV" && value == "") {
			continue
		}
		if key == "NODE_ENV" {
			hasNodeEnv = true
		}
		env = append(env, kv)
	}

	proxyURL := "http://" + p.proxyAddr
	for _, key := range proxyEnvKeys {
		value := proxyURL
		if strings.EqualFold(key, "NO_PROXY") {
			value = ""
		}
		env = append(env, key+"="+value)
	}
	if !hasNodeEnv {
		env = append(env, "NODE_ENV=development")
	}
	return env
}
