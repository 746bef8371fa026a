package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/MKhiriev/freedom-sidecar/internal/config"
	"github.com/MKhiriev/freedom-sidecar/internal/handler"
	httphandler "github.com/MKhiriev/freedom-sidecar/internal/handler/http"
	"github.com/MKhiriev/freedom-sidecar/internal/logger"
	"github.com/MKhiriev/freedom-sidecar/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var teapot = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusTeapot)
})

func newTestHandlers(withAPI bool) *handler.Handlers {
	h := &handler.Handlers{Proxy: teapot}
	if withAPI {
		h.API = httphandler.NewHandler(&service.Services{}, config.Server{}, logger.Nop())
	}
	return h
}

// ── checkLocalBind ───────────────────────────────────────────────────────────

func TestCheckLocalBind(t *testing.T) {
	tests := []struct {
		addr string
		ok   bool
	}{
		{"127.0.0.1:3001", true},
		{"127.0.0.2:3001", true},
		{"localhost:3001", true},
		{"LOCALHOST:3001", true},
		{"[::1]:3001", true},
		{":3001", false},
		{"0.0.0.0:3001", false},
		{"[::]:3001", false},
		{"192.168.1.4:3001", false},
		{"example.com:3001", false},
		{"127.0.0.1", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			err := checkLocalBind(tt.addr)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrNonLocalBind)
			}
		})
	}
}

// ── NewServer ────────────────────────────────────────────────────────────────

func TestNewServer_RejectsNonLocalAPI(t *testing.T) {
	_, err := NewServer(newTestHandlers(true), config.Server{HTTPAddress: "0.0.0.0:3001"}, config.Egress{ProxyAddress: "127.0.0.1:0"}, logger.Nop())
	require.ErrorIs(t, err, ErrNonLocalBind)
}

func TestNewServer_RejectsNonLocalProxy(t *testing.T) {
	_, err := NewServer(newTestHandlers(false), config.Server{}, config.Egress{ProxyAddress: ":3128"}, logger.Nop())
	require.ErrorIs(t, err, ErrNonLocalBind)
}

func TestNewServer_NothingToServe(t *testing.T) {
	_, err := NewServer(&handler.Handlers{}, config.Server{}, config.Egress{}, logger.Nop())
	require.ErrorIs(t, err, errNoServersAreCreated)
}

// ── Run / Shutdown ───────────────────────────────────────────────────────────

func TestServer_RunServesAndStopsOnCancel(t *testing.T) {
	srv, err := NewServer(newTestHandlers(true),
		config.Server{HTTPAddress: "127.0.0.1:0", RequestTimeout: time.Second},
		config.Egress{ProxyAddress: "127.0.0.1:0"},
		logger.Nop())
	require.NoError(t, err)
	require.NoError(t, srv.Listen())

	addrs := srv.Addrs()
	require.Contains(t, addrs, "api")
	require.Contains(t, addrs, "proxy")

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Run(ctx) }()

	resp, err := http.Get("http://" + addrs["api"] + "/health")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"status":"ok"`)

	resp, err = http.Get("http://" + addrs["proxy"] + "/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)

	cancel()
	select {
	case err = <-errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	_, err = net.DialTimeout("tcp", addrs["api"], time.Second)
	assert.Error(t, err, "listener must be closed after shutdown")
}

func TestServer_DirectShutdownEndsRun(t *testing.T) {
	srv, err := NewServer(newTestHandlers(false), config.Server{}, config.Egress{ProxyAddress: "127.0.0.1:0"}, logger.Nop())
	require.NoError(t, err)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Run(context.Background()) }()

	require.Eventually(t, func() bool { return len(srv.Addrs()) == 1 }, 5*time.Second, 10*time.Millisecond)
	require.NoError(t, srv.Shutdown(context.Background()))
	require.NoError(t, srv.Shutdown(context.Background()), "second shutdown is a no-op")

	select {
	case err = <-errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Shutdown")
	}
}

func TestServer_ListenFailureReleasesEarlierListeners(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	srv, err := NewServer(newTestHandlers(true),
		config.Server{HTTPAddress: "127.0.0.1:0"},
		config.Egress{ProxyAddress: busy.Addr().String()},
		logger.Nop())
	require.NoError(t, err)

	err = srv.Listen()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "proxy: listen")
	assert.Empty(t, srv.Addrs())
}
