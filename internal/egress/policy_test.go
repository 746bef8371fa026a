package egress

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Evaluate ──────────────────────────────────────────────────────────────────

func TestEvaluate_AllowsLocalHosts(t *testing.T) {
	p := DefaultPolicy()

	allowed := []string{
		"localhost", "LOCALHOST", "LocalHost:2368",
		"127.0.0.1", "127.0.0.1:8080",
		"::1", "[::1]", "[::1]:443",
		"0.0.0.0", "0.0.0.0:80",
		"10.0.0.1", "10.255.255.255:22",
		"172.16.0.1", "172.31.255.254",
		"192.168.1.10", "192.168.0.1:9050",
		"::ffff:10.1.2.3",
		"localhost.",
	}
	for _, host := range allowed {
		t.Run(host, func(t *testing.T) {
			assert.Equal(t, Allowed, p.Evaluate(Destination{Host: host}))
		})
	}
}

func TestEvaluate_DeniesRemoteHosts(t *testing.T) {
	p := DefaultPolicy()

	denied := []string{
		"example.com", "https://example.com", "example.com:443",
		"93.184.216.34", "93.184.216.34:80",
		"8.8.8.8", "2001:4860:4860::8888", "[2001:db8::1]:443",
		"172.15.255.255", "172.32.0.1", "192.169.0.1", "11.0.0.1",
		"10.evil.example", "192.168.evil.example", "localhost.evil.example",
		"127.0.0.2", "127.0.0.1.nip.io",
		"", "   ", ":8080", "[::1", "[::1]x",
	}
	for _, host := range denied {
		t.Run(host, func(t *testing.T) {
			assert.Equal(t, Denied, p.Evaluate(Destination{Host: host}))
		})
	}
}

// TestEvaluate_NoCaching verifies that each call is independent: evaluating
// the same destination repeatedly keeps producing the same pure answer.
func TestEvaluate_NoCaching(t *testing.T) {
	p := DefaultPolicy()
	local := Destination{Host: "127.0.0.1", Port: "80"}
	remote := Destination{Host: "example.com", Port: "80"}

	for i := 0; i < 3; i++ {
		assert.Equal(t, Allowed, p.Evaluate(local))
		assert.Equal(t, Denied, p.Evaluate(remote))
	}
}

func TestNewPolicy_ExtraHosts(t *testing.T) {
	p := NewPolicy("ghost.internal", "  Bridge.Local:8545 ")

	assert.Equal(t, Allowed, p.Evaluate(Destination{Host: "ghost.internal"}))
	assert.Equal(t, Allowed, p.Evaluate(Destination{Host: "bridge.local"}))
	assert.Equal(t, Denied, p.Evaluate(Destination{Host: "other.internal"}))
	assert.Equal(t, Denied, DefaultPolicy().Evaluate(Destination{Host: "ghost.internal"}))
}

func TestDecision_String(t *testing.T) {
	assert.Equal(t, "allowed", Allowed.String())
	assert.Equal(t, "denied", Denied.String())
}

// ── ParseDestination ──────────────────────────────────────────────────────────

func TestParseDestination(t *testing.T) {
	cases := []struct {
		in   string
		want Destination
	}{
		{"127.0.0.1:2368", Destination{Host: "127.0.0.1", Port: "2368"}},
		{"[::1]:80", Destination{Host: "::1", Port: "80"}},
		{"localhost", Destination{Host: "localhost"}},
		{"https://example.com/", Destination{Host: "example.com", Port: "443"}},
		{"http://127.0.0.1:2368/ghost", Destination{Host: "127.0.0.1", Port: "2368"}},
		{"http://example.com", Destination{Host: "example.com", Port: "80"}},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseDestination(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseDestination_Malformed(t *testing.T) {
	for _, in := range []string{"", "   ", "http://", "https:///path"} {
		_, err := ParseDestination(in)
		assert.ErrorIs(t, err, ErrMalformedDestination, in)
	}
}

func TestDestinationFromRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "https://example.com/a", nil)
	d, err := DestinationFromRequest(req)
	require.NoError(t, err)
	assert.Equal(t, Destination{Host: "example.com", Port: "443"}, d)

	// server-side style request: only Host is known
	req = &http.Request{URL: &url.URL{Path: "/x"}, Host: "127.0.0.1:2368"}
	d, err = DestinationFromRequest(req)
	require.NoError(t, err)
	assert.Equal(t, Destination{Host: "127.0.0.1", Port: "2368"}, d)

	_, err = DestinationFromRequest(&http.Request{URL: &url.URL{Path: "/"}})
	assert.ErrorIs(t, err, ErrMalformedDestination)

	_, err = DestinationFromRequest(nil)
	assert.ErrorIs(t, err, ErrMalformedDestination)
}

func TestDestination_String(t *testing.T) {
	assert.Equal(t, "example.com:443", Destination{Host: "example.com", Port: "443"}.String())
	assert.Equal(t, "[::1]:80", Destination{Host: "::1", Port: "80"}.String())
	assert.Equal(t, "localhost", Destination{Host: "localhost"}.String())
}
