package egress

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/freedom-sidecar/internal/logger"
)

// hopHeaders are stripped from proxied requests and responses (RFC 9110 §7.6.1).
var hopHeaders = []string{
	"Connection",
	"Proxy-Connection",
	"Keep-Alive",
	"Proxy-Authenticate",
	"Proxy-Authorization",
	"Te",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
}

// Proxy is an HTTP forward proxy handed to child processes (via HTTP_PROXY,
// HTTPS_PROXY and ALL_PROXY) as their only way out. Every target goes
// through the guard; targets the guard denies are only reachable when they
// are explicitly listed as anonymized and an anonymity transport is
// configured. Everything else is answered with 403.
type Proxy struct {
	guard     *Guard
	anon      Dialer
	anonHosts map[string]struct{}
	logger    *logger.Logger

	transports sync.Map // Dialer -> *http.Transport
}

// NewProxy returns a forward proxy over guard. anon may be nil, in which case
// anonymizedHosts is ignored and only local targets are reachable.
func NewProxy(guard *Guard, anon Dialer, anonymizedHosts []string, log *logger.Logger) *Proxy {
	if log == nil {
		log = logger.Nop()
	}
	p := &Proxy{
		guard:     guard,
		anon:      anon,
		anonHosts: make(map[string]struct{}, len(anonymizedHosts)),
		logger:    log,
	}
	for _, h := range anonymizedHosts {
		if host, ok := canonicalHost(h); ok {
			p.anonHosts[host] = struct{}{}
		}
	}
	return p
}

// dialerFor picks the upstream for dest: the guard for local targets, the
// anonymity transport for explicitly anonymized ones, nothing otherwise.
func (p *Proxy) dialerFor(network, target string, dest Destination) (Dialer, error) {
	if p.anon != nil {
		if host, ok := canonicalHost(dest.Host); ok {
			if _, listed := p.anonHosts[host]; listed {
				return p.anon, nil
			}
		}
	}
	if err := p.guard.CheckDestination(network, target, dest); err != nil {
		return nil, err
	}
	return p.guard, nil
}

// ServeHTTP implements http.Handler.
func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodConnect {
		p.serveConnect(w, r)
		return
	}
	p.serveForward(w, r)
}

func (p *Proxy) serveConnect(w http.ResponseWriter, r *http.Request) {
	dest, err := ParseDestination(r.Host)
	if err != nil || dest.Port == "" {
		http.Error(w, "CONNECT target must be host:port", http.StatusBadRequest)
		return
	}

	dialer, err := p.dialerFor("https", r.Host, dest)
	if err != nil {
		p.reject(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	upstream, err := dialer.DialContext(ctx, "tcp", dest.String())
	cancel()
	if err != nil {
		p.logger.Err(err).Str("target", r.Host).Msg("proxy tunnel dial failed")
		http.Error(w, "upstream unreachable", http.StatusBadGateway)
		return
	}

	hijacker, ok := w.(http.Hijacker)
	if !ok {
		upstream.Close()
		http.Error(w, "hijacking not supported", http.StatusInternalServerError)
		return
	}
	client, buf, err := hijacker.Hijack()
	if err != nil {
		upstream.Close()
		p.logger.Err(err).Msg("proxy hijack failed")
		return
	}

	if _, err = client.Write([]byte("HTTP/1.1 200 Connection Established\r\n\r\n")); err != nil {
		client.Close()
		upstream.Close()
		return
	}

	// bytes the client pipelined after the CONNECT line
	if n := buf.Reader.Buffered(); n > 0 {
		pending, _ := buf.Reader.Peek(n)
		if _, err = upstream.Write(pending); err != nil {
			client.Close()
			upstream.Close()
			return
		}
	}

	tunnel(client, upstream)
}

func tunnel(a, b net.Conn) {
	var wg sync.WaitGroup
	wg.Add(2)
	pipe := func(dst, src net.Conn) {
		defer wg.Done()
		_, _ = io.Copy(dst, src)
		if cw, ok := dst.(interface{ CloseWrite() error }); ok {
			_ = cw.CloseWrite()
		} else {
			_ = dst.Close()
		}
	}
	go pipe(a, b)
	go pipe(b, a)
	wg.Wait()
	a.Close()
	b.Close()
}

func (p *Proxy) serveForward(w http.ResponseWriter, r *http.Request) {
	if r.URL == nil || !r.URL.IsAbs() {
		http.Error(w, "this is a forward proxy: absolute-form request URI required", http.StatusBadRequest)
		return
	}

	dest, err := DestinationFromURL(r.URL)
	if err != nil {
		p.reject(w, p.guard.deny(r.URL.Scheme, r.URL.String(), err))
		return
	}

	dialer, err := p.dialerFor(r.URL.Scheme, r.URL.String(), dest)
	if err != nil {
		p.reject(w, err)
		return
	}

	out := r.Clone(r.Context())
	out.RequestURI = ""
	removeHopHeaders(out.Header)

	resp, err := p.transportFor(dialer).RoundTrip(out)
	if err != nil {
		p.logger.Err(err).Str("target", r.URL.String()).Msg("proxy forward failed")
		http.Error(w, "upstream unreachable", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	removeHopHeaders(resp.Header)
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(resp.StatusCode)
	_, _ = io.Copy(w, resp.Body)
}

func (p *Proxy) transportFor(d Dialer) *http.Transport {
	if t, ok := p.transports.Load(d); ok {
		return t.(*http.Transport)
	}
	t := &http.Transport{
		Proxy:                 nil,
		DialContext:           d.DialContext,
		MaxIdleConns:          50,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: time.Second,
	}
	actual, _ := p.transports.LoadOrStore(d, t)
	return actual.(*http.Transport)
}

func (p *Proxy) reject(w http.ResponseWriter, err error) {
	status := http.StatusForbidden
	if !errors.Is(err, ErrBlockedEgress) {
		status = http.StatusBadGateway
	}
	http.Error(w, err.Error(), status)
}

func removeHopHeaders(h http.Header) {
	if c := h.Get("Connection"); c != "" {
		for _, f := range strings.Split(c, ",") {
			if f = strings.TrimSpace(f); f != "" {
				h.Del(f)
			}
		}
	}
	for _, k := range hopHeaders {
		h.Del(k)
	}
}
