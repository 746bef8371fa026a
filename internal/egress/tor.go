package egress

import (
	"context"
	"errors"
	"fmt"
	"net"

	"golang.org/x/net/proxy"
)

// ErrNoContextDialer is returned when the SOCKS implementation cannot honour
// contexts. It should never happen with golang.org/x/net/proxy.
var ErrNoContextDialer = errors.New("socks dialer does not support contexts")

// torDialer reaches remote destinations through a local SOCKS5 endpoint of
// the anonymity network. Host names are handed to the proxy unresolved, so
// no DNS query leaves the machine.
type torDialer struct {
	socksAddr string
	dialer    proxy.ContextDialer
}

// NewTorDialer returns a dialer that tunnels every connection through the
// SOCKS5 endpoint at socksAddr. The hop to socksAddr is itself dialed
// through guard, so a SOCKS endpoint that is not local is rejected up front.
func NewTorDialer(guard *Guard, socksAddr string) (Dialer, error) {
	if _, err := guard.Check("tcp", socksAddr); err != nil {
		return nil, fmt.Errorf("anonymity transport endpoint: %w", err)
	}

	d, err := proxy.SOCKS5("tcp", socksAddr, nil, guard)
	if err != nil {
		return nil, fmt.Errorf("create socks5 dialer: %w", err)
	}

	cd, ok := d.(proxy.ContextDialer)
	if !ok {
		return nil, ErrNoContextDialer
	}

	return &torDialer{socksAddr: socksAddr, dialer: cd}, nil
}

// DialContext implements Dialer.
func (t *torDialer) DialContext(ctx context.Context, network, address string) (net.Conn, error) {
	conn, err := t.dialer.DialContext(ctx, network, address)
	if err != nil {
		return nil, fmt.Errorf("dial %s via %s: %w", address, t.socksAddr, err)
	}
	return conn, nil
}
