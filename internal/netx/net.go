// Package netx classifies transport-level failures of outbound requests.
package netx

import (
	"context"
	"errors"
	"net"
	"syscall"
)

// IsNetworkError reports whether err comes from the transport rather than
// from a server reply: refused or reset connections, DNS failures and
// timeouts. Context cancellation is not a network error.
func IsNetworkError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
