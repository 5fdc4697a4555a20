package clientip

import (
	"net"
	"net/http"
	"strings"
)

// Trust decides whether the direct peer is a proxy allowed to report the
// original client address through forwarding headers.
// *trustednet.Store satisfies it.
type Trust interface {
	IsTrusted(peer string) bool
}

// forwardHeaders are consulted in priority order when the peer is trusted.
var forwardHeaders = []string{
	"CF-Connecting-IP",
	"DO-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
}

// PeerIP returns the normalised address of the direct TCP peer taken from
// RemoteAddr. Headers are never consulted. Returns "" when RemoteAddr holds no
// valid IP.
func PeerIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// RemoteAddr without a port, as set by some test harnesses.
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

// GetIP returns the originating client address. Forwarding headers are only
// honoured when trust accepts the direct peer; otherwise, or when no header
// carries a valid address, the peer address is returned. A nil trust never
// trusts.
func GetIP(r *http.Request, trust Trust) string {
	peer := PeerIP(r)
	if trust == nil || !trust.IsTrusted(peer) {
		return peer
	}

	for _, name := range forwardHeaders {
		value := r.Header.Get(name)
		if value == "" {
			continue
		}
		if name == "X-Forwarded-For" {
			// The left-most valid entry is the original client.
			for ip := range strings.SplitSeq(value, ",") {
				if parsed := parseIP(ip); parsed != "" {
					return parsed
				}
			}
			continue
		}
		if parsed := parseIP(value); parsed != "" {
			return parsed
		}
	}
	return peer
}

// parseIP validates and normalizes an IP address string.
// Returns empty string if the IP is invalid.
func parseIP(ipStr string) string {
	ipStr = strings.TrimSpace(ipStr)
	if ipStr == "" {
		return ""
	}

	ip := net.ParseIP(ipStr)
	if ip == nil {
		return ""
	}
	return ip.String()
}
