package rate_limiter

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// ClientIdentity derives the limiter key for a request: the first hop of
// X-Forwarded-For, then X-Real-IP, then the socket peer.
func ClientIdentity(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if id := normalizeIP(first); id != "" {
			return id
		}
	}

	if id := normalizeIP(r.Header.Get("X-Real-IP")); id != "" {
		return id
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return normalizeIP(host)
}

func normalizeIP(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimSuffix(strings.TrimPrefix(raw, "["), "]")
	if raw == "" {
		return ""
	}
	if addr, err := netip.ParseAddr(raw); err == nil {
		return addr.Unmap().String()
	}
	return strings.TrimPrefix(strings.ToLower(raw), "::ffff:")
}
