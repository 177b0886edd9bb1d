package security

import (
	"context"
	"errors"
	"net"
	"net/netip"
	"net/url"
	"strings"
	"syscall"
	"time"

	"feedcore/domain"
)

// Resolver is the subset of *net.Resolver the guard needs.
type Resolver interface {
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

// blockedPrefixes lists every range a fetch must never reach.
var blockedPrefixes = []netip.Prefix{
	netip.MustParsePrefix("0.0.0.0/8"),
	netip.MustParsePrefix("10.0.0.0/8"),
	netip.MustParsePrefix("100.64.0.0/10"),
	netip.MustParsePrefix("127.0.0.0/8"),
	netip.MustParsePrefix("169.254.0.0/16"),
	netip.MustParsePrefix("172.16.0.0/12"),
	netip.MustParsePrefix("192.0.0.0/24"),
	netip.MustParsePrefix("192.168.0.0/16"),
	netip.MustParsePrefix("198.18.0.0/15"),
	netip.MustParsePrefix("224.0.0.0/3"),

	netip.MustParsePrefix("::/128"),
	netip.MustParsePrefix("::1/128"),
	netip.MustParsePrefix("fc00::/7"),
	netip.MustParsePrefix("fe80::/10"),
	netip.MustParsePrefix("ff00::/8"),
}

// IsBlockedAddress reports whether addr is private, loopback, link-local or reserved.
// IPv4-mapped IPv6 addresses are classified as IPv4.
func IsBlockedAddress(addr netip.Addr) bool {
	if !addr.IsValid() {
		return true
	}
	addr = addr.Unmap()
	if addr.Zone() != "" {
		return true
	}
	for _, p := range blockedPrefixes {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// PrivateNetworkGuard resolves a hostname once and rejects any destination
// that is not publicly routable.
type PrivateNetworkGuard struct {
	resolver              Resolver
	lookupTimeout         time.Duration
	allowTestingLocalhost bool
}

// NewPrivateNetworkGuard falls back to a pure-Go resolver when resolver is nil.
func NewPrivateNetworkGuard(resolver Resolver, lookupTimeout time.Duration) *PrivateNetworkGuard {
	if resolver == nil {
		resolver = &net.Resolver{PreferGo: true}
	}
	if lookupTimeout <= 0 {
		lookupTimeout = 5 * time.Second
	}
	return &PrivateNetworkGuard{resolver: resolver, lookupTimeout: lookupTimeout}
}

// SetTestingMode enables testing mode that allows loopback
func (g *PrivateNetworkGuard) SetTestingMode(enabled bool) {
	g.allowTestingLocalhost = enabled
}

// Resolve classifies every address the host resolves to and pins the first.
func (g *PrivateNetworkGuard) Resolve(ctx context.Context, u *url.URL) (*domain.ResolvedTarget, error) {
	if u == nil || u.Hostname() == "" {
		return nil, invalid("BASIC_VALIDATION_ERROR", "empty host not allowed", nil)
	}
	hostname := strings.ToLower(u.Hostname())

	addrs, err := g.lookup(ctx, hostname)
	if err != nil {
		return nil, err
	}

	for _, addr := range addrs {
		if g.blocked(addr) {
			return nil, &ValidationError{
				Message: "destination resolves to a private or reserved address",
				Type:    "PRIVATE_IP_BLOCKED",
				Details: map[string]interface{}{
					"hostname":    hostname,
					"resolved_ip": addr.String(),
				},
			}
		}
	}

	return &domain.ResolvedTarget{
		OriginalURL:     u,
		Hostname:        hostname,
		ResolvedAddress: addrs[0].String(),
		Port:            portFor(u),
		Protocol:        u.Scheme,
	}, nil
}

func (g *PrivateNetworkGuard) lookup(ctx context.Context, hostname string) ([]netip.Addr, error) {
	if addr, err := netip.ParseAddr(hostname); err == nil {
		return []netip.Addr{addr.Unmap()}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, g.lookupTimeout)
	defer cancel()

	answers, err := g.resolver.LookupIPAddr(ctx, hostname)
	if err != nil {
		return nil, &ValidationError{
			Message: "DNS resolution failed",
			Type:    "DNS_RESOLUTION_ERROR",
			Details: map[string]interface{}{
				"hostname": hostname,
				"error":    err.Error(),
			},
		}
	}
	if len(answers) == 0 {
		return nil, &ValidationError{
			Message: "DNS resolution returned no addresses",
			Type:    "DNS_RESOLUTION_ERROR",
			Details: map[string]interface{}{"hostname": hostname},
		}
	}

	addrs := make([]netip.Addr, 0, len(answers))
	for _, a := range answers {
		addr, ok := netip.AddrFromSlice(a.IP)
		if !ok {
			return nil, &ValidationError{
				Message: "resolver returned an invalid IP address",
				Type:    "INVALID_IP_ERROR",
				Details: map[string]interface{}{"hostname": hostname},
			}
		}
		addrs = append(addrs, addr.Unmap())
	}
	return addrs, nil
}

func (g *PrivateNetworkGuard) blocked(addr netip.Addr) bool {
	if g.allowTestingLocalhost && addr.Unmap().IsLoopback() {
		return false
	}
	return IsBlockedAddress(addr)
}

// ValidateConnectionAddress is a net.Dialer Control hook. It re-classifies the
// address actually being connected to.
func (g *PrivateNetworkGuard) ValidateConnectionAddress(network, address string, _ syscall.RawConn) error {
	host, port, err := net.SplitHostPort(address)
	if err != nil {
		return &ValidationError{
			Message: "invalid connection address format",
			Type:    "CONNECTION_ADDRESS_ERROR",
			Details: map[string]interface{}{
				"address": address,
				"error":   err.Error(),
			},
		}
	}

	addr, err := netip.ParseAddr(host)
	if err != nil {
		return &ValidationError{
			Message: "invalid IP address in connection",
			Type:    "INVALID_IP_ERROR",
			Details: map[string]interface{}{
				"host": host,
				"port": port,
			},
		}
	}

	if g.blocked(addr) {
		return &ValidationError{
			Message: "connection to private/dangerous IP blocked",
			Type:    "PRIVATE_IP_BLOCKED",
			Details: map[string]interface{}{
				"network": network,
				"ip":      addr.String(),
				"port":    port,
			},
		}
	}
	return nil
}

// IsGuardRejection reports whether err came from address classification
// rather than from resolution.
func IsGuardRejection(err error) bool {
	var v *ValidationError
	if !errors.As(err, &v) {
		return false
	}
	return v.Type == "PRIVATE_IP_BLOCKED" || v.Type == "INVALID_IP_ERROR"
}

func portFor(u *url.URL) string {
	if p := u.Port(); p != "" {
		return p
	}
	if u.Scheme == "https" {
		return "443"
	}
	return "80"
}
