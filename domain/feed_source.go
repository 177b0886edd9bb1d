package domain

import (
	"net/url"
	"strings"
)

// FeedSource is a configured feed. It is owned by the configuration store and
// read-only here.
type FeedSource struct {
	ID                string   `json:"id"`
	RemoteURL         string   `json:"remote_url"`
	AllowedMediaHosts []string `json:"allowed_media_hosts"`
	SortOrder         int      `json:"sort_order"`
}

// MediaAllowlist is the set of hosts media may be proxied from for one source.
type MediaAllowlist struct {
	hosts []string
}

// MediaAllowlist derives the allowlist from the source's own host and its
// configured media hosts.
func (f *FeedSource) MediaAllowlist() MediaAllowlist {
	hosts := make([]string, 0, len(f.AllowedMediaHosts)+1)
	if u, err := url.Parse(f.RemoteURL); err == nil && u.Hostname() != "" {
		hosts = append(hosts, normalizeHost(u.Hostname()))
	}
	for _, h := range f.AllowedMediaHosts {
		if n := normalizeHost(h); n != "" {
			hosts = append(hosts, n)
		}
	}
	return MediaAllowlist{hosts: hosts}
}

// Allows reports whether host equals an allowlisted host or is a subdomain of one.
func (a MediaAllowlist) Allows(host string) bool {
	host = normalizeHost(host)
	if host == "" {
		return false
	}
	for _, allowed := range a.hosts {
		if host == allowed || strings.HasSuffix(host, "."+allowed) {
			return true
		}
	}
	return false
}

// Hosts returns a copy of the allowlisted hosts.
func (a MediaAllowlist) Hosts() []string {
	return append([]string(nil), a.hosts...)
}

func normalizeHost(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.TrimPrefix(h, "*.")
	return strings.TrimSuffix(h, ".")
}
