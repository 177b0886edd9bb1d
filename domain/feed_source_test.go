package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeedSource_MediaAllowlist(t *testing.T) {
	source := &FeedSource{
		ID:                "blog",
		RemoteURL:         "https://Blog.Example.com/feed.xml",
		AllowedMediaHosts: []string{"cdn.example.net", " *.images.example.org ", ""},
	}
	allow := source.MediaAllowlist()

	tests := []struct {
		host string
		want bool
	}{
		{"blog.example.com", true},
		{"BLOG.EXAMPLE.COM", true},
		{"static.blog.example.com", true},
		{"cdn.example.net", true},
		{"a.cdn.example.net", true},
		{"images.example.org", true},
		{"x.images.example.org", true},
		{"example.com", false},
		{"evilcdn.example.net", false},
		{"cdn.example.net.evil.com", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			assert.Equal(t, tt.want, allow.Allows(tt.host))
		})
	}
	assert.Equal(t, []string{"blog.example.com", "cdn.example.net", "images.example.org"}, allow.Hosts())
}

func TestFeedSource_MediaAllowlist_BadRemoteURL(t *testing.T) {
	source := &FeedSource{ID: "x", RemoteURL: "::not a url", AllowedMediaHosts: []string{"cdn.example.net"}}
	allow := source.MediaAllowlist()

	assert.True(t, allow.Allows("cdn.example.net"))
	assert.Len(t, allow.Hosts(), 1)
}
