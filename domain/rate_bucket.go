package domain

import "time"

// RateBucket is the counter for one client identity in one fixed window.
type RateBucket struct {
	WindowStart time.Time
	Count       int64
	Window      time.Duration
}

// Expired reports whether the bucket's window has closed at now.
func (b *RateBucket) Expired(now time.Time) bool {
	return !now.Before(b.WindowStart.Add(b.Window))
}
