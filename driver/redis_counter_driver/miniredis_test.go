package redis_counter_driver

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
)

// Miniredis wraps miniredis for testing.
type Miniredis struct {
	*miniredis.Miniredis
}

// NewMiniredis starts a miniredis instance that is closed with the test.
func NewMiniredis(t *testing.T) *Miniredis {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	return &Miniredis{Miniredis: mr}
}
