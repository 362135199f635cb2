package shipping

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewTrackingNumber_Format(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 30, 0, 0, time.UTC)
	tn := NewTrackingNumber(now)
	assert.Regexp(t, `^SH20260901[A-Z0-9]{6}$`, tn)
}

func TestNewTrackingNumber_Distinct(t *testing.T) {
	now := time.Now()
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		tn := NewTrackingNumber(now)
		assert.False(t, seen[tn], "generated numbers should not repeat in a small sample")
		seen[tn] = true
	}
}
