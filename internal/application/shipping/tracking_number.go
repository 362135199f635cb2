package shipping

import (
	"crypto/rand"
	"time"
)

// Tracking numbers look like SH20240101AB12CD: prefix, intake date, six
// random uppercase alphanumerics. With 36^6 suffixes per day a collision is
// practically impossible, but the unique index still backstops generation.
const (
	trackingPrefix        = "SH"
	trackingSuffixLen     = 6
	trackingSuffixCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// NewTrackingNumber generates a tracking number for the given intake time.
func NewTrackingNumber(now time.Time) string {
	buf := make([]byte, trackingSuffixLen)
	_, _ = rand.Read(buf) // crypto/rand.Read does not fail on supported platforms
	for i, b := range buf {
		buf[i] = trackingSuffixCharset[int(b)%len(trackingSuffixCharset)]
	}
	return trackingPrefix + now.Format("20060102") + string(buf)
}
