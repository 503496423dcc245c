package central

import (
	"net/http"
	"strconv"
	"time"
)

// Rate-limit headers returned by the API gateway on every response.
const (
	headerLimitSecond     = "X-RateLimit-Limit-Second"
	headerRemainingSecond = "X-RateLimit-Remaining-Second"
	headerLimitDay        = "X-RateLimit-Limit-Day"
	headerRemainingDay    = "X-RateLimit-Remaining-Day"
	headerRetryAfter      = "Retry-After"
)

// RateLimitStatus is the quota snapshot from the most recent response.
// Counters are -1 until the gateway has reported them.
type RateLimitStatus struct {
	LimitSecond     int
	RemainingSecond int
	LimitDay        int
	RemainingDay    int
	UpdatedAt       time.Time
}

// SecondExhausted reports whether the short window was spent on the last
// observed response.
func (s RateLimitStatus) SecondExhausted() bool {
	return s.RemainingSecond == 0
}

// DayExhausted reports whether the daily quota was spent on the last
// observed response.
func (s RateLimitStatus) DayExhausted() bool {
	return s.RemainingDay == 0
}

func newRateLimitStatus() RateLimitStatus {
	return RateLimitStatus{
		LimitSecond:     -1,
		RemainingSecond: -1,
		LimitDay:        -1,
		RemainingDay:    -1,
	}
}

// observe folds the rate-limit headers of a response into the snapshot.
// Absent headers leave the previous values in place.
func (s *RateLimitStatus) observe(header http.Header, now time.Time) {
	if s == nil {
		return
	}
	updated := false
	for _, field := range []struct {
		name string
		dst  *int
	}{
		{headerLimitSecond, &s.LimitSecond},
		{headerRemainingSecond, &s.RemainingSecond},
		{headerLimitDay, &s.LimitDay},
		{headerRemainingDay, &s.RemainingDay},
	} {
		raw := header.Get(field.name)
		if raw == "" {
			continue
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}
		*field.dst = value
		updated = true
	}
	if updated {
		s.UpdatedAt = now
	}
}

// headerCounter reads one integer quota header from a single response.
// Returns -1 when the header is absent or malformed.
func headerCounter(header http.Header, name string) int {
	value, err := strconv.Atoi(header.Get(name))
	if err != nil || value < 0 {
		return -1
	}
	return value
}

// retryAfter parses the advertised wait interval from a 429 response.
// Zero means the gateway did not advertise one.
func retryAfter(header http.Header) time.Duration {
	raw := header.Get(headerRetryAfter)
	if raw == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(raw); err == nil && seconds >= 0 {
		return time.Duration(seconds) * time.Second
	}
	if at, err := http.ParseTime(raw); err == nil {
		if wait := time.Until(at); wait > 0 {
			return wait
		}
	}
	return 0
}
