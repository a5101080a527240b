package job

import (
	"strconv"
	"strings"
	"time"
)

// Trigger reasons.
const (
	ReasonSchedule = "schedule"
	ReasonManual   = "manual"
	ReasonSignal   = "signal"
	ReasonStartup  = "startup"
)

// Request is the context a run is triggered with.
type Request struct {
	DaysAgo     *int // overrides the configured policy when set
	Reason      string
	RequestedAt time.Time
}

// NewRequest stamps a request with the current time.
func NewRequest(reason string) Request {
	return Request{Reason: reason, RequestedAt: time.Now()}
}

// WithDaysAgo returns a copy of r carrying an explicit threshold.
func (r Request) WithDaysAgo(days int) Request {
	r.DaysAgo = &days
	return r
}

// ParseDaysAgo reads a threshold from an untyped source.
// ok is false for empty, non-numeric or negative input; callers then keep
// the configured policy.
func ParseDaysAgo(raw string) (days int, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
