package logging

import (
	"math"
	"strings"
)

// ProgressSampler thins download progress to one line per step of
// completion, plus one whenever the status changes.
type ProgressSampler struct {
	step   float64
	status string
	next   float64
}

// NewProgressSampler returns a sampler that logs every step percent
// (10 when step <= 0).
func NewProgressSampler(step float64) *ProgressSampler {
	if step <= 0 {
		step = 10
	}
	return &ProgressSampler{step: step}
}

// ShouldLog reports whether an update deserves a log line. A negative
// percent means the total is unknown, as with some live streams.
func (s *ProgressSampler) ShouldLog(percent float64, status string) bool {
	if s == nil {
		return true
	}
	changed := false
	if status = strings.TrimSpace(status); status != "" && status != s.status {
		s.status = status
		s.next = 0
		changed = true
	}
	if percent < 0 || percent < s.next {
		return changed
	}
	s.next = (math.Floor(percent/s.step) + 1) * s.step
	return true
}

// Reset forgets previous updates, e.g. between playlist entries.
func (s *ProgressSampler) Reset() {
	if s == nil {
		return
	}
	*s = ProgressSampler{step: s.step}
}
