package optics

import (
	"fmt"
	"sort"
	"strings"
)

// Stats counts completed rays per termination reason for one pass.
type Stats struct {
	Completed int
	Spawned   int
	Reasons   map[TerminationReason]int
}

func newStats() Stats {
	return Stats{Reasons: make(map[TerminationReason]int)}
}

func (s *Stats) complete(r *Ray) {
	s.Completed++
	s.Reasons[r.Reason()]++
}

// Count returns how many completed rays ended for reason.
func (s Stats) Count(reason TerminationReason) int { return s.Reasons[reason] }

func (s Stats) String() string {
	keys := make([]string, 0, len(s.Reasons))
	for k := range s.Reasons {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	var b strings.Builder
	fmt.Fprintf(&b, "completed=%d spawned=%d", s.Completed, s.Spawned)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%d", k, s.Reasons[TerminationReason(k)])
	}
	return b.String()
}
