package spaced_repetition

// DefaultIdealIntervals are the ideal day-gaps between successive reviews
var DefaultIdealIntervals = []int{1, 3, 7, 14, 30, 60, 90}

// Scheduler computes review intervals compressed to fit a limited time budget
type Scheduler struct {
	// Ideal day-gaps between successive reviews
	IdealIntervals []int
}

// NewScheduler creates a new scheduler with the default interval sequence
func NewScheduler() *Scheduler {
	return &Scheduler{
		IdealIntervals: DefaultIdealIntervals,
	}
}

// ComputeIntervals returns the ordered day-offsets between reviews that fit
// within daysAvailable. Ideal intervals are taken verbatim while they fit;
// the first interval that would overflow the budget is replaced by a single
// synthesized interval spreading the remaining days over the ideal intervals
// not yet consumed, floored at one day. A budget too small for even the
// first ideal interval yields an empty result.
func (s *Scheduler) ComputeIntervals(daysAvailable int) []int {
	cumulative := 0
	compressed := []int{}

	for i, interval := range s.IdealIntervals {
		if cumulative+interval <= daysAvailable {
			compressed = append(compressed, interval)
			cumulative += interval
			continue
		}

		remaining := daysAvailable - cumulative
		if remaining > 0 && i > 0 {
			adjusted := remaining / (len(s.IdealIntervals) - i)
			if adjusted < 1 {
				adjusted = 1
			}
			compressed = append(compressed, adjusted)
		}
		break
	}

	return compressed
}
