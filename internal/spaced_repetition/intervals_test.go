package spaced_repetition

import (
	"reflect"
	"testing"
)

func TestComputeIntervals_ZeroBudget(t *testing.T) {
	s := NewScheduler()
	got := s.ComputeIntervals(0)
	if len(got) != 0 {
		t.Fatalf("ComputeIntervals(0) = %v, want empty", got)
	}
}

func TestComputeIntervals_OneDay(t *testing.T) {
	s := NewScheduler()
	got := s.ComputeIntervals(1)
	if !reflect.DeepEqual(got, []int{1}) {
		t.Fatalf("ComputeIntervals(1) = %v, want [1]", got)
	}
}

func TestComputeIntervals_NineDays(t *testing.T) {
	// 1 and 3 fit (cumulative 4); 7 overflows with 5 days left and
	// 5 ideal intervals remaining, so the synthesized tail is floor(5/5)=1.
	s := NewScheduler()
	got := s.ComputeIntervals(9)
	if !reflect.DeepEqual(got, []int{1, 3, 1}) {
		t.Fatalf("ComputeIntervals(9) = %v, want [1 3 1]", got)
	}
}

func TestComputeIntervals_ExactCumulativeFit(t *testing.T) {
	// 115 = 1+3+7+14+30+60: the first six ideal intervals consume the
	// budget exactly, leaving nothing for a synthesized tail.
	s := NewScheduler()
	got := s.ComputeIntervals(115)
	if !reflect.DeepEqual(got, []int{1, 3, 7, 14, 30, 60}) {
		t.Fatalf("ComputeIntervals(115) = %v, want [1 3 7 14 30 60]", got)
	}
}

func TestComputeIntervals_FullIdealSequence(t *testing.T) {
	s := NewScheduler()
	got := s.ComputeIntervals(205)
	if !reflect.DeepEqual(got, DefaultIdealIntervals) {
		t.Fatalf("ComputeIntervals(205) = %v, want the full ideal sequence", got)
	}
}

func TestComputeIntervals_SynthesizedTailFloorsAtOne(t *testing.T) {
	// Budget 5: 1 and 3 fit, 1 day remains over 5 remaining ideal
	// intervals; floor(1/5) is 0 and must be raised to 1.
	s := NewScheduler()
	got := s.ComputeIntervals(5)
	if !reflect.DeepEqual(got, []int{1, 3, 1}) {
		t.Fatalf("ComputeIntervals(5) = %v, want [1 3 1]", got)
	}
}

func TestComputeIntervals_Properties(t *testing.T) {
	s := NewScheduler()
	for d := 0; d <= 400; d++ {
		got := s.ComputeIntervals(d)

		if len(got) > len(s.IdealIntervals) {
			t.Fatalf("d=%d: %d intervals, want at most %d", d, len(got), len(s.IdealIntervals))
		}

		sum := 0
		for _, interval := range got {
			if interval < 1 {
				t.Fatalf("d=%d: non-positive interval in %v", d, got)
			}
			sum += interval
		}
		if sum > d {
			t.Fatalf("d=%d: intervals %v sum to %d, exceeding the budget", d, got, sum)
		}
	}
}
