package tween

import (
	"math"
	"testing"

	"github.com/adiwidya/kariesar/common"
)

func TestTweenAdvance(t *testing.T) {
	tw := New(0, 10, 1, common.EaseLinear)

	if tw.Advance(0.5) {
		t.Fatalf("tween done at half duration")
	}
	if got := tw.Value(); math.Abs(got-5) > 1e-9 {
		t.Fatalf("value at 0.5 = %v, want 5", got)
	}

	if !tw.Advance(0.5) {
		t.Fatalf("tween not done at full duration")
	}
	if got := tw.Value(); got != 10 {
		t.Fatalf("final value = %v, want 10", got)
	}
}

func TestTweenZeroDuration(t *testing.T) {
	tw := New(3, 7, 0, nil)
	if !tw.Advance(0) {
		t.Fatalf("zero-duration tween should complete immediately")
	}
	if got := tw.Value(); got != 7 {
		t.Fatalf("value = %v, want end value 7", got)
	}
}

func TestTweenOvershootClampsValue(t *testing.T) {
	tw := New(0, 1, 0.25, common.EaseInOutQuad)
	tw.Advance(10)
	if got := tw.Value(); got != 1 {
		t.Fatalf("overshot value = %v, want 1", got)
	}
}

func TestSequencePhaseWindows(t *testing.T) {
	var trace []string
	record := func(name string) func(float64) {
		return func(p float64) {
			if len(trace) == 0 || trace[len(trace)-1] != name {
				trace = append(trace, name)
			}
		}
	}

	seq := NewSequence(
		Phase{Name: "approach", Duration: 0.2, Ease: common.EaseLinear, Update: record("approach")},
		Phase{Name: "act", Duration: 0.3, Ease: common.EaseLinear, Update: record("act")},
		Phase{Name: "retreat", Duration: 0.2, Ease: common.EaseLinear, Update: record("retreat")},
	)

	if got := seq.TotalDuration(); math.Abs(got-0.7) > 1e-9 {
		t.Fatalf("total duration = %v, want 0.7", got)
	}

	done := false
	for i := 0; i < 100 && !done; i++ {
		done = seq.Advance(1.0 / 60.0)
	}
	if !done {
		t.Fatalf("sequence never completed")
	}
	want := []string{"approach", "act", "retreat"}
	if len(trace) != len(want) {
		t.Fatalf("phase order %v, want %v", trace, want)
	}
	for i := range want {
		if trace[i] != want[i] {
			t.Fatalf("phase order %v, want %v", trace, want)
		}
	}
}

func TestSequenceClosesPhaseAtOne(t *testing.T) {
	var last float64
	seq := NewSequence(
		Phase{Name: "a", Duration: 0.1, Ease: common.EaseLinear, Update: func(p float64) { last = p }},
		Phase{Name: "b", Duration: 0.1, Ease: common.EaseLinear, Update: func(p float64) {}},
	)

	// A big step should still deliver the closing progress=1 call for "a".
	seq.Advance(0.15)
	if last != 1 {
		t.Fatalf("phase a closed at progress %v, want 1", last)
	}
	if seq.Active() != "b" {
		t.Fatalf("active phase %q, want b", seq.Active())
	}
}

func TestSequenceOvershootCarries(t *testing.T) {
	seq := NewSequence(
		Phase{Name: "a", Duration: 0.1},
		Phase{Name: "b", Duration: 0.1},
	)
	if !seq.Advance(0.25) {
		t.Fatalf("sequence should finish when dt exceeds total duration")
	}
	if !seq.Done() {
		t.Fatalf("Done() false after completion")
	}
}

func TestEmptySequenceDone(t *testing.T) {
	seq := NewSequence()
	if !seq.Advance(0.016) {
		t.Fatalf("empty sequence should be done immediately")
	}
}
