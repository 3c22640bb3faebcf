package gui

import (
	"testing"
	"time"
)

func TestFaderSequence(t *testing.T) {
	f := newFader(200 * time.Millisecond)

	var alphas []float64
	for i := 0; i < 1000; i++ {
		alpha, done := f.Tick()
		alphas = append(alphas, alpha)
		if done {
			break
		}
	}

	last := alphas[len(alphas)-1]
	if last != 0 {
		t.Fatalf("sequence ended at %v, want 0", last)
	}

	// Locate the hold plateau and check monotonicity on both sides.
	peak := 0.0
	peakIdx := 0
	for i, a := range alphas {
		if a > peak {
			peak = a
			peakIdx = i
		}
	}
	if peak != fadeAlphaCap {
		t.Errorf("peak opacity = %v, want %v", peak, fadeAlphaCap)
	}

	for i := 0; i < peakIdx; i++ {
		if alphas[i+1] < alphas[i] {
			t.Fatalf("entrance not monotonic at step %d: %v -> %v", i, alphas[i], alphas[i+1])
		}
	}

	descending := false
	for i := peakIdx; i+1 < len(alphas); i++ {
		if alphas[i+1] > alphas[i] {
			t.Fatalf("exit not monotonic at step %d: %v -> %v", i, alphas[i], alphas[i+1])
		}
		if alphas[i+1] < alphas[i] {
			descending = true
		}
	}
	if !descending {
		t.Error("no exit fade observed")
	}
}

func TestFaderHoldDuration(t *testing.T) {
	hold := 400 * time.Millisecond
	f := newFader(hold)

	holdTicks := 0
	for i := 0; i < 1000; i++ {
		alpha, done := f.Tick()
		if alpha == fadeAlphaCap {
			holdTicks++
		}
		if done {
			break
		}
	}

	want := int(hold / fadeTick)
	// The cap is also reached on the last entrance step.
	if holdTicks < want || holdTicks > want+2 {
		t.Errorf("held for %d ticks, want about %d", holdTicks, want)
	}
}

func TestFaderDoneOnce(t *testing.T) {
	f := newFader(0)
	var doneCount int
	for i := 0; i < 200; i++ {
		_, done := f.Tick()
		if done {
			doneCount++
			break
		}
	}
	if doneCount != 1 {
		t.Fatalf("done fired %d times, want 1", doneCount)
	}
	if alpha, done := f.Tick(); !done || alpha != 0 {
		t.Errorf("Tick after done = (%v, %v), want (0, true)", alpha, done)
	}
}
