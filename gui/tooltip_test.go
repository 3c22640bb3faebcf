package gui

import "testing"

func TestTooltipApplyWritesOpacity(t *testing.T) {
	var applied []float32
	tip := &tooltip{
		stop:       make(chan struct{}),
		setOpacity: func(a float32) { applied = append(applied, a) },
	}

	tip.apply(0.5)
	if len(applied) != 1 || applied[0] != 0.5 {
		t.Fatalf("applied = %v, want [0.5]", applied)
	}
}

func TestTooltipApplySkipsAfterReplacement(t *testing.T) {
	var applied []float32
	tip := &tooltip{
		stop:       make(chan struct{}),
		setOpacity: func(a float32) { applied = append(applied, a) },
	}

	close(tip.stop)
	tip.apply(0.9)
	if len(applied) != 0 {
		t.Errorf("opacity written to a closed tooltip: %v", applied)
	}
}

func TestTooltipApplyWithoutWindow(t *testing.T) {
	tip := &tooltip{stop: make(chan struct{})}
	tip.apply(0.3) // headless fallback path, must not panic
}
