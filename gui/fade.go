package gui

import "time"

const (
	fadeTick     = 20 * time.Millisecond
	fadeAlphaCap = 0.9
	fadeInStep   = 0.1
	fadeOutStep  = 0.04
)

type fadePhase int

const (
	phaseIn fadePhase = iota
	phaseHold
	phaseOut
	phaseDone
)

// fader produces the tooltip opacity sequence: 0 up to the cap, hold,
// back down to 0. One Tick per timer callback; no sleeping, so the UI
// thread stays responsive during fades.
type fader struct {
	cap      float64
	inStep   float64
	outStep  float64
	holdLeft int

	alpha float64
	phase fadePhase
}

func newFader(hold time.Duration) *fader {
	return &fader{
		cap:      fadeAlphaCap,
		inStep:   fadeInStep,
		outStep:  fadeOutStep,
		holdLeft: int(hold / fadeTick),
	}
}

// Tick advances one step and returns the opacity to apply. done is true
// exactly once, when the sequence has returned to 0.
func (f *fader) Tick() (alpha float64, done bool) {
	switch f.phase {
	case phaseIn:
		f.alpha += f.inStep
		if f.alpha >= f.cap {
			f.alpha = f.cap
			f.phase = phaseHold
		}
	case phaseHold:
		f.holdLeft--
		if f.holdLeft <= 0 {
			f.phase = phaseOut
		}
	case phaseOut:
		f.alpha -= f.outStep
		if f.alpha <= 0 {
			f.alpha = 0
			f.phase = phaseDone
		}
	case phaseDone:
		return 0, true
	}
	return f.alpha, f.phase == phaseDone
}
