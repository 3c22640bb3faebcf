package session

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/zbango/mia/encoder"
)

// chunkRMS computes the normalized root-mean-square energy of a chunk of
// little-endian 16-bit mono PCM.
func chunkRMS(data []byte) float64 {
	if len(data) < 2 {
		return 0
	}
	var sumSquares float64
	for i := 0; i+1 < len(data); i += 2 {
		sample := int16(binary.LittleEndian.Uint16(data[i:]))
		normalized := float64(sample) / 32768.0
		sumSquares += normalized * normalized
	}
	return math.Sqrt(sumSquares / float64(len(data)/2))
}

// segmenter cuts the capture stream into utterances. All timing is
// measured in audio frames rather than wall clock, so replayed capture in
// tests behaves exactly like a live microphone.
type segmenter struct {
	threshold       float64
	pauseFrames     int
	minSpeechFrames int
	maxFrames       int

	buf          []byte
	started      bool
	totalFrames  int
	speechFrames int
	quietFrames  int
}

func newSegmenter(threshold float64, pause, minPhrase, maxPhrase time.Duration) *segmenter {
	toFrames := func(d time.Duration) int {
		return int(float64(encoder.SampleRate) * d.Seconds())
	}
	return &segmenter{
		threshold:       threshold,
		pauseFrames:     toFrames(pause),
		minSpeechFrames: toFrames(minPhrase),
		maxFrames:       toFrames(maxPhrase),
	}
}

// Feed consumes one capture chunk and returns a complete utterance once
// the trailing pause (or the length cap) is reached. Bursts with less
// speech than the minimum phrase length are discarded silently.
func (s *segmenter) Feed(chunk []byte) ([]byte, bool) {
	frames := len(chunk) / 2
	if frames == 0 {
		return nil, false
	}
	loud := chunkRMS(chunk) >= s.threshold

	if !s.started {
		if !loud {
			return nil, false
		}
		s.started = true
	}

	s.buf = append(s.buf, chunk...)
	s.totalFrames += frames
	if loud {
		s.speechFrames += frames
		s.quietFrames = 0
	} else {
		s.quietFrames += frames
	}

	if s.quietFrames < s.pauseFrames && s.totalFrames < s.maxFrames {
		return nil, false
	}

	if s.speechFrames < s.minSpeechFrames {
		s.Reset()
		return nil, false
	}

	utterance := s.buf
	s.buf = nil
	return utterance, true
}

func (s *segmenter) Reset() {
	s.buf = nil
	s.started = false
	s.totalFrames = 0
	s.speechFrames = 0
	s.quietFrames = 0
}
