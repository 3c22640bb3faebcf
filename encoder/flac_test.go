package encoder

import (
	"encoding/binary"
	"math"
	"testing"
)

func sinePCM(seconds float64, freq float64) []byte {
	n := int(seconds * SampleRate)
	pcm := make([]byte, n*2)
	for i := 0; i < n; i++ {
		s := int16(12000 * math.Sin(2*math.Pi*freq*float64(i)/SampleRate))
		binary.LittleEndian.PutUint16(pcm[i*2:], uint16(s))
	}
	return pcm
}

func TestFlacEncoder(t *testing.T) {
	pcm := sinePCM(1.5, 440)
	samples := make([]int16, len(pcm)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(pcm[i*2:]))
	}

	enc, err := NewFlac()
	if err != nil {
		t.Fatalf("NewFlac: %v", err)
	}

	var totalFed uint64
	for i := 0; i < len(samples); i += BlockSize {
		end := i + BlockSize
		if end > len(samples) {
			end = len(samples)
		}
		block := samples[i:end]
		if err := enc.EncodeBlock(block); err != nil {
			t.Fatalf("EncodeBlock at offset %d: %v", i, err)
		}
		totalFed += uint64(len(block))
	}

	if err := enc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if enc.TotalFrames() != totalFed {
		t.Errorf("TotalFrames = %d, want %d", enc.TotalFrames(), totalFed)
	}

	flacData := enc.Bytes()
	if len(flacData) < 4 || string(flacData[:4]) != "fLaC" {
		t.Fatal("output does not start with FLAC magic")
	}
}

func TestFlacEncoderEmpty(t *testing.T) {
	enc, err := NewFlac()
	if err != nil {
		t.Fatalf("NewFlac: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Close on empty encoder: %v", err)
	}
	if enc.TotalFrames() != 0 {
		t.Errorf("TotalFrames = %d, want 0", enc.TotalFrames())
	}
	if len(enc.Bytes()) == 0 {
		t.Error("expected non-empty FLAC output (at least header)")
	}
}

func TestEncodeUtterance(t *testing.T) {
	data, err := EncodeUtterance(sinePCM(0.5, 300))
	if err != nil {
		t.Fatalf("EncodeUtterance: %v", err)
	}
	if len(data) < 4 || string(data[:4]) != "fLaC" {
		t.Fatal("output does not start with FLAC magic")
	}
}

func TestEncodeUtteranceOddLength(t *testing.T) {
	pcm := append(sinePCM(0.1, 300), 0x7f)
	if _, err := EncodeUtterance(pcm); err != nil {
		t.Fatalf("EncodeUtterance with odd length: %v", err)
	}
}
