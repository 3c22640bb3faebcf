// Package encoder turns captured PCM into FLAC for recognition uploads.
package encoder

import "encoding/binary"

const (
	SampleRate    = 16000
	Channels      = 1
	BitsPerSample = 16
	BlockSize     = 4096
)

// EncodeUtterance compresses little-endian 16-bit mono PCM into a complete
// FLAC stream. A trailing odd byte is dropped.
func EncodeUtterance(pcm []byte) ([]byte, error) {
	enc, err := NewFlac()
	if err != nil {
		return nil, err
	}

	nSamples := len(pcm) / 2
	block := make([]int16, 0, BlockSize)
	for i := 0; i < nSamples; i++ {
		block = append(block, int16(binary.LittleEndian.Uint16(pcm[i*2:])))
		if len(block) == BlockSize {
			if err := enc.EncodeBlock(block); err != nil {
				return nil, err
			}
			block = block[:0]
		}
	}
	if len(block) > 0 {
		if err := enc.EncodeBlock(block); err != nil {
			return nil, err
		}
	}

	if err := enc.Close(); err != nil {
		return nil, err
	}
	return enc.Bytes(), nil
}
