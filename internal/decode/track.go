package decode

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

// Track is one fully decoded audio file: interleaved signed 16-bit
// little-endian PCM plus its format. Tracks are immutable after Load.
type Track struct {
	PCM        []byte
	SampleRate int
	Channels   int
}

// Load decodes the file at path entirely into memory. Analysis and
// playback both work from the returned Track; the file is not touched
// again afterwards.
func Load(path string) (*Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := newDecoder(f)
	if err != nil {
		return nil, err
	}

	pcm, err := io.ReadAll(dec)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	if len(pcm)%2 == 1 {
		pcm = pcm[:len(pcm)-1]
	}

	return &Track{
		PCM:        pcm,
		SampleRate: dec.SampleRate(),
		Channels:   dec.ChannelCount(),
	}, nil
}

// Samples decodes the PCM bytes into interleaved int16 samples.
func (t *Track) Samples() []int16 {
	out := make([]int16, len(t.PCM)/2)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(t.PCM[i*2:]))
	}
	return out
}

// Duration is the playback length of the track.
func (t *Track) Duration() time.Duration {
	bytesPerSec := t.SampleRate * t.Channels * 2
	if bytesPerSec == 0 {
		return 0
	}
	secs := float64(len(t.PCM)) / float64(bytesPerSec)
	return time.Duration(secs * float64(time.Second))
}
