package player

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/olivier-w/vibra/internal/decode"
)

func TestClampSeekByteOffsetClampsAndAligns(t *testing.T) {
	got := clampSeekByteOffset(3900*time.Millisecond, 10, 100, 4)
	if got != 36 {
		t.Fatalf("expected aligned seek offset 36, got %d", got)
	}

	got = clampSeekByteOffset(-1*time.Second, 10, 100, 4)
	if got != 0 {
		t.Fatalf("expected negative seek to clamp to 0, got %d", got)
	}

	got = clampSeekByteOffset(time.Hour, 10, 41, 4)
	if got != 40 {
		t.Fatalf("expected past-end seek to clamp to aligned 40, got %d", got)
	}
}

func TestCountingReaderTracksPosition(t *testing.T) {
	cr := &countingReader{reader: bytes.NewReader(make([]byte, 100))}

	buf := make([]byte, 30)
	if _, err := io.ReadFull(cr, buf); err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if cr.Pos() != 30 {
		t.Fatalf("Pos() = %d, want 30", cr.Pos())
	}

	cr.SetPos(8)
	if cr.Pos() != 8 {
		t.Fatalf("Pos() = %d after SetPos, want 8", cr.Pos())
	}
}

func TestPositionFromCounter(t *testing.T) {
	track := &decode.Track{
		PCM:        make([]byte, 44100*4),
		SampleRate: 44100,
		Channels:   2,
	}
	p := &Player{
		track:       track,
		counter:     &countingReader{reader: bytes.NewReader(track.PCM)},
		bytesPerSec: track.SampleRate * track.Channels * 2,
		frameAlign:  4,
	}

	p.counter.SetPos(int64(track.SampleRate)) // a quarter second of stereo 16-bit
	want := 250 * time.Millisecond
	if got := p.Position(); got != want {
		t.Fatalf("Position() = %v, want %v", got, want)
	}
}

func TestMonitorClosesCapturedChannel(t *testing.T) {
	track := &decode.Track{PCM: make([]byte, 4), SampleRate: 44100, Channels: 1}
	cr := &countingReader{reader: bytes.NewReader(track.PCM)}
	cr.SetPos(int64(len(track.PCM)))
	done := make(chan struct{})
	p := &Player{track: track, counter: cr, done: done}

	go p.monitor(done)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("expected monitor to close its channel at end of track")
	}
}

func TestRestartIgnoresUninitializedPlayer(t *testing.T) {
	p := new(Player)
	p.Restart()
	if got := p.Position(); got != 0 {
		t.Fatalf("Position() = %v after no-op restart, want 0", got)
	}
}

func TestNewRejectsEmptyFormat(t *testing.T) {
	if _, err := New(&decode.Track{}); err == nil {
		t.Fatal("expected error for track without format")
	}
}

func TestReadMetadataFallsBackToFilename(t *testing.T) {
	path := filepath.Join("some", "dir", "My Song.flac")
	m := ReadMetadata(path)
	if m.Title != "My Song" {
		t.Fatalf("Title = %q, want %q", m.Title, "My Song")
	}
	if m.Artist != "" || m.Album != "" {
		t.Fatalf("expected empty artist/album, got %q / %q", m.Artist, m.Album)
	}
}
