package player

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/olivier-w/vibra/internal/decode"
)

// countingReader wraps the PCM reader and tracks bytes handed to the
// audio device, which is what playback position is derived from.
type countingReader struct {
	reader io.ReadSeeker
	pos    int64
	mu     sync.Mutex
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.reader.Read(p)
	cr.mu.Lock()
	cr.pos += int64(n)
	cr.mu.Unlock()
	return n, err
}

func (cr *countingReader) Pos() int64 {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	return cr.pos
}

func (cr *countingReader) SetPos(pos int64) {
	cr.mu.Lock()
	cr.pos = pos
	cr.mu.Unlock()
}

// Player plays one fully decoded track from memory.
type Player struct {
	track       *decode.Track
	counter     *countingReader
	otoCtx      *oto.Context
	otoPlayer   *oto.Player
	duration    time.Duration
	bytesPerSec int
	frameAlign  int64
	volume      float64
	paused      bool
	done        chan struct{}
	mu          sync.Mutex
	closed      bool
}

var (
	globalOtoCtx *oto.Context
	otoOnce      sync.Once
	otoInitErr   error
)

// initOto creates the process-wide audio context. The first track's
// format wins; vibra plays a single track per run.
func initOto(sampleRate, channels int) (*oto.Context, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: channels,
			Format:       oto.FormatSignedInt16LE,
		}
		var ready chan struct{}
		globalOtoCtx, ready, otoInitErr = oto.NewContext(op)
		if otoInitErr == nil {
			<-ready
		}
	})
	return globalOtoCtx, otoInitErr
}

// New starts playback of the given track.
func New(track *decode.Track) (*Player, error) {
	if track.SampleRate <= 0 || track.Channels <= 0 {
		return nil, fmt.Errorf("track has no playable format")
	}

	ctx, err := initOto(track.SampleRate, track.Channels)
	if err != nil {
		return nil, fmt.Errorf("opening audio device: %w", err)
	}

	cr := &countingReader{reader: bytes.NewReader(track.PCM)}
	p := &Player{
		track:       track,
		counter:     cr,
		otoCtx:      ctx,
		duration:    track.Duration(),
		bytesPerSec: track.SampleRate * track.Channels * 2,
		frameAlign:  int64(track.Channels) * 2,
		volume:      0.8,
		done:        make(chan struct{}),
	}

	p.otoPlayer = ctx.NewPlayer(cr)
	p.otoPlayer.SetVolume(p.volume)
	p.otoPlayer.Play()

	go p.monitor(p.done)

	return p, nil
}

// monitor closes done when playback reaches the end of the PCM buffer.
// It captures the channel it signals so a restart that swaps p.done
// cannot make two monitors race on one close.
func (p *Player) monitor(done chan struct{}) {
	for {
		p.mu.Lock()
		if p.closed {
			p.mu.Unlock()
			return
		}
		pos := p.counter.Pos()
		total := int64(len(p.track.PCM))
		paused := p.paused
		p.mu.Unlock()

		if !paused && pos >= total {
			close(done)
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
}

// Done returns a channel that closes when playback finishes.
func (p *Player) Done() <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}

// Restart seeks to the beginning and resumes playback. If playback had
// already finished, the done channel is re-armed so Done() works again;
// mid-track the existing channel and monitor stay in place.
func (p *Player) Restart() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.counter == nil || p.otoPlayer == nil {
		return
	}

	p.counter.reader.Seek(0, io.SeekStart)
	p.counter.SetPos(0)

	p.otoPlayer.Pause()
	p.otoPlayer = p.otoCtx.NewPlayer(p.counter)
	p.otoPlayer.SetVolume(p.volume)
	p.paused = false
	p.otoPlayer.Play()

	select {
	case <-p.done:
		p.done = make(chan struct{})
		go p.monitor(p.done)
	default:
	}
}

// TogglePause toggles between play and pause.
func (p *Player) TogglePause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.paused {
		p.otoPlayer.Play()
		p.paused = false
	} else {
		p.otoPlayer.Pause()
		p.paused = true
	}
}

// Paused returns whether playback is paused.
func (p *Player) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

// Position returns the current playback position.
func (p *Player) Position() time.Duration {
	if p.counter == nil || p.bytesPerSec == 0 {
		return 0
	}
	secs := float64(p.counter.Pos()) / float64(p.bytesPerSec)
	return time.Duration(secs * float64(time.Second))
}

// Duration returns the total duration of the track.
func (p *Player) Duration() time.Duration {
	return p.duration
}

// clampSeekByteOffset converts a target position to a byte offset,
// clamped to the track and aligned to a sample-frame boundary.
func clampSeekByteOffset(target time.Duration, bytesPerSec int, total, align int64) int64 {
	offset := int64(target.Seconds() * float64(bytesPerSec))
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	return offset - (offset % align)
}

// Seek moves playback by the given delta from the current position.
func (p *Player) Seek(delta time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	current := time.Duration(float64(p.counter.Pos()) / float64(p.bytesPerSec) * float64(time.Second))
	newPos := clampSeekByteOffset(current+delta, p.bytesPerSec, int64(len(p.track.PCM)), p.frameAlign)

	if _, err := p.counter.reader.Seek(newPos, io.SeekStart); err != nil {
		return
	}
	p.counter.SetPos(newPos)

	// Recreate the device player to flush its buffered audio.
	wasPaused := p.paused
	p.otoPlayer.Pause()
	p.otoPlayer = p.otoCtx.NewPlayer(p.counter)
	p.otoPlayer.SetVolume(p.volume)
	if !wasPaused {
		p.otoPlayer.Play()
	}
}

// Volume returns current volume (0.0 to 1.0).
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// SetVolume sets volume (clamped to 0.0 - 1.0).
func (p *Player) SetVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	p.volume = v
	p.otoPlayer.SetVolume(v)
}

// AdjustVolume adjusts volume by delta.
func (p *Player) AdjustVolume(delta float64) {
	p.mu.Lock()
	v := p.volume + delta
	p.mu.Unlock()
	p.SetVolume(v)
}

// Close stops playback and releases the device player.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true
	if p.otoPlayer != nil {
		p.otoPlayer.Pause()
	}
}
