package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

// Config describes the blast cue.
type Config struct {
	SampleRate beep.SampleRate
	Frequency  float64
	Duration   time.Duration
	// MinGap throttles cues so a chain reaction does not flood the speaker.
	MinGap time.Duration
}

// DefaultConfig returns a short low thump.
func DefaultConfig() Config {
	return Config{
		SampleRate: beep.SampleRate(44100),
		Frequency:  110,
		Duration:   80 * time.Millisecond,
		MinGap:     120 * time.Millisecond,
	}
}

// Cue plays a tone when explosions go off. A Cue whose speaker failed to
// initialise stays silent.
type Cue struct {
	cfg   Config
	ready bool

	mu   sync.Mutex
	last time.Time
	now  func() time.Time
}

// New initialises the speaker. The returned Cue is usable even when err is
// non-nil; it simply never plays.
func New(cfg Config) (*Cue, error) {
	c := &Cue{cfg: cfg, now: time.Now}
	if err := speaker.Init(cfg.SampleRate, cfg.SampleRate.N(time.Second/10)); err != nil {
		return c, err
	}
	c.ready = true
	return c, nil
}

// Silent returns a Cue that never touches the speaker.
func Silent() *Cue {
	return &Cue{cfg: DefaultConfig(), now: time.Now}
}

// Blast plays the cue for n detonations, pitching it down as the blast grows.
// It reports whether a sound was queued.
func (c *Cue) Blast(n int) bool {
	if c == nil || !c.ready || n <= 0 {
		return false
	}
	if !c.allow() {
		return false
	}
	s, err := tone(c.cfg, n)
	if err != nil {
		return false
	}
	speaker.Play(s)
	return true
}

func (c *Cue) allow() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	if !c.last.IsZero() && now.Sub(c.last) < c.cfg.MinGap {
		return false
	}
	c.last = now
	return true
}

func tone(cfg Config, n int) (beep.Streamer, error) {
	freq := cfg.Frequency / float64(min(n, 4))
	sine, err := generators.SineTone(cfg.SampleRate, freq)
	if err != nil {
		return nil, err
	}
	return beep.Take(cfg.SampleRate.N(cfg.Duration), sine), nil
}

// Close releases the speaker.
func (c *Cue) Close() {
	if c != nil && c.ready {
		speaker.Close()
		c.ready = false
	}
}
