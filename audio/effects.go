// Package audio synthesises short carousel feedback sounds
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	// WaveSine is a pure tone, the body of every sound
	WaveSine WaveType = iota
	// WaveNoise is white noise, used for click transients
	WaveNoise
)

// SoundType identifies a feedback sound
type SoundType int

const (
	// SoundDetent is the tick played when a new card reaches centre
	SoundDetent SoundType = iota
	// SoundSwitch is the two-note chime played on variation change
	SoundSwitch
)

// Sound timing
const (
	DetentDuration = 28 * time.Millisecond
	DetentAttack   = 2 * time.Millisecond
	DetentRelease  = 22 * time.Millisecond
	DetentFreq     = 1320.0

	DetentClick     = 3 * time.Millisecond
	DetentClickGain = 0.35

	SwitchNoteDuration = 60 * time.Millisecond
	SwitchAttack       = 5 * time.Millisecond
	SwitchRelease      = 40 * time.Millisecond
	SwitchFreqLow      = 659.25
	SwitchFreqHigh     = 987.77
)

// Config controls synthesis parameters
type Config struct {
	SampleRate   int
	MasterVolume float64
	Volumes      map[SoundType]float64
}

// DefaultConfig returns quiet UI-level volumes
func DefaultConfig() *Config {
	return &Config{
		SampleRate:   48000,
		MasterVolume: 0.5,
		Volumes: map[SoundType]float64{
			SoundDetent: 0.4,
			SoundSwitch: 0.6,
		},
	}
}

// oscillator generates a finite mono wave copied to both channels
type oscillator struct {
	wave      WaveType
	phaseStep float64 // cycles per sample
	phase     float64
	remaining int
}

// NewOscillator creates a finite oscillator of the given wave shape
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		wave:      wave,
		phaseStep: freq / float64(rate),
		remaining: rate.N(duration),
	}
}

func (o *oscillator) next() float64 {
	if o.wave == WaveNoise {
		return rand.Float64()*2 - 1
	}
	v := math.Sin(2 * math.Pi * o.phase)
	o.phase = math.Mod(o.phase+o.phaseStep, 1)
	return v
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	if o.remaining <= 0 {
		return 0, false
	}
	n = min(len(samples), o.remaining)
	for i := 0; i < n; i++ {
		v := o.next()
		samples[i] = [2]float64{v, v}
	}
	o.remaining -= n
	return n, true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack/release shaping to a stream
type envelope struct {
	streamer     beep.Streamer
	position     int
	attack       int
	release      int
	releaseStart int
	total        int
}

// NewEnvelope wraps s with attack and release ramps over duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	start := total - rel
	if start < att {
		start = att
	}
	return &envelope{
		streamer:     s,
		attack:       att,
		release:      rel,
		releaseStart: start,
		total:        total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}

		gain := 1.0
		if e.position < e.attack && e.attack > 0 {
			gain = float64(e.position) / float64(e.attack)
		}
		if e.position >= e.releaseStart && e.release > 0 {
			gain = float64(e.total-e.position) / float64(e.release)
			if gain < 0 {
				gain = 0
			}
		}

		samples[i][0] *= gain
		samples[i][1] *= gain
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly; zero or negative volume is silent
// effects.Volume is logarithmic, Log2(0) would be -Inf
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// CreateDetentSound generates a short click for a card crossing centre
// A noise transient precedes a quickly decaying tone
func CreateDetentSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	click := NewEnvelope(NewOscillator(0, DetentClick, WaveNoise, rate), DetentClick, 0, DetentClick, rate)
	body := NewEnvelope(NewOscillator(DetentFreq, DetentDuration, WaveSine, rate), DetentDuration, DetentAttack, DetentRelease, rate)

	seq := beep.Seq(newVolume(click, DetentClickGain), body)
	return newVolume(seq, cfg.Volumes[SoundDetent]*cfg.MasterVolume)
}

// CreateSwitchSound generates a rising two-note chime for a preset change
func CreateSwitchSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	low := NewOscillator(SwitchFreqLow, SwitchNoteDuration, WaveSine, rate)
	high := NewOscillator(SwitchFreqHigh, SwitchNoteDuration, WaveSine, rate)

	seq := beep.Seq(
		NewEnvelope(low, SwitchNoteDuration, SwitchAttack, SwitchRelease, rate),
		NewEnvelope(high, SwitchNoteDuration, SwitchAttack, SwitchRelease, rate),
	)
	return newVolume(seq, cfg.Volumes[SoundSwitch]*cfg.MasterVolume)
}

// GetSoundEffect returns a fresh streamer for soundType, nil if unknown
func GetSoundEffect(soundType SoundType, cfg *Config) beep.Streamer {
	switch soundType {
	case SoundDetent:
		return CreateDetentSound(cfg)
	case SoundSwitch:
		return CreateSwitchSound(cfg)
	}
	return nil
}
