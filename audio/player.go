package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// DefaultCooldown is the minimum spacing between two plays of the same sound
const DefaultCooldown = 45 * time.Millisecond

// Player mixes feedback sounds onto the speaker
// Sounds requested within the cooldown of the previous play of the same type are dropped
type Player struct {
	mu          sync.Mutex
	cfg         *Config
	mixer       *beep.Mixer
	initialized bool
	cooldown    time.Duration
	lastPlayed  map[SoundType]time.Time
	now         func() time.Time
	output      func(beep.Streamer)
	played      int
}

// NewPlayer creates a player; nil cfg uses DefaultConfig
func NewPlayer(cfg *Config) *Player {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	p := &Player{
		cfg:        cfg,
		mixer:      &beep.Mixer{},
		cooldown:   DefaultCooldown,
		lastPlayed: make(map[SoundType]time.Time),
		now:        time.Now,
	}
	p.output = p.toSpeaker
	return p
}

// Initialize opens the speaker; failure leaves the player silent
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	rate := beep.SampleRate(p.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Cleanup clears queued sounds and disables playback
func (p *Player) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()

	p.initialized = false
}

// Play queues soundType unless it is still cooling down
// Returns true if the sound was queued
func (p *Player) Play(soundType SoundType) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return false
	}

	now := p.now()
	if last, ok := p.lastPlayed[soundType]; ok && now.Sub(last) < p.cooldown {
		return false
	}

	s := GetSoundEffect(soundType, p.cfg)
	if s == nil {
		return false
	}

	p.lastPlayed[soundType] = now
	p.played++
	p.output(s)
	return true
}

// Played returns the number of sounds queued since creation
func (p *Player) Played() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played
}

func (p *Player) toSpeaker(s beep.Streamer) {
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}
