package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

const testRate = beep.SampleRate(48000)

func drain(s beep.Streamer) [][2]float64 {
	var out [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok || n == 0 {
			return out
		}
	}
}

// constant streams n samples of v
func constant(v float64, n int) beep.Streamer {
	return beep.Take(n, beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i] = [2]float64{v, v}
		}
		return len(samples), true
	}))
}

func TestOscillatorSine(t *testing.T) {
	osc := NewOscillator(440, 10*time.Millisecond, WaveSine, testRate)
	samples := drain(osc)

	if len(samples) != testRate.N(10*time.Millisecond) {
		t.Fatalf("expected %d samples, got %d", testRate.N(10*time.Millisecond), len(samples))
	}
	if samples[0][0] != 0 {
		t.Errorf("sine should start at zero, got %f", samples[0][0])
	}
	for i, s := range samples {
		if s[0] < -1 || s[0] > 1 {
			t.Fatalf("sample %d out of range: %f", i, s[0])
		}
		if s[0] != s[1] {
			t.Fatalf("sample %d channels differ", i)
		}
	}
}

func TestOscillatorNoise(t *testing.T) {
	samples := drain(NewOscillator(0, 5*time.Millisecond, WaveNoise, testRate))
	distinct := map[float64]bool{}
	for _, s := range samples {
		distinct[s[0]] = true
	}
	if len(distinct) < 10 {
		t.Errorf("noise should vary, got %d distinct values", len(distinct))
	}
}

func TestEnvelopeShape(t *testing.T) {
	d := 20 * time.Millisecond
	env := NewEnvelope(constant(1, testRate.N(d)), d, 5*time.Millisecond, 5*time.Millisecond, testRate)
	samples := drain(env)

	if samples[0][0] != 0 {
		t.Errorf("attack should start silent, got %f", samples[0][0])
	}
	mid := samples[len(samples)/2][0]
	if math.Abs(mid) != 1 {
		t.Errorf("sustain should pass full gain, got %f", mid)
	}
	last := samples[len(samples)-1][0]
	if math.Abs(last) > 0.01 {
		t.Errorf("release should end near silence, got %f", last)
	}
}

func TestDetentSoundIsShortAndBounded(t *testing.T) {
	cfg := DefaultConfig()
	samples := drain(CreateDetentSound(cfg))

	rate := beep.SampleRate(cfg.SampleRate)
	click := rate.N(DetentClick)
	want := click + rate.N(DetentDuration)
	if len(samples) != want {
		t.Fatalf("detent length %d, want %d", len(samples), want)
	}

	// Transient is noise; the tone body starts from a zero crossing
	distinct := map[float64]bool{}
	for _, s := range samples[:click] {
		distinct[s[0]] = true
	}
	if len(distinct) < click/2 {
		t.Errorf("click transient has %d distinct values over %d samples", len(distinct), click)
	}
	if samples[click][0] != 0 {
		t.Errorf("tone body should start at zero, got %f", samples[click][0])
	}
	for i, s := range samples {
		if math.Abs(s[0]) > 1 {
			t.Fatalf("sample %d clips: %f", i, s[0])
		}
	}
}

func TestSwitchSoundPlaysBothNotes(t *testing.T) {
	cfg := DefaultConfig()
	samples := drain(CreateSwitchSound(cfg))

	want := 2 * beep.SampleRate(cfg.SampleRate).N(SwitchNoteDuration)
	if len(samples) != want {
		t.Fatalf("switch length %d, want %d", len(samples), want)
	}
}

func TestZeroVolumeIsSilent(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MasterVolume = 0
	for i, s := range drain(CreateDetentSound(cfg)) {
		if s[0] != 0 {
			t.Fatalf("sample %d = %f, want silence", i, s[0])
		}
	}
}

func TestGetSoundEffectUnknown(t *testing.T) {
	if GetSoundEffect(SoundType(99), DefaultConfig()) != nil {
		t.Error("unknown sound type should return nil")
	}
}
