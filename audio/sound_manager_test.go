package audio

import (
	"math"
	"testing"

	"github.com/gopxl/beep"
)

// TestSoundManagerGracefulDegradation verifies cue playback doesn't panic when not initialized
func TestSoundManagerGracefulDegradation(t *testing.T) {
	sm := NewSoundManager()

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Sound operations panicked without initialization: %v", r)
		}
	}()

	sm.PlaySuccess()
	sm.PlayFailure()
	sm.PlayLock()
	sm.SetMuted(true)
	sm.PlaySuccess()
	sm.Cleanup()
}

// TestSoundManagerCleanupWithoutInit verifies cleanup without initialization is safe
func TestSoundManagerCleanupWithoutInit(t *testing.T) {
	sm := NewSoundManager()

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Cleanup panicked without initialization: %v", r)
		}
	}()

	sm.Cleanup()
	sm.Cleanup()
}

// drain reads a streamer to exhaustion and returns the sample count and peak amplitude
func drain(s beep.Streamer) (int, float64) {
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = math.Max(peak, math.Abs(buf[i][0]))
			if buf[i][0] != buf[i][1] {
				return -1, peak
			}
		}
		total += n
		if !ok || n == 0 {
			return total, peak
		}
	}
}

// TestCueGenerators verifies each cue is finite, mono-on-stereo and bounded
func TestCueGenerators(t *testing.T) {
	tests := []struct {
		name     string
		duration int
		gen      beep.Streamer
	}{
		{"chime", sampleRate.N(successDuration), NewChimeGenerator(sampleRate, 660, 990)},
		{"buzz", sampleRate.N(failureDuration), NewBuzzGenerator(sampleRate, 120)},
		{"tick", sampleRate.N(lockDuration), NewTickGenerator(sampleRate, 1800)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, peak := drain(beep.Take(tt.duration, tt.gen))
			if total != tt.duration {
				t.Errorf("Expected %d samples, got %d", tt.duration, total)
			}
			if peak <= 0 {
				t.Errorf("Expected audible output, got peak %v", peak)
			}
			if peak > 1 {
				t.Errorf("Expected peak within [-1,1], got %v", peak)
			}
		})
	}
}

// TestChimeSwitchesNote verifies the chime restarts its envelope on the second note
func TestChimeSwitchesNote(t *testing.T) {
	g := NewChimeGenerator(sampleRate, 660, 990)
	buf := make([][2]float64, g.split+sampleRate.N(successDuration))
	g.Stream(buf)

	peakOf := func(from, to int) float64 {
		p := 0.0
		for _, s := range buf[from:to] {
			p = math.Max(p, math.Abs(s[0]))
		}
		return p
	}

	window := sampleRate.N(successDuration) / 20
	tail := peakOf(g.split-window, g.split)
	head := peakOf(g.split, g.split+window)
	if head <= tail {
		t.Errorf("Expected second note attack above first note tail, got %v <= %v", head, tail)
	}
}

// TestBuzzFadesIn verifies the buzz starts silent
func TestBuzzFadesIn(t *testing.T) {
	g := NewBuzzGenerator(sampleRate, 120)
	buf := make([][2]float64, 1)
	g.Stream(buf)
	if buf[0][0] != 0 {
		t.Errorf("Expected first sample 0, got %v", buf[0][0])
	}
}
