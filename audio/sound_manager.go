package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(48000)
)

// Cue durations
const (
	successDuration = 420 * time.Millisecond
	failureDuration = 300 * time.Millisecond
	lockDuration    = 60 * time.Millisecond
)

// SoundManager plays synthesized verdict and lockout cues
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
}

// NewSoundManager creates a new sound manager, every Play is a no-op until Initialize succeeds
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
	}
}

// Initialize sets up the audio system
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100))
	if err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	// beep has no speaker Close, clearing the mixer leaves it silent
	sm.initialized = false
}

// SetMuted toggles output without tearing down the speaker
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	sm.muted = muted
	sm.mu.Unlock()
}

// PlaySuccess plays a rising two-note chime
func (sm *SoundManager) PlaySuccess() {
	sm.play(beep.Take(sampleRate.N(successDuration), NewChimeGenerator(sampleRate, 660, 990)))
}

// PlayFailure plays a short low buzz
func (sm *SoundManager) PlayFailure() {
	sm.play(beep.Take(sampleRate.N(failureDuration), NewBuzzGenerator(sampleRate, 120)))
}

// PlayLock plays a click used while input is refused
func (sm *SoundManager) PlayLock() {
	sm.play(beep.Take(sampleRate.N(lockDuration), NewTickGenerator(sampleRate, 1800)))
}

func (sm *SoundManager) play(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}

	// Mixer drops drained streamers on its own
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}
