package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// ChimeGenerator plays two sine notes back to back, each with an exponential decay
type ChimeGenerator struct {
	sr          beep.SampleRate
	first, next float64
	pos         int
	split       int
}

// NewChimeGenerator creates a chime that switches from first to next after 140ms
func NewChimeGenerator(sr beep.SampleRate, first, next float64) *ChimeGenerator {
	return &ChimeGenerator{
		sr:    sr,
		first: first,
		next:  next,
		split: sr.N(time.Millisecond * 140),
	}
}

func (g *ChimeGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		freq := g.first
		local := g.pos
		if g.pos >= g.split {
			freq = g.next
			local = g.pos - g.split
		}
		t := float64(local) / float64(g.sr)

		envelope := math.Exp(-t * 6)
		sample := 0.25 * envelope * (math.Sin(2*math.Pi*freq*t) + 0.3*math.Sin(4*math.Pi*freq*t))

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ChimeGenerator) Err() error {
	return nil
}

// BuzzGenerator generates a low-pitch buzz sound
type BuzzGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

// NewBuzzGenerator creates a buzz sound generator
func NewBuzzGenerator(sr beep.SampleRate, freq float64) *BuzzGenerator {
	return &BuzzGenerator{
		sr:   sr,
		freq: freq,
	}
}

func (g *BuzzGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// Odd-ish harmonic stack for a harsh tone
		sample := 0.0
		sample += 0.3 * math.Sin(2*math.Pi*g.freq*t)
		sample += 0.15 * math.Sin(2*math.Pi*g.freq*2*t)
		sample += 0.075 * math.Sin(2*math.Pi*g.freq*3*t)

		envelope := math.Min(t/0.02, 1.0)
		sample *= envelope * 0.2

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *BuzzGenerator) Err() error {
	return nil
}

// TickGenerator generates a very short decaying click
type TickGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

// NewTickGenerator creates a tick sound generator
func NewTickGenerator(sr beep.SampleRate, freq float64) *TickGenerator {
	return &TickGenerator{
		sr:   sr,
		freq: freq,
	}
}

func (g *TickGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		sample := 0.2 * math.Exp(-t*80) * math.Sin(2*math.Pi*g.freq*t)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *TickGenerator) Err() error {
	return nil
}
