package recommend

import (
	"math/rand"
	"sync"
)

// noiseAmplitude bounds the stochastic perturbation added to each score.
const noiseAmplitude = 0.1

// Noise supplies the per-candidate stochastic perturbation. Draw returns a
// value in [-noiseAmplitude, +noiseAmplitude], one independent draw per
// candidate per invocation. The source is injected so scoring runs are
// reproducible in tests; production seeds from the clock.
type Noise interface {
	Draw() float64
}

type uniformNoise struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewUniformNoise returns a Noise drawing uniformly from
// [-noiseAmplitude, +noiseAmplitude], seeded with the given seed.
func NewUniformNoise(seed int64) Noise {
	return &uniformNoise{rng: rand.New(rand.NewSource(seed))}
}

func (n *uniformNoise) Draw() float64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.rng.Float64()*2*noiseAmplitude - noiseAmplitude
}

// Fixed returns a Noise whose every draw is v. Used to pin perturbation in
// tests; Fixed(0) reproduces the deterministic part of the score exactly.
func Fixed(v float64) Noise {
	return fixedNoise(v)
}

type fixedNoise float64

func (n fixedNoise) Draw() float64 { return float64(n) }
