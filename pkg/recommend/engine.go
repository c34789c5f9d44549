// Package recommend implements the plant recommendation pipeline: candidate
// selection, confidence scoring, reason generation, and ranking. The engine
// is pure and stateless — persistence and I/O belong to the service layer —
// and all randomness comes from an injected Noise source.
package recommend

import (
	"math"
	"sort"
	"time"

	"github.com/hortechia/hortechia-engine/pkg/models"
)

// Config tunes the pipeline. The zero value is not useful; start from
// DefaultConfig.
type Config struct {
	// Threshold is the minimum confidence required for a candidate to be
	// surfaced.
	Threshold float64

	// MaxResults caps the number of surfaced recommendations.
	MaxResults int

	// TruncateBeforeScoring restores the legacy behavior of cutting the
	// candidate list to MaxResults in catalog order before any scoring
	// happens. The default (false) scores every selected candidate and
	// applies the cap after ranking, so a strong late-catalog match is not
	// silently dropped.
	TruncateBeforeScoring bool
}

// DefaultConfig returns the production defaults: threshold 0.7, at most 5
// recommendations, cap applied after ranking.
func DefaultConfig() Config {
	return Config{
		Threshold:  0.7,
		MaxResults: 5,
	}
}

// Scored is one surfaced candidate with its confidence, explanation, and
// estimated harvest date.
type Scored struct {
	Plant            models.Plant
	Confidence       float64 // rounded to 2 decimal places
	Reasons          []string
	EstimatedHarvest time.Time
}

// Engine runs the scoring pipeline.
type Engine struct {
	cfg Config
}

// NewEngine creates an Engine with the given configuration.
func NewEngine(cfg Config) *Engine {
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = DefaultConfig().MaxResults
	}
	return &Engine{cfg: cfg}
}

// Recommend filters the catalog against the user profile and garden, scores
// each candidate, and returns the ranked shortlist. An empty result is a
// valid outcome, not an error. Output order is non-increasing in confidence;
// ties keep the candidates' catalog order.
func (e *Engine) Recommend(user models.User, garden models.Garden, plants []models.Plant, noise Noise, now time.Time) []Scored {
	candidates := e.SelectCandidates(user, garden, plants)

	var out []Scored
	for _, plant := range candidates {
		confidence := e.Score(user, garden, plant, noise)
		if confidence < e.cfg.Threshold {
			continue
		}
		out = append(out, Scored{
			Plant:            plant,
			Confidence:       math.Round(confidence*100) / 100,
			Reasons:          Reasons(user, garden, plant),
			EstimatedHarvest: now.AddDate(0, 0, plant.HarvestTimeDays),
		})
	}

	// Stable: equal confidences keep selector order so results are
	// deterministic for pinned noise.
	sort.SliceStable(out, func(i, j int) bool { return out[i].Confidence > out[j].Confidence })

	if len(out) > e.cfg.MaxResults {
		out = out[:e.cfg.MaxResults]
	}
	return out
}

// SelectCandidates filters the catalog to plants compatible with the user's
// experience tier and the garden's size, preserving catalog order. Each tier
// accepts every difficulty the tier below it accepts; an unknown tier is
// treated as beginner.
func (e *Engine) SelectCandidates(user models.User, garden models.Garden, plants []models.Plant) []models.Plant {
	allowed := allowedDifficulties(user.ExperienceLevel)

	var candidates []models.Plant
	for _, plant := range plants {
		if !allowed[plant.Difficulty] {
			continue
		}
		if garden.SizeM2 > 0 && plant.SpaceRequired > garden.SizeM2 {
			continue
		}
		candidates = append(candidates, plant)
		if e.cfg.TruncateBeforeScoring && len(candidates) == e.cfg.MaxResults {
			break
		}
	}
	return candidates
}

// Score computes the confidence for one candidate: a weighted sum of
// deterministic factors plus one draw from the noise source, clamped to
// [0, 1]. The additive model:
//
//	base 0.5
//	+ experience bonus   beginner 0.1, intermediate 0.2, advanced 0.3
//	+ difficulty bonus   easy 0.2, medium 0.1, hard 0
//	+ space-fit bonus    0.15 if required area ≤ half the garden
//	+ sun bonus          0.1 for full sun
//	+ noise draw         uniform in [-0.1, +0.1]
func (e *Engine) Score(user models.User, garden models.Garden, plant models.Plant, noise Noise) float64 {
	confidence := 0.5

	switch user.ExperienceLevel {
	case models.ExperienceIntermediate:
		confidence += 0.2
	case models.ExperienceAdvanced:
		confidence += 0.3
	default:
		confidence += 0.1
	}

	switch plant.Difficulty {
	case models.DifficultyEasy:
		confidence += 0.2
	case models.DifficultyMedium:
		confidence += 0.1
	}

	if garden.SizeM2 > 0 && plant.SpaceRequired <= garden.SizeM2*0.5 {
		confidence += 0.15
	}

	if garden.SunExposure == models.ExposureFullSun {
		confidence += 0.1
	}

	confidence += noise.Draw()

	return clamp01(confidence)
}

func allowedDifficulties(experienceLevel string) map[string]bool {
	switch experienceLevel {
	case models.ExperienceAdvanced:
		return map[string]bool{models.DifficultyEasy: true, models.DifficultyMedium: true, models.DifficultyHard: true}
	case models.ExperienceIntermediate:
		return map[string]bool{models.DifficultyEasy: true, models.DifficultyMedium: true}
	default:
		return map[string]bool{models.DifficultyEasy: true}
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
