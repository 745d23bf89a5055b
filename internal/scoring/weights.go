package scoring

import "github.com/equitylens/backend/internal/contracts"

// Weights defines the axis weights for the overall score.
type Weights struct {
	Technical   float64 `yaml:"technical" json:"technical"`
	News        float64 `yaml:"news" json:"news"`
	Fundamental float64 `yaml:"fundamental" json:"fundamental"`
}

// DefaultWeights returns the standard 50/30/20 split.
func DefaultWeights() Weights {
	return Weights{
		Technical:   0.5,
		News:        0.3,
		Fundamental: 0.2,
	}
}

// Valid checks that the weights sum to 1.0, allowing for a small
// floating point error.
func (w Weights) Valid() bool {
	sum := w.Technical + w.News + w.Fundamental
	return sum >= 0.99 && sum <= 1.01
}

// Combine produces the ScoreBundle for the three axis scores. Since
// all inputs are clamped to [0,1] and the weights sum to 1, the
// overall score is in [0,1] by construction.
func (w Weights) Combine(technical, news, fundamental float64) contracts.ScoreBundle {
	return contracts.ScoreBundle{
		TechnicalScore:   technical,
		NewsScore:        news,
		FundamentalScore: fundamental,
		OverallScore:     technical*w.Technical + news*w.News + fundamental*w.Fundamental,
	}
}
