package scoring

import (
	"sort"
	"strings"
	"time"

	"github.com/equitylens/backend/internal/contracts"
	"github.com/equitylens/backend/pkg/logger"
)

// neutralNewsScore is returned when there is nothing to score.
const neutralNewsScore = 0.5

// defaultSourceWeight applies when a source matches no table entry.
// Deliberately not a table key: the negative keyword "default" (as in
// loan default) lives in the keyword table and must never collide with
// this fallback.
const defaultSourceWeight = 0.7

// sourceWeights is priority-ordered; the first substring match wins,
// so '.com' style entries must come after more specific ones.
var sourceWeights = []struct {
	key    string
	weight float64
}{
	{"reuters", 1.0},
	{"bloomberg", 1.0},
	{"ft", 1.0},
	{"wsj", 1.0},
	{"moneycontrol", 0.9},
	{"investing.com", 0.9},
	{"yahoo", 0.8},
	{"seekingalpha", 0.8},
}

// positiveKeywords add to the keyword impact when found anywhere in
// the lowercased title+summary. Matches accumulate.
var positiveKeywords = []struct {
	keyword string
	impact  float64
}{
	{"upgrade", 0.3},
	{"buy rating", 0.3},
	{"outperform", 0.3},
	{"beat earnings", 0.4},
	{"new contract", 0.2},
	{"partnership", 0.2},
	{"expansion", 0.2},
	{"launch", 0.2},
	{"positive guidance", 0.3},
	{"strong growth", 0.3},
}

var negativeKeywords = []struct {
	keyword string
	impact  float64
}{
	{"downgrade", -0.3},
	{"sell rating", -0.3},
	{"underperform", -0.3},
	{"miss earnings", -0.4},
	{"lawsuit", -0.2},
	{"investigation", -0.2},
	{"default", -0.4},
	{"bankruptcy", -0.4},
	{"negative guidance", -0.3},
	{"weak outlook", -0.3},
}

// NewsScorer scores a batch of news items on a 0-1 scale, weighting
// each by source credibility, keyword content and recency.
type NewsScorer struct {
	logger *logger.Logger
	nowFn  func() time.Time
}

// NewNewsScorer creates a new news scorer.
func NewNewsScorer(log *logger.Logger) *NewsScorer {
	return &NewsScorer{
		logger: log,
		nowFn:  time.Now,
	}
}

// WithClock overrides the clock used for recency weighting. Tests pin
// it so scores are reproducible.
func (s *NewsScorer) WithClock(nowFn func() time.Time) *NewsScorer {
	s.nowFn = nowFn
	return s
}

// Score aggregates per-item scores into one sentiment score. An empty
// batch yields exactly the neutral 0.5.
//
// The aggregation is intentionally asymmetric: item scores are sorted
// ascending and weighted linearly from 0.5 up to 1.0, so the highest
// scores count roughly twice as much as the lowest. This skews the
// result toward the strongest positive items rather than averaging
// them away.
func (s *NewsScorer) Score(items []contracts.NewsItem) float64 {
	if len(items) == 0 {
		s.logger.Debug("No news items - neutral score 0.5")
		return neutralNewsScore
	}

	now := s.nowFn()
	scores := make([]float64, 0, len(items))

	for _, item := range items {
		scores = append(scores, s.scoreItem(item, now))
	}

	sort.Float64s(scores)

	weights := linspace(0.5, 1.0, len(scores))

	var weightedSum, weightSum float64
	for i, score := range scores {
		weightedSum += score * weights[i]
		weightSum += weights[i]
	}

	final := weightedSum / weightSum

	s.logger.WithFields(map[string]interface{}{
		"items": len(items),
		"score": final,
	}).Debug("News score calculated")

	return final
}

// scoreItem scores a single item as
// clamp((base + keywordImpact) * sourceWeight * recencyWeight, 0, 1).
func (s *NewsScorer) scoreItem(item contracts.NewsItem, now time.Time) float64 {
	base := baseSentimentScore(item.Sentiment)
	srcWeight := sourceWeight(item.Source)
	impact := keywordImpact(item.Title, item.Summary)
	recency := recencyWeight(item.AgeHours(now))

	score := Clamp01((base + impact) * srcWeight * recency)

	s.logger.WithFields(map[string]interface{}{
		"title":          truncate(item.Title, 80),
		"sentiment":      string(item.Sentiment),
		"base":           base,
		"source_weight":  srcWeight,
		"keyword_impact": impact,
		"recency_weight": recency,
		"score":          score,
	}).Debug("News item scored")

	return score
}

// baseSentimentScore maps a sentiment label to its base score.
// Unknown labels score neutral.
func baseSentimentScore(sentiment contracts.Sentiment) float64 {
	switch sentiment {
	case contracts.SentimentVeryPositive:
		return 0.9
	case contracts.SentimentPositive:
		return 0.7
	case contracts.SentimentNegative:
		return 0.3
	case contracts.SentimentVeryNegative:
		return 0.1
	default:
		return 0.5
	}
}

// sourceWeight finds the first credibility table entry contained in
// the source string, case-insensitively.
func sourceWeight(source string) float64 {
	lowered := strings.ToLower(source)
	for _, entry := range sourceWeights {
		if strings.Contains(lowered, entry.key) {
			return entry.weight
		}
	}
	return defaultSourceWeight
}

// keywordImpact accumulates every positive and negative keyword found
// in the lowercased title and summary.
func keywordImpact(title, summary string) float64 {
	text := strings.ToLower(title + " " + summary)

	var impact float64
	for _, entry := range positiveKeywords {
		if strings.Contains(text, entry.keyword) {
			impact += entry.impact
		}
	}
	for _, entry := range negativeKeywords {
		if strings.Contains(text, entry.keyword) {
			impact += entry.impact
		}
	}
	return impact
}

// recencyWeight gives full weight to items up to 12 hours old, then
// decays linearly to the 0.5 floor at 48 hours.
func recencyWeight(ageHours float64) float64 {
	weight := 1 - (ageHours-12)/36
	if weight > 1 {
		return 1
	}
	if weight < 0.5 {
		return 0.5
	}
	return weight
}

// linspace returns n evenly spaced values from start to stop
// inclusive. For n == 1 the single value is start.
func linspace(start, stop float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}

	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
