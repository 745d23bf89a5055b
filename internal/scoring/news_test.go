package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/equitylens/backend/internal/contracts"
	"github.com/equitylens/backend/pkg/logger"
)

var newsNow = time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

func pinnedNewsScorer() *NewsScorer {
	return NewNewsScorer(logger.Nop()).WithClock(func() time.Time { return newsNow })
}

func TestNewsScorer_EmptyList(t *testing.T) {
	assert.Equal(t, 0.5, pinnedNewsScorer().Score(nil))
	assert.Equal(t, 0.5, pinnedNewsScorer().Score([]contracts.NewsItem{}))
}

func TestNewsScorer_SinglePositiveReutersItem(t *testing.T) {
	items := []contracts.NewsItem{
		{
			Title:       "Company reports quarterly results",
			Sentiment:   contracts.SentimentPositive,
			Source:      "Reuters",
			PublishedAt: newsNow,
		},
	}

	// base 0.7 x source 1.0 x recency 1.0 = 0.7
	assert.InDelta(t, 0.7, pinnedNewsScorer().Score(items), 1e-9)
}

func TestNewsScorer_UnknownSentimentDefaultsNeutral(t *testing.T) {
	items := []contracts.NewsItem{
		{
			Title:       "Something happened",
			Sentiment:   contracts.Sentiment("mixed"),
			Source:      "Reuters",
			PublishedAt: newsNow,
		},
	}

	assert.InDelta(t, 0.5, pinnedNewsScorer().Score(items), 1e-9)
}

func TestNewsScorer_AggregationSkewsHigh(t *testing.T) {
	// Two items scoring 0.3 and 0.7: a plain average would be 0.5, but
	// the ascending linspace weighting (0.5, 1.0) pulls it above.
	items := []contracts.NewsItem{
		{Title: "a", Sentiment: contracts.SentimentNegative, Source: "Reuters", PublishedAt: newsNow},
		{Title: "b", Sentiment: contracts.SentimentPositive, Source: "Reuters", PublishedAt: newsNow},
	}

	got := pinnedNewsScorer().Score(items)
	want := (0.3*0.5 + 0.7*1.0) / 1.5
	assert.InDelta(t, want, got, 1e-9)
	assert.Greater(t, got, 0.5)
}

func TestNewsScorer_OrderInsensitive(t *testing.T) {
	a := []contracts.NewsItem{
		{Title: "x", Sentiment: contracts.SentimentVeryPositive, Source: "Bloomberg", PublishedAt: newsNow},
		{Title: "y", Sentiment: contracts.SentimentNegative, Source: "unknown blog", PublishedAt: newsNow},
		{Title: "z", Sentiment: contracts.SentimentNeutral, PublishedAt: newsNow},
	}
	b := []contracts.NewsItem{a[2], a[0], a[1]}

	assert.Equal(t, pinnedNewsScorer().Score(a), pinnedNewsScorer().Score(b))
}

func TestBaseSentimentScore(t *testing.T) {
	tests := []struct {
		sentiment contracts.Sentiment
		want      float64
	}{
		{contracts.SentimentVeryPositive, 0.9},
		{contracts.SentimentPositive, 0.7},
		{contracts.SentimentNeutral, 0.5},
		{contracts.SentimentNegative, 0.3},
		{contracts.SentimentVeryNegative, 0.1},
		{contracts.Sentiment("unknown"), 0.5},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, baseSentimentScore(tt.sentiment), string(tt.sentiment))
	}
}

func TestSourceWeight(t *testing.T) {
	tests := []struct {
		source string
		want   float64
	}{
		{"Reuters", 1.0},
		{"bloomberg.com", 1.0},
		{"www.moneycontrol.com", 0.9},
		{"Yahoo Finance", 0.8},
		{"Seeking Alpha via seekingalpha.com", 0.8},
		{"Some Random Blog", 0.7},
		{"", 0.7},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, sourceWeight(tt.source), tt.source)
	}
}

func TestSourceWeight_FirstMatchWins(t *testing.T) {
	// "ft" appears before "yahoo" in the table, so a source containing
	// both resolves to the higher-priority entry.
	assert.Equal(t, 1.0, sourceWeight("yahoo syndicating ft content"))
}

func TestKeywordImpact(t *testing.T) {
	tests := []struct {
		name           string
		title, summary string
		want           float64
	}{
		{"no keywords", "Quarterly report published", "", 0},
		{"single positive", "Analyst upgrade for the stock", "", 0.3},
		{"single negative", "Company faces lawsuit", "", -0.2},
		{"accumulates across title and summary", "Broker upgrade announced", "New contract with partner", 0.5},
		{"positive and negative offset", "Upgrade despite lawsuit", "", 0.1},
		{"loan default is negative", "Firm at risk of default on bonds", "", -0.4},
		{"beat earnings", "Company beat earnings expectations", "", 0.4},
		{"case insensitive", "STRONG GROWTH reported", "", 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, keywordImpact(tt.title, tt.summary), 1e-9)
		})
	}
}

func TestRecencyWeight(t *testing.T) {
	tests := []struct {
		name string
		age  float64
		want float64
	}{
		{"brand new", 0, 1.0},
		{"exactly 12h", 12, 1.0},
		{"30h is halfway down", 30, 0.5},
		{"48h hits the floor", 48, 0.5},
		{"week old stays at floor", 168, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, recencyWeight(tt.age), 1e-9)
		})
	}
}

func TestRecencyWeight_LinearDecay(t *testing.T) {
	// A quarter of the way from 12h to 48h loses a quarter of the
	// decayable range.
	assert.InDelta(t, 0.75, recencyWeight(21), 1e-9)
}

func TestLinspace(t *testing.T) {
	assert.Equal(t, []float64{0.5}, linspace(0.5, 1.0, 1))
	assert.Equal(t, []float64{0.5, 1.0}, linspace(0.5, 1.0, 2))

	five := linspace(0.5, 1.0, 5)
	assert.InDelta(t, 0.5, five[0], 1e-9)
	assert.InDelta(t, 0.625, five[1], 1e-9)
	assert.InDelta(t, 0.75, five[2], 1e-9)
	assert.InDelta(t, 1.0, five[4], 1e-9)
}

func TestNewsScorer_ItemScoreClamped(t *testing.T) {
	// Heavy negative keywords push the raw score below zero; the item
	// score must clamp at 0, not go negative.
	items := []contracts.NewsItem{
		{
			Title:       "Bankruptcy filing after default, downgrade and lawsuit",
			Sentiment:   contracts.SentimentVeryNegative,
			Source:      "Reuters",
			PublishedAt: newsNow,
		},
	}

	got := pinnedNewsScorer().Score(items)
	assert.Equal(t, 0.0, got)
}
