package contracts

import "time"

// Sentiment is the label assigned to a news item by the provider.
type Sentiment string

const (
	SentimentVeryPositive Sentiment = "very positive"
	SentimentPositive     Sentiment = "positive"
	SentimentNeutral      Sentiment = "neutral"
	SentimentNegative     Sentiment = "negative"
	SentimentVeryNegative Sentiment = "very negative"
)

// NewsItem is a single headline with provider metadata.
type NewsItem struct {
	Title     string    `json:"title"`
	Summary   string    `json:"summary,omitempty"`
	Sentiment Sentiment `json:"sentiment"`
	Source    string    `json:"source,omitempty"`

	// PublishedAt is when the item was published. A zero value means
	// the timestamp was missing and the item is treated as brand new.
	PublishedAt time.Time `json:"published_at,omitempty"`
}

// AgeHours returns the item age in hours relative to now.
func (n NewsItem) AgeHours(now time.Time) float64 {
	if n.PublishedAt.IsZero() {
		return 0
	}
	return now.Sub(n.PublishedAt).Hours()
}
