package yahoo

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/equitylens/backend/internal/contracts"
)

// maxNewsItems caps how many headlines feed the news score.
const maxNewsItems = 5

type rssFeed struct {
	XMLName xml.Name  `xml:"rss"`
	Items   []rssItem `xml:"channel>item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
	Source      string `xml:"source"`
}

// FetchNews fetches recent headlines for a symbol from the Google
// News RSS feed and labels each with a coarse sentiment.
func (c *Client) FetchNews(ctx context.Context, symbol string) ([]contracts.NewsItem, error) {
	fullURL := fmt.Sprintf("%s?q=%s&hl=en-US&gl=US&ceid=US:en",
		c.newsBaseURL, url.QueryEscape(symbol+" stock"))

	body, err := c.fetchBody(ctx, fullURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch news for %s: %w", symbol, err)
	}

	items, err := parseNewsFeed(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse news feed for %s: %w", symbol, err)
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"items":  len(items),
	}).Debug("Fetched news")

	return items, nil
}

func parseNewsFeed(body []byte) ([]contracts.NewsItem, error) {
	var feed rssFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, err
	}

	items := make([]contracts.NewsItem, 0, maxNewsItems)
	for _, raw := range feed.Items {
		title := strings.TrimSpace(raw.Title)
		if title == "" {
			continue
		}

		items = append(items, contracts.NewsItem{
			Title:       title,
			Summary:     stripHTML(raw.Description),
			Source:      strings.TrimSpace(raw.Source),
			Sentiment:   labelSentiment(title),
			PublishedAt: parsePubDate(raw.PubDate),
		})
		if len(items) == maxNewsItems {
			break
		}
	}

	return items, nil
}

// stripHTML flattens the markup Google News embeds in descriptions
// down to plain text.
func stripHTML(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || !strings.Contains(raw, "<") {
		return raw
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return raw
	}
	return strings.TrimSpace(doc.Text())
}

func parsePubDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	for _, layout := range []string{time.RFC1123Z, time.RFC1123, time.RFC822Z, time.RFC822} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

var (
	positiveWords = map[string]bool{
		"up": true, "rise": true, "gain": true, "positive": true,
		"growth": true, "higher": true, "surge": true,
	}
	negativeWords = map[string]bool{
		"down": true, "fall": true, "drop": true, "negative": true,
		"decline": true, "lower": true, "plunge": true,
	}
)

// labelSentiment classifies a headline by counting distinct positive
// and negative keywords.
func labelSentiment(text string) contracts.Sentiment {
	positives := 0
	negatives := 0
	seen := make(map[string]bool)

	for _, word := range strings.Fields(strings.ToLower(text)) {
		if seen[word] {
			continue
		}
		seen[word] = true
		if positiveWords[word] {
			positives++
		}
		if negativeWords[word] {
			negatives++
		}
	}

	switch {
	case positives > negatives:
		return contracts.SentimentPositive
	case negatives > positives:
		return contracts.SentimentNegative
	default:
		return contracts.SentimentNeutral
	}
}
