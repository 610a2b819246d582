package news

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/mail"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const userAgent = "afwatch/1.0 (+https://github.com/afwatch/afwatch)"

// FeedItem is one entry from an RSS or Atom feed.
type FeedItem struct {
	Title     string
	Link      string
	Published time.Time // zero when the feed gave no parseable date
}

// rss 2.0 and Atom share one document struct; whichever set of elements
// the decoder finds decides the format.
type feedDoc struct {
	Channel *struct {
		Items []struct {
			Title   string `xml:"title"`
			Link    string `xml:"link"`
			PubDate string `xml:"pubDate"`
			Date    string `xml:"date"`
		} `xml:"item"`
	} `xml:"channel"`
	Entries []struct {
		Title string `xml:"title"`
		Link  struct {
			Href string `xml:"href,attr"`
		} `xml:"link"`
		Updated   string `xml:"updated"`
		Published string `xml:"published"`
	} `xml:"entry"`
}

// ParseFeed decodes an RSS 2.0 or Atom document.
func ParseFeed(raw []byte) ([]FeedItem, error) {
	var doc feedDoc
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parsing feed: %w", err)
	}

	var items []FeedItem
	if doc.Channel != nil {
		for _, it := range doc.Channel.Items {
			pub := it.PubDate
			if pub == "" {
				pub = it.Date
			}
			items = append(items, FeedItem{Title: it.Title, Link: it.Link, Published: parseFeedDate(pub)})
		}
		return items, nil
	}
	for _, e := range doc.Entries {
		pub := e.Updated
		if pub == "" {
			pub = e.Published
		}
		items = append(items, FeedItem{Title: e.Title, Link: e.Link.Href, Published: parseFeedDate(pub)})
	}
	return items, nil
}

// parseFeedDate handles the date formats seen in the wild: RFC 1123 with
// and without numeric zones (RSS pubDate) and RFC 3339 (Atom).
func parseFeedDate(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	if t, err := mail.ParseDate(raw); err == nil {
		return t.UTC()
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC()
	}
	return time.Time{}
}

// Fetcher pulls feeds over HTTP with retries.
type Fetcher struct {
	http *retryablehttp.Client
}

// NewFetcher builds a feed fetcher.
func NewFetcher() *Fetcher {
	retryClient := retryablehttp.NewClient()
	retryClient.Logger = log.New(io.Discard, "", 0)
	retryClient.RetryMax = 2
	retryClient.HTTPClient.Timeout = 20 * time.Second
	return &Fetcher{http: retryClient}
}

// Fetch downloads and parses one feed.
func (f *Fetcher) Fetch(ctx context.Context, src Source) ([]FeedItem, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", src.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status %d", src.Name, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return ParseFeed(body)
}
