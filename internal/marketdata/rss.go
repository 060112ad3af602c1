package marketdata

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"

	"stockscope/internal/infra"
	"stockscope/pkg/models"
)

// Feed identifies one RSS source of market news.
type Feed struct {
	Name string
	URL  string
}

// DefaultFeeds are the market news feeds used when the config names none.
var DefaultFeeds = []Feed{
	{Name: "Yahoo Finance", URL: "https://finance.yahoo.com/news/rssindex"},
	{Name: "MarketWatch", URL: "https://feeds.marketwatch.com/marketwatch/topstories/"},
	{Name: "CNBC Markets", URL: "https://www.cnbc.com/id/100003114/device/rss/rss.html"},
}

// RSSNews fetches market news headlines from RSS feeds. It complements
// the Provider implementations: symbol reports fall back to it when the
// provider returns no symbol-specific news.
type RSSNews struct {
	feeds  []Feed
	parser *gofeed.Parser
	cache  *infra.Cache
}

// NewRSSNews creates a news source over the given feeds, or DefaultFeeds
// when feeds is empty.
func NewRSSNews(feeds []Feed) *RSSNews {
	if len(feeds) == 0 {
		feeds = DefaultFeeds
	}
	parser := gofeed.NewParser()
	parser.UserAgent = infra.UserAgent
	return &RSSNews{
		feeds:  feeds,
		parser: parser,
		cache:  infra.NewCache(10 * time.Minute),
	}
}

// Feeds returns the configured feeds.
func (r *RSSNews) Feeds() []Feed { return r.feeds }

// MarketNews returns up to limit recent items across all feeds, newest
// first. Feeds are fetched concurrently; a failing feed is skipped and
// never fails the whole call.
func (r *RSSNews) MarketNews(ctx context.Context, limit int) ([]models.NewsItem, error) {
	cacheKey := "rss:market"
	if cached, ok := r.cache.Get(cacheKey); ok {
		return truncate(cached.([]models.NewsItem), limit), nil
	}

	var mu sync.Mutex
	var all []models.NewsItem

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(3)
	for _, feed := range r.feeds {
		feed := feed
		g.Go(func() error {
			items, err := r.fetchFeed(gctx, feed)
			if err != nil {
				// Non-critical: a dead feed is dropped silently.
				return nil
			}
			mu.Lock()
			all = append(all, items...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].PublishedAt > all[j].PublishedAt
	})

	r.cache.Set(cacheKey, all)
	return truncate(all, limit), nil
}

// SymbolNews filters market news down to items mentioning the symbol or
// the company name.
func (r *RSSNews) SymbolNews(ctx context.Context, symbol, companyName string, limit int) ([]models.NewsItem, error) {
	all, err := r.MarketNews(ctx, 0)
	if err != nil {
		return nil, err
	}

	keywords := []string{strings.ToLower(symbol)}
	if companyName != "" {
		keywords = append(keywords, strings.ToLower(companyName))
	}

	var filtered []models.NewsItem
	for _, item := range all {
		title := strings.ToLower(item.Title)
		for _, kw := range keywords {
			if strings.Contains(title, kw) {
				filtered = append(filtered, item)
				break
			}
		}
	}
	return truncate(filtered, limit), nil
}

// Ping reports whether at least one configured feed is reachable.
func (r *RSSNews) Ping(ctx context.Context) error {
	items, err := r.MarketNews(ctx, 1)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return ErrNoData
	}
	return nil
}

func (r *RSSNews) fetchFeed(ctx context.Context, feed Feed) ([]models.NewsItem, error) {
	parsed, err := r.parser.ParseURLWithContext(feed.URL, ctx)
	if err != nil {
		return nil, err
	}

	items := make([]models.NewsItem, 0, len(parsed.Items))
	for _, it := range parsed.Items {
		item := models.NewsItem{
			Title:  stripHTML(it.Title),
			URL:    it.Link,
			Source: feed.Name,
		}
		if it.PublishedParsed != nil {
			item.PublishedAt = it.PublishedParsed.UTC().Format("2006-01-02 15:04:05")
		}
		items = append(items, item)
	}
	return items, nil
}

// stripHTML removes markup some feeds embed in titles and summaries.
func stripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<body>" + s + "</body>"))
	if err != nil {
		return s
	}
	return strings.TrimSpace(doc.Text())
}

func truncate(items []models.NewsItem, limit int) []models.NewsItem {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
