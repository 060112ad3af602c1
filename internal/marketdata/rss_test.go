package marketdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const rssFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Test Markets</title>
    <item>
      <title>Stocks close lower as rate worries return</title>
      <link>https://example.com/news/1</link>
      <pubDate>Fri, 22 Aug 2025 14:00:00 GMT</pubDate>
    </item>
    <item>
      <title>&lt;b&gt;Apple&lt;/b&gt; unveils new products</title>
      <link>https://example.com/news/2</link>
      <pubDate>Fri, 22 Aug 2025 10:00:00 GMT</pubDate>
    </item>
  </channel>
</rss>`

func rssTestSource(t *testing.T) *RSSNews {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(rssFixture))
	}))
	t.Cleanup(srv.Close)
	return NewRSSNews([]Feed{{Name: "Test Markets", URL: srv.URL}})
}

func TestRSSMarketNews(t *testing.T) {
	r := rssTestSource(t)
	items, err := r.MarketNews(context.Background(), 10)
	if err != nil {
		t.Fatalf("MarketNews: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}
	// Newest first.
	if items[0].Title != "Stocks close lower as rate worries return" {
		t.Errorf("first title = %q", items[0].Title)
	}
	if items[0].Source != "Test Markets" {
		t.Errorf("source = %s", items[0].Source)
	}
}

func TestRSSStripsHTMLFromTitles(t *testing.T) {
	r := rssTestSource(t)
	items, err := r.MarketNews(context.Background(), 10)
	if err != nil {
		t.Fatalf("MarketNews: %v", err)
	}
	if items[1].Title != "Apple unveils new products" {
		t.Errorf("title = %q, want HTML stripped", items[1].Title)
	}
}

func TestRSSSymbolNewsFilters(t *testing.T) {
	r := rssTestSource(t)
	items, err := r.SymbolNews(context.Background(), "AAPL", "Apple", 10)
	if err != nil {
		t.Fatalf("SymbolNews: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("len = %d, want 1 (only the Apple headline)", len(items))
	}
	if items[0].URL != "https://example.com/news/2" {
		t.Errorf("url = %s", items[0].URL)
	}
}

func TestRSSDeadFeedSkipped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(rssFixture))
	}))
	defer srv.Close()

	r := NewRSSNews([]Feed{
		{Name: "Dead", URL: "http://127.0.0.1:1/rss"},
		{Name: "Live", URL: srv.URL},
	})
	items, err := r.MarketNews(context.Background(), 10)
	if err != nil {
		t.Fatalf("MarketNews must tolerate dead feeds: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("len = %d, want 2 from the live feed", len(items))
	}
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain text", "plain text"},
		{"<p>wrapped</p>", "wrapped"},
		{"a &amp; b", "a & b"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := stripHTML(tt.in); got != tt.want {
			t.Errorf("stripHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
