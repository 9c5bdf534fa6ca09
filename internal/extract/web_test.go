package extract

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hyperjump/askdoc/internal/apperr"
	"golang.org/x/net/html"
)

func pageServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	return pageServerWithType(t, status, "text/html; charset=utf-8", body)
}

func pageServerWithType(t *testing.T, status int, contentType, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method: got %s, want GET", r.Method)
		}
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestPageText_groupOrder(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "groups are not interleaved",
			html: `<html><body><div>Body</div><h1>Title</h1><p>Intro</p></body></html>`,
			want: "Intro Title Body",
		},
		{
			name: "paragraph inside div is counted twice",
			html: `<div><p>Inner</p></div><h2>Head</h2>`,
			want: "Inner Head Inner",
		},
		{
			name: "headings keep document order",
			html: `<h2>second level</h2><h1>first level</h1>`,
			want: "second level first level",
		},
		{
			name: "nested inline text belongs to the paragraph",
			html: `<p>Hello <b>bold</b> world</p>`,
			want: "Hello  bold  world",
		},
		{
			name: "script and style text under a div is kept",
			html: `<div><script>var x = 1;</script><style>p{}</style>visible</div>`,
			want: "var x = 1; p{} visible",
		},
		{
			name: "whitespace-only nodes are kept between fragments",
			html: "<div><p>a</p>\n<p>b</p></div>",
			want: "a b a \n b",
		},
		{
			name: "whitespace-only page text trims to empty",
			html: `<div> </div>`,
			want: "",
		},
		{
			name: "h3 and span are not collected",
			html: `<h3>skip</h3><span>skip</span><p>keep</p>`,
			want: "keep",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := html.Parse(strings.NewReader(tt.html))
			if err != nil {
				t.Fatal(err)
			}
			got, err := PageText(doc)
			if err != nil {
				t.Fatalf("PageText: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScrape_success(t *testing.T) {
	srv := pageServer(t, http.StatusOK, `<html><body><p>hello</p><div>world</div></body></html>`)
	got, err := NewScraper(srv.Client()).Scrape(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Scrape: %v", err)
	}
	if got != "hello world" {
		t.Errorf("got %q", got)
	}
}

func TestScrape_notFound(t *testing.T) {
	srv := pageServer(t, http.StatusNotFound, `<p>missing</p>`)
	_, err := NewScraper(srv.Client()).Scrape(context.Background(), srv.URL)
	if !apperr.Is(err, apperr.KindScrape) {
		t.Fatalf("expected scrape error, got %v", err)
	}
	if err.Error() != "failed to retrieve the page, status code: 404" {
		t.Errorf("message: got %q", err.Error())
	}
}

func TestScrape_charset(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
	}{
		{"latin-1 from header", "text/html; charset=iso-8859-1", "<p>caf\xe9</p>"},
		{"windows-1252 from meta", "text/html", `<html><head><meta charset="windows-1252"></head><body><p>caf` + "\xe9" + `</p></body></html>`},
		{"utf-8", "text/html; charset=utf-8", "<p>café</p>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := pageServerWithType(t, http.StatusOK, tt.contentType, tt.body)
			got, err := NewScraper(srv.Client()).Scrape(context.Background(), srv.URL)
			if err != nil {
				t.Fatalf("Scrape: %v", err)
			}
			if got != "café" {
				t.Errorf("got %q, want %q", got, "café")
			}
		})
	}
}

func TestScrape_whitespaceOnlyIsNotAnError(t *testing.T) {
	srv := pageServer(t, http.StatusOK, `<html><body><div>   </div></body></html>`)
	got, err := NewScraper(srv.Client()).Scrape(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Scrape: %v", err)
	}
	if got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestScrape_noContent(t *testing.T) {
	srv := pageServer(t, http.StatusOK, `<html><head><title>t</title></head><body><span>nothing</span><h3>skip</h3></body></html>`)
	_, err := NewScraper(srv.Client()).Scrape(context.Background(), srv.URL)
	if !apperr.Is(err, apperr.KindScrape) {
		t.Fatalf("expected scrape error, got %v", err)
	}
	if err.Error() != "no content found on the page" {
		t.Errorf("message: got %q", err.Error())
	}
}

func TestScrape_networkError(t *testing.T) {
	srv := pageServer(t, http.StatusOK, "")
	url := srv.URL
	srv.Close()

	_, err := NewScraper(nil).Scrape(context.Background(), url)
	if !apperr.Is(err, apperr.KindScrape) {
		t.Fatalf("expected scrape error, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), scrapeErrMsg) {
		t.Errorf("message: got %q", err.Error())
	}
}

func TestScrape_invalidURL(t *testing.T) {
	_, err := NewScraper(nil).Scrape(context.Background(), "://bad")
	if !apperr.Is(err, apperr.KindScrape) {
		t.Fatalf("expected scrape error, got %v", err)
	}
}

func TestScrape_canceledContext(t *testing.T) {
	srv := pageServer(t, http.StatusOK, `<p>late</p>`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewScraper(srv.Client()).Scrape(ctx, srv.URL); !apperr.Is(err, apperr.KindScrape) {
		t.Fatalf("expected scrape error for canceled context, got %v", err)
	}
}
