package extract

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/hyperjump/askdoc/internal/apperr"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/net/html/charset"
)

const scrapeErrMsg = "error occurred while trying to scrape the webpage"

// Tag groups collected from a page. Their order is the order of the output text.
var scrapeGroups = [][]atom.Atom{
	{atom.P},
	{atom.H1, atom.H2},
	{atom.Div},
}

// Scraper fetches web pages and reduces them to text.
type Scraper struct {
	client *http.Client
}

// NewScraper returns a Scraper using client, or http.DefaultClient when nil.
func NewScraper(client *http.Client) *Scraper {
	if client == nil {
		client = http.DefaultClient
	}
	return &Scraper{client: client}
}

// Scrape GETs pageURL and returns the text found under paragraphs, then h1/h2
// headings, then divs. Each group keeps document order but groups are not
// interleaved, so text inside <div><p> appears twice.
// All failures are apperr.KindScrape.
func (s *Scraper) Scrape(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", apperr.Wrap(apperr.KindScrape, err, scrapeErrMsg)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", apperr.Wrap(apperr.KindScrape, err, scrapeErrMsg)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", apperr.New(apperr.KindScrape,
			fmt.Sprintf("failed to retrieve the page, status code: %d", resp.StatusCode))
	}

	body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", apperr.Wrap(apperr.KindScrape, err, scrapeErrMsg)
	}
	doc, err := html.Parse(body)
	if err != nil {
		return "", apperr.Wrap(apperr.KindScrape, err, scrapeErrMsg)
	}
	return PageText(doc)
}

// PageText applies the scrape grouping to an already parsed document.
func PageText(doc *html.Node) (string, error) {
	var fragments []string
	for _, tags := range scrapeGroups {
		fragments = append(fragments, textUnder(doc, tags)...)
	}
	if len(fragments) == 0 {
		return "", apperr.New(apperr.KindScrape, "no content found on the page")
	}
	return strings.TrimSpace(strings.Join(fragments, " ")), nil
}

// textUnder returns, in document order, every text node that has an element
// from tags among its ancestors, whitespace-only nodes included.
func textUnder(root *html.Node, tags []atom.Atom) []string {
	var out []string
	var walk func(n *html.Node, inside bool)
	walk = func(n *html.Node, inside bool) {
		switch n.Type {
		case html.ElementNode:
			if slices.Contains(tags, n.DataAtom) {
				inside = true
			}
		case html.TextNode:
			if inside {
				out = append(out, n.Data)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, inside)
		}
	}
	walk(root, false)
	return out
}
