package dedup

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/lukemcguire/canonurl/urlutil"
)

// ExtractLinks parses HTML from the given reader and returns the href of
// every anchor that is an absolute http or https URL, in document order.
// Relative links are skipped since there is no base to resolve them
// against. Exact repeats are dropped; equivalent spellings are left for the
// Runner to detect.
func ExtractLinks(body io.Reader) ([]string, error) {
	tokenizer := html.NewTokenizer(body)
	seen := make(map[string]bool)
	links := []string{}

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			if err := tokenizer.Err(); err != nil && !errors.Is(err, io.EOF) {
				return links, fmt.Errorf("parse html: %w", err)
			}
			return links, nil
		case html.StartTagToken, html.SelfClosingTagToken:
			token := tokenizer.Token()
			if token.Data != "a" {
				continue
			}
			for _, attr := range token.Attr {
				if attr.Key != "href" {
					continue
				}
				href := strings.TrimSpace(attr.Val)
				if !urlutil.IsAbsolute(href) || !urlutil.IsHTTPScheme(href) {
					continue
				}
				if !seen[href] {
					seen[href] = true
					links = append(links, href)
				}
			}
		}
	}
}
