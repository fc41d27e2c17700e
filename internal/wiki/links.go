package wiki

import (
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"
)

const linkSelector = "a[href^='" + ArticlePrefix + "']"

// ExtractLinks returns the href of every internal article anchor in document
// order. Duplicates are kept; the dispatcher deduplicates.
func ExtractLinks(r io.Reader) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	sel := doc.Find(linkSelector)
	links := make([]string, 0, sel.Length())
	sel.Each(func(_ int, a *goquery.Selection) {
		if href, ok := a.Attr("href"); ok {
			links = append(links, href)
		}
	})
	return links, nil
}
