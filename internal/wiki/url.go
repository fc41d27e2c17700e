package wiki

import (
	"errors"
	"strings"
)

// ArticlePrefix is the path prefix shared by every internal article link.
const ArticlePrefix = "/wiki/"

var (
	// ErrInvalidURL reports a start URL that is not a full Wikipedia article URL.
	ErrInvalidURL = errors.New("Full wikipedia url expected") //nolint:staticcheck // printed verbatim to the operator
	// ErrMissingWikiPath reports a start URL whose article path cannot be located.
	ErrMissingWikiPath = errors.New("Invalid wikipedia url") //nolint:staticcheck // printed verbatim to the operator
)

// SiteURL splits a start URL into the site base and the first article identifier.
type SiteURL struct {
	// Base is everything before the article path, e.g. https://en.wikipedia.org.
	Base string
	// Start is the article identifier of the starting page, e.g. /wiki/Philosophy.
	Start string
}

// Resolve builds the absolute URL of an article identifier on this site.
func (s SiteURL) Resolve(id string) string {
	return s.Base + id
}

// ValidateStart checks that raw has the shape
// https://<lang>[.m].wikipedia.org/wiki/<Article> and splits it.
func ValidateStart(raw string) (SiteURL, error) {
	if !isWikipediaURL(raw) {
		return SiteURL{}, ErrInvalidURL
	}
	pos := strings.Index(raw, ArticlePrefix)
	if pos < 0 {
		return SiteURL{}, ErrMissingWikiPath
	}
	return SiteURL{Base: raw[:pos], Start: raw[pos:]}, nil
}

func isWikipediaURL(raw string) bool {
	if !strings.HasPrefix(raw, "https://") {
		return false
	}
	labels := strings.Split(raw, ".")
	// label 0 carries the scheme and language subdomain.
	i := 1
	if i < len(labels) && labels[i] == "m" {
		i++
	}
	if i >= len(labels) || labels[i] != "wikipedia" {
		return false
	}
	i++
	return i < len(labels) && strings.HasPrefix(labels[i], "org/wiki/")
}
