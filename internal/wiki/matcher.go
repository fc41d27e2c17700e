package wiki

import "strings"

// DefaultTarget is the article the search looks for unless configured otherwise.
const DefaultTarget = "/wiki/Adolf_Hitler"

// Matcher recognizes the target article and identifiers that must never be fetched.
type Matcher struct {
	target string
}

// NewMatcher builds a Matcher for the given target identifier.
func NewMatcher(target string) Matcher {
	if target == "" {
		target = DefaultTarget
	}
	return Matcher{target: target}
}

// Target returns the configured target identifier.
func (m Matcher) Target() string {
	return m.target
}

// IsTarget reports an exact match against the target identifier.
func (m Matcher) IsTarget(id string) bool {
	return id == m.target
}

// IsExcluded reports namespaced pages (Special:, Talk:, Category:, ...).
func (m Matcher) IsExcluded(id string) bool {
	return strings.Contains(id, ":")
}
