package search

// Path is the ordered list of article identifiers from the start article to
// a frontier node. Treat it as immutable; Child returns a copy.
type Path []string

// NewPath starts a path at the given article.
func NewPath(start string) Path {
	return Path{start}
}

// Last returns the frontier node of the path.
func (p Path) Last() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// Child clones p and appends id.
func (p Path) Child(id string) Path {
	child := make(Path, len(p), len(p)+1)
	copy(child, p)
	return append(child, id)
}

// Hops is the number of articles on the path.
func (p Path) Hops() int {
	return len(p)
}
