package search

// OutcomeKind tags an expansion result.
type OutcomeKind int

const (
	// OutcomeCompleted means no match: children were pushed, or the node was
	// a dead end.
	OutcomeCompleted OutcomeKind = iota
	// OutcomeMatched means the path ends at the target.
	OutcomeMatched
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeCompleted:
		return "completed"
	case OutcomeMatched:
		return "matched"
	default:
		return "unknown"
	}
}

// Outcome is what an expansion task reports back to the dispatch loop.
type Outcome struct {
	Kind OutcomeKind
	// Path is set only for OutcomeMatched.
	Path Path
	// Children counts paths accepted by the frontier.
	Children int
}

func completed(children int) Outcome {
	return Outcome{Kind: OutcomeCompleted, Children: children}
}

func matched(path Path) Outcome {
	return Outcome{Kind: OutcomeMatched, Path: path}
}
