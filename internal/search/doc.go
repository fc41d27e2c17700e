// Package search runs the concurrent breadth-first search over article links.
//
// A run owns an unbounded frontier of paths and a visited set. The dispatch
// loop is the only reader and writer of the visited set: each frontier path
// whose last article is new gets its own expansion goroutine, which fetches
// the article, extracts internal links, and pushes one child path per link
// back onto the frontier. The same loop collects expansion outcomes and stops
// at the first match. Completion order follows network latency, so the
// reported path is the first one found, not necessarily the shortest.
//
// Stopping cancels the run context. Expansion goroutines receive it
// explicitly and treat a canceled context as "stay quiet": they stop logging
// and emitting progress, and their late frontier pushes are dropped.
package search
