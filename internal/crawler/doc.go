// Package crawler defines the contracts shared by the search engine and its
// infrastructure adapters: page fetching, time, and run identifiers.
package crawler
