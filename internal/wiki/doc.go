// Package wiki classifies Wikipedia article URLs and extracts internal
// article links from fetched pages.
package wiki
