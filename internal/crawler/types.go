package crawler

import (
	"net/http"
	"time"
)

// FetchRequest captures everything needed to fetch an article page.
type FetchRequest struct {
	URL  string
	Hops int
}

// FetchResponse is the result returned by a Fetcher implementation.
type FetchResponse struct {
	URL        string
	StatusCode int
	Headers    http.Header
	Body       []byte
	Duration   time.Duration
}
