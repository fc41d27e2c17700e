package crawler

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Fetcher issues a single GET for a URL and returns the body plus metadata.
// Implementations must not retry and must not treat HTTP error statuses as
// failures; only transport and body-read problems are errors.
type Fetcher interface {
	Fetch(ctx context.Context, request FetchRequest) (FetchResponse, error)
}

// Clock returns the current time (useful for testing).
type Clock interface {
	Now() time.Time
}

// IDGenerator produces run IDs (UUIDs).
type IDGenerator interface {
	NewRawID() (uuid.UUID, error)
}
