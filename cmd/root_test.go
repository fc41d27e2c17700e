package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/JakeFAU/wikihop/internal/app"
	"github.com/JakeFAU/wikihop/internal/config"
	"github.com/JakeFAU/wikihop/internal/crawler"
	"github.com/JakeFAU/wikihop/internal/search"
)

// The tests below swap the package-level app factory and must not run in
// parallel.

func TestRootRequiresStart(t *testing.T) {
	_, _, err := execute(t, nil)
	require.ErrorIs(t, err, errNoStart)
	require.EqualError(t, err, "No starting point")
}

func TestRootRejectsInvalidURL(t *testing.T) {
	fetcher := withFakeApp(t, nil)

	for _, raw := range []string{
		"http://en.wikipedia.org/wiki/Philosophy",
		"https://en.wikipedia.com/wiki/Philosophy",
		"https://example.org/wiki/Philosophy",
		"Philosophy",
	} {
		stdout, stderr, err := execute(t, []string{raw})
		require.NoError(t, err, raw)
		require.Empty(t, stdout, raw)
		require.Equal(t, "Full wikipedia url expected\n", stderr, raw)
	}
	require.Zero(t, fetcher.total(), "invalid input must not touch the network")
}

func TestRootReportsMatch(t *testing.T) {
	fetcher := withFakeApp(t, map[string]string{
		"https://en.wikipedia.org/wiki/Philosophy": `<a href="/wiki/Adolf_Hitler">x</a>`,
	})

	stdout, stderr, err := execute(t, []string{"https://en.wikipedia.org/wiki/Philosophy"})
	require.NoError(t, err)
	require.Empty(t, stderr)
	require.Equal(t, "Found Hitler in 2 hop\n"+
		"[\n"+
		"    \"/wiki/Philosophy\",\n"+
		"    \"/wiki/Adolf_Hitler\"\n"+
		"]\n"+
		"duration: 0s\n", stdout)
	require.Equal(t, 1, fetcher.total())
}

func TestRootMobileURL(t *testing.T) {
	withFakeApp(t, map[string]string{
		"https://en.m.wikipedia.org/wiki/Cat": `<a href="/wiki/Adolf_Hitler">x</a>`,
	})

	stdout, _, err := execute(t, []string{"https://en.m.wikipedia.org/wiki/Cat"})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(stdout, "Found Hitler in 2 hop\n"))
}

func TestRootTargetFlag(t *testing.T) {
	withFakeApp(t, map[string]string{
		"https://en.wikipedia.org/wiki/Footloose": `<a href="/wiki/Kevin_Bacon">x</a>`,
	})

	stdout, _, err := execute(t, []string{"--target=/wiki/Kevin_Bacon", "https://en.wikipedia.org/wiki/Footloose"})
	require.NoError(t, err)
	require.Contains(t, stdout, `"/wiki/Kevin_Bacon"`)
}

func TestRootNoPath(t *testing.T) {
	withFakeApp(t, map[string]string{
		"https://en.wikipedia.org/wiki/Island": `<a href="/wiki/Special:Random">x</a>`,
	})

	stdout, stderr, err := execute(t, []string{"https://en.wikipedia.org/wiki/Island"})
	require.NoError(t, err)
	require.Empty(t, stdout)
	require.Equal(t, "No path found\n", stderr)
}

func TestRootAppInitFailure(t *testing.T) {
	prev := newApp
	t.Cleanup(func() { newApp = prev })
	newApp = func(config.Config, *zap.Logger) (App, error) {
		return nil, errors.New("boom")
	}

	_, _, err := execute(t, []string{"https://en.wikipedia.org/wiki/Philosophy"})
	require.EqualError(t, err, "failed to initialize application services: boom")
}

func TestRootBadConfigFile(t *testing.T) {
	withFakeApp(t, nil)

	_, _, err := execute(t, []string{"--config=/nonexistent/wikihop.yaml", "https://en.wikipedia.org/wiki/Philosophy"})
	require.ErrorContains(t, err, "load config")
}

func TestWriteReportTruncatesSeconds(t *testing.T) {
	var buf bytes.Buffer
	err := writeReport(&buf, "Kevin Bacon", search.Result{
		Path:    search.Path{"/wiki/A", "/wiki/B", "/wiki/Kevin_Bacon"},
		Elapsed: 3700 * time.Millisecond,
	})
	require.NoError(t, err)
	require.Equal(t, "Found Kevin Bacon in 3 hop\n"+
		"[\n"+
		"    \"/wiki/A\",\n"+
		"    \"/wiki/B\",\n"+
		"    \"/wiki/Kevin_Bacon\"\n"+
		"]\n"+
		"duration: 3s\n", buf.String())
}

func execute(t *testing.T, args []string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if args == nil {
		// cobra falls back to os.Args on a nil slice.
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// withFakeApp swaps in a real app whose fetcher serves pages from memory.
func withFakeApp(t *testing.T, pages map[string]string) *pageFetcher {
	t.Helper()
	fetcher := &pageFetcher{pages: pages, calls: make(map[string]int)}
	prev := newApp
	t.Cleanup(func() { newApp = prev })
	newApp = func(cfg config.Config, _ *zap.Logger) (App, error) {
		a, err := app.New(cfg, zap.NewNop())
		if err != nil {
			return nil, err
		}
		a.SetFetcher(fetcher)
		return a, nil
	}
	return fetcher
}

type pageFetcher struct {
	pages map[string]string
	mu    sync.Mutex
	calls map[string]int
}

func (f *pageFetcher) Fetch(_ context.Context, req crawler.FetchRequest) (crawler.FetchResponse, error) {
	f.mu.Lock()
	f.calls[req.URL]++
	f.mu.Unlock()
	body, ok := f.pages[req.URL]
	if !ok {
		return crawler.FetchResponse{}, fmt.Errorf("GET %s: connection refused", req.URL)
	}
	return crawler.FetchResponse{
		URL:        req.URL,
		StatusCode: http.StatusOK,
		Body:       []byte("<html><body>" + body + "</body></html>"),
	}, nil
}

func (f *pageFetcher) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}
