package wiki

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractLinks(t *testing.T) {
	t.Parallel()

	body := `<html><body>
<a href="/wiki/Greek_language">Greek</a>
<a href="https://example.com/wiki/External">external</a>
<a href="/w/index.php?title=Philosophy">edit</a>
<p><a href="/wiki/Category:Philosophy">category</a></p>
<a href="/wiki/Greek_language">again</a>
<a name="anchor">no href</a>
</body></html>`

	links, err := ExtractLinks(strings.NewReader(body))
	require.NoError(t, err)
	require.Equal(t, []string{
		"/wiki/Greek_language",
		"/wiki/Category:Philosophy",
		"/wiki/Greek_language",
	}, links)
}

func TestExtractLinksLenient(t *testing.T) {
	t.Parallel()

	links, err := ExtractLinks(strings.NewReader(`<div><a href="/wiki/Logic">unclosed <b>`))
	require.NoError(t, err)
	require.Equal(t, []string{"/wiki/Logic"}, links)

	links, err = ExtractLinks(strings.NewReader("plain text, not html"))
	require.NoError(t, err)
	require.Empty(t, links)
}

func TestExtractLinksReadFailure(t *testing.T) {
	t.Parallel()

	_, err := ExtractLinks(failingReader{})
	require.Error(t, err)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("connection reset")
}
