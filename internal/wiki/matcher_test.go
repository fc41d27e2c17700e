package wiki

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatcherIsTarget(t *testing.T) {
	t.Parallel()

	m := NewMatcher("")
	require.Equal(t, DefaultTarget, m.Target())
	require.True(t, m.IsTarget("/wiki/Adolf_Hitler"))
	for _, near := range []string{
		"/wiki/adolf_hitler",
		"/wiki/Adolf_Hitler/",
		"/wiki/Adolf_Hitler#Early_years",
		"https://en.wikipedia.org/wiki/Adolf_Hitler",
		"",
	} {
		require.False(t, m.IsTarget(near), near)
	}

	custom := NewMatcher("/wiki/Kevin_Bacon")
	require.True(t, custom.IsTarget("/wiki/Kevin_Bacon"))
	require.False(t, custom.IsTarget(DefaultTarget))
}

func TestMatcherIsExcluded(t *testing.T) {
	t.Parallel()

	m := NewMatcher("")
	require.True(t, m.IsExcluded("/wiki/Special:Random"))
	require.True(t, m.IsExcluded("/wiki/Talk:Philosophy"))
	require.True(t, m.IsExcluded(":"))
	require.False(t, m.IsExcluded("/wiki/Philosophy"))
	require.False(t, m.IsExcluded(""))
}
