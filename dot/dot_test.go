package dot_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtomasevic/scuttlesort/dot"
	"github.com/jtomasevic/scuttlesort/timeline"
)

func TestWrite_EmitsNodesAndEdges(t *testing.T) {
	tl := timeline.New()
	_, err := tl.Add("X", nil)
	require.NoError(t, err)
	_, err = tl.Add("A", []string{"X"})
	require.NoError(t, err)

	var buf strings.Builder
	require.NoError(t, dot.Write(&buf, tl))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "digraph {"))
	assert.Contains(t, out, `"X"`)
	assert.Contains(t, out, `"A"`)
	assert.Contains(t, out, `"A" -> "X"`)
	assert.Contains(t, out, "rankdir=RL")
}

func TestWrite_EmptyTimeline(t *testing.T) {
	tl := timeline.New()
	var buf strings.Builder
	require.NoError(t, dot.Write(&buf, tl))
	assert.Contains(t, buf.String(), "digraph {")
}
