package parser

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"virustrace/graph"
)

const sample = `4 3
1 2 5
2 3 10
3 4 12
1 0 4 20
`

func TestParse(t *testing.T) {
	in, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)
	assert.Equal(t, 4, in.Computers)
	assert.Equal(t, 3, in.Connections)
	assert.Equal(t, []graph.Triple{{C1: 1, C2: 2, Time: 5}, {C1: 2, C2: 3, Time: 10}, {C1: 3, C2: 4, Time: 12}}, in.Triples)
	assert.Equal(t, graph.Query{Source: 1, MinTime: 0, Target: 4, MaxTime: 20}, in.Query)

	g := in.Build()
	assert.Equal(t, 4, g.Len())
	assert.Equal(t, 6, g.EdgeCount())
	res, err := g.Search(in.Query)
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Equal(t, graph.Hop{Node: 4, Time: 12, Via: 3}, res.Hop)
}

func TestParse_WhitespaceIsFree(t *testing.T) {
	in, err := Parse(strings.NewReader("2 1 1 2 5\n\n\t1 0 2 9"))
	require.NoError(t, err)
	assert.Equal(t, []graph.Triple{{C1: 1, C2: 2, Time: 5}}, in.Triples)
	assert.Equal(t, int64(9), in.Query.MaxTime)
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
		msg   string
	}{
		{"empty", "", "missing computer count at token 1"},
		{"bad count", "x 1", `bad computer count "x" at token 1`},
		{"short triple", "2 1 1 2", "missing time at token 5"},
		{"bad time", "2 1 1 2 later", `bad time "later" at token 5`},
		{"missing query", "2 1 1 2 5 1 0 2", "missing max time at token 9"},
		{"negative count", "2 -1", "negative connection count -1"},
		{"overstated connections", "4 9000000000000000000 1 2 5", "missing computer at token 6"},
		{"large connections", "4 2000000000 1 2 5 2 3", "missing time at token 8"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedInput)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestParse_OverstatedComputers(t *testing.T) {
	in, err := Parse(strings.NewReader("9000000000000000000 1 1 2 5 1 0 2 9"))
	require.NoError(t, err)
	assert.Equal(t, 9000000000000000000, in.Computers)

	g := in.Build()
	assert.Equal(t, 2, g.Len())
	res, err := g.Search(in.Query)
	require.NoError(t, err)
	assert.Equal(t, graph.Hop{Node: 2, Time: 5, Via: 1}, res.Hop)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.txt")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0644))
	in, err := ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, in.Triples, 3)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
