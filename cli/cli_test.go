package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcess_ValidSourcePrintsTokensAndTree(t *testing.T) {
	var out, errOut bytes.Buffer

	ok := Process(&out, &errOut, "pegifront", "a.cpp", "int x = 1;", Options{})

	require.True(t, ok)
	assert.Empty(t, errOut.String())
	assert.Contains(t, out.String(), "-- tokens: a.cpp --")
	assert.Contains(t, out.String(), "-- syntax tree: a.cpp --")
}

func TestProcess_TokensOnlySkipsTree(t *testing.T) {
	var out, errOut bytes.Buffer

	ok := Process(&out, &errOut, "pegifront", "a.cpp", "int x = 1;", Options{TokensOnly: true})

	require.True(t, ok)
	assert.Contains(t, out.String(), "-- tokens: a.cpp --")
	assert.NotContains(t, out.String(), "-- syntax tree")
}

func TestProcess_LexErrorReportsAndFails(t *testing.T) {
	var out, errOut bytes.Buffer

	ok := Process(&out, &errOut, "pegifront", "a.cpp", "int x = `;", Options{})

	assert.False(t, ok)
	assert.Contains(t, errOut.String(), "a.cpp")
}

func TestProcess_ParseErrorReportsAndFails(t *testing.T) {
	var out, errOut bytes.Buffer

	ok := Process(&out, &errOut, "pegifront", "a.cpp", "int x = ;", Options{})

	assert.False(t, ok)
	assert.True(t, strings.Contains(errOut.String(), "a.cpp"))
}
