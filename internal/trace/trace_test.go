package trace

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_WriterRoundTripsActionAndReturnLines(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteAction("mk-sort", "BV", "8"))
	require.NoError(t, w.WriteReturnSort(1))
	require.NoError(t, w.WriteAction("mk-const", "s1", Quote("x")))
	require.NoError(t, w.WriteReturnTerm(1))

	r := NewReader(&buf)
	l1, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, ActionLine, l1.Kind)
	assert.Equal(t, "mk-sort", l1.ActionID)
	assert.Equal(t, []string{"BV", "8"}, l1.Tokens)

	l2, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, ReturnLine, l2.Kind)
	assert.Equal(t, "s1", l2.ReturnRef)

	l3, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "mk-const", l3.ActionID)
	assert.Equal(t, "s1", l3.Tokens[0])
	name, quoted := Unquote(l3.Tokens[1])
	assert.True(t, quoted)
	assert.Equal(t, "x", name)

	l4, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, ReturnLine, l4.Kind)
	assert.Equal(t, "t1", l4.ReturnRef)

	_, err = r.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func Test_ReaderSkipsCommentsAndParsesSeed(t *testing.T) {
	src := "; a comment\nset-seed 42\nnew\n"
	r := NewReader(bytes.NewBufferString(src))

	l1, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, CommentLine, l1.Kind)

	l2, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, SeedLine, l2.Kind)
	assert.Equal(t, uint32(42), l2.Seed)

	l3, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "new", l3.ActionID)
	assert.Empty(t, l3.Tokens)
}

func Test_TokenizeHandlesQuotedStringsWithEmbeddedSpacesAndQuotes(t *testing.T) {
	toks, err := tokenize(`mk-value s1 "hello ""world"""`)
	require.NoError(t, err)
	require.Len(t, toks, 3)
	name, quoted := Unquote(toks[2])
	assert.True(t, quoted)
	assert.Equal(t, `hello "world"`, name)
}

func Test_TokenizeRejectsUnterminatedQuote(t *testing.T) {
	_, err := tokenize(`mk-value s1 "oops`)
	assert.Error(t, err)
}
