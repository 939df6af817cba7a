package csvexport

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_QuotesAndBOM(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.Write([]string{"Veli", "Tutar"}))
	require.NoError(t, w.Write([]string{`O'Brien "Jr"`, "a;b"}))
	require.NoError(t, w.Flush())

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, BOM))
	assert.Contains(t, out, `"O'Brien ""Jr"""`)
	assert.Contains(t, out, `"a;b"`)

	r := csv.NewReader(strings.NewReader(strings.TrimPrefix(out, BOM)))
	r.Comma = ';'
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{`O'Brien "Jr"`, "a;b"}, rows[1])
}

func TestWriter_BOMOnlyOnce(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf).WithDelimiter(',')
	require.NoError(t, w.Write([]string{"a"}))
	require.NoError(t, w.Write([]string{"b"}))
	require.NoError(t, w.Flush())
	assert.Equal(t, 1, strings.Count(buf.String(), BOM))
	assert.Equal(t, BOM+"\"a\"\r\n\"b\"\r\n", buf.String())
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `""`, Quote(""))
	assert.Equal(t, `"x""y"`, Quote(`x"y`))
}
