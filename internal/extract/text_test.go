package extract

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextPlainPassthrough(t *testing.T) {
	in := "IZVOD BR. 12\nstavke...\n"
	out, err := Text([]byte(in))
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestTextZipContainer(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	// Entries on purpose out of order; extraction must sort by name.
	for _, page := range []struct{ name, body string }{
		{"page_2.txt", "druga strana"},
		{"page_1.txt", "prva strana"},
		{"skip.bin", "binarno"},
	} {
		w, err := zw.Create(page.name)
		require.NoError(t, err)
		_, err = w.Write([]byte(page.body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	out, err := Text(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "prva strana\n\ndruga strana\n\n", out)
}

func TestTextZipWithoutTextEntries(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("statement.pdf")
	require.NoError(t, err)
	_, err = w.Write([]byte("not text"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = Text(buf.Bytes())
	assert.Error(t, err)
}

func TestTextBrokenPDF(t *testing.T) {
	_, err := Text([]byte("%PDF-1.7 truncated"))
	assert.Error(t, err)
}
