package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatReference(t *testing.T) {
	assert.Equal(t, "WS-MM-2026000001", FormatReference("WS-MM-", 2026, 1))
	assert.Equal(t, "WS-MM-2026000042", FormatReference("WS-MM-", 2026, 42))
	assert.Equal(t, "WS-MM-2026123456", FormatReference("WS-MM-", 2026, 123456))
}

func TestParseReference(t *testing.T) {
	year, ordinal, err := ParseReference("WS-MM-", "WS-MM-2026000003")
	require.NoError(t, err)
	assert.Equal(t, 2026, year)
	assert.Equal(t, 3, ordinal)
}

func TestParseReferenceInvalid(t *testing.T) {
	for _, ref := range []string{"", "WS-MM-", "WS-MM-20260001", "XX-2026000001"} {
		_, _, err := ParseReference("WS-MM-", ref)
		assert.Error(t, err, "reference %q", ref)
	}
}

func TestReferenceRoundTrip(t *testing.T) {
	ref := FormatReference("WS-MM-", 2026, 17)
	year, ordinal, err := ParseReference("WS-MM-", ref)
	require.NoError(t, err)
	assert.Equal(t, 2026, year)
	assert.Equal(t, 17, ordinal)
}
