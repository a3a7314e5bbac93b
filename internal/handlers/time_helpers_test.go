package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseYearMonth(t *testing.T) {
	y, m, ok := parseYearMonth("2024", "3")
	require.True(t, ok)
	assert.Equal(t, 2024, y)
	assert.Equal(t, 3, m)

	for _, tc := range [][2]string{{"1999", "1"}, {"2024", "0"}, {"2024", "13"}, {"abc", "1"}} {
		_, _, ok := parseYearMonth(tc[0], tc[1])
		assert.False(t, ok, tc)
	}
}

func TestParseDateUsesLocation(t *testing.T) {
	loc := time.FixedZone("X", 3*3600)
	d, err := parseDate(loc, "2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, loc, d.Location())
	assert.Equal(t, 15, d.Day())

	_, err = parseDate(loc, "2024-02-30")
	assert.Error(t, err)
}
