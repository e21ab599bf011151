package rendering

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		width    int
		expected []string
	}{
		{
			name:     "Short line untouched",
			line:     "Experienced engineer.",
			width:    95,
			expected: []string{"Experienced engineer."},
		},
		{
			name:     "Blank line yields no segments",
			line:     "",
			width:    95,
			expected: nil,
		},
		{
			name:     "Whitespace-only line yields no segments",
			line:     "   \t ",
			width:    95,
			expected: nil,
		},
		{
			name:     "Greedy fill",
			line:     "one two three four",
			width:    9,
			expected: []string{"one two", "three", "four"},
		},
		{
			name:     "Whitespace runs collapse",
			line:     "a   b\t\tc",
			width:    95,
			expected: []string{"a b c"},
		},
		{
			name:     "Oversized word broken at width",
			line:     "abcdefghij",
			width:    4,
			expected: []string{"abcd", "efgh", "ij"},
		},
		{
			name:     "Zero width yields nothing",
			line:     "text",
			width:    0,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Wrap(tt.line, tt.width))
		})
	}
}

func TestWrapSegmentsNeverExceedWidth(t *testing.T) {
	line := strings.Repeat("some words of varying length here ", 20)
	for _, width := range []int{5, 20, 95} {
		for _, segment := range Wrap(line, width) {
			assert.LessOrEqual(t, len(segment), width)
		}
	}
}

func TestWrapSegmentsConcatenateBack(t *testing.T) {
	line := "Led a 3-person team to build a recommendation engine that improved activation by 8% across three markets"
	segments := Wrap(line, 30)
	require.NotEmpty(t, segments)

	joined := strings.Join(segments, " ")
	normalized := strings.Join(strings.Fields(line), " ")
	assert.Equal(t, normalized, joined)
}
