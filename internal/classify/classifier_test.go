package classify_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/spendtrack/internal/classify"
)

func TestClassify(t *testing.T) {
	type testCase struct {
		name        string
		description string
		entries     []classify.Entry
		want        string
	}

	tests := []testCase{
		{
			name:        "NoisyDescriptionMatches",
			description: "TESCO SUPERSTORE LONDON",
			entries: []classify.Entry{
				{Description: "Tesco Superstore", Category: "food"},
			},
			want: "food",
		},
		{
			name:        "UnrelatedFallsBackToDefault",
			description: "Completely Unrelated Text 12345",
			entries: []classify.Entry{
				{Description: "Tesco Superstore", Category: "food"},
			},
			want: "General",
		},
		{
			name:        "EmptyTable",
			description: "Greggs",
			entries:     nil,
			want:        "General",
		},
		{
			name:        "ReorderedTokensMatch",
			description: "City Center Tesco",
			entries: []classify.Entry{
				{Description: "Tesco City Center", Category: "food"},
			},
			want: "food",
		},
		{
			name:        "TieKeepsFirstEntry",
			description: "Greggs",
			entries: []classify.Entry{
				{Description: "Greggs", Category: "food"},
				{Description: "Greggs", Category: "bakery"},
			},
			want: "food",
		},
		{
			name:        "HigherScoreWinsOverEarlierEntry",
			// "Greggs Bakery" scores 92 against this description, the exact
			// entry later in the table scores 100 and must win.
			description: "Greggs Bakers",
			entries: []classify.Entry{
				{Description: "Greggs Bakery", Category: "travel"},
				{Description: "Greggs Bakers", Category: "food"},
			},
			want: "food",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify.Classify(tt.description, tt.entries))
		})
	}
}

func TestClassify_ThresholdIsStrict(t *testing.T) {
	// This pair scores exactly 90 on its best measure (the partial ratio:
	// nine of ten characters align in the best window). 90 does not strictly
	// exceed the threshold, so it must not classify.
	entries := []classify.Entry{{Description: "abcdefghij", Category: "food"}}

	got := classify.Classify("abcdefghix 123", entries)
	assert.Equal(t, "General", got)
}

func TestParseTable(t *testing.T) {
	input := strings.Join([]string{
		"# merchants",
		"",
		"Tesco ; food",
		"  Greggs;food",
		"Trainline; travel",
	}, "\n")

	entries, err := classify.ParseTable(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []classify.Entry{
		{Description: "Tesco", Category: "food"},
		{Description: "Greggs", Category: "food"},
		{Description: "Trainline", Category: "travel"},
	}, entries)
}

func TestParseTable_MalformedLine(t *testing.T) {
	_, err := classify.ParseTable(strings.NewReader("Tesco food\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}

func TestCategories(t *testing.T) {
	entries := []classify.Entry{
		{Description: "Tesco", Category: "food"},
		{Description: "Greggs", Category: "food"},
		{Description: "Trainline", Category: "travel"},
		{Description: "Asda", Category: "food"},
	}

	assert.Equal(t, []string{"food", "travel"}, classify.Categories(entries))
}
