package migrate

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordBoundaryReplacer_Replace(t *testing.T) {
	tests := []struct {
		name         string
		content      string
		rules        []ReplacementRule
		want         string
		wantCount    int
		wantModified bool
	}{
		{
			name:    "simple_replacement",
			content: "console.log('hi');",
			rules: []ReplacementRule{
				{From: "console.log", To: "logger.info"},
			},
			want:         "logger.info('hi');",
			wantCount:    1,
			wantModified: true,
		},
		{
			name:    "all_occurrences_replaced",
			content: "console.log('a');\nconsole.log('b');\nconsole.log('c');",
			rules: []ReplacementRule{
				{From: "console.log", To: "logger.info"},
			},
			want:         "logger.info('a');\nlogger.info('b');\nlogger.info('c');",
			wantCount:    3,
			wantModified: true,
		},
		{
			name:    "longer_identifier_untouched",
			content: "console.logger.flush();",
			rules: []ReplacementRule{
				{From: "console.log", To: "logger.info"},
			},
			want:         "console.logger.flush();",
			wantCount:    0,
			wantModified: false,
		},
		{
			name:    "prefixed_identifier_untouched",
			content: "myconsole.log('x');",
			rules: []ReplacementRule{
				{From: "console.log", To: "logger.info"},
			},
			want:         "myconsole.log('x');",
			wantCount:    0,
			wantModified: false,
		},
		{
			name:    "multiple_rules",
			content: "console.log('a'); console.error('b'); console.warn('c');",
			rules: []ReplacementRule{
				{From: "console.log", To: "logger.info"},
				{From: "console.error", To: "logger.error"},
				{From: "console.warn", To: "logger.warn"},
			},
			want:         "logger.info('a'); logger.error('b'); logger.warn('c');",
			wantCount:    3,
			wantModified: true,
		},
		{
			name:    "no_match",
			content: "logger.info('already migrated');",
			rules: []ReplacementRule{
				{From: "console.log", To: "logger.info"},
			},
			want:         "logger.info('already migrated');",
			wantCount:    0,
			wantModified: false,
		},
		{
			name:    "empty_content",
			content: "",
			rules: []ReplacementRule{
				{From: "console.log", To: "logger.info"},
			},
			want:         "",
			wantCount:    0,
			wantModified: false,
		},
		{
			name:         "empty_rules",
			content:      "console.log('hi');",
			rules:        []ReplacementRule{},
			want:         "console.log('hi');",
			wantCount:    0,
			wantModified: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			replacer := NewWordBoundaryReplacer()
			result, err := replacer.Replace(
				context.Background(),
				strings.NewReader(tt.content),
				tt.rules,
			)

			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, tt.content, string(result.OriginalContent))
			assert.Equal(t, tt.want, string(result.ModifiedContent))
			assert.Equal(t, tt.wantCount, result.ReplacementCount)
			assert.Equal(t, tt.wantModified, result.WasModified)
		})
	}
}

func TestWordBoundaryReplacer_Saturating(t *testing.T) {
	// A second pass over already-replaced text must be a no-op
	replacer := NewWordBoundaryReplacer()
	rules := consoleReplacements()

	first, err := replacer.Replace(context.Background(),
		strings.NewReader("console.log('hi');\nconsole.debug('lo');"), rules)
	require.NoError(t, err)
	require.True(t, first.WasModified)

	second, err := replacer.Replace(context.Background(),
		strings.NewReader(string(first.ModifiedContent)), rules)
	require.NoError(t, err)
	assert.False(t, second.WasModified)
	assert.Equal(t, string(first.ModifiedContent), string(second.ModifiedContent))
}

func TestWordBoundaryReplacer_ValidateRules(t *testing.T) {
	tests := []struct {
		name      string
		rules     []ReplacementRule
		wantError string
	}{
		{
			name: "valid_rules",
			rules: []ReplacementRule{
				{From: "console.log", To: "logger.info"},
			},
		},
		{
			name: "missing_from",
			rules: []ReplacementRule{
				{To: "logger.info"},
			},
			wantError: "from is required",
		},
		{
			name: "missing_to",
			rules: []ReplacementRule{
				{From: "console.log"},
			},
			wantError: "to is required",
		},
		{
			name:  "empty_rules",
			rules: []ReplacementRule{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			replacer := NewWordBoundaryReplacer()
			err := replacer.ValidateRules(tt.rules)

			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}

			require.NoError(t, err)
		})
	}
}
