package llm

import (
	"testing"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain text",
			input:    "  Results-driven engineer.  ",
			expected: "Results-driven engineer.",
		},
		{
			name:     "generic code fence",
			input:    "```\n• Led migration\n• Cut costs\n```",
			expected: "• Led migration\n• Cut costs",
		},
		{
			name:     "fence with language",
			input:    "```markdown\nSeasoned developer.\n```",
			expected: "Seasoned developer.",
		},
		{
			name:     "fence without trailing marker",
			input:    "```text\nSeasoned developer.",
			expected: "Seasoned developer.",
		},
		{
			name:     "inline backticks untouched",
			input:    "Built `kubectl` plugins",
			expected: "Built `kubectl` plugins",
		},
		{
			name:     "empty",
			input:    "   ",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CleanText(tt.input)
			if result != tt.expected {
				t.Errorf("CleanText() = %q, want %q", result, tt.expected)
			}
		})
	}
}
