package llm

import "testing"

func TestCleanGenerated(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "literal newlines",
			input:    "# Resume\\n\\nJane",
			expected: "# Resume\n\nJane",
		},
		{
			name:     "emoji removed",
			input:    "🚀 Shipped fast ✅",
			expected: "Shipped fast",
		},
		{
			name:     "bullet and indentation kept",
			input:    "Skills\n  • Go\n- SQL",
			expected: "Skills\n  • Go\n- SQL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CleanGenerated(tt.input)
			if result != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, result)
			}
		})
	}
}
