package markdown

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		wantErr bool
	}{
		{
			name:   "headings and paragraphs",
			source: "# Title\n\nA paragraph of text.\n\n## Section\n\n- item one\n- item two\n",
		},
		{
			name:   "plain prose parses as paragraphs",
			source: "Just a sentence with no markup at all.",
		},
		{
			name:   "code fences and emphasis",
			source: "Some *emphasis* and a block:\n\n```\ncode here\n```\n",
		},
		{
			name:    "empty string",
			source:  "",
			wantErr: true,
		},
		{
			name:    "whitespace only",
			source:  "  \n\t \n",
			wantErr: true,
		},
		{
			name:   "long document",
			source: strings.Repeat("A line of text.\n\n", 500),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.source)
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
