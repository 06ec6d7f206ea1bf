package ai

import "testing"

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain JSON untouched",
			input: `[{"title": "Pasta"}]`,
			want:  `[{"title": "Pasta"}]`,
		},
		{
			name:  "json fence",
			input: "```json\n[{\"title\": \"Pasta\"}]\n```",
			want:  `[{"title": "Pasta"}]`,
		},
		{
			name:  "bare fence",
			input: "```\n{\"title\": \"Pasta\"}\n```",
			want:  `{"title": "Pasta"}`,
		},
		{
			name:  "surrounding whitespace",
			input: "  \n {\"a\": 1} \n\n",
			want:  `{"a": 1}`,
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanJSONResponse(tt.input); got != tt.want {
				t.Errorf("CleanJSONResponse(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestImageFormat(t *testing.T) {
	tests := []struct {
		mimeType string
		want     string
	}{
		{"image/jpeg", "jpeg"},
		{"image/png", "png"},
		{"image/webp", "webp"},
		{"", "jpeg"},
		{"application/pdf", "jpeg"},
		{"image/", "jpeg"},
	}
	for _, tt := range tests {
		if got := imageFormat(tt.mimeType); got != tt.want {
			t.Errorf("imageFormat(%q) = %q, want %q", tt.mimeType, got, tt.want)
		}
	}
}
