package metadata

import "testing"

func TestDecodeEntities(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "Named ampersand",
			input: "A &amp; B",
			want:  "A & B",
		},
		{
			name:  "Named quote and angle brackets",
			input: "&quot;say&quot; &lt;this&gt;",
			want:  `"say" <this>`,
		},
		{
			name:  "Hex apostrophe",
			input: "it&#x27;s here",
			want:  "it's here",
		},
		{
			name:  "Decimal entity",
			input: "caf&#233;",
			want:  "café",
		},
		{
			name:  "Named apostrophe",
			input: "don&apos;t",
			want:  "don't",
		},
		{
			name:  "Non-breaking space",
			input: "a&nbsp;b",
			want:  "a b",
		},
		{
			name:  "Double-encoded apostrophe",
			input: "it&amp;#x27;s",
			want:  "it's",
		},
		{
			name:  "No entities is a no-op",
			input: "plain text #tag",
			want:  "plain text #tag",
		},
		{
			name:  "Malformed entity left alone",
			input: "&#zz; stays",
			want:  "&#zz; stays",
		},
		{
			name:  "Empty string",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeEntities(tt.input)
			if got != tt.want {
				t.Errorf("DecodeEntities(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDecodeEntitiesIdempotent(t *testing.T) {
	input := "A &amp; B &#x27;quoted&#x27;"
	once := DecodeEntities(input)
	twice := DecodeEntities(once)
	if once != twice {
		t.Errorf("decoding is not idempotent: first %q, second %q", once, twice)
	}
}
