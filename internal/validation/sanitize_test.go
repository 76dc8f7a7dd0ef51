package validation

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "strips script tags but keeps inner text",
			input: "<script>x</script>",
			want:  "scriptx/script",
		},
		{
			name:  "plain text untouched",
			input: "A night of jazz & soul",
			want:  "A night of jazz & soul",
		},
		{
			name:  "strips comparison brackets",
			input: "tickets < 100 > 50",
			want:  "tickets  100  50",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeInput(tt.input)
			if got != tt.want {
				t.Errorf("SanitizeInput(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeInput_Truncates(t *testing.T) {
	input := strings.Repeat("a", MaxInputLength+500)
	got := SanitizeInput(input)
	if len(got) != MaxInputLength {
		t.Errorf("length = %d, want %d", len(got), MaxInputLength)
	}
}

func TestSanitizeInput_TruncatesOnRuneBoundary(t *testing.T) {
	// "é" is two bytes, so the limit lands mid-rune unless truncation
	// backs up to the boundary.
	input := strings.Repeat("a", MaxInputLength-1) + strings.Repeat("é", 300)
	got := SanitizeInput(input)

	if len(got) > MaxInputLength {
		t.Errorf("length = %d, want at most %d", len(got), MaxInputLength)
	}
	if !utf8.ValidString(got) {
		t.Errorf("truncated output is not valid UTF-8: %q", got[len(got)-4:])
	}
	if want := strings.Repeat("a", MaxInputLength-1); got != want {
		t.Errorf("length = %d, want %d with the split rune dropped", len(got), len(want))
	}
}

func TestPrepareFormData(t *testing.T) {
	data := map[string]interface{}{
		"name":  "  John  ",
		"email": "",
		"bio":   nil,
		"age":   30,
		"blank": "   ",
	}

	prepared := PrepareFormData(data)

	if got, want := prepared["name"], "John"; got != want {
		t.Errorf("name = %v, want %v", got, want)
	}
	if _, ok := prepared["email"]; ok {
		t.Error("empty string should be dropped")
	}
	if _, ok := prepared["bio"]; ok {
		t.Error("nil value should be dropped")
	}
	if _, ok := prepared["blank"]; ok {
		t.Error("whitespace-only string should be dropped")
	}
	if got := prepared["age"]; got != 30 {
		t.Errorf("non-string value = %v, want 30", got)
	}
	if len(prepared) != 2 {
		t.Errorf("prepared has %d keys, want 2: %v", len(prepared), prepared)
	}
}
