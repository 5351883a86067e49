package slug

import "testing"

// TestFromTitle exercises post slug generation with typical titles,
// punctuation, whitespace and edge cases.
func TestFromTitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		// --- Normal titles ---
		{name: "simple two words", input: "Hello World", want: "hello-world"},
		{name: "title with punctuation and year", input: "Hello, World! 2025", want: "hello-world-2025"},
		{name: "already lowercase", input: "already lowercase", want: "already-lowercase"},
		{name: "single word", input: "GoLang", want: "golang"},

		// --- Special characters ---
		{name: "apostrophe and question mark", input: "How's it going?", want: "hows-it-going"},
		{name: "ampersand leaves doubled gap collapsed", input: "Rock & Roll", want: "rock-roll"},
		{name: "parentheses and dots", input: "Version (2.0) Beta", want: "version-20-beta"},
		{name: "hyphens are kept", input: "Full-Stack Guide", want: "full-stack-guide"},
		{name: "underscores are word characters", input: "snake_case title", want: "snake_case-title"},

		// --- Whitespace ---
		{name: "leading and trailing spaces", input: "  padded  ", want: "padded"},
		{name: "tabs and newlines collapse", input: "a\t\tb\nc", want: "a-b-c"},
		{name: "multiple spaces collapse", input: "a     b", want: "a-b"},

		// --- Edge cases ---
		{name: "empty string", input: "", want: ""},
		{name: "only punctuation", input: "!!!", want: ""},
		{name: "non-ascii letters are stripped", input: "Café Crème", want: "caf-crme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromTitle(tt.input); got != tt.want {
				t.Errorf("FromTitle(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestFromTitleIdempotent checks that slugging a slug is a no-op, so
// re-saving a post with an unchanged title never changes its slug.
func TestFromTitleIdempotent(t *testing.T) {
	inputs := []string{"Hello, World! 2025", "Version (2.0) Beta", "a - b"}
	for _, in := range inputs {
		once := FromTitle(in)
		if twice := FromTitle(once); twice != once {
			t.Errorf("FromTitle(FromTitle(%q)) = %q, want %q", in, twice, once)
		}
	}
}

func TestFromName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Technology", "technology"},
		{"Web Development", "web-development"},
		{"  Food   & Drink ", "food-&-drink"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := FromName(tt.input); got != tt.want {
			t.Errorf("FromName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
