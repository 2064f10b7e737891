package textutil

import "testing"

func TestSanitizeToken(t *testing.T) {
	if got := SanitizeToken("My Episode #3"); got != "my_episode__3" {
		t.Fatalf("unexpected token: %q", got)
	}
	if got := SanitizeToken("   "); got != "unknown" {
		t.Fatalf("expected fallback token, got %q", got)
	}
	// uuid job ids pass through untouched so the API can use equality as a
	// path-safety check.
	if id := "123e4567-e89b-12d3-a456-426614174000"; SanitizeToken(id) != id {
		t.Fatalf("uuid should be token-safe")
	}
	if SanitizeToken("../escape") == "../escape" {
		t.Fatal("traversal input should be rewritten")
	}
}

func TestTitleCase(t *testing.T) {
	if got := TitleCase("my great episode"); got != "My Great Episode" {
		t.Fatalf("unexpected title: %q", got)
	}
}

func TestNormalizeHookLine(t *testing.T) {
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{`"You Won't Believe This"`, 7, "You Won't Believe This"},
		{"one two three four five six seven eight", 7, "one two three four five six seven"},
		{"  spaced   out  ", 7, "spaced out"},
		{`""`, 7, ""},
	}
	for _, tc := range cases {
		if got := NormalizeHookLine(tc.in, tc.max); got != tc.want {
			t.Errorf("NormalizeHookLine(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("hello world", 5); got != "hello..." {
		t.Fatalf("unexpected truncation: %q", got)
	}
	if got := Truncate("short", 10); got != "short" {
		t.Fatalf("expected passthrough, got %q", got)
	}
}
