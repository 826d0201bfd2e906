package document

import "testing"

func TestPlainText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain paragraph", "Hello world.\n", "Hello world."},
		{"link", "Click [here](https://example.com) now.\n", "Click here now."},
		{"emphasis", "This is *important* and **bold** text.\n", "This is important and bold text."},
		{"code span", "Use `fmt.Println` to print.\n", "Use fmt.Println to print."},
		{"image", "See ![alt text](image.png) here.\n", "See alt text here."},
		{"soft break", "Hello\nworld.\n", "Hello world."},
		{"heading and paragraph", "# Title\n\nBody text.\n", "Title\n\nBody text."},
		{"fenced code dropped", "Before.\n\n```go\nfmt.Println(1)\n```\n\nAfter.\n", "Before.\n\nAfter."},
		{"tight list", "- one\n- two\n", "one\n\ntwo"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlainText(tt.in); got != tt.want {
				t.Fatalf("PlainText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
