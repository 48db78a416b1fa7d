package htmldoc

import (
	"testing"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		text string
	}{
		{
			name: "plain text",
			raw:  "<html><body><p>Hello World</p></body></html>",
			text: "hello world",
		},
		{
			name: "script and style excluded",
			raw:  "<html><head><style>body{color:red}</style></head><body><script>var x=1;</script><p>Visible</p></body></html>",
			text: "visible",
		},
		{
			name: "noscript excluded",
			raw:  "<body><noscript>enable js</noscript>shown</body>",
			text: "shown",
		},
		{
			name: "whitespace collapsed",
			raw:  "<p>  Verify \n\t your   account  </p>",
			text: "verify your account",
		},
		{
			name: "empty input",
			raw:  "",
			text: "",
		},
		{
			name: "malformed markup",
			raw:  "<div><p>unclosed<span>nested",
			text: "unclosed nested",
		},
		{
			name: "lowercased",
			raw:  "<p>URGENT Action REQUIRED</p>",
			text: "urgent action required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := Parse(tt.raw)
			if doc.Root == nil {
				t.Fatal("Parse() returned nil Root")
			}
			if doc.Query == nil {
				t.Fatal("Parse() returned nil Query")
			}
			if doc.Text != tt.text {
				t.Errorf("Text = %q, want %q", doc.Text, tt.text)
			}
			if doc.Raw != tt.raw {
				t.Errorf("Raw = %q, want %q", doc.Raw, tt.raw)
			}
		})
	}
}

func TestDocumentWordCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want int
	}{
		{name: "empty", raw: "", want: 0},
		{name: "single word", raw: "<p>login</p>", want: 1},
		{name: "several words", raw: "<p>verify your account now</p>", want: 4},
		{name: "across elements", raw: "<h1>Security Alert</h1><p>act fast</p>", want: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Parse(tt.raw).WordCount(); got != tt.want {
				t.Errorf("WordCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDocumentQuerySelection(t *testing.T) {
	t.Parallel()

	doc := Parse(`<form><input type="password"><input type="text"></form><a href="https://example.com">link</a>`)
	if n := doc.Query.Find("form").Length(); n != 1 {
		t.Errorf("form count = %d, want 1", n)
	}
	if n := doc.Query.Find("input").Length(); n != 2 {
		t.Errorf("input count = %d, want 2", n)
	}
	if n := doc.Query.Find(`input[type="password"]`).Length(); n != 1 {
		t.Errorf("password input count = %d, want 1", n)
	}
}
