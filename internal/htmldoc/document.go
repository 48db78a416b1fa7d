package htmldoc

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Document is a parsed HTML page shared by every analyzer. The raw markup,
// the node tree, a goquery selection root, and the normalized visible text
// are all derived once so analyzers never re-parse.
type Document struct {
	// Raw is the original markup as received.
	Raw string
	// Root is the parsed node tree. Never nil.
	Root *html.Node
	// Query wraps Root for CSS-style selection. Never nil.
	Query *goquery.Document
	// Text is the visible text of the page: script and style contents
	// removed, whitespace collapsed to single spaces, trimmed, and
	// lower-cased.
	Text string
}

// Parse builds a Document from raw markup. It never fails: the HTML5
// parsing algorithm produces a tree for any byte sequence, so even empty
// or badly broken input yields a usable Document.
func Parse(raw string) *Document {
	root, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		// html.Parse only errors on reader failure, which
		// strings.Reader never produces. Guard anyway.
		root = &html.Node{Type: html.DocumentNode}
	}
	return &Document{
		Raw:   raw,
		Root:  root,
		Query: goquery.NewDocumentFromNode(root),
		Text:  visibleText(root),
	}
}

// WordCount reports the number of whitespace-separated words in the
// visible text.
func (d *Document) WordCount() int {
	if d.Text == "" {
		return 0
	}
	return len(strings.Fields(d.Text))
}

// visibleText walks the tree collecting text nodes, skipping script and
// style subtrees, then normalizes the result.
func visibleText(root *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript":
				return
			}
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return strings.ToLower(strings.Join(strings.Fields(sb.String()), " "))
}
