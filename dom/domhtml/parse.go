package domhtml

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/voltgo/volt/dom"
)

// ParseFragment parses markup as a body fragment and returns a
// synthetic wrapper element holding the parsed nodes as children — the
// common entry point for tests that mount a runtime fixture without a
// full HTML document.
func ParseFragment(markup string) (dom.Element, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(markup), body)
	if err != nil {
		return nil, err
	}
	for _, n := range nodes {
		body.AppendChild(n)
	}
	return wrapElement(body), nil
}

// NewDocument returns a Document with no backing root node — sufficient
// for CreateElement/CreateTextNode/CreateComment, which don't need one;
// only Body() requires a document parsed via ParseDocument.
func NewDocument() *Document { return &Document{} }

// ParseDocument parses a complete HTML document and returns a Document
// backed by it.
func ParseDocument(markup string) (*Document, error) {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, err
	}
	return &Document{root: root}, nil
}
