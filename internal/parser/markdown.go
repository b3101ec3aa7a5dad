package parser

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// fence is a fenced code block and the text right above it.
type fence struct {
	lang    string
	hint    string
	content string
}

// fences walks the markdown AST and returns every fenced code block in
// document order.
func fences(source []byte) ([]fence, error) {
	root := goldmark.DefaultParser().Parse(text.NewReader(source))

	var out []fence
	err := ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		block, ok := node.(*ast.FencedCodeBlock)
		if !entering || !ok {
			return ast.WalkContinue, nil
		}
		out = append(out, fence{
			lang:    string(block.Language(source)),
			hint:    hintFor(block, source),
			content: string(raw(block.Lines(), source)),
		})
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// hintFor returns the raw source of the paragraph or heading right before
// node. Inline code backticks are kept.
func hintFor(node ast.Node, source []byte) string {
	switch prev := node.PreviousSibling().(type) {
	case *ast.Paragraph:
		return strings.TrimSpace(string(raw(prev.Lines(), source)))
	case *ast.Heading:
		return strings.TrimSpace(string(raw(prev.Lines(), source)))
	}
	return ""
}

func raw(lines *text.Segments, source []byte) []byte {
	var b bytes.Buffer
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		b.Write(line.Value(source))
	}
	return b.Bytes()
}
