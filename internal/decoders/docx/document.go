package docx

import (
	"context"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/custodia-labs/docdecode/internal/core/domain"
	"github.com/custodia-labs/docdecode/internal/decoders"
)

// WordprocessingML namespaces, transitional and strict.
const (
	nsMain   = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsStrict = "http://purl.oclc.org/ooxml/wordprocessingml/main"
)

// PageBreak marks a w:lastRenderedPageBreak seen in a paragraph's first
// run. The marker is written by whatever application last laid the
// document out; it is a hint, not authoritative pagination.
type PageBreak struct{}

// paragraph is one w:p of the body, in document order.
type paragraph struct {
	// Text is the concatenated w:t content of the paragraph itself.
	// Text of nested paragraphs (text boxes) belongs to those paragraphs.
	Text string

	// LastRenderedPageBreak is nil when the first run carries no marker.
	LastRenderedPageBreak *PageBreak
}

// openParagraph tracks a w:p while its content is being read.
type openParagraph struct {
	index         int
	depth         int
	runs          int
	firstRunDepth int
	text          strings.Builder
}

func isWord(name xml.Name, local string) bool {
	return name.Local == local && (name.Space == nsMain || name.Space == nsStrict)
}

// parseBody reads the main document part and returns its paragraphs in
// depth-first document order. The context is checked once per top-level
// body element and once per paragraph.
func parseBody(ctx context.Context, r io.Reader) ([]paragraph, error) {
	dec := xml.NewDecoder(r)

	var (
		paragraphs []paragraph
		stack      []*openParagraph
		depth      int
		rootIsDoc  bool
		bodyFound  bool
		inBody     bool
		bodyDepth  int
		textDepth  int
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var syntaxErr *xml.SyntaxError
			if errors.As(err, &syntaxErr) {
				return nil, domain.Malformed(format, "invalid main part: "+syntaxErr.Error())
			}
			return nil, domain.IOFailure("read main part", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++

			if depth == 1 {
				rootIsDoc = isWord(t.Name, "document")
				continue
			}
			if !inBody {
				if depth == 2 && rootIsDoc && !bodyFound && isWord(t.Name, "body") {
					bodyFound = true
					inBody = true
					bodyDepth = depth
				}
				continue
			}
			if depth == bodyDepth+1 {
				if err := decoders.CheckContext(ctx); err != nil {
					return nil, err
				}
			}

			var top *openParagraph
			if len(stack) > 0 {
				top = stack[len(stack)-1]
			}

			switch {
			case isWord(t.Name, "p"):
				if err := decoders.CheckContext(ctx); err != nil {
					return nil, err
				}
				paragraphs = append(paragraphs, paragraph{})
				stack = append(stack, &openParagraph{index: len(paragraphs) - 1, depth: depth})

			case top == nil:
				// Tables, sections and other containers between paragraphs.

			case isWord(t.Name, "r") && depth == top.depth+1:
				if top.runs == 0 {
					top.firstRunDepth = depth
				}
				top.runs++

			case isWord(t.Name, "lastRenderedPageBreak") && top.firstRunDepth != 0 && depth == top.firstRunDepth+1:
				paragraphs[top.index].LastRenderedPageBreak = &PageBreak{}

			case isWord(t.Name, "t"):
				textDepth = depth
			}

		case xml.CharData:
			if textDepth != 0 && len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}

		case xml.EndElement:
			if depth == textDepth {
				textDepth = 0
			}
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				switch depth {
				case top.firstRunDepth:
					top.firstRunDepth = -1
				case top.depth:
					paragraphs[top.index].Text = top.text.String()
					stack = stack[:len(stack)-1]
				}
			}
			if inBody && depth == bodyDepth {
				inBody = false
			}
			depth--
		}
	}

	if !bodyFound {
		return nil, domain.Malformed(format, "missing body")
	}
	return paragraphs, nil
}
