// Package html decodes HTML and XHTML documents into their visible text.
package html

import (
	"context"
	"io"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/custodia-labs/docdecode/internal/core/domain"
	"github.com/custodia-labs/docdecode/internal/core/ports/driven"
	"github.com/custodia-labs/docdecode/internal/decoders"
	"github.com/custodia-labs/docdecode/internal/logger"
	"github.com/custodia-labs/docdecode/internal/textutil"
)

// Ensure Decoder implements the interface.
var _ driven.Decoder = (*Decoder)(nil)

// Decoder handles HTML documents.
type Decoder struct{}

// New creates a new HTML decoder.
func New() *Decoder {
	return &Decoder{}
}

// Name returns the decoder name.
func (d *Decoder) Name() string {
	return "html"
}

// SupportedMediaTypes returns the media types this decoder handles.
func (d *Decoder) SupportedMediaTypes() []string {
	return []string{domain.MediaTypeHTML, domain.MediaTypeXHTML}
}

// SupportsMediaType reports whether mediaType is HTML or XHTML.
func (d *Decoder) SupportsMediaType(mediaType string) bool {
	return domain.MatchesMediaType(mediaType, d.SupportedMediaTypes())
}

// Priority returns the selection priority.
func (d *Decoder) Priority() int {
	return 50
}

// DecodeFile decodes the document at path.
func (d *Decoder) DecodeFile(ctx context.Context, path string) (*domain.FileContent, error) {
	return decoders.DecodeFile(ctx, d, path, domain.MediaTypeHTML)
}

// DecodeBytes decodes an in-memory document.
func (d *Decoder) DecodeBytes(ctx context.Context, data []byte) (*domain.FileContent, error) {
	return decoders.DecodeBytes(ctx, d, data, domain.MediaTypeHTML)
}

// Decode returns the visible text as a single chunk, one line per block
// element.
func (d *Decoder) Decode(ctx context.Context, r io.Reader, mediaType string) (*domain.FileContent, error) {
	if err := decoders.CheckMediaType(d, mediaType); err != nil {
		return nil, err
	}
	if err := decoders.CheckContext(ctx); err != nil {
		return nil, err
	}

	logger.Debug("extracting text from HTML file")

	doc, err := html.Parse(r)
	if err != nil {
		return nil, domain.IOFailure("parse html", err)
	}

	w := &textWriter{ctx: ctx}
	w.walk(doc)
	if w.err != nil {
		return nil, w.err
	}
	w.flush()

	var sb strings.Builder
	for _, line := range w.lines {
		textutil.AppendLineNix(&sb, line)
	}

	result := decoders.NewContent(mediaType)
	result.Add(domain.NewChunk(textutil.NormaliseNewlines(sb.String(), false), 1, domain.ChunkMeta(true)))
	return result, nil
}

var hiddenStyle = regexp.MustCompile(`(?i)(display\s*:\s*none|visibility\s*:\s*hidden)`)

func isHidden(n *html.Node) bool {
	for _, a := range n.Attr {
		switch a.Key {
		case "hidden":
			return true
		case "style":
			if hiddenStyle.MatchString(a.Val) {
				return true
			}
		}
	}
	return false
}

func isBlock(a atom.Atom) bool {
	switch a {
	case atom.Address, atom.Article, atom.Aside, atom.Blockquote, atom.Body,
		atom.Caption, atom.Dd, atom.Details, atom.Div, atom.Dl, atom.Dt,
		atom.Figcaption, atom.Figure, atom.Footer, atom.Form, atom.H1, atom.H2,
		atom.H3, atom.H4, atom.H5, atom.H6, atom.Header, atom.Hr, atom.Li,
		atom.Main, atom.Nav, atom.Ol, atom.P, atom.Pre, atom.Section,
		atom.Summary, atom.Table, atom.Tr, atom.Ul:
		return true
	}
	return false
}

// textWriter collects block lines. Whitespace inside a line collapses to
// single spaces except within pre.
type textWriter struct {
	ctx   context.Context
	lines []string
	cur   strings.Builder
	space bool
	pre   int
	raw   bool
	err   error
}

func (w *textWriter) flush() {
	line := strings.TrimSpace(w.cur.String())
	if w.raw {
		line = strings.TrimRightFunc(w.cur.String(), unicode.IsSpace)
	}
	if line != "" {
		w.lines = append(w.lines, line)
	}
	w.cur.Reset()
	w.space = false
	w.raw = false
}

func (w *textWriter) text(s string) {
	if w.pre > 0 {
		w.raw = true
		lines := strings.Split(s, "\n")
		for i, line := range lines {
			if i > 0 {
				w.lines = append(w.lines, strings.TrimRightFunc(w.cur.String(), unicode.IsSpace))
				w.cur.Reset()
			}
			w.cur.WriteString(line)
		}
		return
	}
	for _, r := range s {
		if unicode.IsSpace(r) {
			w.space = true
			continue
		}
		if w.space && w.cur.Len() > 0 {
			w.cur.WriteByte(' ')
		}
		w.space = false
		w.cur.WriteRune(r)
	}
}

func (w *textWriter) walk(n *html.Node) {
	if w.err != nil {
		return
	}
	switch n.Type {
	case html.TextNode:
		w.text(n.Data)
		return
	case html.ElementNode:
		switch n.DataAtom {
		case atom.Head, atom.Script, atom.Style, atom.Noscript, atom.Template:
			return
		case atom.Br:
			w.flush()
			return
		case atom.Td, atom.Th:
			w.space = true
		}
		if isHidden(n) {
			return
		}
	}

	block := n.Type == html.ElementNode && isBlock(n.DataAtom)
	if block {
		if err := decoders.CheckContext(w.ctx); err != nil {
			w.err = err
			return
		}
		w.flush()
	}
	if n.DataAtom == atom.Pre {
		w.pre++
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}
	if n.DataAtom == atom.Pre {
		w.pre--
	}
	if block {
		w.flush()
	}
}
