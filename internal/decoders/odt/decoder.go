// Package odt decodes OpenDocument text (.odt) files.
//
// Pages follow the text:soft-page-break elements the authoring
// application writes where it laid out a page boundary. Files saved
// without layout information decode to a single page.
package odt

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/custodia-labs/docdecode/internal/core/domain"
	"github.com/custodia-labs/docdecode/internal/core/ports/driven"
	"github.com/custodia-labs/docdecode/internal/decoders"
	"github.com/custodia-labs/docdecode/internal/logger"
	"github.com/custodia-labs/docdecode/internal/textutil"
)

const (
	format      = "odt"
	contentPart = "content.xml"
	nsOffice    = "urn:oasis:names:tc:opendocument:xmlns:office:1.0"
	nsText      = "urn:oasis:names:tc:opendocument:xmlns:text:1.0"
)

// Ensure Decoder implements the interface.
var _ driven.Decoder = (*Decoder)(nil)

// Decoder handles OpenDocument text files.
type Decoder struct{}

// New creates a new OpenDocument text decoder.
func New() *Decoder {
	return &Decoder{}
}

// Name returns the decoder name.
func (d *Decoder) Name() string {
	return format
}

// SupportedMediaTypes returns the media types this decoder handles.
func (d *Decoder) SupportedMediaTypes() []string {
	return []string{domain.MediaTypeODT}
}

// SupportsMediaType reports whether mediaType is OpenDocument text.
func (d *Decoder) SupportsMediaType(mediaType string) bool {
	return domain.MatchesMediaType(mediaType, d.SupportedMediaTypes())
}

// Priority returns the selection priority.
func (d *Decoder) Priority() int {
	return 50
}

// DecodeFile decodes the document at path.
func (d *Decoder) DecodeFile(ctx context.Context, path string) (*domain.FileContent, error) {
	return decoders.DecodeFile(ctx, d, path, domain.MediaTypeODT)
}

// DecodeBytes decodes an in-memory document.
func (d *Decoder) DecodeBytes(ctx context.Context, data []byte) (*domain.FileContent, error) {
	return decoders.DecodeBytes(ctx, d, data, domain.MediaTypeODT)
}

// Decode extracts paragraph and heading text, one line each.
func (d *Decoder) Decode(ctx context.Context, r io.Reader, mediaType string) (*domain.FileContent, error) {
	if err := decoders.CheckMediaType(d, mediaType); err != nil {
		return nil, err
	}
	if err := decoders.CheckContext(ctx); err != nil {
		return nil, err
	}

	logger.Debug("extracting text from OpenDocument text file")

	ra, size, err := decoders.ReaderAt(r)
	if err != nil {
		return nil, err
	}
	zr, err := zip.NewReader(ra, size)
	if err != nil {
		return nil, domain.IOFailure("open package", err)
	}

	var content *zip.File
	for _, f := range zr.File {
		if f.Name == contentPart {
			content = f
			break
		}
	}
	if content == nil {
		return nil, domain.Malformed(format, "missing content part")
	}

	rc, err := content.Open()
	if err != nil {
		return nil, domain.IOFailure("open "+contentPart, err)
	}
	defer rc.Close()

	paragraphs, err := parseText(ctx, rc)
	if err != nil {
		return nil, err
	}
	return paginate(ctx, paragraphs, mediaType)
}

type paragraph struct {
	Text string
	// SoftPageBreak is set when the paragraph starts a new laid out page.
	SoftPageBreak bool
}

func isText(name xml.Name, local string) bool {
	return name.Space == nsText && name.Local == local
}

func isOffice(name xml.Name, local string) bool {
	return name.Space == nsOffice && name.Local == local
}

// parseText walks office:body/office:text, collecting text:p and text:h
// in document order. Nested paragraphs, such as those inside frames or
// notes, get their own slot after the paragraph containing them.
func parseText(ctx context.Context, r io.Reader) ([]paragraph, error) {
	dec := xml.NewDecoder(r)

	var (
		paragraphs []paragraph
		open       []int
		texts      []*paraText
		inBody     bool
		inText     bool
		textFound  bool
		depth      int
		textDepth  int
		pending    bool
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var syntaxErr *xml.SyntaxError
			if errors.As(err, &syntaxErr) {
				return nil, domain.Malformed(format, "invalid content part: "+syntaxErr.Error())
			}
			return nil, domain.IOFailure("read "+contentPart, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			switch {
			case isOffice(t.Name, "body") && depth == 2:
				inBody = true
			case isOffice(t.Name, "text") && inBody && !inText:
				inText, textFound = true, true
				textDepth = depth
			}
			if !inText {
				continue
			}
			if depth == textDepth+1 {
				if err := decoders.CheckContext(ctx); err != nil {
					return nil, err
				}
			}

			switch {
			case isText(t.Name, "p") || isText(t.Name, "h"):
				if err := decoders.CheckContext(ctx); err != nil {
					return nil, err
				}
				paragraphs = append(paragraphs, paragraph{SoftPageBreak: pending})
				pending = false
				open = append(open, len(paragraphs)-1)
				texts = append(texts, newParaText())
			case isText(t.Name, "soft-page-break"):
				if len(open) == 0 {
					pending = true
				} else {
					idx := open[len(open)-1]
					paragraphs[idx].SoftPageBreak = true
				}
			case len(texts) == 0:
			case isText(t.Name, "s"):
				texts[len(texts)-1].spaces(spaceCount(t))
			case isText(t.Name, "tab"):
				texts[len(texts)-1].control('\t')
			case isText(t.Name, "line-break"):
				texts[len(texts)-1].control('\n')
			}

		case xml.CharData:
			if inText && len(texts) > 0 {
				texts[len(texts)-1].chars(t)
			}

		case xml.EndElement:
			if inText {
				switch {
				case depth == textDepth:
					inText = false
				case (isText(t.Name, "p") || isText(t.Name, "h")) && len(open) > 0:
					idx := open[len(open)-1]
					paragraphs[idx].Text = texts[len(texts)-1].sb.String()
					open = open[:len(open)-1]
					texts = texts[:len(texts)-1]
				}
			}
			if isOffice(t.Name, "body") && depth == 2 {
				inBody = false
			}
			depth--
		}
	}

	if !textFound {
		return nil, domain.Malformed(format, "missing body")
	}
	return paragraphs, nil
}

// paraText accumulates paragraph text with ODF white-space handling:
// runs of source white space collapse to one space, white space at the
// start and end of a paragraph is dropped, and text:s, text:tab and
// text:line-break are the only way to emit literal white space.
type paraText struct {
	sb strings.Builder
	// pending holds a collapsed space until non-space content follows.
	pending bool
	// atStart drops white space before any content on the line.
	atStart bool
}

func newParaText() *paraText {
	return &paraText{atStart: true}
}

func (p *paraText) chars(data []byte) {
	for _, r := range string(data) {
		switch r {
		case ' ', '\t', '\r', '\n':
			if !p.atStart {
				p.pending = true
			}
		default:
			p.flush()
			p.sb.WriteRune(r)
			p.atStart = false
		}
	}
}

func (p *paraText) spaces(n int) {
	p.flush()
	p.sb.WriteString(strings.Repeat(" ", n))
	p.atStart = false
}

// control writes a tab or line break; source white space right after it
// is dropped.
func (p *paraText) control(c byte) {
	p.flush()
	p.sb.WriteByte(c)
	p.atStart = true
}

func (p *paraText) flush() {
	if p.pending {
		p.sb.WriteByte(' ')
		p.pending = false
	}
}

// spaceCount reads the text:c attribute of text:s, which defaults to one.
func spaceCount(t xml.StartElement) int {
	for _, a := range t.Attr {
		if a.Name.Space == nsText && a.Name.Local == "c" {
			if n, err := strconv.Atoi(a.Value); err == nil && n > 0 {
				return n
			}
		}
	}
	return 1
}

// paginate groups paragraphs into page chunks, closing a page before each
// paragraph that follows a soft page break.
func paginate(ctx context.Context, paragraphs []paragraph, mediaType string) (*domain.FileContent, error) {
	result := decoders.NewContent(mediaType)

	var sb strings.Builder
	pageNumber := 1
	for _, p := range paragraphs {
		if err := decoders.CheckContext(ctx); err != nil {
			return nil, err
		}
		if p.SoftPageBreak {
			result.Add(domain.NewChunk(textutil.NormaliseNewlines(sb.String(), false), pageNumber, domain.ChunkMeta(true)))
			sb.Reset()
			pageNumber++
		}
		textutil.AppendLineNix(&sb, p.Text)
	}
	result.Add(domain.NewChunk(textutil.NormaliseNewlines(sb.String(), false), pageNumber, domain.ChunkMeta(true)))

	logger.Debug("extracted %d paragraphs into %d pages", len(paragraphs), pageNumber)
	return result, nil
}
