// Package pptx decodes PowerPoint (.pptx) presentations, one chunk per slide.
package pptx

import (
	"context"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/custodia-labs/docdecode/internal/core/domain"
	"github.com/custodia-labs/docdecode/internal/core/ports/driven"
	"github.com/custodia-labs/docdecode/internal/decoders"
	"github.com/custodia-labs/docdecode/internal/decoders/opc"
	"github.com/custodia-labs/docdecode/internal/logger"
	"github.com/custodia-labs/docdecode/internal/textutil"
)

const (
	format          = "pptx"
	defaultMainPart = "ppt/presentation.xml"
	nsDrawing       = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsDrawingStrict = "http://purl.oclc.org/ooxml/drawingml/main"
)

// Ensure Decoder implements the interface.
var _ driven.Decoder = (*Decoder)(nil)

// Decoder handles PowerPoint presentations.
type Decoder struct{}

// New creates a new PowerPoint decoder.
func New() *Decoder {
	return &Decoder{}
}

// Name returns the decoder name.
func (d *Decoder) Name() string {
	return format
}

// SupportedMediaTypes returns the media types this decoder handles.
func (d *Decoder) SupportedMediaTypes() []string {
	return []string{domain.MediaTypeMsPowerPtX}
}

// SupportsMediaType reports whether mediaType is a presentation type.
func (d *Decoder) SupportsMediaType(mediaType string) bool {
	return domain.MatchesMediaType(mediaType, d.SupportedMediaTypes())
}

// Priority returns the selection priority.
func (d *Decoder) Priority() int {
	return 50 // Generic MIME decoder
}

// DecodeFile decodes the presentation at path.
func (d *Decoder) DecodeFile(ctx context.Context, path string) (*domain.FileContent, error) {
	return decoders.DecodeFile(ctx, d, path, domain.MediaTypeMsPowerPtX)
}

// DecodeBytes decodes an in-memory presentation.
func (d *Decoder) DecodeBytes(ctx context.Context, data []byte) (*domain.FileContent, error) {
	return decoders.DecodeBytes(ctx, d, data, domain.MediaTypeMsPowerPtX)
}

// Decode extracts the text of every slide in presentation order. Slide n
// becomes the chunk with page number n.
func (d *Decoder) Decode(ctx context.Context, r io.Reader, mediaType string) (*domain.FileContent, error) {
	if err := decoders.CheckMediaType(d, mediaType); err != nil {
		return nil, err
	}
	if err := decoders.CheckContext(ctx); err != nil {
		return nil, err
	}

	logger.Debug("extracting text from MS PowerPoint file")

	ra, size, err := decoders.ReaderAt(r)
	if err != nil {
		return nil, err
	}
	pkg, err := opc.Open(ra, size)
	if err != nil {
		return nil, err
	}
	defer pkg.Close()

	mainPart, ok, err := pkg.MainPart()
	if err != nil {
		return nil, err
	}
	if !ok {
		mainPart = defaultMainPart
	}
	if !pkg.Has(mainPart) {
		return nil, domain.Malformed(format, "missing main part")
	}

	slides, err := slideParts(pkg, mainPart)
	if err != nil {
		return nil, err
	}

	result := decoders.NewContent(mediaType)
	for i, slide := range slides {
		if err := decoders.CheckContext(ctx); err != nil {
			return nil, err
		}
		text, err := slideText(pkg, slide)
		if err != nil {
			return nil, err
		}
		result.Add(domain.NewChunk(textutil.NormaliseNewlines(text, false), i+1, domain.ChunkMeta(true)))
	}
	if len(result.Sections) == 0 {
		result.Add(domain.NewChunk("", 1, domain.ChunkMeta(true)))
	}

	logger.Debug("extracted %d slides", len(slides))
	return result, nil
}

type presentationXML struct {
	XMLName  xml.Name
	SlideIDs []struct {
		Attrs []xml.Attr `xml:",any,attr"`
	} `xml:"sldIdLst>sldId"`
}

// slideParts returns the slide part names in presentation order.
func slideParts(pkg *opc.Package, mainPart string) ([]string, error) {
	rc, err := pkg.OpenPart(mainPart)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var pres presentationXML
	if err := xml.NewDecoder(rc).Decode(&pres); err != nil {
		var syntaxErr *xml.SyntaxError
		if errors.As(err, &syntaxErr) {
			return nil, domain.Malformed(format, "invalid main part: "+syntaxErr.Error())
		}
		return nil, domain.IOFailure("read main part", err)
	}
	if pres.XMLName.Local != "presentation" {
		return nil, domain.Malformed(format, "missing presentation")
	}

	rels, err := pkg.Relationships(mainPart)
	if err != nil {
		return nil, err
	}
	targets := make(map[string]string, len(rels))
	for _, rel := range rels {
		if !rel.IsExternal() {
			targets[rel.ID] = opc.ResolveTarget(mainPart, rel.Target)
		}
	}

	parts := make([]string, 0, len(pres.SlideIDs))
	for _, s := range pres.SlideIDs {
		rid := relationshipID(s.Attrs)
		target, ok := targets[rid]
		if !ok || !pkg.Has(target) {
			return nil, domain.Malformed(format, "missing slide part for "+rid)
		}
		parts = append(parts, target)
	}
	return parts, nil
}

// relationshipID returns the namespaced r:id attribute. The bare id
// attribute of p:sldId is a numeric slide id, not a relationship.
func relationshipID(attrs []xml.Attr) string {
	for _, a := range attrs {
		if a.Name.Local == "id" && a.Name.Space != "" {
			return a.Value
		}
	}
	return ""
}

func isDrawing(name xml.Name, local string) bool {
	return name.Local == local && (name.Space == nsDrawing || name.Space == nsDrawingStrict)
}

// slideText returns the text of every a:p on the slide, one line each.
func slideText(pkg *opc.Package, part string) (string, error) {
	rc, err := pkg.OpenPart(part)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	dec := xml.NewDecoder(rc)
	var (
		sb     strings.Builder
		inPara bool
		inText bool
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var syntaxErr *xml.SyntaxError
			if errors.As(err, &syntaxErr) {
				return "", domain.Malformed(format, "invalid slide "+part+": "+syntaxErr.Error())
			}
			return "", domain.IOFailure("read slide "+part, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case isDrawing(t.Name, "p"):
				inPara = true
			case isDrawing(t.Name, "t") && inPara:
				inText = true
			case isDrawing(t.Name, "br") && inPara:
				sb.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		case xml.EndElement:
			switch {
			case isDrawing(t.Name, "t"):
				inText = false
			case isDrawing(t.Name, "p"):
				inPara = false
				sb.WriteByte('\n')
			}
		}
	}
	return sb.String(), nil
}
