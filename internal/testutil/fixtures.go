// Package testutil builds in-memory document fixtures for tests.
package testutil

import (
	"archive/zip"
	"bytes"
	"fmt"
	"html"
	"strings"
)

// File is one entry of a zip fixture.
type File struct {
	Name string
	Body string
}

// Zip builds a zip archive with the files in order.
func Zip(files ...File) []byte {
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)
	for _, f := range files {
		fw, err := w.Create(f.Name)
		if err != nil {
			panic(fmt.Sprintf("zip fixture %s: %v", f.Name, err))
		}
		if _, err := fw.Write([]byte(f.Body)); err != nil {
			panic(fmt.Sprintf("zip fixture %s: %v", f.Name, err))
		}
	}
	if err := w.Close(); err != nil {
		panic(fmt.Sprintf("zip fixture: %v", err))
	}
	return buf.Bytes()
}

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="xml" ContentType="application/xml"/>
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
</Types>`

// RootRels returns a package relationships part targeting mainPart.
func RootRels(mainPart string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="` + mainPart + `"/>
</Relationships>`
}

// DocxPackage builds a .docx with the given word/document.xml.
func DocxPackage(documentXML string) []byte {
	return Zip(
		File{Name: "[Content_Types].xml", Body: contentTypesXML},
		File{Name: "_rels/.rels", Body: RootRels("word/document.xml")},
		File{Name: "word/document.xml", Body: documentXML},
	)
}

// DocumentXML wraps body content in a w:document/w:body.
func DocumentXML(body string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>` + body + `</w:body>
</w:document>`
}

// Para returns a paragraph with a single run of text.
func Para(text string) string {
	return `<w:p><w:r><w:t xml:space="preserve">` + html.EscapeString(text) + `</w:t></w:r></w:p>`
}

// BreakPara returns a paragraph whose first run carries a
// w:lastRenderedPageBreak before its text.
func BreakPara(text string) string {
	return `<w:p><w:r><w:lastRenderedPageBreak/><w:t xml:space="preserve">` + html.EscapeString(text) + `</w:t></w:r></w:p>`
}

// Docx builds a .docx whose body holds the given paragraph elements.
func Docx(paragraphs ...string) []byte {
	return DocxPackage(DocumentXML(strings.Join(paragraphs, "\n")))
}

// LargeDocx builds a .docx with n paragraphs, every pageEvery-th one
// starting a new rendered page. pageEvery <= 0 disables page breaks.
func LargeDocx(n, pageEvery int) []byte {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		text := fmt.Sprintf("Paragraph %d of the synthetic document.", i+1)
		if pageEvery > 0 && i > 0 && i%pageEvery == 0 {
			sb.WriteString(BreakPara(text))
		} else {
			sb.WriteString(Para(text))
		}
	}
	return DocxPackage(DocumentXML(sb.String()))
}

// PptxPackage builds a .pptx with one slide per entry. Each slide entry is
// a list of paragraph texts.
func PptxPackage(slides ...[]string) []byte {
	var ids, rels strings.Builder
	files := []File{
		{Name: "[Content_Types].xml", Body: contentTypesXML},
		{Name: "_rels/.rels", Body: RootRels("ppt/presentation.xml")},
	}
	for i, paras := range slides {
		n := i + 1
		fmt.Fprintf(&ids, `<p:sldId id="%d" r:id="rId%d"/>`, 255+n, n)
		fmt.Fprintf(&rels, `<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide%d.xml"/>`, n, n)
		files = append(files, File{Name: fmt.Sprintf("ppt/slides/slide%d.xml", n), Body: SlideXML(paras...)})
	}
	files = append(files,
		File{Name: "ppt/presentation.xml", Body: `<?xml version="1.0" encoding="UTF-8"?>
<p:presentation xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
<p:sldIdLst>` + ids.String() + `</p:sldIdLst>
</p:presentation>`},
		File{Name: "ppt/_rels/presentation.xml.rels", Body: `<?xml version="1.0" encoding="UTF-8"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` + rels.String() + `</Relationships>`},
	)
	return Zip(files...)
}

// SlideXML returns a slide with one text body holding the paragraphs.
func SlideXML(paras ...string) string {
	var sb strings.Builder
	for _, p := range paras {
		sb.WriteString(`<a:p><a:r><a:t>` + html.EscapeString(p) + `</a:t></a:r></a:p>`)
	}
	return `<?xml version="1.0" encoding="UTF-8"?>
<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
<p:cSld><p:spTree><p:sp><p:txBody>` + sb.String() + `</p:txBody></p:sp></p:spTree></p:cSld>
</p:sld>`
}

// ODTPackage builds an .odt with the given content.xml.
func ODTPackage(contentXML string) []byte {
	return Zip(
		File{Name: "mimetype", Body: "application/vnd.oasis.opendocument.text"},
		File{Name: "content.xml", Body: contentXML},
	)
}

// ODTContent wraps text content in office:document-content/office:body/office:text.
func ODTContent(text string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<office:document-content xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0" xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0">
<office:body><office:text>` + text + `</office:text></office:body>
</office:document-content>`
}
