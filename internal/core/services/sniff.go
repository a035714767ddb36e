package services

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/custodia-labs/docdecode/internal/core/domain"
)

// extensionTypes refines content detection for formats whose bytes alone
// are ambiguous: OOXML and ODF packages are zip files and markdown is
// plain text.
var extensionTypes = map[string]string{
	".docx":     domain.MediaTypeMsWordX,
	".pptx":     domain.MediaTypeMsPowerPtX,
	".odt":      domain.MediaTypeODT,
	".pdf":      domain.MediaTypePDF,
	".html":     domain.MediaTypeHTML,
	".htm":      domain.MediaTypeHTML,
	".xhtml":    domain.MediaTypeXHTML,
	".md":       domain.MediaTypeMarkdown,
	".markdown": domain.MediaTypeMarkdown,
	".txt":      domain.MediaTypePlainText,
}

// genericTypes are detection results that an extension may override.
var genericTypes = []string{
	"application/zip",
	"application/octet-stream",
	"text/plain",
}

// sniff returns the media type of data, using name's extension when the
// content only reveals a generic container.
func sniff(data []byte, name string) string {
	detected := mimetype.Detect(data)
	return refine(detected, name)
}

func refine(detected *mimetype.MIME, name string) string {
	if name != "" {
		if byExt, ok := extensionTypes[strings.ToLower(filepath.Ext(name))]; ok {
			for _, generic := range genericTypes {
				if detected.Is(generic) {
					return byExt
				}
			}
		}
	}
	return detected.String()
}
