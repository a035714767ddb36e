package domain

import "strings"

// Well-known media types. Decoders accept media types through a predicate,
// these constants only save callers from retyping long identifiers.
const (
	MediaTypePlainText   = "text/plain"
	MediaTypeMarkdown    = "text/markdown"
	MediaTypeHTML        = "text/html"
	MediaTypeXHTML       = "application/xhtml+xml"
	MediaTypePDF         = "application/pdf"
	MediaTypeOctetStream = "application/octet-stream"
	MediaTypeMsWordX     = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MediaTypeMsPowerPtX  = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	MediaTypeODT         = "application/vnd.oasis.opendocument.text"
)

// MatchesMediaType reports whether mediaType belongs to one of the given
// families. Matching is a case-insensitive prefix test, so parameters such
// as "; charset=utf-8" do not prevent a match.
func MatchesMediaType(mediaType string, families []string) bool {
	mediaType = strings.TrimSpace(mediaType)
	if mediaType == "" {
		return false
	}
	for _, family := range families {
		if len(mediaType) < len(family) {
			continue
		}
		if strings.EqualFold(mediaType[:len(family)], family) {
			return true
		}
	}
	return false
}

// IsUndeclaredMediaType reports whether a declared media type carries no
// useful information and should be sniffed instead.
func IsUndeclaredMediaType(mediaType string) bool {
	mediaType = strings.TrimSpace(mediaType)
	return mediaType == "" || MatchesMediaType(mediaType, []string{MediaTypeOctetStream})
}
