package domain

// MetaSentencesAreComplete is the chunk metadata key telling downstream
// sentence splitters whether the chunk ends on a natural paragraph or page
// boundary, so sentences need not be stitched across chunks.
const MetaSentencesAreComplete = "sentences_are_complete"

// FileContent is the decode result for one input document.
// It is created fresh per decode call and not mutated once returned.
type FileContent struct {
	// ID identifies this decode result. A new one is issued per call.
	ID string `json:"id"`

	// MediaType is the output type. Always plain text.
	MediaType string `json:"media_type"`

	// SourceMediaType is the media type the decoder was selected for.
	SourceMediaType string `json:"source_media_type,omitempty"`

	// Sections holds the chunks in reading order.
	Sections []Chunk `json:"sections"`
}

// NewFileContent creates an empty plain-text result.
func NewFileContent(id, sourceMediaType string) *FileContent {
	return &FileContent{
		ID:              id,
		MediaType:       MediaTypePlainText,
		SourceMediaType: sourceMediaType,
	}
}

// Add appends a chunk to the result.
func (f *FileContent) Add(c Chunk) {
	f.Sections = append(f.Sections, c)
}

// Text returns the text of all sections concatenated in order.
func (f *FileContent) Text() string {
	n := 0
	for i := range f.Sections {
		n += len(f.Sections[i].Text)
	}
	buf := make([]byte, 0, n)
	for i := range f.Sections {
		buf = append(buf, f.Sections[i].Text...)
	}
	return string(buf)
}

// PageCount returns the page number of the last section, or 0 when empty.
func (f *FileContent) PageCount() int {
	if len(f.Sections) == 0 {
		return 0
	}
	return f.Sections[len(f.Sections)-1].PageNumber
}

// Chunk is a contiguous unit of extracted text.
type Chunk struct {
	// Text is the normalised content. May be empty.
	Text string `json:"text"`

	// PageNumber is the 1-based page ordinal assigned by the decoder.
	PageNumber int `json:"page_number"`

	// Metadata carries at least MetaSentencesAreComplete.
	Metadata map[string]any `json:"metadata"`
}

// NewChunk creates a chunk with the standard metadata.
func NewChunk(text string, pageNumber int, meta map[string]any) Chunk {
	return Chunk{
		Text:       text,
		PageNumber: pageNumber,
		Metadata:   meta,
	}
}

// ChunkMeta builds the metadata map for a chunk.
func ChunkMeta(sentencesAreComplete bool) map[string]any {
	return map[string]any{
		MetaSentencesAreComplete: sentencesAreComplete,
	}
}

// SentencesAreComplete reports whether the chunk boundary coincides with
// a natural paragraph or page end.
func (c Chunk) SentencesAreComplete() bool {
	v, ok := c.Metadata[MetaSentencesAreComplete].(bool)
	return ok && v
}

// DecoderInfo describes a registered decoder.
type DecoderInfo struct {
	Name       string   `json:"name"`
	MediaTypes []string `json:"media_types"`
	Priority   int      `json:"priority"`
}
