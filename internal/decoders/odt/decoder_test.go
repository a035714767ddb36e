package odt

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdecode/internal/core/domain"
	"github.com/custodia-labs/docdecode/internal/testutil"
)

const odtType = domain.MediaTypeODT

func decode(t *testing.T, text string) *domain.FileContent {
	t.Helper()
	result, err := New().Decode(context.Background(), bytes.NewReader(testutil.ODTPackage(testutil.ODTContent(text))), odtType)
	require.NoError(t, err)
	return result
}

func TestDecoderIdentity(t *testing.T) {
	d := New()

	assert.Equal(t, "odt", d.Name())
	assert.Equal(t, 50, d.Priority())
	assert.True(t, d.SupportsMediaType(odtType))
	assert.False(t, d.SupportsMediaType(domain.MediaTypeMsWordX))
}

func TestDecode_SinglePage(t *testing.T) {
	result := decode(t, `<text:h>Title</text:h><text:p>First</text:p><text:p>Second</text:p>`)

	require.Len(t, result.Sections, 1)
	assert.Equal(t, "Title\nFirst\nSecond\n", result.Sections[0].Text)
	assert.Equal(t, 1, result.Sections[0].PageNumber)
	assert.True(t, result.Sections[0].SentencesAreComplete())
}

func TestDecode_SoftPageBreakBetweenParagraphs(t *testing.T) {
	result := decode(t, `<text:p>Intro</text:p><text:soft-page-break/><text:p>Page2 text</text:p>`)

	require.Len(t, result.Sections, 2)
	assert.Equal(t, "Intro\n", result.Sections[0].Text)
	assert.Equal(t, 1, result.Sections[0].PageNumber)
	assert.Equal(t, "Page2 text\n", result.Sections[1].Text)
	assert.Equal(t, 2, result.Sections[1].PageNumber)
}

func TestDecode_SoftPageBreakInsideParagraph(t *testing.T) {
	result := decode(t, `<text:p>One</text:p><text:p><text:soft-page-break/>Two</text:p>`)

	require.Len(t, result.Sections, 2)
	assert.Equal(t, "One\n", result.Sections[0].Text)
	assert.Equal(t, "Two\n", result.Sections[1].Text)
}

func TestDecode_BreakBeforeFirstParagraph(t *testing.T) {
	result := decode(t, `<text:soft-page-break/><text:p>Only</text:p>`)

	require.Len(t, result.Sections, 2)
	assert.Equal(t, "", result.Sections[0].Text)
	assert.Equal(t, "Only\n", result.Sections[1].Text)
}

func TestDecode_Empty(t *testing.T) {
	result := decode(t, ``)

	require.Len(t, result.Sections, 1)
	assert.Equal(t, "", result.Sections[0].Text)
	assert.Equal(t, 1, result.Sections[0].PageNumber)
}

func TestDecode_SpacesTabsAndLineBreaks(t *testing.T) {
	result := decode(t, `<text:p>a<text:s text:c="3"/>b<text:tab/>c<text:line-break/>d<text:s/>e</text:p>`)

	assert.Equal(t, "a   b\tc\nd e\n", result.Text())
}

func TestDecode_SpansAndLists(t *testing.T) {
	result := decode(t, `<text:list><text:list-item><text:p>item <text:span>one</text:span></text:p></text:list-item></text:list>`)

	assert.Equal(t, "item one\n", result.Text())
}

func TestDecode_SourceWhitespaceCollapses(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{
			name:     "pretty printed paragraph",
			body:     "<text:p>\n      Hello\n      <text:span>world</text:span>\n    </text:p>",
			expected: "Hello world\n",
		},
		{
			name:     "carriage returns are white space",
			body:     "<text:p>a&#13;&#10;b&#13;c</text:p>",
			expected: "a b c\n",
		},
		{
			name:     "runs of spaces and tabs",
			body:     "<text:p>a  \t  b</text:p>",
			expected: "a b\n",
		},
		{
			name:     "collapsed space before text:s is kept",
			body:     `<text:p>a <text:s text:c="2"/>b</text:p>`,
			expected: "a   b\n",
		},
		{
			name:     "indentation after line break is dropped",
			body:     "<text:p>one<text:line-break/>\n   two</text:p>",
			expected: "one\ntwo\n",
		},
		{
			name:     "white space only paragraph",
			body:     "<text:p>   \n  </text:p><text:p>x</text:p>",
			expected: "\nx\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, decode(t, tt.body).Text())
		})
	}
}

func TestDecode_MissingContentPart(t *testing.T) {
	data := testutil.Zip(testutil.File{Name: "mimetype", Body: odtType})

	_, err := New().Decode(context.Background(), bytes.NewReader(data), odtType)

	var malformed *domain.MalformedDocumentError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "missing content part", malformed.Reason)
}

func TestDecode_MissingBody(t *testing.T) {
	data := testutil.ODTPackage(`<office:document-content xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0"/>`)

	_, err := New().Decode(context.Background(), bytes.NewReader(data), odtType)

	var malformed *domain.MalformedDocumentError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "missing body", malformed.Reason)
}

func TestDecode_SpreadsheetBodyIsNotText(t *testing.T) {
	data := testutil.ODTPackage(`<office:document-content xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0"><office:body><office:spreadsheet/></office:body></office:document-content>`)

	_, err := New().Decode(context.Background(), bytes.NewReader(data), odtType)

	assert.ErrorIs(t, err, domain.ErrMalformedDocument)
}

func TestDecode_InvalidXML(t *testing.T) {
	data := testutil.ODTPackage(`<office:document-content xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0"><office:body>`)

	_, err := New().Decode(context.Background(), bytes.NewReader(data), odtType)

	assert.ErrorIs(t, err, domain.ErrMalformedDocument)
}

func TestDecode_InvalidZip(t *testing.T) {
	_, err := New().Decode(context.Background(), bytes.NewReader([]byte("plain")), odtType)

	assert.ErrorIs(t, err, domain.ErrIO)
}

func TestDecode_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := New().Decode(ctx, bytes.NewReader(testutil.ODTPackage(testutil.ODTContent(""))), odtType)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrCancelled)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDecode_UnsupportedMediaType(t *testing.T) {
	_, err := New().Decode(context.Background(), bytes.NewReader(nil), "text/plain")

	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestDecodeBytes(t *testing.T) {
	result, err := New().DecodeBytes(context.Background(), testutil.ODTPackage(testutil.ODTContent(`<text:p>x</text:p>`)))

	require.NoError(t, err)
	assert.Equal(t, "x\n", result.Text())
	assert.Equal(t, odtType, result.SourceMediaType)
}
