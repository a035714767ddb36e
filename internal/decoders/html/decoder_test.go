package html

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdecode/internal/core/domain"
)

func decodeString(t *testing.T, src string) string {
	t.Helper()
	result, err := New().Decode(context.Background(), strings.NewReader(src), domain.MediaTypeHTML)
	require.NoError(t, err)
	require.Len(t, result.Sections, 1)
	assert.Equal(t, 1, result.Sections[0].PageNumber)
	return result.Sections[0].Text
}

func TestDecoderIdentity(t *testing.T) {
	d := New()

	assert.Equal(t, "html", d.Name())
	assert.True(t, d.SupportsMediaType("text/html; charset=utf-8"))
	assert.True(t, d.SupportsMediaType("application/xhtml+xml"))
	assert.False(t, d.SupportsMediaType("text/plain"))
}

func TestDecode_Blocks(t *testing.T) {
	got := decodeString(t, `<html><head><title>T</title></head><body>
<h1>Heading</h1>
<p>First   paragraph
 wraps.</p>
<p>Second <b>bold</b> text</p>
</body></html>`)

	assert.Equal(t, "Heading\nFirst paragraph wraps.\nSecond bold text\n", got)
}

func TestDecode_SkipsInvisible(t *testing.T) {
	got := decodeString(t, `<body><script>var x = 1;</script><style>p{}</style>
<noscript>enable js</noscript><p>Shown</p><p hidden>Hidden</p>
<div style="display: none">Gone</div></body>`)

	assert.Equal(t, "Shown\n", got)
}

func TestDecode_ListsAndTables(t *testing.T) {
	got := decodeString(t, `<ul><li>one</li><li>two</li></ul>
<table><tr><td>a</td><td>b</td></tr><tr><td>c</td><td>d</td></tr></table>`)

	assert.Equal(t, "one\ntwo\na b\nc d\n", got)
}

func TestDecode_LineBreaks(t *testing.T) {
	got := decodeString(t, `<p>line one<br>line two</p>`)

	assert.Equal(t, "line one\nline two\n", got)
}

func TestDecode_Preformatted(t *testing.T) {
	got := decodeString(t, "<pre>a  b\n  c</pre>")

	assert.Equal(t, "a  b\n  c\n", got)
}

func TestDecode_EntitiesDecoded(t *testing.T) {
	got := decodeString(t, `<p>Fish &amp; chips &lt;3</p>`)

	assert.Equal(t, "Fish & chips <3\n", got)
}

func TestDecode_Empty(t *testing.T) {
	assert.Equal(t, "", decodeString(t, ""))
}

func TestDecode_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := New().Decode(ctx, strings.NewReader("<p>x</p>"), domain.MediaTypeHTML)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrCancelled)
}

func TestDecode_UnsupportedMediaType(t *testing.T) {
	_, err := New().Decode(context.Background(), strings.NewReader(""), domain.MediaTypePDF)

	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}
