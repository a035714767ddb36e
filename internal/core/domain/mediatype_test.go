package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchesMediaType(t *testing.T) {
	families := []string{MediaTypeMsWordX}

	tests := []struct {
		name      string
		mediaType string
		expected  bool
	}{
		{name: "exact", mediaType: MediaTypeMsWordX, expected: true},
		{name: "upper case", mediaType: "APPLICATION/VND.OPENXMLFORMATS-OFFICEDOCUMENT.WORDPROCESSINGML.DOCUMENT", expected: true},
		{name: "with parameters", mediaType: MediaTypeMsWordX + "; charset=binary", expected: true},
		{name: "surrounding spaces", mediaType: "  " + MediaTypeMsWordX + " ", expected: true},
		{name: "other type", mediaType: MediaTypePDF, expected: false},
		{name: "shorter than family", mediaType: "application/vnd", expected: false},
		{name: "empty", mediaType: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MatchesMediaType(tt.mediaType, families))
		})
	}
}

func TestMatchesMediaType_NoFamilies(t *testing.T) {
	assert.False(t, MatchesMediaType(MediaTypePlainText, nil))
}

func TestIsUndeclaredMediaType(t *testing.T) {
	assert.True(t, IsUndeclaredMediaType(""))
	assert.True(t, IsUndeclaredMediaType("   "))
	assert.True(t, IsUndeclaredMediaType("application/octet-stream"))
	assert.False(t, IsUndeclaredMediaType(MediaTypePDF))
}
