package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd_Use(t *testing.T) {
	assert.Equal(t, "version", versionCmd.Use)
}

func TestVersionCmd_PrintsVersionAndDecoders(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	originalVersion := version
	SetVersion("1.2.3")
	defer SetVersion(originalVersion)

	out, err := execute(t, "version")

	require.NoError(t, err)
	assert.Equal(t, "docdecode version 1.2.3\ndecoders: docx, pptx, odt, pdf, html, plaintext\n", out)
}

func TestVersionCmd_WithoutServices(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	SetServices(nil, nil)

	out, err := execute(t, "version")

	require.NoError(t, err)
	assert.Equal(t, "docdecode version dev\n", out)
}

func TestVersionCmd_RejectsArgs(t *testing.T) {
	_, err := execute(t, "version", "extra")

	assert.Error(t, err)
}
