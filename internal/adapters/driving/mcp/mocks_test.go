package mcp

import (
	"context"
	"io"

	"github.com/custodia-labs/docdecode/internal/core/domain"
)

// mockDecodeService is a mock implementation of driving.DecodeService.
type mockDecodeService struct {
	content  *domain.FileContent
	decoders []domain.DecoderInfo
	err      error

	gotPath      string
	gotData      []byte
	gotMediaType string
}

func (m *mockDecodeService) DecodeFile(_ context.Context, path, mediaType string) (*domain.FileContent, error) {
	m.gotPath = path
	m.gotMediaType = mediaType
	return m.content, m.err
}

func (m *mockDecodeService) DecodeBytes(_ context.Context, data []byte, mediaType string) (*domain.FileContent, error) {
	m.gotData = data
	m.gotMediaType = mediaType
	return m.content, m.err
}

func (m *mockDecodeService) DecodeReader(_ context.Context, r io.Reader, mediaType string) (*domain.FileContent, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return m.DecodeBytes(context.Background(), data, mediaType)
}

func (m *mockDecodeService) Decoders() []domain.DecoderInfo {
	return m.decoders
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	values map[string]any
	keys   []string
	err    error
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	s := domain.DefaultAppSettings()
	return &s, m.err
}

func (m *mockSettingsService) Save(_ *domain.AppSettings) error {
	return m.err
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (m *mockSettingsService) Keys() []string {
	return m.keys
}

func (m *mockSettingsService) GetValue(key string) (any, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.values[key], nil
}

func (m *mockSettingsService) SetValue(key string, value any) error {
	if m.err != nil {
		return m.err
	}
	m.values[key] = value
	return nil
}

func (m *mockSettingsService) Path() string {
	return "/tmp/config.toml"
}

// twoPageContent returns a decode result with two pages.
func twoPageContent() *domain.FileContent {
	content := domain.NewFileContent("result-1", domain.MediaTypeMsWordX)
	content.Add(domain.NewChunk("first page\n", 1, domain.ChunkMeta(true)))
	content.Add(domain.NewChunk("second page\n", 2, domain.ChunkMeta(true)))
	return content
}
