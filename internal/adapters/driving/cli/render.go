package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/custodia-labs/docdecode/internal/core/domain"
)

// Colour palette for terminal output.
var (
	colourPrimary = lipgloss.Color("#7C3AED") // Purple
	colourMuted   = lipgloss.Color("#6C7086") // Medium gray
	colourError   = lipgloss.Color("#F38BA8") // Red
)

// outputStyles renders headers around decoded text. Document text itself
// is never styled so it reaches the terminal byte for byte.
type outputStyles struct {
	enabled bool

	title  lipgloss.Style
	page   lipgloss.Style
	muted  lipgloss.Style
	failed lipgloss.Style
}

func newOutputStyles(enabled bool) outputStyles {
	return outputStyles{
		enabled: enabled,
		title:   lipgloss.NewStyle().Bold(true).Foreground(colourPrimary),
		page:    lipgloss.NewStyle().Foreground(colourMuted).Underline(true),
		muted:   lipgloss.NewStyle().Foreground(colourMuted),
		failed:  lipgloss.NewStyle().Bold(true).Foreground(colourError),
	}
}

// stylesFor enables styling only when w is a terminal.
func stylesFor(w io.Writer) outputStyles {
	return newOutputStyles(isTerminal(w))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (s outputStyles) render(style lipgloss.Style, text string) string {
	if !s.enabled {
		return text
	}
	return style.Render(text)
}

// decodeOutput is the JSON shape of one decoded file.
type decodeOutput struct {
	Path    string              `json:"path"`
	Content *domain.FileContent `json:"content"`
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// writeContent prints a file header followed by each page.
func writeContent(w io.Writer, s outputStyles, path string, content *domain.FileContent) {
	header := fmt.Sprintf("==> %s", path)
	fmt.Fprintf(w, "%s %s\n", s.render(s.title, header),
		s.render(s.muted, fmt.Sprintf("(%s, %d pages)", content.SourceMediaType, content.PageCount())))

	for _, chunk := range content.Sections {
		fmt.Fprintln(w, s.render(s.page, fmt.Sprintf("--- page %d ---", chunk.PageNumber)))
		fmt.Fprint(w, chunk.Text)
		if chunk.Text != "" && chunk.Text[len(chunk.Text)-1] != '\n' {
			fmt.Fprintln(w)
		}
	}
}

func writeFailure(w io.Writer, s outputStyles, path string, err error) {
	fmt.Fprintf(w, "%s %v\n", s.render(s.failed, "failed "+path+":"), err)
}

// selectPage narrows content to one 1-based page. page <= 0 keeps all.
func selectPage(content *domain.FileContent, page int) (*domain.FileContent, error) {
	if page <= 0 {
		return content, nil
	}
	for _, chunk := range content.Sections {
		if chunk.PageNumber == page {
			out := *content
			out.Sections = []domain.Chunk{chunk}
			return &out, nil
		}
	}
	return nil, fmt.Errorf("%w: page %d out of range 1-%d", domain.ErrInvalidInput, page, content.PageCount())
}
