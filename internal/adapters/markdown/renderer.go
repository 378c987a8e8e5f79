package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"eventhub/internal/domain"
)

type renderer struct {
	md goldmark.Markdown
}

// NewRenderer returns a DescriptionRenderer that converts markdown to HTML.
// Raw HTML in the input is omitted (goldmark's unsafe mode stays off) and single newlines become <br>.
func NewRenderer() domain.DescriptionRenderer {
	return &renderer{
		md: goldmark.New(
			goldmark.WithRendererOptions(
				goldmarkHTML.WithHardWraps(),
			),
		),
	}
}

func (r *renderer) Render(text string) (string, error) {
	if text == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}
