package extract

import (
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractPDF joins the plain text of every page with '\n', skipping pages
// that yield no text.
func extractPDF(path string) (text string, err error) {
	defer func() {
		// The pdf package panics on some malformed content streams.
		if rec := recover(); rec != nil {
			text = ""
			err = panicError{rec}
		}
	}()

	f, reader, err := pdf.Open(path)
	if f != nil {
		defer f.Close()
	}
	if err != nil {
		return "", err
	}

	pages := make([]string, 0, reader.NumPage())
	fonts := make(map[string]*pdf.Font)
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		for _, name := range page.Fonts() {
			if _, ok := fonts[name]; !ok {
				font := page.Font(name)
				fonts[name] = &font
			}
		}
		pageText, err := page.GetPlainText(fonts)
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(pageText) == "" {
			continue
		}
		pages = append(pages, pageText)
	}
	return strings.Join(pages, "\n"), nil
}

type panicError struct {
	v any
}

func (p panicError) Error() string {
	if err, ok := p.v.(error); ok {
		return "pdf: " + err.Error()
	}
	if s, ok := p.v.(string); ok {
		return "pdf: " + s
	}
	return "pdf: malformed document"
}
