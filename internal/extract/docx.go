package extract

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

// extractDOCX returns the body paragraphs of a .docx file joined with '\n'.
// Empty paragraphs are kept so blank lines survive.
func extractDOCX(path string) (string, error) {
	r, err := docx.ReadDocxFile(path)
	if err != nil {
		return "", err
	}
	defer r.Close()

	paragraphs, err := bodyParagraphs(r.Editable().GetContent())
	if err != nil {
		return "", err
	}
	return strings.Join(paragraphs, "\n"), nil
}

// bodyParagraphs walks word/document.xml and collects the text of each
// paragraph that is a direct child of w:body. Only run-level text (w:t,
// w:tab, w:br, w:cr) is kept; table cells and text boxes are skipped.
func bodyParagraphs(documentXML string) ([]string, error) {
	if strings.TrimSpace(documentXML) == "" {
		return nil, errors.New("document.xml is empty")
	}

	decoder := xml.NewDecoder(strings.NewReader(documentXML))
	var (
		stack      []string
		paragraphs []string
		current    strings.Builder
		inPara     bool
		paraDepth  int
		sawBody    bool
	)

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := t.Name.Local
			parent := ""
			if len(stack) > 0 {
				parent = stack[len(stack)-1]
			}
			stack = append(stack, name)
			if name == "body" {
				sawBody = true
			}
			if name == "p" && parent == "body" {
				inPara = true
				paraDepth = len(stack)
				current.Reset()
				continue
			}
			if inPara && inRun(stack, paraDepth) {
				switch name {
				case "tab":
					current.WriteString("\t")
				case "br", "cr":
					current.WriteString("\n")
				}
			}
		case xml.EndElement:
			if inPara && len(stack) == paraDepth && t.Name.Local == "p" {
				paragraphs = append(paragraphs, current.String())
				inPara = false
			}
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if inPara && len(stack) > 0 && stack[len(stack)-1] == "t" && inRun(stack[:len(stack)-1], paraDepth) {
				current.Write(t)
			}
		}
	}

	if !sawBody {
		return nil, errors.New("document.xml has no body")
	}
	return paragraphs, nil
}

// inRun reports whether the innermost element of stack is a run child (w:r
// directly under the paragraph, optionally wrapped in w:hyperlink).
func inRun(stack []string, paraDepth int) bool {
	rel := stack[paraDepth:]
	switch {
	case len(rel) >= 1 && rel[0] == "r":
		return len(rel) <= 2
	case len(rel) >= 2 && rel[0] == "hyperlink" && rel[1] == "r":
		return len(rel) <= 3
	default:
		return false
	}
}
