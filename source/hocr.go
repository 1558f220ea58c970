package source

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/textlayer/model"
)

// HOCRSource reads hOCR output as produced by OCR engines. Each ocr_page
// element becomes a page; ocrx_word elements become fragments, falling
// back to whole ocr_line elements when a line carries no word boxes.
type HOCRSource struct {
	pages []hocrPage
}

type hocrPage struct {
	width     float64
	height    float64
	fragments []model.FragmentInput
}

// NewHOCRSource parses an hOCR document
func NewHOCRSource(r io.Reader) (*HOCRSource, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse hocr: %w", err)
	}

	source := &HOCRSource{}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && hasClass(n, "ocr_page") {
			source.pages = append(source.pages, parseHOCRPage(n))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return source, nil
}

// PageCount returns the number of pages in the document
func (s *HOCRSource) PageCount(_ context.Context) (int, error) {
	return len(s.pages), nil
}

// PageFragments returns the positioned word fragments of one page
func (s *HOCRSource) PageFragments(_ context.Context, pageNumber int) ([]model.FragmentInput, error) {
	if pageNumber < 1 || pageNumber > len(s.pages) {
		return nil, fmt.Errorf("page %d out of range", pageNumber)
	}
	return s.pages[pageNumber-1].fragments, nil
}

// PageSize returns a page's dimensions from its bounding box
func (s *HOCRSource) PageSize(pageNumber int) (width, height float64, ok bool) {
	if pageNumber < 1 || pageNumber > len(s.pages) {
		return 0, 0, false
	}
	page := s.pages[pageNumber-1]
	if page.width <= 0 || page.height <= 0 {
		return 0, 0, false
	}
	return page.width, page.height, true
}

// parseHOCRPage collects the fragments of one ocr_page subtree.
func parseHOCRPage(pageNode *html.Node) hocrPage {
	var page hocrPage
	if rect, ok := parseBBox(attr(pageNode, "title")); ok {
		page.width = rect.Width
		page.height = rect.Height
	}

	var collect func(n *html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch {
			case hasClass(n, "ocrx_word"):
				page.appendFragment(n)
				return
			case hasClass(n, "ocr_line") && !hasWordBoxes(n):
				page.appendFragment(n)
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	for c := pageNode.FirstChild; c != nil; c = c.NextSibling {
		collect(c)
	}
	return page
}

func (p *hocrPage) appendFragment(n *html.Node) {
	rect, ok := parseBBox(attr(n, "title"))
	if !ok {
		return
	}
	text := textContent(n)
	if text == "" {
		return
	}
	p.fragments = append(p.fragments, model.FragmentInput{Text: text, Rect: rect})
}

// parseBBox extracts the bounding box from an hOCR title attribute. The
// hOCR convention is corner coordinates: "bbox x0 y0 x1 y1".
func parseBBox(title string) (model.Rect, bool) {
	for _, part := range strings.Split(title, ";") {
		fields := strings.Fields(strings.TrimSpace(part))
		if len(fields) != 5 || fields[0] != "bbox" {
			continue
		}

		coords := make([]float64, 4)
		ok := true
		for i, field := range fields[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				ok = false
				break
			}
			coords[i] = v
		}
		if !ok || coords[2] < coords[0] || coords[3] < coords[1] {
			continue
		}

		return model.Rect{
			X:      coords[0],
			Y:      coords[1],
			Width:  coords[2] - coords[0],
			Height: coords[3] - coords[1],
		}, true
	}
	return model.Rect{}, false
}

// hasWordBoxes reports whether a subtree contains any ocrx_word element.
func hasWordBoxes(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && hasClass(c, "ocrx_word") {
			return true
		}
		if hasWordBoxes(c) {
			return true
		}
	}
	return false
}

// attr returns the value of a named attribute, or "".
func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// hasClass reports whether a node's class attribute contains a class name.
func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// textContent returns a node's text with runs of whitespace collapsed.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}
