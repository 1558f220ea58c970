package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/tsawler/textlayer/model"
)

// jsonDocument mirrors the structured-text JSON layout: pages holding
// blocks holding positioned lines.
type jsonDocument struct {
	Pages []jsonPage `json:"pages"`
}

type jsonPage struct {
	Number int         `json:"number,omitempty"`
	Width  float64     `json:"width,omitempty"`
	Height float64     `json:"height,omitempty"`
	Blocks []jsonBlock `json:"blocks"`
}

type jsonBlock struct {
	Lines []jsonLine `json:"lines"`
}

type jsonLine struct {
	BBox jsonBBox `json:"bbox"`
	Text string   `json:"text"`
}

type jsonBBox struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// JSONSource reads documents in the structured-text JSON format. The whole
// document is parsed up front; page access afterwards is cheap and safe
// for concurrent use.
type JSONSource struct {
	pages map[int]jsonPage
	count int
}

// NewJSONSource parses a structured-text JSON document
func NewJSONSource(r io.Reader) (*JSONSource, error) {
	var doc jsonDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse structured text: %w", err)
	}

	pages := make(map[int]jsonPage, len(doc.Pages))
	for i, page := range doc.Pages {
		number := page.Number
		if number <= 0 {
			number = i + 1
		}
		pages[number] = page
	}
	return &JSONSource{pages: pages, count: len(doc.Pages)}, nil
}

// PageCount returns the number of pages in the document
func (s *JSONSource) PageCount(_ context.Context) (int, error) {
	return s.count, nil
}

// PageFragments returns the positioned line fragments of one page
func (s *JSONSource) PageFragments(_ context.Context, pageNumber int) ([]model.FragmentInput, error) {
	page, ok := s.pages[pageNumber]
	if !ok {
		return nil, fmt.Errorf("page %d out of range", pageNumber)
	}

	var fragments []model.FragmentInput
	for _, block := range page.Blocks {
		for _, line := range block.Lines {
			fragments = append(fragments, model.FragmentInput{
				Text: line.Text,
				Rect: model.Rect{
					X:      line.BBox.X,
					Y:      line.BBox.Y,
					Width:  line.BBox.W,
					Height: line.BBox.H,
				},
			})
		}
	}
	return fragments, nil
}

// PageSize returns a page's dimensions when the document declares them
func (s *JSONSource) PageSize(pageNumber int) (width, height float64, ok bool) {
	page, found := s.pages[pageNumber]
	if !found || page.Width <= 0 || page.Height <= 0 {
		return 0, 0, false
	}
	return page.Width, page.Height, true
}
