package layout

import (
	"strings"
	"unicode/utf8"

	"github.com/tsawler/textlayer/model"
)

// BuildCorpus assembles a page's flat text corpus from the fragments a
// content source delivered, in reading order. Fragment texts are joined with
// single-space separators; each fragment's character offset range into the
// assembled text is recorded as it lands. Empty fragments keep their place
// in the fragment list with an empty offset range but contribute no
// separator, so fragment indexes stay aligned with the source's output.
func BuildCorpus(pageNumber int, inputs []model.FragmentInput) *model.PageTextCorpus {
	var sb strings.Builder
	fragments := make([]model.TextFragment, 0, len(inputs))

	offset := 0 // character offset, not bytes
	wroteText := false

	for _, in := range inputs {
		if in.Text == "" {
			fragments = append(fragments, model.TextFragment{
				Start: offset,
				End:   offset,
				Rect:  in.Rect,
			})
			continue
		}

		if wroteText {
			sb.WriteByte(' ')
			offset++
		}

		length := utf8.RuneCountInString(in.Text)
		fragments = append(fragments, model.TextFragment{
			Text:  in.Text,
			Start: offset,
			End:   offset + length,
			Rect:  in.Rect,
		})
		sb.WriteString(in.Text)
		offset += length
		wroteText = true
	}

	return &model.PageTextCorpus{
		PageNumber: pageNumber,
		FullText:   sb.String(),
		Fragments:  fragments,
	}
}
