package main

import (
	"fmt"
	"image/png"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsawler/textlayer/model"
	"github.com/tsawler/textlayer/render"
	"github.com/tsawler/textlayer/source"
)

var (
	renderPage    int
	renderQuery   string
	renderOut     string
	renderScale   float64
	renderNoLabel bool
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render a page's fragment layout to PNG",
	Long: `Draws one page's fragment rectangles, with optional search match
highlights, into a PNG image. Useful for checking extraction geometry
against the original document.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().IntVarP(&renderPage, "page", "p", 1, "page to render")
	renderCmd.Flags().StringVarP(&renderQuery, "query", "q", "", "highlight matches for this query")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "page.png", "output PNG path")
	renderCmd.Flags().Float64Var(&renderScale, "scale", 2, "pixels per layout unit")
	renderCmd.Flags().BoolVar(&renderNoLabel, "no-labels", false, "skip fragment text labels")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	s, err := openDocument(args[0])
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Load(cmd.Context()); err != nil {
		return err
	}

	page := s.Page(renderPage)
	if page == nil {
		return fmt.Errorf("page %d not found (document has %d)", renderPage, s.PageCount())
	}

	var highlights []model.Rect
	if renderQuery != "" {
		for _, m := range s.Query(renderQuery).OnPage(renderPage).FindAll() {
			highlights = append(highlights, m.Rects...)
		}
	}

	var width, height float64
	if sizer, ok := s.Source().(source.PageSizer); ok {
		width, height, _ = sizer.PageSize(renderPage)
	}

	config := render.DefaultDrawConfig()
	config.Scale = renderScale
	config.Labels = !renderNoLabel
	img := render.PageWithConfig(page, width, height, highlights, config)

	f, err := os.Create(renderOut)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}

	bounds := img.Bounds()
	cmd.Printf("Rendered page %d to %s (%dx%d px", renderPage, renderOut, bounds.Dx(), bounds.Dy())
	if renderQuery != "" {
		cmd.Printf(", %d highlight(s)", len(highlights))
	}
	cmd.Println(")")
	return nil
}
