package main

import (
	"github.com/spf13/cobra"
)

var (
	searchCase       bool
	searchWord       bool
	searchDiacritics bool
	searchNoOverlap  bool
	searchPage       int
	searchRects      bool
)

var searchCmd = &cobra.Command{
	Use:   "search [file] [query]",
	Short: "Search a document's text layer",
	Long: `Extracts the document's text layer (or loads it from the cache) and
prints every match with its page, character offsets, and highlight
rectangles.`,
	Args: cobra.ExactArgs(2),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchCase, "case", false, "match letter case exactly")
	searchCmd.Flags().BoolVar(&searchWord, "word", false, "match whole words only")
	searchCmd.Flags().BoolVar(&searchDiacritics, "diacritics", false, "match diacritical marks exactly")
	searchCmd.Flags().BoolVar(&searchNoOverlap, "no-overlap", false, "report each span at most once")
	searchCmd.Flags().IntVarP(&searchPage, "page", "p", 0, "restrict to one page (0 searches all)")
	searchCmd.Flags().BoolVar(&searchRects, "rects", false, "print highlight rectangles per match")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	path, term := args[0], args[1]

	s, err := openDocument(path)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Load(cmd.Context()); err != nil {
		return err
	}

	q := s.Query(term).
		MatchCase(searchCase).
		WholeWord(searchWord).
		MatchDiacritics(searchDiacritics).
		AllowOverlapping(!searchNoOverlap)
	if searchPage > 0 {
		q = q.OnPage(searchPage)
	}

	matches := q.FindAll()
	if len(matches) == 0 {
		cmd.Println("No matches found.")
		return nil
	}

	for _, m := range matches {
		cmd.Printf("page %d [%d:%d] %q\n", m.PageNumber, m.Start, m.End, m.Text)
		if searchRects {
			for _, r := range m.Rects {
				cmd.Printf("    x=%.1f y=%.1f w=%.1f h=%.1f\n", r.X, r.Y, r.Width, r.Height)
			}
		}
	}
	cmd.Printf("\n%d match(es) in %d page(s)\n", len(matches), s.PageCount())
	return nil
}
