package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/tsawler/textlayer"
	"github.com/tsawler/textlayer/model"
	"github.com/tsawler/textlayer/platform"
	"github.com/tsawler/textlayer/platform/tcellevent"
	"github.com/tsawler/textlayer/source"
)

const (
	// contentTop is the first content row; the header sits above it.
	contentTop = 1

	// rowAspect compensates for terminal cells being roughly twice as
	// tall as they are wide. Viewport coordinates stay uniformly zoomed;
	// only painting and the locator squash the vertical axis.
	rowAspect = 2.0
)

var (
	styleHeader    = tcell.StyleDefault.Reverse(true)
	styleFooter    = tcell.StyleDefault.Reverse(true)
	styleMatch     = tcell.StyleDefault.Background(tcell.ColorDarkGreen).Foreground(tcell.ColorWhite)
	styleSelection = tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite)
)

var viewQuery string

var viewCmd = &cobra.Command{
	Use:   "view [file]",
	Short: "Interactively view and select a document's text layer",
	Long: `Opens a full-screen terminal viewer over the document. Click places the
caret, double-click selects a word, shift plus click or arrow keys extend
a selection, and n/p switch pages. Matches for an optional query are
highlighted.`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	viewCmd.Flags().StringVarP(&viewQuery, "query", "q", "", "highlight matches for this query")
	rootCmd.AddCommand(viewCmd)
}

// syncScheduler recomputes immediately. The viewer repaints after every
// event, so frame coalescing buys nothing in a terminal, and synchronous
// recomputation keeps all state on the event loop goroutine.
type syncScheduler struct{}

func (syncScheduler) Request(fn func()) { fn() }
func (syncScheduler) Cancel()           {}

// viewer displays one page of a document's text layer and doubles as the
// session's platform adapter: it owns the page geometry, the active
// selection, and the translation between terminal cells and page
// coordinates.
type viewer struct {
	screen  tcell.Screen
	session *textlayer.Session
	title   string

	pages   []int
	pageIdx int
	zoom    float64 // viewport columns per layout unit

	matches   map[int][]model.Rect // query match rects, reference scale
	selRects  map[int][]model.Rect // reconstructed selection, reference scale
	selection *model.SelectionRange

	quit bool
}

var _ platform.Adapter = (*viewer)(nil)

func runView(cmd *cobra.Command, args []string) error {
	s, err := openDocument(args[0], textlayer.WithScheduler(syncScheduler{}))
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Load(cmd.Context()); err != nil {
		return err
	}
	pages := s.Index().PageNumbers()
	if len(pages) == 0 {
		return errors.New("document has no extractable text")
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.EnableFocus()

	v := &viewer{
		screen:   screen,
		session:  s,
		title:    filepath.Base(args[0]),
		pages:    pages,
		selRects: make(map[int][]model.Rect),
	}

	if viewQuery != "" {
		v.matches = make(map[int][]model.Rect)
		for _, m := range s.Query(viewQuery).FindAll() {
			v.matches[m.PageNumber] = append(v.matches[m.PageNumber], m.Rects...)
		}
	}

	events := tcellevent.NewSource(v.locate)
	s.Attach(events, v)
	s.OnSelectionRects(func(rects map[int][]model.Rect) {
		v.selRects = rects
	})

	v.updateZoom()
	v.draw()

	for !v.quit {
		ev := screen.PollEvent()
		if ev == nil {
			break
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			screen.Sync()
			v.updateZoom()
		default:
			if !events.ProcessEvent(ev) {
				v.handleShortcut(ev)
			}
		}
		v.draw()
	}
	return nil
}

// handleShortcut reacts to keys the engine left unconsumed.
func (v *viewer) handleShortcut(ev tcell.Event) {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return
	}
	switch key.Key() {
	case tcell.KeyCtrlC:
		v.quit = true
	case tcell.KeyRune:
		switch key.Rune() {
		case 'q':
			v.quit = true
		case 'n':
			v.gotoPage(v.pageIdx + 1)
		case 'p':
			v.gotoPage(v.pageIdx - 1)
		}
	}
}

func (v *viewer) gotoPage(idx int) {
	if idx < 0 || idx >= len(v.pages) {
		return
	}
	v.pageIdx = idx
	v.updateZoom()
	v.session.HandleSelectionChanged()
}

func (v *viewer) currentPage() int {
	return v.pages[v.pageIdx]
}

// updateZoom fits the current page into the screen, leaving the header
// and footer rows free.
func (v *viewer) updateZoom() {
	cols, rows := v.screen.Size()
	if cols <= 0 || rows <= contentTop+1 {
		v.zoom = 1
		return
	}
	w, h := v.pageSize(v.currentPage())
	v.zoom = float64(cols) / w
	if fitH := float64(rows-contentTop-1) * rowAspect / h; fitH < v.zoom {
		v.zoom = fitH
	}
}

// pageSize prefers the source's declared dimensions and falls back to the
// content extent.
func (v *viewer) pageSize(pageNumber int) (float64, float64) {
	if sizer, ok := v.session.Source().(source.PageSizer); ok {
		if w, h, ok := sizer.PageSize(pageNumber); ok {
			return w, h
		}
	}

	var w, h float64
	if c := v.session.Page(pageNumber); c != nil {
		for _, f := range c.Fragments {
			if f.Rect.Right() > w {
				w = f.Rect.Right()
			}
			if f.Rect.Bottom() > h {
				h = f.Rect.Bottom()
			}
		}
	}
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return w, h
}

// locate maps a terminal cell to a page-local point on the displayed page.
func (v *viewer) locate(x, y int) (int, model.Point, bool) {
	if v.zoom <= 0 || y < contentTop {
		return 0, model.Point{}, false
	}
	page := v.currentPage()
	w, h := v.pageSize(page)

	p := model.Point{
		X: float64(x) / v.zoom,
		Y: float64(y-contentTop) * rowAspect / v.zoom,
	}
	if p.X > w || p.Y > h {
		return 0, model.Point{}, false
	}
	return page, p, true
}

// PageRegion reports only the displayed page as mounted.
func (v *viewer) PageRegion(pageNumber int) (platform.PageRegion, bool) {
	if pageNumber != v.currentPage() || v.zoom <= 0 {
		return platform.PageRegion{}, false
	}
	w, h := v.pageSize(pageNumber)
	return platform.PageRegion{
		Rect: model.NewRect(0, 0, w*v.zoom, h*v.zoom),
		Zoom: v.zoom,
	}, true
}

// SelectionRects resolves the active selection to viewport rectangles on
// the displayed page, the way a platform's client rects would arrive.
func (v *viewer) SelectionRects() []model.Rect {
	if v.selection == nil {
		return nil
	}
	var out []model.Rect
	for _, r := range v.session.SelectionSpanRects(*v.selection)[v.currentPage()] {
		out = append(out, r.Scaled(v.zoom))
	}
	return out
}

func (v *viewer) CurrentSelection() (model.SelectionRange, bool) {
	if v.selection == nil {
		return model.SelectionRange{}, false
	}
	return *v.selection, true
}

func (v *viewer) SetSelection(r model.SelectionRange) {
	v.selection = &r
}

func (v *viewer) ClearSelection() {
	v.selection = nil
}

// MarkEditable is a no-op; the terminal has no editable affordance.
func (v *viewer) MarkEditable(pageNumber, fragmentIndex int, editable bool) {}

func (v *viewer) draw() {
	v.screen.Clear()
	v.drawHeader()
	if page := v.session.Page(v.currentPage()); page != nil {
		v.drawFragments(page)
		v.drawHighlights(v.matches[v.currentPage()], styleMatch)
		v.drawHighlights(v.selRects[v.currentPage()], styleSelection)
	}
	v.drawFooter()
	v.drawCaret()
	v.screen.Show()
}

func (v *viewer) drawHeader() {
	v.drawLine(0, fmt.Sprintf(" %s  page %d/%d", v.title, v.currentPage(), len(v.pages)), styleHeader)
}

func (v *viewer) drawFooter() {
	_, rows := v.screen.Size()
	text := " click: caret  double-click: word  shift: extend  n/p: page  q: quit"
	if status := v.selectionStatus(); status != "" {
		text = status
	}
	v.drawLine(rows-1, text, styleFooter)
}

func (v *viewer) selectionStatus() string {
	if v.selection == nil {
		return ""
	}
	text, ok := v.session.SelectedText(*v.selection)
	if !ok || text == "" {
		return ""
	}
	const maxRunes = 60
	if utf8.RuneCountInString(text) > maxRunes {
		text = string([]rune(text)[:maxRunes]) + "…"
	}
	return fmt.Sprintf(" selected: %q", text)
}

func (v *viewer) drawLine(y int, text string, style tcell.Style) {
	cols, _ := v.screen.Size()
	col := 0
	for _, r := range text {
		if col >= cols {
			break
		}
		v.screen.SetContent(col, y, r, nil, style)
		col += runewidth.RuneWidth(r)
	}
	for ; col < cols; col++ {
		v.screen.SetContent(col, y, ' ', nil, style)
	}
}

func (v *viewer) drawFragments(page *model.PageTextCorpus) {
	cols, rows := v.screen.Size()
	for _, frag := range page.Fragments {
		col := int(frag.Rect.X*v.zoom + 0.5)
		row := contentTop + int(frag.Rect.Y*v.zoom/rowAspect+0.5)
		if row < contentTop || row >= rows-1 {
			continue
		}
		for _, r := range frag.Text {
			if col >= cols {
				break
			}
			v.screen.SetContent(col, row, r, nil, tcell.StyleDefault)
			col += runewidth.RuneWidth(r)
		}
	}
}

// drawHighlights restyles the cells a reference-scale rectangle covers,
// keeping whatever text is already painted there.
func (v *viewer) drawHighlights(rects []model.Rect, style tcell.Style) {
	cols, rows := v.screen.Size()
	for _, r := range rects {
		x0 := int(r.X*v.zoom + 0.5)
		x1 := int((r.X+r.Width)*v.zoom + 0.5)
		y0 := contentTop + int(r.Y*v.zoom/rowAspect+0.5)
		y1 := contentTop + int((r.Y+r.Height)*v.zoom/rowAspect+0.5)
		if y1 <= y0 {
			y1 = y0 + 1
		}

		for y := y0; y < y1 && y < rows-1; y++ {
			if y < contentTop {
				continue
			}
			for x := x0; x < x1 && x < cols; x++ {
				if x < 0 {
					continue
				}
				ch, combining, _, _ := v.screen.GetContent(x, y)
				if ch == 0 {
					ch = ' '
				}
				v.screen.SetContent(x, y, ch, combining, style)
			}
		}
	}
}

// drawCaret positions the hardware cursor at the caret, approximating the
// character cell from the fragment's width.
func (v *viewer) drawCaret() {
	pos, ok := v.session.CaretPosition()
	if !ok || pos.PageNumber != v.currentPage() {
		v.screen.HideCursor()
		return
	}
	page := v.session.Page(pos.PageNumber)
	if page == nil {
		v.screen.HideCursor()
		return
	}
	frag, ok := page.FragmentAt(pos.FragmentIndex)
	if !ok || frag.Length() == 0 {
		v.screen.HideCursor()
		return
	}

	cell := frag.Rect.Width / float64(frag.Length())
	x := int((frag.Rect.X+cell*float64(pos.CharOffset))*v.zoom + 0.5)
	y := contentTop + int(frag.Rect.Y*v.zoom/rowAspect+0.5)
	v.screen.ShowCursor(x, y)
}
