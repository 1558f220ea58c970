package textlayer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/tsawler/textlayer/caret"
	"github.com/tsawler/textlayer/corpus"
	"github.com/tsawler/textlayer/model"
	"github.com/tsawler/textlayer/platform"
	"github.com/tsawler/textlayer/search"
	"github.com/tsawler/textlayer/selection"
)

// Session owns the engine state for one open document: the text index, the
// cache tiers, the search engine, the selection reconstructor, and one
// caret navigator per visited page. A Session is created by Open or
// NewSession, populated by Load, and released by Close.
//
// Attached to a platform adapter and an input event source, the Session is
// the engine's reactive layer: pointer events place the caret and select
// words, key events drive caret navigation, and selection-change
// notifications schedule highlight reconstruction. Every reaction runs
// synchronously inside the delivering call.
type Session struct {
	source corpus.FragmentSource
	logger *slog.Logger

	docID       string
	sourcePath  string
	watchSource bool

	index    *model.DocumentTextIndex
	cache    *corpus.TierCache
	acquirer *corpus.Acquirer
	engine   *search.Engine

	tiers       []corpus.Tier
	cacheConfig *corpus.CacheConfig

	searchConfig  search.Config
	acquireConfig corpus.AcquireConfig
	caretConfig   caret.Config
	pointConfig   selection.PointConfig
	wordConfig    selection.WordConfig
	reconConfig   selection.ReconstructorConfig
	scheduler     selection.Scheduler
	onProgress    func(corpus.Progress)

	mu         sync.Mutex
	host       platform.Adapter
	recon      *selection.Reconstructor
	onRects    func(map[int][]model.Rect)
	watcher    *corpus.Watcher
	navigators map[int]*caret.Navigator
	activePage int
	totalPages int
	closed     bool
}

var _ platform.Handler = (*Session)(nil)

// NewSession creates a Session over a fragment source. Most callers use
// Open instead; NewSession serves hosts that deliver fragments themselves.
func NewSession(src corpus.FragmentSource, opts ...Option) *Session {
	s := &Session{
		source:        src,
		logger:        slog.Default(),
		index:         model.NewDocumentTextIndex(),
		searchConfig:  search.DefaultConfig(),
		acquireConfig: corpus.DefaultAcquireConfig(),
		caretConfig:   caret.DefaultConfig(),
		pointConfig:   selection.DefaultPointConfig(),
		wordConfig:    selection.DefaultWordConfig(),
		reconConfig:   selection.DefaultReconstructorConfig(),
		navigators:    make(map[int]*caret.Navigator),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.engine = search.NewEngineWithConfig(s.searchConfig)
	s.acquirer = corpus.NewAcquirerWithConfig(src, s.logger, s.acquireConfig)

	if s.cacheConfig != nil {
		tiers, err := s.cacheConfig.BuildTiers(s.logger)
		if err != nil {
			s.logger.Warn("failed to build cache tiers, running uncached", "error", err)
		} else {
			s.tiers = tiers
		}
	}
	if len(s.tiers) > 0 {
		s.cache = corpus.NewTierCache(s.logger, s.tiers...)
	}
	return s
}

// Load populates the text index, consulting the cache tiers first and
// falling back to extraction from the source. Extracted text is written
// back to every tier in the background. Load may be called again after the
// source file changes; already indexed pages are kept.
func (s *Session) Load(ctx context.Context) error {
	total, err := s.source.PageCount(ctx)
	if err != nil {
		return fmt.Errorf("failed to count pages: %w", err)
	}
	s.mu.Lock()
	s.totalPages = total
	s.mu.Unlock()

	if s.cache != nil && s.docID != "" {
		if pages, ok := s.cache.Load(ctx, s.docID, total); ok {
			for _, page := range pages {
				s.index.SetPage(page)
			}
			s.logger.Debug("document loaded from cache", "doc", s.docID, "pages", total)
			s.startWatcher()
			return nil
		}
	}

	if err := s.acquirer.Acquire(ctx, s.index, s.onProgress); err != nil {
		return fmt.Errorf("failed to acquire document text: %w", err)
	}
	if s.cache != nil && s.docID != "" {
		s.cache.Store(s.docID, corpus.SnapshotIndex(s.index))
	}
	s.startWatcher()
	return nil
}

// Close releases the session: the change watcher stops, pending cache
// write-backs drain, and closable tiers are closed. It is safe to call
// Close multiple times.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	watcher := s.watcher
	s.watcher = nil
	recon := s.recon
	s.mu.Unlock()

	var first error
	if watcher != nil {
		if err := watcher.Close(); err != nil && first == nil {
			first = err
		}
	}
	if recon != nil {
		recon.EndDrag()
	}
	if s.cache != nil {
		s.cache.Wait()
	}
	for _, tier := range s.tiers {
		if closer, ok := tier.(io.Closer); ok {
			if err := closer.Close(); err != nil && first == nil {
				first = err
			}
		}
	}
	return first
}

// Attach binds the session to a live host. The adapter supplies page
// geometry and selection primitives; the event source delivers input. A
// second Attach replaces the previous binding and resets per-host state.
func (s *Session) Attach(events platform.InputEventSource, host platform.Adapter) {
	recon := selection.NewReconstructorWithConfig(host, s.reconConfig)
	if s.scheduler != nil {
		recon.SetScheduler(s.scheduler)
	}

	s.mu.Lock()
	s.host = host
	s.recon = recon
	s.navigators = make(map[int]*caret.Navigator)
	s.activePage = 0
	if s.onRects != nil {
		recon.SetUpdateFunc(s.onRects)
	}
	s.mu.Unlock()

	if events != nil {
		events.Subscribe(s)
	}
}

// OnSelectionRects registers the callback receiving reconstructed
// selection rectangles, keyed by page number at reference scale. It fires
// once per coalesced frame.
func (s *Session) OnSelectionRects(fn func(map[int][]model.Rect)) {
	s.mu.Lock()
	s.onRects = fn
	recon := s.recon
	s.mu.Unlock()
	if recon != nil {
		recon.SetUpdateFunc(fn)
	}
}

// DocumentID returns the cache identity for the document, if any
func (s *Session) DocumentID() string {
	return s.docID
}

// Source returns the fragment source backing the session
func (s *Session) Source() corpus.FragmentSource {
	return s.source
}

// CaretPosition returns the active caret's position, if one is placed
func (s *Session) CaretPosition() (model.SelectionEndpoint, bool) {
	nav := s.activeNavigator()
	if nav == nil {
		return model.SelectionEndpoint{}, false
	}
	return nav.Position()
}

// PageCount returns the source page count established by Load
func (s *Session) PageCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalPages
}

// Index returns the session's document text index
func (s *Session) Index() *model.DocumentTextIndex {
	return s.index
}

// Page returns the corpus for a page number, or nil if not indexed
func (s *Session) Page(number int) *model.PageTextCorpus {
	return s.index.Page(number)
}

// SelectionRects returns the most recently reconstructed selection
// rectangles, keyed by page number at reference scale.
func (s *Session) SelectionRects() map[int][]model.Rect {
	s.mu.Lock()
	recon := s.recon
	s.mu.Unlock()
	if recon == nil {
		return map[int][]model.Rect{}
	}
	return recon.Rects()
}

// HandleKey feeds a key event to the active caret navigator. The return
// value reports whether the event was consumed.
func (s *Session) HandleKey(ev platform.KeyEvent) bool {
	nav := s.activeNavigator()
	if nav == nil {
		return false
	}
	consumed := nav.HandleKey(ev)
	if consumed && !nav.Active() {
		// Escape released the caret.
		s.mu.Lock()
		s.activePage = 0
		s.mu.Unlock()
	}
	return consumed
}

// HandlePointer reacts to a pointer event. A single click places the
// caret, shift-click extends a selection to it, a double click selects the
// word under the pointer, and a click away from any text releases the
// caret. Moves during a drag and the closing release keep highlight
// reconstruction flowing.
func (s *Session) HandlePointer(ev platform.PointerEvent) {
	switch ev.Phase {
	case platform.PointerDown:
		s.pointerDown(ev)
	case platform.PointerMove:
		s.mu.Lock()
		recon := s.recon
		s.mu.Unlock()
		if recon != nil {
			recon.BeginDrag()
			recon.Invalidate()
		}
	case platform.PointerUp:
		s.mu.Lock()
		recon := s.recon
		s.mu.Unlock()
		if recon != nil {
			recon.EndDrag()
		}
	}
}

// HandleSelectionChanged schedules highlight reconstruction for the
// platform's new selection
func (s *Session) HandleSelectionChanged() {
	s.mu.Lock()
	recon := s.recon
	s.mu.Unlock()
	if recon != nil {
		recon.Invalidate()
	}
}

// HandleFocusLost releases the caret when the text layer loses focus
func (s *Session) HandleFocusLost() {
	s.deactivateCaret()
}

// SelectedText returns the plain text covered by a selection range, pages
// joined with newlines. ok is false when the range touches a page or
// fragment that is not indexed. A collapsed range yields an empty string.
func (s *Session) SelectedText(r model.SelectionRange) (string, bool) {
	start, end := r.Ordered()
	if start.Compare(end) == 0 {
		return "", true
	}

	var parts []string
	for page := start.PageNumber; page <= end.PageNumber; page++ {
		c := s.index.Page(page)
		if c == nil {
			return "", false
		}

		from := 0
		if page == start.PageNumber {
			off, ok := endpointOffset(c, start)
			if !ok {
				return "", false
			}
			from = off
		}
		to := utf8.RuneCountInString(c.FullText)
		if page == end.PageNumber {
			off, ok := endpointOffset(c, end)
			if !ok {
				return "", false
			}
			to = off
		}
		parts = append(parts, c.TextIn(from, to))
	}
	return strings.Join(parts, "\n"), true
}

// SelectionSpanRects resolves a selection range into merged highlight
// rectangles per page, at reference scale. Pages without an indexed corpus
// contribute nothing.
func (s *Session) SelectionSpanRects(r model.SelectionRange) map[int][]model.Rect {
	start, end := r.Ordered()
	result := make(map[int][]model.Rect)
	for page := start.PageNumber; page <= end.PageNumber; page++ {
		c := s.index.Page(page)
		if c == nil {
			continue
		}

		from := 0
		if page == start.PageNumber {
			off, ok := endpointOffset(c, start)
			if !ok {
				continue
			}
			from = off
		}
		to := utf8.RuneCountInString(c.FullText)
		if page == end.PageNumber {
			off, ok := endpointOffset(c, end)
			if !ok {
				continue
			}
			to = off
		}
		if rects := s.engine.SpanRects(c, from, to); len(rects) > 0 {
			result[page] = rects
		}
	}
	return result
}

// pointerDown routes a press: word selection on double click, caret
// placement on single click, caret release on a miss.
func (s *Session) pointerDown(ev platform.PointerEvent) {
	c := s.index.Page(ev.PageNumber)
	if c == nil {
		s.deactivateCaret()
		return
	}

	frag, offset, ok := s.resolvePoint(ev.PageNumber, c, ev.Point)
	if !ok {
		s.deactivateCaret()
		return
	}

	if ev.ClickCount >= 2 {
		s.selectWord(c, frag, offset)
		return
	}
	s.activateCaret(ev.PageNumber, c, frag, offset, ev.Modifiers.Has(platform.ModShift))
}

// resolvePoint maps a page-local point to a text position, preferring the
// host's native resolution when it offers one.
func (s *Session) resolvePoint(page int, c *model.PageTextCorpus, p model.Point) (fragmentIndex, charOffset int, ok bool) {
	s.mu.Lock()
	host := s.host
	s.mu.Unlock()

	if resolver, ok := host.(platform.PointResolver); ok {
		if frag, off, ok := resolver.ResolvePoint(page, p); ok {
			return frag, off, true
		}
	}
	return selection.ResolvePointWithConfig(c, p, s.pointConfig)
}

func (s *Session) activateCaret(page int, c *model.PageTextCorpus, frag, offset int, extend bool) {
	s.mu.Lock()
	prev := s.navigators[s.activePage]
	prevPage := s.activePage
	s.mu.Unlock()

	if prev != nil && prevPage != page {
		prev.Deactivate()
	}

	nav := s.navigator(page, c)
	if nav.Activate(frag, offset, extend) {
		s.mu.Lock()
		s.activePage = page
		s.mu.Unlock()
	}
}

func (s *Session) selectWord(c *model.PageTextCorpus, frag, offset int) {
	word, ok := selection.WordAtWithConfig(c, frag, offset, s.wordConfig)
	if !ok {
		return
	}

	s.mu.Lock()
	host := s.host
	recon := s.recon
	s.mu.Unlock()

	if host != nil {
		host.SetSelection(word.Range)
	}
	if recon != nil {
		recon.Invalidate()
	}
}

func (s *Session) deactivateCaret() {
	nav := s.activeNavigator()
	if nav != nil {
		nav.Deactivate()
	}
	s.mu.Lock()
	s.activePage = 0
	s.mu.Unlock()
}

// navigator returns the caret navigator for a page, creating it on first
// use against the current host.
func (s *Session) navigator(page int, c *model.PageTextCorpus) *caret.Navigator {
	s.mu.Lock()
	defer s.mu.Unlock()
	nav, ok := s.navigators[page]
	if !ok {
		nav = caret.NewNavigatorWithConfig(c, s.host, s.caretConfig)
		s.navigators[page] = nav
	}
	return nav
}

func (s *Session) activeNavigator() *caret.Navigator {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activePage == 0 {
		return nil
	}
	return s.navigators[s.activePage]
}

// startWatcher begins observing the backing file after a successful Load.
// Watcher failures degrade to an unwatched session.
func (s *Session) startWatcher() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.watchSource || s.sourcePath == "" || s.watcher != nil || s.closed {
		return
	}

	watcher, err := corpus.NewWatcher(s.logger, func(string) { s.sourceChanged() })
	if err != nil {
		s.logger.Warn("source watcher unavailable", "error", err)
		return
	}
	if err := watcher.Add(s.sourcePath); err != nil {
		s.logger.Warn("failed to watch source file", "path", s.sourcePath, "error", err)
		watcher.Close()
		return
	}
	s.watcher = watcher
}

// sourceChanged drops cached and indexed text after the backing file
// changes, so the next Load re-extracts. Runs on the watcher goroutine.
func (s *Session) sourceChanged() {
	s.logger.Info("source file changed, dropping extracted text", "path", s.sourcePath)
	if s.cache != nil && s.docID != "" {
		s.cache.Invalidate(context.Background(), s.docID)
	}

	s.index.Clear()
	s.mu.Lock()
	s.navigators = make(map[int]*caret.Navigator)
	s.activePage = 0
	recon := s.recon
	s.mu.Unlock()
	if recon != nil {
		recon.Invalidate()
	}
}

// endpointOffset converts a selection endpoint to a character offset into
// the page's FullText, clamped to the endpoint fragment's bounds.
func endpointOffset(c *model.PageTextCorpus, e model.SelectionEndpoint) (int, bool) {
	frag, ok := c.FragmentAt(e.FragmentIndex)
	if !ok {
		return 0, false
	}
	off := e.CharOffset
	if off < 0 {
		off = 0
	}
	if max := frag.Length(); off > max {
		off = max
	}
	return frag.Start + off, true
}
