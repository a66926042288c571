package tview

import "github.com/gdamore/tcell/v3"

// TrackClickBehavior configures what a press on the scroll bar track outside
// the thumb does.
type TrackClickBehavior uint8

const (
	TrackClickBehaviorPage TrackClickBehavior = iota
	TrackClickBehaviorJumpToClick
)

// ScrollLengths bundles content and viewport lengths in items.
type ScrollLengths struct {
	ContentLen  int
	ViewportLen int
}

const subcell = 8

// GlyphSet defines the track and fractional thumb glyphs.
type GlyphSet struct {
	TrackVertical string

	ThumbVerticalLower [8]string
	ThumbVerticalUpper [8]string
}

// MinimalGlyphSet returns a space track with legacy computing fractional
// thumbs.
func MinimalGlyphSet() GlyphSet {
	return GlyphSet{
		TrackVertical:      " ",
		ThumbVerticalLower: [8]string{"▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"},
		ThumbVerticalUpper: [8]string{"▔", "🮂", "🮃", "▀", "🮄", "🮅", "🮆", "█"},
	}
}

// UnicodeGlyphSet returns a standard-unicode-only approximation set.
func UnicodeGlyphSet() GlyphSet {
	return GlyphSet{
		TrackVertical:      "│",
		ThumbVerticalLower: [8]string{"▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"},
		ThumbVerticalUpper: [8]string{"▔", "▔", "▀", "▀", "▀", "▀", "█", "█"},
	}
}

// ScrollBar renders a vertical scroll bar whose units are list items rather
// than screen lines, so the item count never has to be measured.
type ScrollBar struct {
	*Box

	contentLen  int
	viewportLen int
	offset      int

	trackStyle tcell.Style
	thumbStyle tcell.Style
	glyphSet   GlyphSet

	trackClickBehavior TrackClickBehavior

	// Called with the requested item offset after a press on the track.
	scrolled func(offset int)
}

// NewScrollBar returns a new vertical scroll bar.
func NewScrollBar() *ScrollBar {
	s := &ScrollBar{
		Box:                NewBox(),
		trackStyle:         tcell.StyleDefault.Foreground(Styles.GraphicsColor).Dim(true),
		thumbStyle:         tcell.StyleDefault.Foreground(Styles.GraphicsColor),
		glyphSet:           MinimalGlyphSet(),
		trackClickBehavior: TrackClickBehaviorPage,
	}
	s.SetDontClear(true)
	return s
}

// SetLengths sets content and viewport lengths.
func (s *ScrollBar) SetLengths(lengths ScrollLengths) *ScrollBar {
	contentLen, viewportLen := max(lengths.ContentLen, 0), max(lengths.ViewportLen, 0)
	if s.contentLen != contentLen || s.viewportLen != viewportLen {
		s.contentLen, s.viewportLen = contentLen, viewportLen
		s.MarkDirty()
	}
	return s
}

// SetOffset sets the index of the first visible item.
func (s *ScrollBar) SetOffset(offset int) *ScrollBar {
	offset = max(offset, 0)
	if s.offset != offset {
		s.offset = offset
		s.MarkDirty()
	}
	return s
}

// SetGlyphSet applies a glyph set.
func (s *ScrollBar) SetGlyphSet(g GlyphSet) *ScrollBar {
	s.glyphSet = g
	s.MarkDirty()
	return s
}

// SetTrackClickBehavior sets the behavior used for track presses.
func (s *ScrollBar) SetTrackClickBehavior(behavior TrackClickBehavior) *ScrollBar {
	s.trackClickBehavior = behavior
	return s
}

// SetThumbStyle sets the thumb style.
func (s *ScrollBar) SetThumbStyle(style tcell.Style) *ScrollBar {
	if s.thumbStyle != style {
		s.thumbStyle = style
		s.MarkDirty()
	}
	return s
}

// SetTrackStyle sets the track style.
func (s *ScrollBar) SetTrackStyle(style tcell.Style) *ScrollBar {
	if s.trackStyle != style {
		s.trackStyle = style
		s.MarkDirty()
	}
	return s
}

// SetScrollFunc sets the handler receiving the item offset requested by a
// press on the track.
func (s *ScrollBar) SetScrollFunc(handler func(offset int)) *ScrollBar {
	s.scrolled = handler
	return s
}

// Visible reports whether there is anything to scroll.
func (s *ScrollBar) Visible() bool {
	return s.contentLen > max(s.viewportLen, 1)
}

// thumb is the thumb position on a track, measured in eighths of a cell.
type thumb struct {
	cells         int
	start, length int
}

func (t thumb) track() int { return t.cells * subcell }
func (t thumb) end() int   { return t.start + t.length }

// thumbFor sizes the thumb proportionally to the visible share of the items
// and places it by offset. It is never shorter than one cell.
func thumbFor(cells, contentLen, viewportLen, offset int) thumb {
	if cells <= 0 {
		return thumb{}
	}
	t := thumb{cells: cells, length: cells * subcell}
	contentLen = max(contentLen, 1)
	viewportLen = min(max(viewportLen, 1), contentLen)
	maxOffset := contentLen - viewportLen
	if maxOffset == 0 {
		return t
	}
	t.length = min(max(t.track()*viewportLen/contentLen, subcell), t.track())
	t.start = (t.track() - t.length) * min(max(offset, 0), maxOffset) / maxOffset
	return t
}

// fill returns the eighths of cell covered by the thumb and whether the
// covered part starts at the top of the cell.
func (t thumb) fill(cell int) (eighths int, top bool) {
	from, to := cell*subcell, (cell+1)*subcell
	lo, hi := max(t.start, from), min(t.end(), to)
	if hi <= lo {
		return 0, false
	}
	return hi - lo, lo == from
}

func (s *ScrollBar) glyph(t thumb, cell int) (string, tcell.Style) {
	eighths, top := t.fill(cell)
	switch {
	case eighths == 0:
		return s.glyphSet.TrackVertical, s.trackStyle
	case eighths == subcell:
		return s.glyphSet.ThumbVerticalLower[subcell-1], s.thumbStyle
	case top:
		return s.glyphSet.ThumbVerticalUpper[eighths-1], s.thumbStyle
	}
	return s.glyphSet.ThumbVerticalLower[eighths-1], s.thumbStyle
}

func (s *ScrollBar) thumb() thumb {
	_, _, _, height := s.GetInnerRect()
	return thumbFor(height, s.contentLen, s.viewportLen, s.offset)
}

// Draw draws the track and the thumb. Nothing is drawn while every item
// fits.
func (s *ScrollBar) Draw(screen tcell.Screen) {
	s.DrawForSubclass(screen, s)
	if !s.Visible() {
		return
	}
	x, y, _, _ := s.GetInnerRect()
	t := s.thumb()
	for cell := range t.cells {
		glyph, style := s.glyph(t, cell)
		screen.Put(x, y+cell, glyph, style)
	}
}

// offsetForRow maps a press on a track row to an item offset: a page
// towards the press, or straight to it with TrackClickBehaviorJumpToClick.
func (s *ScrollBar) offsetForRow(row int) int {
	t := s.thumb()
	maxOffset := max(s.contentLen-s.viewportLen, 0)
	if t.cells == 0 || maxOffset == 0 {
		return 0
	}
	pos := row*subcell + subcell/2
	if s.trackClickBehavior == TrackClickBehaviorJumpToClick {
		travel := max(t.track()-t.length, 1)
		return min(max((pos-t.length/2)*maxOffset/travel, 0), maxOffset)
	}
	page := max(s.viewportLen, 1)
	switch {
	case pos < t.start:
		return max(s.offset-page, 0)
	case pos >= t.end():
		return min(s.offset+page, maxOffset)
	}
	return s.offset
}

// MouseHandler handles presses on the track.
func (s *ScrollBar) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	x, y := event.Position()
	if action != MouseLeftDown || !s.Visible() || !s.InRect(x, y) {
		return nil, nil
	}
	_, top, _, _ := s.GetInnerRect()
	offset := s.offsetForRow(y - top)
	if offset != s.offset && s.scrolled != nil {
		s.scrolled(offset)
	}
	return nil, BatchCommand{ConsumeEventCommand{}, RedrawCommand{}}
}

var _ Primitive = &ScrollBar{}
