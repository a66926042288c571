package tview

import (
	"sync/atomic"

	"github.com/gdamore/tcell/v3"
)

// Box is the base every primitive embeds. It owns the rect, an optional
// border and title, the focus flag and dirty tracking. Content goes inside
// GetInnerRect.
type Box struct {
	x, y, width, height int

	// innerX < 0 means the inner rect must be recomputed.
	innerX, innerY, innerWidth, innerHeight int

	backgroundColor tcell.Color
	// dontClear skips painting the background, for primitives drawn over
	// their parent.
	dontClear bool

	borders        Borders
	borderSet      BorderSet
	focusBorderSet BorderSet
	borderStyle    tcell.Style

	title          string
	titleStyle     tcell.Style
	titleAlignment Alignment

	hasFocus bool

	dirty atomic.Bool
	// dirtyParent is dirtied along with this box, so a panel learns about
	// changes in its containers without polling them.
	dirtyParent atomic.Pointer[Box]
}

// NewBox returns a borderless box.
func NewBox() *Box {
	b := &Box{
		width:           15,
		height:          10,
		innerX:          -1,
		backgroundColor: Styles.PrimitiveBackgroundColor,
		borderSet:       BorderSetPlain(),
		focusBorderSet:  BorderSetThick(),
		borderStyle:     tcell.StyleDefault.Foreground(Styles.BorderColor).Background(Styles.PrimitiveBackgroundColor),
		titleStyle:      tcell.StyleDefault.Foreground(Styles.TitleColor).Background(Styles.PrimitiveBackgroundColor),
		titleAlignment:  AlignmentCenter,
	}
	b.dirty.Store(true)
	return b
}

func (b *Box) GetRect() (int, int, int, int) {
	return b.x, b.y, b.width, b.height
}

func (b *Box) SetRect(x, y, width, height int) {
	if b.x == x && b.y == y && b.width == width && b.height == height {
		return
	}
	b.x, b.y, b.width, b.height = x, y, width, height
	b.innerX = -1
	b.MarkDirty()
}

// GetInnerRect returns the rect left inside the border and title row. Width
// and height never go below zero.
func (b *Box) GetInnerRect() (int, int, int, int) {
	if b.innerX >= 0 {
		return b.innerX, b.innerY, b.innerWidth, b.innerHeight
	}
	x, y, width, height := b.GetRect()
	if b.title != "" || b.borders.Has(BordersTop) {
		y++
		height--
	}
	if b.borders.Has(BordersBottom) {
		height--
	}
	if b.borders.Has(BordersLeft) {
		x++
		width--
	}
	if b.borders.Has(BordersRight) {
		width--
	}
	return x, y, max(width, 0), max(height, 0)
}

// InRect reports whether (x, y) lies inside the box.
func (b *Box) InRect(x, y int) bool {
	return x >= b.x && x < b.x+b.width && y >= b.y && y < b.y+b.height
}

func (b *Box) IsDirty() bool {
	return b.dirty.Load()
}

// MarkDirty flags the box for redrawing. The first transition from clean to
// dirty also dirties the parent.
func (b *Box) MarkDirty() {
	if b.dirty.Swap(true) {
		return
	}
	if parent := b.dirtyParent.Load(); parent != nil {
		parent.MarkDirty()
	}
}

func (b *Box) MarkClean() {
	b.dirty.Store(false)
}

type dirtyParentSetter interface {
	setDirtyParent(parent *Box)
	clearDirtyParent(parent *Box)
}

func (b *Box) setDirtyParent(parent *Box) {
	if parent != nil && parent != b {
		b.dirtyParent.Store(parent)
	}
}

func (b *Box) clearDirtyParent(parent *Box) {
	if parent != nil {
		b.dirtyParent.CompareAndSwap(parent, nil)
	}
}

func bindDirtyParent(child Primitive, parent *Box) {
	if setter, ok := child.(dirtyParentSetter); ok && parent != nil {
		setter.setDirtyParent(parent)
	}
}

func unbindDirtyParent(child Primitive, parent *Box) {
	if setter, ok := child.(dirtyParentSetter); ok && parent != nil {
		setter.clearDirtyParent(parent)
	}
}

func (b *Box) InputHandler(event *tcell.EventKey) Command {
	return nil
}

// MouseHandler asks for the focus on a left press inside the box.
func (b *Box) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	if action == MouseLeftDown && b.InRect(event.Position()) {
		return nil, SetFocusCommand{Target: b}
	}
	return nil, nil
}

func (b *Box) SetBackgroundColor(color tcell.Color) *Box {
	if b.backgroundColor != color {
		b.backgroundColor = color
		b.borderStyle = b.borderStyle.Background(color)
		b.titleStyle = b.titleStyle.Background(color)
		b.MarkDirty()
	}
	return b
}

func (b *Box) GetBackgroundColor() tcell.Color {
	return b.backgroundColor
}

func (b *Box) SetDontClear(dontClear bool) *Box {
	if b.dontClear != dontClear {
		b.dontClear = dontClear
		b.MarkDirty()
	}
	return b
}

// SetBorders selects the sides to draw.
func (b *Box) SetBorders(borders Borders) *Box {
	if b.borders != borders {
		b.borders = borders
		b.innerX = -1
		b.MarkDirty()
	}
	return b
}

// SetBorderSet sets the glyphs of the border drawn without focus.
func (b *Box) SetBorderSet(set BorderSet) *Box {
	if b.borderSet != set {
		b.borderSet = set
		b.MarkDirty()
	}
	return b
}

// SetFocusBorderSet sets the glyphs of the border drawn while the box, or
// one of its children, has the focus.
func (b *Box) SetFocusBorderSet(set BorderSet) *Box {
	if b.focusBorderSet != set {
		b.focusBorderSet = set
		b.MarkDirty()
	}
	return b
}

func (b *Box) SetBorderStyle(style tcell.Style) *Box {
	if b.borderStyle != style {
		b.borderStyle = style
		b.MarkDirty()
	}
	return b
}

// SetTitle sets the text drawn over the top border. A title reserves the
// top row even without borders.
func (b *Box) SetTitle(title string) *Box {
	if b.title != title {
		b.title = title
		b.innerX = -1
		b.MarkDirty()
	}
	return b
}

func (b *Box) SetTitleAlignment(alignment Alignment) *Box {
	if b.titleAlignment != alignment {
		b.titleAlignment = alignment
		b.MarkDirty()
	}
	return b
}

func (b *Box) Draw(screen tcell.Screen) {
	b.DrawForSubclass(screen, b)
}

// DrawForSubclass draws the background, border and title for p, the
// primitive embedding b. p decides the focus state of the border.
func (b *Box) DrawForSubclass(screen tcell.Screen, p Primitive) {
	if b.width <= 0 || b.height <= 0 {
		return
	}
	if !b.dontClear {
		background := tcell.StyleDefault.Background(b.backgroundColor)
		for y := b.y; y < b.y+b.height; y++ {
			for x := b.x; x < b.x+b.width; x++ {
				screen.Put(x, y, " ", background)
			}
		}
	}

	if b.borders != BordersNone && b.width >= 2 && b.height >= 2 {
		set := b.borderSet
		if p.HasFocus() {
			set = b.focusBorderSet
		}
		b.drawBorders(screen, set)
	}
	if b.title != "" && b.width >= 4 {
		b.drawTitle(screen)
	}

	b.innerX = -1
	b.innerX, b.innerY, b.innerWidth, b.innerHeight = b.GetInnerRect()
}

func (b *Box) drawBorders(screen tcell.Screen, set BorderSet) {
	right, bottom := b.x+b.width-1, b.y+b.height-1
	for x := b.x + 1; x < right; x++ {
		if b.borders.Has(BordersTop) {
			screen.Put(x, b.y, set.Top, b.borderStyle)
		}
		if b.borders.Has(BordersBottom) {
			screen.Put(x, bottom, set.Bottom, b.borderStyle)
		}
	}
	for y := b.y + 1; y < bottom; y++ {
		if b.borders.Has(BordersLeft) {
			screen.Put(b.x, y, set.Left, b.borderStyle)
		}
		if b.borders.Has(BordersRight) {
			screen.Put(right, y, set.Right, b.borderStyle)
		}
	}

	corners := []struct {
		sides Borders
		x, y  int
		glyph string
	}{
		{BordersTop | BordersLeft, b.x, b.y, set.TopLeft},
		{BordersTop | BordersRight, right, b.y, set.TopRight},
		{BordersBottom | BordersLeft, b.x, bottom, set.BottomLeft},
		{BordersBottom | BordersRight, right, bottom, set.BottomRight},
	}
	for _, corner := range corners {
		if b.borders&corner.sides == corner.sides {
			screen.Put(corner.x, corner.y, corner.glyph, b.borderStyle)
		}
	}
}

// drawTitle prints the title between the corners, ending it with an
// ellipsis when it does not fit.
func (b *Box) drawTitle(screen tcell.Screen) {
	space := b.width - 2
	title := b.title
	if StringWidth(title) > space {
		title, _ = truncate(title, space-1)
		title += SemigraphicsHorizontalEllipsis
	}
	PrintWithStyle(screen, title, b.x+1, b.y, space, b.titleAlignment, b.titleStyle)
}

// Focus marks the box focused. Containers override it to delegate.
func (b *Box) Focus(delegate func(p Primitive)) {
	if !b.hasFocus {
		b.hasFocus = true
		b.MarkDirty()
	}
}

func (b *Box) Blur() {
	if b.hasFocus {
		b.hasFocus = false
		b.MarkDirty()
	}
}

func (b *Box) HasFocus() bool {
	return b.hasFocus
}

var _ Primitive = &Box{}
