package tview

import (
	"slices"

	"github.com/gdamore/tcell/v3"
)

// PanelItem is a container the panel can measure for a given width.
type PanelItem interface {
	Primitive
	Height(width int) int
}

// ContainerHost supplies containers to a [VirtualizingStackPanel]. The panel
// only asks for the indices it is about to lay out and hands back every
// container that dropped out of view.
type ContainerHost interface {
	// ItemCount returns the number of items.
	ItemCount() int
	// Realize returns the container for index, or nil when index is out of
	// range.
	Realize(index int) PanelItem
	// Recycle releases a container that is no longer displayed.
	Recycle(item PanelItem)
}

// ScrollBarVisibility controls when the panel shows its scroll bar.
type ScrollBarVisibility uint8

const (
	ScrollBarAuto ScrollBarVisibility = iota
	ScrollBarNever
	ScrollBarAlways
)

// VirtualizingStackPanel stacks containers vertically and only realizes the
// ones inside the viewport.
type VirtualizingStackPanel struct {
	*Box

	host ContainerHost
	gap  int

	scroll panelState

	scrollBar           *ScrollBar
	scrollBarVisibility ScrollBarVisibility
	scrollBarShown      bool

	// Containers handed out by the host during the current layout pass.
	touched []PanelItem

	lastDraw []panelDrawnItem
	lastRect rect
}

type panelState struct {
	// Index of the top item in the viewport.
	top int
	// Line offset into the top item.
	offset int
	// Pending scroll delta in lines to apply on the next draw.
	pending int
	// Index to bring into view on the next draw, -1 if none.
	target int
}

type panelDrawnItem struct {
	index  int
	item   PanelItem
	row    int
	height int
}

// NewVirtualizingStackPanel returns an empty panel.
func NewVirtualizingStackPanel() *VirtualizingStackPanel {
	p := &VirtualizingStackPanel{
		Box:       NewBox(),
		scroll:    panelState{target: -1},
		scrollBar: NewScrollBar(),
	}
	p.scrollBar.SetScrollFunc(func(offset int) {
		p.scroll.top, p.scroll.offset, p.scroll.target = offset, 0, -1
		p.MarkDirty()
	})
	return p
}

// SetHost sets the container host and resets the scroll state.
func (p *VirtualizingStackPanel) SetHost(host ContainerHost) *VirtualizingStackPanel {
	p.recycleAll()
	p.host = host
	p.scroll = panelState{target: -1}
	p.MarkDirty()
	return p
}

// SetGap sets the number of blank rows between items.
func (p *VirtualizingStackPanel) SetGap(gap int) *VirtualizingStackPanel {
	gap = max(gap, 0)
	if p.gap != gap {
		p.gap = gap
		p.MarkDirty()
	}
	return p
}

// SetScrollBarVisibility sets when the scroll bar is drawn.
func (p *VirtualizingStackPanel) SetScrollBarVisibility(visibility ScrollBarVisibility) *VirtualizingStackPanel {
	if p.scrollBarVisibility != visibility {
		p.scrollBarVisibility = visibility
		p.MarkDirty()
	}
	return p
}

// ScrollBar returns the panel's scroll bar for styling.
func (p *VirtualizingStackPanel) ScrollBar() *ScrollBar {
	return p.scrollBar
}

// ScrollTo brings the item at index fully into view on the next draw.
func (p *VirtualizingStackPanel) ScrollTo(index int) *VirtualizingStackPanel {
	if index < 0 {
		return p
	}
	if index < p.scroll.top || (index == p.scroll.top && p.scroll.offset != 0) {
		p.scroll.top = index
		p.scroll.offset = 0
	}
	p.scroll.target = index
	p.MarkDirty()
	return p
}

// ScrollToStart resets the scroll position to the first item.
func (p *VirtualizingStackPanel) ScrollToStart() *VirtualizingStackPanel {
	p.scroll = panelState{target: -1}
	p.MarkDirty()
	return p
}

// ScrollLines scrolls by the given number of lines. Positive values scroll
// down.
func (p *VirtualizingStackPanel) ScrollLines(lines int) *VirtualizingStackPanel {
	if lines != 0 {
		p.scroll.pending += lines
		p.scroll.target = -1
		p.MarkDirty()
	}
	return p
}

// TopIndex returns the index of the first visible item.
func (p *VirtualizingStackPanel) TopIndex() int {
	return p.scroll.top
}

// VisibleRange returns the first and last index drawn in the last layout
// pass, or -1, -1.
func (p *VirtualizingStackPanel) VisibleRange() (first, last int) {
	if len(p.lastDraw) == 0 {
		return -1, -1
	}
	return p.lastDraw[0].index, p.lastDraw[len(p.lastDraw)-1].index
}

// PageSize returns the number of items fully visible in the last layout
// pass, at least 1.
func (p *VirtualizingStackPanel) PageSize() int {
	count := 0
	for _, child := range p.lastDraw {
		if child.row >= 0 && child.row+child.height <= p.lastRect.height {
			count++
		}
	}
	return max(count, 1)
}

// ContainerAt returns the container drawn at the given screen position.
// Gap rows belong to the item above them.
func (p *VirtualizingStackPanel) ContainerAt(x, y int) PanelItem {
	if len(p.lastDraw) == 0 {
		return nil
	}
	if !p.lastRect.contains(x, y) {
		return nil
	}
	row := y - p.lastRect.y
	for _, child := range p.lastDraw {
		if row >= child.row && row < child.row+child.height+p.gap {
			return child.item
		}
	}
	return nil
}

// Containers returns the containers drawn in the last layout pass, top to
// bottom.
func (p *VirtualizingStackPanel) Containers() []PanelItem {
	items := make([]PanelItem, len(p.lastDraw))
	for i, child := range p.lastDraw {
		items[i] = child.item
	}
	return items
}

// Reset forgets every drawn container without handing it back to the host.
// Hosts call it after they discarded their containers themselves.
func (p *VirtualizingStackPanel) Reset() *VirtualizingStackPanel {
	p.setLastDraw(nil)
	p.scroll = panelState{target: -1}
	p.MarkDirty()
	return p
}

func (p *VirtualizingStackPanel) setLastDraw(children []panelDrawnItem) {
	for _, child := range p.lastDraw {
		unbindDirtyParent(child.item, p.Box)
	}
	p.lastDraw = children
	for _, child := range p.lastDraw {
		bindDirtyParent(child.item, p.Box)
	}
}

func (p *VirtualizingStackPanel) recycleAll() {
	if p.host != nil {
		for _, child := range p.lastDraw {
			p.host.Recycle(child.item)
		}
	}
	p.setLastDraw(nil)
}

// IsDirty returns whether this primitive or one of its visible children
// needs a redraw.
func (p *VirtualizingStackPanel) IsDirty() bool {
	if p.Box.IsDirty() {
		return true
	}
	for _, child := range p.lastDraw {
		if child.item.IsDirty() {
			return true
		}
	}
	return false
}

// MarkClean marks this primitive and visible children as clean.
func (p *VirtualizingStackPanel) MarkClean() {
	p.Box.MarkClean()
	for _, child := range p.lastDraw {
		child.item.MarkClean()
	}
}

func (p *VirtualizingStackPanel) realize(index int) PanelItem {
	if index < 0 {
		return nil
	}
	item := p.host.Realize(index)
	if item != nil {
		p.touched = append(p.touched, item)
	}
	return item
}

func (p *VirtualizingStackPanel) itemHeight(item PanelItem, width int) int {
	return max(item.Height(width), 1)
}

// Draw lays out and draws the visible containers.
func (p *VirtualizingStackPanel) Draw(screen tcell.Screen) {
	p.DrawForSubclass(screen, p)

	x, y, width, height := p.GetInnerRect()
	if width <= 0 || height <= 0 || p.host == nil || p.host.ItemCount() == 0 {
		p.recycleAll()
		p.scroll = panelState{target: -1}
		p.scrollBarShown = false
		p.lastRect = rect{x, y, width, height}
		return
	}

	state := p.scroll
	usableWidth := width
	if p.scrollBarVisibility == ScrollBarAlways {
		usableWidth--
	}
	children := p.layout(usableWidth, height)
	if p.scrollBarVisibility == ScrollBarAuto && width > 1 && p.overflows(children, height) {
		// Lay out again without the scroll bar column.
		p.scroll = state
		usableWidth--
		children = p.layout(usableWidth, height)
	}

	drawn := make(map[PanelItem]struct{}, len(children))
	for _, child := range children {
		drawn[child.item] = struct{}{}
	}
	stale := append(slices.Clone(p.touched), p.Containers()...)
	p.touched = p.touched[:0]
	recycled := make(map[PanelItem]struct{})
	for _, item := range stale {
		if _, ok := drawn[item]; ok {
			continue
		}
		if _, ok := recycled[item]; ok {
			continue
		}
		recycled[item] = struct{}{}
		p.host.Recycle(item)
	}

	p.setLastDraw(children)
	p.lastRect = rect{x, y, usableWidth, height}

	clipped := &clippedScreen{Screen: screen, clip: p.lastRect}
	for _, child := range children {
		child.item.SetRect(x, y+child.row, usableWidth, child.height)
		child.item.Draw(clipped)
	}

	p.scrollBarShown = usableWidth < width
	if p.scrollBarShown {
		p.scrollBar.SetLengths(ScrollLengths{ContentLen: p.host.ItemCount(), ViewportLen: p.PageSize()})
		p.scrollBar.SetOffset(p.scroll.top)
		p.scrollBar.SetRect(x+width-1, y, 1, height)
		p.scrollBar.Draw(screen)
	}
}

// overflows reports whether the laid out children do not show every item.
func (p *VirtualizingStackPanel) overflows(children []panelDrawnItem, height int) bool {
	if len(children) == 0 {
		return false
	}
	first, last := children[0], children[len(children)-1]
	return first.index > 0 || first.row < 0 || last.index < p.host.ItemCount()-1 || last.row+last.height > height
}

// layout computes the rows of the visible children and updates the scroll
// state.
func (p *VirtualizingStackPanel) layout(width, height int) []panelDrawnItem {
	count := p.host.ItemCount()
	if p.scroll.top >= count {
		p.scroll.top, p.scroll.offset = count-1, 0
	}
	if target := p.scroll.target; target >= count {
		p.scroll.target = -1
	} else if target > p.scroll.top+height {
		// Each item spans at least one line, so the target cannot become
		// visible from the current top.
		p.scroll.top, p.scroll.offset = p.bottomAlign(target, width, height)
	}

	cursor := -(p.scroll.offset + p.scroll.pending)
	p.scroll.pending = 0
	if cursor > 0 && p.scroll.top == 0 {
		cursor = 0
		p.scroll.offset = 0
	}

	start := p.scroll.top
	children := make([]panelDrawnItem, 0, 16)
	if cursor > 0 {
		// Scrolled up past the top item: prepend items until the gap above
		// is filled.
		p.insertChildren(&children, width, cursor)
		if len(children) > 0 {
			last := children[len(children)-1]
			cursor = last.row + last.height + p.gap
		}
	}

	endReached := false
	for i := start; ; i++ {
		item := p.realize(i)
		if item == nil {
			endReached = true
			break
		}
		itemHeight := p.itemHeight(item, width)
		children = append(children, panelDrawnItem{index: i, item: item, row: cursor, height: itemHeight})
		cursor += itemHeight + p.gap

		if p.scroll.target >= 0 && i < p.scroll.target {
			continue
		}
		if cursor >= height {
			break
		}
	}
	if len(children) == 0 {
		p.scroll.top, p.scroll.offset = 0, 0
		return nil
	}

	// At the end, pull the content down so the last item sits at the bottom.
	if endReached {
		last := children[len(children)-1]
		if bottom := last.row + last.height; children[0].row < 0 && bottom < height {
			shiftRows(children, min(height-bottom, -children[0].row))
		}
	}

	// Make the target fully visible.
	if target := p.scroll.target; target >= 0 {
		for _, child := range children {
			if child.index != target {
				continue
			}
			if bottom := child.row + child.height; bottom > height {
				shiftRows(children, height-bottom)
			}
			if child.row < 0 {
				shiftRows(children, -child.row)
			}
			break
		}
		p.scroll.target = -1
	}

	// Keep only the children intersecting the viewport.
	visible := children[:0]
	for _, child := range children {
		if child.row+child.height > 0 && child.row < height {
			visible = append(visible, child)
		}
	}
	children = visible
	if len(children) == 0 {
		return nil
	}

	// The first partially visible item becomes the top anchor.
	for _, child := range children {
		if child.row <= 0 && child.row+child.height+p.gap > 0 {
			p.scroll.top = child.index
			p.scroll.offset = -child.row
			break
		}
	}
	if children[0].row > 0 {
		p.scroll.top, p.scroll.offset = children[0].index, 0
	}
	return children
}

func shiftRows(children []panelDrawnItem, delta int) {
	for i := range children {
		children[i].row += delta
	}
}

func (p *VirtualizingStackPanel) insertChildren(children *[]panelDrawnItem, width int, cursor int) {
	if p.scroll.top <= 0 {
		return
	}

	p.scroll.top--
	for cursor > 0 {
		cursor -= p.gap
		item := p.realize(p.scroll.top)
		if item == nil {
			break
		}
		height := p.itemHeight(item, width)
		cursor -= height
		entry := panelDrawnItem{index: p.scroll.top, item: item, row: cursor, height: height}
		*children = append([]panelDrawnItem{entry}, *children...)

		if p.scroll.top == 0 {
			break
		}
		p.scroll.top--
	}

	p.scroll.offset = cursor

	if p.scroll.top == 0 && cursor > 0 {
		// Reached the first item: restack from row 0.
		p.scroll.offset = 0
		row := 0
		for i := range *children {
			(*children)[i].row = row
			row += (*children)[i].height + p.gap
		}
	}
}

// bottomAlign returns the top index and offset which place the item at
// index on the last rows of the viewport.
func (p *VirtualizingStackPanel) bottomAlign(index, width, height int) (int, int) {
	total := 0
	for i := index; i >= 0; i-- {
		item := p.realize(i)
		if item == nil {
			break
		}
		if total > 0 {
			total += p.gap
		}
		itemHeight := p.itemHeight(item, width)
		if total+itemHeight >= height {
			return i, total + itemHeight - height
		}
		total += itemHeight
	}
	return 0, 0
}

// MouseHandler scrolls on wheel events and forwards presses on the scroll
// bar.
func (p *VirtualizingStackPanel) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	x, y := event.Position()
	if !p.InRect(x, y) {
		return nil, nil
	}
	switch action {
	case MouseScrollUp:
		p.ScrollLines(-3)
		return nil, BatchCommand{ConsumeEventCommand{}, RedrawCommand{}}
	case MouseScrollDown:
		p.ScrollLines(3)
		return nil, BatchCommand{ConsumeEventCommand{}, RedrawCommand{}}
	}
	if p.scrollBarShown && p.scrollBar.InRect(x, y) {
		return p.scrollBar.MouseHandler(action, event)
	}
	return nil, nil
}

var _ Primitive = &VirtualizingStackPanel{}
