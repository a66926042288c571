// Package layers stacks primitives on top of each other. An overlay layer
// dims the layers behind it and keeps input away from them, which is how
// modal views such as a help screen are shown over a list.
package layers

import (
	"slices"

	"github.com/gdamore/tcell/v3"
	"github.com/xqrs/tview-listbox"
)

type layer struct {
	name    string
	item    tview.Primitive
	resize  bool
	visible bool
	enabled bool
	overlay bool
}

// Layers draws its visible layers from back to front. The focus goes to the
// front-most visible enabled layer.
type Layers struct {
	*tview.Box

	layers []*layer
	// Applied to everything drawn behind the front overlay.
	backgroundStyle tcell.Style

	// Kept from Focus so that showing or hiding a layer can move the focus.
	setFocus func(p tview.Primitive)
}

// Option configures a layer on AddLayer.
type Option func(*layer)

func WithName(name string) Option {
	return func(l *layer) {
		l.name = name
	}
}

// WithResize makes the layer fill the inner rect of the container.
func WithResize(resize bool) Option {
	return func(l *layer) {
		l.resize = resize
	}
}

func WithVisible(visible bool) Option {
	return func(l *layer) {
		l.visible = visible
	}
}

// WithEnabled sets whether the layer takes the focus and input.
func WithEnabled(enabled bool) Option {
	return func(l *layer) {
		l.enabled = enabled
	}
}

// WithOverlay dims the layers behind this one and blocks their input while
// it is visible.
func WithOverlay() Option {
	return func(l *layer) {
		l.overlay = true
	}
}

func New() *Layers {
	return &Layers{Box: tview.NewBox()}
}

// AddLayer puts item in front of the existing layers. A layer with the same
// name is replaced.
func (l *Layers) AddLayer(item tview.Primitive, opts ...Option) *Layers {
	added := &layer{item: item, visible: true, enabled: true}
	for _, opt := range opts {
		opt(added)
	}
	if added.name != "" {
		l.layers = slices.DeleteFunc(l.layers, func(existing *layer) bool {
			return existing.name == added.name
		})
	}
	l.layers = append(l.layers, added)
	l.changed()
	return l
}

// RemoveLayer removes the layer with the given name.
func (l *Layers) RemoveLayer(name string) *Layers {
	before := len(l.layers)
	l.layers = slices.DeleteFunc(l.layers, func(existing *layer) bool {
		return existing.name == name
	})
	if len(l.layers) != before {
		l.changed()
	}
	return l
}

func (l *Layers) HasLayer(name string) bool {
	return l.find(name) != nil
}

// LayerNames returns the layer names from front to back.
func (l *Layers) LayerNames(visibleOnly bool) []string {
	var names []string
	for _, ly := range slices.Backward(l.layers) {
		if !visibleOnly || ly.visible {
			names = append(names, ly.name)
		}
	}
	return names
}

// Visible reports whether the named layer exists and is shown.
func (l *Layers) Visible(name string) bool {
	ly := l.find(name)
	return ly != nil && ly.visible
}

func (l *Layers) ShowLayer(name string) *Layers {
	return l.setVisible(name, true)
}

func (l *Layers) HideLayer(name string) *Layers {
	return l.setVisible(name, false)
}

func (l *Layers) setVisible(name string, visible bool) *Layers {
	if ly := l.find(name); ly != nil && ly.visible != visible {
		ly.visible = visible
		l.changed()
	}
	return l
}

// SetBackgroundLayerStyle sets the style merged into everything drawn
// behind a visible overlay. Unset colors keep the original ones.
func (l *Layers) SetBackgroundLayerStyle(style tcell.Style) *Layers {
	if l.backgroundStyle != style {
		l.backgroundStyle = style
		l.MarkDirty()
	}
	return l
}

func (l *Layers) find(name string) *layer {
	for _, ly := range l.layers {
		if ly.name == name {
			return ly
		}
	}
	return nil
}

// changed redraws and, while the layers hold the focus, hands it to the new
// front layer.
func (l *Layers) changed() {
	l.MarkDirty()
	if l.setFocus != nil && l.HasFocus() {
		if front := l.front(); front != nil && !front.item.HasFocus() {
			l.setFocus(front.item)
		}
	}
}

func (l *Layers) front() *layer {
	for _, ly := range slices.Backward(l.layers) {
		if ly.visible && ly.enabled {
			return ly
		}
	}
	return nil
}

// overlayIndex returns the index of the front-most active overlay, or -1.
func (l *Layers) overlayIndex() int {
	for i, ly := range slices.Backward(l.layers) {
		if ly.visible && ly.enabled && ly.overlay {
			return i
		}
	}
	return -1
}

func (l *Layers) IsDirty() bool {
	if l.Box.IsDirty() {
		return true
	}
	return slices.ContainsFunc(l.layers, func(ly *layer) bool {
		return ly.visible && ly.item.IsDirty()
	})
}

func (l *Layers) MarkClean() {
	l.Box.MarkClean()
	for _, ly := range l.layers {
		ly.item.MarkClean()
	}
}

func (l *Layers) HasFocus() bool {
	for _, ly := range l.layers {
		if ly.enabled && ly.item.HasFocus() {
			return true
		}
	}
	return l.Box.HasFocus()
}

// Focus passes the focus on to the front layer. Without a delegate the
// layers cannot be focused.
func (l *Layers) Focus(delegate func(p tview.Primitive)) {
	if delegate == nil {
		return
	}
	l.setFocus = delegate
	if front := l.front(); front != nil {
		delegate(front.item)
		return
	}
	l.Box.Focus(delegate)
}

func (l *Layers) Draw(screen tcell.Screen) {
	l.DrawForSubclass(screen, l)

	overlay := l.overlayIndex()
	dimmed := &overlayScreen{Screen: screen, overlay: l.backgroundStyle}
	x, y, width, height := l.GetInnerRect()
	for i, ly := range l.layers {
		if !ly.visible {
			continue
		}
		if ly.resize {
			ly.item.SetRect(x, y, width, height)
		}
		target := screen
		if i < overlay {
			target = dimmed
		}
		ly.item.Draw(target)
	}
}

// InputHandler sends the key to the enabled layer holding the focus.
func (l *Layers) InputHandler(event *tcell.EventKey) tview.Command {
	for _, ly := range slices.Backward(l.layers) {
		if ly.enabled && ly.item.HasFocus() {
			return ly.item.InputHandler(event)
		}
	}
	return nil
}

// MouseHandler offers the action to the visible layers from front to back
// until one consumes it. The front overlay is the last layer asked and
// consumes whatever it does not handle. Commands of layers that did not
// consume the action are kept.
func (l *Layers) MouseHandler(action tview.MouseAction, event *tcell.EventMouse) (tview.Primitive, tview.Command) {
	if !l.InRect(event.Position()) {
		return nil, nil
	}
	overlay := l.overlayIndex()
	var pending tview.Command
	for i, ly := range slices.Backward(l.layers) {
		if i < overlay {
			break
		}
		if !ly.visible || !ly.enabled {
			continue
		}
		capture, cmd := ly.item.MouseHandler(action, event)
		pending = tview.AppendCommand(pending, cmd)
		if capture != nil || tview.Consumed(cmd) {
			return capture, pending
		}
	}
	if overlay >= 0 {
		return nil, tview.AppendCommand(pending, tview.ConsumeEventCommand{})
	}
	return nil, pending
}

var _ tview.Primitive = &Layers{}

// overlayScreen merges a style into every cell drawn through it.
type overlayScreen struct {
	tcell.Screen
	overlay tcell.Style
}

func (s *overlayScreen) SetContent(x, y int, primary rune, combining []rune, style tcell.Style) {
	s.Screen.SetContent(x, y, primary, combining, mergeStyle(style, s.overlay))
}

func (s *overlayScreen) Put(x, y int, str string, style tcell.Style) (string, int) {
	return s.Screen.Put(x, y, str, mergeStyle(style, s.overlay))
}

func (s *overlayScreen) PutStr(x, y int, str string) {
	s.Screen.PutStrStyled(x, y, str, mergeStyle(tcell.StyleDefault, s.overlay))
}

func (s *overlayScreen) PutStrStyled(x, y int, str string, style tcell.Style) {
	s.Screen.PutStrStyled(x, y, str, mergeStyle(style, s.overlay))
}

// mergeStyle sets the colors overlay defines and adds its attributes. It
// never removes an attribute from base.
func mergeStyle(base, overlay tcell.Style) tcell.Style {
	if fg := overlay.GetForeground(); fg != tcell.ColorDefault {
		base = base.Foreground(fg)
	}
	if bg := overlay.GetBackground(); bg != tcell.ColorDefault {
		base = base.Background(bg)
	}
	if overlay.HasBold() {
		base = base.Bold(true)
	}
	if overlay.HasDim() {
		base = base.Dim(true)
	}
	if overlay.HasItalic() {
		base = base.Italic(true)
	}
	if overlay.HasReverse() {
		base = base.Reverse(true)
	}
	if overlay.HasUnderline() {
		base = base.Underline(true)
	}
	return base
}
