package main

import (
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v3"
	"github.com/xqrs/tview-listbox"
	"github.com/xqrs/tview-listbox/help"
	"github.com/xqrs/tview-listbox/keybind"
	"github.com/xqrs/tview-listbox/layers"
)

type entry struct {
	ID      int
	Title   string
	Section bool
}

func renderEntry(e entry) string {
	if e.Section {
		return fmt.Sprintf("── %s ──", e.Title)
	}
	return fmt.Sprintf("%5d  %s", e.ID, e.Title)
}

// generateEntries returns n entries with a section header every 25 rows.
func generateEntries(first, n int) []entry {
	entries := make([]entry, 0, n)
	for id := first; id < first+n; id++ {
		if id%25 == 0 {
			entries = append(entries, entry{ID: id, Title: fmt.Sprintf("items %d to %d", id, id+24), Section: true})
			continue
		}
		entries = append(entries, entry{ID: id, Title: fmt.Sprintf("item number %d", id)})
	}
	return entries
}

type demoKeyMap struct {
	list tview.ListBoxKeyMap

	Add    keybind.Keybind
	Delete keybind.Keybind
	Reset  keybind.Keybind
	Help   keybind.Keybind
	Close  keybind.Keybind
	Quit   keybind.Keybind
}

func newDemoKeyMap(list tview.ListBoxKeyMap) demoKeyMap {
	return demoKeyMap{
		list:   list,
		Add:    keybind.NewKeybind(keybind.WithKeys("a"), keybind.WithHelp("a", "add")),
		Delete: keybind.NewKeybind(keybind.WithKeys("d", "delete"), keybind.WithHelp("d", "delete selected")),
		Reset:  keybind.NewKeybind(keybind.WithKeys("r"), keybind.WithHelp("r", "reset")),
		Help:   keybind.NewKeybind(keybind.WithKeys("?"), keybind.WithHelp("?", "help")),
		Close:  keybind.NewKeybind(keybind.WithKeys("esc"), keybind.WithHelp("esc", "close help")),
		Quit:   keybind.NewKeybind(keybind.WithKeys("q", "ctrl+c"), keybind.WithHelp("q", "quit")),
	}
}

func (k demoKeyMap) ShortHelp() []keybind.Keybind {
	return append(k.list.ShortHelp(), k.Help, k.Quit)
}

func (k demoKeyMap) FullHelp() [][]keybind.Keybind {
	return append(k.list.FullHelp(), []keybind.Keybind{k.Add, k.Delete, k.Reset, k.Close, k.Quit})
}

var consumed = tview.BatchCommand{tview.ConsumeEventCommand{}, tview.RedrawCommand{}}

// listPane stacks the list box above the one-line help bar.
type listPane struct {
	*tview.Box

	list *tview.ListBox[entry]
	bar  *help.Help
}

func newListPane(list *tview.ListBox[entry], keys demoKeyMap) *listPane {
	return &listPane{
		Box:  tview.NewBox(),
		list: list,
		bar:  help.New().SetKeyMap(keys),
	}
}

func (p *listPane) Draw(screen tcell.Screen) {
	p.DrawForSubclass(screen, p)
	x, y, width, height := p.GetInnerRect()
	barHeight := min(p.bar.Height(width), height)
	p.list.SetRect(x, y, width, height-barHeight)
	p.bar.SetRect(x, y+height-barHeight, width, barHeight)
	p.list.Draw(screen)
	p.bar.Draw(screen)
}

func (p *listPane) IsDirty() bool {
	return p.Box.IsDirty() || p.list.IsDirty() || p.bar.IsDirty()
}

func (p *listPane) MarkClean() {
	p.Box.MarkClean()
	p.list.MarkClean()
	p.bar.MarkClean()
}

func (p *listPane) HasFocus() bool {
	return p.list.HasFocus()
}

func (p *listPane) Focus(delegate func(tview.Primitive)) {
	if delegate != nil {
		delegate(p.list)
	}
}

func (p *listPane) InputHandler(event *tcell.EventKey) tview.Command {
	return p.list.InputHandler(event)
}

func (p *listPane) MouseHandler(action tview.MouseAction, event *tcell.EventMouse) (tview.Primitive, tview.Command) {
	return p.list.MouseHandler(action, event)
}

// helpOverlay shows every binding in a frame centered over the list. Any
// press or the help and close keys dismiss it.
type helpOverlay struct {
	*tview.Box

	frame *tview.Box
	help  *help.Help
	keys  demoKeyMap
	close func()
}

func newHelpOverlay(keys demoKeyMap, close func()) *helpOverlay {
	o := &helpOverlay{
		Box:   tview.NewBox(),
		frame: tview.NewBox(),
		help:  help.New().SetKeyMap(keys).SetShowAll(true),
		keys:  keys,
		close: close,
	}
	o.SetDontClear(true)
	o.frame.SetBackgroundColor(tview.Styles.PrimitiveBackgroundColor).
		SetBorders(tview.BordersAll).
		SetBorderSet(tview.BorderSetRound()).
		SetFocusBorderSet(tview.BorderSetRound()).
		SetBorderStyle(tcell.StyleDefault.Foreground(tview.Styles.SecondaryTextColor).Background(tview.Styles.PrimitiveBackgroundColor)).
		SetTitle(" keys ").
		SetTitleAlignment(tview.AlignmentLeft)
	return o
}

const maxHelpWidth = 96

func (o *helpOverlay) Draw(screen tcell.Screen) {
	o.DrawForSubclass(screen, o)
	x, y, width, height := o.GetInnerRect()
	frameWidth := min(width, maxHelpWidth)
	frameHeight := min(height, o.help.Height(frameWidth-2)+2)
	o.frame.SetRect(x+(width-frameWidth)/2, y+(height-frameHeight)/2, frameWidth, frameHeight)
	o.frame.DrawForSubclass(screen, o)
	o.help.SetRect(o.frame.GetInnerRect())
	o.help.Draw(screen)
}

func (o *helpOverlay) IsDirty() bool {
	return o.Box.IsDirty() || o.frame.IsDirty() || o.help.IsDirty()
}

func (o *helpOverlay) MarkClean() {
	o.Box.MarkClean()
	o.frame.MarkClean()
	o.help.MarkClean()
}

func (o *helpOverlay) InputHandler(event *tcell.EventKey) tview.Command {
	if keybind.Matches(event, o.keys.Help, o.keys.Close) {
		o.close()
		return consumed
	}
	return tview.ConsumeEventCommand{}
}

func (o *helpOverlay) MouseHandler(action tview.MouseAction, event *tcell.EventMouse) (tview.Primitive, tview.Command) {
	if action == tview.MouseLeftDown {
		o.close()
		return nil, consumed
	}
	return nil, tview.ConsumeEventCommand{}
}

const (
	listLayer = "list"
	helpLayer = "help"
)

// demoView layers the help overlay over the list pane and handles the
// demo's own keys.
type demoView struct {
	*layers.Layers

	list    *tview.ListBox[entry]
	items   *tview.Collection[entry]
	pane    *listPane
	overlay *helpOverlay
	keys    demoKeyMap
	total   int
	count   int
	logger  *slog.Logger
}

func newDemoView(list *tview.ListBox[entry], items *tview.Collection[entry], logger *slog.Logger) *demoView {
	v := &demoView{
		Layers: layers.New(),
		list:   list,
		items:  items,
		keys:   newDemoKeyMap(list.KeyMap()),
		total:  items.Len(),
		count:  -1,
		logger: logger,
	}
	v.pane = newListPane(list, v.keys)
	v.overlay = newHelpOverlay(v.keys, func() {
		v.HideLayer(helpLayer)
	})
	v.SetBackgroundLayerStyle(tcell.StyleDefault.Dim(true))
	v.AddLayer(v.pane, layers.WithName(listLayer), layers.WithResize(true))
	v.AddLayer(v.overlay,
		layers.WithName(helpLayer),
		layers.WithResize(true),
		layers.WithVisible(false),
		layers.WithOverlay(),
	)
	return v
}

func (v *demoView) InputHandler(event *tcell.EventKey) tview.Command {
	switch {
	case keybind.Matches(event, v.keys.Quit):
		return tview.QuitCommand{}
	case v.Visible(helpLayer):
		return v.Layers.InputHandler(event)
	case keybind.Matches(event, v.keys.Help):
		v.ShowLayer(helpLayer)
		return consumed
	case keybind.Matches(event, v.keys.Add):
		v.items.Add(generateEntries(v.total, 1)...)
		v.total++
		return v.withTitle(consumed)
	case keybind.Matches(event, v.keys.Delete):
		v.deleteSelected()
		return v.withTitle(consumed)
	case keybind.Matches(event, v.keys.Reset):
		v.items.Reset(generateEntries(0, v.total))
		return v.withTitle(consumed)
	}
	return v.withTitle(v.Layers.InputHandler(event))
}

func (v *demoView) MouseHandler(action tview.MouseAction, event *tcell.EventMouse) (tview.Primitive, tview.Command) {
	capture, cmd := v.Layers.MouseHandler(action, event)
	return capture, v.withTitle(cmd)
}

func (v *demoView) deleteSelected() {
	indices := v.list.SelectedIndices()
	for i := len(indices) - 1; i >= 0; i-- {
		v.items.RemoveAt(indices[i])
	}
	v.logger.Info("deleted items", "count", len(indices), "remaining", v.items.Len())
}

// withTitle appends a terminal title update when the selection count
// changed.
func (v *demoView) withTitle(cmd tview.Command) tview.Command {
	count := len(v.list.SelectedIndices())
	if count == v.count {
		return cmd
	}
	v.count = count
	title := tview.SetTitleCommand(fmt.Sprintf("listbox-demo: %d of %d selected", count, v.items.Len()))
	return tview.AppendCommand(cmd, title)
}
