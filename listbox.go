package tview

import (
	"log/slog"

	"github.com/gdamore/tcell/v3"
	"github.com/xqrs/tview-listbox/keybind"
)

// ObservableItemsSource is an items source that reports its mutations.
type ObservableItemsSource[T any] interface {
	ItemsSource[T]
	Observe(notify func(CollectionChange)) (cancel func())
}

// ListBoxDefaults is the table of default values a list box is constructed
// from. Options override individual entries.
type ListBoxDefaults[T any] struct {
	// Panel creates the items panel.
	Panel func() *VirtualizingStackPanel
	// SelectionMode is the initial selection mode.
	SelectionMode SelectionMode
	// Template renders items into their containers.
	Template ContentTemplate[T]
	// Identity maps items back to indices.
	Identity Identity[T]
	// KeyMap binds keys to focus and selection actions.
	KeyMap ListBoxKeyMap
}

// NewListBoxDefaults returns a virtualizing stack panel, single selection,
// the fmt.Sprint template, reference identity and the default key map.
func NewListBoxDefaults[T any]() ListBoxDefaults[T] {
	return ListBoxDefaults[T]{
		Panel:         NewVirtualizingStackPanel,
		SelectionMode: SelectionSingle,
		Template:      DefaultTemplate[T](),
		Identity:      ReferenceIdentity[T](),
		KeyMap:        DefaultListBoxKeyMap(),
	}
}

type listBoxConfig[T any] struct {
	ListBoxDefaults[T]
	variant    Variant
	logger     *slog.Logger
	selectable func(item T) bool
}

// ListBoxOption configures a list box at construction.
type ListBoxOption[T any] func(*listBoxConfig[T])

// WithDefaults replaces the whole defaults table.
func WithDefaults[T any](defaults ListBoxDefaults[T]) ListBoxOption[T] {
	return func(c *listBoxConfig[T]) {
		c.ListBoxDefaults = defaults
	}
}

// WithVariant selects the behavior variant.
func WithVariant[T any](variant Variant) ListBoxOption[T] {
	return func(c *listBoxConfig[T]) {
		c.variant = variant
	}
}

// WithPanel sets the panel factory.
func WithPanel[T any](panel func() *VirtualizingStackPanel) ListBoxOption[T] {
	return func(c *listBoxConfig[T]) {
		c.Panel = panel
	}
}

// WithSelectionMode sets the initial selection mode.
func WithSelectionMode[T any](mode SelectionMode) ListBoxOption[T] {
	return func(c *listBoxConfig[T]) {
		c.SelectionMode = mode
	}
}

// WithTemplate sets the content template.
func WithTemplate[T any](template ContentTemplate[T]) ListBoxOption[T] {
	return func(c *listBoxConfig[T]) {
		c.Template = template
	}
}

// WithIdentity sets how items are compared.
func WithIdentity[T any](identity Identity[T]) ListBoxOption[T] {
	return func(c *listBoxConfig[T]) {
		c.Identity = identity
	}
}

// WithKeyMap sets the key bindings.
func WithKeyMap[T any](keyMap ListBoxKeyMap) ListBoxOption[T] {
	return func(c *listBoxConfig[T]) {
		c.KeyMap = keyMap
	}
}

// WithLogger sets the logger for debug records.
func WithLogger[T any](logger *slog.Logger) ListBoxOption[T] {
	return func(c *listBoxConfig[T]) {
		c.logger = logger
	}
}

// WithSelectable sets a predicate for items that may be selected. Presses
// on other items focus them without changing the selection.
func WithSelectable[T any](selectable func(item T) bool) ListBoxOption[T] {
	return func(c *listBoxConfig[T]) {
		c.selectable = selectable
	}
}

// ListBox displays the items of a source in a virtualizing panel and lets the
// user select them with the pointer and the keyboard.
//
// A ListBox is driven by the application's event goroutine. Mutate its
// items source from there too (see [Application.QueueUpdate]).
type ListBox[T any] struct {
	*Box

	variant Variant
	hooks   variantHooks[T]

	source        ItemsSource[T]
	cancelObserve func()
	selectable    func(item T) bool

	generator *ItemContainerGenerator[T]
	panel     *VirtualizingStackPanel
	selection *Selection[T]

	keyMap ListBoxKeyMap

	// Index of the item with the keyboard focus, -1 if none.
	focused int

	selectionChanged func(change SelectionChange)

	logger *slog.Logger
}

// NewListBox returns an empty list box built from [NewListBoxDefaults] and
// options.
func NewListBox[T any](options ...ListBoxOption[T]) *ListBox[T] {
	config := listBoxConfig[T]{
		ListBoxDefaults: NewListBoxDefaults[T](),
		logger:          slog.New(slog.DiscardHandler),
	}
	for _, option := range options {
		option(&config)
	}
	fallback := NewListBoxDefaults[T]()
	if config.Panel == nil {
		config.Panel = fallback.Panel
	}
	if config.Template == nil {
		config.Template = fallback.Template
	}
	if config.Identity == nil {
		config.Identity = fallback.Identity
	}
	if config.logger == nil {
		config.logger = slog.New(slog.DiscardHandler)
	}

	l := &ListBox[T]{
		Box:        NewBox(),
		variant:    config.variant,
		hooks:      hooksFor[T](config.variant),
		source:     NewCollection[T](),
		selectable: config.selectable,
		panel:      config.Panel(),
		keyMap:     config.KeyMap,
		focused:    -1,
		logger:     config.logger.With("component", "listbox", "variant", config.variant.String()),
	}
	l.generator = NewItemContainerGenerator(l.source, config.Template).SetLogger(l.logger)
	l.selection = NewSelection(l.source, l.hooks.mode(config.SelectionMode), config.Identity)
	l.selection.SetChangedFunc(l.onSelectionChanged)
	l.panel.SetHost(l)
	return l
}

// NewTabStrip returns a list box of the tab strip variant: one item is
// always selected and modifiers are ignored.
func NewTabStrip[T any](options ...ListBoxOption[T]) *ListBox[T] {
	return NewListBox(append([]ListBoxOption[T]{WithVariant[T](VariantTabStrip)}, options...)...)
}

// Variant returns the behavior variant.
func (l *ListBox[T]) Variant() Variant {
	return l.variant
}

// SetItems replaces the items source with a new collection holding items.
func (l *ListBox[T]) SetItems(items []T) *ListBox[T] {
	return l.SetItemsSource(NewCollection(items...))
}

// SetItemsSource binds the list box to source. The selection is cleared
// and all containers are recycled. Observable sources are followed.
func (l *ListBox[T]) SetItemsSource(source ItemsSource[T]) *ListBox[T] {
	if l.cancelObserve != nil {
		l.cancelObserve()
		l.cancelObserve = nil
	}
	if source == nil {
		source = NewCollection[T]()
	}
	l.source = source
	l.generator.SetSource(source)
	l.panel.Reset()
	l.focused = -1
	l.selection.SetSource(source)
	if observable, ok := source.(ObservableItemsSource[T]); ok {
		l.cancelObserve = observable.Observe(l.itemsChanged)
	}
	l.MarkDirty()
	return l
}

// ItemsSource returns the bound items source.
func (l *ListBox[T]) ItemsSource() ItemsSource[T] {
	return l.source
}

// SetTemplate changes the content template.
func (l *ListBox[T]) SetTemplate(template ContentTemplate[T]) *ListBox[T] {
	l.generator.SetTemplate(template)
	l.MarkDirty()
	return l
}

// SetGap sets the number of blank rows between items.
func (l *ListBox[T]) SetGap(gap int) *ListBox[T] {
	l.panel.SetGap(gap)
	return l
}

// Panel returns the items panel.
func (l *ListBox[T]) Panel() *VirtualizingStackPanel {
	return l.panel
}

// KeyMap returns the key bindings, for example to show them in a help bar.
func (l *ListBox[T]) KeyMap() ListBoxKeyMap {
	return l.keyMap
}

// SetSelectionChangedFunc sets a handler called after each effective
// selection change.
func (l *ListBox[T]) SetSelectionChangedFunc(handler func(change SelectionChange)) *ListBox[T] {
	l.selectionChanged = handler
	return l
}

// SelectionMode returns the selection mode.
func (l *ListBox[T]) SelectionMode() SelectionMode {
	return l.selection.Mode()
}

// SetSelectionMode sets the selection mode. The tab strip variant always
// uses single selection with one item selected.
func (l *ListBox[T]) SetSelectionMode(mode SelectionMode) *ListBox[T] {
	l.selection.SetMode(l.hooks.mode(mode))
	return l
}

// SelectedItems returns the selected items in source order.
func (l *ListBox[T]) SelectedItems() []T {
	return l.selection.SelectedItems()
}

// SelectedIndices returns the selected indices in ascending order.
func (l *ListBox[T]) SelectedIndices() []int {
	return l.selection.SelectedIndices()
}

// SelectedIndex returns the lowest selected index, or -1.
func (l *ListBox[T]) SelectedIndex() int {
	return l.selection.SelectedIndex()
}

// SelectedItem returns the item at SelectedIndex.
func (l *ListBox[T]) SelectedItem() (T, bool) {
	index := l.selection.SelectedIndex()
	if index < 0 || index >= l.ItemCount() {
		var zero T
		return zero, false
	}
	return l.source.At(index), true
}

// IsSelected reports whether an item identical to item is selected.
func (l *ListBox[T]) IsSelected(item T) bool {
	return l.selection.IsSelected(item)
}

// IsSelectedIndex reports whether the item at index is selected.
func (l *ListBox[T]) IsSelectedIndex(index int) bool {
	return l.selection.IsSelectedIndex(index)
}

// Select adds the item at index to the selection.
func (l *ListBox[T]) Select(index int) *ListBox[T] {
	l.selection.Select(index)
	return l
}

// SelectItem selects the first item identical to item.
func (l *ListBox[T]) SelectItem(item T) *ListBox[T] {
	l.selection.SelectItem(item)
	return l
}

// Deselect removes the item at index from the selection.
func (l *ListBox[T]) Deselect(index int) *ListBox[T] {
	l.selection.DeselectIndex(index)
	return l
}

// DeselectItem removes every selected item identical to item.
func (l *ListBox[T]) DeselectItem(item T) *ListBox[T] {
	l.selection.Deselect(item)
	return l
}

// ClearSelection deselects everything the mode allows to deselect.
func (l *ListBox[T]) ClearSelection() *ListBox[T] {
	l.selection.Clear()
	return l
}

// FocusedIndex returns the index of the item with the keyboard focus, or -1.
func (l *ListBox[T]) FocusedIndex() int {
	return l.focused
}

// FocusIndex moves the keyboard focus to the item at index without
// changing the selection.
func (l *ListBox[T]) FocusIndex(index int) *ListBox[T] {
	l.moveFocus(index, NavigationProgrammatic, 0)
	return l
}

// ScrollIntoView scrolls until the item at index is fully visible.
func (l *ListBox[T]) ScrollIntoView(index int) *ListBox[T] {
	if index >= 0 && index < l.ItemCount() {
		l.panel.ScrollTo(index)
	}
	return l
}

// RealizedCount returns the number of containers currently realized.
func (l *ListBox[T]) RealizedCount() int {
	return l.generator.RealizedCount()
}

// ItemCount returns the number of items in the source.
func (l *ListBox[T]) ItemCount() int {
	return l.source.Len()
}

// Realize returns the container for index with its selection and focus
// state applied.
func (l *ListBox[T]) Realize(index int) PanelItem {
	container := l.generator.ContainerForIndex(index)
	if container == nil {
		return nil
	}
	l.syncContainer(index, container)
	return container
}

// Recycle hands a container back to the generator.
func (l *ListBox[T]) Recycle(item PanelItem) {
	if container, ok := item.(*ListBoxItem[T]); ok {
		l.generator.Recycle(container)
	}
}

func (l *ListBox[T]) syncContainer(index int, container *ListBoxItem[T]) {
	container.setSelected(l.selection.IsSelectedIndex(index))
	if content, ok := container.Content(); ok {
		container.setSelectable(l.selectable == nil || l.selectable(content))
	}
	focused := index == l.focused && l.HasFocus()
	switch {
	case focused && !container.HasFocus():
		container.Focus(nil)
	case !focused && container.HasFocus():
		container.Blur()
	}
}

func (l *ListBox[T]) syncContainers() {
	for _, index := range l.generator.RealizedIndices() {
		l.syncContainer(index, l.generator.ContainerForIndex(index))
	}
}

func (l *ListBox[T]) onSelectionChanged(change SelectionChange) {
	l.syncContainers()
	l.MarkDirty()
	if l.selectionChanged != nil {
		l.selectionChanged(change)
	}
}

// itemsChanged follows mutations of an observable source.
func (l *ListBox[T]) itemsChanged(change CollectionChange) {
	l.generator.ItemsChanged(change)
	l.selection.ItemsChanged(change)

	switch change.Action {
	case ChangeAdd:
		if l.focused >= change.Index {
			l.focused += change.Count
		}
	case ChangeRemove:
		switch end := change.Index + change.Count; {
		case l.focused >= end:
			l.focused -= change.Count
		case l.focused >= change.Index:
			l.focused = min(change.Index, l.ItemCount()-1)
		}
	case ChangeReset:
		l.focused = -1
		l.panel.Reset()
	}

	l.syncContainers()
	l.MarkDirty()
}

func (l *ListBox[T]) setFocused(index int) {
	if index < 0 || index >= l.ItemCount() {
		index = -1
	}
	if l.focused == index {
		return
	}
	l.focused = index
	l.syncContainers()
	l.MarkDirty()
}

// moveFocus brings the item at index into view and raises a got-focus event
// on its container. Indices are clamped; focus never wraps around.
func (l *ListBox[T]) moveFocus(index int, navigation NavigationMethod, modifiers Modifiers) bool {
	n := l.ItemCount()
	if n == 0 {
		return false
	}
	index = max(0, min(index, n-1))
	if index == l.focused {
		return false
	}
	l.panel.ScrollTo(index)
	container := l.generator.ContainerForIndex(index)
	l.syncContainer(index, container)
	l.RaiseGotFocus(&GotFocusEvent{
		RoutedEvent: RoutedEvent{Source: container},
		Navigation:  navigation,
		Modifiers:   modifiers,
	})
	return true
}

// toggleFocused toggles the focused item in modes that allow it and
// selects it otherwise.
func (l *ListBox[T]) toggleFocused() bool {
	if l.focused < 0 {
		return false
	}
	container := l.generator.ContainerForIndex(l.focused)
	target := l.resolve(container)
	if !target.resolved || !target.selectable || l.selection.Mode() == SelectionNone {
		return false
	}
	instruction := InstructionSelectOnly
	if l.selection.Mode().AllowsToggle() {
		instruction = InstructionToggle
	}
	return l.selection.Apply(instruction, target.index)
}

// IsDirty returns whether the list box or one of its visible containers
// needs a redraw.
func (l *ListBox[T]) IsDirty() bool {
	return l.Box.IsDirty() || l.panel.IsDirty()
}

// MarkClean marks the list box and its panel as clean.
func (l *ListBox[T]) MarkClean() {
	l.Box.MarkClean()
	l.panel.MarkClean()
}

// Draw draws the panel with the visible containers.
func (l *ListBox[T]) Draw(screen tcell.Screen) {
	l.DrawForSubclass(screen, l)
	x, y, width, height := l.GetInnerRect()
	l.panel.SetRect(x, y, width, height)
	l.panel.Draw(screen)

	// Containers realized outside the layout pass, for example for a focus
	// move, are released once they are not displayed.
	drawn := make(map[*ListBoxItem[T]]struct{})
	for _, item := range l.panel.Containers() {
		if container, ok := item.(*ListBoxItem[T]); ok {
			drawn[container] = struct{}{}
		}
	}
	for _, container := range l.generator.Realized() {
		if _, ok := drawn[container]; !ok {
			l.generator.Recycle(container)
		}
	}
}

// Focus is called when the list box receives the keyboard focus.
func (l *ListBox[T]) Focus(delegate func(p Primitive)) {
	l.Box.Focus(delegate)
	if l.focused < 0 && l.ItemCount() > 0 {
		l.focused = max(l.selection.SelectedIndex(), 0)
		l.panel.ScrollTo(l.focused)
	}
	l.syncContainers()
}

// Blur is called when the list box loses the keyboard focus.
func (l *ListBox[T]) Blur() {
	l.Box.Blur()
	l.syncContainers()
}

// InputHandler moves the focus and toggles items.
func (l *ListBox[T]) InputHandler(event *tcell.EventKey) Command {
	k := l.keyMap
	handled := false
	page := l.panel.PageSize()
	switch {
	case keybind.Matches(event, k.Down):
		handled = l.moveFocus(l.focused+1, NavigationDirectional, 0)
	case keybind.Matches(event, k.Up):
		handled = l.moveFocus(l.focused-1, NavigationDirectional, 0)
	case keybind.Matches(event, k.Home):
		handled = l.moveFocus(0, NavigationDirectional, 0)
	case keybind.Matches(event, k.End):
		handled = l.moveFocus(l.ItemCount()-1, NavigationDirectional, 0)
	case keybind.Matches(event, k.PageDown):
		handled = l.moveFocus(l.focused+page, NavigationDirectional, 0)
	case keybind.Matches(event, k.PageUp):
		handled = l.moveFocus(l.focused-page, NavigationDirectional, 0)
	case keybind.Matches(event, k.ExtendDown):
		handled = l.moveFocus(l.focused+1, NavigationDirectional, ModifierShift)
	case keybind.Matches(event, k.ExtendUp):
		handled = l.moveFocus(l.focused-1, NavigationDirectional, ModifierShift)
	case keybind.Matches(event, k.ExtendHome):
		handled = l.moveFocus(0, NavigationDirectional, ModifierShift)
	case keybind.Matches(event, k.ExtendEnd):
		handled = l.moveFocus(l.ItemCount()-1, NavigationDirectional, ModifierShift)
	case keybind.Matches(event, k.ExtendPageDown):
		handled = l.moveFocus(l.focused+page, NavigationDirectional, ModifierShift)
	case keybind.Matches(event, k.ExtendPageUp):
		handled = l.moveFocus(l.focused-page, NavigationDirectional, ModifierShift)
	case keybind.Matches(event, k.Toggle):
		handled = l.toggleFocused()
	}
	if !handled {
		return nil
	}
	return BatchCommand{ConsumeEventCommand{}, RedrawCommand{}}
}

// MouseHandler routes presses on containers and scrolls on wheel events.
func (l *ListBox[T]) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	x, y := event.Position()
	if !l.InRect(x, y) {
		return nil, nil
	}

	if capture, cmd := l.panel.MouseHandler(action, event); Consumed(cmd) {
		return capture, cmd
	}

	button := mouseButtonForAction(action)
	if button == MouseButtonNone {
		return nil, nil
	}

	var source Primitive = l
	if container := l.panel.ContainerAt(x, y); container != nil {
		source = container
	}
	pressed := &PointerPressedEvent{
		RoutedEvent: RoutedEvent{Source: source},
		Button:      button,
		Modifiers:   ModifiersFromTcell(event.Modifiers()),
	}
	l.RaisePointerPressed(pressed)

	focus := SetFocusCommand{Target: l}
	if !pressed.Handled {
		return nil, focus
	}
	return nil, BatchCommand{focus, ConsumeEventCommand{}, RedrawCommand{}}
}

var _ Primitive = &ListBox[int]{}
var _ ContainerHost = &ListBox[int]{}
