package tview

import (
	"log/slog"
	"slices"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// DefaultRecyclePoolSize is the number of unbound containers a generator
// keeps for reuse.
const DefaultRecyclePoolSize = 32

// ItemContainerGenerator maps item indices to [ListBoxItem] containers. It
// creates containers lazily for the indices the panel asks for and takes
// them back when they scroll out of view, so only the visible part of a
// large source is ever materialized.
type ItemContainerGenerator[T any] struct {
	source   ItemsSource[T]
	template ContentTemplate[T]

	// Realized containers by index, in realization order.
	realized *orderedmap.OrderedMap[int, *ListBoxItem[T]]
	indices  map[*ListBoxItem[T]]int

	pool     []*ListBoxItem[T]
	poolSize int

	logger *slog.Logger
}

// NewItemContainerGenerator returns a generator for source. A nil template
// selects [DefaultTemplate].
func NewItemContainerGenerator[T any](source ItemsSource[T], template ContentTemplate[T]) *ItemContainerGenerator[T] {
	if template == nil {
		template = DefaultTemplate[T]()
	}
	return &ItemContainerGenerator[T]{
		source:   source,
		template: template,
		realized: orderedmap.New[int, *ListBoxItem[T]](),
		indices:  make(map[*ListBoxItem[T]]int),
		poolSize: DefaultRecyclePoolSize,
		logger:   slog.New(slog.DiscardHandler),
	}
}

// SetLogger sets the logger for debug records.
func (g *ItemContainerGenerator[T]) SetLogger(logger *slog.Logger) *ItemContainerGenerator[T] {
	if logger != nil {
		g.logger = logger
	}
	return g
}

// SetPoolSize sets how many unbound containers are kept for reuse.
func (g *ItemContainerGenerator[T]) SetPoolSize(size int) *ItemContainerGenerator[T] {
	g.poolSize = max(size, 0)
	if len(g.pool) > g.poolSize {
		clear(g.pool[g.poolSize:])
		g.pool = g.pool[:g.poolSize]
	}
	return g
}

// SetSource recycles every container and binds the generator to source.
func (g *ItemContainerGenerator[T]) SetSource(source ItemsSource[T]) *ItemContainerGenerator[T] {
	g.RecycleAll()
	g.source = source
	return g
}

// SetTemplate changes the content template and rebinds realized containers.
func (g *ItemContainerGenerator[T]) SetTemplate(template ContentTemplate[T]) *ItemContainerGenerator[T] {
	if template == nil {
		template = DefaultTemplate[T]()
	}
	g.template = template
	for pair := g.realized.Oldest(); pair != nil; pair = pair.Next() {
		content, _ := pair.Value.Content()
		pair.Value.bind(content, template)
	}
	return g
}

func (g *ItemContainerGenerator[T]) count() int {
	if g.source == nil {
		return 0
	}
	return g.source.Len()
}

// ContainerForIndex returns the container realized for index, realizing one
// if needed. It returns nil when index is outside the source.
func (g *ItemContainerGenerator[T]) ContainerForIndex(index int) *ListBoxItem[T] {
	if index < 0 || index >= g.count() {
		return nil
	}
	if container, ok := g.realized.Get(index); ok {
		return container
	}

	var container *ListBoxItem[T]
	if n := len(g.pool); n > 0 {
		container = g.pool[n-1]
		g.pool[n-1] = nil
		g.pool = g.pool[:n-1]
	} else {
		container = NewListBoxItem[T]()
	}
	container.bind(g.source.At(index), g.template)
	g.realized.Set(index, container)
	g.indices[container] = index
	return container
}

// IndexForContainer returns the index container is realized for. It reports
// false for unrealized and foreign primitives.
func (g *ItemContainerGenerator[T]) IndexForContainer(p Primitive) (int, bool) {
	container, ok := p.(*ListBoxItem[T])
	if !ok || container == nil {
		return -1, false
	}
	index, ok := g.indices[container]
	return index, ok
}

// Recycle unbinds container and returns it to the pool. Unknown containers
// are ignored.
func (g *ItemContainerGenerator[T]) Recycle(container *ListBoxItem[T]) {
	index, ok := g.indices[container]
	if !ok {
		return
	}
	g.release(index, container)
}

func (g *ItemContainerGenerator[T]) release(index int, container *ListBoxItem[T]) {
	g.realized.Delete(index)
	delete(g.indices, container)
	container.unbind()
	if len(g.pool) < g.poolSize {
		g.pool = append(g.pool, container)
	}
}

// RecycleAll recycles every realized container.
func (g *ItemContainerGenerator[T]) RecycleAll() {
	n := g.realized.Len()
	for _, container := range g.Realized() {
		g.Recycle(container)
	}
	if n > 0 {
		g.logger.Debug("recycled all containers", "count", n)
	}
}

// RealizedCount returns the number of realized containers.
func (g *ItemContainerGenerator[T]) RealizedCount() int {
	return g.realized.Len()
}

// Realized returns the realized containers in ascending index order.
func (g *ItemContainerGenerator[T]) Realized() []*ListBoxItem[T] {
	indices := g.RealizedIndices()
	containers := make([]*ListBoxItem[T], len(indices))
	for i, index := range indices {
		containers[i], _ = g.realized.Get(index)
	}
	return containers
}

// RealizedIndices returns the realized indices in ascending order.
func (g *ItemContainerGenerator[T]) RealizedIndices() []int {
	indices := make([]int, 0, g.realized.Len())
	for pair := g.realized.Oldest(); pair != nil; pair = pair.Next() {
		indices = append(indices, pair.Key)
	}
	slices.Sort(indices)
	return indices
}

// ItemsChanged updates the realized table after the source was mutated so
// no container stays mapped to a stale index.
func (g *ItemContainerGenerator[T]) ItemsChanged(change CollectionChange) {
	switch change.Action {
	case ChangeAdd:
		g.remap(func(index int) (int, bool) {
			if index >= change.Index {
				return index + change.Count, true
			}
			return index, true
		})
	case ChangeRemove:
		end := change.Index + change.Count
		g.remap(func(index int) (int, bool) {
			switch {
			case index < change.Index:
				return index, true
			case index >= end:
				return index - change.Count, true
			}
			return 0, false
		})
	case ChangeReplace:
		if container, ok := g.realized.Get(change.Index); ok && change.Index < g.count() {
			container.bind(g.source.At(change.Index), g.template)
		}
	case ChangeReset:
		g.RecycleAll()
	}
}

// remap moves every realized container to the index returned by move, or
// recycles it when move reports false.
func (g *ItemContainerGenerator[T]) remap(move func(index int) (int, bool)) {
	type entry struct {
		index     int
		container *ListBoxItem[T]
	}
	var keep, drop []entry
	for pair := g.realized.Oldest(); pair != nil; pair = pair.Next() {
		if index, ok := move(pair.Key); ok {
			keep = append(keep, entry{index: index, container: pair.Value})
		} else {
			drop = append(drop, entry{index: pair.Key, container: pair.Value})
		}
	}
	for _, e := range drop {
		g.release(e.index, e.container)
	}
	g.realized = orderedmap.New[int, *ListBoxItem[T]]()
	clear(g.indices)
	for _, e := range keep {
		g.realized.Set(e.index, e.container)
		g.indices[e.container] = e.index
	}
	if len(drop) > 0 {
		g.logger.Debug("recycled removed containers", "count", len(drop))
	}
}
