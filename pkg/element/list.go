package element

import (
	"fmt"

	"github.com/go-drift/rosetta/pkg/binding"
	"github.com/go-drift/rosetta/pkg/errors"
)

// ItemFactory creates the element for one list item. item is bound to index.
type ItemFactory func(item binding.Accessor, index int) Element

// ListView shows one ListItem per element of a list binding. Item bindings
// are keyed by index, so every structural change rebuilds all items.
type ListView struct {
	base
	list       binding.ListAccessor
	createItem ItemFactory
	count      int
	rebuilt    listeners[struct{}]
}

// NewListView creates a ListView. A nil createItem uses CreateFieldElement
// with an "Element i" label.
func NewListView(list binding.ListAccessor, createItem ItemFactory) *ListView {
	if createItem == nil {
		createItem = DefaultItem
	}
	l := &ListView{list: list, createItem: createItem}
	l.init(l, nil)
	l.interactable.Set(!list.IsReadOnly())
	n, err := list.Len()
	if err != nil {
		l.bindingFailed("element.ListView.Len", err)
		return l
	}
	l.populate(n)
	return l
}

// DefaultItem creates a plain field for a list item.
func DefaultItem(item binding.Accessor, index int) Element {
	return CreateFieldElement(NewLabel(fmt.Sprintf("Element %d", index)), item)
}

// Items returns the item elements.
func (l *ListView) Items() []*ListItem {
	items := make([]*ListItem, 0, len(l.children))
	for _, c := range l.children {
		if it, ok := c.(*ListItem); ok {
			items = append(items, it)
		}
	}
	return items
}

// Binding returns the list accessor.
func (l *ListView) Binding() binding.ListAccessor { return l.list }

// OnRebuild registers fn to run after the items were replaced.
func (l *ListView) OnRebuild(fn func()) (cancel func()) {
	return l.rebuilt.add(func(struct{}) { fn() })
}

// Update rebuilds the items when the list length changed, and otherwise
// ticks them.
func (l *ListView) Update() {
	n, err := l.list.Len()
	if err != nil {
		l.bindingFailed("element.ListView.Len", err)
		return
	}
	l.bindingRestored()
	if n != l.count {
		l.rebuild(n)
		return
	}
	l.updateChildren()
}

// Append adds a zero item through the list binding.
func (l *ListView) Append() error {
	return l.edit("element.ListView.Append", l.list.Append)
}

// RemoveAt removes item i through the list binding.
func (l *ListView) RemoveAt(i int) error {
	return l.edit("element.ListView.RemoveAt", func() error { return l.list.RemoveAt(i) })
}

func (l *ListView) edit(op string, fn func() error) error {
	if l.list.IsReadOnly() {
		err := &errors.ReadOnlyError{Path: binding.Describe(l.list)}
		errors.Report(&errors.UIError{Op: op, Kind: errors.KindReadOnly, Err: err, Element: "*element.ListView"})
		if DebugMode {
			panic(err)
		}
		return err
	}
	if err := fn(); err != nil {
		errors.Report(&errors.UIError{Op: op, Kind: errors.KindBinding, Err: err, Element: "*element.ListView"})
		return err
	}
	n, err := l.list.Len()
	if err != nil {
		l.bindingFailed("element.ListView.Len", err)
		return err
	}
	l.rebuild(n)
	return nil
}

func (l *ListView) rebuild(n int) {
	l.populate(n)
	l.rebuilt.notify(struct{}{})
}

func (l *ListView) populate(n int) {
	l.discardChildren()
	l.count = n
	for i := 0; i < n; i++ {
		item := &ListItem{list: l, index: i}
		item.init(item, nil)
		item.interactable.Set(!l.list.IsReadOnly())
		var content Element
		perr := errors.Contain("element.ListView.createItem", func() {
			content = l.createItem(l.list.Item(i), i)
		})
		if perr == nil {
			item.adopt(content)
		}
		l.adopt(item)
	}
}

// ListItem wraps the element for one list index and carries the remove
// affordance.
type ListItem struct {
	base
	list  *ListView
	index int
}

// Index returns the list index the item is bound to.
func (it *ListItem) Index() int { return it.index }

// Content returns the item's element, or nil when no element kind matched.
func (it *ListItem) Content() Element {
	if len(it.children) == 0 {
		return nil
	}
	return it.children[0]
}

// Remove removes this item's index from the list.
func (it *ListItem) Remove() error {
	return it.list.RemoveAt(it.index)
}
