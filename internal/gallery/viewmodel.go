package gallery

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Option describes one filter button.
type Option struct {
	Tag    string `json:"tag"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// ViewModel holds one session's selected filter over a shared catalog.
//
// A ViewModel is not safe for concurrent use; the session store serializes
// access to it.
type ViewModel struct {
	catalog   *Catalog
	filter    string
	listeners map[int]func(string)
	nextID    int
}

// NewViewModel returns a view-model over c with the filter set to All.
func NewViewModel(c *Catalog) *ViewModel {
	return &ViewModel{
		catalog:   c,
		filter:    All,
		listeners: make(map[int]func(string)),
	}
}

// Filter returns the currently selected tag.
func (vm *ViewModel) Filter() string {
	return vm.filter
}

// SetFilter selects tag. Any string is accepted; a tag no project uses
// simply leaves nothing visible. Listeners are notified only when the
// selection actually changes.
func (vm *ViewModel) SetFilter(tag string) {
	if tag == vm.filter {
		return
	}
	vm.filter = tag
	for _, fn := range vm.listeners {
		fn(tag)
	}
}

// VisibleProjects returns the catalog restricted to the current filter.
// It is recomputed on every call.
func (vm *ViewModel) VisibleProjects() []Project {
	return vm.catalog.Filter(vm.filter)
}

// Subscribe registers fn to run after each filter change. The returned
// func removes it.
func (vm *ViewModel) Subscribe(fn func(filter string)) (cancel func()) {
	id := vm.nextID
	vm.nextID++
	vm.listeners[id] = fn
	return func() { delete(vm.listeners, id) }
}

// Options lists the filter buttons: All first, then each declared category.
func (vm *ViewModel) Options() []Option {
	caser := cases.Title(language.English)
	tags := append([]string{All}, vm.catalog.Categories()...)
	opts := make([]Option, 0, len(tags))
	for _, tag := range tags {
		opts = append(opts, Option{
			Tag:    tag,
			Label:  caser.String(tag),
			Active: tag == vm.filter,
		})
	}
	return opts
}
