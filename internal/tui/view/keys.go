package view

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/ygelfand/studentctl/internal/ui"
)

type studentsKeyMap struct {
	Sort     key.Binding
	Search   key.Binding
	PrevView key.Binding
	NextView key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	Reload   key.Binding
	Clear    key.Binding
	Blur     key.Binding
}

var studentsKeys = studentsKeyMap{
	Sort:     key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "Sort by column")),
	Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "Search")),
	PrevView: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "Previous rows")),
	NextView: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "Next rows")),
	NextPage: key.NewBinding(key.WithKeys("n", "right"), key.WithHelp("n", "Next server page")),
	PrevPage: key.NewBinding(key.WithKeys("p", "left"), key.WithHelp("p", "Previous server page")),
	Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "Reload first page")),
	Clear:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "Clear search and filters")),
	Blur:     key.NewBinding(key.WithKeys("esc", "enter"), key.WithHelp("esc", "Leave search box")),
}

func (k studentsKeyMap) help() []ui.HelpKey {
	var keys []ui.HelpKey
	for _, b := range []key.Binding{k.Sort, k.Search, k.PrevView, k.NextView, k.NextPage, k.PrevPage, k.Reload, k.Clear} {
		h := b.Help()
		keys = append(keys, ui.HelpKey{Key: h.Key, Desc: h.Desc})
	}
	return keys
}
