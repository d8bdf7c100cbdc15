package ui

import "github.com/charmbracelet/bubbles/key"

// Key bindings
var keys = struct {
	Quit      key.Binding
	Tab       key.Binding
	BackTab   key.Binding
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Home      key.Binding
	End       key.Binding
	Toggle    key.Binding
	All       key.Binding
	Clear     key.Binding
	NewTopic  key.Binding
	DropTopic key.Binding
	Run       key.Binding
	Layout    key.Binding
	Star      key.Binding
	Details   key.Binding
}{
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c")),
	Tab:       key.NewBinding(key.WithKeys("tab")),
	BackTab:   key.NewBinding(key.WithKeys("shift+tab")),
	Up:        key.NewBinding(key.WithKeys("k", "up")),
	Down:      key.NewBinding(key.WithKeys("j", "down")),
	Left:      key.NewBinding(key.WithKeys("left")),
	Right:     key.NewBinding(key.WithKeys("right")),
	Home:      key.NewBinding(key.WithKeys("g", "home")),
	End:       key.NewBinding(key.WithKeys("G", "end")),
	Toggle:    key.NewBinding(key.WithKeys(" ")),
	All:       key.NewBinding(key.WithKeys("a")),
	Clear:     key.NewBinding(key.WithKeys("c")),
	NewTopic:  key.NewBinding(key.WithKeys("n")),
	DropTopic: key.NewBinding(key.WithKeys("x")),
	Run:       key.NewBinding(key.WithKeys("enter")),
	Layout:    key.NewBinding(key.WithKeys("l")),
	Star:      key.NewBinding(key.WithKeys("s")),
	Details:   key.NewBinding(key.WithKeys("?")),
}
