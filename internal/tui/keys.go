package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit       key.Binding
	Save       key.Binding
	Undo       key.Binding
	Redo       key.Binding
	Copy       key.Binding
	DeleteSel  key.Binding
	EditStamp  key.Binding
	EditSpeak  key.Binding
	StopRec    key.Binding
	NewlineAlt key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:       key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("ctrl+q", "save & quit")),
		Save:       key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Undo:       key.NewBinding(key.WithKeys("ctrl+z"), key.WithHelp("ctrl+z", "undo")),
		Redo:       key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "redo")),
		Copy:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "copy selection")),
		DeleteSel:  key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "delete selection")),
		EditStamp:  key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "edit timestamp")),
		EditSpeak:  key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "set speaker")),
		StopRec:    key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "stop recording")),
		NewlineAlt: key.NewBinding(key.WithKeys("alt+enter"), key.WithHelp("alt+↵", "newline in block")),
	}
}
