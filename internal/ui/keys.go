package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Accept      key.Binding
	Enter       key.Binding
	Next        key.Binding
	Prev        key.Binding
	Dismiss     key.Binding
	PrevCommand key.Binding
	NextCommand key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Quit        key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Accept:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "补全")),
		Enter:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "补全/执行")),
		Next:        key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "下一项")),
		Prev:        key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "上一项")),
		Dismiss:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "关闭")),
		PrevCommand: key.NewBinding(key.WithKeys("alt+up"), key.WithHelp("alt+↑", "上一条命令")),
		NextCommand: key.NewBinding(key.WithKeys("alt+down"), key.WithHelp("alt+↓", "下一条命令")),
		PageUp:      key.NewBinding(key.WithKeys("shift+pgup"), key.WithHelp("shift+pgup", "向上翻页")),
		PageDown:    key.NewBinding(key.WithKeys("shift+pgdown"), key.WithHelp("shift+pgdown", "向下翻页")),
		Quit:        key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("ctrl+q", "退出")),
	}
}

// ShortHelp is shown while the completion popup is open.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Accept, k.Next, k.Prev, k.Dismiss}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Accept, k.Enter, k.Next, k.Prev, k.Dismiss},
		{k.PrevCommand, k.NextCommand, k.PageUp, k.PageDown, k.Quit},
	}
}

// IdleHelp is shown otherwise.
func (k keyMap) IdleHelp() []key.Binding {
	return []key.Binding{k.PrevCommand, k.NextCommand, k.Quit}
}
