package components

import (
	tea "charm.land/bubbletea/v2"
)

// MenuItem represents a single item in a navigation menu.
type MenuItem struct {
	Label string

	// Description is shown dimmed under the selected item.
	Description string
	Action      func() tea.Cmd
	Disabled    bool
}

// Menu tracks the selection of a vertical menu. Screens draw it
// themselves from Items and Selected.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a menu with the first enabled item selected.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.step(0, 1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

// step moves the selection from index from in direction dir to the next
// enabled item, staying put when there is none.
func (m *Menu) step(from, dir int) {
	for i := from; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			m.Selected = i
			return
		}
	}
}

// activate runs item i's action if it is enabled.
func (m Menu) activate(i int) tea.Cmd {
	if i < 0 || i >= len(m.Items) {
		return nil
	}
	item := m.Items[i]
	if item.Disabled || item.Action == nil {
		return nil
	}
	return item.Action()
}

// Update handles keyboard navigation. Digits 1-9 select and activate the
// item at that position.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		m.step(m.Selected-1, -1)
	case "down", "j":
		m.step(m.Selected+1, 1)
	case "home", "g":
		m.step(0, 1)
	case "end", "G":
		m.step(len(m.Items)-1, -1)
	case "enter":
		return m, m.activate(m.Selected)
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			i := int(key[0] - '1')
			if i < len(m.Items) && !m.Items[i].Disabled {
				m.Selected = i
				return m, m.activate(i)
			}
		}
	}
	return m, nil
}
