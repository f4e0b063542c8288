package curved

import (
	"image"
	"strings"
)

// MenuItem is one entry of a context menu. Path segments separated by '/'
// form submenus, e.g. "Tangents/In/Linear".
type MenuItem struct {
	Path   string
	Action func()
}

// ContextMenu is a flat list of menu items opened by the editor on right
// click. The host decides how to present it.
type ContextMenu struct {
	items []MenuItem
}

// AddItem appends an entry.
func (m *ContextMenu) AddItem(path string, action func()) {
	m.items = append(m.items, MenuItem{Path: path, Action: action})
}

// Items returns the entries in insertion order.
func (m *ContextMenu) Items() []MenuItem { return m.items }

// Paths returns the entry paths in insertion order.
func (m *ContextMenu) Paths() []string {
	paths := make([]string, len(m.items))
	for i, it := range m.items {
		paths[i] = it.Path
	}
	return paths
}

// Invoke runs the entry with the given path. It reports whether one was found.
func (m *ContextMenu) Invoke(path string) bool {
	for _, it := range m.items {
		if it.Path == path {
			if it.Action != nil {
				it.Action()
			}
			return true
		}
	}
	return false
}

// Submenu returns the entries under prefix with the prefix removed.
func (m *ContextMenu) Submenu(prefix string) []MenuItem {
	prefix = strings.TrimSuffix(prefix, "/") + "/"
	var out []MenuItem
	for _, it := range m.items {
		if rest, ok := strings.CutPrefix(it.Path, prefix); ok {
			out = append(out, MenuItem{Path: rest, Action: it.Action})
		}
	}
	return out
}

// Host is implemented by the window hosting an editor. It presents the menus,
// forms and messages the editor asks for.
type Host interface {
	// OpenMenu shows a context menu at p in editor-local pixels.
	OpenMenu(p image.Point, menu *ContextMenu)
	// OpenForm shows a modal form. The host calls apply when the user
	// confirms, after writing the edited values into the form.
	OpenForm(form *Form, apply func(*Form) error)
	// ShowMessage shows an informational message.
	ShowMessage(title, text string)
}

// nopHost discards every request.
type nopHost struct{}

func (nopHost) OpenMenu(image.Point, *ContextMenu) {}
func (nopHost) OpenForm(*Form, func(*Form) error)  {}
func (nopHost) ShowMessage(string, string)         {}
