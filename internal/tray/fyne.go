package tray

import (
	"fyne.io/fyne/v2"
)

// Handlers are the callbacks wired into the rendered menu. Nil handlers
// are replaced with no-ops.
type Handlers struct {
	OnRunningSelected func(projectID string)
	OnStartProject    func(projectID string)
	OnShowWindow      func()
	OnQuit            func()
}

func (h Handlers) normalized() Handlers {
	nopID := func(string) {}
	nop := func() {}
	if h.OnRunningSelected == nil {
		h.OnRunningSelected = nopID
	}
	if h.OnStartProject == nil {
		h.OnStartProject = nopID
	}
	if h.OnShowWindow == nil {
		h.OnShowWindow = nop
	}
	if h.OnQuit == nil {
		h.OnQuit = nop
	}
	return h
}

// ToFyneMenu renders the menu model as a fyne system-tray menu. The GUI
// shell passes the result to desktop.App.SetSystemTrayMenu and calls it
// again whenever the set of running sessions changes (pull-based refresh).
func ToFyneMenu(menu *Menu, handlers Handlers) *fyne.Menu {
	h := handlers.normalized()

	var items []*fyne.MenuItem

	for _, entry := range menu.Running {
		entry := entry
		item := fyne.NewMenuItem(entry.Label, func() {
			h.OnRunningSelected(entry.ProjectID)
		})
		item.Disabled = entry.Disabled
		items = append(items, item)
	}

	items = append(items, fyne.NewMenuItemSeparator())

	if len(menu.StartSubmenu) > 0 {
		var children []*fyne.MenuItem
		for _, entry := range menu.StartSubmenu {
			entry := entry
			children = append(children, fyne.NewMenuItem(entry.Label, func() {
				h.OnStartProject(entry.ProjectID)
			}))
		}
		submenu := fyne.NewMenuItem(SubmenuTitle(), nil)
		submenu.ChildMenu = fyne.NewMenu(SubmenuTitle(), children...)
		items = append(items, submenu, fyne.NewMenuItemSeparator())
	}

	items = append(items,
		fyne.NewMenuItem(menu.ShowWindow.Label, h.OnShowWindow),
		fyne.NewMenuItem(menu.Quit.Label, h.OnQuit),
	)

	return fyne.NewMenu("Tiempo", items...)
}
