// Package tray builds the system-tray menu model from the current
// projects and running sessions. The model is plain data; rendering it
// with a GUI toolkit is a separate concern (see fyne.go).
package tray

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"tiempo/internal/model"
)

// Item is one selectable entry in the tray menu.
type Item struct {
	ID        string // stable handler id, "project_<id>" for project entries
	Label     string
	ProjectID string // set for running and start entries
	Disabled  bool
}

// Menu is the tray menu model: running sessions on top, a submenu of
// startable projects, then the fixed window/quit entries.
type Menu struct {
	Running      []Item // or a single disabled placeholder when empty
	StartSubmenu []Item // non-running projects, omitted when empty
	ShowWindow   Item
	Quit         Item
}

// Labels for the fixed entries, matching the shipped desktop app.
const (
	noActiveLabel     = "No hay proyectos activos"
	startSubmenuTitle = "Iniciar Proyecto"
	showWindowLabel   = "Mostrar Ventana"
	quitLabel         = "Salir"
)

// SubmenuTitle returns the title of the start-project submenu.
func SubmenuTitle() string { return startSubmenuTitle }

// BuildMenu assembles the menu model. Running sessions are paired with
// their project and shown with the time elapsed since their start; the
// submenu lists every project without a running session. Both groups are
// sorted case-insensitively by project name. Sessions whose project is
// missing from the list are skipped.
func BuildMenu(projects []*model.Project, running []*model.TimeSession, now time.Time) *Menu {
	byID := make(map[string]*model.Project, len(projects))
	for _, p := range projects {
		byID[p.ID] = p
	}

	runningByProject := make(map[string]bool, len(running))
	for _, s := range running {
		runningByProject[s.ProjectID] = true
	}

	menu := &Menu{
		ShowWindow: Item{ID: "show", Label: showWindowLabel},
		Quit:       Item{ID: "quit", Label: quitLabel},
	}

	type runningEntry struct {
		name    string
		session *model.TimeSession
	}
	var active []runningEntry
	for _, s := range running {
		project, ok := byID[s.ProjectID]
		if !ok {
			continue
		}
		active = append(active, runningEntry{name: project.Name, session: s})
	}
	sort.Slice(active, func(i, j int) bool {
		return strings.ToLower(active[i].name) < strings.ToLower(active[j].name)
	})

	if len(active) == 0 {
		menu.Running = []Item{{ID: "no_active", Label: noActiveLabel, Disabled: true}}
	} else {
		for _, e := range active {
			menu.Running = append(menu.Running, Item{
				ID:        "project_" + e.session.ProjectID,
				Label:     fmt.Sprintf("▶ %s - %s", e.name, FormatElapsed(e.session.StartTime, now)),
				ProjectID: e.session.ProjectID,
			})
		}
	}

	idle := make([]*model.Project, 0, len(projects))
	for _, p := range projects {
		if !runningByProject[p.ID] {
			idle = append(idle, p)
		}
	}
	sort.Slice(idle, func(i, j int) bool {
		return strings.ToLower(idle[i].Name) < strings.ToLower(idle[j].Name)
	})
	for _, p := range idle {
		menu.StartSubmenu = append(menu.StartSubmenu, Item{
			ID:        "project_" + p.ID,
			Label:     p.Name,
			ProjectID: p.ID,
		})
	}

	return menu
}

// FormatElapsed renders the time since start as "1h 2m 3s", dropping
// leading zero units.
func FormatElapsed(start, now time.Time) string {
	total := int64(now.Sub(start).Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}
