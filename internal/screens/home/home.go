// Package home is the dashboard: today's score, the streak and the six
// category cards.
package home

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mindupgrade/internal/router"
	"github.com/abhisek/mindupgrade/internal/screen"
	"github.com/abhisek/mindupgrade/internal/session"
	"github.com/abhisek/mindupgrade/internal/task"
	"github.com/abhisek/mindupgrade/internal/ui/components"
	"github.com/abhisek/mindupgrade/internal/ui/layout"
)

const saveTimeout = 10 * time.Second

// Progress is the part of the session the dashboard reads and drives.
type Progress interface {
	Snapshot() session.Snapshot
	Persist(ctx context.Context) error
	Logout()
}

// Routes builds the screens reachable from home.
type Routes struct {
	Task    func(id task.ID) screen.Screen
	History func() screen.Screen
	Login   func() screen.Screen
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	progress  Progress
	routes    Routes
	menu      components.Menu
	snap      session.Snapshot
	saving    bool
	notice    string
	noticeErr bool
}

var (
	_ screen.Screen          = (*HomeScreen)(nil)
	_ screen.KeyHintProvider = (*HomeScreen)(nil)
)

// New creates a new HomeScreen.
func New(p Progress, routes Routes) *HomeScreen {
	h := &HomeScreen{progress: p, routes: routes}

	ids := task.All()
	items := make([]components.MenuItem, len(ids))
	for i, id := range ids {
		items[i] = components.MenuItem{
			Label:  id.DisplayName(),
			Icon:   id.Icon(),
			Detail: id.Blurb(),
			Action: func() tea.Cmd { return h.open(id) },
		}
	}
	h.menu = components.NewMenu(items)
	h.refresh()
	return h
}

// refresh reloads the snapshot so cards reflect marks made elsewhere.
func (h *HomeScreen) refresh() {
	h.snap = h.progress.Snapshot()
	for i, id := range task.All() {
		h.menu.Items[i].Done = h.snap.Completed[id]
	}
}

func (h *HomeScreen) open(id task.ID) tea.Cmd {
	s := h.routes.Task(id)
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

func (h *HomeScreen) save() tea.Cmd {
	h.saving = true
	h.notice = "Saving progress..."
	h.noticeErr = false
	p := h.progress
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		return screen.SavedMsg{Err: p.Persist(ctx)}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	h.refresh()
	return nil
}

func (h *HomeScreen) Title() string {
	return "Today"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start"},
		{Key: "H", Description: "History"},
	}
	if h.snap.Unsaved {
		hints = append(hints, layout.KeyHint{Key: "S", Description: "Save"})
	}
	return append(hints,
		layout.KeyHint{Key: "L", Description: "Log out"},
		layout.KeyHint{Key: "Q", Description: "Quit"},
	)
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	h.refresh()

	switch msg := msg.(type) {
	case screen.SavedMsg:
		// Saves started by a task screen surface through the badge.
		if !h.saving {
			return h, nil
		}
		h.saving = false
		h.refresh()
		if msg.Err != nil {
			h.notice = "Still couldn't reach the server. Your progress is kept on this device."
			h.noticeErr = true
		} else {
			h.notice = "Progress saved."
			h.noticeErr = false
		}
		return h, nil

	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "h":
			s := h.routes.History()
			return h, func() tea.Msg { return router.PushScreenMsg{Screen: s} }
		case "l":
			h.progress.Logout()
			s := h.routes.Login()
			return h, func() tea.Msg { return router.ResetScreenMsg{Screen: s} }
		case "q":
			return h, tea.Quit
		case "s":
			if h.snap.Unsaved && !h.saving {
				return h, h.save()
			}
			return h, nil
		}
		// 1-6 open a card directly.
		if len(key) == 1 && key[0] >= '1' && key[0] <= '0'+task.Count {
			i := int(key[0] - '1')
			h.menu.Select(i)
			return h, h.open(task.All()[i])
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header, footer and frame gaps
	// to estimate the terminal height.
	termHeight := height + layout.HeaderHeight + layout.FooterHeight + 2
	compact := layout.IsCompactHeight(termHeight) || layout.IsCompactWidth(width)

	// All sections share a uniform content width so they line up.
	cw := components.ContentWidth(width)

	var sections []string

	sections = append(sections, renderTitle(cw, compact))
	if h.snap.Email != "" {
		sections = append(sections, renderGreeting(h.snap.Email, cw))
	}
	if !compact {
		sections = append(sections, renderMascotBox(mascotFor(h.snap.Score, h.snap.Unsaved), cw))
	}
	sections = append(sections, renderStatsBar(h.snap, cw, compact))
	sections = append(sections, components.Card(h.menu.View(cw-8), cw))

	switch {
	case h.snap.Unsaved && !h.saving:
		sections = append(sections, renderUnsaved(cw))
	case h.snap.Score == 100:
		sections = append(sections, renderPerfect(cw))
	}
	if h.notice != "" {
		sections = append(sections, components.Notice(h.notice, h.noticeErr))
	}

	gap := "\n\n"
	if compact {
		gap = "\n"
	}
	content := strings.Join(sections, gap)

	return components.Frame(content, width, height)
}
