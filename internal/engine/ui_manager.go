package engine

import "github.com/pfassina/grimdark/internal/render"

// UIManager holds the transient menu/text overlays a phase pushes for
// render.Build to pick up — the action-selection list, confirmation
// prompts, and one-shot floating combat text. Nothing here mutates
// GameState; it is pure presentation state (spec §6.2).
type UIManager struct {
	menus []render.Menu
	texts []render.Text
}

func newUIManager() *UIManager { return &UIManager{} }

func (u *UIManager) Menus() []render.Menu { return u.menus }
func (u *UIManager) Texts() []render.Text { return u.texts }

// SetMenu replaces the active menu set (e.g. the ActionSelection
// command list, or none once execution starts).
func (u *UIManager) SetMenu(m render.Menu) { u.menus = []render.Menu{m} }

// ClearMenus drops every active menu.
func (u *UIManager) ClearMenus() { u.menus = nil }

// PushText appends a one-shot floating text (damage numbers, "Missed!",
// objective banners); it stays in Texts() until ClearTexts is called.
func (u *UIManager) PushText(t render.Text) { u.texts = append(u.texts, t) }

// ClearTexts drops every pending text after a frame has read them.
func (u *UIManager) ClearTexts() { u.texts = nil }
