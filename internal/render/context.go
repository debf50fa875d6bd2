// Package render builds the pull-mode RenderContext snapshot spec
// §6.2 hands to a renderer each frame. Nothing here subscribes to the
// event bus or mutates GameState (spec §8 property 8); the renderer
// calls Build, reads the result, and is done until the next frame.
// Grounded on the teacher's internal/api payload structs
// (pkg/api/payloads.go) for the "flat, renderer-facing view struct"
// shape, generalized from WebSocket JSON payloads to an in-process pull
// snapshot.
package render

import "github.com/pfassina/grimdark/internal/domain"

// Camera is the visible viewport in tile coordinates.
type Camera struct {
	X, Y, W, H int
}

// OverlayKind closes the set of non-terrain map decorations a renderer
// may draw (spec §6.2).
type OverlayKind uint8

const (
	OverlayMovementRange OverlayKind = iota
	OverlayAttackRange
	OverlayDangerZone
	OverlayCursor
)

// TileView is one cell's terrain state, stripped of anything the
// renderer doesn't need to draw it.
type TileView struct {
	X, Y      int
	TerrainID uint16
}

// UnitView is one visible unit. MoraleState/WoundCount are nil when the
// viewer can't currently read them (no morale/wound component attached
// — not a visibility gate; unlike the timeline preview, on-map unit
// state is always fully visible per spec §6.2's unconditional unit
// list).
type UnitView struct {
	ID          domain.EntityID
	X, Y        int
	Team        domain.Team
	Class       string
	HPCurrent   int
	HPMax       int
	IsSelected  bool
	MoraleState *domain.MoraleState
	WoundCount  *int
}

// Overlay is one map-cell decoration (a tile in the current mover's
// reachable set, a danger-zone highlight, the cursor, ...).
type Overlay struct {
	Kind OverlayKind
	X, Y int
	Team *domain.Team
}

// MenuItem is one selectable line in a Menu.
type MenuItem struct {
	Label     string
	Enabled   bool
	Shortcut  string
}

// Menu is one stacked UI menu (action list, target confirm, ...).
type Menu struct {
	Title       string
	Items       []MenuItem
	SelectedIdx int
}

// Text is one free-floating label (tooltips, banners); StyleTag is an
// opaque renderer-defined hint — the core never interprets it.
type Text struct {
	Anchor   string
	Text     string
	StyleTag string
}

// Visibility closes the set of fidelity levels a timeline preview entry
// can be shown at (spec §6.2's `timeline_preview[i].visibility`,
// supplemented per SPEC_FULL.md section D item 1).
type Visibility uint8

const (
	VisibilityFull Visibility = iota
	VisibilityPartial
	VisibilityHidden
)

func (v Visibility) String() string {
	switch v {
	case VisibilityFull:
		return "Full"
	case VisibilityPartial:
		return "Partial"
	default:
		return "Hidden"
	}
}

// TimelinePreviewEntry is one upcoming activation. ActionIcon is empty
// and Visibility is always Hidden for an entry the viewer can't read at
// all — UnitName is still shown (a name isn't the intent).
type TimelinePreviewEntry struct {
	UnitName      string
	ActionIcon    string
	ReadyInTicks  int
	Visibility    Visibility
}

// ForecastView mirrors combat.Forecast's externally-relevant fields for
// the renderer's preview panel; Counter is nil when the defender cannot
// counter.
type ForecastView struct {
	Attacker domain.EntityID
	Defender domain.EntityID
	DamageMin int
	DamageMax int
	Counter   *ForecastView
}

// RenderContext is spec §6.2's full frame snapshot.
type RenderContext struct {
	Camera           Camera
	Tiles            []TileView
	Units            []UnitView
	Overlays         []Overlay
	Menus            []Menu
	Texts            []Text
	TimelinePreview  []TimelinePreviewEntry
	Forecast         *ForecastView
}
