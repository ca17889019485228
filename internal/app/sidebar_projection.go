package app

import (
	"time"

	"atlas/internal/types"
)

// SidebarProjectionInput is the snapshot a projection is built from: the
// display mode, the readiness of the project collection, and the ranked
// recent projects to decorate.
type SidebarProjectionInput struct {
	Mode   SidebarMode
	Ready  bool
	Recent []types.Project

	// Now anchors relative-time decoration; the zero value means wall clock.
	Now time.Time
}

// recentProjectRow is one decorated row of the recent-projects block.
type recentProjectRow struct {
	ID     string
	Title  string
	Edited string
}

// SidebarProjection is the render plan for one frame of the sidebar. Blocks
// whose flag is false must not render at all, not even as blank placeholders.
type SidebarProjection struct {
	ShowBrandMark  bool
	ShowToggleHint bool
	ToggleHint     string
	ShowChrome     bool
	ShowRecents    bool
	ShowProjects   bool
	RecentRows     []recentProjectRow
}

// SidebarProjectionBuilder maps a projection input to a render plan. The
// builder is pure; it never reads the terminal or the clock beyond Input.Now.
type SidebarProjectionBuilder interface {
	Build(input SidebarProjectionInput) SidebarProjection
}

type defaultSidebarProjectionBuilder struct{}

// Build applies the display gate. Collapsed suppresses every content block
// regardless of readiness and leaves only the brand mark and the expand
// affordance. Expanded exposes the chrome; the recents block additionally
// requires the readiness signal, so a collection that is still loading
// renders nothing in its place.
func (defaultSidebarProjectionBuilder) Build(input SidebarProjectionInput) SidebarProjection {
	projection := SidebarProjection{
		ShowBrandMark:  true,
		ShowToggleHint: true,
	}
	if input.Mode.Collapsed() {
		projection.ToggleHint = "expand"
		return projection
	}
	projection.ToggleHint = "collapse"
	projection.ShowChrome = true
	projection.ShowProjects = true
	if !input.Ready {
		return projection
	}
	projection.ShowRecents = true
	now := input.Now
	if now.IsZero() {
		now = time.Now()
	}
	rows := make([]recentProjectRow, 0, len(input.Recent))
	for _, project := range input.Recent {
		if len(rows) == recentProjectLimit {
			break
		}
		edited := project.LastEditedTime()
		rows = append(rows, recentProjectRow{
			ID:     project.ID,
			Title:  project.DisplayTitle(),
			Edited: formatSinceAt(now, timePtrIfSet(edited)),
		})
	}
	projection.RecentRows = rows
	return projection
}

func timePtrIfSet(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func WithSidebarProjectionBuilder(builder SidebarProjectionBuilder) ModelOption {
	return func(m *Model) {
		if m == nil {
			return
		}
		if builder == nil {
			m.projectionBuilder = defaultSidebarProjectionBuilder{}
			return
		}
		m.projectionBuilder = builder
	}
}

func (m *Model) projectionBuilderOrDefault() SidebarProjectionBuilder {
	if m == nil || m.projectionBuilder == nil {
		return defaultSidebarProjectionBuilder{}
	}
	return m.projectionBuilder
}
