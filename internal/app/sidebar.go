package app

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"charm.land/bubbles/v2/list"
	tea "charm.land/bubbletea/v2"

	"atlas/internal/types"
)

const (
	sidebarTitleMax      = 48
	recentsSectionLabel  = "Recent"
	projectsSectionLabel = "Projects"
	activeDot            = "●"
	inactiveDot          = " "
)

type sidebarItemKind int

const (
	sidebarSection sidebarItemKind = iota
	sidebarRecent
	sidebarProject
)

type sidebarItem struct {
	kind    sidebarItemKind
	label   string
	count   int
	row     recentProjectRow
	project types.Project
}

func (s *sidebarItem) Title() string {
	switch s.kind {
	case sidebarSection:
		return s.label
	case sidebarRecent:
		return s.row.Title
	case sidebarProject:
		return projectTitle(s.project)
	default:
		return ""
	}
}

func (s *sidebarItem) Description() string {
	switch s.kind {
	case sidebarRecent:
		return s.row.Edited
	case sidebarProject:
		return formatSince(projectEditedAt(s.project))
	default:
		return ""
	}
}

func (s *sidebarItem) FilterValue() string {
	return s.Title()
}

func (s *sidebarItem) key() string {
	switch s.kind {
	case sidebarSection:
		return "section:" + s.label
	case sidebarRecent:
		return "recent:" + s.row.ID
	case sidebarProject:
		return "proj:" + s.project.ID
	default:
		return ""
	}
}

func (s *sidebarItem) isProject() bool {
	return s != nil && (s.kind == sidebarRecent || s.kind == sidebarProject)
}

func (s *sidebarItem) projectID() string {
	switch s.kind {
	case sidebarRecent:
		return s.row.ID
	case sidebarProject:
		return s.project.ID
	default:
		return ""
	}
}

type sidebarDelegate struct {
	activeProjectID string
	selectedKey     string
}

func (d *sidebarDelegate) Height() int {
	return 1
}

func (d *sidebarDelegate) Spacing() int {
	return 0
}

func (d *sidebarDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd {
	return nil
}

func (d *sidebarDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	entry, ok := item.(*sidebarItem)
	if !ok {
		return
	}
	isSelected := d.selectedKey != "" && entry.key() == d.selectedKey
	maxWidth := m.Width()
	switch entry.kind {
	case sidebarSection:
		label := entry.label
		if entry.count > 0 {
			label = fmt.Sprintf("%s (%d)", label, entry.count)
		}
		line := truncateToWidth(label, maxWidth)
		style := sectionStyle
		if isSelected {
			style = selectedStyle
		}
		fmt.Fprint(w, style.Render(line))
	case sidebarRecent, sidebarProject:
		title := entry.Title()
		since := entry.Description()
		indicator := inactiveDot
		if entry.projectID() != "" && entry.projectID() == d.activeProjectID {
			indicator = activeDot
		}
		prefix := fmt.Sprintf(" %s ", indicator)
		suffix := ""
		if strings.TrimSpace(since) != "" {
			suffix = fmt.Sprintf(" • %s", since)
		}
		available := maxWidth - stringWidth(prefix) - stringWidth(suffix)
		if available <= 0 {
			title = ""
		} else {
			title = truncateToWidth(title, available)
		}
		if stringWidth(prefix)+stringWidth(title)+stringWidth(suffix) > maxWidth {
			mainWidth := maxWidth - stringWidth(prefix)
			if mainWidth <= 0 {
				title = ""
				suffix = ""
			} else if stringWidth(title) > mainWidth {
				title = truncateToWidth(title, mainWidth)
				suffix = ""
			} else {
				suffix = truncateToWidth(suffix, mainWidth-stringWidth(title))
			}
		}
		style := projectStyle
		if entry.projectID() != "" && entry.projectID() == d.activeProjectID {
			style = projectActiveStyle
		}
		if isSelected {
			style = selectedStyle
		}
		fmt.Fprint(w, style.Render(prefix+title+suffix))
	}
}

// buildSidebarItems flattens the render plan into list rows. The recents
// block comes from the projection's decorated rows; the browser block lists
// the full collection in its original order.
func buildSidebarItems(projection SidebarProjection, projects []types.Project) []list.Item {
	items := make([]list.Item, 0, len(projects)+len(projection.RecentRows)+2)
	if projection.ShowRecents && len(projection.RecentRows) > 0 {
		items = append(items, &sidebarItem{kind: sidebarSection, label: recentsSectionLabel, count: len(projection.RecentRows)})
		for _, row := range projection.RecentRows {
			items = append(items, &sidebarItem{kind: sidebarRecent, row: row})
		}
	}
	if projection.ShowProjects && len(projects) > 0 {
		items = append(items, &sidebarItem{kind: sidebarSection, label: projectsSectionLabel, count: len(projects)})
		for _, project := range projects {
			items = append(items, &sidebarItem{kind: sidebarProject, project: project})
		}
	}
	return items
}

func projectTitle(p types.Project) string {
	return truncateText(cleanTitle(p.DisplayTitle()), sidebarTitleMax)
}

func projectEditedAt(p types.Project) *time.Time {
	edited := p.LastEditedTime()
	if edited.IsZero() {
		return nil
	}
	return &edited
}

func cleanTitle(input string) string {
	if input == "" {
		return ""
	}
	var builder strings.Builder
	builder.Grow(len(input))
	lastSpace := false
	for _, r := range input {
		if unicode.IsSpace(r) {
			if builder.Len() == 0 || lastSpace {
				continue
			}
			builder.WriteByte(' ')
			lastSpace = true
			continue
		}
		if r < 32 || r == 127 {
			continue
		}
		builder.WriteRune(r)
		lastSpace = false
	}
	return strings.TrimSpace(builder.String())
}

func formatSince(last *time.Time) string {
	return formatSinceAt(time.Now(), last)
}

func formatSinceAt(now time.Time, last *time.Time) string {
	if last == nil || last.IsZero() {
		return "—"
	}
	delta := now.Sub(*last)
	if delta < 0 {
		delta = 0
	}
	switch {
	case delta < time.Minute:
		return "just now"
	case delta < time.Hour:
		return fmt.Sprintf("%dm ago", int(delta.Minutes()))
	case delta < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(delta.Hours()))
	default:
		days := int(delta.Hours() / 24)
		return fmt.Sprintf("%dd ago", days)
	}
}

func truncateText(text string, maxLen int) string {
	text = strings.TrimSpace(text)
	if maxLen <= 0 || len(text) <= maxLen {
		return text
	}
	return strings.TrimSpace(text[:maxLen]) + "…"
}
