package app

import (
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"

	"atlas/internal/types"
)

const (
	detailEmptyMessage     = "Select a project."
	detailNoVersionMessage = "No saved versions yet."
	detailNoDescription    = "No description."
)

// DetailPaneController renders the selected project's newest version into a
// scrollable pane: a title header, a metadata line, and the version
// description as markdown.
type DetailPaneController struct {
	viewport viewport.Model
	project  *types.Project
	width    int
	height   int
}

func NewDetailPaneController(width, height int) *DetailPaneController {
	vp := viewport.New(viewport.WithWidth(max(1, width)), viewport.WithHeight(max(1, height)))
	vp.SetContent(detailEmptyMessage)
	return &DetailPaneController{
		viewport: vp,
		width:    max(1, width),
		height:   max(1, height),
	}
}

func (c *DetailPaneController) Resize(width, height int) {
	if c == nil {
		return
	}
	nextWidth := max(1, width)
	nextHeight := max(1, height)
	if c.width == nextWidth && c.height == nextHeight {
		return
	}
	c.width = nextWidth
	c.height = nextHeight
	c.viewport.SetWidth(nextWidth)
	c.viewport.SetHeight(nextHeight)
	c.viewport.SetContent(c.renderContent())
}

// SetProject swaps the pane to a new selection and resets the scroll
// position by rebuilding the viewport at the current size.
func (c *DetailPaneController) SetProject(project *types.Project) {
	if c == nil {
		return
	}
	if project == nil {
		c.project = nil
	} else {
		clone := types.CloneProject(*project)
		c.project = &clone
	}
	vp := viewport.New(viewport.WithWidth(c.width), viewport.WithHeight(c.height))
	vp.SetContent(c.renderContent())
	c.viewport = vp
}

func (c *DetailPaneController) ProjectID() string {
	if c == nil || c.project == nil {
		return ""
	}
	return c.project.ID
}

// Update forwards scroll input to the viewport.
func (c *DetailPaneController) Update(msg tea.Msg) tea.Cmd {
	if c == nil {
		return nil
	}
	updated, cmd := c.viewport.Update(msg)
	c.viewport = updated
	return cmd
}

func (c *DetailPaneController) View() string {
	if c == nil {
		return ""
	}
	return c.viewport.View()
}

func (c *DetailPaneController) renderContent() string {
	if c.project == nil {
		return hintStyle.Render(detailEmptyMessage)
	}
	project := *c.project
	lines := []string{
		detailTitleStyle.Render(truncateToWidth(projectTitle(project), c.width)),
		detailMetaStyle.Render(truncateToWidth(detailMetaLine(project), c.width)),
		"",
	}
	if project.MostRecentVersion == nil {
		lines = append(lines, hintStyle.Render(detailNoVersionMessage))
		return strings.Join(lines, "\n")
	}
	description := strings.TrimSpace(project.MostRecentVersion.Description)
	if description == "" {
		lines = append(lines, hintStyle.Render(detailNoDescription))
		return strings.Join(lines, "\n")
	}
	rendered := renderMarkdown(description, c.width)
	if rendered == "" {
		rendered = hintStyle.Render(detailNoDescription)
	}
	lines = append(lines, rendered)
	return strings.Join(lines, "\n")
}

func detailMetaLine(project types.Project) string {
	parts := []string{project.ID}
	parts = append(parts, "edited "+formatSince(projectEditedAt(project)))
	if created := types.ParseEditedAt(project.CreatedOn); !created.IsZero() {
		parts = append(parts, "created "+created.Format("2006-01-02"))
	}
	if project.MostRecentVersion != nil && project.MostRecentVersion.ID != "" {
		parts = append(parts, "version "+project.MostRecentVersion.ID)
	}
	return strings.Join(parts, " • ")
}
