package app

const (
	minListWidth       = 24
	maxListWidth       = 40
	minViewportWidth   = 20
	minContentHeight   = 6
	collapsedRailWidth = 4
	statusLinePadding  = 1
)

type resizeLayout struct {
	contentHeight int
	sidebarWidth  int
	viewportWidth int
}

// computeSidebarWidth sizes the sidebar column. Collapsed mode keeps a fixed
// rail wide enough for the brand mark and the expand affordance; expanded
// mode takes a third of the terminal, clamped, then shrinks if the detail
// pane would starve.
func computeSidebarWidth(totalWidth int, mode SidebarMode) int {
	if mode.Collapsed() {
		return collapsedRailWidth
	}
	listWidth := clamp(totalWidth/3, minListWidth, maxListWidth)
	if totalWidth-listWidth-1 < minViewportWidth {
		listWidth = max(minListWidth, totalWidth/2)
	}
	return listWidth
}

func resolveResizeLayout(width, height int, mode SidebarMode) resizeLayout {
	layout := resizeLayout{
		contentHeight: max(minContentHeight, height-2),
		sidebarWidth:  computeSidebarWidth(width, mode),
		viewportWidth: width,
	}
	if layout.sidebarWidth > 0 {
		layout.viewportWidth = max(minViewportWidth, width-layout.sidebarWidth-1)
	}
	return layout
}

func clamp(value, minValue, maxValue int) int {
	if value < minValue {
		return minValue
	}
	if value > maxValue {
		return maxValue
	}
	return value
}
