package app

// SidebarMode is the sidebar's display state. Exactly one value holds at any
// time and transitions happen only through Toggle; nothing in the app flips
// the mode on a timer or as a side effect of data arriving.
type SidebarMode int

const (
	SidebarExpanded SidebarMode = iota
	SidebarCollapsed
)

// Toggle returns the opposite mode. Toggling twice returns the original mode.
func (m SidebarMode) Toggle() SidebarMode {
	if m == SidebarCollapsed {
		return SidebarExpanded
	}
	return SidebarCollapsed
}

func (m SidebarMode) Collapsed() bool {
	return m == SidebarCollapsed
}

func (m SidebarMode) String() string {
	if m == SidebarCollapsed {
		return "collapsed"
	}
	return "expanded"
}

// SidebarModeFromConfig maps the static start_collapsed setting onto the
// initial mode. The running mode is never written back anywhere.
func SidebarModeFromConfig(startCollapsed bool) SidebarMode {
	if startCollapsed {
		return SidebarCollapsed
	}
	return SidebarExpanded
}
