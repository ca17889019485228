package app

import (
	"charm.land/bubbles/v2/list"
	tea "charm.land/bubbletea/v2"

	"atlas/internal/types"
)

type SidebarController struct {
	list     list.Model
	delegate *sidebarDelegate
}

func NewSidebarController() *SidebarController {
	items := []list.Item{}
	delegate := &sidebarDelegate{}
	mlist := list.New(items, delegate, minListWidth, minContentHeight)
	mlist.Title = "atlas"
	mlist.SetShowHelp(false)
	mlist.SetFilteringEnabled(false)
	mlist.SetShowPagination(false)
	mlist.SetShowStatusBar(false)
	mlist.Styles.Title = headerStyle
	// Quit stays a model-level decision; the embedded list must never emit it.
	mlist.KeyMap.Quit.SetEnabled(false)
	mlist.KeyMap.ForceQuit.SetEnabled(false)
	return &SidebarController{
		list:     mlist,
		delegate: delegate,
	}
}

func (c *SidebarController) View() string {
	return c.list.View()
}

func (c *SidebarController) Update(msg tea.Msg) tea.Cmd {
	updated, cmd := c.list.Update(msg)
	c.list = updated
	c.syncDelegate()
	return cmd
}

func (c *SidebarController) SetSize(width, height int) {
	c.list.SetSize(width, height)
}

func (c *SidebarController) CursorDown() {
	c.list.CursorDown()
	c.skipSections(1)
	c.syncDelegate()
}

func (c *SidebarController) CursorUp() {
	c.list.CursorUp()
	c.skipSections(-1)
	c.syncDelegate()
}

// skipSections nudges the cursor off section headers so arrow keys land on
// project rows. At the edges the cursor stays where the list put it.
func (c *SidebarController) skipSections(direction int) {
	items := c.list.Items()
	for i := 0; i < len(items); i++ {
		entry, ok := c.list.SelectedItem().(*sidebarItem)
		if !ok || entry == nil || entry.kind != sidebarSection {
			return
		}
		idx := c.list.Index()
		if direction >= 0 {
			if idx >= len(items)-1 {
				return
			}
			c.list.CursorDown()
		} else {
			if idx <= 0 {
				// Nothing above the first section; bounce to the row below it.
				c.list.CursorDown()
				return
			}
			c.list.CursorUp()
		}
	}
}

func (c *SidebarController) Scroll(lines int) {
	if lines == 0 {
		return
	}
	steps := lines
	if steps < 0 {
		steps = -steps
	}
	for i := 0; i < steps; i++ {
		if lines < 0 {
			c.CursorUp()
		} else {
			c.CursorDown()
		}
	}
}

func (c *SidebarController) Select(idx int) {
	c.list.Select(idx)
	c.syncDelegate()
}

func (c *SidebarController) SelectByProjectID(id string) bool {
	if id == "" {
		return false
	}
	for i, item := range c.list.Items() {
		entry, ok := item.(*sidebarItem)
		if !ok || entry == nil || !entry.isProject() {
			continue
		}
		if entry.projectID() == id {
			c.Select(i)
			return true
		}
	}
	return false
}

// SelectByRow maps a click row inside the sidebar onto a list index, taking
// the title chrome and pagination into account.
func (c *SidebarController) SelectByRow(row int) {
	entryIdx, ok := c.indexAtRow(row)
	if !ok {
		return
	}
	c.Select(entryIdx)
}

func (c *SidebarController) ItemAtRow(row int) *sidebarItem {
	entryIdx, ok := c.indexAtRow(row)
	if !ok {
		return nil
	}
	items := c.list.VisibleItems()
	entry, valid := items[entryIdx].(*sidebarItem)
	if !valid {
		return nil
	}
	return entry
}

func (c *SidebarController) indexAtRow(row int) (int, bool) {
	if row < 0 {
		return 0, false
	}
	idx := row - c.headerRows()
	if idx < 0 {
		return 0, false
	}
	items := c.list.VisibleItems()
	if len(items) == 0 {
		return 0, false
	}
	itemHeight := 1
	itemSpacing := 0
	if c.delegate != nil {
		if h := c.delegate.Height(); h > 0 {
			itemHeight = h
		}
		itemSpacing = c.delegate.Spacing()
	}
	step := itemHeight + itemSpacing
	if step <= 0 {
		step = 1
	}
	pageIndex := idx / step
	perPage := c.list.Paginator.PerPage
	if perPage <= 0 {
		perPage = len(items)
	}
	start := c.list.Paginator.Page * perPage
	if start >= len(items) {
		start = 0
	}
	end := start + perPage - 1
	if end >= len(items) {
		end = len(items) - 1
	}
	target := start + pageIndex
	if target > end {
		target = end
	}
	if target < 0 {
		target = 0
	}
	return target, true
}

func (c *SidebarController) headerRows() int {
	if c == nil {
		return 0
	}
	rows := 0
	if c.list.ShowTitle() {
		rows += 1 + c.list.Styles.TitleBar.GetPaddingTop() + c.list.Styles.TitleBar.GetPaddingBottom()
	}
	if c.list.ShowStatusBar() {
		rows += 1 + c.list.Styles.StatusBar.GetPaddingTop() + c.list.Styles.StatusBar.GetPaddingBottom()
	}
	if c.list.ShowPagination() {
		rows++
	}
	if c.list.ShowHelp() {
		rows += 1 + c.list.Styles.HelpStyle.GetPaddingTop() + c.list.Styles.HelpStyle.GetPaddingBottom()
	}
	return rows
}

func (c *SidebarController) Index() int {
	return c.list.Index()
}

func (c *SidebarController) Items() []list.Item {
	return c.list.Items()
}

func (c *SidebarController) SelectedItem() *sidebarItem {
	item := c.list.SelectedItem()
	if item == nil {
		return nil
	}
	entry, ok := item.(*sidebarItem)
	if !ok {
		return nil
	}
	return entry
}

func (c *SidebarController) SelectedKey() string {
	item := c.SelectedItem()
	if item == nil {
		return ""
	}
	return item.key()
}

func (c *SidebarController) SelectedProjectID() string {
	item := c.SelectedItem()
	if item == nil || !item.isProject() {
		return ""
	}
	return item.projectID()
}

// Apply rebuilds the list from a fresh render plan, restoring the previous
// selection by key where it survives, else by the active project.
func (c *SidebarController) Apply(projection SidebarProjection, projects []types.Project, activeProjectID string) *sidebarItem {
	items := buildSidebarItems(projection, projects)
	selectedKey := c.SelectedKey()
	c.list.SetItems(items)
	if len(items) == 0 {
		c.syncDelegate()
		return nil
	}
	c.list.Select(selectSidebarIndex(items, selectedKey, activeProjectID))
	c.syncDelegate()
	return c.SelectedItem()
}

func (c *SidebarController) SetActive(activeProjectID string) {
	if c.delegate != nil {
		c.delegate.activeProjectID = activeProjectID
	}
}

func (c *SidebarController) syncDelegate() {
	if c.delegate != nil {
		c.delegate.selectedKey = c.SelectedKey()
	}
}

func selectSidebarIndex(items []list.Item, selectedKey, activeProjectID string) int {
	if len(items) == 0 {
		return 0
	}
	if selectedKey != "" {
		for i, item := range items {
			entry, ok := item.(*sidebarItem)
			if !ok {
				continue
			}
			if entry.key() == selectedKey {
				return i
			}
		}
	}
	if activeProjectID != "" {
		for i, item := range items {
			entry, ok := item.(*sidebarItem)
			if !ok || !entry.isProject() {
				continue
			}
			if entry.projectID() == activeProjectID {
				return i
			}
		}
	}
	for i, item := range items {
		entry, ok := item.(*sidebarItem)
		if ok && entry.isProject() {
			return i
		}
	}
	return 0
}
