package app

import (
	"testing"
	"time"

	"atlas/internal/types"
)

func TestFormatSinceBuckets(t *testing.T) {
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		last *time.Time
		want string
	}{
		{name: "nil", last: nil, want: "—"},
		{name: "zero", last: &time.Time{}, want: "—"},
		{name: "seconds ago", last: timeAt(now, -30*time.Second), want: "just now"},
		{name: "future clock skew", last: timeAt(now, 45*time.Second), want: "just now"},
		{name: "minutes", last: timeAt(now, -14*time.Minute), want: "14m ago"},
		{name: "hours", last: timeAt(now, -3*time.Hour), want: "3h ago"},
		{name: "days", last: timeAt(now, -50*time.Hour), want: "2d ago"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := formatSinceAt(now, tc.last); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func timeAt(base time.Time, offset time.Duration) *time.Time {
	t := base.Add(offset)
	return &t
}

func TestCleanTitle(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "Harbor Soundings", want: "Harbor Soundings"},
		{name: "collapses whitespace", input: "  Harbor\t\tSoundings \n", want: "Harbor Soundings"},
		{name: "strips control runes", input: "Har\x07bor\x1b[31m", want: "Harbor[31m"},
		{name: "keeps unicode", input: "Café du Monde", want: "Café du Monde"},
		{name: "empty", input: "", want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := cleanTitle(tc.input); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestTruncateToWidth(t *testing.T) {
	if got := truncateToWidth("abcdef", 4); got != "abc…" {
		t.Fatalf("expected abc…, got %q", got)
	}
	if got := truncateToWidth("abc", 4); got != "abc" {
		t.Fatalf("expected abc, got %q", got)
	}
	if got := truncateToWidth("abcdef", 1); got != "…" {
		t.Fatalf("expected single ellipsis, got %q", got)
	}
	if got := truncateToWidth("abcdef", 0); got != "abcdef" {
		t.Fatalf("expected passthrough for zero width, got %q", got)
	}
}

func TestBuildSidebarItemsLayout(t *testing.T) {
	projects := []types.Project{
		editedProject("P0000000001", "alpha", "2026-08-24T10:00:00+00:00"),
		editedProject("P0000000002", "bravo", "2026-08-23T10:00:00+00:00"),
	}
	projection := SidebarProjection{
		ShowChrome:   true,
		ShowProjects: true,
		ShowRecents:  true,
		RecentRows: []recentProjectRow{
			{ID: "P0000000001", Title: "alpha", Edited: "2h ago"},
		},
	}
	items := buildSidebarItems(projection, projects)
	if len(items) != 5 {
		t.Fatalf("expected 5 rows (2 sections, 1 recent, 2 projects), got %d", len(items))
	}
	head, ok := items[0].(*sidebarItem)
	if !ok || head.kind != sidebarSection || head.label != recentsSectionLabel {
		t.Fatalf("expected recents section first, got %+v", items[0])
	}
	recent, ok := items[1].(*sidebarItem)
	if !ok || recent.kind != sidebarRecent || recent.projectID() != "P0000000001" {
		t.Fatalf("expected recent row second, got %+v", items[1])
	}
	browser, ok := items[2].(*sidebarItem)
	if !ok || browser.kind != sidebarSection || browser.count != 2 {
		t.Fatalf("expected projects section with count 2, got %+v", items[2])
	}
}

func TestBuildSidebarItemsSuppressedBlocks(t *testing.T) {
	projects := []types.Project{
		editedProject("P0000000001", "alpha", "2026-08-24T10:00:00+00:00"),
	}

	loading := buildSidebarItems(SidebarProjection{ShowChrome: true, ShowProjects: true}, projects)
	if len(loading) != 2 {
		t.Fatalf("expected projects block only while loading, got %d rows", len(loading))
	}
	for _, item := range loading {
		entry := item.(*sidebarItem)
		if entry.kind == sidebarRecent {
			t.Fatalf("expected no recent rows while loading")
		}
	}

	collapsed := buildSidebarItems(SidebarProjection{}, projects)
	if len(collapsed) != 0 {
		t.Fatalf("expected no rows when collapsed, got %d", len(collapsed))
	}

	empty := buildSidebarItems(SidebarProjection{ShowChrome: true, ShowProjects: true, ShowRecents: true}, nil)
	if len(empty) != 0 {
		t.Fatalf("expected the empty collection to render nothing, got %d rows", len(empty))
	}
}

func TestSidebarItemKeysAndAccessors(t *testing.T) {
	section := &sidebarItem{kind: sidebarSection, label: recentsSectionLabel}
	if section.key() != "section:Recent" || section.isProject() {
		t.Fatalf("unexpected section item accessors: key=%q", section.key())
	}
	recent := &sidebarItem{kind: sidebarRecent, row: recentProjectRow{ID: "P0000000001", Title: "alpha", Edited: "2h ago"}}
	if recent.key() != "recent:P0000000001" || !recent.isProject() || recent.projectID() != "P0000000001" {
		t.Fatalf("unexpected recent item accessors: key=%q", recent.key())
	}
	if recent.Title() != "alpha" || recent.Description() != "2h ago" {
		t.Fatalf("unexpected recent row decoration: %q / %q", recent.Title(), recent.Description())
	}
	project := &sidebarItem{kind: sidebarProject, project: editedProject("P0000000002", "bravo", "")}
	if project.key() != "proj:P0000000002" || project.projectID() != "P0000000002" {
		t.Fatalf("unexpected project item accessors: key=%q", project.key())
	}
	if project.Description() != "—" {
		t.Fatalf("expected em dash for undated project, got %q", project.Description())
	}
}

func TestProjectTitleAppliesPlaceholderAndHygiene(t *testing.T) {
	if got := projectTitle(types.Project{ID: "P0000000001"}); got != types.UntitledProjectTitle {
		t.Fatalf("expected placeholder title, got %q", got)
	}
	if got := projectTitle(types.Project{ID: "P0000000001", Title: "  Trail \t Atlas "}); got != "Trail Atlas" {
		t.Fatalf("expected cleaned title, got %q", got)
	}
}
