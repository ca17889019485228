package types

import (
	"strings"
	"time"
)

// UntitledProjectTitle is the studio's server-side default title, shown
// whenever a project has no usable title of its own.
const UntitledProjectTitle = "Untitled Map"

type ProjectVersion struct {
	ID          string `json:"id"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	LastEdited  string `json:"last_edited,omitempty"`
}

type Project struct {
	ID                string          `json:"id"`
	Title             string          `json:"title,omitempty"`
	CreatedOn         string          `json:"created_on,omitempty"`
	MostRecentVersion *ProjectVersion `json:"most_recent_version,omitempty"`
}

// DisplayTitle returns the project title with whitespace normalized, or the
// untitled placeholder when the project carries no usable title.
func (p Project) DisplayTitle() string {
	title := strings.Join(strings.Fields(p.Title), " ")
	if title == "" {
		return UntitledProjectTitle
	}
	return title
}

// LastEditedTime resolves the project's recency timestamp from its most
// recent version. A missing version, a missing field, or an unparseable
// value all resolve to the zero time so ordering never fails.
func (p Project) LastEditedTime() time.Time {
	if p.MostRecentVersion == nil {
		return time.Time{}
	}
	return ParseEditedAt(p.MostRecentVersion.LastEdited)
}

// ParseEditedAt parses an ISO-8601 timestamp as emitted by the studio API.
// Unparseable input maps to the zero time rather than an error.
func ParseEditedAt(raw string) time.Time {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}
	}
	if parsed, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return parsed
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed
	}
	return time.Time{}
}

func CloneProject(in Project) Project {
	out := in
	if in.MostRecentVersion != nil {
		version := *in.MostRecentVersion
		out.MostRecentVersion = &version
	}
	return out
}

func CloneProjects(in []Project) []Project {
	if in == nil {
		return nil
	}
	out := make([]Project, len(in))
	for i, project := range in {
		out[i] = CloneProject(project)
	}
	return out
}
