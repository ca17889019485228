package app

import (
	"sort"

	"atlas/internal/types"
)

// recentProjectLimit caps the recent-projects block at a fixed row count.
const recentProjectLimit = 3

// ProjectRankPolicy derives the ordered recent-projects view from the full
// project collection. Implementations must not mutate the input slice.
type ProjectRankPolicy interface {
	RankRecent(projects []types.Project) []types.Project
}

type defaultProjectRankPolicy struct{}

// RankRecent returns the most recently edited projects, newest first, at most
// recentProjectLimit of them. Projects without a parseable edit timestamp
// carry the zero time and therefore sort last. Ties keep their input order,
// so callers that depend on collection order (the studio returns newest
// collections first) get deterministic output. The caller's slice is left
// untouched.
func (defaultProjectRankPolicy) RankRecent(projects []types.Project) []types.Project {
	if len(projects) == 0 {
		return nil
	}
	ranked := make([]types.Project, len(projects))
	copy(ranked, projects)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].LastEditedTime().After(ranked[j].LastEditedTime())
	})
	if len(ranked) > recentProjectLimit {
		ranked = ranked[:recentProjectLimit]
	}
	return ranked
}

// RankRecentProjects applies the default policy. CLI listings share the
// exact ordering the sidebar's recent block shows.
func RankRecentProjects(projects []types.Project) []types.Project {
	return defaultProjectRankPolicy{}.RankRecent(projects)
}

func WithProjectRankPolicy(policy ProjectRankPolicy) ModelOption {
	return func(m *Model) {
		if m == nil {
			return
		}
		if policy == nil {
			m.rankPolicy = defaultProjectRankPolicy{}
			return
		}
		m.rankPolicy = policy
	}
}

func (m *Model) rankPolicyOrDefault() ProjectRankPolicy {
	if m == nil || m.rankPolicy == nil {
		return defaultProjectRankPolicy{}
	}
	return m.rankPolicy
}
