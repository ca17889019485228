package app

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"atlas/internal/store"
	"atlas/internal/types"
)

func fetchProjectsCmd(api StudioAPI, seq int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		projects, err := api.ListProjects(ctx)
		return projectsMsg{seq: seq, projects: projects, fetchedAt: time.Now().UTC(), err: err}
	}
}

func loadCacheSnapshotCmd(repo store.Repository) tea.Cmd {
	return func() tea.Msg {
		if repo == nil {
			return cacheSnapshotMsg{}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 4*time.Second)
		defer cancel()
		projects, err := repo.Projects().LoadProjects(ctx)
		if err != nil {
			return cacheSnapshotMsg{err: err}
		}
		state, err := repo.AppState().Load(ctx)
		return cacheSnapshotMsg{projects: projects, state: state, err: err}
	}
}

func persistProjectsCmd(repo store.Repository, projects []types.Project) tea.Cmd {
	if repo == nil {
		return nil
	}
	snapshot := types.CloneProjects(projects)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 4*time.Second)
		defer cancel()
		return snapshotSavedMsg{err: repo.Projects().ReplaceProjects(ctx, snapshot)}
	}
}

func persistAppStateCmd(repo store.Repository, state types.AppState) tea.Cmd {
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 4*time.Second)
		defer cancel()
		return appStateSavedMsg{err: repo.AppState().Save(ctx, &state)}
	}
}
