package main

import (
	"context"
	"io"

	"atlas/internal/app"
	studioclient "atlas/internal/client"
	"atlas/internal/config"
	"atlas/internal/logging"
	"atlas/internal/store"
	"atlas/internal/types"
)

type clientFactory func() (studioClient, error)

type repositoryFactory func() (store.Repository, error)

type uiLogFactory func(level logging.Level) (logging.Logger, io.Closer, error)

type studioClient interface {
	ListProjects(ctx context.Context) ([]types.Project, error)
	GetProject(ctx context.Context, projectID string) (*types.Project, error)
	ProjectURL(projectID string) string
	RunUI(repo store.Repository, startCollapsed bool, logger logging.Logger, bindings *app.Keybindings) error
}

type studioClientAdapter struct {
	client *studioclient.Client
}

func newStudioClient() (studioClient, error) {
	client, err := studioclient.New()
	if err != nil {
		return nil, err
	}
	return &studioClientAdapter{client: client}, nil
}

func openSnapshotRepository() (store.Repository, error) {
	path, err := config.SnapshotPath()
	if err != nil {
		return nil, err
	}
	return store.NewBboltRepository(path)
}

func openUILogFile(level logging.Level) (logging.Logger, io.Closer, error) {
	path, err := config.UILogPath()
	if err != nil {
		return nil, nil, err
	}
	return logging.OpenFile(path, level)
}

func (a *studioClientAdapter) ListProjects(ctx context.Context) ([]types.Project, error) {
	return a.client.ListProjects(ctx)
}

func (a *studioClientAdapter) GetProject(ctx context.Context, projectID string) (*types.Project, error) {
	return a.client.GetProject(ctx, projectID)
}

func (a *studioClientAdapter) ProjectURL(projectID string) string {
	return a.client.ProjectURL(projectID)
}

func (a *studioClientAdapter) RunUI(repo store.Repository, startCollapsed bool, logger logging.Logger, bindings *app.Keybindings) error {
	return app.Run(a.client, repo,
		app.WithSidebarMode(app.SidebarModeFromConfig(startCollapsed)),
		app.WithLogger(logger),
		app.WithKeybindings(bindings),
	)
}
