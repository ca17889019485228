package app

import (
	"context"

	"atlas/internal/client"
	"atlas/internal/types"
)

type StudioAPI interface {
	ListProjects(ctx context.Context) ([]types.Project, error)
	GetProject(ctx context.Context, projectID string) (*types.Project, error)
	ProjectURL(projectID string) string
}

type ClientAPI struct {
	client *client.Client
}

func NewClientAPI(client *client.Client) *ClientAPI {
	return &ClientAPI{client: client}
}

func (a *ClientAPI) ListProjects(ctx context.Context) ([]types.Project, error) {
	return a.client.ListProjects(ctx)
}

func (a *ClientAPI) GetProject(ctx context.Context, projectID string) (*types.Project, error) {
	return a.client.GetProject(ctx, projectID)
}

func (a *ClientAPI) ProjectURL(projectID string) string {
	return a.client.ProjectURL(projectID)
}
