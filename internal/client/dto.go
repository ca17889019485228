package client

import "atlas/internal/types"

type ProjectsResponse struct {
	Projects []types.Project `json:"projects"`
}
