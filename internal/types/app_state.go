package types

import "time"

type AppState struct {
	ActiveProjectID string     `json:"active_project_id"`
	LastSyncedAt    *time.Time `json:"last_synced_at,omitempty"`
}
