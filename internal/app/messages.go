package app

import (
	"time"

	"atlas/internal/types"
)

type projectsMsg struct {
	seq       int
	projects  []types.Project
	fetchedAt time.Time
	err       error
}

type cacheSnapshotMsg struct {
	projects []types.Project
	state    *types.AppState
	err      error
}

type snapshotSavedMsg struct {
	err error
}

type appStateSavedMsg struct {
	err error
}

type tickMsg time.Time
