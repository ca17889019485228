package app

import (
	"strings"
	"time"

	"atlas/internal/types"
)

type SyncState string

const (
	SyncStateIdle    SyncState = "idle"
	SyncStateLoading SyncState = "loading"
	SyncStateReady   SyncState = "ready"
	SyncStateFailed  SyncState = "failed"
)

type SyncEventType string

const (
	SyncEventStarted     SyncEventType = "sync_started"
	SyncEventSucceeded   SyncEventType = "sync_succeeded"
	SyncEventFailed      SyncEventType = "sync_failed"
	SyncEventInvalidated SyncEventType = "sync_invalidated"
)

type SyncEvent struct {
	Type     SyncEventType
	Projects []types.Project
	Reason   string
	At       time.Time
}

type SyncTransition struct {
	Changed bool
	Ignored bool
	Reason  string
}

type SyncSnapshot struct {
	State       SyncState
	Projects    []types.Project
	LastSynced  time.Time
	LastFailure string
}

// ProjectSyncMachine owns the readiness signal for the project collection.
// Readiness is true exactly in the ready state; booting from the snapshot
// cache seeds the collection without touching the state, so the recents
// block stays suppressed until a live sync succeeds.
type ProjectSyncMachine struct {
	state       SyncState
	projects    []types.Project
	lastSynced  time.Time
	lastFailure string
}

func NewProjectSyncMachine() *ProjectSyncMachine {
	return &ProjectSyncMachine{state: SyncStateIdle}
}

func (s *ProjectSyncMachine) State() SyncState {
	if s == nil {
		return SyncStateIdle
	}
	return s.state
}

func (s *ProjectSyncMachine) Ready() bool {
	return s != nil && s.state == SyncStateReady
}

func (s *ProjectSyncMachine) Snapshot() SyncSnapshot {
	if s == nil {
		return SyncSnapshot{State: SyncStateIdle}
	}
	return SyncSnapshot{
		State:       s.state,
		Projects:    types.CloneProjects(s.projects),
		LastSynced:  s.lastSynced,
		LastFailure: s.lastFailure,
	}
}

// Projects returns a copy of the held collection in its original order.
func (s *ProjectSyncMachine) Projects() []types.Project {
	if s == nil {
		return nil
	}
	return types.CloneProjects(s.projects)
}

// SeedProjects installs a collection without changing state. Used when the
// UI boots from the snapshot cache.
func (s *ProjectSyncMachine) SeedProjects(projects []types.Project) {
	if s == nil {
		return
	}
	s.projects = types.CloneProjects(projects)
}

func (s *ProjectSyncMachine) Apply(event SyncEvent) SyncTransition {
	if s == nil {
		return SyncTransition{Ignored: true, Reason: "nil state machine"}
	}
	switch event.Type {
	case SyncEventStarted:
		return s.applyStarted(event)
	case SyncEventSucceeded:
		return s.applySucceeded(event)
	case SyncEventFailed:
		return s.applyFailed(event)
	case SyncEventInvalidated:
		return s.applyInvalidated(event)
	default:
		return SyncTransition{Ignored: true, Reason: "unknown event"}
	}
}

func (s *ProjectSyncMachine) applyStarted(event SyncEvent) SyncTransition {
	if s.state == SyncStateLoading {
		return SyncTransition{Ignored: true, Reason: "sync already in flight"}
	}
	s.state = SyncStateLoading
	return SyncTransition{Changed: true}
}

func (s *ProjectSyncMachine) applySucceeded(event SyncEvent) SyncTransition {
	if s.state != SyncStateLoading {
		return SyncTransition{Ignored: true, Reason: "no sync in flight"}
	}
	syncedAt := event.At.UTC()
	if syncedAt.IsZero() {
		syncedAt = time.Now().UTC()
	}
	s.state = SyncStateReady
	s.projects = types.CloneProjects(event.Projects)
	s.lastSynced = syncedAt
	s.lastFailure = ""
	return SyncTransition{Changed: true}
}

func (s *ProjectSyncMachine) applyFailed(event SyncEvent) SyncTransition {
	if s.state != SyncStateLoading {
		return SyncTransition{Ignored: true, Reason: "no sync in flight"}
	}
	reason := strings.TrimSpace(event.Reason)
	if reason == "" {
		reason = "sync failed"
	}
	s.state = SyncStateFailed
	s.lastFailure = reason
	return SyncTransition{Changed: true, Reason: reason}
}

func (s *ProjectSyncMachine) applyInvalidated(event SyncEvent) SyncTransition {
	if s.state == SyncStateIdle {
		return SyncTransition{Ignored: true, Reason: "nothing to invalidate"}
	}
	// The held collection survives invalidation so the browser list keeps
	// showing the last good snapshot while readiness is withdrawn.
	s.state = SyncStateIdle
	return SyncTransition{Changed: true}
}
