package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"atlas/internal/types"
)

var (
	bucketSnapshot = []byte("snapshot")
	bucketAppState = []byte("app_state")
	keyProjects    = []byte("projects")
	keyAppState    = []byte("state")
)

// ProjectSnapshotStore holds the last project collection fetched from the
// studio, preserving the collection's original order byte for byte. Ranking
// ties break on that order, so the cache must never reorder it.
type ProjectSnapshotStore interface {
	LoadProjects(ctx context.Context) ([]types.Project, error)
	ReplaceProjects(ctx context.Context, projects []types.Project) error
}

type AppStateStore interface {
	Load(ctx context.Context) (*types.AppState, error)
	Save(ctx context.Context, state *types.AppState) error
}

type Repository interface {
	Projects() ProjectSnapshotStore
	AppState() AppStateStore
	Close() error
}

type bboltRepository struct {
	db       *bolt.DB
	projects ProjectSnapshotStore
	appState AppStateStore
}

func NewBboltRepository(path string) (Repository, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("repository db path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, err
	}
	if err := initBboltSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	repo := &bboltRepository{db: db}
	repo.projects = &bboltProjectSnapshotStore{db: db}
	repo.appState = &bboltAppStateStore{db: db}
	return repo, nil
}

func (r *bboltRepository) Projects() ProjectSnapshotStore {
	return r.projects
}

func (r *bboltRepository) AppState() AppStateStore {
	return r.appState
}

func (r *bboltRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func initBboltSchema(db *bolt.DB) error {
	return db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketSnapshot); err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists(bucketAppState); err != nil {
			return err
		}
		return nil
	})
}

type bboltProjectSnapshotStore struct {
	db *bolt.DB
	mu sync.Mutex
}

func (s *bboltProjectSnapshotStore) LoadProjects(ctx context.Context) ([]types.Project, error) {
	var projects []types.Project
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSnapshot)
		if b == nil {
			return nil
		}
		raw := b.Get(keyProjects)
		if len(raw) == 0 {
			return nil
		}
		return json.Unmarshal(raw, &projects)
	})
	if err != nil {
		return nil, err
	}
	return projects, nil
}

func (s *bboltProjectSnapshotStore) ReplaceProjects(ctx context.Context, projects []types.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if projects == nil {
		projects = []types.Project{}
	}
	raw, err := json.Marshal(projects)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSnapshot)
		if b == nil {
			return errors.New("snapshot bucket missing")
		}
		return b.Put(keyProjects, raw)
	})
}

type bboltAppStateStore struct {
	db *bolt.DB
	mu sync.Mutex
}

func (s *bboltAppStateStore) Load(ctx context.Context) (*types.AppState, error) {
	state := &types.AppState{}
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketAppState)
		if b == nil {
			return nil
		}
		raw := b.Get(keyAppState)
		if len(raw) == 0 {
			return nil
		}
		return json.Unmarshal(raw, state)
	})
	if err != nil {
		return nil, err
	}
	return state, nil
}

func (s *bboltAppStateStore) Save(ctx context.Context, state *types.AppState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if state == nil {
		return errors.New("state is required")
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketAppState)
		if b == nil {
			return errors.New("app state bucket missing")
		}
		return b.Put(keyAppState, raw)
	})
}
