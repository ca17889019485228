package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"atlas/internal/app"
	studioclient "atlas/internal/client"
	"atlas/internal/logging"
	"atlas/internal/store"
	"atlas/internal/types"
)

func cliProject(id, title, edited string) types.Project {
	p := types.Project{ID: id, Title: title}
	if edited != "" {
		p.MostRecentVersion = &types.ProjectVersion{ID: "M" + id[1:], LastEdited: edited}
	}
	return p
}

func TestProjectsCommandPrintsTable(t *testing.T) {
	stdout := &bytes.Buffer{}
	fake := &fakeStudioClient{
		projectsResp: []types.Project{
			cliProject("P0000000001", "Harbor Soundings", "2026-08-24T10:00:00Z"),
			cliProject("P0000000002", "", ""),
		},
	}
	cmd := NewProjectsCommand(stdout, &bytes.Buffer{}, fixedFactory(fake), nil)

	if err := cmd.Run(nil); err != nil {
		t.Fatalf("expected projects to succeed, got err=%v", err)
	}
	if fake.listCalls != 1 {
		t.Fatalf("expected one list call, got %d", fake.listCalls)
	}
	out := stdout.String()
	if !strings.Contains(out, "ID") || !strings.Contains(out, "TITLE") || !strings.Contains(out, "EDITED") {
		t.Fatalf("expected header in output, got %q", out)
	}
	if !strings.Contains(out, "Harbor Soundings") || !strings.Contains(out, "2026-08-24T10:00:00Z") {
		t.Fatalf("expected project row in output, got %q", out)
	}
	if !strings.Contains(out, types.UntitledProjectTitle) {
		t.Fatalf("expected placeholder title for blank name, got %q", out)
	}
}

func TestProjectsCommandRecentRanksAndLimits(t *testing.T) {
	stdout := &bytes.Buffer{}
	fake := &fakeStudioClient{
		projectsResp: []types.Project{
			cliProject("P0000000004", "Old Survey", "2026-08-01T10:00:00Z"),
			cliProject("P0000000002", "Ridge Trails", "2026-08-23T10:00:00Z"),
			cliProject("P0000000001", "Harbor Soundings", "2026-08-24T10:00:00Z"),
			cliProject("P0000000003", "Creek Atlas", "2026-08-22T10:00:00Z"),
		},
	}
	cmd := NewProjectsCommand(stdout, &bytes.Buffer{}, fixedFactory(fake), nil)

	if err := cmd.Run([]string{"--recent"}); err != nil {
		t.Fatalf("expected projects to succeed, got err=%v", err)
	}
	out := stdout.String()
	if strings.Contains(out, "P0000000004") {
		t.Fatalf("expected fourth project dropped, got %q", out)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header plus three rows, got %d lines: %q", len(lines), out)
	}
	if !strings.HasPrefix(lines[1], "P0000000001") {
		t.Fatalf("expected newest project first, got %q", lines[1])
	}
}

func TestProjectsCommandCachedReadsSnapshot(t *testing.T) {
	stdout := &bytes.Buffer{}
	fake := &fakeStudioClient{}
	repo := &fakeRepository{
		projects: []types.Project{cliProject("P0000000009", "Cached Map", "2026-08-20T10:00:00Z")},
	}
	cmd := NewProjectsCommand(stdout, &bytes.Buffer{}, fixedFactory(fake), fixedRepository(repo))

	if err := cmd.Run([]string{"--cached"}); err != nil {
		t.Fatalf("expected cached projects to succeed, got err=%v", err)
	}
	if fake.listCalls != 0 {
		t.Fatalf("expected no API calls, got %d", fake.listCalls)
	}
	if repo.loadCalls != 1 {
		t.Fatalf("expected one snapshot read, got %d", repo.loadCalls)
	}
	if repo.closeCalls != 1 {
		t.Fatalf("expected repository closed, got %d", repo.closeCalls)
	}
	if !strings.Contains(stdout.String(), "Cached Map") {
		t.Fatalf("expected cached row in output, got %q", stdout.String())
	}
}

func TestProjectsCommandJSON(t *testing.T) {
	stdout := &bytes.Buffer{}
	fake := &fakeStudioClient{
		projectsResp: []types.Project{cliProject("P0000000001", "Harbor Soundings", "2026-08-24T10:00:00Z")},
	}
	cmd := NewProjectsCommand(stdout, &bytes.Buffer{}, fixedFactory(fake), nil)

	if err := cmd.Run([]string{"--json"}); err != nil {
		t.Fatalf("expected projects to succeed, got err=%v", err)
	}
	var projects []types.Project
	if err := json.Unmarshal(stdout.Bytes(), &projects); err != nil {
		t.Fatalf("expected valid json output, got err=%v, raw=%q", err, stdout.String())
	}
	if len(projects) != 1 || projects[0].ID != "P0000000001" {
		t.Fatalf("unexpected decoded projects: %#v", projects)
	}
}

func TestShowCommandPrintsProject(t *testing.T) {
	stdout := &bytes.Buffer{}
	fake := &fakeStudioClient{
		getResp: &types.Project{
			ID:        "P0000000001",
			Title:     "Harbor Soundings",
			CreatedOn: "2026-07-01T09:00:00Z",
			MostRecentVersion: &types.ProjectVersion{
				ID:         "M0000000001",
				LastEdited: "2026-08-24T10:00:00Z",
			},
		},
	}
	cmd := NewShowCommand(stdout, &bytes.Buffer{}, fixedFactory(fake))

	if err := cmd.Run([]string{"P0000000001"}); err != nil {
		t.Fatalf("expected show to succeed, got err=%v", err)
	}
	if fake.getID != "P0000000001" {
		t.Fatalf("expected project fetched by id, got %q", fake.getID)
	}
	out := stdout.String()
	for _, want := range []string{
		"Harbor Soundings",
		"https://studio.test/project/P0000000001",
		"2026-07-01T09:00:00Z",
		"2026-08-24T10:00:00Z",
		"M0000000001",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output, got %q", want, out)
		}
	}
}

func TestShowCommandJSON(t *testing.T) {
	stdout := &bytes.Buffer{}
	fake := &fakeStudioClient{
		getResp: &types.Project{ID: "P0000000001", Title: "Harbor Soundings"},
	}
	cmd := NewShowCommand(stdout, &bytes.Buffer{}, fixedFactory(fake))

	if err := cmd.Run([]string{"--json", "P0000000001"}); err != nil {
		t.Fatalf("expected show to succeed, got err=%v", err)
	}
	var project types.Project
	if err := json.Unmarshal(stdout.Bytes(), &project); err != nil {
		t.Fatalf("expected valid json output, got err=%v, raw=%q", err, stdout.String())
	}
	if project.ID != "P0000000001" {
		t.Fatalf("unexpected decoded project: %#v", project)
	}
}

func TestShowCommandReportsMissingProject(t *testing.T) {
	fake := &fakeStudioClient{
		getErr: &studioclient.APIError{StatusCode: 404, Message: "No project matches the given query."},
	}
	cmd := NewShowCommand(&bytes.Buffer{}, &bytes.Buffer{}, fixedFactory(fake))

	err := cmd.Run([]string{"P0000000042"})
	if err == nil || err.Error() != "project P0000000042 not found" {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestShowCommandRequiresProjectID(t *testing.T) {
	cmd := NewShowCommand(&bytes.Buffer{}, &bytes.Buffer{}, fixedFactory(&fakeStudioClient{}))
	err := cmd.Run(nil)
	if err == nil || !strings.Contains(err.Error(), "project id") {
		t.Fatalf("expected project id validation error, got %v", err)
	}
	err = cmd.Run([]string{"P1", "P2"})
	if err == nil || !strings.Contains(err.Error(), "project id") {
		t.Fatalf("expected project id validation error, got %v", err)
	}
}

func TestUICommandRunsUIWithConfig(t *testing.T) {
	fake := &fakeStudioClient{}
	repo := &fakeRepository{}
	var openedLevel logging.Level

	cmd := NewUICommand(
		&bytes.Buffer{},
		fixedFactory(fake),
		fixedRepository(repo),
		func(level logging.Level) (logging.Logger, io.Closer, error) {
			openedLevel = level
			return logging.Nop(), nopCloser{}, nil
		},
	)

	if err := cmd.Run([]string{"--collapsed", "--log-level", "debug"}); err != nil {
		t.Fatalf("expected ui command to succeed, got err=%v", err)
	}
	if fake.runUICalls != 1 {
		t.Fatalf("expected ui run once, got %d", fake.runUICalls)
	}
	if !fake.runUICollapsed {
		t.Fatalf("expected collapsed start")
	}
	if fake.runUIRepo != repo {
		t.Fatalf("expected snapshot repository passed through")
	}
	if fake.runUIBindings == nil {
		t.Fatalf("expected keybindings passed through")
	}
	if openedLevel != logging.Debug {
		t.Fatalf("expected debug log level, got %v", openedLevel)
	}
	if repo.closeCalls != 1 {
		t.Fatalf("expected repository closed after run, got %d", repo.closeCalls)
	}
}

func TestUICommandDegradesWithoutCacheAndLog(t *testing.T) {
	fake := &fakeStudioClient{}
	cmd := NewUICommand(
		&bytes.Buffer{},
		fixedFactory(fake),
		func() (store.Repository, error) {
			return nil, errors.New("cache locked")
		},
		func(level logging.Level) (logging.Logger, io.Closer, error) {
			return nil, nil, errors.New("log dir unwritable")
		},
	)

	if err := cmd.Run(nil); err != nil {
		t.Fatalf("expected ui command to succeed, got err=%v", err)
	}
	if fake.runUICalls != 1 {
		t.Fatalf("expected ui run once, got %d", fake.runUICalls)
	}
	if fake.runUIRepo != nil {
		t.Fatalf("expected nil repository when the cache is unavailable")
	}
	if fake.runUICollapsed {
		t.Fatalf("expected expanded start by default")
	}
}

func TestConfigCommandDefaultCoreJSON(t *testing.T) {
	stdout := &bytes.Buffer{}
	cmd := NewConfigCommand(stdout, &bytes.Buffer{})

	if err := cmd.Run([]string{"--default", "--scope", "core"}); err != nil {
		t.Fatalf("expected config to succeed, got err=%v", err)
	}
	var payload struct {
		Studio struct {
			BaseURL   string `json:"base_url"`
			TokenPath string `json:"token_path"`
		} `json:"studio"`
		Logging struct {
			Level string `json:"level"`
		} `json:"logging"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &payload); err != nil {
		t.Fatalf("expected valid json output, got err=%v, raw=%q", err, stdout.String())
	}
	if payload.Studio.BaseURL != "http://127.0.0.1:8000" {
		t.Fatalf("unexpected default base url: %q", payload.Studio.BaseURL)
	}
	if !strings.HasSuffix(payload.Studio.TokenPath, filepath.Join(".atlas", "token")) {
		t.Fatalf("unexpected default token path: %q", payload.Studio.TokenPath)
	}
	if payload.Logging.Level != "info" {
		t.Fatalf("unexpected default log level: %q", payload.Logging.Level)
	}
}

func TestConfigCommandDefaultUIScopeJSON(t *testing.T) {
	stdout := &bytes.Buffer{}
	cmd := NewConfigCommand(stdout, &bytes.Buffer{})

	if err := cmd.Run([]string{"--default", "--scope", "ui"}); err != nil {
		t.Fatalf("expected config to succeed, got err=%v", err)
	}
	var payload struct {
		StartCollapsed bool `json:"start_collapsed"`
		Keybindings    struct {
			Path string `json:"path"`
		} `json:"keybindings"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &payload); err != nil {
		t.Fatalf("expected valid json output, got err=%v, raw=%q", err, stdout.String())
	}
	if payload.StartCollapsed {
		t.Fatalf("expected expanded default")
	}
	if !strings.HasSuffix(payload.Keybindings.Path, "keybindings.json") {
		t.Fatalf("unexpected default keybindings path: %q", payload.Keybindings.Path)
	}
}

func TestConfigCommandDefaultKeybindingsScope(t *testing.T) {
	stdout := &bytes.Buffer{}
	cmd := NewConfigCommand(stdout, &bytes.Buffer{})

	if err := cmd.Run([]string{"--default", "--scope", "keybindings"}); err != nil {
		t.Fatalf("expected config to succeed, got err=%v", err)
	}
	var bindings map[string]string
	if err := json.Unmarshal(stdout.Bytes(), &bindings); err != nil {
		t.Fatalf("expected valid json output, got err=%v, raw=%q", err, stdout.String())
	}
	if bindings[app.KeyCommandToggleSidebar] != "ctrl+b" {
		t.Fatalf("unexpected toggle binding: %q", bindings[app.KeyCommandToggleSidebar])
	}
	if bindings[app.KeyCommandQuit] != "q" {
		t.Fatalf("unexpected quit binding: %q", bindings[app.KeyCommandQuit])
	}
}

func TestConfigCommandTOMLFormat(t *testing.T) {
	stdout := &bytes.Buffer{}
	cmd := NewConfigCommand(stdout, &bytes.Buffer{})

	if err := cmd.Run([]string{"--default", "--scope", "core", "--format", "toml"}); err != nil {
		t.Fatalf("expected config to succeed, got err=%v", err)
	}
	out := stdout.String()
	if !strings.Contains(out, "base_url") || !strings.Contains(out, "127.0.0.1:8000") {
		t.Fatalf("expected toml core config, got %q", out)
	}
}

func TestConfigCommandRejectsInvalidInput(t *testing.T) {
	cmd := NewConfigCommand(&bytes.Buffer{}, &bytes.Buffer{})
	err := cmd.Run([]string{"--scope", "daemon"})
	if err == nil || !strings.Contains(err.Error(), "invalid scope") {
		t.Fatalf("expected scope validation error, got %v", err)
	}
	err = cmd.Run([]string{"--format", "yaml"})
	if err == nil || !strings.Contains(err.Error(), "invalid format") {
		t.Fatalf("expected format validation error, got %v", err)
	}
}

func TestVersionCommandPrintsVersion(t *testing.T) {
	stdout := &bytes.Buffer{}
	cmd := NewVersionCommand(stdout, &bytes.Buffer{}, "v-test")

	if err := cmd.Run(nil); err != nil {
		t.Fatalf("expected version to succeed, got err=%v", err)
	}
	if got := stdout.String(); got != "v-test\n" {
		t.Fatalf("unexpected stdout: %q", got)
	}
}

type fakeStudioClient struct {
	projectsResp []types.Project
	projectsErr  error
	listCalls    int

	getResp *types.Project
	getErr  error
	getID   string

	baseURL string

	runUIErr       error
	runUICalls     int
	runUIRepo      store.Repository
	runUICollapsed bool
	runUILogger    logging.Logger
	runUIBindings  *app.Keybindings
}

func (f *fakeStudioClient) ListProjects(context.Context) ([]types.Project, error) {
	f.listCalls++
	return f.projectsResp, f.projectsErr
}

func (f *fakeStudioClient) GetProject(_ context.Context, projectID string) (*types.Project, error) {
	f.getID = projectID
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.getResp == nil {
		return nil, errors.New("getResp not configured")
	}
	return f.getResp, nil
}

func (f *fakeStudioClient) ProjectURL(projectID string) string {
	base := f.baseURL
	if base == "" {
		base = "https://studio.test"
	}
	return base + "/project/" + projectID
}

func (f *fakeStudioClient) RunUI(repo store.Repository, startCollapsed bool, logger logging.Logger, bindings *app.Keybindings) error {
	f.runUICalls++
	f.runUIRepo = repo
	f.runUICollapsed = startCollapsed
	f.runUILogger = logger
	f.runUIBindings = bindings
	return f.runUIErr
}

type fakeRepository struct {
	projects   []types.Project
	loadErr    error
	loadCalls  int
	closeCalls int
}

func (f *fakeRepository) Projects() store.ProjectSnapshotStore { return &fakeSnapshotStore{repo: f} }

func (f *fakeRepository) AppState() store.AppStateStore { return &fakeAppStateStore{} }

func (f *fakeRepository) Close() error {
	f.closeCalls++
	return nil
}

type fakeSnapshotStore struct {
	repo *fakeRepository
}

func (s *fakeSnapshotStore) LoadProjects(context.Context) ([]types.Project, error) {
	s.repo.loadCalls++
	return s.repo.projects, s.repo.loadErr
}

func (s *fakeSnapshotStore) ReplaceProjects(_ context.Context, projects []types.Project) error {
	s.repo.projects = projects
	return nil
}

type fakeAppStateStore struct{}

func (s *fakeAppStateStore) Load(context.Context) (*types.AppState, error) { return nil, nil }

func (s *fakeAppStateStore) Save(context.Context, *types.AppState) error { return nil }

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func fixedFactory(client studioClient) clientFactory {
	return func() (studioClient, error) {
		return client, nil
	}
}

func fixedRepository(repo *fakeRepository) repositoryFactory {
	return func() (store.Repository, error) {
		return repo, nil
	}
}
