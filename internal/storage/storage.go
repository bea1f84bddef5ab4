// Package storage persists projects, tasks embedded, as one JSON object
// under a single key of a kv.Store. Entries are keyed by project name.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/twiced-technology-gmbh/taskdeck/internal/clierr"
	"github.com/twiced-technology-gmbh/taskdeck/internal/kv"
	"github.com/twiced-technology-gmbh/taskdeck/internal/logging"
	"github.com/twiced-technology-gmbh/taskdeck/internal/project"
	"github.com/twiced-technology-gmbh/taskdeck/internal/task"
)

// DefaultKey is the store key holding the projects object.
const DefaultKey = "projects"

// SearchResult pairs a matching task with the name of its project.
type SearchResult struct {
	ProjectName string     `json:"projectName"`
	Task        *task.Task `json:"task"`
}

// ProjectStorage reads and writes projects through a kv.Store. It holds no
// cache: every call reads the current blob, so concurrent writers follow
// last-writer-wins.
type ProjectStorage struct {
	store         kv.Store
	key           string
	checkConflict bool
	log           *zap.Logger
}

// Option customizes a ProjectStorage.
type Option func(*ProjectStorage)

// WithKey stores the projects object under key instead of DefaultKey.
func WithKey(key string) Option {
	return func(s *ProjectStorage) {
		if key != "" {
			s.key = key
		}
	}
}

// WithNameConflictCheck makes SaveProject reject a project whose name is
// already stored for a different project id.
func WithNameConflictCheck() Option {
	return func(s *ProjectStorage) { s.checkConflict = true }
}

// WithLogger sets the logger; logging.L() is used otherwise.
func WithLogger(l *zap.Logger) Option {
	return func(s *ProjectStorage) { s.log = l }
}

// New returns a ProjectStorage over store and writes an empty object to
// the key when it is absent. Calling New again on the same store is a no-op.
func New(ctx context.Context, store kv.Store, opts ...Option) (*ProjectStorage, error) {
	s := &ProjectStorage{store: store, key: DefaultKey}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logging.L()
	}
	s.log = s.log.With(zap.String("key", s.key))

	_, ok, err := store.GetItem(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", s.key, err)
	}
	if !ok {
		if err := store.SetItem(ctx, s.key, "{}"); err != nil {
			return nil, fmt.Errorf("initializing %q: %w", s.key, err)
		}
		s.log.Debug("initialized empty project store")
	}
	return s, nil
}

// Key returns the store key in use.
func (s *ProjectStorage) Key() string { return s.key }

// SaveProject writes p under its name, replacing any entry with that name.
// An entry for the same project id under an older name is dropped, so a
// rename does not leave a stale copy behind.
func (s *ProjectStorage) SaveProject(ctx context.Context, p *project.Project) (bool, error) {
	if p == nil {
		return false, clierr.New(clierr.InvalidInput, "Invalid project object")
	}

	entries, err := s.load(ctx)
	if err != nil {
		return false, err
	}

	if s.checkConflict {
		if existing, ok := entries[p.Name()]; ok {
			rec, err := decodeRecord(p.Name(), existing)
			if err != nil {
				return false, err
			}
			if rec.ID != "" && rec.ID != p.ID() {
				return false, clierr.Newf(clierr.NameConflict,
					"project name %q is already used by another project", p.Name()).
					WithDetails(map[string]any{"name": p.Name(), "id": rec.ID})
			}
		}
	}

	for name, raw := range entries {
		if name == p.Name() {
			continue
		}
		rec, err := decodeRecord(name, raw)
		if err != nil {
			s.log.Warn("skipping undecodable entry while saving",
				zap.String("project", name), zap.Error(err))
			continue
		}
		if rec.ID == p.ID() {
			delete(entries, name)
			s.log.Debug("dropped entry of renamed project", zap.String("old_name", name))
		}
	}

	raw, err := json.Marshal(p.Record())
	if err != nil {
		return false, fmt.Errorf("encoding project %q: %w", p.Name(), err)
	}
	entries[p.Name()] = raw

	if err := s.save(ctx, entries); err != nil {
		return false, err
	}
	s.log.Debug("project saved",
		zap.String("project", p.Name()),
		zap.String("id", p.ID()),
		zap.Int("tasks", p.TaskCount()),
	)
	return true, nil
}

// GetProject returns the project stored under name, or nil when there is none.
func (s *ProjectStorage) GetProject(ctx context.Context, name string) (*project.Project, error) {
	if name == "" {
		return nil, clierr.New(clierr.Required, "Project name is required")
	}
	entries, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	raw, ok := entries[name]
	if !ok {
		return nil, nil
	}
	return restore(name, raw)
}

// GetAllProjects returns every stored project ordered by name.
func (s *ProjectStorage) GetAllProjects(ctx context.Context) ([]*project.Project, error) {
	entries, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	projects := make([]*project.Project, 0, len(entries))
	for _, name := range sortedNames(entries) {
		p, err := restore(name, entries[name])
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, nil
}

// DeleteProject removes the entry stored under name and reports whether
// it existed.
func (s *ProjectStorage) DeleteProject(ctx context.Context, name string) (bool, error) {
	entries, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	if _, ok := entries[name]; !ok {
		return false, nil
	}
	delete(entries, name)
	if err := s.save(ctx, entries); err != nil {
		return false, err
	}
	s.log.Debug("project deleted", zap.String("project", name))
	return true, nil
}

// SearchTasks returns every task whose title, description or a tag
// contains query, ignoring case. Projects are visited in name order and
// tasks in stored order. An empty query matches nothing.
func (s *ProjectStorage) SearchTasks(ctx context.Context, query string) ([]SearchResult, error) {
	results := []SearchResult{}
	if query == "" {
		return results, nil
	}
	needle := strings.ToLower(query)

	entries, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, name := range sortedNames(entries) {
		rec, err := decodeRecord(name, entries[name])
		if err != nil {
			return nil, err
		}
		for _, tr := range rec.Tasks {
			if !matches(tr, needle) {
				continue
			}
			t, err := task.FromRecord(tr)
			if err != nil {
				return nil, fmt.Errorf("restoring task in project %q: %w", name, err)
			}
			results = append(results, SearchResult{ProjectName: rec.Name, Task: t})
		}
	}
	return results, nil
}

// Names returns the stored project names in order.
func (s *ProjectStorage) Names(ctx context.Context) ([]string, error) {
	entries, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return sortedNames(entries), nil
}

// ProjectByID scans the stored projects for the given id.
func (s *ProjectStorage) ProjectByID(ctx context.Context, id string) (*project.Project, error) {
	if id == "" {
		return nil, project.RequiredID()
	}
	entries, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, name := range sortedNames(entries) {
		rec, err := decodeRecord(name, entries[name])
		if err != nil {
			s.log.Warn("skipping undecodable entry in id lookup",
				zap.String("project", name), zap.Error(err))
			continue
		}
		if rec.ID == id {
			return restoreRecord(name, rec)
		}
	}
	return nil, nil
}

// LoadList reads every stored project into a project.List.
func (s *ProjectStorage) LoadList(ctx context.Context) (*project.List, error) {
	projects, err := s.GetAllProjects(ctx)
	if err != nil {
		return nil, err
	}
	l := project.NewList()
	for _, p := range projects {
		if err := l.Add(p); err != nil {
			return nil, fmt.Errorf("loading project %q: %w", p.Name(), err)
		}
	}
	return l, nil
}

func (s *ProjectStorage) load(ctx context.Context) (map[string]json.RawMessage, error) {
	blob, ok, err := s.store.GetItem(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", s.key, err)
	}
	entries := make(map[string]json.RawMessage)
	if !ok || blob == "" {
		return entries, nil
	}
	if err := json.Unmarshal([]byte(blob), &entries); err != nil {
		return nil, fmt.Errorf("decoding %q: %w", s.key, err)
	}
	return entries, nil
}

func (s *ProjectStorage) save(ctx context.Context, entries map[string]json.RawMessage) error {
	blob, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encoding %q: %w", s.key, err)
	}
	if err := s.store.SetItem(ctx, s.key, string(blob)); err != nil {
		return fmt.Errorf("writing %q: %w", s.key, err)
	}
	return nil
}

func decodeRecord(name string, raw json.RawMessage) (project.Record, error) {
	var rec project.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return rec, fmt.Errorf("decoding project %q: %w", name, err)
	}
	return rec, nil
}

func restore(name string, raw json.RawMessage) (*project.Project, error) {
	rec, err := decodeRecord(name, raw)
	if err != nil {
		return nil, err
	}
	return restoreRecord(name, rec)
}

func restoreRecord(name string, rec project.Record) (*project.Project, error) {
	p, err := project.FromRecord(rec)
	if err != nil {
		return nil, fmt.Errorf("restoring project %q: %w", name, err)
	}
	return p, nil
}

func matches(tr task.Record, needle string) bool {
	if strings.Contains(strings.ToLower(tr.Title), needle) ||
		strings.Contains(strings.ToLower(tr.Description), needle) {
		return true
	}
	for _, tag := range tr.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

func sortedNames(entries map[string]json.RawMessage) []string {
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
