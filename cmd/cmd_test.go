package cmd

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/taskdeck/internal/activity"
	"github.com/twiced-technology-gmbh/taskdeck/internal/clierr"
	"github.com/twiced-technology-gmbh/taskdeck/internal/config"
	"github.com/twiced-technology-gmbh/taskdeck/internal/kv"
	"github.com/twiced-technology-gmbh/taskdeck/internal/project"
	"github.com/twiced-technology-gmbh/taskdeck/internal/storage"
	"github.com/twiced-technology-gmbh/taskdeck/internal/task"
)

func TestWatchPaths(t *testing.T) {
	dir := t.TempDir()
	cfg := config.NewDefault(filepath.Join(dir, "config.yml"))

	paths, err := watchPaths(cfg)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, config.DefaultFileStore)}, paths)

	cfg.Store.Type = kv.TypeSQLite
	paths, err = watchPaths(cfg)
	require.NoError(t, err)
	db := filepath.Join(dir, config.DefaultSQLiteStore)
	require.Equal(t, []string{db, db + "-wal"}, paths)

	cfg.Store.Path = kv.SQLiteMemory
	_, err = watchPaths(cfg)
	require.True(t, clierr.HasCode(err, clierr.InvalidInput))

	cfg.Store.Type = kv.TypeRedis
	_, err = watchPaths(cfg)
	require.Error(t, err)
}

func TestFilterEntries(t *testing.T) {
	now := time.Now()
	entries := []activity.Entry{
		{Timestamp: now, Action: activity.ActionTaskAdd, Project: "a", Detail: "1"},
		{Timestamp: now, Action: activity.ActionTaskAdd, Project: "b", Detail: "2"},
		{Timestamp: now, Action: activity.ActionTaskAdd, Project: "a", Detail: "3"},
		{Timestamp: now, Action: activity.ActionTaskAdd, Project: "a", Detail: "4"},
	}

	got := filterEntries(entries, "a", 2)
	require.Len(t, got, 2)
	require.Equal(t, "3", got[0].Detail)
	require.Equal(t, "4", got[1].Detail)

	require.Len(t, filterEntries(entries, "a", 0), 3)
	require.Empty(t, filterEntries(entries, "c", 5))
}

func TestIntersect(t *testing.T) {
	mk := func(name string) *project.Project {
		p, err := project.New(project.Data{Name: name})
		require.NoError(t, err)
		return p
	}
	a, b, c := mk("a"), mk("b"), mk("c")

	got := intersect([]*project.Project{a, b, c}, []*project.Project{c, a})
	require.Equal(t, []*project.Project{a, c}, got)
}

func TestShort(t *testing.T) {
	require.Equal(t, "12345678", short("123456789abc"))
	require.Equal(t, "abc", short("abc"))
}

func TestConfigAccessors(t *testing.T) {
	cfg := config.NewDefault(filepath.Join(t.TempDir(), "config.yml"))
	accessors := configAccessors()

	for _, key := range allConfigKeys() {
		_, ok := accessors[key]
		require.True(t, ok, "missing accessor for %s", key)
	}

	require.NoError(t, accessors["defaults.owner"].set(cfg, "ana"))
	require.Equal(t, "ana", accessors["defaults.owner"].get(cfg))

	require.NoError(t, accessors["store.check_name_conflicts"].set(cfg, "true"))
	require.True(t, cfg.Store.CheckNameConflicts)
	require.Error(t, accessors["store.check_name_conflicts"].set(cfg, "maybe"))

	require.NoError(t, accessors["store.redis.db"].set(cfg, "3"))
	require.Equal(t, 3, cfg.Store.Redis.DB)
	require.Error(t, accessors["store.redis.db"].set(cfg, "x"))

	require.Nil(t, accessors["version"].set)
}

func TestFormatConfigValue(t *testing.T) {
	require.Equal(t, "--", formatConfigValue(""))
	require.Equal(t, "--", formatConfigValue([]string{}))
	require.Equal(t, "a, b", formatConfigValue([]string{"a", "b"}))
	require.Equal(t, "true", formatConfigValue(true))
}

func TestSessionProjectByNameOrID(t *testing.T) {
	ctx := context.Background()
	store, err := storage.New(ctx, kv.NewMemory())
	require.NoError(t, err)
	s := &session{cfg: config.NewDefault(filepath.Join(t.TempDir(), "config.yml")), store: store}

	p, err := project.New(project.Data{Name: "Website"})
	require.NoError(t, err)
	_, err = store.SaveProject(ctx, p)
	require.NoError(t, err)

	byName, err := s.project(ctx, "Website")
	require.NoError(t, err)
	require.Equal(t, p.ID(), byName.ID())

	byID, err := s.project(ctx, p.ID())
	require.NoError(t, err)
	require.Equal(t, "Website", byID.Name())

	_, err = s.project(ctx, "Mobile")
	require.True(t, clierr.HasCode(err, clierr.ProjectNotFound))
	var cliErr *clierr.Error
	require.ErrorAs(t, err, &cliErr)
	require.Equal(t, []string{"Website"}, cliErr.Details["available"])
}

func TestImportTasksSkipsIDsOwnedElsewhere(t *testing.T) {
	newTask := func(title string) *task.Task {
		tk, err := task.New(task.Data{Title: title})
		require.NoError(t, err)
		return tk
	}

	source, err := project.New(project.Data{Name: "Source"})
	require.NoError(t, err)
	shared := newTask("Shared")
	require.NoError(t, source.AddTask(shared))

	stored := project.NewList()
	require.NoError(t, stored.Add(source))

	target, err := project.New(project.Data{Name: "Target"})
	require.NoError(t, err)
	fresh := newTask("Fresh")
	copyOfShared, err := task.FromRecord(shared.Record())
	require.NoError(t, err)

	added, skipped, err := importTasks(target, []*task.Task{copyOfShared, fresh, fresh}, stored)
	require.NoError(t, err)
	require.Equal(t, 1, added)
	require.Equal(t, 2, skipped)
	require.False(t, target.HasTask(shared.ID()))
	require.True(t, target.HasTask(fresh.ID()))
	require.Equal(t, target.ID(), fresh.ProjectID())

	owner, err := stored.ProjectForTask(shared.ID())
	require.NoError(t, err)
	require.Equal(t, "Source", owner.Name())
}
