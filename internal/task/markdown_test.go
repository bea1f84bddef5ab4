package task

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMarkdownRoundTrip(t *testing.T) {
	tk := mustNew(t, Data{
		Title:       "Draft launch post",
		Description: "Cover pricing.\n\nLink the changelog.",
		Priority:    PriorityHigh,
		DueDate:     "2026-06-01",
		Tags:        []string{"marketing", "blog"},
	})

	data, err := MarshalMarkdown(tk)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), "---\n"))
	require.Contains(t, string(data), "tags: [marketing, blog]")

	got, err := UnmarshalMarkdown(data)
	require.NoError(t, err)
	require.Equal(t, tk.ID(), got.ID())
	require.Equal(t, tk.Description(), got.Description())
	require.Equal(t, tk.Tags(), got.Tags())
	require.True(t, tk.DueDate().Equal(*got.DueDate()))
}

func TestSplitFrontmatterErrors(t *testing.T) {
	_, _, err := splitFrontmatter([]byte("title: x\n"))
	require.Error(t, err)

	_, _, err = splitFrontmatter([]byte("---\ntitle: x\n"))
	require.Error(t, err)

	fm, body, err := splitFrontmatter([]byte("---\ntitle: x\n---"))
	require.NoError(t, err)
	require.Equal(t, "title: x", string(fm))
	require.Empty(t, body)

	fm, body, err = splitFrontmatter([]byte("---\ntitle: x\n---\n\nBody text\n"))
	require.NoError(t, err)
	require.Equal(t, "title: x", string(fm))
	require.Equal(t, "Body text", body)
}

func TestSlug(t *testing.T) {
	require.Equal(t, "fix-login-bug", Slug("Fix: login  bug!"))
	require.Equal(t, "task", Slug("!!!"))
	long := Slug(strings.Repeat("word ", 20))
	require.LessOrEqual(t, len(long), maxSlugLength)
	require.False(t, strings.HasSuffix(long, "-"))
}

func TestWriteAndReadDir(t *testing.T) {
	dir := t.TempDir()
	l := NewList()
	require.NoError(t, l.Add(mustNew(t, Data{Title: "one"})))
	require.NoError(t, l.Add(mustNew(t, Data{Title: "two", Status: StatusCompleted})))

	paths, err := WriteDir(dir, l)
	require.NoError(t, err)
	require.Len(t, paths, 2)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.md"), []byte("no frontmatter"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600))

	tasks, warnings, err := ReadDirLenient(dir)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	require.Len(t, warnings, 1)
	require.Equal(t, "broken.md", warnings[0].File)

	tasks, warnings, err = ReadDirLenient(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	require.Nil(t, tasks)
	require.Nil(t, warnings)
}
