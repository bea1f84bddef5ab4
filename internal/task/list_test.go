package task

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/taskdeck/internal/clierr"
)

func TestListAddRejectsNilAndDuplicates(t *testing.T) {
	l := NewList()
	tk := mustNew(t, Data{Title: "one"})

	err := l.Add(nil)
	require.Equal(t, clierr.InvalidInput, clierr.CodeOf(err))

	require.NoError(t, l.Add(tk))
	err = l.Add(tk)
	require.Equal(t, clierr.DuplicateTask, clierr.CodeOf(err))
	require.Equal(t, 1, l.Len())
}

func TestListRemoveAndGet(t *testing.T) {
	var l List
	a := mustNew(t, Data{Title: "a"})
	b := mustNew(t, Data{Title: "b"})
	require.NoError(t, l.Add(a))
	require.NoError(t, l.Add(b))

	got, err := l.Get(b.ID())
	require.NoError(t, err)
	require.Same(t, b, got)

	got, err = l.Get("missing")
	require.NoError(t, err)
	require.Nil(t, got)

	removed, err := l.Remove(a.ID())
	require.NoError(t, err)
	require.True(t, removed)

	removed, err = l.Remove(a.ID())
	require.NoError(t, err)
	require.False(t, removed)

	_, err = l.Remove("")
	require.Equal(t, clierr.Required, clierr.CodeOf(err))
	_, err = l.Get("")
	require.Equal(t, clierr.Required, clierr.CodeOf(err))
}

func TestListAllIsACopyInInsertionOrder(t *testing.T) {
	l := NewList()
	titles := []string{"first", "second", "third"}
	for _, title := range titles {
		require.NoError(t, l.Add(mustNew(t, Data{Title: title})))
	}

	all := l.All()
	for i, tk := range all {
		if tk.Title() != titles[i] {
			t.Fatalf("position %d: expected %q, got %q", i, titles[i], tk.Title())
		}
	}

	all[0] = nil
	require.Equal(t, 3, l.Len())
	require.NotNil(t, l.All()[0])

	records := l.Records()
	require.Len(t, records, 3)
	require.Equal(t, "third", records[2].Title)
}
