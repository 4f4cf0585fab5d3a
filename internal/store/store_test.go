//go:build cgo

package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/pdfoutline/internal/outline"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleEntry(hash, fp string) Entry {
	return Entry{
		ContentHash: hash,
		Fingerprint: fp,
		Path:        "input/pdf/report.pdf",
		MetaTitle:   "FY2024",
		Pages:       12,
		Result: outline.Result{
			Title: "Annual Report",
			Outline: []outline.Heading{
				{Text: "1. Introduction", Page: 1, Level: outline.H1},
				{Text: "1.1 Scope", Page: 2, Level: outline.H2},
			},
		},
	}
}

func TestOpenCreatesParentDir(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "sub", "dir", "cache.db"))
	require.NoError(t, err)
	require.NoError(t, s.Close())
}

func TestPutGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, sampleEntry("abc", "fp1")))

	got, err := s.Get(ctx, "abc", "fp1")
	require.NoError(t, err)
	assert.Equal(t, "input/pdf/report.pdf", got.Path)
	assert.Equal(t, 12, got.Pages)
	assert.Equal(t, "FY2024", got.MetaTitle)
	assert.Equal(t, "Annual Report", got.Result.Title)
	require.Len(t, got.Result.Outline, 2)
	assert.Equal(t, outline.H2, got.Result.Outline[1].Level)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestGetMissing(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, sampleEntry("abc", "fp1")))

	_, err := s.Get(ctx, "abc", "fp2")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Get(ctx, "other", "fp1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPutReplaces(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, sampleEntry("abc", "fp1")))
	e := sampleEntry("abc", "fp1")
	e.Result = outline.Result{Outline: []outline.Heading{}}
	require.NoError(t, s.Put(ctx, e))

	got, err := s.Get(ctx, "abc", "fp1")
	require.NoError(t, err)
	assert.Empty(t, got.Result.Title)
	assert.NotNil(t, got.Result.Outline)
	assert.Empty(t, got.Result.Outline)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestPrune(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	for _, fp := range []string{"old", "old", "new"} {
		require.NoError(t, s.Put(ctx, sampleEntry("h-"+fp, fp)))
	}
	require.NoError(t, s.Put(ctx, sampleEntry("h-other", "old")))

	removed, err := s.Prune(ctx, "new")
	require.NoError(t, err)
	assert.EqualValues(t, 2, removed)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestHashFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.pdf")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0644))

	h, err := HashFile(path)
	require.NoError(t, err)
	assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", h)

	_, err = HashFile(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
}
