package service

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAudioStoreAllocate(t *testing.T) {
	dir := t.TempDir()
	store, err := NewAudioStore(filepath.Join(dir, "uploads"))
	require.NoError(t, err)
	store.nowFunc = func() time.Time { return time.UnixMilli(1700000000123) }

	dst, public := store.Allocate("recording.OGG")
	assert.Equal(t, filepath.Join(dir, "uploads"), filepath.Dir(dst))
	assert.True(t, strings.HasPrefix(public, "/uploads/1700000000123-"))
	assert.True(t, strings.HasSuffix(public, ".ogg"))
	assert.Equal(t, filepath.Base(dst), strings.TrimPrefix(public, "/uploads/"))
}

func TestAudioStoreAllocateIsUnique(t *testing.T) {
	store, err := NewAudioStore(t.TempDir())
	require.NoError(t, err)
	store.nowFunc = func() time.Time { return time.UnixMilli(42) }

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		_, public := store.Allocate("blob")
		assert.False(t, seen[public])
		seen[public] = true
		assert.True(t, strings.HasSuffix(public, ".webm"))
	}
}
