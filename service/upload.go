package service

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const UploadURLPrefix = "/uploads"

// AudioStore hands out unique file names in the shared upload directory.
type AudioStore struct {
	dir     string
	nowFunc func() time.Time
}

func NewAudioStore(dir string) (*AudioStore, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return &AudioStore{dir: dir, nowFunc: time.Now}, nil
}

func (a *AudioStore) Dir() string { return a.dir }

// Allocate returns the file system destination for an upload and the public
// path stored on the message. Names combine a millisecond timestamp with a
// random uuid so concurrent uploads never collide.
func (a *AudioStore) Allocate(originalName string) (dst string, publicPath string) {
	ext := strings.ToLower(filepath.Ext(filepath.Base(originalName)))
	if ext == "" || len(ext) > 8 {
		ext = ".webm"
	}
	name := fmt.Sprintf("%d-%s%s", a.nowFunc().UnixMilli(), uuid.NewString(), ext)
	return filepath.Join(a.dir, name), path.Join(UploadURLPrefix, name)
}
