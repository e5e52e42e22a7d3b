package storage

import (
	"io"
	fspkg "io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

type fs struct {
	workspace string
}

// NewFileSystem returns a new File System backend rooted at workspace.
func NewFileSystem(workspace string) Backend {
	return &fs{
		workspace: workspace,
	}
}

func (b *fs) Name() string {
	return "file_system"
}

func (b *fs) Reader(key string) (io.ReadCloser, error) {
	rc, err := os.Open(filepath.Join(b.workspace, key))
	if err != nil {
		return rc, errors.Wrap(err, "could not open file")
	}
	return rc, err
}

func (b *fs) Writer(key string) (io.WriteCloser, error) {
	b.mkdirAllWithFilename(key)

	wc, err := os.Create(filepath.Join(b.workspace, key))
	if err != nil {
		return wc, errors.Wrap(err, "could not create file")
	}
	return wc, err
}

func (b *fs) Stat(key string) (ObjectInfo, error) {
	info, err := os.Stat(filepath.Join(b.workspace, key))
	if err != nil {
		return ObjectInfo{}, errors.Wrap(err, "could not stat file")
	}

	return ObjectInfo{
		Key:          key,
		Size:         info.Size(),
		LastModified: info.ModTime(),
	}, nil
}

func (b *fs) List() ([]ObjectInfo, error) {
	objects := make([]ObjectInfo, 0)

	err := filepath.Walk(b.workspace, func(path string, info fspkg.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == b.workspace {
				return nil // empty bucket, nothing created yet
			}
			return err
		}

		if info.IsDir() {
			return nil
		}
		if strings.HasSuffix(path, ".DS_Store") {
			return nil
		}

		key, err := filepath.Rel(b.workspace, path)
		if err != nil {
			return err
		}

		objects = append(objects, ObjectInfo{
			Key:          filepath.ToSlash(key),
			Size:         info.Size(),
			LastModified: info.ModTime(),
		})
		return nil
	})

	return objects, errors.Wrap(err, "could not list objects")
}

func (b *fs) Exist(key string) bool {
	_, err := os.Stat(filepath.Join(b.workspace, key))
	if err == nil {
		return true
	}
	if os.IsNotExist(err) {
		return false
	}
	return true // ignoring error
}

func (b *fs) Remove(key string) error {
	err := os.RemoveAll(filepath.Join(b.workspace, key))
	if err != nil {
		return errors.Wrap(err, "could not delete file")
	}
	return nil
}

func (b *fs) Cleanup() error {
	// Find empty directories.
	//
	stats := map[string]int{}
	err := filepath.Walk(b.workspace, func(path string, info fspkg.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == b.workspace {
				return nil
			}
			return err
		}

		if info.IsDir() {
			if path == b.workspace {
				return nil
			}
			stats[path] = 0
			return nil
		}

		if strings.HasSuffix(path, ".DS_Store") {
			return nil
		}

		trimmedpath := strings.Replace(path, b.workspace, "", 1)
		base := b.workspace

		for _, segment := range strings.Split(filepath.Dir(trimmedpath), string(os.PathSeparator)) {
			base = filepath.Join(base, segment)
			if !strings.HasPrefix(base, b.workspace) {
				continue
			}
			stats[base]++
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "cleanup")
	}

	// Remove empty directories.
	//
	for dirname, count := range stats {
		if count == 0 {
			os.RemoveAll(dirname)
		}
	}
	return nil
}

func (b *fs) mkdirAllWithFilename(key string) {
	dir := filepath.Dir(key)
	if !b.Exist(dir) {
		os.MkdirAll(filepath.Join(b.workspace, dir), 0755)
	}
}
