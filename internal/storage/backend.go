package storage

import (
	"io"
	"time"
)

type (
	// Backend is the interface that wraps the basic bucket operations.
	Backend interface {
		// Name returns the name of the backend implementation.
		Name() string

		// Reader returns a ReadCloser of the object.
		Reader(key string) (io.ReadCloser, error)
		// Writer returns a WriteCloser of the object.
		Writer(key string) (io.WriteCloser, error)
		// Stat returns the info of the object.
		Stat(key string) (ObjectInfo, error)

		// List enumerates all the objects of the bucket.
		// It drains paginated listings and returns an empty slice for an empty bucket.
		List() ([]ObjectInfo, error)

		// Remove deletes the given object.
		Remove(key string) error
		// Cleanup cleans useless artifacts in storage.
		Cleanup() error
	}

	// An ObjectInfo describes a stored object.
	ObjectInfo struct {
		Key          string
		Size         int64
		LastModified time.Time
	}
)
