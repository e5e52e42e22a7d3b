package storage

import (
	"context"
	"io"

	"github.com/ncw/swift/v2"
	"github.com/pkg/errors"
)

type swiftstore struct {
	connection *swift.Connection
	container  string
}

// NewSwift returns a Backend storing objects in an OpenStack Swift container.
// The container is created if missing.
func NewSwift(connection *swift.Connection, container string) (Backend, error) {
	ctx := context.Background()

	if err := connection.Authenticate(ctx); err != nil {
		return nil, errors.Wrap(err, "could not authenticate to swift")
	}

	err := connection.ContainerCreate(ctx, container, nil)
	if err != nil {
		return nil, errors.Wrap(err, "could not create container")
	}

	return &swiftstore{
		connection: connection,
		container:  container,
	}, nil
}

func (b *swiftstore) Name() string {
	return "swift"
}

func (b *swiftstore) Reader(key string) (io.ReadCloser, error) {
	file, _, err := b.connection.ObjectOpen(context.Background(), b.container, key, false, nil)
	if err != nil {
		return nil, errors.Wrap(err, "could not open object")
	}
	return file, nil
}

func (b *swiftstore) Writer(key string) (io.WriteCloser, error) {
	file, err := b.connection.ObjectCreate(context.Background(), b.container, key, false, "", "", nil)
	if err != nil {
		return nil, errors.Wrap(err, "could not create object")
	}
	return file, nil
}

func (b *swiftstore) Stat(key string) (ObjectInfo, error) {
	object, _, err := b.connection.Object(context.Background(), b.container, key)
	if err != nil {
		return ObjectInfo{}, errors.Wrap(err, "could not stat object")
	}

	return ObjectInfo{
		Key:          object.Name,
		Size:         object.Bytes,
		LastModified: object.LastModified,
	}, nil
}

func (b *swiftstore) List() ([]ObjectInfo, error) {
	// ObjectsAll follows the listing markers until the container is drained.
	all, err := b.connection.ObjectsAll(context.Background(), b.container, nil)
	if err != nil {
		return nil, errors.Wrap(err, "could not list objects")
	}

	objects := make([]ObjectInfo, 0, len(all))
	for _, object := range all {
		objects = append(objects, ObjectInfo{
			Key:          object.Name,
			Size:         object.Bytes,
			LastModified: object.LastModified,
		})
	}
	return objects, nil
}

func (b *swiftstore) Remove(key string) error {
	err := b.connection.ObjectDelete(context.Background(), b.container, key)
	return errors.Wrap(err, "could not delete object")
}

func (b *swiftstore) Cleanup() error {
	return nil // Swift has no directories to prune.
}
