package database

import (
	"github.com/ventoux/fileintake/internal/model"
)

type (
	// A Client can interacts with the database.
	Client interface {
		// Save inserts or updates the entry in database with the given model.
		Save(m model.Model) error
		// Delete deletes the entry in database with the given model.
		Delete(m model.Model) error
		// Close the database.
		Close() error
		// IsNotFound returns true if err is nil or a not found error.
		IsNotFound(err error) bool

		RecordInteraction
	}

	// A RecordInteraction defines all the methods used to interact with an upload record.
	RecordInteraction interface {
		AllRecords() ([]*model.UploadRecord, error)
		FindRecordsByExtension(extension string) ([]*model.UploadRecord, error)
		FindRecordByName(extension, name string) (*model.UploadRecord, error)
		DeleteRecord(id string) error
	}
)
