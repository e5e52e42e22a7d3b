package model

import "time"

type (
	// A Model is the interface implemented by all the database's models.
	Model interface {
		GetID() string
		SetID(id string)
		GetCreatedAt() time.Time
		SetCreatedAt(t time.Time)
		SetUpdatedAt(t time.Time)
	}

	// Base holds the attributes shared by all the models.
	Base struct {
		ID        string    `json:"id"         storm:"id"`
		CreatedAt time.Time `json:"created_at" storm:"index"`
		UpdatedAt time.Time `json:"updated_at" storm:"index"`
	}
)

// GetID returns the model's identifier.
func (m *Base) GetID() string {
	return m.ID
}

// SetID defines the model's identifier.
func (m *Base) SetID(id string) {
	m.ID = id
}

// GetCreatedAt returns the model's creation time.
func (m *Base) GetCreatedAt() time.Time {
	return m.CreatedAt
}

// SetCreatedAt defines the model's creation time.
func (m *Base) SetCreatedAt(t time.Time) {
	m.CreatedAt = t
}

// SetUpdatedAt defines the model's last update time.
func (m *Base) SetUpdatedAt(t time.Time) {
	m.UpdatedAt = t
}
