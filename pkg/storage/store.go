// Package storage persists collections and environments and implements the
// workspace operations built on them.
package storage

import (
	"errors"

	"github.com/blackcoderx/apistudio/pkg/model"
)

// ErrNotFound is returned when a collection, request or environment lookup fails.
var ErrNotFound = errors.New("not found")

// Store is the persistence collaborator. Implementations save and load whole
// lists; the Workspace owns every mutation.
type Store interface {
	LoadCollections() ([]model.Collection, error)
	SaveCollections(collections []model.Collection) error
	LoadEnvironments() ([]model.Environment, error)
	SaveEnvironments(environments []model.Environment) error
}

// MemoryStore keeps everything in memory. It is used for tests and ad-hoc sessions.
type MemoryStore struct {
	Collections  []model.Collection
	Environments []model.Environment
}

func (m *MemoryStore) LoadCollections() ([]model.Collection, error) {
	return append([]model.Collection(nil), m.Collections...), nil
}

func (m *MemoryStore) SaveCollections(collections []model.Collection) error {
	m.Collections = append([]model.Collection(nil), collections...)
	return nil
}

func (m *MemoryStore) LoadEnvironments() ([]model.Environment, error) {
	return append([]model.Environment(nil), m.Environments...), nil
}

func (m *MemoryStore) SaveEnvironments(environments []model.Environment) error {
	m.Environments = append([]model.Environment(nil), environments...)
	return nil
}
