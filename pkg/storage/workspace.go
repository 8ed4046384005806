package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/blackcoderx/apistudio/pkg/model"
)

// Workspace holds the committed collections and environments and writes
// every change through to its Store.
type Workspace struct {
	store        Store
	collections  []model.Collection
	environments []model.Environment
	now          func() time.Time
}

// Open loads a workspace from store.
func Open(store Store) (*Workspace, error) {
	w := &Workspace{store: store, now: time.Now}
	if err := w.Reload(); err != nil {
		return nil, err
	}
	return w, nil
}

// Reload discards in-memory state and reads the store again.
func (w *Workspace) Reload() error {
	collections, err := w.store.LoadCollections()
	if err != nil {
		return fmt.Errorf("failed to load collections: %w", err)
	}
	environments, err := w.store.LoadEnvironments()
	if err != nil {
		return fmt.Errorf("failed to load environments: %w", err)
	}
	w.collections = collections
	w.environments = environments
	return nil
}

// Collections returns a copy of all collections.
func (w *Workspace) Collections() []model.Collection {
	out := make([]model.Collection, len(w.collections))
	for i, c := range w.collections {
		out[i] = cloneCollection(c)
	}
	return out
}

// Environments returns a copy of all environments.
func (w *Workspace) Environments() []model.Environment {
	out := make([]model.Environment, len(w.environments))
	for i, env := range w.environments {
		out[i] = env.Clone()
	}
	return out
}

func (w *Workspace) saveCollections(next []model.Collection) error {
	if err := w.store.SaveCollections(next); err != nil {
		return fmt.Errorf("failed to save collections: %w", err)
	}
	w.collections = next
	return nil
}

func (w *Workspace) saveEnvironments(next []model.Environment) error {
	if err := w.store.SaveEnvironments(next); err != nil {
		return fmt.Errorf("failed to save environments: %w", err)
	}
	w.environments = next
	return nil
}

func cloneCollection(c model.Collection) model.Collection {
	out := c
	out.Requests = make([]model.Request, len(c.Requests))
	for i, r := range c.Requests {
		out.Requests[i] = r.Clone()
	}
	return out
}

// matches reports whether ref names the item by ID or case-insensitive name.
func matches(ref, id, name string) bool {
	return ref == id || strings.EqualFold(strings.TrimSpace(ref), name)
}
