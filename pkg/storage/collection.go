package storage

import (
	"fmt"
	"strings"

	"github.com/blackcoderx/apistudio/pkg/model"
)

// CreateCollection appends an empty collection.
func (w *Workspace) CreateCollection(name, description string) (model.Collection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Collection{}, fmt.Errorf("collection name is required")
	}
	c := model.NewCollection(name)
	c.Description = strings.TrimSpace(description)
	c.CreatedAt = w.now().UTC()
	c.UpdatedAt = c.CreatedAt

	next := append(w.Collections(), c)
	if err := w.saveCollections(next); err != nil {
		return model.Collection{}, err
	}
	return c, nil
}

// DeleteCollection removes a collection and all of its requests.
func (w *Workspace) DeleteCollection(ref string) error {
	next := w.Collections()
	for i, c := range next {
		if matches(ref, c.ID, c.Name) {
			return w.saveCollections(append(next[:i], next[i+1:]...))
		}
	}
	return fmt.Errorf("collection %q: %w", ref, ErrNotFound)
}

// FindCollection looks a collection up by ID or name.
func (w *Workspace) FindCollection(ref string) (model.Collection, error) {
	for _, c := range w.collections {
		if matches(ref, c.ID, c.Name) {
			return cloneCollection(c), nil
		}
	}
	return model.Collection{}, fmt.Errorf("collection %q: %w", ref, ErrNotFound)
}

// SaveRequest stores req in the referenced collection, replacing the request
// with the same ID. An empty collectionRef saves into the default collection,
// which is created when missing. A request saved into another collection than
// its current one is moved there. It returns the ID of the owning collection.
func (w *Workspace) SaveRequest(req model.Request, collectionRef string) (string, error) {
	if req.ID == "" {
		return "", fmt.Errorf("request has no id")
	}
	if _, err := model.ParseMethod(string(req.Method)); err != nil {
		return "", err
	}

	now := w.now()
	req.Touch(now)
	next := w.Collections()

	idx := -1
	if collectionRef == "" {
		collectionRef = model.DefaultCollectionName
	}
	for i, c := range next {
		if matches(collectionRef, c.ID, c.Name) {
			idx = i
			break
		}
	}
	if idx < 0 {
		if collectionRef != model.DefaultCollectionName {
			return "", fmt.Errorf("collection %q: %w", collectionRef, ErrNotFound)
		}
		c := model.NewCollection(model.DefaultCollectionName)
		c.CreatedAt = now.UTC()
		next = append(next, c)
		idx = len(next) - 1
	}

	for i := range next {
		if i == idx {
			continue
		}
		if pos := next[i].IndexOf(req.ID); pos >= 0 {
			next[i].Requests = append(next[i].Requests[:pos], next[i].Requests[pos+1:]...)
			next[i].UpdatedAt = now.UTC()
		}
	}

	c := &next[idx]
	if pos := c.IndexOf(req.ID); pos >= 0 {
		c.Requests[pos] = req
	} else {
		c.Requests = append(c.Requests, req)
	}
	c.UpdatedAt = now.UTC()

	if err := w.saveCollections(next); err != nil {
		return "", err
	}
	return c.ID, nil
}

// DeleteRequest removes a request from a collection. An empty collectionRef
// searches every collection.
func (w *Workspace) DeleteRequest(requestRef, collectionRef string) error {
	_, owner, err := w.FindRequest(requestRef, collectionRef)
	if err != nil {
		return err
	}

	next := w.Collections()
	for i := range next {
		if next[i].ID != owner {
			continue
		}
		for j, r := range next[i].Requests {
			if matches(requestRef, r.ID, r.Name) {
				next[i].Requests = append(next[i].Requests[:j], next[i].Requests[j+1:]...)
				next[i].UpdatedAt = w.now().UTC()
				return w.saveCollections(next)
			}
		}
	}
	return fmt.Errorf("request %q: %w", requestRef, ErrNotFound)
}

// FindRequest looks a request up by ID or name, optionally limited to one
// collection. It returns the request and the ID of its collection.
func (w *Workspace) FindRequest(requestRef, collectionRef string) (model.Request, string, error) {
	for _, c := range w.collections {
		if collectionRef != "" && !matches(collectionRef, c.ID, c.Name) {
			continue
		}
		for _, r := range c.Requests {
			if matches(requestRef, r.ID, r.Name) {
				return r.Clone(), c.ID, nil
			}
		}
	}
	return model.Request{}, "", fmt.Errorf("request %q: %w", requestRef, ErrNotFound)
}

// Search filters collections by a case-insensitive query. A collection whose
// name matches is returned whole; otherwise only its matching requests are kept.
func (w *Workspace) Search(query string) []model.Collection {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return w.Collections()
	}

	var out []model.Collection
	for _, c := range w.Collections() {
		if strings.Contains(strings.ToLower(c.Name), q) {
			out = append(out, c)
			continue
		}
		var hits []model.Request
		for _, r := range c.Requests {
			if strings.Contains(strings.ToLower(r.Name), q) {
				hits = append(hits, r)
			}
		}
		if len(hits) > 0 {
			c.Requests = hits
			out = append(out, c)
		}
	}
	return out
}
