package model

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCollectionName receives requests saved without an explicit collection.
const DefaultCollectionName = "My Requests"

// Collection is a named, ordered group of requests.
type Collection struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Requests    []Request `json:"requests" yaml:"requests"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// NewCollection returns an empty collection.
func NewCollection(name string) Collection {
	now := time.Now().UTC()
	return Collection{
		ID:        uuid.NewString(),
		Name:      name,
		Requests:  []Request{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IndexOf returns the position of the request with the given ID, or -1.
func (c Collection) IndexOf(requestID string) int {
	for i, r := range c.Requests {
		if r.ID == requestID {
			return i
		}
	}
	return -1
}
