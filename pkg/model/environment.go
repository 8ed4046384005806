package model

import "github.com/google/uuid"

// EnvironmentVariable is a single substitutable binding.
type EnvironmentVariable struct {
	ID      string `json:"id" yaml:"id"`
	Key     string `json:"key" yaml:"key"`
	Value   string `json:"value" yaml:"value"`
	Enabled bool   `json:"enabled" yaml:"enabled"`
}

// NewVariable returns an enabled variable with a fresh ID.
func NewVariable(key, value string) EnvironmentVariable {
	return EnvironmentVariable{ID: uuid.NewString(), Key: key, Value: value, Enabled: true}
}

// Environment is a named set of variables. At most one environment is active.
type Environment struct {
	ID        string                `json:"id" yaml:"id"`
	Name      string                `json:"name" yaml:"name"`
	Variables []EnvironmentVariable `json:"variables" yaml:"variables"`
	Active    bool                  `json:"isActive" yaml:"isActive"`
}

// NewEnvironment returns an inactive, empty environment.
func NewEnvironment(name string) Environment {
	return Environment{
		ID:        uuid.NewString(),
		Name:      name,
		Variables: []EnvironmentVariable{},
	}
}

// Clone returns a deep copy.
func (e Environment) Clone() Environment {
	out := e
	out.Variables = append([]EnvironmentVariable{}, e.Variables...)
	return out
}

// Lookup returns the first enabled variable with the given key.
func (e Environment) Lookup(key string) (string, bool) {
	for _, v := range e.Variables {
		if v.Enabled && v.Key == key {
			return v.Value, true
		}
	}
	return "", false
}
