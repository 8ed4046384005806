package storage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blackcoderx/apistudio/pkg/model"
)

// ErrDraftDiscarded is returned when committing a discarded draft.
var ErrDraftDiscarded = errors.New("draft was discarded")

// EnvironmentDraft is an editable copy of an environment. Changes stay in the
// draft until Workspace.CommitEnvironment; Discard drops them.
type EnvironmentDraft struct {
	env       model.Environment
	discarded bool
}

// NewEnvironmentDraft starts a draft for an environment that does not exist yet.
func NewEnvironmentDraft(name string) *EnvironmentDraft {
	return &EnvironmentDraft{env: model.NewEnvironment(strings.TrimSpace(name))}
}

// BeginEdit starts a draft from a committed environment. The committed value
// is not modified.
func BeginEdit(env model.Environment) *EnvironmentDraft {
	return &EnvironmentDraft{env: env.Clone()}
}

// Environment returns a copy of the draft state.
func (d *EnvironmentDraft) Environment() model.Environment {
	return d.env.Clone()
}

// Rename sets the environment name.
func (d *EnvironmentDraft) Rename(name string) {
	d.env.Name = strings.TrimSpace(name)
}

// AddVariable appends an enabled variable.
func (d *EnvironmentDraft) AddVariable(key, value string) model.EnvironmentVariable {
	v := model.NewVariable(key, value)
	d.env.Variables = append(d.env.Variables, v)
	return v
}

// UpdateVariable replaces the fields of the variable with the given ID.
func (d *EnvironmentDraft) UpdateVariable(id, key, value string, enabled bool) error {
	for i := range d.env.Variables {
		if d.env.Variables[i].ID == id {
			d.env.Variables[i].Key = key
			d.env.Variables[i].Value = value
			d.env.Variables[i].Enabled = enabled
			return nil
		}
	}
	return fmt.Errorf("variable %q: %w", id, ErrNotFound)
}

// SetVariable updates the first variable named key, enabling it, or adds one.
func (d *EnvironmentDraft) SetVariable(key, value string) model.EnvironmentVariable {
	for i := range d.env.Variables {
		if d.env.Variables[i].Key == key {
			d.env.Variables[i].Value = value
			d.env.Variables[i].Enabled = true
			return d.env.Variables[i]
		}
	}
	return d.AddVariable(key, value)
}

// RemoveVariable deletes the variable with the given ID or key.
func (d *EnvironmentDraft) RemoveVariable(ref string) error {
	for i, v := range d.env.Variables {
		if v.ID == ref || v.Key == ref {
			d.env.Variables = append(d.env.Variables[:i], d.env.Variables[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("variable %q: %w", ref, ErrNotFound)
}

// SetEnabled toggles the variable with the given ID or key.
func (d *EnvironmentDraft) SetEnabled(ref string, enabled bool) error {
	for i, v := range d.env.Variables {
		if v.ID == ref || v.Key == ref {
			d.env.Variables[i].Enabled = enabled
			return nil
		}
	}
	return fmt.Errorf("variable %q: %w", ref, ErrNotFound)
}

// Discard abandons the draft.
func (d *EnvironmentDraft) Discard() {
	d.discarded = true
}

// CommitEnvironment stores the draft, replacing the environment with the same
// ID or appending a new one. The active flag is owned by the workspace and is
// never changed by a commit.
func (w *Workspace) CommitEnvironment(d *EnvironmentDraft) (model.Environment, error) {
	if d.discarded {
		return model.Environment{}, ErrDraftDiscarded
	}
	env := d.Environment()
	if env.Name == "" {
		return model.Environment{}, fmt.Errorf("environment name is required")
	}

	next := w.Environments()
	replaced := false
	for i := range next {
		if next[i].ID == env.ID {
			env.Active = next[i].Active
			next[i] = env
			replaced = true
			break
		}
	}
	if !replaced {
		env.Active = false
		next = append(next, env)
	}

	if err := w.saveEnvironments(next); err != nil {
		return model.Environment{}, err
	}
	return env.Clone(), nil
}
