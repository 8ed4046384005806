package storage

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/joho/godotenv"

	"github.com/blackcoderx/apistudio/pkg/model"
)

// envRefPattern matches {{env:NAME}} references to the process environment.
var envRefPattern = regexp.MustCompile(`\{\{\s*env:([^}\s]+)\s*\}\}`)

// CreateEnvironment appends an empty, inactive environment.
func (w *Workspace) CreateEnvironment(name string) (model.Environment, error) {
	return w.CommitEnvironment(NewEnvironmentDraft(name))
}

// DeleteEnvironment removes an environment. Deleting the active one leaves
// no environment active.
func (w *Workspace) DeleteEnvironment(ref string) error {
	next := w.Environments()
	for i, env := range next {
		if matches(ref, env.ID, env.Name) {
			return w.saveEnvironments(append(next[:i], next[i+1:]...))
		}
	}
	return fmt.Errorf("environment %q: %w", ref, ErrNotFound)
}

// ActivateEnvironment makes ref the only active environment.
func (w *Workspace) ActivateEnvironment(ref string) (model.Environment, error) {
	next := w.Environments()
	found := -1
	for i, env := range next {
		if found < 0 && matches(ref, env.ID, env.Name) {
			found = i
		}
	}
	if found < 0 {
		return model.Environment{}, fmt.Errorf("environment %q: %w", ref, ErrNotFound)
	}
	for i := range next {
		next[i].Active = i == found
	}
	if err := w.saveEnvironments(next); err != nil {
		return model.Environment{}, err
	}
	return next[found].Clone(), nil
}

// DeactivateEnvironments clears the active flag everywhere.
func (w *Workspace) DeactivateEnvironments() error {
	next := w.Environments()
	for i := range next {
		next[i].Active = false
	}
	return w.saveEnvironments(next)
}

// ActiveEnvironment returns the active environment, if any.
func (w *Workspace) ActiveEnvironment() (model.Environment, bool) {
	for _, env := range w.environments {
		if env.Active {
			return env.Clone(), true
		}
	}
	return model.Environment{}, false
}

// FindEnvironment looks an environment up by ID or name.
func (w *Workspace) FindEnvironment(ref string) (model.Environment, error) {
	for _, env := range w.environments {
		if matches(ref, env.ID, env.Name) {
			return env.Clone(), nil
		}
	}
	return model.Environment{}, fmt.Errorf("environment %q: %w", ref, ErrNotFound)
}

// ActiveVariables returns the variables of the active environment with
// {{env:NAME}} references resolved. It is empty when nothing is active.
func (w *Workspace) ActiveVariables() []model.EnvironmentVariable {
	env, ok := w.ActiveEnvironment()
	if !ok {
		return []model.EnvironmentVariable{}
	}
	return ResolveEnvRefs(env.Variables)
}

// VariablesFor returns the resolved variables of ref, or of the active
// environment when ref is empty.
func (w *Workspace) VariablesFor(ref string) ([]model.EnvironmentVariable, error) {
	if ref == "" {
		return w.ActiveVariables(), nil
	}
	env, err := w.FindEnvironment(ref)
	if err != nil {
		return nil, err
	}
	return ResolveEnvRefs(env.Variables), nil
}

// ResolveEnvRefs replaces {{env:NAME}} in variable values with the process
// environment. Unset names are left verbatim.
func ResolveEnvRefs(vars []model.EnvironmentVariable) []model.EnvironmentVariable {
	out := make([]model.EnvironmentVariable, len(vars))
	for i, v := range vars {
		v.Value = resolveEnvRefs(v.Value)
		out[i] = v
	}
	return out
}

func resolveEnvRefs(text string) string {
	return envRefPattern.ReplaceAllStringFunc(text, func(match string) string {
		name := envRefPattern.FindStringSubmatch(match)[1]
		if val, ok := os.LookupEnv(name); ok {
			return val
		}
		return match
	})
}

// ImportDotenv reads a dotenv file into a new environment named name.
// Variables are sorted by key so repeated imports are stable.
func (w *Workspace) ImportDotenv(path, name string) (model.Environment, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return model.Environment{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if strings.TrimSpace(name) == "" {
		return model.Environment{}, fmt.Errorf("environment name is required")
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	draft := NewEnvironmentDraft(name)
	for _, k := range keys {
		draft.AddVariable(k, values[k])
	}
	return w.CommitEnvironment(draft)
}
