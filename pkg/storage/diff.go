package storage

import (
	"fmt"

	"github.com/aymanbagabas/go-udiff"
	"gopkg.in/yaml.v3"

	"github.com/blackcoderx/apistudio/pkg/model"
)

// RequestDiff returns a unified diff between two versions of a request in
// their YAML form. It is empty when nothing visible changed.
func RequestDiff(before, after model.Request) (string, error) {
	// timestamps always move on save
	before.UpdatedAt = after.UpdatedAt

	original, err := yaml.Marshal(before)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}
	modified, err := yaml.Marshal(after)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	name := after.Name + ".yaml"
	edits := udiff.Strings(string(original), string(modified))
	unified, err := udiff.ToUnified("a/"+name, "b/"+name, string(original), edits, 3)
	if err != nil {
		return "", fmt.Errorf("failed to generate diff: %w", err)
	}
	return unified, nil
}
