package core

import (
	"strings"

	"github.com/blackcoderx/apistudio/pkg/model"
)

// Interpolate replaces every {{key}} occurrence of each enabled variable with
// its value. Variables are applied in slice order on the accumulating text,
// so a value that contains a placeholder is only expanded by variables that
// come later. Placeholders without a matching enabled variable are left as-is.
func Interpolate(text string, vars []model.EnvironmentVariable) string {
	result := text
	for _, v := range vars {
		if !v.Enabled {
			continue
		}
		result = strings.ReplaceAll(result, "{{"+v.Key+"}}", v.Value)
	}
	return result
}
