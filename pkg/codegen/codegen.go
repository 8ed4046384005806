// Package codegen renders a request as source code for other HTTP clients.
// Every emitter renders a core.Resolution, so the snippets send the same
// call the client itself would send.
package codegen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blackcoderx/apistudio/pkg/model"
)

// ErrUnknownTarget is returned for a target name that has no emitter.
var ErrUnknownTarget = errors.New("unknown code target")

// Target names a snippet language and client library.
type Target string

const (
	TargetCurl   Target = "curl"
	TargetFetch  Target = "javascript-fetch"
	TargetPython Target = "python-requests"
	TargetAxios  Target = "nodejs-axios"
)

// Emitter renders one request. Emitters never fail; malformed input is
// rendered as text.
type Emitter func(req model.Request, vars []model.EnvironmentVariable) string

var targets = []Target{TargetCurl, TargetFetch, TargetPython, TargetAxios}

var emitters = map[Target]Emitter{
	TargetCurl:   Curl,
	TargetFetch:  Fetch,
	TargetPython: Python,
	TargetAxios:  Axios,
}

var labels = map[Target]string{
	TargetCurl:   "cURL",
	TargetFetch:  "JavaScript (fetch)",
	TargetPython: "Python (requests)",
	TargetAxios:  "Node.js (axios)",
}

var aliases = map[string]Target{
	"curl":             TargetCurl,
	"fetch":            TargetFetch,
	"js":               TargetFetch,
	"javascript":       TargetFetch,
	"javascript-fetch": TargetFetch,
	"python":           TargetPython,
	"py":               TargetPython,
	"python-requests":  TargetPython,
	"axios":            TargetAxios,
	"node":             TargetAxios,
	"nodejs-axios":     TargetAxios,
}

// Targets lists the supported targets in display order.
func Targets() []Target {
	return append([]Target(nil), targets...)
}

// ParseTarget resolves a target name or one of its short aliases.
func ParseTarget(s string) (Target, error) {
	if t, ok := aliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTarget, s)
}

// Label is the human readable name of the target.
func (t Target) Label() string {
	if l, ok := labels[t]; ok {
		return l
	}
	return string(t)
}

// Next returns the target after t, wrapping around.
func (t Target) Next() Target {
	for i, candidate := range targets {
		if candidate == t {
			return targets[(i+1)%len(targets)]
		}
	}
	return targets[0]
}

// Emit renders req for target.
func Emit(target Target, req model.Request, vars []model.EnvironmentVariable) (string, error) {
	emit, ok := emitters[target]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTarget, target)
	}
	return emit(req, vars), nil
}
