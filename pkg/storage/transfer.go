package storage

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/blackcoderx/apistudio/pkg/model"
)

// bundle is the export document.
type bundle struct {
	Collections  []model.Collection  `json:"collections"`
	Environments []model.Environment `json:"environments"`
}

// ImportSummary counts what an import changed.
type ImportSummary struct {
	CollectionsAdded     int
	CollectionsReplaced  int
	EnvironmentsAdded    int
	EnvironmentsReplaced int
}

const bundleSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "collections": {"type": "array", "items": {"$ref": "#/definitions/collection"}},
    "environments": {"type": "array", "items": {"$ref": "#/definitions/environment"}}
  },
  "definitions": {
    "entry": {
      "type": "object",
      "required": ["key", "value", "enabled"],
      "properties": {
        "id": {"type": "string"},
        "key": {"type": "string"},
        "value": {"type": "string"},
        "enabled": {"type": "boolean"}
      }
    },
    "request": {
      "type": "object",
      "required": ["id", "name", "method", "url"],
      "properties": {
        "id": {"type": "string", "minLength": 1},
        "name": {"type": "string"},
        "method": {"enum": ["GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"]},
        "url": {"type": "string"},
        "headers": {"type": "array", "items": {"$ref": "#/definitions/entry"}},
        "params": {"type": "array", "items": {"$ref": "#/definitions/entry"}},
        "body": {
          "type": "object",
          "required": ["type"],
          "properties": {
            "type": {"enum": ["none", "raw", "form-data", "x-www-form-urlencoded"]},
            "content": {"type": "string"},
            "rawType": {"enum": ["json", "text", "xml", "html"]}
          }
        },
        "auth": {
          "type": "object",
          "required": ["type"],
          "properties": {
            "type": {"enum": ["none", "bearer", "basic", "apikey"]}
          }
        }
      }
    },
    "collection": {
      "type": "object",
      "required": ["id", "name", "requests"],
      "properties": {
        "id": {"type": "string", "minLength": 1},
        "name": {"type": "string", "minLength": 1},
        "description": {"type": "string"},
        "requests": {"type": "array", "items": {"$ref": "#/definitions/request"}}
      }
    },
    "environment": {
      "type": "object",
      "required": ["id", "name", "variables"],
      "properties": {
        "id": {"type": "string", "minLength": 1},
        "name": {"type": "string", "minLength": 1},
        "variables": {"type": "array", "items": {"$ref": "#/definitions/entry"}},
        "isActive": {"type": "boolean"}
      }
    }
  }
}`

var bundleValidator = mustSchema(bundleSchema)

func mustSchema(schema string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schema))
	if err != nil {
		panic(fmt.Sprintf("invalid embedded schema: %v", err))
	}
	return s
}

// Export encodes every collection and environment as JSON.
func (w *Workspace) Export() ([]byte, error) {
	data, err := json.MarshalIndent(bundle{
		Collections:  w.Collections(),
		Environments: w.Environments(),
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode workspace: %w", err)
	}
	return data, nil
}

// ValidateBundle checks an export document and lists every violation.
func ValidateBundle(data []byte) error {
	result, err := bundleValidator.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("failed to parse import document: %w", err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("invalid import document:\n  %s", strings.Join(msgs, "\n  "))
}

// Import merges an export document into the workspace. Items whose ID
// already exists are replaced, others are appended. Imported environments
// never change which environment is active.
func (w *Workspace) Import(data []byte) (ImportSummary, error) {
	var summary ImportSummary
	if err := ValidateBundle(data); err != nil {
		return summary, err
	}

	var b bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return summary, fmt.Errorf("failed to decode import document: %w", err)
	}

	collections := w.Collections()
	for _, c := range b.Collections {
		if c.Requests == nil {
			c.Requests = []model.Request{}
		}
		// an imported request leaves the collection that owned it before
		for i := range collections {
			if collections[i].ID == c.ID {
				continue
			}
			for _, r := range c.Requests {
				if pos := collections[i].IndexOf(r.ID); pos >= 0 {
					collections[i].Requests = append(collections[i].Requests[:pos], collections[i].Requests[pos+1:]...)
				}
			}
		}
		if i := indexCollection(collections, c.ID); i >= 0 {
			collections[i] = c
			summary.CollectionsReplaced++
		} else {
			collections = append(collections, c)
			summary.CollectionsAdded++
		}
	}

	environments := w.Environments()
	for _, env := range b.Environments {
		if env.Variables == nil {
			env.Variables = []model.EnvironmentVariable{}
		}
		if i := indexEnvironment(environments, env.ID); i >= 0 {
			env.Active = environments[i].Active
			environments[i] = env
			summary.EnvironmentsReplaced++
		} else {
			env.Active = false
			environments = append(environments, env)
			summary.EnvironmentsAdded++
		}
	}

	// environments go first so a failed collection write can be undone
	previous := w.Environments()
	if err := w.saveEnvironments(environments); err != nil {
		return ImportSummary{}, err
	}
	if err := w.saveCollections(collections); err != nil {
		if restoreErr := w.saveEnvironments(previous); restoreErr != nil {
			return summary, fmt.Errorf("%w; environments were imported and could not be restored: %v", err, restoreErr)
		}
		return ImportSummary{}, err
	}
	return summary, nil
}

func indexCollection(list []model.Collection, id string) int {
	for i, c := range list {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func indexEnvironment(list []model.Environment, id string) int {
	for i, env := range list {
		if env.ID == id {
			return i
		}
	}
	return -1
}
