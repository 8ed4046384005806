package client

import (
	"encoding/json"
	"fmt"

	"github.com/jmespath/go-jmespath"

	"github.com/blackcoderx/apistudio/pkg/model"
)

// Query evaluates a JMESPath expression against the response data.
func Query(resp *model.Response, expr string) (interface{}, error) {
	compiled, err := jmespath.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid query %q: %w", expr, err)
	}

	data, err := plainData(resp.Data)
	if err != nil {
		return nil, err
	}
	result, err := compiled.Search(data)
	if err != nil {
		return nil, fmt.Errorf("query %q failed: %w", expr, err)
	}
	return result, nil
}

// plainData re-decodes response data without json.Number so that numeric
// comparisons in expressions work.
func plainData(data interface{}) (interface{}, error) {
	if _, isText := data.(string); isText {
		return data, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode response data: %w", err)
	}
	var out interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode response data: %w", err)
	}
	return out, nil
}
