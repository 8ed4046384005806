package core

import "github.com/blackcoderx/apistudio/pkg/model"

// Materialized is a request ready to be sent: absolute URL, flattened headers
// and an optional payload.
type Materialized struct {
	URL     string  `json:"url"`
	Headers Headers `json:"headers"`
	Body    string  `json:"body,omitempty"`
	HasBody bool    `json:"hasBody"`
}

// Materialize resolves req against vars. It has no side effects and returns
// the same result for the same input. The only error is an invalid URL.
func Materialize(req model.Request, vars []model.EnvironmentVariable) (Materialized, error) {
	res := Resolve(req, vars)
	if res.Err != nil {
		return Materialized{}, res.Err
	}
	return Materialized{
		URL:     res.URL,
		Headers: res.EffectiveHeaders(BasicAsHeader),
		Body:    res.Body.Text,
		HasBody: res.HasBody(),
	}, nil
}
