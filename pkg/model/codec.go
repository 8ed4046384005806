package model

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// requestWire is the persisted shape of a Request.
type requestWire struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Method    Method    `json:"method" yaml:"method"`
	URL       string    `json:"url" yaml:"url"`
	Headers   []Header  `json:"headers" yaml:"headers"`
	Params    []Param   `json:"params" yaml:"params"`
	Body      bodyWire  `json:"body" yaml:"body"`
	Auth      authWire  `json:"auth" yaml:"auth"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

func (r Request) toWire() requestWire {
	headers := r.Headers
	if headers == nil {
		headers = []Header{}
	}
	params := r.Params
	if params == nil {
		params = []Param{}
	}
	return requestWire{
		ID:        r.ID,
		Name:      r.Name,
		Method:    r.Method,
		URL:       r.URL,
		Headers:   headers,
		Params:    params,
		Body:      encodeBody(r.BodyOrNone()),
		Auth:      encodeAuth(r.AuthOrNone()),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func (w requestWire) toRequest() (Request, error) {
	method, err := ParseMethod(string(w.Method))
	if err != nil {
		return Request{}, fmt.Errorf("request %q: %w", w.Name, err)
	}
	body, err := decodeBody(w.Body)
	if err != nil {
		return Request{}, fmt.Errorf("request %q: %w", w.Name, err)
	}
	auth, err := decodeAuth(w.Auth)
	if err != nil {
		return Request{}, fmt.Errorf("request %q: %w", w.Name, err)
	}
	return Request{
		ID:        w.ID,
		Name:      w.Name,
		Method:    method,
		URL:       w.URL,
		Headers:   w.Headers,
		Params:    w.Params,
		Body:      body,
		Auth:      auth,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}, nil
}

// MarshalJSON encodes the body and auth variants as type-tagged objects.
func (r Request) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.toWire())
}

// UnmarshalJSON decodes a request and validates its method and variants.
func (r *Request) UnmarshalJSON(data []byte) error {
	var w requestWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	req, err := w.toRequest()
	if err != nil {
		return err
	}
	*r = req
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (r Request) MarshalYAML() (interface{}, error) {
	return r.toWire(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (r *Request) UnmarshalYAML(value *yaml.Node) error {
	var w requestWire
	if err := value.Decode(&w); err != nil {
		return err
	}
	req, err := w.toRequest()
	if err != nil {
		return err
	}
	*r = req
	return nil
}
