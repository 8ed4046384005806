package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidMethod is returned when a method string is not one of the supported HTTP methods.
var ErrInvalidMethod = errors.New("invalid HTTP method")

// Method is an HTTP method supported by the client.
type Method string

const (
	MethodGet     Method = "GET"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodDelete  Method = "DELETE"
	MethodPatch   Method = "PATCH"
	MethodHead    Method = "HEAD"
	MethodOptions Method = "OPTIONS"
)

// Methods lists every supported method in display order.
var Methods = []Method{MethodGet, MethodPost, MethodPut, MethodDelete, MethodPatch, MethodHead, MethodOptions}

// ParseMethod converts a case-insensitive method name into a Method.
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Methods {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMethod, s)
}

// AllowsBody reports whether a payload is sent for this method.
// GET and HEAD never carry one.
func (m Method) AllowsBody() bool {
	return m != MethodGet && m != MethodHead
}

// Header is a single request header entry. Disabled entries are kept but never sent.
type Header struct {
	ID      string `json:"id" yaml:"id"`
	Key     string `json:"key" yaml:"key"`
	Value   string `json:"value" yaml:"value"`
	Enabled bool   `json:"enabled" yaml:"enabled"`
}

// Param is a single query parameter entry.
type Param struct {
	ID      string `json:"id" yaml:"id"`
	Key     string `json:"key" yaml:"key"`
	Value   string `json:"value" yaml:"value"`
	Enabled bool   `json:"enabled" yaml:"enabled"`
}

// NewHeader returns an enabled header with a fresh ID.
func NewHeader(key, value string) Header {
	return Header{ID: uuid.NewString(), Key: key, Value: value, Enabled: true}
}

// NewParam returns an enabled query parameter with a fresh ID.
func NewParam(key, value string) Param {
	return Param{ID: uuid.NewString(), Key: key, Value: value, Enabled: true}
}

// Request is a saved request template. URL, header values, param values and
// body content may contain {{name}} placeholders.
type Request struct {
	ID        string
	Name      string
	Method    Method
	URL       string
	Headers   []Header
	Params    []Param
	Body      Body
	Auth      Auth
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewRequest returns an empty GET request with no body and no auth.
func NewRequest() Request {
	now := time.Now().UTC()
	return Request{
		ID:        uuid.NewString(),
		Name:      "Untitled Request",
		Method:    MethodGet,
		Headers:   []Header{},
		Params:    []Param{},
		Body:      NoBody{},
		Auth:      NoAuth{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch records a mutation.
func (r *Request) Touch(now time.Time) {
	r.UpdatedAt = now.UTC()
}

// Clone returns a deep copy of the request.
func (r Request) Clone() Request {
	out := r
	out.Headers = append([]Header(nil), r.Headers...)
	out.Params = append([]Param(nil), r.Params...)
	return out
}

// BodyOrNone returns the body, treating a nil body as NoBody.
func (r Request) BodyOrNone() Body {
	if r.Body == nil {
		return NoBody{}
	}
	return r.Body
}

// AuthOrNone returns the auth settings, treating nil as NoAuth.
func (r Request) AuthOrNone() Auth {
	if r.Auth == nil {
		return NoAuth{}
	}
	return r.Auth
}
