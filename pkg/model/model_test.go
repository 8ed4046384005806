package model

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestParseMethod(t *testing.T) {
	tests := []struct {
		in      string
		want    Method
		wantErr bool
	}{
		{in: "get", want: MethodGet},
		{in: " Patch ", want: MethodPatch},
		{in: "OPTIONS", want: MethodOptions},
		{in: "TRACE", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMethod(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidMethod) {
					t.Fatalf("expected ErrInvalidMethod, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRequestDecodesExportedJSONShape(t *testing.T) {
	data := `{
		"id": "r1",
		"name": "Create user",
		"method": "POST",
		"url": "{{base}}/users",
		"headers": [{"id": "h1", "key": "X-Trace", "value": "1", "enabled": false}],
		"params": [],
		"body": {"type": "raw", "content": "{\"a\":1}", "rawType": "json"},
		"auth": {"type": "basic", "username": "u", "password": "p"},
		"createdAt": "2024-01-02T03:04:05Z",
		"updatedAt": "2024-01-02T03:04:05Z"
	}`

	var req Request
	if err := json.Unmarshal([]byte(data), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if req.Method != MethodPost {
		t.Errorf("method = %q", req.Method)
	}
	body, ok := req.Body.(RawBody)
	if !ok || body.Type != RawJSON || body.Content != `{"a":1}` {
		t.Errorf("unexpected body %#v", req.Body)
	}
	if auth, ok := req.Auth.(BasicAuth); !ok || auth.Username != "u" || auth.Password != "p" {
		t.Errorf("unexpected auth %#v", req.Auth)
	}
	if len(req.Headers) != 1 || req.Headers[0].Enabled {
		t.Errorf("disabled header not preserved: %#v", req.Headers)
	}
}

func TestRequestRejectsUnknownVariants(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		errMsg string
	}{
		{name: "method", data: `{"name":"x","method":"FETCH","body":{"type":"none"},"auth":{"type":"none"}}`, errMsg: "invalid HTTP method"},
		{name: "body", data: `{"name":"x","method":"GET","body":{"type":"binary"},"auth":{"type":"none"}}`, errMsg: "unknown body type"},
		{name: "auth", data: `{"name":"x","method":"GET","body":{"type":"none"},"auth":{"type":"digest"}}`, errMsg: "unknown auth type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req Request
			err := json.Unmarshal([]byte(tt.data), &req)
			if err == nil || !strings.Contains(err.Error(), tt.errMsg) {
				t.Fatalf("expected error containing %q, got %v", tt.errMsg, err)
			}
		})
	}
}

func TestRequestYAMLRoundTrip(t *testing.T) {
	ts := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	req := Request{
		ID:        "r1",
		Name:      "Login",
		Method:    MethodPut,
		URL:       "https://api.test/{{v}}",
		Headers:   []Header{{ID: "h", Key: "A", Value: "{{x}}", Enabled: true}},
		Params:    []Param{{ID: "p", Key: "q", Value: "1", Enabled: false}},
		Body:      URLEncodedBody{Content: "a=1&b=2"},
		Auth:      APIKeyAuth{Key: "X-Key", Value: "{{key}}"},
		CreatedAt: ts,
		UpdatedAt: ts,
	}

	data, err := yaml.Marshal(req)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got Request
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(got, req) {
		t.Errorf("round trip mismatch:\n got %#v\nwant %#v", got, req)
	}
}

func TestNewRequestDefaults(t *testing.T) {
	req := NewRequest()
	if req.Method != MethodGet || req.ID == "" {
		t.Fatalf("unexpected defaults %#v", req)
	}
	if _, ok := req.Body.(NoBody); !ok {
		t.Errorf("body = %#v, want NoBody", req.Body)
	}
	if _, ok := req.Auth.(NoAuth); !ok {
		t.Errorf("auth = %#v, want NoAuth", req.Auth)
	}
}

func TestMethodAllowsBody(t *testing.T) {
	for _, m := range Methods {
		want := m != MethodGet && m != MethodHead
		if got := m.AllowsBody(); got != want {
			t.Errorf("%s.AllowsBody() = %v", m, got)
		}
	}
}
