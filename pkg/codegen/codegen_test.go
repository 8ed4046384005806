package codegen

import (
	"errors"
	"strings"
	"testing"

	"github.com/MakeNowJust/heredoc"

	"github.com/blackcoderx/apistudio/pkg/core"
	"github.com/blackcoderx/apistudio/pkg/model"
)

func doc(s string) string {
	return strings.TrimSuffix(heredoc.Doc(s), "\n")
}

func sampleRequest() (model.Request, []model.EnvironmentVariable) {
	req := model.NewRequest()
	req.Method = model.MethodPost
	req.URL = "{{base}}/users"
	req.Headers = []model.Header{
		{ID: "1", Key: "X-Trace", Value: "1", Enabled: true},
		{ID: "2", Key: "X-Off", Value: "nope", Enabled: false},
	}
	req.Params = []model.Param{
		{ID: "3", Key: "page", Value: "2", Enabled: true},
		{ID: "4", Key: "archived", Value: "only", Enabled: false},
	}
	req.Body = model.RawBody{Content: `{"name":"{{name}}"}`, Type: model.RawJSON}
	req.Auth = model.BearerAuth{Token: "{{token}}"}

	vars := []model.EnvironmentVariable{
		{Key: "base", Value: "https://api.test", Enabled: true},
		{Key: "name", Value: "Ada", Enabled: true},
		{Key: "token", Value: "abc", Enabled: true},
	}
	return req, vars
}

func TestEmitters(t *testing.T) {
	req, vars := sampleRequest()

	tests := []struct {
		target Target
		want   string
	}{
		{
			target: TargetCurl,
			want: doc(`
				curl -X POST \
				  -H 'X-Trace: 1' \
				  -H 'Authorization: Bearer abc' \
				  -H 'Content-Type: application/json' \
				  --data-raw '{"name":"Ada"}' \
				  'https://api.test/users?page=2'
			`),
		},
		{
			target: TargetFetch,
			want: doc(`
				const response = await fetch("https://api.test/users?page=2", {
				  method: "POST",
				  headers: {
				    "X-Trace": "1",
				    "Authorization": "Bearer abc",
				    "Content-Type": "application/json"
				  },
				  body: JSON.stringify({
				    "name": "Ada"
				  })
				});

				const data = await response.json();
				console.log(data);
			`),
		},
		{
			target: TargetPython,
			want: doc(`
				import requests

				url = "https://api.test/users"

				params = {
				    "page": "2"
				}

				headers = {
				    "X-Trace": "1",
				    "Authorization": "Bearer abc",
				    "Content-Type": "application/json"
				}

				payload = {
				    "name": "Ada"
				}

				response = requests.post(url, params=params, headers=headers, json=payload)

				print(response.status_code)
				print(response.text)
			`),
		},
		{
			target: TargetAxios,
			want: doc(`
				const axios = require('axios');

				const config = {
				  method: 'post',
				  url: 'https://api.test/users?page=2',
				  headers: {
				    'X-Trace': '1',
				    'Authorization': 'Bearer abc',
				    'Content-Type': 'application/json'
				  },
				  data: {
				    "name": "Ada"
				  }
				};

				axios(config)
				  .then((response) => {
				    console.log(JSON.stringify(response.data));
				  })
				  .catch((error) => {
				    console.log(error);
				  });
			`),
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.target), func(t *testing.T) {
			got, err := Emit(tt.target, req, vars)
			if err != nil {
				t.Fatalf("Emit: %v", err)
			}
			if got != tt.want {
				t.Errorf("output mismatch\n--- got ---\n%s\n--- want ---\n%s", got, tt.want)
			}
		})
	}
}

func TestEmittersRenderBasicAuthLiterally(t *testing.T) {
	req := model.NewRequest()
	req.URL = "api.test/me"
	req.Headers = []model.Header{{Key: "Authorization", Value: "Token stale", Enabled: true}}
	req.Auth = model.BasicAuth{Username: "admin", Password: "{{pw}}"}
	vars := []model.EnvironmentVariable{{Key: "pw", Value: "resolved", Enabled: true}}

	want := map[Target]string{
		TargetCurl:   `-u 'admin:{{pw}}'`,
		TargetFetch:  `"Authorization": "Basic " + btoa("admin:{{pw}}")`,
		TargetPython: `auth=("admin", "{{pw}}")`,
		TargetAxios:  "username: 'admin',\n    password: '{{pw}}'",
	}

	for target, fragment := range want {
		t.Run(string(target), func(t *testing.T) {
			got, _ := Emit(target, req, vars)
			if !strings.Contains(got, fragment) {
				t.Errorf("missing %q in\n%s", fragment, got)
			}
			if strings.Contains(got, "Token stale") {
				t.Errorf("explicit Authorization header should be replaced by basic auth:\n%s", got)
			}
			if strings.Contains(got, "resolved") {
				t.Errorf("basic credentials must not be interpolated:\n%s", got)
			}
		})
	}
}

func TestEmittersMatchMaterializedHeaders(t *testing.T) {
	req, vars := sampleRequest()
	req.Auth = model.APIKeyAuth{Key: "X-Api-Key", Value: "{{token}}"}

	m, err := core.Materialize(req, vars)
	if err != nil {
		t.Fatal(err)
	}

	for _, target := range Targets() {
		t.Run(string(target), func(t *testing.T) {
			got, _ := Emit(target, req, vars)
			for _, h := range m.Headers {
				if !strings.Contains(got, h.Name) || !strings.Contains(got, h.Value) {
					t.Errorf("header %s: %s missing from\n%s", h.Name, h.Value, got)
				}
			}
			if strings.Contains(got, "X-Off") {
				t.Errorf("disabled header rendered:\n%s", got)
			}
			if strings.Contains(got, "archived") || strings.Contains(got, "only") {
				t.Errorf("disabled param rendered:\n%s", got)
			}
			if !strings.Contains(got, "page") {
				t.Errorf("enabled param missing:\n%s", got)
			}
		})
	}
}

func TestEmittersSkipBodyForGet(t *testing.T) {
	req, vars := sampleRequest()
	req.Method = model.MethodGet

	markers := map[Target]string{
		TargetCurl:   "--data-raw",
		TargetFetch:  "body:",
		TargetPython: "payload",
		TargetAxios:  "data:",
	}
	for target, marker := range markers {
		got, _ := Emit(target, req, vars)
		if strings.Contains(got, marker) || strings.Contains(got, "Content-Type") {
			t.Errorf("%s: GET request rendered a body:\n%s", target, got)
		}
	}
}

func TestEmittersDegradeGracefully(t *testing.T) {
	req := model.NewRequest()
	req.Method = model.MethodPost
	req.URL = "{{base}}/x"
	req.Params = []model.Param{{Key: "q", Value: "1", Enabled: true}}
	req.Body = model.RawBody{Content: "{{payload}}", Type: model.RawJSON}

	curl := Curl(req, nil)
	if !strings.Contains(curl, "'https://{{base}}/x?q=1'") {
		t.Errorf("unresolved URL not rendered as text:\n%s", curl)
	}
	if fetch := Fetch(req, nil); !strings.Contains(fetch, `body: "{{payload}}"`) {
		t.Errorf("invalid JSON body should be quoted:\n%s", fetch)
	}
	if py := Python(req, nil); !strings.Contains(py, `payload = "{{payload}}"`) || !strings.Contains(py, "data=payload") {
		t.Errorf("invalid JSON body should be sent as data:\n%s", py)
	}
}

func TestPythonLiteral(t *testing.T) {
	got, ok := pythonLiteral(`{"ok":true,"n":null,"list":[1,false],"empty":{}}`, "")
	if !ok {
		t.Fatal("expected valid JSON")
	}
	want := doc(`
		{
		    "ok": True,
		    "n": None,
		    "list": [
		        1,
		        False
		    ],
		    "empty": {}
		}
	`)
	if got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}

	if _, ok := pythonLiteral(`{"a":1} trailing`, ""); ok {
		t.Error("trailing data should be rejected")
	}
}

func TestPythonURLEncodedBody(t *testing.T) {
	req := model.NewRequest()
	req.Method = model.MethodPost
	req.URL = "http://forms.test/submit"
	req.Body = model.URLEncodedBody{Content: "a=1&a=2"}

	got := Python(req, nil)
	want := doc(`
		payload = [
		    ("a", "1"),
		    ("a", "2")
		]
	`)
	if !strings.Contains(got, want) || !strings.Contains(got, "data=payload") {
		t.Errorf("unexpected form rendering:\n%s", got)
	}
}

func TestShellQuote(t *testing.T) {
	if got := shellQuote("it's"); got != `'it'\''s'` {
		t.Errorf("shellQuote = %s", got)
	}
}

func TestParseTarget(t *testing.T) {
	tests := []struct {
		in      string
		want    Target
		wantErr bool
	}{
		{in: "curl", want: TargetCurl},
		{in: "Fetch", want: TargetFetch},
		{in: "python", want: TargetPython},
		{in: "nodejs-axios", want: TargetAxios},
		{in: "ruby", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTarget(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownTarget) {
					t.Fatalf("expected ErrUnknownTarget, got %v", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseTarget(%q) = %q, %v", tt.in, got, err)
			}
		})
	}

	if _, err := Emit(Target("ruby"), model.NewRequest(), nil); !errors.Is(err, ErrUnknownTarget) {
		t.Errorf("Emit with unknown target: %v", err)
	}
	if TargetAxios.Next() != TargetCurl {
		t.Error("Next should wrap around")
	}
}
