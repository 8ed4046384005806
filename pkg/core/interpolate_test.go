package core

import (
	"testing"

	"github.com/blackcoderx/apistudio/pkg/model"
)

func vars(kv ...string) []model.EnvironmentVariable {
	out := make([]model.EnvironmentVariable, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		out = append(out, model.EnvironmentVariable{ID: kv[i], Key: kv[i], Value: kv[i+1], Enabled: true})
	}
	return out
}

func TestInterpolate(t *testing.T) {
	disabled := model.EnvironmentVariable{Key: "host", Value: "prod.test", Enabled: false}

	tests := []struct {
		name string
		text string
		vars []model.EnvironmentVariable
		want string
	}{
		{name: "single", text: "https://{{host}}/v1", vars: vars("host", "api.test"), want: "https://api.test/v1"},
		{name: "every occurrence", text: "{{a}}-{{a}}-{{a}}", vars: vars("a", "x"), want: "x-x-x"},
		{name: "unknown kept", text: "{{host}}/{{missing}}", vars: vars("host", "h"), want: "h/{{missing}}"},
		{name: "disabled ignored", text: "{{host}}", vars: []model.EnvironmentVariable{disabled}, want: "{{host}}"},
		{name: "no vars", text: "plain {{x}}", vars: nil, want: "plain {{x}}"},
		{name: "regex metacharacters are literal", text: "{{a.b}} {{a+b}}", vars: vars("a.b", "1", "a+b", "2"), want: "1 2"},
		{name: "no braces inside key", text: "{{ host }}", vars: vars("host", "h"), want: "{{ host }}"},
		{name: "later variable expands earlier value", text: "{{url}}", vars: vars("url", "{{host}}/x", "host", "h"), want: "h/x"},
		{name: "earlier variable does not expand later value", text: "{{url}}", vars: vars("host", "h", "url", "{{host}}/x"), want: "{{host}}/x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Interpolate(tt.text, tt.vars); got != tt.want {
				t.Errorf("Interpolate(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestInterpolateIsIdempotentWithoutPlaceholdersInValues(t *testing.T) {
	vs := vars("a", "1", "b", "2")
	once := Interpolate("{{a}}/{{b}}/{{c}}", vs)
	if twice := Interpolate(once, vs); twice != once {
		t.Errorf("second pass changed %q into %q", once, twice)
	}
}
