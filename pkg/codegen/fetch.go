package codegen

import (
	"strings"

	"github.com/blackcoderx/apistudio/pkg/core"
	"github.com/blackcoderx/apistudio/pkg/model"
)

// Fetch renders a browser fetch call.
func Fetch(req model.Request, vars []model.EnvironmentVariable) string {
	res := core.Resolve(req, vars)

	var fields []string
	fields = append(fields, "  method: "+doubleQuote(string(res.Method)))

	headers := res.EffectiveHeaders(core.BasicAsCredentials)
	var entries []string
	for _, h := range headers {
		entries = append(entries, "    "+doubleQuote(h.Name)+": "+doubleQuote(h.Value))
	}
	if res.Auth.Kind == model.AuthKindBasic {
		credentials := doubleQuote(res.Auth.Username + ":" + res.Auth.Password)
		entries = append(entries, `    "Authorization": "Basic " + btoa(`+credentials+`)`)
	}
	if len(entries) > 0 {
		fields = append(fields, "  headers: {\n"+strings.Join(entries, ",\n")+"\n  }")
	}

	if res.HasBody() {
		fields = append(fields, "  body: "+fetchBody(res.Body))
	}

	var sb strings.Builder
	sb.WriteString("const response = await fetch(" + doubleQuote(res.URL) + ", {\n")
	sb.WriteString(strings.Join(fields, ",\n"))
	sb.WriteString("\n});\n\n")
	sb.WriteString("const data = await response.json();\n")
	sb.WriteString("console.log(data);")
	return sb.String()
}

func fetchBody(body core.ResolvedBody) string {
	if body.Kind == model.BodyKindRaw && body.RawType == model.RawJSON {
		if literal, ok := indentJSON(body.Text, "  ", "  "); ok {
			return "JSON.stringify(" + literal + ")"
		}
	}
	return doubleQuote(body.Text)
}
