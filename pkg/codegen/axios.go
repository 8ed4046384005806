package codegen

import (
	"strings"

	"github.com/blackcoderx/apistudio/pkg/core"
	"github.com/blackcoderx/apistudio/pkg/model"
)

// Axios renders a Node.js script using axios.
func Axios(req model.Request, vars []model.EnvironmentVariable) string {
	res := core.Resolve(req, vars)

	fields := []string{
		"  method: " + singleQuote(strings.ToLower(string(res.Method))),
		"  url: " + singleQuote(res.URL),
	}

	headers := res.EffectiveHeaders(core.BasicAsCredentials)
	if len(headers) > 0 {
		entries := make([]string, 0, len(headers))
		for _, h := range headers {
			entries = append(entries, "    "+singleQuote(h.Name)+": "+singleQuote(h.Value))
		}
		fields = append(fields, "  headers: {\n"+strings.Join(entries, ",\n")+"\n  }")
	}

	if res.Auth.Kind == model.AuthKindBasic {
		fields = append(fields, "  auth: {\n    username: "+singleQuote(res.Auth.Username)+
			",\n    password: "+singleQuote(res.Auth.Password)+"\n  }")
	}

	if res.HasBody() {
		data := singleQuote(res.Body.Text)
		if res.Body.Kind == model.BodyKindRaw && res.Body.RawType == model.RawJSON {
			if literal, ok := indentJSON(res.Body.Text, "  ", "  "); ok {
				data = literal
			}
		}
		fields = append(fields, "  data: "+data)
	}

	var sb strings.Builder
	sb.WriteString("const axios = require('axios');\n\n")
	sb.WriteString("const config = {\n")
	sb.WriteString(strings.Join(fields, ",\n"))
	sb.WriteString("\n};\n\n")
	sb.WriteString("axios(config)\n")
	sb.WriteString("  .then((response) => {\n")
	sb.WriteString("    console.log(JSON.stringify(response.data));\n")
	sb.WriteString("  })\n")
	sb.WriteString("  .catch((error) => {\n")
	sb.WriteString("    console.log(error);\n")
	sb.WriteString("  });")
	return sb.String()
}
