package codegen

import (
	"strings"

	"github.com/blackcoderx/apistudio/pkg/core"
	"github.com/blackcoderx/apistudio/pkg/model"
)

// Python renders a script using the requests library.
func Python(req model.Request, vars []model.EnvironmentVariable) string {
	res := core.Resolve(req, vars)

	var blocks []string
	blocks = append(blocks, "import requests")
	blocks = append(blocks, "url = "+doubleQuote(res.BaseURL))

	args := []string{"url"}
	if len(res.Params) > 0 {
		blocks = append(blocks, "params = "+pythonPairs(res.Params))
		args = append(args, "params=params")
	}

	headers := res.EffectiveHeaders(core.BasicAsCredentials)
	if len(headers) > 0 {
		pairs := make([]core.Pair, 0, len(headers))
		for _, h := range headers {
			pairs = append(pairs, core.Pair{Key: h.Name, Value: h.Value})
		}
		blocks = append(blocks, "headers = "+pythonDict(pairs))
		args = append(args, "headers=headers")
	}

	if res.HasBody() {
		switch {
		case res.Body.Kind == model.BodyKindURLEncoded:
			blocks = append(blocks, "payload = "+pythonPairs(res.Body.Form))
			args = append(args, "data=payload")
		case res.Body.RawType == model.RawJSON:
			if literal, ok := pythonLiteral(res.Body.Text, ""); ok {
				blocks = append(blocks, "payload = "+literal)
				args = append(args, "json=payload")
				break
			}
			fallthrough
		default:
			blocks = append(blocks, "payload = "+doubleQuote(res.Body.Text))
			args = append(args, "data=payload")
		}
	}

	if res.Auth.Kind == model.AuthKindBasic {
		args = append(args, "auth=("+doubleQuote(res.Auth.Username)+", "+doubleQuote(res.Auth.Password)+")")
	}

	call := "response = requests." + strings.ToLower(string(res.Method)) + "(" + strings.Join(args, ", ") + ")"
	blocks = append(blocks, call)
	blocks = append(blocks, "print(response.status_code)\nprint(response.text)")

	return strings.Join(blocks, "\n\n")
}

// pythonPairs renders a dict, or a list of tuples when keys repeat.
func pythonPairs(pairs []core.Pair) string {
	seen := make(map[string]bool, len(pairs))
	for _, p := range pairs {
		if seen[p.Key] {
			return pythonTuples(pairs)
		}
		seen[p.Key] = true
	}
	return pythonDict(pairs)
}

func pythonDict(pairs []core.Pair) string {
	lines := make([]string, 0, len(pairs))
	for _, p := range pairs {
		lines = append(lines, "    "+doubleQuote(p.Key)+": "+doubleQuote(p.Value))
	}
	return "{\n" + strings.Join(lines, ",\n") + "\n}"
}

func pythonTuples(pairs []core.Pair) string {
	lines := make([]string, 0, len(pairs))
	for _, p := range pairs {
		lines = append(lines, "    ("+doubleQuote(p.Key)+", "+doubleQuote(p.Value)+")")
	}
	return "[\n" + strings.Join(lines, ",\n") + "\n]"
}
