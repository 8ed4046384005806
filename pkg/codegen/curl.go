package codegen

import (
	"strings"

	"github.com/blackcoderx/apistudio/pkg/core"
	"github.com/blackcoderx/apistudio/pkg/model"
)

// Curl renders a curl command line.
func Curl(req model.Request, vars []model.EnvironmentVariable) string {
	res := core.Resolve(req, vars)

	parts := []string{"curl -X " + string(res.Method)}
	if res.Method == model.MethodHead {
		// curl -X HEAD waits for a body that never comes
		parts[0] = "curl --head"
	}

	for _, h := range res.EffectiveHeaders(core.BasicAsCredentials) {
		parts = append(parts, "-H "+shellQuote(h.Name+": "+h.Value))
	}
	if res.Auth.Kind == model.AuthKindBasic {
		parts = append(parts, "-u "+shellQuote(res.Auth.Username+":"+res.Auth.Password))
	}
	if res.HasBody() {
		parts = append(parts, "--data-raw "+shellQuote(res.Body.Text))
	}
	parts = append(parts, shellQuote(res.URL))

	return strings.Join(parts, " \\\n  ")
}
