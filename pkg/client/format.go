package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/blackcoderx/apistudio/pkg/model"
)

// FormatResponse renders resp as markdown for terminal display.
func FormatResponse(resp *model.Response) string {
	var sb strings.Builder

	// Status line
	sb.WriteString(fmt.Sprintf("**%d %s** · %d ms · %s\n\n", resp.Status, resp.StatusText, resp.Time, humanize.Bytes(uint64(resp.Size))))

	// Headers, sorted for stable output
	if len(resp.Headers) > 0 {
		keys := make([]string, 0, len(resp.Headers))
		for k := range resp.Headers {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		sb.WriteString("### Headers\n\n")
		for _, k := range keys {
			sb.WriteString(fmt.Sprintf("- `%s`: %s\n", k, resp.Headers[k]))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("### Body\n\n")
	body, lang := FormatData(resp.Data)
	if body == "" {
		sb.WriteString("_empty_\n")
		return sb.String()
	}
	sb.WriteString("```" + lang + "\n")
	sb.WriteString(body)
	sb.WriteString("\n```\n")

	return sb.String()
}

// FormatData pretty-prints response data and names its language for
// highlighting. Text bodies are returned unchanged.
func FormatData(data interface{}) (string, string) {
	if text, ok := data.(string); ok {
		return text, ""
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Sprint(data), ""
	}
	return strings.TrimSuffix(buf.String(), "\n"), "json"
}
