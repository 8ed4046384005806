package codegen

import (
	"bytes"
	"encoding/json"
	"strings"
)

// shellQuote wraps s in single quotes for POSIX shells.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// doubleQuote returns a double-quoted literal valid in both JavaScript and Python.
func doubleQuote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return `""`
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

var singleQuoteReplacer = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
	"\u2028", `\u2028`,
	"\u2029", `\u2029`,
)

// singleQuote returns a single-quoted JavaScript string literal.
func singleQuote(s string) string {
	return "'" + singleQuoteReplacer.Replace(s) + "'"
}

// indentJSON pretty-prints a JSON document, continuing lines with prefix.
// ok is false when text is not a single JSON value.
func indentJSON(text, prefix, indent string) (string, bool) {
	if !json.Valid([]byte(text)) {
		return "", false
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(text), prefix, indent); err != nil {
		return "", false
	}
	return buf.String(), true
}
