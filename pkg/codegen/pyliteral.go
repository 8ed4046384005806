package codegen

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
)

// pythonLiteral converts a JSON document into an equivalent Python literal,
// keeping object key order. ok is false when text is not valid JSON.
func pythonLiteral(text, prefix string) (string, bool) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var sb strings.Builder
	if err := writePython(dec, &sb, prefix, 0); err != nil {
		return "", false
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return "", false
	}
	return sb.String(), true
}

func writePython(dec *json.Decoder, sb *strings.Builder, prefix string, depth int) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	return writePythonToken(dec, tok, sb, prefix, depth)
}

func writePythonToken(dec *json.Decoder, tok json.Token, sb *strings.Builder, prefix string, depth int) error {
	pad := prefix + strings.Repeat("    ", depth+1)
	closing := prefix + strings.Repeat("    ", depth)

	switch v := tok.(type) {
	case json.Delim:
		open, end := "{", "}"
		if v == '[' {
			open, end = "[", "]"
		}
		sb.WriteString(open)
		n := 0
		for dec.More() {
			if n > 0 {
				sb.WriteString(",")
			}
			sb.WriteString("\n" + pad)
			if v == '{' {
				key, err := dec.Token()
				if err != nil {
					return err
				}
				name, ok := key.(string)
				if !ok {
					return errors.New("object key is not a string")
				}
				sb.WriteString(doubleQuote(name) + ": ")
			}
			if err := writePython(dec, sb, prefix, depth+1); err != nil {
				return err
			}
			n++
		}
		if _, err := dec.Token(); err != nil {
			return err
		}
		if n > 0 {
			sb.WriteString("\n" + closing)
		}
		sb.WriteString(end)
	case string:
		sb.WriteString(doubleQuote(v))
	case json.Number:
		sb.WriteString(v.String())
	case bool:
		if v {
			sb.WriteString("True")
		} else {
			sb.WriteString("False")
		}
	case nil:
		sb.WriteString("None")
	default:
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(v); err != nil {
			return err
		}
		sb.WriteString(strings.TrimSpace(buf.String()))
	}
	return nil
}
