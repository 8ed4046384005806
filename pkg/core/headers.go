package core

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
)

// HeaderField is one resolved header.
type HeaderField struct {
	Name  string
	Value string
}

// Headers is an ordered header set. Names compare case-insensitively and a
// later Set for an existing name overwrites it in place.
type Headers []HeaderField

// Get returns the value stored under name.
func (h Headers) Get(name string) (string, bool) {
	if i := h.index(name); i >= 0 {
		return h[i].Value, true
	}
	return "", false
}

// Has reports whether name is present.
func (h Headers) Has(name string) bool {
	return h.index(name) >= 0
}

// Set adds or overwrites name. Set and Del never write into the array of
// the receiver, so copies of a Headers value stay unchanged.
func (h *Headers) Set(name, value string) {
	field := HeaderField{Name: name, Value: value}
	if i := h.index(name); i >= 0 {
		next := h.Clone()
		next[i] = field
		*h = next
		return
	}
	next := make(Headers, len(*h), len(*h)+1)
	copy(next, *h)
	*h = append(next, field)
}

// Del removes name if present.
func (h *Headers) Del(name string) {
	i := h.index(name)
	if i < 0 {
		return
	}
	next := make(Headers, 0, len(*h)-1)
	next = append(next, (*h)[:i]...)
	*h = append(next, (*h)[i+1:]...)
}

// Clone returns a copy that can be modified independently.
func (h Headers) Clone() Headers {
	return append(Headers{}, h...)
}

// Map flattens the set into a plain map.
func (h Headers) Map() map[string]string {
	m := make(map[string]string, len(h))
	for _, f := range h {
		m[f.Name] = f.Value
	}
	return m
}

// HTTP converts the set into net/http headers.
func (h Headers) HTTP() http.Header {
	out := make(http.Header, len(h))
	for _, f := range h {
		out.Set(f.Name, f.Value)
	}
	return out
}

// MarshalJSON encodes the set as a JSON object in insertion order.
func (h Headers) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range h {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (h Headers) index(name string) int {
	for i, f := range h {
		if strings.EqualFold(f.Name, name) {
			return i
		}
	}
	return -1
}
