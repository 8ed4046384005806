package model

import "fmt"

// BodyKind identifies a body variant on the wire.
type BodyKind string

const (
	BodyKindNone       BodyKind = "none"
	BodyKindRaw        BodyKind = "raw"
	BodyKindForm       BodyKind = "form-data"
	BodyKindURLEncoded BodyKind = "x-www-form-urlencoded"
)

// RawType is the sub-type of a raw body.
type RawType string

const (
	RawJSON RawType = "json"
	RawText RawType = "text"
	RawXML  RawType = "xml"
	RawHTML RawType = "html"
)

// Body is the request payload descriptor. It is one of NoBody, RawBody,
// FormBody or URLEncodedBody.
type Body interface {
	Kind() BodyKind
}

// NoBody sends no payload.
type NoBody struct{}

// RawBody sends Content verbatim after interpolation.
type RawBody struct {
	Content string
	Type    RawType
}

// FormBody is reserved for multipart form data. It never produces a payload.
type FormBody struct {
	Content string
}

// URLEncodedBody holds k=v&k2=v2 text that is re-encoded as a form body.
type URLEncodedBody struct {
	Content string
}

func (NoBody) Kind() BodyKind         { return BodyKindNone }
func (RawBody) Kind() BodyKind        { return BodyKindRaw }
func (FormBody) Kind() BodyKind       { return BodyKindForm }
func (URLEncodedBody) Kind() BodyKind { return BodyKindURLEncoded }

// bodyWire is the tagged encoding shared by JSON and YAML.
type bodyWire struct {
	Type    BodyKind `json:"type" yaml:"type"`
	Content string   `json:"content,omitempty" yaml:"content,omitempty"`
	RawType RawType  `json:"rawType,omitempty" yaml:"rawType,omitempty"`
}

func encodeBody(b Body) bodyWire {
	switch v := b.(type) {
	case RawBody:
		rt := v.Type
		if rt == "" {
			rt = RawJSON
		}
		return bodyWire{Type: BodyKindRaw, Content: v.Content, RawType: rt}
	case FormBody:
		return bodyWire{Type: BodyKindForm, Content: v.Content}
	case URLEncodedBody:
		return bodyWire{Type: BodyKindURLEncoded, Content: v.Content}
	default:
		return bodyWire{Type: BodyKindNone}
	}
}

func decodeBody(w bodyWire) (Body, error) {
	switch w.Type {
	case BodyKindNone, "":
		return NoBody{}, nil
	case BodyKindRaw:
		rt := w.RawType
		if rt == "" {
			rt = RawJSON
		}
		return RawBody{Content: w.Content, Type: rt}, nil
	case BodyKindForm:
		return FormBody{Content: w.Content}, nil
	case BodyKindURLEncoded:
		return URLEncodedBody{Content: w.Content}, nil
	default:
		return nil, fmt.Errorf("unknown body type %q", w.Type)
	}
}

// ParseBodyKind accepts the wire names plus the short aliases "form" and "urlencoded".
func ParseBodyKind(s string) (BodyKind, error) {
	switch s {
	case "none", "":
		return BodyKindNone, nil
	case "raw":
		return BodyKindRaw, nil
	case "form-data", "form":
		return BodyKindForm, nil
	case "x-www-form-urlencoded", "urlencoded":
		return BodyKindURLEncoded, nil
	}
	return "", fmt.Errorf("unknown body type %q", s)
}
