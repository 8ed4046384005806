package model

import "fmt"

// AuthKind identifies an auth variant on the wire.
type AuthKind string

const (
	AuthKindNone   AuthKind = "none"
	AuthKindBearer AuthKind = "bearer"
	AuthKindBasic  AuthKind = "basic"
	AuthKindAPIKey AuthKind = "apikey"
)

// Auth is the authentication descriptor of a request. It is one of NoAuth,
// BearerAuth, BasicAuth or APIKeyAuth.
type Auth interface {
	Kind() AuthKind
}

// NoAuth adds nothing.
type NoAuth struct{}

// BearerAuth sends "Authorization: Bearer <token>". The token is interpolated.
type BearerAuth struct {
	Token string
}

// BasicAuth sends "Authorization: Basic base64(user:pass)".
// Username and Password are used literally.
type BasicAuth struct {
	Username string
	Password string
}

// APIKeyAuth sends the header Key with the interpolated Value.
type APIKeyAuth struct {
	Key   string
	Value string
}

func (NoAuth) Kind() AuthKind     { return AuthKindNone }
func (BearerAuth) Kind() AuthKind { return AuthKindBearer }
func (BasicAuth) Kind() AuthKind  { return AuthKindBasic }
func (APIKeyAuth) Kind() AuthKind { return AuthKindAPIKey }

type authWire struct {
	Type     AuthKind `json:"type" yaml:"type"`
	Token    string   `json:"token,omitempty" yaml:"token,omitempty"`
	Username string   `json:"username,omitempty" yaml:"username,omitempty"`
	Password string   `json:"password,omitempty" yaml:"password,omitempty"`
	Key      string   `json:"key,omitempty" yaml:"key,omitempty"`
	Value    string   `json:"value,omitempty" yaml:"value,omitempty"`
}

func encodeAuth(a Auth) authWire {
	switch v := a.(type) {
	case BearerAuth:
		return authWire{Type: AuthKindBearer, Token: v.Token}
	case BasicAuth:
		return authWire{Type: AuthKindBasic, Username: v.Username, Password: v.Password}
	case APIKeyAuth:
		return authWire{Type: AuthKindAPIKey, Key: v.Key, Value: v.Value}
	default:
		return authWire{Type: AuthKindNone}
	}
}

func decodeAuth(w authWire) (Auth, error) {
	switch w.Type {
	case AuthKindNone, "":
		return NoAuth{}, nil
	case AuthKindBearer:
		return BearerAuth{Token: w.Token}, nil
	case AuthKindBasic:
		return BasicAuth{Username: w.Username, Password: w.Password}, nil
	case AuthKindAPIKey:
		return APIKeyAuth{Key: w.Key, Value: w.Value}, nil
	default:
		return nil, fmt.Errorf("unknown auth type %q", w.Type)
	}
}
