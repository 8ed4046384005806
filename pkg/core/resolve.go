// Package core turns a stored request and a list of variables into a
// concrete HTTP call: placeholder substitution, URL normalization, headers,
// auth and body encoding.
package core

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/blackcoderx/apistudio/pkg/model"
)

const (
	contentTypeJSON = "application/json"
	contentTypeForm = "application/x-www-form-urlencoded"
)

var schemePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://`)

// Resolution is a request with every template rule applied. Materialize and
// the code emitters render the same Resolution, so they can never disagree on
// which headers, params or body a request carries.
type Resolution struct {
	Method model.Method
	// URL is the final URL including appended query params.
	URL string
	// BaseURL is the interpolated URL before params are appended.
	BaseURL string
	Params  []Pair
	// Headers holds the explicit enabled headers, without auth or Content-Type.
	Headers Headers
	Auth    ResolvedAuth
	Body    ResolvedBody
	// Err is set when the URL cannot be parsed. URL and BaseURL then hold
	// the interpolated text as typed.
	Err error
}

// ResolvedAuth is the auth that applies after the empty-field checks.
// Kind is AuthKindNone when nothing is added.
type ResolvedAuth struct {
	Kind model.AuthKind
	// Header is set for bearer and apikey auth.
	Header HeaderField
	// Username and Password are set for basic auth and are never interpolated.
	Username string
	Password string
}

// BasicHeader returns the encoded Authorization header for basic auth.
func (a ResolvedAuth) BasicHeader() HeaderField {
	token := base64.StdEncoding.EncodeToString([]byte(a.Username + ":" + a.Password))
	return HeaderField{Name: "Authorization", Value: "Basic " + token}
}

// ResolvedBody is the payload that will be sent. Kind is BodyKindNone when
// the method forbids a body or the content is empty.
type ResolvedBody struct {
	Kind    model.BodyKind
	RawType model.RawType
	// Text is the payload exactly as sent.
	Text string
	// Form holds the decoded pairs of an urlencoded body.
	Form []Pair
}

// BasicAuthMode selects how EffectiveHeaders treats basic auth.
type BasicAuthMode int

const (
	// BasicAsHeader encodes the credentials into an Authorization header.
	BasicAsHeader BasicAuthMode = iota
	// BasicAsCredentials leaves credentials to the caller and drops any
	// explicit Authorization header they would replace.
	BasicAsCredentials
)

// Resolve applies interpolation, URL defaulting, header filtering, auth
// precedence, body gating and query appension to req. It never fails; URL
// problems are reported through Resolution.Err.
func Resolve(req model.Request, vars []model.EnvironmentVariable) Resolution {
	res := Resolution{Method: req.Method}

	for _, h := range req.Headers {
		if h.Enabled && h.Key != "" && h.Value != "" {
			res.Headers.Set(h.Key, Interpolate(h.Value, vars))
		}
	}
	for _, p := range req.Params {
		if p.Enabled && p.Key != "" && p.Value != "" {
			res.Params = append(res.Params, Pair{Key: p.Key, Value: Interpolate(p.Value, vars)})
		}
	}

	res.Auth = resolveAuth(req.AuthOrNone(), vars)
	if req.Method.AllowsBody() {
		res.Body = resolveBody(req.BodyOrNone(), vars)
	} else {
		res.Body = ResolvedBody{Kind: model.BodyKindNone}
	}

	raw := strings.TrimSpace(Interpolate(req.URL, vars))
	if !schemePattern.MatchString(raw) {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err == nil && u.Host == "" {
		err = fmt.Errorf("missing host")
	}
	if err != nil {
		res.Err = fmt.Errorf("invalid URL %q: %w", raw, err)
		res.BaseURL = raw
		res.URL = appendQuery(raw, res.Params)
		return res
	}

	res.BaseURL = u.String()
	if len(res.Params) > 0 {
		if u.RawQuery != "" {
			u.RawQuery += "&"
		}
		u.RawQuery += EncodeForm(res.Params)
	}
	res.URL = u.String()
	return res
}

// EffectiveHeaders returns the explicit headers merged with auth and the
// Content-Type derived from the body, in that order of precedence.
func (r Resolution) EffectiveHeaders(mode BasicAuthMode) Headers {
	h := r.Headers.Clone()

	switch r.Auth.Kind {
	case model.AuthKindBearer, model.AuthKindAPIKey:
		h.Set(r.Auth.Header.Name, r.Auth.Header.Value)
	case model.AuthKindBasic:
		if mode == BasicAsHeader {
			basic := r.Auth.BasicHeader()
			h.Set(basic.Name, basic.Value)
		} else {
			h.Del("Authorization")
		}
	}

	switch r.Body.Kind {
	case model.BodyKindRaw:
		if r.Body.RawType == model.RawJSON && !h.Has("Content-Type") {
			h.Set("Content-Type", contentTypeJSON)
		}
	case model.BodyKindURLEncoded:
		h.Set("Content-Type", contentTypeForm)
	}
	return h
}

// HasBody reports whether a payload is sent.
func (r Resolution) HasBody() bool {
	return r.Body.Kind == model.BodyKindRaw || r.Body.Kind == model.BodyKindURLEncoded
}

func resolveAuth(auth model.Auth, vars []model.EnvironmentVariable) ResolvedAuth {
	switch a := auth.(type) {
	case model.BearerAuth:
		if a.Token != "" {
			return ResolvedAuth{
				Kind:   model.AuthKindBearer,
				Header: HeaderField{Name: "Authorization", Value: "Bearer " + Interpolate(a.Token, vars)},
			}
		}
	case model.BasicAuth:
		if a.Username != "" && a.Password != "" {
			return ResolvedAuth{Kind: model.AuthKindBasic, Username: a.Username, Password: a.Password}
		}
	case model.APIKeyAuth:
		if a.Key != "" && a.Value != "" {
			return ResolvedAuth{
				Kind:   model.AuthKindAPIKey,
				Header: HeaderField{Name: a.Key, Value: Interpolate(a.Value, vars)},
			}
		}
	}
	return ResolvedAuth{Kind: model.AuthKindNone}
}

func resolveBody(body model.Body, vars []model.EnvironmentVariable) ResolvedBody {
	switch b := body.(type) {
	case model.RawBody:
		if b.Content != "" {
			rt := b.Type
			if rt == "" {
				// an unset sub-type is stored and sent as JSON
				rt = model.RawJSON
			}
			return ResolvedBody{Kind: model.BodyKindRaw, RawType: rt, Text: Interpolate(b.Content, vars)}
		}
	case model.URLEncodedBody:
		if b.Content != "" {
			form := parseForm(Interpolate(b.Content, vars))
			return ResolvedBody{Kind: model.BodyKindURLEncoded, Text: EncodeForm(form), Form: form}
		}
	}
	return ResolvedBody{Kind: model.BodyKindNone}
}

func appendQuery(raw string, params []Pair) string {
	if len(params) == 0 {
		return raw
	}
	sep := "?"
	if strings.Contains(raw, "?") {
		sep = "&"
	}
	return raw + sep + EncodeForm(params)
}
