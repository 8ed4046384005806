// Package auth obtains OAuth2 access tokens for use in environment variables.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/blackcoderx/apistudio/pkg/core"
	"github.com/blackcoderx/apistudio/pkg/model"
	"github.com/blackcoderx/apistudio/pkg/storage"
)

// Supported grant types.
const (
	FlowClientCredentials = "client_credentials"
	FlowPassword          = "password"
)

// TokenParams defines the parameters for an OAuth2 token request.
type TokenParams struct {
	// Flow is the grant type: "client_credentials" or "password"
	Flow         string
	TokenURL     string
	ClientID     string
	ClientSecret string
	Scopes       []string
	// Username and Password are required for the password flow
	Username string
	Password string
}

// Interpolate resolves {{name}} placeholders in every field.
func (p TokenParams) Interpolate(vars []model.EnvironmentVariable) TokenParams {
	out := p
	out.TokenURL = core.Interpolate(p.TokenURL, vars)
	out.ClientID = core.Interpolate(p.ClientID, vars)
	out.ClientSecret = core.Interpolate(p.ClientSecret, vars)
	out.Username = core.Interpolate(p.Username, vars)
	out.Password = core.Interpolate(p.Password, vars)
	out.Scopes = make([]string, len(p.Scopes))
	for i, s := range p.Scopes {
		out.Scopes[i] = core.Interpolate(s, vars)
	}
	return out
}

// FetchToken performs the configured grant. A non-nil httpClient is used for
// the token request.
func FetchToken(ctx context.Context, params TokenParams, httpClient *http.Client) (*oauth2.Token, error) {
	if params.TokenURL == "" {
		return nil, fmt.Errorf("token URL is required")
	}
	if params.ClientID == "" {
		return nil, fmt.Errorf("client ID is required")
	}
	if httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
	}

	switch params.Flow {
	case FlowClientCredentials, "":
		config := clientcredentials.Config{
			ClientID:     params.ClientID,
			ClientSecret: params.ClientSecret,
			TokenURL:     params.TokenURL,
			Scopes:       params.Scopes,
		}
		token, err := config.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("OAuth2 client_credentials flow failed: %w", err)
		}
		return token, nil

	case FlowPassword:
		if params.Username == "" || params.Password == "" {
			return nil, fmt.Errorf("username and password are required for the password flow")
		}
		config := oauth2.Config{
			ClientID:     params.ClientID,
			ClientSecret: params.ClientSecret,
			Endpoint:     oauth2.Endpoint{TokenURL: params.TokenURL},
			Scopes:       params.Scopes,
		}
		token, err := config.PasswordCredentialsToken(ctx, params.Username, params.Password)
		if err != nil {
			return nil, fmt.Errorf("OAuth2 password flow failed: %w", err)
		}
		return token, nil

	default:
		return nil, fmt.Errorf("unknown flow '%s' (supported: client_credentials, password)", params.Flow)
	}
}

// SaveToken stores the access token as name and a ready-made bearer header
// value as name_header in the draft.
func SaveToken(draft *storage.EnvironmentDraft, name string, token *oauth2.Token) {
	draft.SetVariable(name, token.AccessToken)
	draft.SetVariable(name+"_header", "Bearer "+token.AccessToken)
}

// FormatToken describes a token for terminal output.
func FormatToken(token *oauth2.Token) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Access Token: %s\n", token.AccessToken))
	sb.WriteString(fmt.Sprintf("Token Type: %s\n", token.Type()))
	if token.RefreshToken != "" {
		sb.WriteString(fmt.Sprintf("Refresh Token: %s\n", token.RefreshToken))
	}
	if !token.Expiry.IsZero() {
		sb.WriteString(fmt.Sprintf("Expires: %s\n", token.Expiry.Format("2006-01-02 15:04:05")))
	}
	return sb.String()
}
