package auth

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/blackcoderx/apistudio/pkg/model"
	"github.com/blackcoderx/apistudio/pkg/storage"
)

func tokenServer(t *testing.T, wantGrant string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		form, _ := url.ParseQuery(string(body))
		if form.Get("grant_type") != wantGrant {
			http.Error(w, `{"error":"unsupported_grant_type"}`, http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"access_token":"tok-123","token_type":"bearer","expires_in":3600}`)
	}))
}

func TestFetchToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		flow   string
		grant  string
		extra  func(*TokenParams)
		errMsg string
	}{
		{name: "client credentials", flow: FlowClientCredentials, grant: "client_credentials"},
		{name: "password", flow: FlowPassword, grant: "password", extra: func(p *TokenParams) {
			p.Username = "ada"
			p.Password = "pw"
		}},
		{name: "password without user", flow: FlowPassword, grant: "password", errMsg: "username and password are required"},
		{name: "unknown flow", flow: "implicit", grant: "implicit", errMsg: "unknown flow"},
		{name: "server rejects", flow: FlowClientCredentials, grant: "password", errMsg: "client_credentials flow failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := tokenServer(t, tt.grant)
			defer srv.Close()

			params := TokenParams{Flow: tt.flow, TokenURL: srv.URL, ClientID: "id", ClientSecret: "secret"}
			if tt.extra != nil {
				tt.extra(&params)
			}
			token, err := FetchToken(context.Background(), params, srv.Client())
			if tt.errMsg != "" {
				if err == nil || !strings.Contains(err.Error(), tt.errMsg) {
					t.Fatalf("expected error containing %q, got %v", tt.errMsg, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("FetchToken: %v", err)
			}
			if token.AccessToken != "tok-123" {
				t.Errorf("access token = %q", token.AccessToken)
			}
		})
	}
}

func TestFetchTokenRequiresURLAndClient(t *testing.T) {
	t.Parallel()

	if _, err := FetchToken(context.Background(), TokenParams{ClientID: "id"}, nil); err == nil {
		t.Error("expected error without token URL")
	}
	if _, err := FetchToken(context.Background(), TokenParams{TokenURL: "http://x"}, nil); err == nil {
		t.Error("expected error without client ID")
	}
}

func TestInterpolateAndSaveToken(t *testing.T) {
	t.Parallel()

	srv := tokenServer(t, "client_credentials")
	defer srv.Close()

	vars := []model.EnvironmentVariable{
		{Key: "auth", Value: srv.URL, Enabled: true},
		{Key: "cid", Value: "id", Enabled: true},
	}
	params := TokenParams{TokenURL: "{{auth}}", ClientID: "{{cid}}", ClientSecret: "s"}.Interpolate(vars)

	token, err := FetchToken(context.Background(), params, nil)
	if err != nil {
		t.Fatal(err)
	}

	draft := storage.NewEnvironmentDraft("dev")
	SaveToken(draft, "access_token", token)
	env := draft.Environment()
	if v, _ := env.Lookup("access_token"); v != "tok-123" {
		t.Errorf("access_token = %q", v)
	}
	if v, _ := env.Lookup("access_token_header"); v != "Bearer tok-123" {
		t.Errorf("access_token_header = %q", v)
	}
	if !strings.Contains(FormatToken(token), "Token Type: Bearer") {
		t.Errorf("unexpected format:\n%s", FormatToken(token))
	}
}
