package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/blackcoderx/apistudio/pkg/model"
	"github.com/blackcoderx/apistudio/pkg/storage"
)

var reqFlags struct {
	collection     string
	method         string
	url            string
	headers        []string
	params         []string
	disableHeaders []string
	disableParams  []string
	body           string
	bodyType       string
	rawType        string
	auth           string
	token          string
	username       string
	password       string
	apiKey         string
	apiValue       string
	yes            bool
}

func init() {
	f := requestSaveCmd.Flags()
	f.StringVarP(&reqFlags.collection, "collection", "c", "", "collection to save into (default \"My Requests\")")
	f.StringVarP(&reqFlags.method, "method", "X", "GET", "HTTP method")
	f.StringVar(&reqFlags.url, "url", "", "URL template, may contain {{variables}}")
	f.StringArrayVarP(&reqFlags.headers, "header", "H", nil, "header as 'Key: Value', repeatable")
	f.StringArrayVarP(&reqFlags.params, "param", "p", nil, "query parameter as key=value, repeatable")
	f.StringArrayVar(&reqFlags.disableHeaders, "disable-header", nil, "keep a header but do not send it")
	f.StringArrayVar(&reqFlags.disableParams, "disable-param", nil, "keep a query parameter but do not send it")
	f.StringVarP(&reqFlags.body, "body", "d", "", "body content")
	f.StringVar(&reqFlags.bodyType, "body-type", "", "none, raw, form or urlencoded (default raw when --body is set)")
	f.StringVar(&reqFlags.rawType, "raw-type", "json", "json, text, xml or html")
	f.StringVar(&reqFlags.auth, "auth", "", "none, bearer, basic or apikey")
	f.StringVar(&reqFlags.token, "token", "", "bearer token")
	f.StringVar(&reqFlags.username, "username", "", "basic auth username")
	f.StringVar(&reqFlags.password, "password", "", "basic auth password")
	f.StringVar(&reqFlags.apiKey, "api-key", "", "API key header name")
	f.StringVar(&reqFlags.apiValue, "api-value", "", "API key value")

	requestShowCmd.Flags().StringVarP(&reqFlags.collection, "collection", "c", "", "only look in this collection")
	requestDeleteCmd.Flags().StringVarP(&reqFlags.collection, "collection", "c", "", "only look in this collection")
	requestDeleteCmd.Flags().BoolVarP(&reqFlags.yes, "yes", "y", false, "do not ask for confirmation")

	requestCmd.AddCommand(requestSaveCmd, requestShowCmd, requestDeleteCmd)
	rootCmd.AddCommand(requestCmd)
}

var requestCmd = &cobra.Command{
	Use:   "request",
	Short: "Create, inspect and delete saved requests",
}

var requestSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Create a request or update the one with the same name",
	Example: heredoc.Doc(`
		apistudio request save "Create user" -X POST --url '{{base}}/users' \
		  -H 'Accept: application/json' --body '{"name":"{{name}}"}' \
		  --auth bearer --token '{{access_token}}'
	`),
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		existing, owner, err := workspace.FindRequest(args[0], reqFlags.collection)
		isNew := errors.Is(err, storage.ErrNotFound)
		if err != nil && !isNew {
			return err
		}

		req := existing
		if isNew {
			req = model.NewRequest()
			req.Name = args[0]
		}
		if err := applyRequestFlags(cmd, &req); err != nil {
			return err
		}

		target := reqFlags.collection
		if !isNew {
			target = owner
		}
		if _, err := workspace.SaveRequest(req, target); err != nil {
			return err
		}
		if isNew {
			fmt.Printf("Saved %s %s\n", req.Method, req.Name)
			return nil
		}

		saved, _, err := workspace.FindRequest(req.ID, "")
		if err != nil {
			return err
		}
		diff, err := storage.RequestDiff(existing, saved)
		if err != nil {
			return err
		}
		if diff == "" {
			fmt.Println("No changes")
			return nil
		}
		fmt.Print(diff)
		return nil
	},
}

// applyRequestFlags copies every flag the user set onto req.
func applyRequestFlags(cmd *cobra.Command, req *model.Request) error {
	flags := cmd.Flags()

	if flags.Changed("method") || req.Method == "" {
		m, err := model.ParseMethod(reqFlags.method)
		if err != nil {
			return err
		}
		req.Method = m
	}
	if flags.Changed("url") {
		req.URL = reqFlags.url
	}

	if flags.Changed("header") {
		req.Headers = []model.Header{}
		for _, h := range reqFlags.headers {
			key, value, ok := strings.Cut(h, ":")
			if !ok {
				return fmt.Errorf("header %q is not in 'Key: Value' form", h)
			}
			req.Headers = append(req.Headers, model.NewHeader(strings.TrimSpace(key), strings.TrimSpace(value)))
		}
	}
	for _, key := range reqFlags.disableHeaders {
		found := false
		for i := range req.Headers {
			if strings.EqualFold(req.Headers[i].Key, key) {
				req.Headers[i].Enabled = false
				found = true
			}
		}
		if !found {
			return fmt.Errorf("header %q: %w", key, storage.ErrNotFound)
		}
	}

	if flags.Changed("param") {
		req.Params = []model.Param{}
		for _, p := range reqFlags.params {
			key, value, _ := strings.Cut(p, "=")
			req.Params = append(req.Params, model.NewParam(key, value))
		}
	}
	for _, key := range reqFlags.disableParams {
		found := false
		for i := range req.Params {
			if req.Params[i].Key == key {
				req.Params[i].Enabled = false
				found = true
			}
		}
		if !found {
			return fmt.Errorf("param %q: %w", key, storage.ErrNotFound)
		}
	}

	if flags.Changed("body") || flags.Changed("body-type") || flags.Changed("raw-type") {
		body, err := bodyFromFlags(req.BodyOrNone())
		if err != nil {
			return err
		}
		req.Body = body
	}

	if flags.Changed("auth") {
		auth, err := authFromFlags()
		if err != nil {
			return err
		}
		req.Auth = auth
	}
	return nil
}

func bodyFromFlags(current model.Body) (model.Body, error) {
	kind := model.BodyKindRaw
	if reqFlags.bodyType != "" {
		k, err := model.ParseBodyKind(reqFlags.bodyType)
		if err != nil {
			return nil, err
		}
		kind = k
	} else if current.Kind() != model.BodyKindNone {
		kind = current.Kind()
	}

	switch kind {
	case model.BodyKindRaw:
		rt := model.RawType(reqFlags.rawType)
		switch rt {
		case model.RawJSON, model.RawText, model.RawXML, model.RawHTML:
		default:
			return nil, fmt.Errorf("unknown raw type %q", reqFlags.rawType)
		}
		return model.RawBody{Content: reqFlags.body, Type: rt}, nil
	case model.BodyKindForm:
		return model.FormBody{Content: reqFlags.body}, nil
	case model.BodyKindURLEncoded:
		return model.URLEncodedBody{Content: reqFlags.body}, nil
	default:
		return model.NoBody{}, nil
	}
}

func authFromFlags() (model.Auth, error) {
	switch model.AuthKind(strings.ToLower(reqFlags.auth)) {
	case model.AuthKindNone, "":
		return model.NoAuth{}, nil
	case model.AuthKindBearer:
		return model.BearerAuth{Token: reqFlags.token}, nil
	case model.AuthKindBasic:
		return model.BasicAuth{Username: reqFlags.username, Password: reqFlags.password}, nil
	case model.AuthKindAPIKey:
		return model.APIKeyAuth{Key: reqFlags.apiKey, Value: reqFlags.apiValue}, nil
	}
	return nil, fmt.Errorf("unknown auth type %q", reqFlags.auth)
}

var requestShowCmd = &cobra.Command{
	Use:   "show <request>",
	Short: "Print a saved request as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, _, err := workspace.FindRequest(args[0], reqFlags.collection)
		if err != nil {
			return err
		}
		out, err := yaml.Marshal(req)
		if err != nil {
			return err
		}
		fmt.Print(string(out))
		return nil
	},
}

var requestDeleteCmd = &cobra.Command{
	Use:   "delete <request>",
	Short: "Delete a saved request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, owner, err := workspace.FindRequest(args[0], reqFlags.collection)
		if err != nil {
			return err
		}
		if !reqFlags.yes && !confirm(fmt.Sprintf("Delete request %q?", req.Name)) {
			return nil
		}
		if err := workspace.DeleteRequest(req.ID, owner); err != nil {
			return err
		}
		fmt.Printf("Deleted %s\n", req.Name)
		return nil
	},
}
