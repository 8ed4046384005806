package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/blackcoderx/apistudio/pkg/client"
	"github.com/blackcoderx/apistudio/pkg/core"
)

var (
	sendCollection string
	sendQuery      string
	sendRaw        bool
)

func init() {
	sendCmd.Flags().StringVarP(&sendCollection, "collection", "c", "", "only look for the request in this collection")
	sendCmd.Flags().StringVarP(&sendQuery, "query", "q", "", "JMESPath expression applied to the response data")
	sendCmd.Flags().BoolVar(&sendRaw, "raw", false, "print plain markdown instead of rendering it")

	materializeCmd.Flags().StringVarP(&sendCollection, "collection", "c", "", "only look for the request in this collection")

	rootCmd.AddCommand(sendCmd, materializeCmd)
}

var sendCmd = &cobra.Command{
	Use:   "send <request>",
	Short: "Send a saved request",
	Example: heredoc.Doc(`
		apistudio send "List users"
		apistudio send login --env staging --query token
	`),
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, _, err := workspace.FindRequest(args[0], sendCollection)
		if err != nil {
			return err
		}
		vars, err := variables()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		resp, err := httpClient.Send(ctx, req, vars)
		if err != nil {
			return err
		}

		if sendQuery != "" {
			result, err := client.Query(resp, sendQuery)
			if err != nil {
				return err
			}
			out, _ := client.FormatData(result)
			fmt.Println(out)
			return nil
		}

		printMarkdown(client.FormatResponse(resp), sendRaw)
		return nil
	},
}

var materializeCmd = &cobra.Command{
	Use:   "materialize <request>",
	Short: "Print the HTTP call a saved request resolves to, without sending it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, _, err := workspace.FindRequest(args[0], sendCollection)
		if err != nil {
			return err
		}
		vars, err := variables()
		if err != nil {
			return err
		}

		m, err := core.Materialize(req, vars)
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(struct {
			Method string `json:"method"`
			core.Materialized
		}{Method: string(req.Method), Materialized: m}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}
